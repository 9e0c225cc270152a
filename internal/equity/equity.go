// Package equity estimates showdown win and tie rates by Monte Carlo
// simulation of the unseen board cards.
package equity

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/showdown/internal/randutil"
	"github.com/lox/showdown/poker"
)

// ErrTooFewHoldings is returned when fewer than two holdings are compared.
var ErrTooFewHoldings = errors.New("equity needs at least two holdings")

// ctxCheckInterval is how many iterations a worker runs between context checks.
const ctxCheckInterval = 1024

// Request describes one equity calculation.
type Request struct {
	Holdings   [][]poker.Card // two cards each
	Board      []poker.Card   // zero to five known community cards
	Iterations int
	Seed       int64
	Workers    int // defaults to 1
}

// PlayerEquity is the tally for one holding.
type PlayerEquity struct {
	Wins int // iterations won outright
	Ties int // iterations that ended in a split including this holding
	// TieShare sums the fraction of the pot won in split iterations.
	TieShare   float64
	Categories [len(poker.Categories)]int
}

// Report is the combined result of every worker.
type Report struct {
	Players    []PlayerEquity
	Iterations int
	Elapsed    time.Duration
}

// Equity is the expected pot share of holding i.
func (r Report) Equity(i int) float64 {
	if r.Iterations == 0 {
		return 0
	}
	p := r.Players[i]
	return (float64(p.Wins) + p.TieShare) / float64(r.Iterations)
}

// WinRate is the fraction of iterations holding i won outright.
func (r Report) WinRate(i int) float64 {
	if r.Iterations == 0 {
		return 0
	}
	return float64(r.Players[i].Wins) / float64(r.Iterations)
}

// TieRate is the fraction of iterations holding i split.
func (r Report) TieRate(i int) float64 {
	if r.Iterations == 0 {
		return 0
	}
	return float64(r.Players[i].Ties) / float64(r.Iterations)
}

// CategoryRate is how often holding i finished with the given category.
func (r Report) CategoryRate(i int, category poker.HandCategory) float64 {
	if r.Iterations == 0 {
		return 0
	}
	return float64(r.Players[i].Categories[category]) / float64(r.Iterations)
}

// Estimator runs equity simulations.
type Estimator struct {
	clock  quartz.Clock
	logger *log.Logger
}

// New returns an Estimator. A nil clock uses the real clock and a nil logger
// discards diagnostics.
func New(clock quartz.Clock, logger *log.Logger) *Estimator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Estimator{clock: clock, logger: logger}
}

// Estimate runs req with the real clock and no logging.
func Estimate(ctx context.Context, req Request) (Report, error) {
	return New(nil, nil).Estimate(ctx, req)
}

// Estimate deals the missing board cards Iterations times and tallies the
// showdown. The result depends only on the request, including Seed and
// Workers.
func (e *Estimator) Estimate(ctx context.Context, req Request) (Report, error) {
	if err := validate(req); err != nil {
		return Report{}, err
	}
	workers := max(req.Workers, 1)
	workers = min(workers, req.Iterations)

	stub := remaining(req)
	need := poker.CommunitySize - len(req.Board)
	if len(stub) < need {
		return Report{}, fmt.Errorf("only %d cards left to complete a board needing %d", len(stub), need)
	}

	start := e.clock.Now()
	tallies := make([][]PlayerEquity, workers)

	g, ctx := errgroup.WithContext(ctx)
	per, extra := req.Iterations/workers, req.Iterations%workers
	for w := 0; w < workers; w++ {
		n := per
		if w < extra {
			n++
		}
		g.Go(func() error {
			sim := newSimulation(req, stub, randutil.Stream(req.Seed, w))
			if err := sim.run(ctx, n); err != nil {
				return err
			}
			tallies[w] = sim.players
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{
		Players:    make([]PlayerEquity, len(req.Holdings)),
		Iterations: req.Iterations,
		Elapsed:    e.clock.Since(start),
	}
	// Merge in worker order so floating point sums are reproducible.
	for _, tally := range tallies {
		for i, p := range tally {
			dst := &report.Players[i]
			dst.Wins += p.Wins
			dst.Ties += p.Ties
			dst.TieShare += p.TieShare
			for c, n := range p.Categories {
				dst.Categories[c] += n
			}
		}
	}

	if e.logger != nil {
		e.logger.Debug("equity estimated",
			"holdings", len(req.Holdings),
			"board", poker.FormatCards(req.Board),
			"iterations", req.Iterations,
			"workers", workers,
			"elapsed", report.Elapsed)
	}
	return report, nil
}

func validate(req Request) error {
	if len(req.Holdings) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewHoldings, len(req.Holdings))
	}
	for _, hole := range req.Holdings {
		if len(hole) != poker.HoleSize {
			return &poker.ValidationError{Kind: poker.WrongHoleSize, Want: poker.HoleSize, Got: len(hole)}
		}
	}
	if len(req.Board) > poker.CommunitySize {
		return &poker.ValidationError{Kind: poker.WrongCommunitySize, Want: poker.CommunitySize, Got: len(req.Board)}
	}
	if req.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", req.Iterations)
	}
	groups := append([][]poker.Card{req.Board}, req.Holdings...)
	return poker.CheckDistinct(groups...)
}

// remaining lists the cards not already in a holding or on the board.
func remaining(req Request) []poker.Card {
	var used [poker.NumSuits][poker.Ace + 1]bool
	mark := func(cards []poker.Card) {
		for _, c := range cards {
			used[c.Suit][c.Rank] = true
		}
	}
	mark(req.Board)
	for _, hole := range req.Holdings {
		mark(hole)
	}

	var out []poker.Card
	for _, c := range poker.FullDeck() {
		if !used[c.Suit][c.Rank] {
			out = append(out, c)
		}
	}
	return out
}

// simulation is one worker's private state.
type simulation struct {
	holdings [][]poker.Card
	known    int
	board    []poker.Card
	stub     []poker.Card
	rng      *rand.Rand
	results  []poker.RankingResult
	players  []PlayerEquity
}

func newSimulation(req Request, stub []poker.Card, rng *rand.Rand) *simulation {
	board := make([]poker.Card, poker.CommunitySize)
	copy(board, req.Board)
	return &simulation{
		holdings: req.Holdings,
		known:    len(req.Board),
		board:    board,
		stub:     append([]poker.Card(nil), stub...),
		rng:      rng,
		results:  make([]poker.RankingResult, len(req.Holdings)),
		players:  make([]PlayerEquity, len(req.Holdings)),
	}
}

func (s *simulation) run(ctx context.Context, iterations int) error {
	for i := 0; i < iterations; i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := s.step(); err != nil {
			return err
		}
	}
	return nil
}

// step completes the board with a partial Fisher-Yates shuffle of the stub
// and credits the showdown.
func (s *simulation) step() error {
	for i := s.known; i < poker.CommunitySize; i++ {
		j := i - s.known
		k := j + s.rng.IntN(len(s.stub)-j)
		s.stub[j], s.stub[k] = s.stub[k], s.stub[j]
		s.board[i] = s.stub[j]
	}

	for i, hole := range s.holdings {
		result, err := poker.Evaluate(s.board, hole)
		if err != nil {
			return err
		}
		s.results[i] = result
		s.players[i].Categories[result.Category]++
	}

	winners := poker.Winners(s.results)
	if len(winners) == 1 {
		s.players[winners[0]].Wins++
		return nil
	}
	share := 1 / float64(len(winners))
	for _, idx := range winners {
		s.players[idx].Ties++
		s.players[idx].TieShare += share
	}
	return nil
}
