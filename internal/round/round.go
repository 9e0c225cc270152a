// Package round plays showdown-only rounds: deal, reveal the board in
// stages, evaluate every seat and name the winners.
package round

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/showdown/internal/phh"
	"github.com/lox/showdown/internal/roundid"
	"github.com/lox/showdown/poker"
)

const (
	MinSeats = 2
	MaxSeats = (poker.DeckSize - poker.CommunitySize) / poker.HoleSize
)

// Seat is a named player and the stack they sit down with.
type Seat struct {
	Name  string
	Stack int
}

// SeatResult is one seat's cards and best hand at showdown.
type SeatResult struct {
	Seat
	Hole    []poker.Card
	Ranking poker.RankingResult
}

// Result is a completed round.
type Result struct {
	ID      string
	Time    time.Time
	Board   []poker.Card
	Seats   []SeatResult
	Winners []int // seat indices, ascending
}

// Split reports whether the pot is shared.
func (r *Result) Split() bool {
	return len(r.Winners) > 1
}

// WinnerNames returns the names of the winning seats.
func (r *Result) WinnerNames() []string {
	names := make([]string, len(r.Winners))
	for i, idx := range r.Winners {
		names[i] = r.Seats[idx].Name
	}
	return names
}

// History converts the round to a PHH hand history.
func (r *Result) History() *phh.HandHistory {
	names := make([]string, len(r.Seats))
	stacks := make([]int, len(r.Seats))
	for i, s := range r.Seats {
		names[i] = s.Name
		stacks[i] = s.Stack
	}

	h := phh.New(r.ID, r.Time, names, stacks)
	for i, s := range r.Seats {
		h.Actions = append(h.Actions, phh.DealHole(i, s.Hole))
	}
	h.Actions = append(h.Actions,
		phh.DealBoard(r.Board[:3]),
		phh.DealBoard(r.Board[3:4]),
		phh.DealBoard(r.Board[4:5]),
	)
	for i, s := range r.Seats {
		h.Actions = append(h.Actions, phh.ShowHole(i, s.Hole))
		h.Rankings = append(h.Rankings, s.Ranking.Describe())
	}
	h.Winners = r.WinnerNames()
	return h
}

// Dealer owns a deck and plays rounds with it. A Dealer is not safe for
// concurrent use.
type Dealer struct {
	deck      *poker.Deck
	evaluator *poker.Evaluator
	ids       *roundid.Generator
	clock     quartz.Clock
	logger    zerolog.Logger
}

// NewDealer creates a dealer drawing from a deck shuffled by rng. The same rng
// also feeds round IDs, so a seeded rng and a mock clock replay identically.
func NewDealer(rng *rand.Rand, clock quartz.Clock, logger zerolog.Logger, evaluator *poker.Evaluator) *Dealer {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if evaluator == nil {
		evaluator = poker.NewEvaluator(nil)
	}
	var ids *roundid.Generator
	if rng != nil {
		ids = roundid.NewGenerator(clock, rng)
	} else {
		ids = roundid.NewGenerator(clock, nil)
	}
	return &Dealer{
		deck:      poker.NewDeck(rng),
		evaluator: evaluator,
		ids:       ids,
		clock:     clock,
		logger:    logger.With().Str("component", "round").Logger(),
	}
}

// Play deals a fresh round to seats and resolves the showdown. Any failure
// aborts the round and no winner is reported.
func (d *Dealer) Play(ctx context.Context, seats []Seat) (*Result, error) {
	if n := len(seats); n < MinSeats || n > MaxSeats {
		return nil, fmt.Errorf("round needs %d to %d seats, got %d", MinSeats, MaxSeats, n)
	}

	result := &Result{
		ID:    d.ids.Generate(),
		Time:  d.clock.Now(),
		Seats: make([]SeatResult, len(seats)),
	}
	logger := d.logger.With().Str("round_id", result.ID).Logger()

	d.deck.Reset()

	holdings, err := d.dealHoles(len(seats))
	if err != nil {
		return nil, err
	}

	board, err := d.dealBoard(logger)
	if err != nil {
		return nil, err
	}
	result.Board = board

	g, gctx := errgroup.WithContext(ctx)
	for i := range seats {
		result.Seats[i] = SeatResult{Seat: seats[i], Hole: holdings[i].Cards()}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ranking, err := d.evaluator.Evaluate(board, result.Seats[i].Hole)
			if err != nil {
				return fmt.Errorf("seat %s: %w", seats[i].Name, err)
			}
			result.Seats[i].Ranking = ranking
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rankings := make([]poker.RankingResult, len(result.Seats))
	for i, s := range result.Seats {
		rankings[i] = s.Ranking
	}
	result.Winners = poker.Winners(rankings)

	d.logSummary(logger, result)
	return result, nil
}

// dealHoles deals one card at a time round the table, twice.
func (d *Dealer) dealHoles(n int) ([]poker.Holding, error) {
	holdings := make([]poker.Holding, n)
	for pass := 0; pass < poker.HoleSize; pass++ {
		for i := range holdings {
			card, err := d.deck.Draw()
			if err != nil {
				return nil, fmt.Errorf("dealing hole cards: %w", err)
			}
			if err := holdings[i].AddCard(card); err != nil {
				return nil, err
			}
		}
	}
	return holdings, nil
}

func (d *Dealer) dealBoard(logger zerolog.Logger) ([]poker.Card, error) {
	var community poker.CommunityCards

	flop, err := d.deck.DrawN(3)
	if err != nil {
		return nil, fmt.Errorf("dealing flop: %w", err)
	}
	if err := community.ReceiveFlop(flop); err != nil {
		return nil, err
	}
	logger.Debug().Str("street", community.Stage().String()).Str("board", community.String()).Msg("Board dealt")

	for _, receive := range []func(poker.Card) error{community.ReceiveTurn, community.ReceiveRiver} {
		card, err := d.deck.Draw()
		if err != nil {
			return nil, fmt.Errorf("dealing %s: %w", community.Stage()+1, err)
		}
		if err := receive(card); err != nil {
			return nil, err
		}
		logger.Debug().Str("street", community.Stage().String()).Str("board", community.String()).Msg("Board dealt")
	}

	return community.FinalSet()
}

func (d *Dealer) logSummary(logger zerolog.Logger, r *Result) {
	hands := make([]string, len(r.Seats))
	for i, s := range r.Seats {
		hands[i] = fmt.Sprintf("%s/%s/%s", s.Name, poker.ShortCards(s.Hole), s.Ranking.Category)
	}
	logger.Info().
		Str("board", poker.ShortCards(r.Board)).
		Str("hands", strings.Join(hands, " ")).
		Strs("winners", r.WinnerNames()).
		Bool("split", r.Split()).
		Msg("Showdown complete")
}
