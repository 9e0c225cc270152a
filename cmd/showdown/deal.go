package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/coder/quartz"

	"github.com/lox/showdown/internal/config"
	"github.com/lox/showdown/internal/phh"
	"github.com/lox/showdown/internal/randutil"
	"github.com/lox/showdown/internal/round"
	"github.com/lox/showdown/internal/statistics"
	"github.com/lox/showdown/poker"
)

// DealCmd plays showdown rounds for the configured players.
type DealCmd struct {
	Rounds  int      `short:"n" help:"Number of rounds to deal" default:"1"`
	Players []string `short:"p" help:"Override player names (comma separated)" sep:","`
	Seed    *int64   `help:"Random seed for reproducible deals"`
	History string   `help:"Write the rounds to this PHH file (default from config)"`
	Glyphs  bool     `help:"Draw cards as Unicode playing card glyphs"`
	Stats   bool     `help:"Summarise each seat's results after the rounds"`
}

func (cmd *DealCmd) Run(ctx context.Context, g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if len(cmd.Players) > 0 {
		cfg.Players = overridePlayers(cfg, cmd.Players)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if cmd.Rounds < 1 {
		return fmt.Errorf("rounds must be at least 1, got %d", cmd.Rounds)
	}

	seed := pickSeed(cmd.Seed, cfg.Seed)
	logger := g.logger(cfg)
	logger.Debug("dealing", "rounds", cmd.Rounds, "players", len(cfg.Players), "seed", seed)

	dealer := round.NewDealer(randutil.New(seed), quartz.NewReal(), g.roundLogger(cfg), poker.NewEvaluator(logger))
	results, err := playRounds(ctx, dealer, seatsFromConfig(cfg), cmd.Rounds)
	if err != nil {
		return err
	}

	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(g.stdout())
		}
		writeRound(g.stdout(), result, cmd.Glyphs)
	}

	if cmd.Stats {
		stats, err := tally(cfg.PlayerNames(), results)
		if err != nil {
			return err
		}
		fmt.Fprintln(g.stdout())
		writeStats(g.stdout(), stats)
	}

	path := cmd.History
	if path == "" {
		path = cfg.History
	}
	if path == "" {
		return nil
	}
	hands := make([]*phh.HandHistory, len(results))
	for i, result := range results {
		hands[i] = result.History()
	}
	if err := phh.WriteFile(path, hands); err != nil {
		return fmt.Errorf("writing hand history: %w", err)
	}
	logger.Info("wrote hand history", "path", path, "rounds", len(hands))
	return nil
}

// overridePlayers replaces seat names, keeping configured stacks by name.
func overridePlayers(cfg *config.Config, names []string) []config.PlayerConfig {
	stacks := make(map[string]int, len(cfg.Players))
	for _, p := range cfg.Players {
		stacks[p.Name] = p.Stack
	}
	players := make([]config.PlayerConfig, len(names))
	for i, name := range names {
		stack, ok := stacks[name]
		if !ok {
			stack = config.DefaultStack
		}
		players[i] = config.PlayerConfig{Name: name, Stack: stack}
	}
	return players
}

func seatsFromConfig(cfg *config.Config) []round.Seat {
	seats := make([]round.Seat, len(cfg.Players))
	for i, p := range cfg.Players {
		seats[i] = round.Seat{Name: p.Name, Stack: p.Stack}
	}
	return seats
}

func playRounds(ctx context.Context, dealer *round.Dealer, seats []round.Seat, n int) ([]*round.Result, error) {
	results := make([]*round.Result, 0, n)
	for i := 0; i < n; i++ {
		result, err := dealer.Play(ctx, seats)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i+1, err)
		}
		results = append(results, result)
	}
	return results, nil
}

func writeRound(w io.Writer, r *round.Result, glyphs bool) {
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render("round"), dimStyle.Render(r.ID))
	fmt.Fprintf(w, "%s\n\n", renderCards(r.Board, glyphs))

	winners := make(map[int]bool, len(r.Winners))
	for _, idx := range r.Winners {
		winners[idx] = true
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, s := range r.Seats {
		result := dimStyle.Render("-")
		if winners[i] {
			if r.Split() {
				result = tieStyle.Render("split")
			} else {
				result = winStyle.Render("wins")
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			handStyle.Render(s.Name),
			renderCards(s.Hole, glyphs),
			categoryStyle.Render(s.Ranking.Describe()),
			result)
	}
	tw.Flush()
}

func tally(names []string, results []*round.Result) (*statistics.Statistics, error) {
	stats := statistics.New(names)
	for _, r := range results {
		if err := stats.Add(r); err != nil {
			return nil, err
		}
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("tally: %w", err)
	}
	return stats, nil
}

func writeStats(w io.Writer, stats *statistics.Statistics) {
	fmt.Fprintf(w, "%s %d rounds, %d split\n\n",
		headerStyle.Render("results"), stats.Rounds, stats.SplitRounds)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Player\tWins\tSplits\tPot share\t95% CI")
	for i := range stats.Seats {
		st := &stats.Seats[i]
		low, high := st.ConfidenceInterval95()
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n",
			handStyle.Render(st.Name),
			st.Wins,
			st.Splits,
			percentStyle.Render(percent(st.Mean())),
			dimStyle.Render(percent(max(low, 0))+" - "+percent(min(high, 1))))
	}
	tw.Flush()
}
