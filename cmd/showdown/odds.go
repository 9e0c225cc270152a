package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/showdown/internal/equity"
	"github.com/lox/showdown/internal/randutil"
	"github.com/lox/showdown/poker"
)

// OddsCmd estimates each holding's equity over the unseen board cards.
type OddsCmd struct {
	Hands         []string `arg:"" help:"Player hands in format 'AcKd' 'QhJs' (one argument per player)"`
	Board         string   `short:"b" help:"Community board cards (e.g., 'Td7s8h')"`
	Possibilities bool     `short:"p" help:"Show detailed hand type probabilities"`
	Iterations    int      `short:"i" help:"Number of Monte Carlo iterations (default from config)"`
	Workers       int      `short:"w" help:"Parallel workers (default from config)"`
	Seed          *int64   `help:"Random seed for reproducible results"`
}

func (cmd *OddsCmd) Run(ctx context.Context, g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	hands, err := parseHands(cmd.Hands)
	if err != nil {
		return err
	}
	var board []poker.Card
	if cmd.Board != "" {
		if board, err = poker.ParseCards(cmd.Board); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}

	req := equity.Request{
		Holdings:   hands,
		Board:      board,
		Iterations: cfg.Equity.Iterations,
		Workers:    cfg.Equity.Workers,
		Seed:       pickSeed(cmd.Seed, cfg.Seed),
	}
	if cmd.Iterations > 0 {
		req.Iterations = cmd.Iterations
	}
	if cmd.Workers > 0 {
		req.Workers = cmd.Workers
	}

	logger := g.logger(cfg)
	logger.Debug("estimating equity", "hands", len(hands), "iterations", req.Iterations, "workers", req.Workers, "seed", req.Seed)

	report, err := equity.New(quartz.NewReal(), logger).Estimate(ctx, req)
	if err != nil {
		return err
	}
	displayOdds(g.stdout(), req, report, cmd.Possibilities)
	return nil
}

// pickSeed prefers the flag, then the config file, then a fresh random seed.
func pickSeed(flag, configured *int64) int64 {
	switch {
	case flag != nil:
		return *flag
	case configured != nil:
		return *configured
	default:
		return randutil.Seed()
	}
}

func displayOdds(w io.Writer, req equity.Request, report equity.Report, showPossibilities bool) {
	if len(req.Board) > 0 {
		fmt.Fprintf(w, "%s\n", headerStyle.Render("board"))
		fmt.Fprintf(w, "%s\n\n", renderCards(req.Board, false))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("preflop"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"),
		headerStyle.Render("equity"))

	for i, hand := range req.Holdings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			handStyle.Render(poker.FormatCards(hand)),
			dimStyle.Render(string(poker.CategorizeHoleCards(hand[0], hand[1]))),
			winStyle.Render(percent(report.WinRate(i))),
			tieStyle.Render(percent(report.TieRate(i))),
			percentStyle.Render(percent(report.Equity(i))))
	}
	tw.Flush()

	if showPossibilities {
		fmt.Fprintln(w)
		displayPossibilities(w, req, report)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d iterations in %v\n", report.Iterations, report.Elapsed.Truncate(time.Millisecond))
}

// displayPossibilities prints how often each holding finishes in each
// category, strongest first, skipping categories nobody made.
func displayPossibilities(w io.Writer, req equity.Request, report equity.Report) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s", categoryStyle.Render("hand"))
	for _, hand := range req.Holdings {
		fmt.Fprintf(tw, "\t%s", handStyle.Render(poker.FormatCards(hand)))
	}
	fmt.Fprintf(tw, "\n")

	for _, category := range poker.Categories {
		seen := false
		for i := range report.Players {
			if report.Players[i].Categories[category] > 0 {
				seen = true
				break
			}
		}
		if !seen {
			continue
		}

		fmt.Fprintf(tw, "%s", categoryStyle.Render(category.String()))
		for i := range report.Players {
			if report.Players[i].Categories[category] > 0 {
				fmt.Fprintf(tw, "\t%s", percentStyle.Render(percent(report.CategoryRate(i, category))))
			} else {
				fmt.Fprintf(tw, "\t%s", percentStyle.Render("."))
			}
		}
		fmt.Fprintf(tw, "\n")
	}
	tw.Flush()
}

func percent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}
