package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/showdown/internal/phh"
	"github.com/lox/showdown/poker"
)

// HistoryCmd renders rounds saved by deal.
type HistoryCmd struct {
	File   string `arg:"" name:"file" help:"Path to a .phhs file" type:"existingfile"`
	Limit  int    `help:"Maximum number of hands to render (0 = all)"`
	Glyphs bool   `help:"Draw cards as Unicode playing card glyphs"`
}

func (cmd *HistoryCmd) Run(g *Globals) error {
	if _, err := g.load(); err != nil {
		return err
	}

	hands, err := phh.ReadFile(cmd.File)
	if err != nil {
		return err
	}
	if len(hands) == 0 {
		return fmt.Errorf("no hands found in %s", cmd.File)
	}

	limit := cmd.Limit
	if limit <= 0 || limit > len(hands) {
		limit = len(hands)
	}
	for i := 0; i < limit; i++ {
		if i > 0 {
			fmt.Fprintln(g.stdout())
		}
		if err := renderHistory(g.stdout(), hands[i], cmd.Glyphs); err != nil {
			return fmt.Errorf("rendering hand %d: %w", i+1, err)
		}
	}
	return nil
}

// renderHistory replays the dealing actions of one hand.
func renderHistory(w io.Writer, hand phh.HandHistory, glyphs bool) error {
	if len(hand.Players) == 0 {
		return fmt.Errorf("hand %s has no players", hand.HandID)
	}

	holes := make([][]poker.Card, len(hand.Players))
	var board []poker.Card
	for _, raw := range hand.Actions {
		action, err := phh.ParseAction(raw)
		if err != nil {
			return err
		}
		if action.Verb == "db" {
			board = append(board, action.Cards...)
			continue
		}
		if action.Seat >= len(holes) {
			return fmt.Errorf("action %q names seat %d of %d", raw, action.Seat+1, len(holes))
		}
		holes[action.Seat] = action.Cards
	}

	fmt.Fprintf(w, "%s %s %s\n",
		headerStyle.Render("hand"),
		dimStyle.Render(hand.HandID),
		dimStyle.Render(fmt.Sprintf("%04d-%02d-%02d %s %s", hand.Year, hand.Month, hand.Day, hand.Time, hand.TimeZone)))
	fmt.Fprintf(w, "%s\n", renderCards(board, glyphs))

	for i, name := range hand.Players {
		line := fmt.Sprintf("  %s %s", handStyle.Render(name), renderCards(holes[i], glyphs))
		if i < len(hand.Rankings) {
			line += " " + categoryStyle.Render(hand.Rankings[i])
		}
		fmt.Fprintln(w, line)
	}
	if len(hand.Winners) > 0 {
		fmt.Fprintf(w, "%s %s\n", winStyle.Render("winners"), strings.Join(hand.Winners, ", "))
	}
	return nil
}
