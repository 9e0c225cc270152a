package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/lox/showdown/poker"
)

// EvalCmd ranks each holding against a five-card board and names the winners.
type EvalCmd struct {
	Board  string   `arg:"" help:"Five community cards, e.g. 'AsKsQsJsTs'"`
	Hands  []string `arg:"" help:"Hole cards per player, e.g. 'AcKd' 'Qh Js'"`
	JSON   bool     `help:"Print the result as JSON"`
	Glyphs bool     `help:"Draw cards as Unicode playing card glyphs"`
}

func (cmd *EvalCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	board, holes, err := parseBoardAndHands(cmd.Board, cmd.Hands)
	if err != nil {
		return err
	}

	out, err := evaluate(poker.NewEvaluator(g.logger(cfg)), board, holes)
	if err != nil {
		return err
	}
	if cmd.JSON {
		return writeEvalJSON(g.stdout(), out)
	}
	writeEvalText(g.stdout(), out, cmd.Glyphs)
	return nil
}

// evalOutput is the evaluation of every holding on one board.
type evalOutput struct {
	Board    []poker.Card
	Holes    [][]poker.Card
	Rankings []poker.RankingResult
	Winners  []int
}

func (o evalOutput) isWinner(i int) bool {
	for _, w := range o.Winners {
		if w == i {
			return true
		}
	}
	return false
}

func parseBoardAndHands(boardArg string, handArgs []string) ([]poker.Card, [][]poker.Card, error) {
	board, err := poker.ParseCards(boardArg)
	if err != nil {
		return nil, nil, fmt.Errorf("board: %w", err)
	}
	holes, err := parseHands(handArgs)
	if err != nil {
		return nil, nil, err
	}
	if len(holes) == 0 {
		return nil, nil, fmt.Errorf("at least one hand is required")
	}
	return board, holes, nil
}

// parseHands parses one argument per player, each exactly two cards.
func parseHands(args []string) ([][]poker.Card, error) {
	hands := make([][]poker.Card, 0, len(args))
	for i, arg := range args {
		hand, err := poker.ParseCards(strings.TrimSpace(arg))
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		if len(hand) != poker.HoleSize {
			return nil, fmt.Errorf("hand %d: must contain exactly 2 cards, got %d", i+1, len(hand))
		}
		hands = append(hands, hand)
	}
	return hands, nil
}

func evaluate(evaluator *poker.Evaluator, board []poker.Card, holes [][]poker.Card) (evalOutput, error) {
	if err := poker.CheckDistinct(append([][]poker.Card{board}, holes...)...); err != nil {
		return evalOutput{}, err
	}

	out := evalOutput{Board: board, Holes: holes, Rankings: make([]poker.RankingResult, len(holes))}
	for i, hole := range holes {
		ranking, err := evaluator.Evaluate(board, hole)
		if err != nil {
			return evalOutput{}, fmt.Errorf("hand %d: %w", i+1, err)
		}
		out.Rankings[i] = ranking
	}
	out.Winners = poker.Winners(out.Rankings)
	return out, nil
}

func writeEvalText(w io.Writer, out evalOutput, glyphs bool) {
	fmt.Fprintf(w, "%s\n", headerStyle.Render("board"))
	fmt.Fprintf(w, "%s\n\n", renderCards(out.Board, glyphs))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("ranking"),
		headerStyle.Render("best five"),
		headerStyle.Render("result"))

	for i, ranking := range out.Rankings {
		result := dimStyle.Render("-")
		if out.isWinner(i) {
			if len(out.Winners) > 1 {
				result = tieStyle.Render("split")
			} else {
				result = winStyle.Render("wins")
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			handStyle.Render(renderCards(out.Holes[i], glyphs)),
			categoryStyle.Render(ranking.Describe()),
			renderCards(ranking.Cards, glyphs),
			result)
	}
	tw.Flush()
}

type evalJSON struct {
	Board   []string   `json:"board"`
	Hands   []handJSON `json:"hands"`
	Winners []int      `json:"winners"`
	Split   bool       `json:"split"`
}

type handJSON struct {
	Hole        []string `json:"hole"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Tiebreak    []string `json:"tiebreak"`
	HighCard    string   `json:"high_card"`
	Cards       []string `json:"cards"`
	Winner      bool     `json:"winner"`
}

func shortStrings(cards []poker.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Short()
	}
	return out
}

func newEvalJSON(out evalOutput) evalJSON {
	doc := evalJSON{
		Board:   shortStrings(out.Board),
		Hands:   make([]handJSON, len(out.Rankings)),
		Winners: out.Winners,
		Split:   len(out.Winners) > 1,
	}
	for i, r := range out.Rankings {
		tiebreak := make([]string, len(r.Tiebreak))
		for j, rank := range r.Tiebreak {
			tiebreak[j] = rank.String()
		}
		doc.Hands[i] = handJSON{
			Hole:        shortStrings(out.Holes[i]),
			Category:    r.Category.String(),
			Description: r.Describe(),
			Tiebreak:    tiebreak,
			HighCard:    r.HighCard.String(),
			Cards:       shortStrings(r.Cards),
			Winner:      out.isWinner(i),
		}
	}
	return doc
}

func writeEvalJSON(w io.Writer, out evalOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newEvalJSON(out))
}
