package phh

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/showdown/poker"
)

// Decode reads a single hand history.
func Decode(r io.Reader) (*HandHistory, error) {
	var hand HandHistory
	if _, err := toml.NewDecoder(r).Decode(&hand); err != nil {
		return nil, fmt.Errorf("phh: %w", err)
	}
	return &hand, nil
}

// DecodeSections reads a multi-hand .phhs document. Hands come back in
// numeric section order.
func DecodeSections(r io.Reader) ([]HandHistory, error) {
	sections := make(map[string]HandHistory)
	if _, err := toml.NewDecoder(r).Decode(&sections); err != nil {
		return nil, fmt.Errorf("phh: %w", err)
	}

	keys := make([]int, 0, len(sections))
	for k := range sections {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("phh: section %q is not a hand number", k)
		}
		keys = append(keys, n)
	}
	slices.Sort(keys)

	hands := make([]HandHistory, 0, len(keys))
	for _, k := range keys {
		hand := sections[strconv.Itoa(k)]
		if hand.HandID == "" {
			hand.HandID = fmt.Sprintf("hand-%d", k)
		}
		hands = append(hands, hand)
	}
	return hands, nil
}

// ReadFile loads every hand from a .phhs file.
func ReadFile(path string) ([]HandHistory, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeSections(f)
}

// Action is a parsed dealer or showdown action.
type Action struct {
	Dealer bool   // "d" actor
	Seat   int    // zero-based; the target seat for dealer hole deals
	Verb   string // dh, db or sm
	Cards  []poker.Card
}

// ParseAction parses the dealing and showdown actions this package writes.
func ParseAction(s string) (Action, error) {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return Action{}, fmt.Errorf("phh: short action %q", s)
	}

	var a Action
	var cards string
	switch {
	case fields[0] == "d" && fields[1] == "dh" && len(fields) == 4:
		seat, err := parseSeat(fields[2])
		if err != nil {
			return Action{}, err
		}
		a = Action{Dealer: true, Seat: seat, Verb: "dh"}
		cards = fields[3]
	case fields[0] == "d" && fields[1] == "db" && len(fields) == 3:
		a = Action{Dealer: true, Seat: -1, Verb: "db"}
		cards = fields[2]
	case fields[1] == "sm" && len(fields) == 3:
		seat, err := parseSeat(fields[0])
		if err != nil {
			return Action{}, err
		}
		a = Action{Seat: seat, Verb: "sm"}
		cards = fields[2]
	default:
		return Action{}, fmt.Errorf("phh: unsupported action %q", s)
	}

	parsed, err := poker.ParseCards(cards)
	if err != nil {
		return Action{}, fmt.Errorf("phh: action %q: %w", s, err)
	}
	a.Cards = parsed
	return a, nil
}

func parseSeat(s string) (int, error) {
	if !strings.HasPrefix(s, "p") {
		return 0, fmt.Errorf("phh: bad player %q", s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("phh: bad player %q", s)
	}
	return n - 1, nil
}
