package poker

import (
	"fmt"
	"strings"
)

// RankingResult is the evaluated strength of a seven-card hand. Results are
// computed once per board and holding and are only compared afterwards.
type RankingResult struct {
	Category HandCategory
	// Tiebreak holds the category-defining ranks followed by kickers, most
	// significant first, at most five entries. A wheel straight starts at Five.
	Tiebreak []Rank
	// HighCard is the top card of the five-card hand (Five for the wheel).
	HighCard Rank
	// Cards are the five cards that make the hand, in Tiebreak order.
	Cards []Card
}

// Compare orders two results: 1 if a is stronger, -1 if b is stronger and
// 0 when they split the pot.
func Compare(a, b RankingResult) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}
	for i := 0; i < len(a.Tiebreak) && i < len(b.Tiebreak); i++ {
		if a.Tiebreak[i] > b.Tiebreak[i] {
			return 1
		}
		if a.Tiebreak[i] < b.Tiebreak[i] {
			return -1
		}
	}
	// Equal categories always produce equal-length vectors; this only
	// matters for hand-built results.
	switch {
	case len(a.Tiebreak) > len(b.Tiebreak):
		return 1
	case len(a.Tiebreak) < len(b.Tiebreak):
		return -1
	}
	return 0
}

// Compare compares r with other, see Compare.
func (r RankingResult) Compare(other RankingResult) int {
	return Compare(r, other)
}

// Beats reports whether r is strictly stronger than other.
func (r RankingResult) Beats(other RankingResult) bool {
	return Compare(r, other) > 0
}

// Ties reports whether r and other split the pot.
func (r RankingResult) Ties(other RankingResult) bool {
	return Compare(r, other) == 0
}

// String returns the description followed by the five cards.
func (r RankingResult) String() string {
	return fmt.Sprintf("%s [%s]", r.Describe(), FormatCards(r.Cards))
}

// Describe names the hand the way a dealer would announce it, e.g.
// "Full House, Tens full of Fours".
func (r RankingResult) Describe() string {
	if len(r.Tiebreak) == 0 {
		return r.Category.String()
	}
	top := r.Tiebreak[0]
	switch r.Category {
	case RoyalFlush:
		return r.Category.String()
	case StraightFlush, Straight, Flush:
		return fmt.Sprintf("%s, %s high", r.Category, top.Name())
	case FourOfAKind, ThreeOfAKind, OnePair:
		return fmt.Sprintf("%s, %s", r.Category, top.plural())
	case FullHouse:
		return fmt.Sprintf("%s, %s full of %s", r.Category, top.plural(), r.Tiebreak[1].plural())
	case TwoPair:
		return fmt.Sprintf("%s, %s and %s", r.Category, top.plural(), r.Tiebreak[1].plural())
	default:
		return fmt.Sprintf("%s, %s", r.Category, top.Name())
	}
}

// TiebreakString renders the tiebreak vector compactly, e.g. "K7A" for
// Kings and Sevens with an Ace kicker.
func (r RankingResult) TiebreakString() string {
	var b strings.Builder
	for _, rank := range r.Tiebreak {
		b.WriteString(rank.String())
	}
	return b.String()
}
