package poker

import (
	"fmt"
	"strings"
)

// Suit represents a card suit. Suits carry no ordering beyond equality.
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// NumSuits is the number of suits in a standard deck.
const NumSuits = 4

// String returns the suit symbol
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Letter returns the single-letter notation used by ParseCard (s, h, d, c).
func (s Suit) Letter() byte {
	switch s {
	case Spades:
		return 's'
	case Hearts:
		return 'h'
	case Diamonds:
		return 'd'
	case Clubs:
		return 'c'
	default:
		return '?'
	}
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s <= Clubs
}

// Rank represents a card rank. The underlying value is the rank's poker
// value, so ranks compare directly with < and >.
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// lowAce is the value an Ace takes inside the wheel (A-2-3-4-5). It only
// ever appears in the tiebreak vector of a wheel straight.
const lowAce Rank = 1

// NumRanks is the number of ranks in a standard deck.
const NumRanks = 13

// Value returns the integer value of the rank (2..14).
func (r Rank) Value() int {
	return int(r)
}

// Valid reports whether r is one of the thirteen card ranks.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// String returns the single-character rank notation
func (r Rank) String() string {
	switch r {
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace, lowAce:
		return "A"
	default:
		if r >= Two && r <= Nine {
			return string(rune('0' + r))
		}
		return "?"
	}
}

// Name returns the English name of the rank, e.g. "Queen".
func (r Rank) Name() string {
	names := [...]string{
		"", "Ace", "Two", "Three", "Four", "Five", "Six", "Seven",
		"Eight", "Nine", "Ten", "Jack", "Queen", "King", "Ace",
	}
	if int(r) < len(names) && r > 0 {
		return names[r]
	}
	return "Unknown"
}

// plural returns the plural rank name used in hand descriptions ("Sixes").
func (r Rank) plural() string {
	if r == Six {
		return "Sixes"
	}
	return r.Name() + "s"
}

// Card is an immutable playing card. Cards are comparable; two cards are
// equal when both suit and rank match.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Short returns the two-character ASCII notation accepted by ParseCard (e.g., "As").
func (c Card) Short() string {
	return c.Rank.String() + string(c.Suit.Letter())
}

// Glyph returns the Unicode playing card character for c (U+1F0A1 is the
// ace of spades). The Knight codepoints are skipped, so Queen and King sit
// one position above Jack+1.
func (c Card) Glyph() rune {
	if !c.Valid() {
		return '?'
	}
	base := [...]rune{
		Spades:   0x1F0A0,
		Hearts:   0x1F0B0,
		Diamonds: 0x1F0C0,
		Clubs:    0x1F0D0,
	}[c.Suit]

	var offset rune
	switch c.Rank {
	case Ace:
		offset = 1
	case Queen, King:
		offset = rune(c.Rank) + 1
	default:
		offset = rune(c.Rank)
	}
	return base + offset
}

// Valid reports whether c has a real suit and rank.
func (c Card) Valid() bool {
	return c.Suit.Valid() && c.Rank.Valid()
}

// ParseCard parses two-character notation: rank (A K Q J T 9..2) followed by
// suit (s h d c). Both are case-insensitive.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q: want 2 characters, got %d", s, len(s))
	}
	rank, err := parseRank(s[0])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", s, err)
	}
	suit, err := parseSuit(s[1])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", s, err)
	}
	return NewCard(suit, rank), nil
}

// ParseCards parses a run of card notation such as "AsKd Qh". Whitespace and
// commas between cards are ignored.
func ParseCards(s string) ([]Card, error) {
	s = strings.NewReplacer(" ", "", ",", "", "\t", "").Replace(s)
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length: %d (must be even)", len(s))
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

// FormatCards joins the String form of each card with spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}

// ShortCards concatenates the Short form of each card ("AsKd").
func ShortCards(cards []Card) string {
	var b strings.Builder
	for _, card := range cards {
		b.WriteString(card.Short())
	}
	return b.String()
}

func parseRank(c byte) (Rank, error) {
	switch c {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	}
	if c >= '2' && c <= '9' {
		return Rank(c - '0'), nil
	}
	return 0, fmt.Errorf("unknown rank '%c'", c)
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 's', 'S':
		return Spades, nil
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("unknown suit '%c'", c)
	}
}
