package poker

import (
	"errors"
	"fmt"
)

var (
	// ErrDeckDepleted is returned when drawing from an empty deck.
	ErrDeckDepleted = errors.New("deck depleted")

	// ErrOutOfOrder is returned when community cards arrive out of the
	// flop, turn, river sequence.
	ErrOutOfOrder = errors.New("community cards received out of order")

	// ErrIncomplete is returned when the final community set is requested
	// before the river has been dealt.
	ErrIncomplete = errors.New("community cards incomplete")

	// ErrHoldingFull is returned when a third card is given to a holding.
	ErrHoldingFull = errors.New("holding already has two cards")
)

// ValidationKind identifies which caller contract a ValidationError reports.
type ValidationKind uint8

const (
	WrongCommunitySize ValidationKind = iota + 1
	WrongHoleSize
	WrongFlopSize
	DuplicateCard
)

func (k ValidationKind) String() string {
	switch k {
	case WrongCommunitySize:
		return "wrong community size"
	case WrongHoleSize:
		return "wrong hole size"
	case WrongFlopSize:
		return "wrong flop size"
	case DuplicateCard:
		return "duplicate card"
	default:
		return "unknown"
	}
}

// ValidationError reports a caller contract violation: wrong card counts or
// a card supplied twice. It is never recoverable by retrying the same input.
type ValidationError struct {
	Kind ValidationKind
	Want int  // expected card count for size errors
	Got  int  // supplied card count for size errors
	Card Card // offending card for DuplicateCard
}

func (e *ValidationError) Error() string {
	if e.Kind == DuplicateCard {
		return fmt.Sprintf("%s: %s", e.Kind, e.Card)
	}
	return fmt.Sprintf("%s: want %d cards, got %d", e.Kind, e.Want, e.Got)
}

// IsValidation reports whether err is a ValidationError of the given kind.
func IsValidation(err error, kind ValidationKind) bool {
	var verr *ValidationError
	return errors.As(err, &verr) && verr.Kind == kind
}

// CheckDistinct returns a DuplicateCard ValidationError naming the first card
// that appears more than once across all groups.
func CheckDistinct(groups ...[]Card) error {
	var seen [NumSuits][Ace + 1]bool
	for _, group := range groups {
		for _, card := range group {
			if !card.Valid() {
				return fmt.Errorf("invalid card %+v", card)
			}
			if seen[card.Suit][card.Rank] {
				return &ValidationError{Kind: DuplicateCard, Card: card}
			}
			seen[card.Suit][card.Rank] = true
		}
	}
	return nil
}
