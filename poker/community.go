package poker

import "fmt"

// Stage is how far the board has been dealt.
type Stage uint8

const (
	Preflop Stage = iota
	FlopDealt
	TurnDealt
	RiverDealt
)

func (s Stage) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case FlopDealt:
		return "flop"
	case TurnDealt:
		return "turn"
	case RiverDealt:
		return "river"
	default:
		return "unknown"
	}
}

const flopSize = 3

// CommunityCards enforces the staged reveal of the board: three cards on
// the flop, then one on the turn, then one on the river. The zero value is
// an empty board ready for the flop.
type CommunityCards struct {
	cards [CommunitySize]Card
	n     int
}

// ReceiveFlop places the three flop cards. It is only valid on an empty board.
func (c *CommunityCards) ReceiveFlop(flop []Card) error {
	if c.n != 0 {
		return fmt.Errorf("%w: flop dealt at %s", ErrOutOfOrder, c.Stage())
	}
	if len(flop) != flopSize {
		return &ValidationError{Kind: WrongFlopSize, Want: flopSize, Got: len(flop)}
	}
	c.n = copy(c.cards[:], flop)
	return nil
}

// ReceiveTurn places the fourth board card. It is only valid after the flop.
func (c *CommunityCards) ReceiveTurn(card Card) error {
	return c.receiveSingle(card, FlopDealt)
}

// ReceiveRiver places the fifth board card. It is only valid after the turn.
func (c *CommunityCards) ReceiveRiver(card Card) error {
	return c.receiveSingle(card, TurnDealt)
}

func (c *CommunityCards) receiveSingle(card Card, want Stage) error {
	if c.Stage() != want {
		return fmt.Errorf("%w: expected %s, board is at %s", ErrOutOfOrder, want, c.Stage())
	}
	c.cards[c.n] = card
	c.n++
	return nil
}

// Stage reports the last completed street.
func (c *CommunityCards) Stage() Stage {
	switch c.n {
	case 0:
		return Preflop
	case flopSize:
		return FlopDealt
	case flopSize + 1:
		return TurnDealt
	default:
		return RiverDealt
	}
}

// Cards returns a snapshot of the cards dealt so far.
func (c *CommunityCards) Cards() []Card {
	out := make([]Card, c.n)
	copy(out, c.cards[:c.n])
	return out
}

// FinalSet returns the complete five-card board, or ErrIncomplete before the river.
func (c *CommunityCards) FinalSet() ([]Card, error) {
	if c.n != CommunitySize {
		return nil, fmt.Errorf("%w: board is at %s", ErrIncomplete, c.Stage())
	}
	return c.Cards(), nil
}

// Reset clears the board for the next round.
func (c *CommunityCards) Reset() {
	c.cards = [CommunitySize]Card{}
	c.n = 0
}

func (c *CommunityCards) String() string {
	return FormatCards(c.cards[:c.n])
}
