package poker

// Holding is a player's two private cards. The zero value is empty.
type Holding struct {
	cards [HoleSize]Card
	n     int
}

// NewHolding returns a holding with the given cards already added.
func NewHolding(cards ...Card) (*Holding, error) {
	h := &Holding{}
	for _, card := range cards {
		if err := h.AddCard(card); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// AddCard gives the holding another card, failing once two are held.
func (h *Holding) AddCard(card Card) error {
	if h.n >= HoleSize {
		return ErrHoldingFull
	}
	h.cards[h.n] = card
	h.n++
	return nil
}

// Cards returns a snapshot of the held cards.
func (h *Holding) Cards() []Card {
	out := make([]Card, h.n)
	copy(out, h.cards[:h.n])
	return out
}

// Complete reports whether both hole cards have been dealt.
func (h *Holding) Complete() bool {
	return h.n == HoleSize
}

// Reset empties the holding.
func (h *Holding) Reset() {
	h.cards = [HoleSize]Card{}
	h.n = 0
}

func (h *Holding) String() string {
	return FormatCards(h.cards[:h.n])
}
