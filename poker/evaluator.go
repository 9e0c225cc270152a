package poker

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/log"
)

const (
	// CommunitySize is the number of shared board cards at showdown.
	CommunitySize = 5
	// HoleSize is the number of private cards per player.
	HoleSize = 2
	// HandSize is the number of cards in a made poker hand.
	HandSize = 5

	totalCards = CommunitySize + HoleSize
)

// Evaluator finds the best five-card hand out of a board and a holding.
// It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	logger *log.Logger
}

// NewEvaluator returns an evaluator that reports the rank groups it detects
// at debug level. A nil logger disables diagnostics.
func NewEvaluator(logger *log.Logger) *Evaluator {
	return &Evaluator{logger: logger}
}

var silentEvaluator = &Evaluator{}

// Evaluate ranks the best hand made from five community cards and two hole
// cards. Card distinctness is the caller's invariant and is not checked.
func Evaluate(community, hole []Card) (RankingResult, error) {
	return silentEvaluator.Evaluate(community, hole)
}

// EvaluateStrict is Evaluate plus a duplicate-card check, for input that did
// not come from a Deck.
func EvaluateStrict(community, hole []Card) (RankingResult, error) {
	return silentEvaluator.EvaluateStrict(community, hole)
}

// Evaluate ranks the best hand made from five community cards and two hole cards.
func (e *Evaluator) Evaluate(community, hole []Card) (RankingResult, error) {
	if err := checkSizes(community, hole); err != nil {
		return RankingResult{}, err
	}

	var cards [totalCards]Card
	copy(cards[:CommunitySize], community)
	copy(cards[CommunitySize:], hole)

	s := newScan(cards)
	result := s.rank()

	if e.logger != nil {
		e.logger.Debug("evaluated hand",
			"cards", FormatCards(s.sorted[:]),
			"quads", s.quads,
			"trips", s.trips,
			"pairs", s.pairs,
			"category", result.Category,
			"tiebreak", result.TiebreakString())
	}
	return result, nil
}

// EvaluateStrict is Evaluate plus a duplicate-card check.
func (e *Evaluator) EvaluateStrict(community, hole []Card) (RankingResult, error) {
	if err := checkSizes(community, hole); err != nil {
		return RankingResult{}, err
	}
	if err := CheckDistinct(community, hole); err != nil {
		return RankingResult{}, err
	}
	return e.Evaluate(community, hole)
}

func checkSizes(community, hole []Card) error {
	if len(community) != CommunitySize {
		return &ValidationError{Kind: WrongCommunitySize, Want: CommunitySize, Got: len(community)}
	}
	if len(hole) != HoleSize {
		return &ValidationError{Kind: WrongHoleSize, Want: HoleSize, Got: len(hole)}
	}
	return nil
}

// scan is the grouped view of seven cards. Groups are keyed by rank and by
// suit so detection never depends on the order cards arrived in.
type scan struct {
	sorted [totalCards]Card // descending rank, suit order breaks ties
	byRank [Ace + 1][]Card
	bySuit [NumSuits][]Card

	quads []Rank // descending
	trips []Rank // descending
	pairs []Rank // descending
}

func newScan(cards [totalCards]Card) *scan {
	s := &scan{sorted: cards}
	slices.SortFunc(s.sorted[:], func(a, b Card) int {
		if a.Rank != b.Rank {
			return cmp.Compare(b.Rank, a.Rank)
		}
		return cmp.Compare(a.Suit, b.Suit)
	})

	for _, card := range s.sorted {
		s.byRank[card.Rank] = append(s.byRank[card.Rank], card)
		s.bySuit[card.Suit] = append(s.bySuit[card.Suit], card)
	}

	for rank := Ace; rank >= Two; rank-- {
		switch len(s.byRank[rank]) {
		case 4:
			s.quads = append(s.quads, rank)
		case 3:
			s.trips = append(s.trips, rank)
		case 2:
			s.pairs = append(s.pairs, rank)
		}
	}
	return s
}

// rank resolves categories from strongest to weakest; the first match wins.
func (s *scan) rank() RankingResult {
	flush := s.flushCards()

	if flush != nil {
		if run, ok := straightRun(flush); ok {
			if run[0].Rank == Ace {
				return straightResult(RoyalFlush, run)
			}
			return straightResult(StraightFlush, run)
		}
	}

	if len(s.quads) > 0 {
		quad := s.quads[0]
		return s.grouped(FourOfAKind, []Rank{quad}, []int{4}, 1)
	}

	if len(s.trips) > 0 {
		if pair, ok := s.fullHousePair(); ok {
			return s.grouped(FullHouse, []Rank{s.trips[0], pair}, []int{3, 2}, 0)
		}
	}

	if flush != nil {
		return ordered(Flush, flush[:HandSize])
	}

	if run, ok := straightRun(s.sorted[:]); ok {
		return straightResult(Straight, run)
	}

	if len(s.trips) > 0 {
		return s.grouped(ThreeOfAKind, []Rank{s.trips[0]}, []int{3}, 2)
	}

	if len(s.pairs) >= 2 {
		return s.grouped(TwoPair, []Rank{s.pairs[0], s.pairs[1]}, []int{2, 2}, 1)
	}

	if len(s.pairs) == 1 {
		return s.grouped(OnePair, []Rank{s.pairs[0]}, []int{2}, 3)
	}

	return ordered(HighCard, s.sorted[:HandSize])
}

// flushCards returns the cards of the suit holding five or more, highest
// first. Seven cards can hold at most one such suit.
func (s *scan) flushCards() []Card {
	for _, cards := range s.bySuit {
		if len(cards) >= HandSize {
			return cards
		}
	}
	return nil
}

// fullHousePair picks the pair half of a full house: a second trip counts
// as a pair, and the higher of the candidates wins.
func (s *scan) fullHousePair() (Rank, bool) {
	var best Rank
	if len(s.trips) > 1 {
		best = s.trips[1]
	}
	if len(s.pairs) > 0 && s.pairs[0] > best {
		best = s.pairs[0]
	}
	return best, best != 0
}

// grouped builds a multiplicity result: the defining groups, in order,
// followed by the best kickers from the remaining ranks.
func (s *scan) grouped(category HandCategory, ranks []Rank, sizes []int, kickers int) RankingResult {
	cards := make([]Card, 0, HandSize)
	tiebreak := make([]Rank, 0, len(ranks)+kickers)

	used := make(map[Rank]bool, len(ranks))
	for i, rank := range ranks {
		cards = append(cards, s.byRank[rank][:sizes[i]]...)
		tiebreak = append(tiebreak, rank)
		used[rank] = true
	}

	for _, card := range s.sorted {
		if kickers == 0 {
			break
		}
		if used[card.Rank] {
			continue
		}
		cards = append(cards, card)
		tiebreak = append(tiebreak, card.Rank)
		kickers--
	}

	return RankingResult{
		Category: category,
		Tiebreak: tiebreak,
		HighCard: highest(cards),
		Cards:    cards,
	}
}

// ordered builds a result where all five cards count in descending order.
func ordered(category HandCategory, cards []Card) RankingResult {
	hand := slices.Clone(cards)
	tiebreak := make([]Rank, len(hand))
	for i, card := range hand {
		tiebreak[i] = card.Rank
	}
	return RankingResult{
		Category: category,
		Tiebreak: tiebreak,
		HighCard: hand[0].Rank,
		Cards:    hand,
	}
}

// straightResult builds a straight-type result. The wheel's Ace is recorded
// as a low Ace so the vector stays descending and Five leads.
func straightResult(category HandCategory, run []Card) RankingResult {
	tiebreak := make([]Rank, len(run))
	top := run[0].Rank
	for i, card := range run {
		tiebreak[i] = card.Rank
	}
	if top == Five {
		tiebreak[len(tiebreak)-1] = lowAce
	}
	return RankingResult{
		Category: category,
		Tiebreak: tiebreak,
		HighCard: top,
		Cards:    run,
	}
}

// straightRun finds the highest five-card straight among cards, which must
// be sorted by descending rank. Ace also plays low for the wheel, whose top
// card is Five. The returned cards run from the top card down.
func straightRun(cards []Card) ([]Card, bool) {
	var present [Ace + 1]bool
	var pick [Ace + 1]Card
	for _, card := range cards {
		if !present[card.Rank] {
			present[card.Rank] = true
			pick[card.Rank] = card
		}
	}

	for top := Ace; top >= Six; top-- {
		if present[top] && present[top-1] && present[top-2] && present[top-3] && present[top-4] {
			return []Card{pick[top], pick[top-1], pick[top-2], pick[top-3], pick[top-4]}, true
		}
	}

	if present[Five] && present[Four] && present[Three] && present[Two] && present[Ace] {
		return []Card{pick[Five], pick[Four], pick[Three], pick[Two], pick[Ace]}, true
	}
	return nil, false
}

func highest(cards []Card) Rank {
	var top Rank
	for _, card := range cards {
		top = max(top, card.Rank)
	}
	return top
}
