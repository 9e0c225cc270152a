package poker

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareTies(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		board   string
		holeA   string
		holeB   string
		want    int
		explain string
	}{
		{"board plays broadway", "AsKdQhJcTs", "2c3d", "4h5s", 0, "both play the board straight"},
		{"kickers beyond five ignored", "AsAdKhQc9s", "3c2d", "4h2s", 0, "fifth card is the board nine"},
		{"kicker decides", "AhAd9c7s3h", "Kc2d", "Qs2h", 1, "king kicker beats queen kicker"},
		{"second pair decides", "KsKh9c4d2s", "9d3c", "4c3d", 1, "kings and nines beat kings and fours"},
		{"higher straight", "9c8d7h2s3s", "TsJh", "6c5d", 1, "jack high beats nine high"},
		{"flush kickers", "AhJh8h4h2c", "3hKd", "2hQd", 1, "A-J-8-4-3 beats A-J-8-4-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustEvaluate(t, tt.board, tt.holeA)
			b := mustEvaluate(t, tt.board, tt.holeB)
			assert.Equal(t, tt.want, Compare(a, b), tt.explain)
			assert.Equal(t, -tt.want, Compare(b, a), "antisymmetry: %s", tt.explain)
			assert.Equal(t, tt.want == 0, a.Ties(b))
		})
	}
}

func randomHands(rng *rand.Rand, n int) [][]Card {
	hands := make([][]Card, n)
	deck := NewDeck(rng)
	for i := range hands {
		deck.Reset()
		cards, err := deck.DrawN(totalCards)
		if err != nil {
			panic(err)
		}
		hands[i] = cards
	}
	return hands
}

func TestCompareIsTotalPreorder(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(7, 11))
	hands := randomHands(rng, 60)

	results := make([]RankingResult, len(hands))
	for i, cards := range hands {
		r, err := Evaluate(cards[:5], cards[5:])
		require.NoError(t, err)
		results[i] = r
	}

	for _, a := range results {
		assert.Equal(t, 0, Compare(a, a), "reflexive")
		for _, b := range results {
			ab := Compare(a, b)
			require.Equal(t, -ab, Compare(b, a), "antisymmetric %s vs %s", a, b)
			for _, c := range results {
				if ab >= 0 && Compare(b, c) >= 0 {
					require.GreaterOrEqual(t, Compare(a, c), 0, "transitive %s >= %s >= %s", a, b, c)
				}
			}
		}
	}
}

func TestWinners(t *testing.T) {
	t.Parallel()
	board := "AhAd9c7s3h"
	results := []RankingResult{
		mustEvaluate(t, board, "Qs2h"), // aces, Q kicker
		mustEvaluate(t, board, "Kc2d"), // aces, K kicker
		mustEvaluate(t, board, "9d9h"), // full house
		mustEvaluate(t, board, "Ks2c"), // aces, K kicker
	}

	assert.Equal(t, []int{2}, Winners(results))
	assert.Equal(t, []int{2, 1, 3, 0}, Standings(results))

	// Without the full house, seats 1 and 3 split.
	split := []RankingResult{results[0], results[1], results[3]}
	assert.Equal(t, []int{1, 2}, Winners(split))

	assert.Nil(t, Winners(nil))
}

func TestDescribe(t *testing.T) {
	t.Parallel()
	tests := []struct {
		board, hole string
		want        string
	}{
		{"AsKh9c6d2s", "4c3h", "High Card, Ace"},
		{"JsJh9c6d2s", "Ad4c", "One Pair, Jacks"},
		{"KsKh7c7d3s", "2hQd", "Two Pair, Kings and Sevens"},
		{"6s6h6dKc9h", "2d7c", "Three of a Kind, Sixes"},
		{"AsJs8s4s2h", "3sKd", "Flush, Ace high"},
		{"7s7h7d7cKs", "2c3d", "Four of a Kind, Sevens"},
		{"7h6h5hKcKd", "9h8h", "Straight Flush, Nine high"},
	}
	for _, tt := range tests {
		got := mustEvaluate(t, tt.board, tt.hole).Describe()
		assert.Equal(t, tt.want, got)
	}
}
