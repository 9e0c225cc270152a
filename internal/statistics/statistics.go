// Package statistics tallies showdown results across many dealt rounds.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/showdown/internal/round"
	"github.com/lox/showdown/poker"
)

// SeatStats tracks one seat's results. A round's pot share is 1 for an
// outright win, 1/n for an n-way split and 0 otherwise.
type SeatStats struct {
	Name    string
	Rounds  int
	Wins    int // outright
	Splits  int
	SumPot  float64
	SumPot2 float64   // sum of squares for variance calculation
	Values  []float64 // every share, for median/percentile calculation

	Categories [len(poker.Categories)]int
}

// Mean returns the average pot share per round.
func (s *SeatStats) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumPot / float64(s.Rounds)
}

// Variance returns the sample variance of the pot shares.
func (s *SeatStats) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumPot2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of the pot shares.
func (s *SeatStats) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *SeatStats) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *SeatStats) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median pot share.
func (s *SeatStats) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the share at the given percentile (0.0 to 1.0),
// interpolating between neighbouring values.
func (s *SeatStats) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// CategoryRate is the fraction of rounds this seat showed the category.
func (s *SeatStats) CategoryRate(c poker.HandCategory) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Categories[c]) / float64(s.Rounds)
}

// Statistics tracks every seat of a fixed table across rounds.
type Statistics struct {
	Rounds      int
	SplitRounds int
	Seats       []SeatStats
}

// New returns an empty tally for the named seats, in seat order.
func New(names []string) *Statistics {
	seats := make([]SeatStats, len(names))
	for i, name := range names {
		seats[i].Name = name
	}
	return &Statistics{Seats: seats}
}

// Add incorporates a completed round. The round must have been played at
// the same table the tally was created for.
func (s *Statistics) Add(r *round.Result) error {
	if len(r.Seats) != len(s.Seats) {
		return fmt.Errorf("round %s has %d seats, tally has %d", r.ID, len(r.Seats), len(s.Seats))
	}
	for i, seat := range r.Seats {
		if seat.Name != s.Seats[i].Name {
			return fmt.Errorf("round %s seat %d is %q, tally expects %q", r.ID, i, seat.Name, s.Seats[i].Name)
		}
	}
	if len(r.Winners) == 0 {
		return fmt.Errorf("round %s has no winners", r.ID)
	}

	s.Rounds++
	if r.Split() {
		s.SplitRounds++
	}

	share := make([]float64, len(r.Seats))
	for _, idx := range r.Winners {
		share[idx] = 1 / float64(len(r.Winners))
	}

	for i, seat := range r.Seats {
		st := &s.Seats[i]
		st.Rounds++
		st.SumPot += share[i]
		st.SumPot2 += share[i] * share[i]
		st.Values = append(st.Values, share[i])
		st.Categories[seat.Ranking.Category]++

		if share[i] == 1 {
			st.Wins++
		} else if share[i] > 0 {
			st.Splits++
		}
	}
	return nil
}

// IsLedgerBalanced checks that the shares handed out add up to one pot per round.
func (s *Statistics) IsLedgerBalanced() bool {
	var total float64
	for i := range s.Seats {
		total += s.Seats[i].SumPot
	}
	return math.Abs(total-float64(s.Rounds)) <= 1e-6
}

// Validate performs consistency checks over the tally.
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: shares do not sum to %d rounds", s.Rounds)
	}

	outright := 0
	for i := range s.Seats {
		st := &s.Seats[i]
		if st.Rounds != s.Rounds {
			return fmt.Errorf("seat %q played %d rounds, table played %d", st.Name, st.Rounds, s.Rounds)
		}
		if len(st.Values) != st.Rounds {
			return fmt.Errorf("seat %q values length (%d) does not match rounds (%d)",
				st.Name, len(st.Values), st.Rounds)
		}
		outright += st.Wins
	}
	if outright+s.SplitRounds != s.Rounds {
		return fmt.Errorf("outright wins (%d) plus splits (%d) do not match rounds (%d)",
			outright, s.SplitRounds, s.Rounds)
	}
	return nil
}
