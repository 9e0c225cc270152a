package phh

import "time"

// HandHistory represents a single showdown round encoded in PHH format.
// Fields prefixed with an underscore are user-defined PHH extensions.
type HandHistory struct {
	Variant           string   `toml:"variant"`
	Table             string   `toml:"table,omitempty"`
	SeatCount         int      `toml:"seat_count,omitempty"`
	Seats             []int    `toml:"seats,omitempty"`
	Antes             []int    `toml:"antes"`
	BlindsOrStraddles []int    `toml:"blinds_or_straddles"`
	MinBet            int      `toml:"min_bet"`
	StartingStacks    []int    `toml:"starting_stacks"`
	FinishingStacks   []int    `toml:"finishing_stacks,omitempty"`
	Actions           []string `toml:"actions"`
	Players           []string `toml:"players,omitempty"`
	HandID            string   `toml:"hand"`
	Time              string   `toml:"time,omitempty"`
	TimeZone          string   `toml:"time_zone,omitempty"`
	Day               int      `toml:"day,omitempty"`
	Month             int      `toml:"month,omitempty"`
	Year              int      `toml:"year,omitempty"`

	Rankings []string `toml:"_rankings,omitempty"`
	Winners  []string `toml:"_winners,omitempty"`
}

// New returns a no-limit hold'em history with no forced bets for the given
// players, stamped with ts in UTC.
func New(handID string, ts time.Time, players []string, stacks []int) *HandHistory {
	n := len(players)
	seats := make([]int, n)
	for i := range seats {
		seats[i] = i + 1
	}
	ts = ts.UTC()
	return &HandHistory{
		Variant:           "NT",
		SeatCount:         n,
		Seats:             seats,
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            1,
		StartingStacks:    append([]int(nil), stacks...),
		FinishingStacks:   append([]int(nil), stacks...),
		Players:           append([]string(nil), players...),
		HandID:            handID,
		Time:              ts.Format(time.TimeOnly),
		TimeZone:          "UTC",
		Day:               ts.Day(),
		Month:             int(ts.Month()),
		Year:              ts.Year(),
	}
}
