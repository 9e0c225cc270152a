package poker

import "slices"

// Standings returns the indices of results ordered strongest first. Results
// that tie keep their input order.
func Standings(results []RankingResult) []int {
	order := make([]int, len(results))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return Compare(results[b], results[a])
	})
	return order
}

// Winners returns the indices of every result in the strongest equivalence
// class, in ascending index order. More than one index means a split pot.
// An empty input yields no winners.
func Winners(results []RankingResult) []int {
	if len(results) == 0 {
		return nil
	}
	order := Standings(results)
	best := results[order[0]]

	winners := []int{order[0]}
	for _, idx := range order[1:] {
		if !results[idx].Ties(best) {
			break
		}
		winners = append(winners, idx)
	}
	slices.Sort(winners)
	return winners
}
