package matching

import "sort"

// Rank orders by score, then match count, then average matched weight, all
// descending. Remaining ties keep input order.
func Rank(jobs []ScoredJob) {
	sort.SliceStable(jobs, func(i, j int) bool {
		a, b := jobs[i], jobs[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.MatchCount != b.MatchCount {
			return a.MatchCount > b.MatchCount
		}
		return a.AvgMatchedWeight > b.AvgMatchedWeight
	})
}
