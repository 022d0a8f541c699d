package casting

import "fmt"

// DefaultThreshold is the satisfaction cutoff: players at or under this rank
// count as satisfied.
const DefaultThreshold = 3

// Report summarizes how well a solved assignment matched preferences.
type Report struct {
	TotalScore int     `json:"total_score"`
	MeanScore  float64 `json:"mean_score"`
	// RankCounts maps each received rank to the number of players who got
	// it; the Unranked key (0) counts players cast outside their list.
	RankCounts         map[int]int `json:"rank_counts"`
	FirstChoice        int         `json:"first_choice"`
	TopThree           int         `json:"top_three"`
	Threshold          int         `json:"threshold"`
	AllWithinThreshold bool        `json:"all_within_threshold"`
	Unsatisfied        []string    `json:"unsatisfied,omitempty"`
}

// Analyze derives rank-distribution and satisfaction statistics from
// assignment details. n is the character-set size; a threshold <= 0 means
// DefaultThreshold.
func Analyze(details []Detail, n, threshold int) (*Report, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	r := &Report{
		RankCounts:         make(map[int]int),
		Threshold:          threshold,
		AllWithinThreshold: true,
	}

	for _, d := range details {
		if d.Rank != Unranked && (d.Rank < 1 || d.Rank > n) {
			return nil, &InvalidAssignmentDetailError{Player: d.Player, Rank: d.Rank, Size: n}
		}
		r.TotalScore += d.Points
		r.RankCounts[d.Rank]++
		if d.Rank == 1 {
			r.FirstChoice++
		}
		if d.Rank >= 1 && d.Rank <= 3 {
			r.TopThree++
		}
		if d.Rank == Unranked {
			r.AllWithinThreshold = false
			r.Unsatisfied = append(r.Unsatisfied,
				fmt.Sprintf("%s got %s, which they never ranked", d.Player, d.Character))
		} else if d.Rank > threshold {
			r.AllWithinThreshold = false
			r.Unsatisfied = append(r.Unsatisfied,
				fmt.Sprintf("%s got rank %d choice (%s)", d.Player, d.Rank, d.Character))
		}
	}

	if len(details) > 0 {
		r.MeanScore = float64(r.TotalScore) / float64(len(details))
	}
	return r, nil
}
