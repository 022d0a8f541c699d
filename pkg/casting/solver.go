package casting

import "math"

// Detail records one player's outcome within a solved assignment.
type Detail struct {
	Player    string `json:"player"`
	Character string `json:"character"`
	Rank      int    `json:"rank"` // 1-indexed preference rank, Unranked (0) if the player never listed the character
	Points    int    `json:"points"`
}

// Result is a solved assignment: a bijection from players to characters, the
// summed score, and per-player details in player order.
type Result struct {
	Assignments map[string]string `json:"assignments"`
	TotalScore  int               `json:"total_score"`
	Details     []Detail          `json:"details"`
}

// SolveOptimal returns the assignment maximizing the total score, in O(n³)
// time via the Jonker-Volgenant shortest-augmenting-path variant of the
// Hungarian algorithm.
//
// Ties between equally optimal assignments break deterministically: rows are
// augmented in ascending player index and each search scans columns in
// ascending index, preferring the lowest character index among equal slacks.
// Two calls on the same matrix return identical results.
func SolveOptimal(m *Matrix) (*Result, error) {
	if err := m.checkSquare(); err != nil {
		return nil, err
	}
	return m.result(maxWeightMatch(m.Scores)), nil
}

// maxWeightMatch computes a maximum-weight perfect matching on a square
// score matrix, returning match[i] = column assigned to row i. The algorithm
// minimizes negated scores while maintaining row/column potentials u, v with
// u[i] + v[j] <= cost[i][j], equality on matched edges certifying optimality.
// Arrays are 1-indexed internally with column 0 as the virtual start of each
// augmenting path.
func maxWeightMatch(scores [][]int) []int {
	n := len(scores)
	const inf = math.MaxInt / 2

	u := make([]int, n+1)   // row potentials
	v := make([]int, n+1)   // column potentials
	p := make([]int, n+1)   // p[j] = row matched to column j
	way := make([]int, n+1) // way[j] = previous column on the augmenting path
	minv := make([]int, n+1)
	used := make([]bool, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		for j := 1; j <= n; j++ {
			minv[j] = inf
			used[j] = false
		}

		// Dijkstra-style search over the equality subgraph, adjusting
		// potentials by the minimum slack whenever the tree is stuck.
		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := 0

			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := -scores[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Flip matched edges along the discovered path.
		for j0 != 0 {
			p[j0] = p[way[j0]]
			j0 = way[j0]
		}
	}

	match := make([]int, n)
	for j := 1; j <= n; j++ {
		if p[j] > 0 {
			match[p[j]-1] = j - 1
		}
	}
	return match
}

// result materializes a matching (player index -> character index) into a
// Result with per-player details.
func (m *Matrix) result(match []int) *Result {
	res := &Result{
		Assignments: make(map[string]string, len(match)),
		Details:     make([]Detail, 0, len(match)),
	}
	for i, j := range match {
		d := Detail{
			Player:    m.Players[i],
			Character: m.Characters[j],
			Points:    m.Scores[i][j],
			Rank:      Unranked,
		}
		if m.Ranks != nil {
			d.Rank = m.Ranks[i][j]
		}
		res.Assignments[d.Player] = d.Character
		res.TotalScore += d.Points
		res.Details = append(res.Details, d)
	}
	return res
}
