package casting

// DefaultExhaustiveLimit caps exhaustive solves at 8 players: 8! = 40320
// permutations is the practical enumeration ceiling for interactive use.
const DefaultExhaustiveLimit = 8

// SolveExhaustive finds the maximum-score assignment by enumerating every
// permutation of characters over players in lexicographic order of character
// indices; among equal optima the first permutation encountered wins, so
// results are reproducible. A limit <= 0 means DefaultExhaustiveLimit. The
// size check happens before any enumeration starts.
//
// SolveOptimal gives the same total in O(n³); this solver exists as an
// independent cross-check and for callers who want a second opinion on small
// groups.
func SolveExhaustive(m *Matrix, limit int) (*Result, error) {
	if err := m.checkSquare(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultExhaustiveLimit
	}
	n := m.Size()
	if n > limit {
		return nil, &InstanceTooLargeError{Size: n, Limit: limit}
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	best := make([]int, n)
	bestScore := -1

	for {
		score := 0
		for i, j := range perm {
			score += m.Scores[i][j]
		}
		if score > bestScore {
			bestScore = score
			copy(best, perm)
		}
		if !nextPermutation(perm) {
			break
		}
	}

	return m.result(best), nil
}

// nextPermutation advances p to its lexicographic successor in place,
// returning false once p is the final (descending) permutation.
func nextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}
