package casting

// PlayerPrefs is one player's ranked character list, most preferred first.
// The list may omit characters (they score zero for that player) but may not
// repeat one or name one outside the character set.
type PlayerPrefs struct {
	Name   string   `json:"name"`
	Ranked []string `json:"ranked"`
}

// Matrix is the dense player-by-character score table for one solve. Rows
// follow player insertion order, columns the character-set order. Scores and
// Ranks are parallel: Ranks[i][j] is the 1-indexed rank behind Scores[i][j],
// or Unranked when player i did not list character j.
//
// A Matrix is built once and never mutated; solvers treat it as read-only.
type Matrix struct {
	Players    []string
	Characters []string
	Scores     [][]int
	Ranks      [][]int
}

// BuildMatrix validates a preference set and scores every player-character
// pair under the given policy. The number of players must equal the number
// of characters.
func BuildMatrix(characters []string, prefs []PlayerPrefs, policy Policy) (*Matrix, error) {
	n := len(characters)
	colIndex := make(map[string]int, n)
	for j, c := range characters {
		if _, dup := colIndex[c]; dup {
			return nil, &DuplicateCharacterError{Character: c}
		}
		colIndex[c] = j
	}

	if len(prefs) != n {
		return nil, &PlayerCountMismatchError{Want: n, Got: len(prefs)}
	}

	m := &Matrix{
		Players:    make([]string, n),
		Characters: append([]string(nil), characters...),
		Scores:     make([][]int, n),
		Ranks:      make([][]int, n),
	}

	for i, p := range prefs {
		m.Players[i] = p.Name
		m.Scores[i] = make([]int, n)
		m.Ranks[i] = make([]int, n)

		seen := make(map[string]bool, len(p.Ranked))
		for pos, name := range p.Ranked {
			j, ok := colIndex[name]
			if !ok {
				return nil, &UnknownCharacterError{Player: p.Name, Character: name}
			}
			if seen[name] {
				return nil, &DuplicateCharacterError{Player: p.Name, Character: name}
			}
			seen[name] = true

			rank := pos + 1
			pts, err := policy.Score(rank, n)
			if err != nil {
				return nil, err
			}
			m.Scores[i][j] = pts
			m.Ranks[i][j] = rank
		}
	}

	return m, nil
}

// Size returns the number of players (and characters) in the matrix.
func (m *Matrix) Size() int {
	return len(m.Players)
}

// checkSquare verifies the score table matches the declared player and
// character counts. Solvers call this before touching any scores.
func (m *Matrix) checkSquare() error {
	n := len(m.Players)
	if len(m.Characters) != n || len(m.Scores) != n {
		return &DimensionMismatchError{
			Players:    n,
			Characters: len(m.Characters),
			Rows:       len(m.Scores),
			Cols:       len(m.Characters),
		}
	}
	for _, row := range m.Scores {
		if len(row) != n {
			return &DimensionMismatchError{Players: n, Characters: n, Rows: n, Cols: len(row)}
		}
	}
	return nil
}
