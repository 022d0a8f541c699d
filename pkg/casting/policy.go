package casting

import "fmt"

// Unranked marks a character absent from a player's preference list. It is
// valid input to every scoring policy and always scores zero.
const Unranked = 0

// Policy converts a 1-indexed preference rank into points.
type Policy int

const (
	// Linear awards n points for a first choice down to 1 for an nth choice.
	Linear Policy = iota
	// Weighted heavily favors top choices: 20/15/10/5/3 points for ranks
	// 1-5, then 1 point for anything below.
	Weighted
)

var weightedPoints = [5]int{20, 15, 10, 5, 3}

// ParsePolicy maps the wire names "linear" and "weighted" to a Policy. The
// empty string defaults to Linear.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "linear":
		return Linear, nil
	case "weighted":
		return Weighted, nil
	}
	return Linear, fmt.Errorf("scoring must be %q or %q, got %q", "linear", "weighted", s)
}

func (p Policy) String() string {
	if p == Weighted {
		return "weighted"
	}
	return "linear"
}

// Score returns the points a player earns for receiving their rank-th choice
// out of n characters. Unranked scores zero under both policies.
func (p Policy) Score(rank, n int) (int, error) {
	if rank == Unranked {
		return 0, nil
	}
	if rank < 1 {
		return 0, &InvalidRankError{Rank: rank, Size: n}
	}
	switch p {
	case Weighted:
		// Independent of n.
		if rank <= len(weightedPoints) {
			return weightedPoints[rank-1], nil
		}
		return 1, nil
	default:
		if rank > n {
			return 0, &InvalidRankError{Rank: rank, Size: n}
		}
		return n - rank + 1, nil
	}
}
