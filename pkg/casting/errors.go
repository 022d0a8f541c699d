package casting

import "fmt"

// All errors in this package are validation errors raised before any solving
// work begins. They carry the offending player/character/index so callers can
// produce an actionable message.

// PlayerCountMismatchError reports a preference set whose player count does
// not equal the character count.
type PlayerCountMismatchError struct {
	Want int
	Got  int
}

func (e *PlayerCountMismatchError) Error() string {
	return fmt.Sprintf("need exactly %d players to fill %d characters, got %d", e.Want, e.Want, e.Got)
}

// UnknownCharacterError reports a preference list naming a character outside
// the character set.
type UnknownCharacterError struct {
	Player    string
	Character string
}

func (e *UnknownCharacterError) Error() string {
	return fmt.Sprintf("player %q ranked unknown character %q", e.Player, e.Character)
}

// DuplicateCharacterError reports a repeated character, either within one
// player's preference list or within the character set itself (Player empty).
type DuplicateCharacterError struct {
	Player    string
	Character string
}

func (e *DuplicateCharacterError) Error() string {
	if e.Player == "" {
		return fmt.Sprintf("character set contains %q more than once", e.Character)
	}
	return fmt.Sprintf("player %q ranked character %q more than once", e.Player, e.Character)
}

// DimensionMismatchError reports a score matrix that is not square against
// its declared player and character counts.
type DimensionMismatchError struct {
	Players    int
	Characters int
	Rows       int
	Cols       int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("score matrix must be %dx%d (players x characters), got %dx%d",
		e.Players, e.Characters, e.Rows, e.Cols)
}

// InstanceTooLargeError reports an exhaustive solve over the enumeration
// ceiling.
type InstanceTooLargeError struct {
	Size  int
	Limit int
}

func (e *InstanceTooLargeError) Error() string {
	return fmt.Sprintf("exhaustive solve of %d players exceeds the limit of %d (use the optimal solver)", e.Size, e.Limit)
}

// InvalidRankError reports a rank outside [1, n] handed to a scoring policy.
type InvalidRankError struct {
	Rank int
	Size int
}

func (e *InvalidRankError) Error() string {
	return fmt.Sprintf("rank %d is invalid for a character set of size %d", e.Rank, e.Size)
}

// InvalidAssignmentDetailError reports an assignment detail whose rank is
// neither Unranked nor within [1, n].
type InvalidAssignmentDetailError struct {
	Player string
	Rank   int
	Size   int
}

func (e *InvalidAssignmentDetailError) Error() string {
	return fmt.Sprintf("detail for player %q has rank %d, want 1..%d or unranked", e.Player, e.Rank, e.Size)
}
