package models

import "github.com/elrathor/casting-api-go/pkg/casting"

// CastOptions are the solve options carried alongside a preference document
// in a casting request. The document itself ("characters" and "players") is
// parsed order-preservingly by pkg/loader, not bound through these structs.
type CastOptions struct {
	Scoring string `json:"scoring" yaml:"scoring"`   // "linear" (default) or "weighted"
	Solver  string `json:"solver" yaml:"solver"`     // "optimal" (default) or "exhaustive"
	MaxRank int    `json:"max_rank" yaml:"max_rank"` // satisfaction threshold, 0 = top 3
}

// CastResponse is the result of a casting request.
type CastResponse struct {
	ID          string            `json:"id,omitempty"`
	Scoring     string            `json:"scoring"`
	Solver      string            `json:"solver"`
	Assignments map[string]string `json:"assignments"`
	TotalScore  int               `json:"total_score"`
	Details     []casting.Detail  `json:"details"`
	Report      *casting.Report   `json:"report"`
	Cached      bool              `json:"cached,omitempty"`
}

// ValidateResponse reports whether a preference document is structurally
// sound without solving it.
type ValidateResponse struct {
	Valid bool           `json:"valid"`
	Error string         `json:"error,omitempty"`
	Stats *DocumentStats `json:"stats,omitempty"`
}

// DocumentStats are the headline counts of a validated document.
type DocumentStats struct {
	CharacterCount int `json:"character_count"`
	PlayerCount    int `json:"player_count"`
}
