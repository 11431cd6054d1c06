package generator

import "github.com/soniclab/curator/internal/catalog"

// Factors are the per-factor scores behind a selection's composite
// score, each already multiplied by its strategy weight.
type Factors struct {
	Genre     float64 `json:"genre"`
	Tempo     float64 `json:"tempo"`
	Mood      float64 `json:"mood"`
	Activity  float64 `json:"activity"`
	Duration  float64 `json:"duration"`
	Diversity float64 `json:"diversity"`
	Surprise  float64 `json:"surprise"`
}

// Sum returns the composite score.
func (f Factors) Sum() float64 {
	return f.Genre + f.Tempo + f.Mood + f.Activity + f.Duration + f.Diversity + f.Surprise
}

// Selection is one chosen track with its scoring breakdown. Selections
// are immutable once created; a changed selection is a new record.
type Selection struct {
	Track   catalog.Track `json:"track"`
	Score   float64       `json:"score"`
	Factors Factors       `json:"factors"`
	Reasons []string      `json:"reasons,omitempty"`
}
