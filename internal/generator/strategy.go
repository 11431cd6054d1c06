// Package generator selects, scores, diversifies and orders playlist
// tracks from a matching index, and produces deterministic seeded
// replacements for existing selections.
package generator

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Weights are the non-negative scoring factor weights. A missing weight
// means zero: the factor simply does not contribute.
type Weights struct {
	Genre     float64 `json:"genre"`
	Tempo     float64 `json:"tempo"`
	Mood      float64 `json:"mood"`
	Activity  float64 `json:"activity"`
	Duration  float64 `json:"duration"`
	Diversity float64 `json:"diversity"`
	Surprise  float64 `json:"surprise"`
}

// Diversity holds the hard repetition constraints. Nil limits and zero
// spacings mean "no constraint"; an explicit limit of 0 makes selection
// of any matching track impossible, which the engine treats as a
// normal (empty) outcome.
type Diversity struct {
	MaxPerArtist  *int `json:"maxTracksPerArtist"`
	ArtistSpacing int  `json:"artistSpacing"` // min positions between same-artist tracks
	GenreSpacing  int  `json:"genreSpacing"`  // min positions between same-genre tracks
	MaxPerAlbum   *int `json:"maxTracksPerAlbum"`
}

// Section is one named slice of the final ordering plan. Start and End
// are fractions of the total playlist length, 0 <= Start < End <= 1.
// Higher-intensity sections are filled with higher-energy tracks.
type Section struct {
	Name      string  `json:"name"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Intensity float64 `json:"intensity"`
}

// Strategy is the caller-supplied generation configuration. It is
// opaque to storage and immutable for the duration of one call; the
// engine validates nothing beyond applying the documented defaults.
type Strategy struct {
	Weights   Weights   `json:"weights"`
	Diversity Diversity `json:"diversity"`
	Sections  []Section `json:"sections"`
}

// ParseStrategy decodes a strategy document. Unknown fields are
// ignored; missing fields get the zero-weight / no-constraint defaults.
func ParseStrategy(data []byte) (Strategy, error) {
	var s Strategy
	if err := json.Unmarshal(data, &s); err != nil {
		return Strategy{}, fmt.Errorf("parse strategy: %w", err)
	}
	return s, nil
}

// DefaultStrategy returns a balanced strategy: genre-led scoring,
// loose artist variety, and a quiet-build-peak-wind-down arc.
func DefaultStrategy() Strategy {
	maxPerArtist := 2
	return Strategy{
		Weights: Weights{
			Genre:     1.0,
			Tempo:     0.6,
			Mood:      0.5,
			Activity:  0.5,
			Duration:  0.2,
			Diversity: 0.4,
			Surprise:  0.3,
		},
		Diversity: Diversity{
			MaxPerArtist:  &maxPerArtist,
			ArtistSpacing: 3,
			GenreSpacing:  0,
		},
		Sections: []Section{
			{Name: "warmup", Start: 0, End: 0.2, Intensity: 0.3},
			{Name: "build", Start: 0.2, End: 0.45, Intensity: 0.6},
			{Name: "peak", Start: 0.45, End: 0.75, Intensity: 1.0},
			{Name: "winddown", Start: 0.75, End: 1.0, Intensity: 0.2},
		},
	}
}
