package generator

import "github.com/soniclab/curator/internal/matching"

// TempoSpec constrains requested tempo. Either a coarse bucket, an
// exact BPM target, or neither (no tempo preference).
type TempoSpec struct {
	Bucket    matching.TempoBucket `json:"bucket,omitempty"`
	TargetBPM float64              `json:"targetBpm,omitempty"`
}

// IsZero reports whether no tempo preference was expressed.
func (t TempoSpec) IsZero() bool {
	return t.Bucket == "" && t.TargetBPM <= 0
}

// Request is the caller's taste request. Length is a track count; a
// minutes-based target is converted upstream.
type Request struct {
	Genres     []string  `json:"genres"`
	Moods      []string  `json:"moods"`
	Activities []string  `json:"activities"`
	Tempo      TempoSpec `json:"tempo"`
	Length     int       `json:"length"`
	Surprise   float64   `json:"surprise"`  // 0..1
	AllGenres  bool      `json:"allGenres"` // unconstrained candidate pool
	Exclude    []int64   `json:"exclude,omitempty"`
}
