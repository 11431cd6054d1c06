package matching

import "math"

// TempoBucket is the coarse BPM classification used for filtering and
// scoring.
type TempoBucket string

const (
	TempoSlow    TempoBucket = "slow"
	TempoMedium  TempoBucket = "medium"
	TempoFast    TempoBucket = "fast"
	TempoUnknown TempoBucket = "unknown"
)

// DurationBucket is the coarse track-length classification.
type DurationBucket string

const (
	DurationShort   DurationBucket = "short"
	DurationMedium  DurationBucket = "medium"
	DurationLong    DurationBucket = "long"
	DurationUnknown DurationBucket = "unknown"
)

// Tunables holds the bucket boundaries. They are constants in spirit
// but kept in one table so hosts can override them from config; they
// must stay fixed for the lifetime of one index.
type Tunables struct {
	TempoSlowMaxBPM     float64 // below this is slow
	TempoFastMinBPM     float64 // at or above this is fast
	DurationShortMaxSec float64 // below this is short
	DurationLongMinSec  float64 // at or above this is long
}

// DefaultTunables returns the standard bucket boundaries: slow < 90,
// medium 90-139, fast >= 140; short < 180 s, medium 180-299 s,
// long >= 300 s.
func DefaultTunables() Tunables {
	return Tunables{
		TempoSlowMaxBPM:     90,
		TempoFastMinBPM:     140,
		DurationShortMaxSec: 180,
		DurationLongMinSec:  300,
	}
}

// TempoBucketFor classifies a BPM value. Missing (<= 0) or NaN values
// are unknown.
func (t Tunables) TempoBucketFor(bpm float64) TempoBucket {
	switch {
	case bpm <= 0 || math.IsNaN(bpm):
		return TempoUnknown
	case bpm < t.TempoSlowMaxBPM:
		return TempoSlow
	case bpm < t.TempoFastMinBPM:
		return TempoMedium
	default:
		return TempoFast
	}
}

// DurationBucketFor classifies a duration in seconds.
func (t Tunables) DurationBucketFor(sec float64) DurationBucket {
	switch {
	case sec <= 0 || math.IsNaN(sec):
		return DurationUnknown
	case sec < t.DurationShortMaxSec:
		return DurationShort
	case sec < t.DurationLongMinSec:
		return DurationMedium
	default:
		return DurationLong
	}
}

// TempoBucketCenter returns a representative BPM for a bucket, used by
// distance-based tempo scoring when a track has no BPM tag.
func (t Tunables) TempoBucketCenter(b TempoBucket) float64 {
	switch b {
	case TempoSlow:
		return t.TempoSlowMaxBPM * 0.75
	case TempoMedium:
		return (t.TempoSlowMaxBPM + t.TempoFastMinBPM) / 2
	case TempoFast:
		return t.TempoFastMinBPM + 20
	default:
		return 0
	}
}
