package generator

import (
	"fmt"
	"math"

	"github.com/soniclab/curator/internal/catalog"
	"github.com/soniclab/curator/internal/matching"
)

// Scoring curve constants. Tunable in one place; see DESIGN.md for the
// choices behind them.
const (
	// BPM distance at which tempo closeness reaches zero.
	tempoFalloffBPM = 60.0
	// Tempo score for a track in the bucket adjacent to the requested
	// one, and for tracks with unknown tempo.
	tempoAdjacentScore = 0.4
	tempoUnknownScore  = 0.25
	// Ideal single-track duration for the duration-fit factor.
	idealTrackSec = 210.0
	// Window for the soft diversity factor when no spacing rule is set.
	defaultDiversityWindow = 5
)

// tempoMoods maps each tempo bucket to the mood terms it implies.
// Together with a track's normalized genres these form the opaque term
// set that request moods and activities are matched against.
var tempoMoods = map[matching.TempoBucket][]string{
	matching.TempoSlow:   {"calm", "chill", "mellow", "relaxed", "sad", "dreamy"},
	matching.TempoMedium: {"groovy", "steady", "happy", "warm", "focused"},
	matching.TempoFast:   {"energetic", "upbeat", "intense", "party", "aggressive"},
}

// activityTerms expands a requested activity into the terms that
// characterize fitting tracks. Unknown activities match literally.
var activityTerms = map[string][]string{
	"running":  {"energetic", "upbeat", "intense", "electronic", "dance"},
	"workout":  {"energetic", "intense", "aggressive", "party"},
	"party":    {"party", "upbeat", "dance", "happy", "pop"},
	"studying": {"calm", "focused", "mellow", "ambient", "classical"},
	"focus":    {"focused", "calm", "ambient", "instrumental"},
	"sleeping": {"calm", "relaxed", "dreamy", "ambient"},
	"driving":  {"steady", "groovy", "upbeat", "rock"},
	"cooking":  {"happy", "groovy", "warm", "jazz"},
	"relaxing": {"chill", "calm", "mellow", "relaxed"},
}

// scorer carries the request-scoped state the static scoring needs.
type scorer struct {
	req   Request
	strat Strategy
	idx   *matching.Index
	seed  int64

	reqGenres     []string // normalized, deduplicated
	reqGenreSet   map[string]struct{}
	reqMoods      []string
	reqActivities []string
}

func newScorer(req Request, strat Strategy, idx *matching.Index, seed int64) *scorer {
	s := &scorer{req: req, strat: strat, idx: idx, seed: seed}
	s.reqGenres, s.reqGenreSet = normalizeUnique(req.Genres)
	s.reqMoods, _ = normalizeUnique(req.Moods)
	s.reqActivities, _ = normalizeUnique(req.Activities)
	return s
}

func normalizeUnique(ss []string) ([]string, map[string]struct{}) {
	set := make(map[string]struct{}, len(ss))
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		n := catalog.Normalize(s)
		if n == "" {
			continue
		}
		if _, ok := set[n]; ok {
			continue
		}
		set[n] = struct{}{}
		out = append(out, n)
	}
	return out, set
}

// candidate is a scored pool entry. The static part excludes the
// diversity factor, which depends on what has already been selected.
type candidate struct {
	track    catalog.Track
	meta     matching.TrackMeta
	factors  Factors
	static   float64
	surprise float64 // raw seeded value, also the tie-break key
	reasons  []string
}

// score computes the static factors for one track.
func (s *scorer) score(t catalog.Track, meta matching.TrackMeta) candidate {
	c := candidate{track: t, meta: meta, surprise: surpriseValue(s.seed, t.FileID)}
	w := s.strat.Weights

	if w.Genre > 0 && len(s.reqGenres) > 0 {
		overlap := 0
		for _, g := range meta.NormGenres {
			if _, ok := s.reqGenreSet[g]; ok {
				overlap++
			}
		}
		match := float64(overlap) / float64(len(s.reqGenres))
		c.factors.Genre = w.Genre * match
		if overlap > 0 {
			c.reasons = append(c.reasons,
				fmt.Sprintf("matches %d of %d requested genres", overlap, len(s.reqGenres)))
		}
	}

	if w.Tempo > 0 && !s.req.Tempo.IsZero() {
		closeness := s.tempoCloseness(meta)
		c.factors.Tempo = w.Tempo * closeness
		if closeness >= 0.8 {
			c.reasons = append(c.reasons, fmt.Sprintf("tempo fits (%s)", meta.Tempo))
		}
	}

	terms := trackTerms(meta)
	if w.Mood > 0 && len(s.reqMoods) > 0 {
		match := overlapFraction(s.reqMoods, terms)
		c.factors.Mood = w.Mood * match
		if match > 0 {
			c.reasons = append(c.reasons, "fits requested mood")
		}
	}
	if w.Activity > 0 && len(s.reqActivities) > 0 {
		match := s.activityMatch(terms)
		c.factors.Activity = w.Activity * match
		if match >= 0.5 {
			c.reasons = append(c.reasons, "suits the activity")
		}
	}

	if w.Duration > 0 && meta.DurationSec > 0 {
		fit := 1 - math.Abs(meta.DurationSec-idealTrackSec)/idealTrackSec
		if fit < 0 {
			fit = 0
		}
		c.factors.Duration = w.Duration * fit
	}

	if w.Surprise > 0 && s.req.Surprise > 0 {
		c.factors.Surprise = w.Surprise * s.req.Surprise * c.surprise
		if c.surprise > 0.85 {
			c.reasons = append(c.reasons, "surprise pick")
		}
	}

	c.static = c.factors.Sum()
	return c
}

// tempoCloseness is the distance-based tempo score in [0, 1].
func (s *scorer) tempoCloseness(meta matching.TrackMeta) float64 {
	target := s.req.Tempo.TargetBPM
	if target <= 0 {
		// Bucket-only request.
		if meta.Tempo == matching.TempoUnknown {
			return tempoUnknownScore
		}
		if meta.Tempo == s.req.Tempo.Bucket {
			return 1.0
		}
		if bucketsAdjacent(meta.Tempo, s.req.Tempo.Bucket) {
			return tempoAdjacentScore
		}
		return 0
	}

	bpm := meta.BPM
	if bpm <= 0 {
		// Fall back to the bucket's representative BPM; fully unknown
		// tempo gets the flat unknown score.
		if meta.Tempo == matching.TempoUnknown {
			return tempoUnknownScore
		}
		bpm = s.idx.Tunables().TempoBucketCenter(meta.Tempo)
	}
	closeness := 1 - math.Abs(bpm-target)/tempoFalloffBPM
	if closeness < 0 {
		return 0
	}
	return closeness
}

func bucketsAdjacent(a, b matching.TempoBucket) bool {
	switch {
	case a == matching.TempoSlow && b == matching.TempoMedium,
		a == matching.TempoMedium && b == matching.TempoSlow,
		a == matching.TempoMedium && b == matching.TempoFast,
		a == matching.TempoFast && b == matching.TempoMedium:
		return true
	}
	return false
}

// trackTerms builds the opaque term set for mood/activity matching:
// the track's normalized genres plus the moods its tempo implies.
func trackTerms(meta matching.TrackMeta) map[string]struct{} {
	terms := make(map[string]struct{}, len(meta.NormGenres)+6)
	for _, g := range meta.NormGenres {
		terms[g] = struct{}{}
	}
	for _, m := range tempoMoods[meta.Tempo] {
		terms[m] = struct{}{}
	}
	return terms
}

// overlapFraction returns the fraction of wanted terms present in the
// term set.
func overlapFraction(wanted []string, terms map[string]struct{}) float64 {
	if len(wanted) == 0 {
		return 0
	}
	hits := 0
	for _, w := range wanted {
		if _, ok := terms[w]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(wanted))
}

// activityMatch expands each requested activity and takes the best
// per-activity overlap, averaged across activities.
func (s *scorer) activityMatch(terms map[string]struct{}) float64 {
	if len(s.reqActivities) == 0 {
		return 0
	}
	total := 0.0
	for _, act := range s.reqActivities {
		expanded, ok := activityTerms[act]
		if !ok {
			expanded = []string{act}
		}
		total += overlapFraction(expanded, terms)
	}
	return total / float64(len(s.reqActivities))
}

// energy is the ordering-plan intensity proxy for a selected track:
// normalized BPM, with bucket centers for untagged tempo.
func (s *scorer) energy(meta matching.TrackMeta) float64 {
	bpm := meta.BPM
	if bpm <= 0 {
		if meta.Tempo == matching.TempoUnknown {
			return 0.3
		}
		bpm = s.idx.Tunables().TempoBucketCenter(meta.Tempo)
	}
	e := bpm / 180.0
	if e > 1 {
		e = 1
	}
	return e
}
