package generator

import (
	"testing"

	"github.com/soniclab/curator/internal/catalog"
	"github.com/soniclab/curator/internal/matching"
)

func scoreOne(t *testing.T, req Request, strat Strategy, track catalog.Track) candidate {
	t.Helper()
	idx := matching.Build([]catalog.Track{track}, matching.DefaultTunables())
	s := newScorer(req, strat, idx, 1)
	meta, ok := idx.Meta(track.FileID)
	if !ok {
		t.Fatal("track not indexed")
	}
	return s.score(track, meta)
}

func TestScore_GenreFraction(t *testing.T) {
	track := catalog.Track{FileID: 1, Genres: []string{"Rock", "Punk"}}
	strat := Strategy{Weights: Weights{Genre: 1}}

	c := scoreOne(t, Request{Genres: []string{"Rock", "Jazz"}}, strat, track)
	if c.factors.Genre != 0.5 {
		t.Errorf("genre factor = %v, want 0.5 (1 of 2 requested)", c.factors.Genre)
	}

	c = scoreOne(t, Request{Genres: []string{"rock", "punk"}}, strat, track)
	if c.factors.Genre != 1.0 {
		t.Errorf("genre factor = %v, want 1.0", c.factors.Genre)
	}
}

func TestScore_TempoBPMDistance(t *testing.T) {
	strat := Strategy{Weights: Weights{Tempo: 1}}
	req := Request{Tempo: TempoSpec{TargetBPM: 120}}

	exact := scoreOne(t, req, strat, catalog.Track{FileID: 1, BPM: 120})
	if exact.factors.Tempo != 1.0 {
		t.Errorf("exact BPM = %v, want 1.0", exact.factors.Tempo)
	}

	near := scoreOne(t, req, strat, catalog.Track{FileID: 1, BPM: 135})
	if near.factors.Tempo <= 0.5 || near.factors.Tempo >= 1.0 {
		t.Errorf("near BPM = %v, want between 0.5 and 1", near.factors.Tempo)
	}

	far := scoreOne(t, req, strat, catalog.Track{FileID: 1, BPM: 200})
	if far.factors.Tempo != 0 {
		t.Errorf("far BPM = %v, want 0", far.factors.Tempo)
	}

	unknown := scoreOne(t, req, strat, catalog.Track{FileID: 1})
	if unknown.factors.Tempo != tempoUnknownScore {
		t.Errorf("unknown tempo = %v, want %v", unknown.factors.Tempo, tempoUnknownScore)
	}
}

func TestScore_TempoBucketOnly(t *testing.T) {
	strat := Strategy{Weights: Weights{Tempo: 1}}
	req := Request{Tempo: TempoSpec{Bucket: matching.TempoFast}}

	fast := scoreOne(t, req, strat, catalog.Track{FileID: 1, BPM: 150})
	if fast.factors.Tempo != 1.0 {
		t.Errorf("same bucket = %v, want 1.0", fast.factors.Tempo)
	}

	medium := scoreOne(t, req, strat, catalog.Track{FileID: 1, BPM: 120})
	if medium.factors.Tempo != tempoAdjacentScore {
		t.Errorf("adjacent bucket = %v, want %v", medium.factors.Tempo, tempoAdjacentScore)
	}

	slow := scoreOne(t, req, strat, catalog.Track{FileID: 1, BPM: 60})
	if slow.factors.Tempo != 0 {
		t.Errorf("distant bucket = %v, want 0", slow.factors.Tempo)
	}
}

func TestScore_MoodOverlap(t *testing.T) {
	strat := Strategy{Weights: Weights{Mood: 1}}
	// Slow tempo implies calm/chill terms.
	track := catalog.Track{FileID: 1, Genres: []string{"Ambient"}, BPM: 70}

	c := scoreOne(t, Request{Moods: []string{"calm"}}, strat, track)
	if c.factors.Mood != 1.0 {
		t.Errorf("mood factor = %v, want 1.0", c.factors.Mood)
	}

	c = scoreOne(t, Request{Moods: []string{"energetic"}}, strat, track)
	if c.factors.Mood != 0 {
		t.Errorf("mismatched mood = %v, want 0", c.factors.Mood)
	}
}

func TestScore_ActivityExpansion(t *testing.T) {
	strat := Strategy{Weights: Weights{Activity: 1}}
	fastElectronic := catalog.Track{FileID: 1, Genres: []string{"Electronic"}, BPM: 160}
	slowJazz := catalog.Track{FileID: 1, Genres: []string{"Jazz"}, BPM: 80}

	run := scoreOne(t, Request{Activities: []string{"running"}}, strat, fastElectronic)
	sit := scoreOne(t, Request{Activities: []string{"running"}}, strat, slowJazz)
	if run.factors.Activity <= sit.factors.Activity {
		t.Errorf("running: fast electronic (%v) should outscore slow jazz (%v)",
			run.factors.Activity, sit.factors.Activity)
	}
}

func TestScore_MissingWeightsContributeNothing(t *testing.T) {
	track := catalog.Track{FileID: 1, Genres: []string{"Rock"}, BPM: 120, DurationSec: 210}
	req := Request{
		Genres:   []string{"Rock"},
		Moods:    []string{"happy"},
		Tempo:    TempoSpec{TargetBPM: 120},
		Surprise: 1,
	}
	c := scoreOne(t, req, Strategy{}, track)
	if c.static != 0 {
		t.Errorf("all-zero weights should produce zero score, got %v (%+v)", c.static, c.factors)
	}
}

func TestScore_SurpriseScalesWithRequestLevel(t *testing.T) {
	strat := Strategy{Weights: Weights{Surprise: 1}}
	track := catalog.Track{FileID: 7}

	none := scoreOne(t, Request{Surprise: 0}, strat, track)
	full := scoreOne(t, Request{Surprise: 1}, strat, track)

	if none.factors.Surprise != 0 {
		t.Errorf("surprise 0 should contribute 0, got %v", none.factors.Surprise)
	}
	if full.factors.Surprise != full.surprise {
		t.Errorf("surprise 1 should contribute the raw value %v, got %v",
			full.surprise, full.factors.Surprise)
	}
}

func TestScore_DurationFit(t *testing.T) {
	strat := Strategy{Weights: Weights{Duration: 1}}
	ideal := scoreOne(t, Request{}, strat, catalog.Track{FileID: 1, DurationSec: idealTrackSec})
	long := scoreOne(t, Request{}, strat, catalog.Track{FileID: 1, DurationSec: 600})

	if ideal.factors.Duration != 1.0 {
		t.Errorf("ideal duration = %v, want 1.0", ideal.factors.Duration)
	}
	if long.factors.Duration >= ideal.factors.Duration {
		t.Errorf("overlong track (%v) should score below ideal (%v)",
			long.factors.Duration, ideal.factors.Duration)
	}
}
