package generator

import (
	"cmp"
	"slices"

	"github.com/soniclab/curator/internal/catalog"
	"github.com/soniclab/curator/internal/matching"
)

// Select produces an ordered selection of up to req.Length tracks.
// Candidates come from the index's genre buckets (or the whole catalog
// for unconstrained requests), are scored by the strategy's weighted
// factors, greedily chosen under the hard diversity constraints, and
// finally reordered by the strategy's section plan. Fewer eligible
// candidates than requested is a normal outcome: the result is simply
// shorter. Neither the index nor the snapshot is mutated.
func Select(req Request, strat Strategy, idx *matching.Index, snap *catalog.Snapshot, seed int64) []Selection {
	if req.Length <= 0 {
		return nil
	}
	s := newScorer(req, strat, idx, seed)
	pool := s.buildPool(snap, nil)
	picked := s.pick(pool, req.Length, nil)
	ordered := s.applyOrdering(picked)

	out := make([]Selection, 0, len(ordered))
	for _, c := range ordered {
		out = append(out, Selection{
			Track:   c.track,
			Score:   c.static + c.factors.Diversity,
			Factors: c.factors,
			Reasons: c.reasons,
		})
	}
	return out
}

// buildPool scores every eligible candidate. exclude is an extra id
// set on top of the request's own exclusions.
func (s *scorer) buildPool(snap *catalog.Snapshot, exclude map[int64]struct{}) []candidate {
	excluded := make(map[int64]struct{}, len(s.req.Exclude)+len(exclude))
	for _, id := range s.req.Exclude {
		excluded[id] = struct{}{}
	}
	for id := range exclude {
		excluded[id] = struct{}{}
	}

	var ids []int64
	if s.req.AllGenres || len(s.reqGenres) == 0 {
		ids = s.idx.All()
	} else {
		seen := make(map[int64]struct{})
		for _, g := range s.reqGenres {
			for _, id := range s.idx.TracksByGenre(g) {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	pool := make([]candidate, 0, len(ids))
	for _, id := range ids {
		if _, ok := excluded[id]; ok {
			continue
		}
		meta, ok := s.idx.Meta(id)
		if !ok {
			continue
		}
		track, ok := snap.TrackByID(id)
		if !ok {
			continue
		}
		pool = append(pool, s.score(track, meta))
	}

	// Descending static score; ties break by the seeded surprise value
	// and then by file id, never by pool order.
	slices.SortFunc(pool, func(a, b candidate) int {
		if a.static != b.static {
			return cmp.Compare(b.static, a.static)
		}
		if a.surprise != b.surprise {
			return cmp.Compare(b.surprise, a.surprise)
		}
		return cmp.Compare(a.track.FileID, b.track.FileID)
	})
	return pool
}

// chosenState tracks what the greedy loop has placed so far, plus any
// context counts carried in from an existing selection (replacement).
type chosenState struct {
	artistCount map[string]int
	albumCount  map[string]int
	lastArtist  map[string]int // norm artist -> last position
	lastGenre   map[string]int // norm genre -> last position
	positions   int
}

func newChosenState(context []Selection) *chosenState {
	st := &chosenState{
		artistCount: make(map[string]int),
		albumCount:  make(map[string]int),
		lastArtist:  make(map[string]int),
		lastGenre:   make(map[string]int),
	}
	for _, sel := range context {
		artist := catalog.Normalize(sel.Track.Artist)
		album := catalog.Normalize(sel.Track.Album)
		if artist != "" {
			st.artistCount[artist]++
		}
		if album != "" {
			st.albumCount[album]++
		}
	}
	return st
}

func (st *chosenState) place(c candidate, pos int) {
	if c.meta.NormArtist != "" {
		st.artistCount[c.meta.NormArtist]++
		st.lastArtist[c.meta.NormArtist] = pos
	}
	if c.meta.NormAlbum != "" {
		st.albumCount[c.meta.NormAlbum]++
	}
	for _, g := range c.meta.NormGenres {
		st.lastGenre[g] = pos
	}
	st.positions = pos + 1
}

// allowed checks the hard diversity constraints for placing c at pos.
// A rejection here is positional: the candidate stays in the pool and
// may fit a later slot.
func (st *chosenState) allowed(c candidate, pos int, rules Diversity) bool {
	if rules.MaxPerArtist != nil && c.meta.NormArtist != "" {
		if st.artistCount[c.meta.NormArtist] >= *rules.MaxPerArtist {
			return false
		}
	}
	if rules.MaxPerAlbum != nil && c.meta.NormAlbum != "" {
		if st.albumCount[c.meta.NormAlbum] >= *rules.MaxPerAlbum {
			return false
		}
	}
	if rules.ArtistSpacing > 0 && c.meta.NormArtist != "" {
		if last, ok := st.lastArtist[c.meta.NormArtist]; ok && pos-last < rules.ArtistSpacing {
			return false
		}
	}
	if rules.GenreSpacing > 0 {
		for _, g := range c.meta.NormGenres {
			if last, ok := st.lastGenre[g]; ok && pos-last < rules.GenreSpacing {
				return false
			}
		}
	}
	return true
}

// diversityWindow is how far back the soft diversity factor looks.
func diversityWindow(rules Diversity) int {
	w := defaultDiversityWindow
	if rules.ArtistSpacing > w {
		w = rules.ArtistSpacing
	}
	if rules.GenreSpacing > w {
		w = rules.GenreSpacing
	}
	return w
}

// diversityContribution rewards candidates that do not repeat a recent
// artist or genre. In [0, 1].
func (st *chosenState) diversityContribution(c candidate, pos, window int) float64 {
	contribution := 1.0
	if c.meta.NormArtist != "" {
		if last, ok := st.lastArtist[c.meta.NormArtist]; ok && pos-last <= window {
			contribution -= 0.5
		}
	}
	for _, g := range c.meta.NormGenres {
		if last, ok := st.lastGenre[g]; ok && pos-last <= window {
			contribution -= 0.3
			break
		}
	}
	if contribution < 0 {
		return 0
	}
	return contribution
}

// pick greedily fills up to length positions. The pool must already be
// sorted by descending static score. At every position the best
// still-eligible candidate wins, where "best" includes the dynamic
// diversity factor; hard-constraint rejections keep the candidate
// eligible for later positions. The loop ends when the target length
// is reached or no candidate can legally fill the current position, so
// degenerate rule sets terminate with a short (possibly empty) result.
func (s *scorer) pick(pool []candidate, length int, context []Selection) []candidate {
	if length <= 0 || len(pool) == 0 {
		return nil
	}
	st := newChosenState(context)
	window := diversityWindow(s.strat.Diversity)
	divWeight := s.strat.Weights.Diversity
	used := make([]bool, len(pool))

	selected := make([]candidate, 0, min(length, len(pool)))
	for pos := 0; pos < length && len(selected) < len(pool); pos++ {
		best := -1
		var bestEff, bestTie float64
		var bestDiv float64

		for i := range pool {
			if used[i] {
				continue
			}
			if !st.allowed(pool[i], pos, s.strat.Diversity) {
				continue
			}
			div := 0.0
			if divWeight > 0 {
				div = divWeight * st.diversityContribution(pool[i], pos, window)
			}
			eff := pool[i].static + div
			if best == -1 || eff > bestEff ||
				(eff == bestEff && pool[i].surprise > bestTie) {
				best, bestEff, bestTie, bestDiv = i, eff, pool[i].surprise, div
			}
		}
		if best == -1 {
			break
		}

		c := pool[best]
		c.factors.Diversity = bestDiv
		used[best] = true
		st.place(c, pos)
		selected = append(selected, c)
	}
	return selected
}
