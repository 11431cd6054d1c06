package generator

import (
	"github.com/soniclab/curator/internal/catalog"
	"github.com/soniclab/curator/internal/matching"
)

// Replace deterministically produces up to count substitute tracks for
// an existing selection. Every track already in context and every id
// in exclude is ineligible, on top of the request's own filters and
// exclusions. Two calls with identical arguments (seed included)
// return identical output in identical order; the seed perturbs only
// the surprise contribution and score tie-breaks, never the hard
// diversity and exclusion rules. An empty eligible pool yields an
// empty list, not an error.
func Replace(
	req Request,
	strat Strategy,
	idx *matching.Index,
	snap *catalog.Snapshot,
	count int,
	context []Selection,
	exclude []int64,
	seed int64,
) []Selection {
	if count <= 0 {
		return nil
	}

	excluded := make(map[int64]struct{}, len(context)+len(exclude))
	for _, sel := range context {
		excluded[sel.Track.FileID] = struct{}{}
	}
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	s := newScorer(req, strat, idx, seed)
	pool := s.buildPool(snap, excluded)
	// Replacements slot into an existing playlist, so per-artist and
	// per-album caps count the context; spacing rules cannot apply
	// without a concrete insertion position.
	picked := s.pick(pool, count, context)

	out := make([]Selection, 0, len(picked))
	for _, c := range picked {
		out = append(out, Selection{
			Track:   c.track,
			Score:   c.static + c.factors.Diversity,
			Factors: c.factors,
			Reasons: c.reasons,
		})
	}
	return out
}
