package generator

import (
	"cmp"
	"math"
	"slices"
)

// applyOrdering rearranges a picked selection according to the
// strategy's section plan. Final positions are partitioned into the
// named sections by their start/end fractions (a position overlapped
// by several sections belongs to the first in plan order);
// higher-intensity sections receive higher-energy tracks. Within a
// section, and in positions no section covers, the original selection
// order (the score order) is preserved. Without sections the selection
// is returned unchanged.
func (s *scorer) applyOrdering(picked []candidate) []candidate {
	n := len(picked)
	if n == 0 || len(s.strat.Sections) == 0 {
		return picked
	}

	// owner[p] is the index of the section owning position p, or -1.
	owner := make([]int, n)
	for p := range owner {
		owner[p] = -1
	}
	counts := make([]int, len(s.strat.Sections))
	for i, sec := range s.strat.Sections {
		if sec.End <= sec.Start {
			continue
		}
		start := int(math.Floor(clamp01(sec.Start) * float64(n)))
		end := int(math.Ceil(clamp01(sec.End) * float64(n)))
		for p := start; p < end && p < n; p++ {
			if owner[p] == -1 {
				owner[p] = i
				counts[i]++
			}
		}
	}

	// Tracks by descending energy; sections by descending intensity.
	// Both sorts are stable against the original (score) order.
	byEnergy := make([]int, n)
	for i := range byEnergy {
		byEnergy[i] = i
	}
	slices.SortStableFunc(byEnergy, func(a, b int) int {
		ea, eb := s.energy(picked[a].meta), s.energy(picked[b].meta)
		if ea != eb {
			return cmp.Compare(eb, ea)
		}
		return cmp.Compare(a, b)
	})

	sectionOrder := make([]int, 0, len(s.strat.Sections))
	for i := range s.strat.Sections {
		if counts[i] > 0 {
			sectionOrder = append(sectionOrder, i)
		}
	}
	slices.SortStableFunc(sectionOrder, func(a, b int) int {
		ia, ib := s.strat.Sections[a].Intensity, s.strat.Sections[b].Intensity
		if ia != ib {
			return cmp.Compare(ib, ia)
		}
		return cmp.Compare(a, b)
	})

	// Most intense section takes the most energetic tracks, and so on
	// down; leftovers fill uncovered positions.
	assigned := make(map[int][]int, len(sectionOrder)) // section -> picked indices
	next := 0
	for _, si := range sectionOrder {
		take := counts[si]
		if take > n-next {
			take = n - next
		}
		tracks := append([]int(nil), byEnergy[next:next+take]...)
		slices.Sort(tracks) // back to score order within the section
		assigned[si] = tracks
		next += take
	}
	leftovers := append([]int(nil), byEnergy[next:]...)
	slices.Sort(leftovers)

	out := make([]candidate, 0, n)
	for p := 0; p < n; p++ {
		si := owner[p]
		if si >= 0 && len(assigned[si]) > 0 {
			out = append(out, picked[assigned[si][0]])
			assigned[si] = assigned[si][1:]
			continue
		}
		if len(leftovers) > 0 {
			out = append(out, picked[leftovers[0]])
			leftovers = leftovers[1:]
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
