package genre

import (
	"cmp"
	"slices"

	"github.com/soniclab/curator/internal/catalog"
)

// Suggest returns up to limit genres related to the selected ones,
// ranked by accumulated co-occurrence count across all selected genres.
// Suggestions are restricted to genres actually present in
// libraryGenres, already-selected genres are never returned, and count
// ties break by static taxonomy order (never map iteration order).
// When the co-occurrence signal yields nothing, the static taxonomy
// adjacency supplies a fallback, filtered the same way.
//
// Returned genres use the casing they carry in libraryGenres.
func Suggest(selected, libraryGenres []string, co *Cooccurrence, limit int) []string {
	if len(selected) == 0 || limit <= 0 {
		return nil
	}

	selectedSet := make(map[string]struct{}, len(selected))
	for _, g := range selected {
		if n := catalog.Normalize(g); n != "" {
			selectedSet[n] = struct{}{}
		}
	}

	// normalized -> display casing; first library occurrence wins.
	library := make(map[string]string, len(libraryGenres))
	for _, g := range libraryGenres {
		n := catalog.Normalize(g)
		if n == "" {
			continue
		}
		if _, ok := library[n]; !ok {
			library[n] = g
		}
	}

	type ranked struct {
		norm  string
		count int
	}
	accumulated := make(map[string]int)
	if co != nil {
		for norm := range selectedSet {
			for other, count := range co.Neighbors(norm) {
				accumulated[other] += count
			}
		}
	}

	var candidates []ranked
	for norm, count := range accumulated {
		if _, ok := selectedSet[norm]; ok {
			continue
		}
		if _, ok := library[norm]; !ok {
			continue
		}
		candidates = append(candidates, ranked{norm: norm, count: count})
	}

	slices.SortFunc(candidates, func(a, b ranked) int {
		if a.count != b.count {
			return cmp.Compare(b.count, a.count)
		}
		if ra, rb := Rank(a.norm), Rank(b.norm); ra != rb {
			return cmp.Compare(ra, rb)
		}
		return cmp.Compare(a.norm, b.norm)
	})

	if len(candidates) > 0 {
		out := make([]string, 0, min(limit, len(candidates)))
		for _, c := range candidates[:min(limit, len(candidates))] {
			out = append(out, library[c.norm])
		}
		return out
	}

	return suggestFromTaxonomy(selectedSet, library, limit)
}

// suggestFromTaxonomy walks the static adjacency lists of the selected
// genres in taxonomy order, keeping each candidate's best (earliest)
// adjacency position.
func suggestFromTaxonomy(selectedSet map[string]struct{}, library map[string]string, limit int) []string {
	type ranked struct {
		norm string
		pos  int // position within the adjacency list, lower is closer
	}
	best := make(map[string]int)

	selected := make([]string, 0, len(selectedSet))
	for norm := range selectedSet {
		selected = append(selected, norm)
	}
	slices.SortFunc(selected, func(a, b string) int {
		if ra, rb := Rank(a), Rank(b); ra != rb {
			return cmp.Compare(ra, rb)
		}
		return cmp.Compare(a, b)
	})

	for _, sel := range selected {
		for pos, adj := range Adjacent(sel) {
			if _, ok := selectedSet[adj]; ok {
				continue
			}
			if _, ok := library[adj]; !ok {
				continue
			}
			if prev, ok := best[adj]; !ok || pos < prev {
				best[adj] = pos
			}
		}
	}

	candidates := make([]ranked, 0, len(best))
	for norm, pos := range best {
		candidates = append(candidates, ranked{norm: norm, pos: pos})
	}
	slices.SortFunc(candidates, func(a, b ranked) int {
		if a.pos != b.pos {
			return cmp.Compare(a.pos, b.pos)
		}
		if ra, rb := Rank(a.norm), Rank(b.norm); ra != rb {
			return cmp.Compare(ra, rb)
		}
		return cmp.Compare(a.norm, b.norm)
	})

	out := make([]string, 0, min(limit, len(candidates)))
	for _, c := range candidates[:min(limit, len(candidates))] {
		out = append(out, library[c.norm])
	}
	return out
}
