// Package genre infers relationships between genres from observed
// co-occurrence on tracks, falling back to a static taxonomy.
package genre

import "github.com/soniclab/curator/internal/catalog"

// Cooccurrence counts how often two genres appear together on the same
// track. Counts are symmetric by construction: observing {a, b} bumps
// both a->b and b->a.
type Cooccurrence struct {
	counts map[string]map[string]int // normalized genre -> normalized genre -> count
}

// NewCooccurrence returns an empty accumulator.
func NewCooccurrence() *Cooccurrence {
	return &Cooccurrence{counts: make(map[string]map[string]int)}
}

// Add observes one track's genre set. Every unordered pair is counted
// exactly once per track; duplicate and empty entries are dropped
// first, and tracks with fewer than two distinct genres contribute
// nothing.
func (c *Cooccurrence) Add(genres []string) {
	seen := make(map[string]struct{}, len(genres))
	var unique []string
	for _, g := range genres {
		n := catalog.Normalize(g)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		unique = append(unique, n)
	}
	if len(unique) < 2 {
		return
	}

	for i := 0; i < len(unique); i++ {
		for j := i + 1; j < len(unique); j++ {
			c.bump(unique[i], unique[j])
			c.bump(unique[j], unique[i])
		}
	}
}

func (c *Cooccurrence) bump(a, b string) {
	m, ok := c.counts[a]
	if !ok {
		m = make(map[string]int)
		c.counts[a] = m
	}
	m[b]++
}

// Count returns how often a and b were observed together. Inputs are
// normalized before lookup.
func (c *Cooccurrence) Count(a, b string) int {
	return c.counts[catalog.Normalize(a)][catalog.Normalize(b)]
}

// Neighbors returns the co-occurrence counts for a genre. The returned
// map is live; callers must not modify it.
func (c *Cooccurrence) Neighbors(g string) map[string]int {
	return c.counts[catalog.Normalize(g)]
}
