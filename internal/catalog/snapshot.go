package catalog

import (
	"slices"
	"strings"
)

// Snapshot is a fixed, in-memory view of the catalog. It is built once
// (from the store or directly from a track slice) and never mutated, so
// the engine can read it without locking.
type Snapshot struct {
	tracks []Track
	byID   map[int64]int // FileID -> index into tracks
}

// NewSnapshot copies tracks into a snapshot. Later duplicates of a
// FileID win, matching the store's replace-on-conflict semantics.
func NewSnapshot(tracks []Track) *Snapshot {
	s := &Snapshot{
		tracks: make([]Track, 0, len(tracks)),
		byID:   make(map[int64]int, len(tracks)),
	}
	for _, t := range tracks {
		if i, ok := s.byID[t.FileID]; ok {
			s.tracks[i] = t
			continue
		}
		s.byID[t.FileID] = len(s.tracks)
		s.tracks = append(s.tracks, t)
	}
	return s
}

// Len returns the number of tracks in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.tracks)
}

// Tracks returns the underlying track slice. Callers must not modify it.
func (s *Snapshot) Tracks() []Track {
	return s.tracks
}

// TrackByID returns the track with the given file id.
func (s *Snapshot) TrackByID(fileID int64) (Track, bool) {
	i, ok := s.byID[fileID]
	if !ok {
		return Track{}, false
	}
	return s.tracks[i], true
}

// Genres returns every distinct genre in the snapshot with original
// casing, sorted case-insensitively with a byte-wise tie-break so the
// order never depends on track order. When two casings of the same
// genre exist, both are returned; the matching index reconciles them.
func (s *Snapshot) Genres() []string {
	seen := make(map[string]struct{})
	var genres []string
	for _, t := range s.tracks {
		for _, g := range t.Genres {
			g = strings.TrimSpace(g)
			if g == "" {
				continue
			}
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			genres = append(genres, g)
		}
	}
	slices.SortFunc(genres, func(a, b string) int {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return genres
}

// Artists returns every distinct artist, sorted case-insensitively.
func (s *Snapshot) Artists() []string {
	seen := make(map[string]struct{})
	var artists []string
	for _, t := range s.tracks {
		a := strings.TrimSpace(t.Artist)
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		artists = append(artists, a)
	}
	slices.SortFunc(artists, func(a, b string) int {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return artists
}
