// Package matching builds the per-request lookup index over a catalog
// snapshot: genre, artist, tempo and duration buckets plus cached
// per-track metadata for O(1) scoring lookups.
package matching

import (
	"github.com/soniclab/curator/internal/catalog"
	"github.com/soniclab/curator/internal/genre"
)

// TrackMeta is the cached per-track metadata the scorer reads instead
// of touching the snapshot.
type TrackMeta struct {
	Genres      []string // original casing, deduplicated by normalized form
	NormGenres  []string // same order as Genres
	Artist      string
	NormArtist  string
	Album       string
	NormAlbum   string
	Tempo       TempoBucket
	BPM         float64
	Duration    DurationBucket
	DurationSec float64
}

// Index is a read-mostly structure over a fixed catalog snapshot.
// Build it once per generation request; it is never mutated afterwards,
// so concurrent readers need no locking.
type Index struct {
	tun Tunables

	byGenre    map[string][]int64 // original casing -> file ids
	byArtist   map[string][]int64 // normalized artist -> file ids
	byTempo    map[TempoBucket][]int64
	byDuration map[DurationBucket][]int64
	all        []int64
	meta       map[int64]TrackMeta

	// Genre spelling reconciliation.
	origToNorm      map[string]string
	normToOriginals map[string][]string

	co *genre.Cooccurrence
}

// Build indexes a track slice. Genre co-occurrence is accumulated in
// the same pass. The input is never mutated.
func Build(tracks []catalog.Track, tun Tunables) *Index {
	idx := &Index{
		tun:             tun,
		byGenre:         make(map[string][]int64),
		byArtist:        make(map[string][]int64),
		byTempo:         make(map[TempoBucket][]int64),
		byDuration:      make(map[DurationBucket][]int64),
		all:             make([]int64, 0, len(tracks)),
		meta:            make(map[int64]TrackMeta, len(tracks)),
		origToNorm:      make(map[string]string),
		normToOriginals: make(map[string][]string),
		co:              genre.NewCooccurrence(),
	}

	for i := range tracks {
		idx.addTrack(&tracks[i])
	}
	return idx
}

func (idx *Index) addTrack(t *catalog.Track) {
	if _, dup := idx.meta[t.FileID]; dup {
		return
	}

	meta := TrackMeta{
		Artist:      t.Artist,
		NormArtist:  catalog.Normalize(t.Artist),
		Album:       t.Album,
		NormAlbum:   catalog.Normalize(t.Album),
		Tempo:       idx.tun.TempoBucketFor(t.BPM),
		BPM:         t.BPM,
		Duration:    idx.tun.DurationBucketFor(t.DurationSec),
		DurationSec: t.DurationSec,
	}

	// Deduplicate the track's genre list by normalized form so one
	// track never appears twice in the same bucket.
	seen := make(map[string]struct{}, len(t.Genres))
	for _, g := range t.Genres {
		norm := catalog.Normalize(g)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		meta.Genres = append(meta.Genres, g)
		meta.NormGenres = append(meta.NormGenres, norm)

		idx.byGenre[g] = append(idx.byGenre[g], t.FileID)
		if _, known := idx.origToNorm[g]; !known {
			idx.origToNorm[g] = norm
			idx.normToOriginals[norm] = append(idx.normToOriginals[norm], g)
		}
	}

	idx.byArtist[meta.NormArtist] = append(idx.byArtist[meta.NormArtist], t.FileID)
	idx.byTempo[meta.Tempo] = append(idx.byTempo[meta.Tempo], t.FileID)
	idx.byDuration[meta.Duration] = append(idx.byDuration[meta.Duration], t.FileID)
	idx.all = append(idx.all, t.FileID)
	idx.meta[t.FileID] = meta

	idx.co.Add(meta.NormGenres)
}

// Tunables returns the bucket boundaries the index was built with.
func (idx *Index) Tunables() Tunables {
	return idx.tun
}

// Meta returns the cached metadata for a file id.
func (idx *Index) Meta(fileID int64) (TrackMeta, bool) {
	m, ok := idx.meta[fileID]
	return m, ok
}

// All returns every indexed file id in indexing order. Callers must
// not modify the returned slice.
func (idx *Index) All() []int64 {
	return idx.all
}

// Len returns the number of indexed tracks.
func (idx *Index) Len() int {
	return len(idx.all)
}

// TracksByGenre returns the file ids tagged with any spelling variant
// of the given genre. The input may be any casing.
func (idx *Index) TracksByGenre(g string) []int64 {
	norm := catalog.Normalize(g)
	variants := idx.normToOriginals[norm]
	if len(variants) == 0 {
		return nil
	}
	if len(variants) == 1 {
		return idx.byGenre[variants[0]]
	}
	var ids []int64
	seen := make(map[int64]struct{})
	for _, v := range variants {
		for _, id := range idx.byGenre[v] {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

// TracksByArtist returns the file ids for an artist, any casing.
func (idx *Index) TracksByArtist(artist string) []int64 {
	return idx.byArtist[catalog.Normalize(artist)]
}

// TracksByTempo returns the file ids in a tempo bucket.
func (idx *Index) TracksByTempo(b TempoBucket) []int64 {
	return idx.byTempo[b]
}

// TracksByDuration returns the file ids in a duration bucket.
func (idx *Index) TracksByDuration(b DurationBucket) []int64 {
	return idx.byDuration[b]
}

// GenreVariants returns the original spellings observed for a
// normalized genre.
func (idx *Index) GenreVariants(norm string) []string {
	return idx.normToOriginals[catalog.Normalize(norm)]
}

// Genres returns every distinct original-casing genre key in the index.
func (idx *Index) Genres() []string {
	genres := make([]string, 0, len(idx.byGenre))
	for g := range idx.byGenre {
		genres = append(genres, g)
	}
	return genres
}

// Cooccurrence returns the genre co-occurrence map accumulated during
// the build.
func (idx *Index) Cooccurrence() *genre.Cooccurrence {
	return idx.co
}
