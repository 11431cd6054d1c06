// Package catalog defines the track model the engine operates on and a
// sqlite-backed store that loads library snapshots and persists playlists.
package catalog

// Track is a read-only snapshot of one library track. Tag fields arrive
// already normalized from the metadata parser; the engine never re-reads
// files.
type Track struct {
	SourceID int64 // library source (catalog root) the file belongs to
	FileID   int64 // unique within the library database

	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Genres      []string // ordered as tagged, may contain case variants
	Year        int
	TrackNumber int
	DiscNumber  int

	DurationSec float64
	BPM         float64 // 0 when unknown

	// External identifiers, empty when the parser found none.
	MusicBrainzID string
	ISRC          string
	ContentHash   string
	PartialHash   string

	UpdatedAt int64 // unix seconds
	AddedAt   int64
}

// HasBPM reports whether the track carries a usable tempo value.
func (t Track) HasBPM() bool {
	return t.BPM > 0
}
