// Package playlist holds an ordered, editable collection of generated
// selections while the caller reviews and tweaks a playlist.
package playlist

import (
	"time"

	"github.com/soniclab/curator/internal/generator"
)

// Playlist is an ordered collection of selections.
type Playlist struct {
	name       string
	selections []generator.Selection
}

// New creates a playlist from an initial generation result.
func New(name string, selections []generator.Selection) *Playlist {
	p := &Playlist{name: name}
	p.selections = append(p.selections, selections...)
	return p
}

// Name returns the playlist name.
func (p *Playlist) Name() string {
	return p.name
}

// Len returns the number of selections.
func (p *Playlist) Len() int {
	return len(p.selections)
}

// Selections returns a copy of all selections.
func (p *Playlist) Selections() []generator.Selection {
	out := make([]generator.Selection, len(p.selections))
	copy(out, p.selections)
	return out
}

// At returns the selection at index, or false if out of bounds.
func (p *Playlist) At(index int) (generator.Selection, bool) {
	if index < 0 || index >= len(p.selections) {
		return generator.Selection{}, false
	}
	return p.selections[index], true
}

// Add appends selections.
func (p *Playlist) Add(selections ...generator.Selection) {
	p.selections = append(p.selections, selections...)
}

// Remove removes the selection at index. Returns false if out of
// bounds.
func (p *Playlist) Remove(index int) bool {
	if index < 0 || index >= len(p.selections) {
		return false
	}
	p.selections = append(p.selections[:index], p.selections[index+1:]...)
	return true
}

// Replace swaps the selection at index for a new one, e.g. a
// replacement-generator result. Returns false if out of bounds.
func (p *Playlist) Replace(index int, sel generator.Selection) bool {
	if index < 0 || index >= len(p.selections) {
		return false
	}
	p.selections[index] = sel
	return true
}

// Move moves the selection at fromIndex to toIndex. Returns false if
// either index is out of bounds.
func (p *Playlist) Move(fromIndex, toIndex int) bool {
	if fromIndex < 0 || fromIndex >= len(p.selections) {
		return false
	}
	if toIndex < 0 || toIndex >= len(p.selections) {
		return false
	}
	if fromIndex == toIndex {
		return true
	}

	sel := p.selections[fromIndex]
	p.selections = append(p.selections[:fromIndex], p.selections[fromIndex+1:]...)
	p.selections = append(p.selections[:toIndex],
		append([]generator.Selection{sel}, p.selections[toIndex:]...)...)
	return true
}

// Clear removes all selections.
func (p *Playlist) Clear() {
	p.selections = p.selections[:0]
}

// TrackIDs returns the ordered file ids, the exclusion list for a
// replacement call.
func (p *Playlist) TrackIDs() []int64 {
	ids := make([]int64, 0, len(p.selections))
	for _, sel := range p.selections {
		ids = append(ids, sel.Track.FileID)
	}
	return ids
}

// Contains reports whether a track is already in the playlist.
func (p *Playlist) Contains(fileID int64) bool {
	for _, sel := range p.selections {
		if sel.Track.FileID == fileID {
			return true
		}
	}
	return false
}

// TotalDuration sums the selected tracks' durations.
func (p *Playlist) TotalDuration() time.Duration {
	var total time.Duration
	for _, sel := range p.selections {
		total += time.Duration(sel.Track.DurationSec * float64(time.Second))
	}
	return total
}
