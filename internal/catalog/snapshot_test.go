package catalog

import (
	"testing"
)

func testTracks() []Track {
	return []Track{
		{FileID: 1, Artist: "Radiohead", Album: "OK Computer", Title: "Karma Police", Genres: []string{"Rock", "Alternative"}, DurationSec: 261},
		{FileID: 2, Artist: "Muse", Album: "Absolution", Title: "Hysteria", Genres: []string{"rock"}, DurationSec: 227},
		{FileID: 3, Artist: "Aphex Twin", Album: "Drukqs", Title: "Avril 14th", Genres: []string{"Electronic"}, DurationSec: 126},
	}
}

func TestSnapshot_TrackByID(t *testing.T) {
	s := NewSnapshot(testTracks())

	tr, ok := s.TrackByID(2)
	if !ok || tr.Artist != "Muse" {
		t.Errorf("TrackByID(2) = %+v, %v", tr, ok)
	}
	if _, ok := s.TrackByID(99); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestSnapshot_DuplicateFileIDLastWins(t *testing.T) {
	tracks := testTracks()
	tracks = append(tracks, Track{FileID: 1, Artist: "Radiohead", Title: "Karma Police (Live)"})
	s := NewSnapshot(tracks)

	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	tr, _ := s.TrackByID(1)
	if tr.Title != "Karma Police (Live)" {
		t.Errorf("expected later duplicate to win, got %q", tr.Title)
	}
}

func TestSnapshot_Genres(t *testing.T) {
	s := NewSnapshot(testTracks())

	// Case variants are both kept (reconciliation is the index's job)
	// and the order is fully determined: case-insensitive, then
	// byte-wise for casing ties, never track order.
	want := []string{"Alternative", "Electronic", "Rock", "rock"}
	got := s.Genres()
	if len(got) != len(want) {
		t.Fatalf("genres = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("genres = %v, want %v", got, want)
		}
	}

	// Same catalog in reverse track order yields the identical list.
	tracks := testTracks()
	for i, j := 0, len(tracks)-1; i < j; i, j = i+1, j-1 {
		tracks[i], tracks[j] = tracks[j], tracks[i]
	}
	reversed := NewSnapshot(tracks).Genres()
	for i := range want {
		if reversed[i] != want[i] {
			t.Fatalf("genres from reversed tracks = %v, want %v", reversed, want)
		}
	}
}

func TestSnapshot_Artists(t *testing.T) {
	s := NewSnapshot(testTracks())
	artists := s.Artists()
	want := []string{"Aphex Twin", "Muse", "Radiohead"}
	if len(artists) != len(want) {
		t.Fatalf("artists = %v, want %v", artists, want)
	}
	for i := range want {
		if artists[i] != want[i] {
			t.Errorf("artists = %v, want %v", artists, want)
		}
	}
}

func TestDuplicates_GroupsByIdentity(t *testing.T) {
	tracks := []Track{
		// Same MusicBrainz id across two sources.
		{FileID: 1, SourceID: 1, MusicBrainzID: "mb-1", Title: "A", Artist: "X", Album: "Z", DurationSec: 100},
		{FileID: 2, SourceID: 2, MusicBrainzID: "mb-1", Title: "A", Artist: "X", Album: "Z", DurationSec: 100},
		// Same metadata fingerprint, no stronger id.
		{FileID: 3, Title: "B", Artist: "Y", Album: "W", DurationSec: 200},
		{FileID: 4, Title: "b", Artist: "y", Album: "w", DurationSec: 200.2},
		// Unresolvable: incomplete tags, no ids.
		{FileID: 5, Title: "C"},
		// Singleton.
		{FileID: 6, Title: "D", Artist: "Q", Album: "V", DurationSec: 50},
	}

	groups := Duplicates(NewSnapshot(tracks))
	if len(groups) != 2 {
		t.Fatalf("expected 2 duplicate groups, got %d: %+v", len(groups), groups)
	}
	for _, g := range groups {
		if len(g.Tracks) != 2 {
			t.Errorf("group %q has %d tracks, want 2", g.Identity.Value, len(g.Tracks))
		}
	}
}
