package catalog

import (
	"testing"

	"github.com/soniclab/curator/internal/identity"
)

func TestResolveIdentity_PrefersAuthorityID(t *testing.T) {
	tr := Track{
		Title:         "Song",
		Artist:        "Band",
		Album:         "Record",
		DurationSec:   200,
		MusicBrainzID: "mbid-1",
		ContentHash:   "hash-1",
	}
	id, ok := ResolveIdentity(tr)
	if !ok {
		t.Fatal("expected identity")
	}
	if id.Source != identity.SourceAuthority || id.Value != "mbid-1" {
		t.Errorf("got %+v, want authority mbid-1", id)
	}
}

func TestResolveIdentity_FallsBackToFingerprint(t *testing.T) {
	tr := Track{Title: "Song", Artist: "Band", Album: "Record", DurationSec: 200}
	id, ok := ResolveIdentity(tr)
	if !ok {
		t.Fatal("expected fingerprint identity")
	}
	if id.Source != identity.SourceMetadata {
		t.Errorf("source = %s, want metadata", id.Source)
	}
}

func TestResolveIdentity_Unresolvable(t *testing.T) {
	if _, ok := ResolveIdentity(Track{Title: "Song"}); ok {
		t.Error("track without artist/album or hashes should not resolve")
	}
}

func TestDuplicates_GroupsAcrossSources(t *testing.T) {
	tracks := []Track{
		{FileID: 1, SourceID: 1, Title: "Song", Artist: "Band", Album: "Record", DurationSec: 200},
		{FileID: 2, SourceID: 2, Title: "  song ", Artist: "BAND", Album: "record", DurationSec: 200.3},
		{FileID: 3, SourceID: 1, Title: "Other", Artist: "Band", Album: "Record", DurationSec: 150},
		{FileID: 4, SourceID: 1, Title: "Untagged"}, // unresolvable
	}
	groups := Duplicates(NewSnapshot(tracks))

	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	g := groups[0]
	if len(g.Tracks) != 2 || g.Tracks[0].FileID != 1 || g.Tracks[1].FileID != 2 {
		t.Errorf("group tracks = %v, want file ids [1 2]", g.Tracks)
	}
	if g.Identity.Source != identity.SourceMetadata {
		t.Errorf("identity source = %s, want metadata", g.Identity.Source)
	}
}

func TestDuplicates_ContentHashBeatsMetadata(t *testing.T) {
	tracks := []Track{
		{FileID: 1, Title: "A", Artist: "X", Album: "R", DurationSec: 100, ContentHash: "same"},
		{FileID: 2, Title: "B", Artist: "Y", Album: "S", DurationSec: 300, ContentHash: "same"},
	}
	groups := Duplicates(NewSnapshot(tracks))

	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].Identity.Source != identity.SourceContent {
		t.Errorf("source = %s, want content", groups[0].Identity.Source)
	}
}
