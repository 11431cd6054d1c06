package identity

import "testing"

func TestFingerprint_Deterministic(t *testing.T) {
	a, ok := Fingerprint("Karma Police", "Radiohead", "OK Computer", 261.4)
	if !ok {
		t.Fatal("expected fingerprint for complete tags")
	}
	b, ok := Fingerprint("Karma Police", "Radiohead", "OK Computer", 261.4)
	if !ok || a != b {
		t.Errorf("fingerprint not deterministic: %q vs %q", a, b)
	}
}

func TestFingerprint_Length(t *testing.T) {
	fp, ok := Fingerprint("Title", "Artist", "Album", 245)
	if !ok {
		t.Fatal("expected fingerprint")
	}
	if len(fp) != 14 {
		t.Errorf("fingerprint length = %d, want 14", len(fp))
	}
}

func TestFingerprint_MissingFields(t *testing.T) {
	tests := []struct {
		name                 string
		title, artist, album string
	}{
		{"empty title", "", "Artist", "Album"},
		{"empty artist", "Title", "", "Album"},
		{"empty album", "Title", "Artist", ""},
		{"whitespace title", "   ", "Artist", "Album"},
		{"all empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if fp, ok := Fingerprint(tt.title, tt.artist, tt.album, 245); ok {
				t.Errorf("expected no fingerprint, got %q", fp)
			}
		})
	}
}

func TestFingerprint_CaseAndWhitespaceInsensitive(t *testing.T) {
	a, _ := Fingerprint("Karma Police", "Radiohead", "OK Computer", 261)
	b, _ := Fingerprint("  karma police ", "RADIOHEAD", "ok computer", 261)
	if a != b {
		t.Errorf("case/whitespace variants should match: %q vs %q", a, b)
	}
}

func TestFingerprint_DurationRounding(t *testing.T) {
	a, _ := Fingerprint("Title", "Artist", "Album", 244.6)
	b, _ := Fingerprint("Title", "Artist", "Album", 245.4)
	if a != b {
		t.Errorf("durations rounding to the same second should match")
	}

	c, _ := Fingerprint("Title", "Artist", "Album", 246)
	if a == c {
		t.Errorf("distinct rounded durations should differ")
	}
}

func TestFingerprint_NoCollisionsAcrossInputSet(t *testing.T) {
	type input struct {
		title, artist, album string
		dur                  float64
	}
	inputs := []input{
		{"Karma Police", "Radiohead", "OK Computer", 261},
		{"Karma Police", "Radiohead", "OK Computer", 262},
		{"Karma Police", "Radiohead", "The Bends", 261},
		{"Karma Police", "Muse", "OK Computer", 261},
		{"Paranoid Android", "Radiohead", "OK Computer", 261},
		{"Creep", "Radiohead", "Pablo Honey", 238},
		{"Creep", "TLC", "CrazySexyCool", 238},
		// Separator safety: field content must not shift across fields.
		{"a", "b", "c", 1},
		{"a b", "", "c", 1}, // invalid, skipped below
		{"ab", "b", "c", 1},
		{"a", "bb", "c", 1},
	}

	seen := make(map[string]input)
	for _, in := range inputs {
		fp, ok := Fingerprint(in.title, in.artist, in.album, in.dur)
		if !ok {
			continue
		}
		if prev, dup := seen[fp]; dup {
			t.Errorf("collision between %+v and %+v", prev, in)
		}
		seen[fp] = in
	}
}

func TestResolve_PreferenceOrder(t *testing.T) {
	tests := []struct {
		name       string
		ids        Identifiers
		wantValue  string
		wantSource Source
	}{
		{
			name: "authority beats everything",
			ids: Identifiers{
				AuthorityID: "mbid-1",
				ContentHash: "hash-1",
				Fingerprint: "fp-1",
			},
			wantValue:  "mbid-1",
			wantSource: SourceAuthority,
		},
		{
			name: "content hash beats fingerprint",
			ids: Identifiers{
				ContentHash: "hash-1",
				Fingerprint: "fp-1",
			},
			wantValue:  "hash-1",
			wantSource: SourceContent,
		},
		{
			name:       "fingerprint alone",
			ids:        Identifiers{Fingerprint: "fp-1"},
			wantValue:  "fp-1",
			wantSource: SourceMetadata,
		},
		{
			name:       "isrc and partial hash never resolve on their own",
			ids:        Identifiers{ISRC: "USUM71703861", PartialHash: "ph-1"},
			wantValue:  "",
			wantSource: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.ids)
			if tt.wantValue == "" {
				if ok {
					t.Fatalf("expected no resolution, got %+v", got)
				}
				return
			}
			if !ok {
				t.Fatal("expected resolution")
			}
			if got.Value != tt.wantValue || got.Source != tt.wantSource {
				t.Errorf("got %+v, want {%s %s}", got, tt.wantValue, tt.wantSource)
			}
		})
	}
}

func TestResolve_Pure(t *testing.T) {
	ids := Identifiers{AuthorityID: "mbid-1", Fingerprint: "fp-1"}
	a, _ := Resolve(ids)
	b, _ := Resolve(ids)
	if a != b {
		t.Errorf("resolution not deterministic: %+v vs %+v", a, b)
	}
}
