package catalog

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Rock", "rock"},
		{"  Indie Rock  ", "indie rock"},
		{"DRUM   AND   BASS", "drum and bass"},
		{"r&b", "r&b"},
		{"", ""},
		{"   ", ""},
		{"Hip\tHop", "hip hop"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeAll_DropsEmpty(t *testing.T) {
	got := NormalizeAll([]string{"Rock", "  ", "", "Jazz "})
	want := []string{"rock", "jazz"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}
