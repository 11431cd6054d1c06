package config

import (
	"testing"

	"github.com/soniclab/curator/internal/matching"
)

func TestTunables_Defaults(t *testing.T) {
	cfg := &Config{}
	if got := cfg.Tunables(); got != matching.DefaultTunables() {
		t.Errorf("Tunables = %+v, want defaults", got)
	}
}

func TestTunables_Overrides(t *testing.T) {
	cfg := &Config{Buckets: BucketConfig{
		TempoSlowMaxBPM: 100,
		TempoFastMinBPM: 160,
	}}
	tun := cfg.Tunables()
	if tun.TempoSlowMaxBPM != 100 || tun.TempoFastMinBPM != 160 {
		t.Errorf("tempo overrides not applied: %+v", tun)
	}
	if tun.DurationShortMaxSec != matching.DefaultTunables().DurationShortMaxSec {
		t.Errorf("unset duration bucket should keep default, got %+v", tun)
	}
}

func TestTunables_RejectsInvertedTempoBounds(t *testing.T) {
	cfg := &Config{Buckets: BucketConfig{
		TempoSlowMaxBPM: 120,
		TempoFastMinBPM: 100, // below slow max, ignored
	}}
	tun := cfg.Tunables()
	if tun.TempoFastMinBPM != matching.DefaultTunables().TempoFastMinBPM {
		t.Errorf("inverted fast bound should be ignored, got %+v", tun)
	}
}
