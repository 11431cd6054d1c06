// Package config loads host configuration. The engine itself never
// reads config; everything it needs is handed over as explicit
// arguments built from the values here.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/soniclab/curator/internal/matching"
)

type Config struct {
	LibraryDB string `koanf:"library_db"` // path to the library database

	Buckets BucketConfig `koanf:"buckets"`
}

// BucketConfig overrides the index bucket boundaries. Zero values fall
// back to the defaults.
type BucketConfig struct {
	TempoSlowMaxBPM     float64 `koanf:"tempo_slow_max_bpm"`
	TempoFastMinBPM     float64 `koanf:"tempo_fast_min_bpm"`
	DurationShortMaxSec float64 `koanf:"duration_short_max_sec"`
	DurationLongMinSec  float64 `koanf:"duration_long_min_sec"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.LibraryDB != "" {
		cfg.LibraryDB = expandPath(cfg.LibraryDB)
	} else {
		cfg.LibraryDB = filepath.Join(xdg.DataHome, "curator", "library.db")
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{
		filepath.Join(xdg.ConfigHome, "curator", "config.toml"),
	}

	// ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Tunables returns the index bucket boundaries with defaults applied
// for any unset value.
func (c *Config) Tunables() matching.Tunables {
	tun := matching.DefaultTunables()
	if c.Buckets.TempoSlowMaxBPM > 0 {
		tun.TempoSlowMaxBPM = c.Buckets.TempoSlowMaxBPM
	}
	if c.Buckets.TempoFastMinBPM > tun.TempoSlowMaxBPM {
		tun.TempoFastMinBPM = c.Buckets.TempoFastMinBPM
	}
	if c.Buckets.DurationShortMaxSec > 0 {
		tun.DurationShortMaxSec = c.Buckets.DurationShortMaxSec
	}
	if c.Buckets.DurationLongMinSec > tun.DurationShortMaxSec {
		tun.DurationLongMinSec = c.Buckets.DurationLongMinSec
	}
	return tun
}
