// Package config loads the small settings surface the judgement core
// needs: which hit-window/note-lock dialect to run, and how densely
// the Time Machine buckets snapshots. A flat JSON settings struct,
// the same shape danser-go's own settings loader uses, rather than
// pulling in a dedicated config library for three fields.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/wieku/danser-go/app/beatmap/difficulty"
	"github.com/wieku/danser-go/app/judgement"
)

// Config is the judgement core's runtime configuration.
type Config struct {
	Dialect              string  `json:"dialect"`                // "stable" or "lazer"
	NoteLockStyle        string  `json:"note_lock_style"`        // "none", "stable", or "lazer"
	BucketIntervalMillis float64 `json:"bucket_interval_millis"` // Time Machine snapshot spacing
}

// Default matches the stable dialect's own note-lock policy and a
// one-second bucket interval, the same defaults osu!'s stable ruleset
// assumes when no replay-specific override is present.
func Default() Config {
	return Config{
		Dialect:              "stable",
		NoteLockStyle:        "stable",
		BucketIntervalMillis: 1000,
	}
}

// Load reads a JSON config file, filling any absent field from
// Default().
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}

	return cfg, nil
}

// ResolvedDialect resolves the textual dialect name to difficulty.Dialect.
func (c Config) ResolvedDialect() difficulty.Dialect {
	if c.Dialect == "lazer" {
		return difficulty.Lazer
	}

	return difficulty.Stable
}

// NoteLock resolves the textual note-lock style to judgement.NoteLockStyle.
func (c Config) NoteLock() judgement.NoteLockStyle {
	switch c.NoteLockStyle {
	case "lazer":
		return judgement.NoteLockLazer
	case "none":
		return judgement.NoteLockNone
	default:
		return judgement.NoteLockStable
	}
}
