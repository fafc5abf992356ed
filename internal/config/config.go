// Package config loads runtime settings from environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the knobs the host application exposes. Everything has a
// default; the pet must come up with no configuration at all.
type Config struct {
	// StatePath is the SQLite database location. Empty means
	// ~/.local/share/kanitomo/state.db.
	StatePath string `env:"KANITOMO_STATE_PATH"`
	// LogFile receives log output while the TUI owns the terminal. Only
	// used with -debug; without it logs are discarded.
	LogFile string `env:"KANITOMO_LOG_FILE" envDefault:"kanitomo.log"`

	TickInterval time.Duration `env:"KANITOMO_TICK_INTERVAL" envDefault:"50ms"`
	SaveInterval time.Duration `env:"KANITOMO_SAVE_INTERVAL" envDefault:"60s"`
	CommitBoost  int           `env:"KANITOMO_COMMIT_BOOST" envDefault:"25"`
}

// Load parses the environment and fills in derived defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.StatePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.StatePath = filepath.Join(home, ".local", "share", "kanitomo", "state.db")
	}
	if cfg.TickInterval <= 0 {
		return cfg, fmt.Errorf("tick interval must be positive, got %s", cfg.TickInterval)
	}
	if cfg.SaveInterval <= 0 {
		return cfg, fmt.Errorf("save interval must be positive, got %s", cfg.SaveInterval)
	}
	return cfg, nil
}
