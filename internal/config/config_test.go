package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.TickInterval != 50*time.Millisecond {
		t.Errorf("TickInterval = %s, want 50ms", cfg.TickInterval)
	}
	if cfg.SaveInterval != 60*time.Second {
		t.Errorf("SaveInterval = %s, want 60s", cfg.SaveInterval)
	}
	if cfg.CommitBoost != 25 {
		t.Errorf("CommitBoost = %d, want 25", cfg.CommitBoost)
	}
	if filepath.Base(cfg.StatePath) != "state.db" {
		t.Errorf("StatePath = %q, want a state.db default", cfg.StatePath)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("KANITOMO_STATE_PATH", "/tmp/elsewhere/pet.db")
	t.Setenv("KANITOMO_TICK_INTERVAL", "100ms")
	t.Setenv("KANITOMO_SAVE_INTERVAL", "5m")
	t.Setenv("KANITOMO_COMMIT_BOOST", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.StatePath != "/tmp/elsewhere/pet.db" {
		t.Errorf("StatePath = %q", cfg.StatePath)
	}
	if cfg.TickInterval != 100*time.Millisecond {
		t.Errorf("TickInterval = %s, want 100ms", cfg.TickInterval)
	}
	if cfg.SaveInterval != 5*time.Minute {
		t.Errorf("SaveInterval = %s, want 5m", cfg.SaveInterval)
	}
	if cfg.CommitBoost != 10 {
		t.Errorf("CommitBoost = %d, want 10", cfg.CommitBoost)
	}
}

func TestLoadRejectsBadIntervals(t *testing.T) {
	t.Setenv("KANITOMO_TICK_INTERVAL", "0s")
	if _, err := Load(); err == nil {
		t.Error("Load() accepted a zero tick interval")
	}
}

func TestLoadRejectsNegativeSaveInterval(t *testing.T) {
	t.Setenv("KANITOMO_SAVE_INTERVAL", "-1m")
	if _, err := Load(); err == nil {
		t.Error("Load() accepted a negative save interval")
	}
}
