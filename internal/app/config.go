package app

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SessionPath string // hcl session to open; empty starts a new session
	SavePath    string // where to save after the run; empty skips saving
	LibraryPath string // file or directory of custom node definitions

	Preview bool // print every node's display tree after the run
	Frames  int
	Tick    time.Duration
	// Seed reseeds every randomisable node when set.
	Seed *int64

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.SessionPath == "" && cfg.SavePath == "" && !cfg.Preview {
		return nil, errors.New("nothing to do: give a session to open, a save path or ask for a preview")
	}
	if cfg.Frames < 0 {
		return nil, fmt.Errorf("frames must not be negative, got %d", cfg.Frames)
	}
	if cfg.Frames > 0 && cfg.Tick <= 0 {
		return nil, fmt.Errorf("tick must be positive when running frames, got %s", cfg.Tick)
	}
	return &cfg, nil
}
