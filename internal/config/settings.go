package config

import (
	"fmt"
	"os"
	"time"
)

// Settings is the flat, fully resolved configuration for one tail session.
type Settings struct {
	File            string
	InitialLines    int
	FilterPattern   string
	QueryText       string
	ColorEnabled    bool
	ShowLineNumbers bool
	Follow          bool
	HighlightMode   bool

	PollInterval time.Duration
	Watch        string
	Identity     string
	Interactive  bool
	Verbose      bool
	DiagFile     string
}

// Overrides carries command-line values. Nil pointers were not given and
// fall back to the config file.
type Overrides struct {
	File          string
	Lines         *int
	FilterPattern string
	QueryText     string
	NoColor       bool
	LineNumbers   *bool
	Follow        *bool
	Highlight     bool
	PollInterval  *time.Duration
	Watch         *string
	Identity      *string
	Interactive   bool
	Verbose       bool
	DiagFile      *string
}

// Resolve merges cfg and ov into Settings. Highlighting is switched on
// whenever a filter or query is present. NO_COLOR in the environment
// disables color like --no-color does.
func Resolve(cfg Config, ov Overrides) (Settings, error) {
	s := Settings{
		File:            ov.File,
		InitialLines:    pick(ov.Lines, cfg.Lines),
		FilterPattern:   ov.FilterPattern,
		QueryText:       ov.QueryText,
		ColorEnabled:    cfg.Color && !ov.NoColor && os.Getenv("NO_COLOR") == "",
		ShowLineNumbers: pick(ov.LineNumbers, cfg.LineNumbers),
		Follow:          pick(ov.Follow, cfg.Follow),
		PollInterval:    pick(ov.PollInterval, cfg.PollInterval),
		Watch:           pick(ov.Watch, cfg.Watch),
		Identity:        pick(ov.Identity, cfg.Identity),
		Interactive:     ov.Interactive,
		Verbose:         ov.Verbose,
		DiagFile:        pick(ov.DiagFile, cfg.DiagFile),
	}
	s.HighlightMode = ov.Highlight || s.FilterPattern != "" || s.QueryText != ""

	if s.File == "" {
		return Settings{}, fmt.Errorf("no file given")
	}
	if s.InitialLines < 0 {
		return Settings{}, fmt.Errorf("invalid line count %d: must not be negative", s.InitialLines)
	}
	if s.PollInterval <= 0 {
		return Settings{}, fmt.Errorf("invalid poll interval %s: must be positive", s.PollInterval)
	}
	switch s.Watch {
	case WatchNotify, WatchPoll:
	default:
		return Settings{}, fmt.Errorf("invalid watch mode %q: want %s or %s", s.Watch, WatchNotify, WatchPoll)
	}
	switch s.Identity {
	case IdentityInode, IdentityFingerprint:
	default:
		return Settings{}, fmt.Errorf("invalid identity mode %q: want %s or %s", s.Identity, IdentityInode, IdentityFingerprint)
	}
	return s, nil
}

func pick[T any](override *T, fallback T) T {
	if override != nil {
		return *override
	}
	return fallback
}
