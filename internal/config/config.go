package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Watch modes.
const (
	WatchNotify = "fsnotify"
	WatchPoll   = "poll"
)

// Rotation identity modes.
const (
	IdentityInode       = "inode"
	IdentityFingerprint = "fingerprint"
)

// Config holds the user's defaults from the config file.
type Config struct {
	Lines        int
	Color        bool
	LineNumbers  bool
	Follow       bool
	PollInterval time.Duration
	Watch        string
	Identity     string
	DiagFile     string
}

const (
	defaultConfigPath   = "~/.config/logtail/config.toml"
	defaultLines        = 10
	defaultPollInterval = time.Second
)

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Lines:        defaultLines,
		Color:        true,
		Follow:       true,
		PollInterval: defaultPollInterval,
		Watch:        WatchNotify,
		Identity:     IdentityInode,
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Lines        *int   `toml:"lines"`
		Color        *bool  `toml:"color"`
		LineNumbers  *bool  `toml:"line_numbers"`
		Follow       *bool  `toml:"follow"`
		PollInterval string `toml:"poll_interval"`
		Watch        string `toml:"watch"`
		Identity     string `toml:"identity"`
		DiagFile     string `toml:"diag_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.Lines != nil {
		cfg.Lines = *raw.Lines
	}
	if raw.Color != nil {
		cfg.Color = *raw.Color
	}
	if raw.LineNumbers != nil {
		cfg.LineNumbers = *raw.LineNumbers
	}
	if raw.Follow != nil {
		cfg.Follow = *raw.Follow
	}
	if s := strings.TrimSpace(raw.PollInterval); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: poll_interval: %w", err)
		}
		cfg.PollInterval = d
	}
	if s := strings.TrimSpace(raw.Watch); s != "" {
		cfg.Watch = strings.ToLower(s)
	}
	if s := strings.TrimSpace(raw.Identity); s != "" {
		cfg.Identity = strings.ToLower(s)
	}
	if s := strings.TrimSpace(raw.DiagFile); s != "" {
		cfg.DiagFile = mustExpand(s)
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
