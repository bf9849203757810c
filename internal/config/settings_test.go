package config

import (
	"strings"
	"testing"
	"time"
)

func ptr[T any](v T) *T { return &v }

func TestResolve_DefaultsAndHighlight(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	tests := []struct {
		name          string
		ov            Overrides
		wantHighlight bool
	}{
		{"no filter", Overrides{File: "app.log"}, false},
		{"explicit flag", Overrides{File: "app.log", Highlight: true}, true},
		{"filter implies highlight", Overrides{File: "app.log", FilterPattern: "err"}, true},
		{"query implies highlight", Overrides{File: "app.log", QueryText: "disk"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Resolve(Defaults(), tt.ov)
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if s.HighlightMode != tt.wantHighlight {
				t.Fatalf("HighlightMode = %v, want %v", s.HighlightMode, tt.wantHighlight)
			}
			if s.InitialLines != 10 || !s.Follow || !s.ColorEnabled || s.ShowLineNumbers {
				t.Fatalf("Settings = %#v, want defaults", s)
			}
		})
	}
}

func TestResolve_OverridesWinOverConfig(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	cfg := Defaults()
	cfg.Lines = 40
	cfg.LineNumbers = true

	s, err := Resolve(cfg, Overrides{
		File:         "app.log",
		Lines:        ptr(3),
		LineNumbers:  ptr(false),
		Follow:       ptr(false),
		NoColor:      true,
		PollInterval: ptr(50 * time.Millisecond),
		Watch:        ptr(WatchPoll),
	})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if s.InitialLines != 3 || s.ShowLineNumbers || s.Follow || s.ColorEnabled {
		t.Fatalf("Settings = %#v, want overrides applied", s)
	}
	if s.PollInterval != 50*time.Millisecond || s.Watch != WatchPoll {
		t.Fatalf("PollInterval/Watch = %v/%q, want 50ms/poll", s.PollInterval, s.Watch)
	}

	s, err = Resolve(cfg, Overrides{File: "app.log"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if s.InitialLines != 40 || !s.ShowLineNumbers {
		t.Fatalf("Settings = %#v, want config values", s)
	}
}

func TestResolve_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	s, err := Resolve(Defaults(), Overrides{File: "app.log"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if s.ColorEnabled {
		t.Fatalf("ColorEnabled = true, want false with NO_COLOR set")
	}
}

func TestResolve_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		ov      Overrides
		wantErr string
	}{
		{"missing file", Overrides{}, "no file"},
		{"negative lines", Overrides{File: "a", Lines: ptr(-1)}, "line count"},
		{"zero poll", Overrides{File: "a", PollInterval: ptr(time.Duration(0))}, "poll interval"},
		{"bad watch", Overrides{File: "a", Watch: ptr("inotify")}, "watch mode"},
		{"bad identity", Overrides{File: "a", Identity: ptr("hash")}, "identity mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(Defaults(), tt.ov)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Resolve error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}
