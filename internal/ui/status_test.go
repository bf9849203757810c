package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/five82/logtail/internal/logtail"
	"github.com/five82/logtail/internal/state"
)

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=5 = %q, want ab", got)
	}
	got := truncateMiddle("/var/log/nginx/access.log", 12)
	if len(got) > 12 {
		t.Fatalf("got %q (%d bytes), want <=12", got, len(got))
	}
	if !strings.HasSuffix(got, "ss.log") {
		t.Fatalf("truncateMiddle = %q, want the file name end kept", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello world", 8); got != "hello..." {
		t.Fatalf("truncate = %q, want hello...", got)
	}
	if got := truncate("hi", 8); got != "hi" {
		t.Fatalf("truncate short = %q, want hi", got)
	}
	if got := truncate("hello", 0); got != "" {
		t.Fatalf("truncate zero = %q, want empty", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{999, "999 B"},
		{1024, "1.00 KiB"},
		{1024 * 1024, "1.00 MiB"},
		{3 * 1024 * 1024 * 1024, "3.00 GiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Fatalf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatusText(t *testing.T) {
	snap := state.Snapshot{
		Session:    logtail.Stats{Offset: 2048, LinesRead: 12, Resets: 1},
		LinesShown: 7,
	}
	got := statusText(snap, 7, false)
	for _, want := range []string{"2.00 KiB read", "7 shown / 12 read", "7 buffered", "1 resets"} {
		if !strings.Contains(got, want) {
			t.Fatalf("statusText = %q, want it to contain %q", got, want)
		}
	}

	snap.LastError = errors.New("permission denied")
	snap.ConsecutiveFailures = 2
	if got := statusText(snap, 7, false); !strings.Contains(got, "error (2x): permission denied") {
		t.Fatalf("statusText = %q, want error segment", got)
	}

	snap.LastError = nil
	snap.Ended = "file removed"
	if got := statusText(snap, 7, true); !strings.Contains(got, "ended: file removed") {
		t.Fatalf("statusText = %q, want ended segment", got)
	}

	if got := statusText(state.Snapshot{}, 0, true); !strings.Contains(got, "stream closed") {
		t.Fatalf("statusText = %q, want stream closed", got)
	}
}
