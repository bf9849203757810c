package query

import (
	"errors"
	"reflect"
	"testing"
)

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New("error(", "")
	if err == nil {
		t.Fatalf("New returned nil error, want pattern error")
	}
	var perr *PatternError
	if !errors.As(err, &perr) {
		t.Fatalf("New error = %T, want *PatternError", err)
	}
	if perr.Pattern != "error(" {
		t.Fatalf("Pattern = %q, want %q", perr.Pattern, "error(")
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		line    string
		want    bool
	}{
		{"regex hit", "ERROR", "", "ERROR: disk full", true},
		{"regex is case sensitive", "error", "", "ERROR: disk full", false},
		{"regex inline flag", "(?i)error", "", "ERROR: disk full", true},
		{"text substring", "", "rror", "category error", true},
		{"text case insensitive", "", "DISK", "ERROR: disk full", true},
		{"text miss", "", "network", "ERROR: disk full", false},
		{"no query", "", "", "anything at all", true},
		{"no query empty line", "", "", "", true},
		{"regex wins over text", "^a", "zzz", "abc", true},
		{"text non ascii", "", "straße", "Die STRASSE und die Straße", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.pattern, tt.text)
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}
			if got := m.Matches(tt.line); got != tt.want {
				t.Fatalf("Matches(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestFindSpans_RegexNonOverlapping(t *testing.T) {
	m, err := New("aa", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	got := m.FindSpans("aaaa")
	want := []Span{{0, 2}, {2, 4}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindSpans = %v, want %v", got, want)
	}
}

func TestFindSpans_TextOverlapping(t *testing.T) {
	m, err := New("", "AA")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	got := m.FindSpans("xaaa")
	want := []Span{{1, 3}, {2, 4}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindSpans = %v, want %v", got, want)
	}
}

func TestFindSpans_TextOffsetsIndexOriginal(t *testing.T) {
	m, err := New("", "warn")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	line := "ÄÖ WARN here"
	spans := m.FindSpans(line)
	if len(spans) != 1 {
		t.Fatalf("FindSpans = %v, want one span", spans)
	}
	if got := line[spans[0].Start:spans[0].End]; got != "WARN" {
		t.Fatalf("span text = %q, want %q", got, "WARN")
	}
}

func TestFindSpans_NoQuery(t *testing.T) {
	m, err := New("", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if spans := m.FindSpans("anything"); spans != nil {
		t.Fatalf("FindSpans = %v, want nil", spans)
	}
	if m.Active() {
		t.Fatalf("Active = true, want false")
	}
}

func TestDisjoint(t *testing.T) {
	tests := []struct {
		name string
		in   []Span
		want []Span
	}{
		{"empty", nil, nil},
		{"single", []Span{{0, 2}}, []Span{{0, 2}}},
		{"overlap keeps first", []Span{{1, 3}, {2, 4}, {3, 5}}, []Span{{1, 3}, {3, 5}}},
		{"adjacent kept", []Span{{0, 2}, {2, 4}}, []Span{{0, 2}, {2, 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Disjoint(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Disjoint = %v, want %v", got, tt.want)
			}
		})
	}
}
