// Package query decides which log lines are shown and where matches sit
// inside them.
package query

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) into the original line.
type Span struct {
	Start int
	End   int
}

// PatternError reports a filter pattern that failed to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid filter pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Matcher is an immutable compiled query. The zero value matches everything.
type Matcher struct {
	pattern *regexp.Regexp
	needle  string
}

// New builds a Matcher. A non-empty pattern takes precedence over text.
// Empty pattern and text produce a matcher that accepts every line.
func New(pattern, text string) (*Matcher, error) {
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &PatternError{Pattern: pattern, Err: err}
		}
		return &Matcher{pattern: re}, nil
	}
	return &Matcher{needle: strings.ToLower(text)}, nil
}

// Active reports whether the matcher filters anything at all.
func (m *Matcher) Active() bool {
	return m != nil && (m.pattern != nil || m.needle != "")
}

// Matches reports whether line should be shown.
func (m *Matcher) Matches(line string) bool {
	switch {
	case m == nil:
		return true
	case m.pattern != nil:
		return m.pattern.MatchString(line)
	case m.needle != "":
		for i := 0; i < len(line); {
			if _, ok := foldPrefix(line[i:], m.needle); ok {
				return true
			}
			_, size := utf8.DecodeRuneInString(line[i:])
			i += size
		}
		return false
	default:
		return true
	}
}

// FindSpans returns the match ranges in line, in ascending start order.
//
// Regex spans never overlap: each search resumes at the end of the previous
// match. Text spans may overlap: each search resumes one character after the
// start of the previous occurrence, so "aa" in "aaa" yields [0,2) and [1,3).
// Use Disjoint before handing text spans to a renderer.
func (m *Matcher) FindSpans(line string) []Span {
	switch {
	case m == nil:
		return nil
	case m.pattern != nil:
		locs := m.pattern.FindAllStringIndex(line, -1)
		if len(locs) == 0 {
			return nil
		}
		spans := make([]Span, 0, len(locs))
		for _, loc := range locs {
			spans = append(spans, Span{Start: loc[0], End: loc[1]})
		}
		return spans
	case m.needle != "":
		var spans []Span
		for i := 0; i < len(line); {
			if n, ok := foldPrefix(line[i:], m.needle); ok {
				spans = append(spans, Span{Start: i, End: i + n})
			}
			_, size := utf8.DecodeRuneInString(line[i:])
			i += size
		}
		return spans
	default:
		return nil
	}
}

// Disjoint drops every span that overlaps an earlier kept span. Input must
// be sorted by Start; the result is sorted and non-overlapping.
func Disjoint(spans []Span) []Span {
	if len(spans) < 2 {
		return spans
	}
	out := make([]Span, 0, len(spans))
	end := -1
	for _, sp := range spans {
		if sp.Start < end {
			continue
		}
		out = append(out, sp)
		end = sp.End
	}
	return out
}

// foldPrefix reports whether s starts with a case-insensitive copy of the
// lowercased needle and returns how many bytes of s the match covers.
func foldPrefix(s, needle string) (int, bool) {
	n := 0
	for _, want := range needle {
		if n >= len(s) {
			return 0, false
		}
		got, size := utf8.DecodeRuneInString(s[n:])
		if got != want && unicode.ToLower(got) != want {
			return 0, false
		}
		n += size
	}
	return n, true
}
