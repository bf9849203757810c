package render

import (
	"strings"
	"testing"

	"github.com/five82/logtail/internal/query"
	"github.com/five82/logtail/internal/severity"
)

const esc = "\x1b["

func TestRender_ColorDisabledIsVerbatim(t *testing.T) {
	r := New(Options{Color: false, Highlight: true})
	rec := Record{
		Seq:   1,
		Text:  "ERROR\tdisk full",
		Level: severity.Error,
		Spans: []query.Span{{Start: 0, End: 5}},
	}
	if got := r.Render(rec); got != rec.Text {
		t.Fatalf("Render = %q, want %q", got, rec.Text)
	}
}

func TestRender_NoneLevelUnstyled(t *testing.T) {
	r := New(Options{Color: true})
	if got := r.Render(Record{Text: "plain line", Level: severity.None}); got != "plain line" {
		t.Fatalf("Render = %q, want %q", got, "plain line")
	}
}

func TestRender_LevelStylesDiffer(t *testing.T) {
	r := New(Options{Color: true})
	seen := map[string]severity.Level{}
	for _, level := range []severity.Level{severity.Error, severity.Warn, severity.Info, severity.Debug} {
		got := r.Render(Record{Text: "msg", Level: level})
		if !strings.Contains(got, esc) || !strings.Contains(got, "msg") {
			t.Fatalf("Render(%v) = %q, want styled text containing msg", level, got)
		}
		if prev, dup := seen[got]; dup {
			t.Fatalf("Render(%v) = Render(%v) = %q, want distinct styles", level, prev, got)
		}
		seen[got] = level
	}
}

func TestRender_TabsPreserved(t *testing.T) {
	r := New(Options{Color: true})
	got := r.Render(Record{Text: "a\tb warn", Level: severity.Warn})
	if !strings.Contains(got, "a\tb warn") {
		t.Fatalf("Render = %q, want tab preserved", got)
	}
}

func TestRender_HighlightSegments(t *testing.T) {
	r := New(Options{Color: true, Highlight: true})
	rec := Record{
		Text:  "one disk two disk",
		Level: severity.None,
		Spans: []query.Span{{Start: 4, End: 8}, {Start: 13, End: 17}},
	}
	got := r.Render(rec)
	if strings.Count(got, esc) < 2 {
		t.Fatalf("Render = %q, want two highlighted spans", got)
	}
	if !strings.HasPrefix(got, "one ") {
		t.Fatalf("Render = %q, want unstyled prefix for None level", got)
	}
	if stripANSI(got) != rec.Text {
		t.Fatalf("stripped Render = %q, want %q", stripANSI(got), rec.Text)
	}
}

func TestRender_HighlightOffUsesLevelStyle(t *testing.T) {
	withSpans := New(Options{Color: true, Highlight: false})
	rec := Record{Text: "fatal crash", Level: severity.Error, Spans: []query.Span{{Start: 0, End: 5}}}
	whole := New(Options{Color: true}).Render(Record{Text: rec.Text, Level: rec.Level})
	if got := withSpans.Render(rec); got != whole {
		t.Fatalf("Render = %q, want whole-line style %q", got, whole)
	}
}

func TestRender_LineNumbers(t *testing.T) {
	r := New(Options{LineNumbers: true})
	if got := r.Render(Record{Seq: 4, Text: "d"}); got != "     4 d" {
		t.Fatalf("Render = %q, want %q", got, "     4 d")
	}
	if got := r.Render(Record{Seq: 1234567, Text: "x"}); got != "1234567 x" {
		t.Fatalf("Render = %q, want %q", got, "1234567 x")
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
