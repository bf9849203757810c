// Package render turns a classified, matched log line into display text.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/five82/logtail/internal/query"
	"github.com/five82/logtail/internal/severity"
)

// Record is one line on its way to the sink.
type Record struct {
	Seq   int
	Text  string
	Level severity.Level
	Spans []query.Span
}

// Options control how records are displayed.
type Options struct {
	Color       bool
	Highlight   bool
	LineNumbers bool
}

// Renderer holds the styles for one display configuration. It does no I/O.
type Renderer struct {
	opts   Options
	levels map[severity.Level]lipgloss.Style
	match  lipgloss.Style
}

// New builds a Renderer. Styles always use the 16-color ANSI profile so the
// output does not depend on what the sink is attached to.
func New(opts Options) *Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)

	return &Renderer{
		opts: opts,
		levels: map[severity.Level]lipgloss.Style{
			severity.Error: base.Foreground(lipgloss.Color("1")).Bold(true),
			severity.Warn:  base.Foreground(lipgloss.Color("3")),
			severity.Info:  base.Foreground(lipgloss.Color("4")),
			severity.Debug: base.Foreground(lipgloss.Color("6")),
		},
		match: base.Reverse(true),
	}
}

// Options returns the display options the renderer was built with.
func (r *Renderer) Options() Options { return r.opts }

// Render returns the display text for rec. Spans must be sorted and
// non-overlapping; see query.Disjoint.
func (r *Renderer) Render(rec Record) string {
	body := r.body(rec)
	if r.opts.LineNumbers {
		return fmt.Sprintf("%6d %s", rec.Seq, body)
	}
	return body
}

func (r *Renderer) body(rec Record) string {
	if !r.opts.Color {
		return rec.Text
	}
	if !r.opts.Highlight || len(rec.Spans) == 0 {
		return r.styleLevel(rec.Level, rec.Text)
	}

	var b strings.Builder
	last := 0
	for _, sp := range rec.Spans {
		if sp.Start < last || sp.End > len(rec.Text) || sp.Start >= sp.End {
			continue
		}
		if sp.Start > last {
			b.WriteString(r.styleLevel(rec.Level, rec.Text[last:sp.Start]))
		}
		b.WriteString(r.match.Render(rec.Text[sp.Start:sp.End]))
		last = sp.End
	}
	if last < len(rec.Text) {
		b.WriteString(r.styleLevel(rec.Level, rec.Text[last:]))
	}
	return b.String()
}

func (r *Renderer) styleLevel(level severity.Level, text string) string {
	style, ok := r.levels[level]
	if !ok || text == "" {
		return text
	}
	return style.Render(text)
}
