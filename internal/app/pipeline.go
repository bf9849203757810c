package app

import (
	"github.com/five82/logtail/internal/query"
	"github.com/five82/logtail/internal/render"
	"github.com/five82/logtail/internal/severity"
)

// Pipeline carries each raw line through match, classify and render, and
// hands the result to the sink. Sequence numbers count shown lines only.
type Pipeline struct {
	matcher  *query.Matcher
	renderer *render.Renderer
	sink     func(string) error
	seq      int
}

// NewPipeline wires a matcher and renderer to sink.
func NewPipeline(matcher *query.Matcher, renderer *render.Renderer, sink func(string) error) *Pipeline {
	return &Pipeline{matcher: matcher, renderer: renderer, sink: sink}
}

// Process handles one line. Lines the matcher rejects are dropped without
// consuming a sequence number.
func (p *Pipeline) Process(line string) error {
	if !p.matcher.Matches(line) {
		return nil
	}
	p.seq++
	rec := render.Record{
		Seq:   p.seq,
		Text:  line,
		Level: severity.Classify(line),
	}
	if opts := p.renderer.Options(); opts.Color && opts.Highlight {
		rec.Spans = query.Disjoint(p.matcher.FindSpans(line))
	}
	return p.sink(p.renderer.Render(rec))
}

// Shown returns how many lines reached the sink.
func (p *Pipeline) Shown() int { return p.seq }
