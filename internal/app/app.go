package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/five82/logtail/internal/config"
	"github.com/five82/logtail/internal/diag"
	"github.com/five82/logtail/internal/logtail"
	"github.com/five82/logtail/internal/prefs"
	"github.com/five82/logtail/internal/query"
	"github.com/five82/logtail/internal/render"
	"github.com/five82/logtail/internal/state"
	"github.com/five82/logtail/internal/ui"
	"github.com/five82/logtail/internal/watch"
)

// lineBuffer bounds how far the follow loop may run ahead of the viewer.
const lineBuffer = 256

// Options configure one logtail run.
type Options struct {
	Settings  config.Settings
	Stdout    io.Writer // data stream; nil uses os.Stdout
	Stderr    io.Writer // diagnostics; nil uses os.Stderr
	Stdin     io.Reader // viewer input; nil uses os.Stdin
	PrefsPath string    // empty uses default ~/.config/logtail/prefs.toml
}

// Run tails the configured file until it is done, removed, or ctx ends.
// Removal and cancellation are clean exits.
func Run(ctx context.Context, opts Options) error {
	settings := opts.Settings
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	logger, closeDiag := diag.New(diag.Options{
		Console: stderr,
		File:    settings.DiagFile,
		Verbose: settings.Verbose,
	})
	defer func() { _ = closeDiag() }()

	matcher, err := query.New(settings.FilterPattern, settings.QueryText)
	if err != nil {
		return err
	}
	renderer := render.New(render.Options{
		Color:       settings.ColorEnabled,
		Highlight:   settings.HighlightMode,
		LineNumbers: settings.ShowLineNumbers,
	})

	if settings.Interactive && !isTerminal(stdout) {
		return fmt.Errorf("interactive mode requires a terminal")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var lines chan string
	sink := writeLine(stdout)
	if settings.Interactive {
		lines = make(chan string, lineBuffer)
		sink = sendLine(ctx, lines)
	}
	pipeline := NewPipeline(matcher, renderer, sink)
	store := &state.Store{}

	session, err := logtail.Open(settings.File, settings.InitialLines,
		logtail.WithIdentifier(identifierFor(settings.Identity)),
		logtail.WithLogger(logger),
		logtail.WithObserver(func(stats logtail.Stats, err error) {
			if errors.Is(err, logtail.ErrFileRemoved) {
				return
			}
			store.Update(stats, pipeline.Shown(), err)
		}),
	)
	if err != nil {
		return err
	}
	defer session.Close()

	r := runner{
		settings: settings,
		logger:   logger,
		session:  session,
		store:    store,
		pipeline: pipeline,
		stop:     cancel,
	}
	defer r.summary()

	if !settings.Interactive {
		return r.stream(ctx)
	}
	userPrefs := prefs.Load(opts.PrefsPath)
	return r.interactive(ctx, lines, ui.Options{
		Lines:      lines,
		Store:      store,
		Path:       settings.File,
		ThemeName:  userPrefs.Theme,
		Scrollback: userPrefs.Scrollback,
		PrefsPath:  opts.PrefsPath,
		Input:      opts.Stdin,
		Output:     stdout,
	})
}

type runner struct {
	settings config.Settings
	logger   zerolog.Logger
	session  *logtail.Session
	store    *state.Store
	pipeline *Pipeline
	stop     context.CancelFunc
}

// stream prints the initial batch and, when following, every appended line.
func (r runner) stream(ctx context.Context) error {
	if err := r.initial(); err != nil {
		return err
	}
	if !r.settings.Follow {
		return nil
	}

	w, err := r.watcher()
	if err != nil {
		return err
	}
	defer w.Close()

	return r.finish(r.session.Follow(ctx, r.waiter(w), r.pipeline.Process))
}

// interactive runs the follow loop and the viewer side by side. Quitting the
// viewer stops the follow loop; the viewer outlives a removed file so the
// last lines stay on screen.
func (r runner) interactive(ctx context.Context, lines chan string, uiOpts ui.Options) error {
	var w watch.Watcher
	if r.settings.Follow {
		var err error
		if w, err = r.watcher(); err != nil {
			return err
		}
		defer w.Close()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(lines)
		if err := r.initial(); err != nil {
			if gctx.Err() != nil {
				return nil
			}
			return err
		}
		if w == nil {
			r.store.End("follow disabled")
			return nil
		}
		err := r.session.Follow(gctx, r.waiter(w), r.pipeline.Process)
		if gctx.Err() != nil {
			return nil
		}
		return r.finish(err)
	})
	g.Go(func() error {
		defer r.stop()
		return ui.Run(gctx, uiOpts)
	})
	return g.Wait()
}

// initial emits the lines collected at open. Without follow, a trailing
// unterminated line is emitted too, since no later poll will deliver it.
func (r runner) initial() error {
	batch := r.session.Initial()
	if !r.settings.Follow {
		if rest := r.session.Remainder(); rest != "" {
			batch = append(batch[:len(batch):len(batch)], rest)
		}
	}
	for _, line := range batch {
		if err := r.pipeline.Process(line); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	r.store.Update(r.session.Stats(), r.pipeline.Shown(), nil)
	return nil
}

func (r runner) watcher() (watch.Watcher, error) {
	if r.settings.Watch == config.WatchPoll {
		return watch.NewTicker(r.settings.PollInterval), nil
	}
	return watch.NewNotify(r.settings.File, r.settings.PollInterval, r.logger)
}

func (r runner) waiter(w watch.Watcher) logtail.Waiter {
	return backoffWaiter{next: w, store: r.store, base: r.settings.PollInterval}
}

// finish maps the follow loop's result to the run result. A removed file
// ends the session cleanly.
func (r runner) finish(err error) error {
	if errors.Is(err, logtail.ErrFileRemoved) {
		r.store.End("file removed")
		r.logger.Info().Str("path", r.settings.File).Msg("file removed, exiting")
		return nil
	}
	if err != nil {
		r.store.End(err.Error())
		return fmt.Errorf("follow %s: %w", r.settings.File, err)
	}
	r.store.End("stopped")
	return nil
}

func (r runner) summary() {
	if !r.settings.Verbose {
		return
	}
	stats := r.session.Stats()
	r.logger.Info().
		Int("lines_read", stats.LinesRead).
		Int("lines_shown", r.pipeline.Shown()).
		Int("resets", stats.Resets).
		Int64("offset", stats.Offset).
		Msg("session summary")
}

func identifierFor(mode string) logtail.Identifier {
	if mode == config.IdentityFingerprint {
		return logtail.FingerprintIdentifier{}
	}
	return logtail.StatIdentifier{}
}

func writeLine(w io.Writer) func(string) error {
	return func(text string) error {
		_, err := fmt.Fprintln(w, text)
		return err
	}
}

// sendLine hands rendered lines to the viewer, giving up once ctx ends.
func sendLine(ctx context.Context, lines chan<- string) func(string) error {
	return func(text string) error {
		select {
		case lines <- text:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
