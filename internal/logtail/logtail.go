package logtail

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
)

// Stats is a point-in-time view of a session.
type Stats struct {
	Path      string
	Offset    int64
	Size      int64
	LinesRead int
	Resets    int
}

// Option configures a Session.
type Option func(*Session)

// WithIdentifier overrides how rotation is detected. The default is
// StatIdentifier.
func WithIdentifier(id Identifier) Option {
	return func(s *Session) {
		if id != nil {
			s.ident = id
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.log = logger
	}
}

// WithObserver registers fn to be called after every poll made by Follow,
// with the session counters and the poll error, if any.
func WithObserver(fn func(Stats, error)) Option {
	return func(s *Session) {
		s.observe = fn
	}
}

// Session tails one file. It is not safe for concurrent use; Poll and
// Follow must be driven from a single goroutine.
type Session struct {
	path    string
	ident   Identifier
	log     zerolog.Logger
	observe func(Stats, error)

	file   *os.File
	id     Identity
	offset int64
	size   int64

	initial   []string
	remainder string
	linesRead int
	resets    int
}

// Open opens path and collects its last initialLines complete lines. The
// read offset is left just past the last complete line, so a trailing
// fragment still being written is delivered by a later Poll once finished.
func Open(path string, initialLines int, opts ...Option) (*Session, error) {
	s := &Session{
		path:  path,
		ident: StatIdentifier{},
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("path", path).Logger()

	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, &OpenError{Path: path, Err: errors.New("is a directory")}
	}
	id, err := s.ident.Identify(path, info)
	if err != nil {
		_ = f.Close()
		return nil, &OpenError{Path: path, Err: fmt.Errorf("identify: %w", err)}
	}

	size := info.Size()
	end, err := completeEnd(f, size)
	if err != nil {
		_ = f.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	start, err := tailStart(f, end, initialLines)
	if err != nil {
		_ = f.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	lines, consumed, err := readComplete(f, start, end)
	if err != nil {
		_ = f.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	if end < size {
		buf := make([]byte, size-end)
		if err := readChunk(f, buf, end); err == nil {
			s.remainder = trimEOL(string(buf))
		}
	}

	s.file = f
	s.id = id
	s.offset = start + consumed
	s.size = size
	s.initial = lines
	s.linesRead = len(lines)
	s.log.Debug().Int64("offset", s.offset).Int("lines", len(lines)).Msg("opened")
	return s, nil
}

// Initial returns the lines collected by Open, oldest first.
func (s *Session) Initial() []string { return s.initial }

// Remainder returns the unterminated fragment that ended the file at Open
// time, or "". Follow mode never needs it: Poll delivers the line once it is
// finished.
func (s *Session) Remainder() string { return s.remainder }

// Path returns the tailed path.
func (s *Session) Path() string { return s.path }

// Offset returns the byte offset just past the last line delivered.
func (s *Session) Offset() int64 { return s.offset }

// Stats returns a snapshot of the session counters.
func (s *Session) Stats() Stats {
	return Stats{
		Path:      s.path,
		Offset:    s.offset,
		Size:      s.size,
		LinesRead: s.linesRead,
		Resets:    s.resets,
	}
}

// Poll returns the complete lines appended since the previous call, in
// order. It never blocks waiting for data: no growth yields an empty slice.
//
// A rotated file (different identity at the same path) or a truncated one
// (size below the offset) is read again from the start. Before switching to
// a rotated file, whatever complete lines remain in the old one are drained.
// A changed identity on the same underlying file (a fingerprint after an
// in-place rewrite) is treated like a truncation: no drain.
func (s *Session) Poll() ([]string, error) {
	if s.file == nil {
		return nil, ErrClosed
	}
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileRemoved
		}
		return nil, &ReadError{Path: s.path, Op: "stat", Err: err}
	}
	id, err := s.ident.Identify(s.path, info)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileRemoved
		}
		return nil, &ReadError{Path: s.path, Op: "identify", Err: err}
	}

	var drained []string
	size := info.Size()
	switch {
	case !id.Same(s.id):
		next, err := os.Open(s.path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, ErrFileRemoved
			}
			return nil, &ReadError{Path: s.path, Op: "reopen", Err: err}
		}
		if sameFile(s.file, next) {
			// Rewritten in place; the old handle holds the new content.
			_ = next.Close()
			s.id = id
			s.reset("rewritten")
			break
		}
		drained = s.drain()
		_ = s.file.Close()
		s.file = next
		s.id = id
		s.reset("rotated")
	case size < s.offset:
		s.id = id
		s.reset("truncated")
	}
	s.size = size

	if size == s.offset {
		return drained, nil
	}
	lines, consumed, err := readComplete(s.file, s.offset, size)
	if err != nil {
		if len(drained) > 0 {
			return drained, nil
		}
		return nil, &ReadError{Path: s.path, Op: "read", Err: err}
	}
	s.offset += consumed
	s.linesRead += len(lines)
	if len(drained) > 0 {
		return append(drained, lines...), nil
	}
	return lines, nil
}

// drain reads the complete lines still unread in the current handle.
func (s *Session) drain() []string {
	info, err := s.file.Stat()
	if err != nil || info.Size() <= s.offset {
		return nil
	}
	lines, _, err := readComplete(s.file, s.offset, info.Size())
	if err != nil {
		return nil
	}
	s.linesRead += len(lines)
	return lines
}

func (s *Session) reset(reason string) {
	s.log.Info().Str("reason", reason).Int64("offset", s.offset).Msg("reading from start")
	s.offset = 0
	s.resets++
}

// Waiter blocks until the file may have changed. watch.Watcher satisfies it.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Follow delivers appended lines to emit until the file is removed, ctx
// ends, or emit fails. It polls once before the first wait so nothing
// written since Open is missed.
//
// Removal returns ErrFileRemoved. Transient read errors are logged and
// retried on the next wake-up. Context cancellation returns nil.
func (s *Session) Follow(ctx context.Context, w Waiter, emit func(line string) error) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		lines, err := s.Poll()
		if s.observe != nil {
			s.observe(s.Stats(), err)
		}
		if err != nil {
			var readErr *ReadError
			switch {
			case errors.Is(err, ErrFileRemoved):
				s.log.Info().Msg("file removed, stopping")
				return ErrFileRemoved
			case errors.As(err, &readErr):
				s.log.Warn().Err(err).Msg("read failed, retrying")
			default:
				return err
			}
		}
		for _, line := range lines {
			if err := emit(line); err != nil {
				return err
			}
		}
		if err := w.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("wait for changes: %w", err)
		}
	}
}

// Close releases the file handle. Further Polls return ErrClosed.
func (s *Session) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
