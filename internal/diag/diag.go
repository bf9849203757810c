// Package diag builds the diagnostics logger. Diagnostics never go to the
// data stream: the console writer targets stderr, and an optional file sink
// receives JSON records rotated by size.
package diag

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configure the diagnostics logger.
type Options struct {
	// Console receives human-readable records. Nil means os.Stderr.
	Console io.Writer
	// File, when set, also receives JSON records, rotated by lumberjack.
	File       string
	MaxSizeMB  int
	MaxBackups int
	Verbose    bool
}

const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
)

// New returns the logger and a close function that flushes the file sink.
func New(opts Options) (zerolog.Logger, func() error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	cw := zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(console),
	}

	writers := []io.Writer{cw}
	closeFn := func() error { return nil }
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, defaultMaxSizeMB),
			MaxBackups: orDefault(opts.MaxBackups, defaultMaxBackups),
		}
		writers = append(writers, lj)
		closeFn = lj.Close
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()
	return logger, closeFn
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
