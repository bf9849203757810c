package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Notify combines filesystem notifications with a fallback poll tick.
//
// The parent directory is watched rather than the file itself so the watch
// survives rename-and-recreate rotation.
type Notify struct {
	target  string
	watcher *fsnotify.Watcher
	ticker  *time.Ticker
	signal  chan struct{}
	log     zerolog.Logger

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// NewNotify starts watching path. interval is the poll tick layered under the
// notifications.
func NewNotify(path string, interval time.Duration, logger zerolog.Logger) (*Notify, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &SetupError{Path: path, Err: err}
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &SetupError{Path: path, Err: err}
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, &SetupError{Path: path, Err: err}
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	n := &Notify{
		target:  abs,
		watcher: w,
		ticker:  time.NewTicker(interval),
		signal:  make(chan struct{}, 1),
		log:     logger.With().Str("component", "watch").Logger(),
		done:    make(chan struct{}),
	}
	go n.pump()
	return n, nil
}

func (n *Notify) pump() {
	defer close(n.done)
	for {
		select {
		case ev, ok := <-n.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != n.target {
				continue
			}
			n.log.Debug().Str("op", ev.Op.String()).Msg("file event")
			n.kick()
		case err, ok := <-n.watcher.Errors:
			if !ok {
				return
			}
			n.log.Warn().Err(err).Msg("watch error")
			n.kick()
		}
	}
}

// kick records a pending wake-up; extra kicks before the next Wait are dropped.
func (n *Notify) kick() {
	select {
	case n.signal <- struct{}{}:
	default:
	}
}

func (n *Notify) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-n.signal:
		return nil
	case <-n.ticker.C:
		return nil
	}
}

// Close releases the watch registration. It is safe to call more than once.
func (n *Notify) Close() error {
	n.closeOnce.Do(func() {
		n.ticker.Stop()
		n.closeErr = n.watcher.Close()
		<-n.done
	})
	return n.closeErr
}
