// Package watch tells the tail engine when the followed file may have changed.
package watch

import (
	"context"
	"fmt"
	"time"
)

// DefaultInterval is the fallback poll tick.
const DefaultInterval = time.Second

// Watcher blocks until the watched file may have changed.
//
// Wait returns nil on a change notification or poll tick and ctx.Err() when
// the context ends. Bursts of notifications between two Wait calls are
// coalesced into a single wake-up.
type Watcher interface {
	Wait(ctx context.Context) error
	Close() error
}

// SetupError reports a watch mechanism that could not be initialized.
type SetupError struct {
	Path string
	Err  error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("watch %s: %v", e.Path, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// Ticker wakes on a fixed interval.
type Ticker struct {
	ticker *time.Ticker
}

// NewTicker returns a timer-based Watcher.
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{ticker: time.NewTicker(interval)}
}

func (t *Ticker) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.ticker.C:
		return nil
	}
}

func (t *Ticker) Close() error {
	t.ticker.Stop()
	return nil
}
