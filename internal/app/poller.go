package app

import (
	"context"
	"time"

	"github.com/five82/logtail/internal/logtail"
	"github.com/five82/logtail/internal/state"
)

const maxBackoff = 30 * time.Second

// backoffWaiter slows the follow loop down while reads keep failing. With no
// recorded failures it defers to the underlying watcher.
type backoffWaiter struct {
	next  logtail.Waiter
	store *state.Store
	base  time.Duration
}

func (w backoffWaiter) Wait(ctx context.Context) error {
	failures := w.store.Snapshot().ConsecutiveFailures
	if failures <= 0 {
		return w.next.Wait(ctx)
	}
	timer := time.NewTimer(calculateBackoff(failures, w.base))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// calculateBackoff doubles base once per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
