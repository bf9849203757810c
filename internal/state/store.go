package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/logtail/internal/logtail"
)

// Snapshot is the latest view of a tail session.
type Snapshot struct {
	Session             logtail.Stats
	LinesShown          int
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int    // Number of consecutive failed polls
	Ended               string // Why following stopped; empty while running
}

// IsStalled returns true when reads have failed for multiple polls in a row.
func (s Snapshot) IsStalled() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records the session counters after a poll. When err is non-nil the
// previous counters are kept but the error is recorded for visibility.
func (s *Store) Update(stats logtail.Stats, shown int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Session = stats
	s.snapshot.LinesShown = shown
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// End marks the session as finished.
func (s *Store) End(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Ended = reason
	s.snapshot.LastUpdated = time.Now()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
