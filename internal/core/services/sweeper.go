package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
	"github.com/custodia-labs/gproxy/internal/logger"
)

// SessionSweeper deletes expired sessions on an interval.
type SessionSweeper struct {
	store    driven.SessionStore
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// NewSessionSweeper creates a sweeper. A non-positive interval defaults to 10 minutes.
func NewSessionSweeper(store driven.SessionStore, interval time.Duration) *SessionSweeper {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &SessionSweeper{
		store:    store,
		interval: interval,
		now:      time.Now,
	}
}

// Start sweeps once, then on every tick. It blocks until ctx is done or Stop is called.
func (s *SessionSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.markStopped()
			return nil
		case <-stopCh:
			return nil
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Stop ends a running Start loop.
func (s *SessionSweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stopCh)
}

func (s *SessionSweeper) markStopped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
}

// Sweep deletes sessions that have expired and returns how many went.
func (s *SessionSweeper) Sweep(ctx context.Context) int {
	n, err := s.store.DeleteExpired(ctx, s.now())
	if err != nil {
		logger.Warn("session sweep failed: %v", err)
		return 0
	}
	if n > 0 {
		logger.Debug("session sweep removed %d expired sessions", n)
	}
	return n
}
