// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"landingkit/internal/metrics"
)

var (
	ErrForbidden = errors.New("page belongs to another professional")
	ErrNoSession = errors.New("no open editor for page")
)

// DefaultIdleTTL is how long an editor may go unused before the janitor
// closes it.
const DefaultIdleTTL = 30 * time.Minute

// Sessions keeps at most one editor per page in this process. The HTTP
// layer opens a session when the builder loads and closes it when the
// professional navigates away. Sessions whose tab went away without a
// close are flushed and dropped by the janitor once idle.
type Sessions struct {
	deps Deps
	now  func() time.Time

	mu       sync.Mutex
	editors  map[uuid.UUID]*Editor
	lastUsed map[uuid.UUID]time.Time

	stopCh chan struct{}
	stop   sync.Once
}

// NewSessions creates an empty session table.
func NewSessions(deps Deps) *Sessions {
	return &Sessions{
		deps:     deps,
		now:      time.Now,
		editors:  make(map[uuid.UUID]*Editor),
		lastUsed: make(map[uuid.UUID]time.Time),
		stopCh:   make(chan struct{}),
	}
}

// StartJanitor closes editors unused for longer than ttl, checking every
// interval. A non-positive ttl uses DefaultIdleTTL; a non-positive
// interval checks at a quarter of ttl. Call Stop to end it.
func (s *Sessions) StartJanitor(ttl, interval time.Duration) {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	if interval <= 0 {
		interval = ttl / 4
	}
	timeout := s.deps.SaveTimeout
	if timeout <= 0 {
		timeout = DefaultSaveTimeout
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				s.EvictIdle(ctx, ttl)
				cancel()
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Stop ends the janitor. It is safe to call more than once, and without a
// running janitor.
func (s *Sessions) Stop() {
	s.stop.Do(func() { close(s.stopCh) })
}

// EvictIdle flushes and removes every editor not used within ttl and
// returns how many it closed. Flush failures are logged; the pending
// edits of such an editor are lost.
func (s *Sessions) EvictIdle(ctx context.Context, ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	var idle []*Editor
	for id, e := range s.editors {
		if s.lastUsed[id].Before(cutoff) {
			idle = append(idle, e)
			delete(s.editors, id)
			delete(s.lastUsed, id)
			metrics.OpenEditors.Dec()
		}
	}
	s.mu.Unlock()

	for _, e := range idle {
		if err := e.Close(ctx); err != nil {
			slog.Error("flush idle editor", "page_id", e.Page().ID, "error", err)
			continue
		}
		slog.Info("idle editor closed", "page_id", e.Page().ID)
	}
	return len(idle)
}

// Open returns the open editor for pageID, loading it first if needed.
// owner must own the page.
func (s *Sessions) Open(ctx context.Context, owner, pageID uuid.UUID) (*Editor, error) {
	if e, err := s.Get(owner, pageID); err == nil {
		return e, nil
	} else if !errors.Is(err, ErrNoSession) {
		return nil, err
	}

	e, err := Open(ctx, pageID, s.deps)
	if err != nil {
		return nil, err
	}
	if e.Page().UserID != owner {
		return nil, ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed[pageID] = s.now()
	if existing, ok := s.editors[pageID]; ok {
		return existing, nil
	}
	s.editors[pageID] = e
	metrics.OpenEditors.Inc()
	return e, nil
}

// Get returns the open editor for pageID and marks it as used.
func (s *Sessions) Get(owner, pageID uuid.UUID) (*Editor, error) {
	s.mu.Lock()
	e, ok := s.editors[pageID]
	if ok {
		s.lastUsed[pageID] = s.now()
	}
	s.mu.Unlock()
	if !ok {
		return nil, ErrNoSession
	}
	if e.Page().UserID != owner {
		return nil, ErrForbidden
	}
	return e, nil
}

// Close flushes and removes the editor for pageID. Closing a page with no
// session is a no-op.
func (s *Sessions) Close(ctx context.Context, owner, pageID uuid.UUID) error {
	e, err := s.Get(owner, pageID)
	if errors.Is(err, ErrNoSession) {
		return nil
	}
	if err != nil {
		return err
	}
	s.remove(pageID, e)
	return e.Close(ctx)
}

// Discard drops the editor for pageID without flushing. Used when the page
// itself is deleted.
func (s *Sessions) Discard(pageID uuid.UUID) {
	s.mu.Lock()
	e, ok := s.editors[pageID]
	s.mu.Unlock()
	if !ok {
		return
	}
	s.remove(pageID, e)
	e.mu.Lock()
	e.closed = true
	e.debounce.Cancel()
	e.mu.Unlock()
}

// CloseAll flushes every open editor. Called on shutdown.
func (s *Sessions) CloseAll(ctx context.Context) error {
	s.mu.Lock()
	editors := make([]*Editor, 0, len(s.editors))
	for id, e := range s.editors {
		editors = append(editors, e)
		delete(s.editors, id)
		delete(s.lastUsed, id)
		metrics.OpenEditors.Dec()
	}
	s.mu.Unlock()

	var errs []error
	for _, e := range editors {
		if err := e.Close(ctx); err != nil {
			slog.Error("flush editor on shutdown", "page_id", e.Page().ID, "error", err)
			errs = append(errs, fmt.Errorf("page %s: %w", e.Page().ID, err))
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of open editors.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.editors)
}

func (s *Sessions) remove(pageID uuid.UUID, e *Editor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editors[pageID] == e {
		delete(s.editors, pageID)
		delete(s.lastUsed, pageID)
		metrics.OpenEditors.Dec()
	}
}
