// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package builder implements the page editor: an in-memory copy of one
// page's content, edited field by field and persisted through a debounced
// autosave. At most one persistence call per editor is in flight at any
// time; edits made while a save runs are picked up by the next one.
package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"landingkit/internal/content"
	"landingkit/internal/debounce"
	"landingkit/internal/metrics"
	"landingkit/internal/models"
)

// DefaultSaveTimeout bounds a single autosave call.
const DefaultSaveTimeout = 10 * time.Second

var (
	ErrPageNotFound     = fmt.Errorf("page %w", models.ErrNotFound)
	ErrTemplateNotFound = fmt.Errorf("page template %w", models.ErrNotFound)
	ErrNothingToSave    = errors.New("nothing to save")
	ErrSaveInProgress   = errors.New("save already in progress")
	ErrClosed           = errors.New("editor is closed")
)

// PersistenceError wraps a failed content update.
type PersistenceError struct {
	PageID uuid.UUID
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist page %s: %v", e.PageID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// PageStore is the page storage the editor reads from and writes to.
// FetchPage returns an error matching models.ErrNotFound for unknown ids.
type PageStore interface {
	FetchPage(ctx context.Context, id uuid.UUID) (*models.Page, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) error
}

// TemplateSource resolves a page's template.
type TemplateSource interface {
	Lookup(id models.TemplateID) (models.Template, error)
}

// Deps are the collaborators of an editor.
type Deps struct {
	Store     PageStore
	Templates TemplateSource

	// Delay is the autosave quiet period; zero means debounce.DefaultDelay.
	Delay time.Duration
	// Clock drives the autosave timer; nil means the runtime clock.
	Clock debounce.Clock
	// SaveTimeout bounds autosave calls; zero means DefaultSaveTimeout.
	SaveTimeout time.Duration
	// OnSaved runs after every successful persistence call.
	OnSaved func(page models.Page)
}

// Editor is one editing session of one page. All methods are safe for
// concurrent use.
type Editor struct {
	deps     Deps
	page     models.Page
	template models.Template
	reseeded bool
	debounce *debounce.Debouncer

	mu            sync.Mutex
	idle          *sync.Cond
	content       models.Content
	revision      uint64
	savedRevision uint64
	saving        bool
	rearm         bool
	closed        bool
	lastErr       error
}

// Open loads a page and its template into a new editor in the Saved
// state. Unusable stored content is replaced by the template defaults.
func Open(ctx context.Context, pageID uuid.UUID, deps Deps) (*Editor, error) {
	page, err := deps.Store.FetchPage(ctx, pageID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPageNotFound, pageID)
		}
		return nil, fmt.Errorf("fetch page %s: %w", pageID, err)
	}
	if page == nil {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, pageID)
	}

	tmpl, err := deps.Templates.Lookup(page.TemplateType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, page.TemplateType)
	}

	c, perr := content.Load(page.Content, tmpl)
	if perr != nil {
		slog.Info("page content reseeded from template defaults",
			"page_id", page.ID, "template", tmpl.ID, "reason", perr.Err)
	}

	if deps.SaveTimeout <= 0 {
		deps.SaveTimeout = DefaultSaveTimeout
	}

	e := &Editor{
		deps:     deps,
		page:     *page,
		template: tmpl,
		reseeded: perr != nil,
		debounce: debounce.New(deps.Delay, deps.Clock),
		content:  c,
	}
	e.idle = sync.NewCond(&e.mu)
	return e, nil
}

// Page returns the page metadata the editor was opened with.
func (e *Editor) Page() models.Page {
	return e.page
}

// Template returns the page's template.
func (e *Editor) Template() models.Template {
	return e.template
}

// Snapshot returns the current editor state.
func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// EditField applies value at path to the in-memory content, marks the
// editor dirty and restarts the autosave timer. It never waits for
// persistence. An edit that fails validation leaves the editor unchanged.
func (e *Editor) EditField(path content.Path, value any) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return e.snapshotLocked(), ErrClosed
	}
	next, err := content.Apply(e.content, path, value)
	if err != nil {
		return e.snapshotLocked(), err
	}

	e.content = next
	e.revision++
	e.lastErr = nil
	e.debounce.Trigger(e.autosave)
	return e.snapshotLocked(), nil
}

// Save persists unsaved content now, cancelling the pending autosave.
// It returns ErrNothingToSave when clean and ErrSaveInProgress while a
// save is already running.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	rev, c, err := e.beginLocked()
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.debounce.Cancel()
	e.mu.Unlock()

	return e.write(ctx, rev, c, metrics.TriggerExplicit)
}

// Close ends the session. A pending autosave is flushed and an in-flight
// save is awaited, so edits made just before closing are not lost.
// Closing twice is a no-op.
func (e *Editor) Close(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.debounce.Cancel()
	for e.saving {
		e.idle.Wait()
	}
	rev, c, err := e.beginLocked()
	e.mu.Unlock()

	if errors.Is(err, ErrNothingToSave) {
		return nil
	}
	if err != nil {
		return err
	}
	return e.write(ctx, rev, c, metrics.TriggerClose)
}

// autosave runs on the debounce timer.
func (e *Editor) autosave() {
	e.mu.Lock()
	rev, c, err := e.beginLocked()
	if errors.Is(err, ErrSaveInProgress) {
		e.rearm = true
	}
	e.mu.Unlock()
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.deps.SaveTimeout)
	defer cancel()
	_ = e.write(ctx, rev, c, metrics.TriggerAutosave)
}

// beginLocked claims the single persistence slot. Callers hold e.mu.
func (e *Editor) beginLocked() (uint64, models.Content, error) {
	if e.saving {
		return 0, models.Content{}, ErrSaveInProgress
	}
	if e.revision == e.savedRevision {
		return 0, models.Content{}, ErrNothingToSave
	}
	e.saving = true
	return e.revision, e.content, nil
}

// write persists c as revision rev and releases the persistence slot.
// Documents are never mutated in place, so c can be read without e.mu.
func (e *Editor) write(ctx context.Context, rev uint64, c models.Content, trigger string) error {
	start := time.Now()
	raw, err := content.Encode(c)
	if err == nil {
		err = e.deps.Store.UpdateContent(ctx, e.page.ID, raw)
	}
	metrics.SaveDuration.Observe(time.Since(start).Seconds())

	e.mu.Lock()
	e.saving = false
	rearm := e.rearm && !e.closed
	e.rearm = false
	if err != nil {
		err = &PersistenceError{PageID: e.page.ID, Err: err}
		e.lastErr = err
	} else {
		e.savedRevision = rev
		if e.revision == rev {
			e.lastErr = nil
		}
	}
	dirty := e.revision != e.savedRevision
	e.idle.Broadcast()
	e.mu.Unlock()

	if err != nil {
		metrics.SavesTotal.WithLabelValues(trigger, metrics.ResultError).Inc()
		slog.Error("page save failed", "page_id", e.page.ID, "trigger", trigger, "error", err)
	} else {
		metrics.SavesTotal.WithLabelValues(trigger, metrics.ResultOK).Inc()
		slog.Debug("page saved", "page_id", e.page.ID, "trigger", trigger, "revision", rev)
		if e.deps.OnSaved != nil {
			e.deps.OnSaved(e.page)
		}
	}

	if rearm && dirty {
		e.debounce.Trigger(e.autosave)
	}
	return err
}

func (e *Editor) snapshotLocked() Snapshot {
	s := Snapshot{
		PageID:     e.page.ID,
		TemplateID: e.template.ID,
		State:      e.stateLocked(),
		Content:    e.content.Clone(),
		Revision:   e.revision,
		Saved:      e.savedRevision,
		Reseeded:   e.reseeded,
	}
	if e.lastErr != nil {
		s.Error = e.lastErr.Error()
	}
	return s
}

func (e *Editor) stateLocked() State {
	switch {
	case e.closed:
		return StateClosed
	case e.saving:
		return StateSaving
	case e.lastErr != nil:
		return StateError
	case e.revision != e.savedRevision:
		return StateDirty
	default:
		return StateSaved
	}
}
