// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"landingkit/internal/builder"
	"landingkit/internal/content"
	"landingkit/internal/engine"
	"landingkit/internal/models"
	"landingkit/internal/storage"
)

// EditorSessions is the session table of the page builder.
type EditorSessions interface {
	Open(ctx context.Context, owner, pageID uuid.UUID) (*builder.Editor, error)
	Get(owner, pageID uuid.UUID) (*builder.Editor, error)
	Close(ctx context.Context, owner, pageID uuid.UUID) error
}

// ImageStore keeps hero images.
type ImageStore interface {
	UploadHeroImage(ctx context.Context, pageID uuid.UUID, contentType string, body io.Reader, size int64) (string, error)
	DeleteURL(ctx context.Context, rawURL string) error
}

// Editor serves the page builder API.
type Editor struct {
	sessions EditorSessions
	engine   *engine.Engine
	images   ImageStore
}

// NewEditor creates the builder API handler group. images may be nil when
// object storage is not configured.
func NewEditor(sessions EditorSessions, eng *engine.Engine, images ImageStore) *Editor {
	return &Editor{sessions: sessions, engine: eng, images: images}
}

// editor resolves the open session of the {id} page.
func (h *Editor) editor(w http.ResponseWriter, r *http.Request) (*builder.Editor, *models.Professional, bool) {
	pro, ok := professional(w, r)
	if !ok {
		return nil, nil, false
	}
	id, ok := pageID(w, r)
	if !ok {
		return nil, nil, false
	}
	e, err := h.sessions.Get(pro.ID, id)
	if err != nil {
		writeErr(w, r, err)
		return nil, nil, false
	}
	return e, pro, true
}

// Open starts (or joins) an editing session and returns its snapshot.
func (h *Editor) Open(w http.ResponseWriter, r *http.Request) {
	pro, ok := professional(w, r)
	if !ok {
		return
	}
	id, ok := pageID(w, r)
	if !ok {
		return
	}
	e, err := h.sessions.Open(r.Context(), pro.ID, id)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e.Snapshot())
}

// Snapshot returns the current editor state.
func (h *Editor) Snapshot(w http.ResponseWriter, r *http.Request) {
	e, _, ok := h.editor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, e.Snapshot())
}

type editRequest struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// Edit applies one field edit. Persistence happens later on the autosave
// timer.
func (h *Editor) Edit(w http.ResponseWriter, r *http.Request) {
	e, _, ok := h.editor(w, r)
	if !ok {
		return
	}
	var req editRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	path, err := content.ParsePath(req.Path)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	snap, err := e.EditField(path, req.Value)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Save persists the content now.
func (h *Editor) Save(w http.ResponseWriter, r *http.Request) {
	e, _, ok := h.editor(w, r)
	if !ok {
		return
	}
	err := e.Save(r.Context())
	var perr *builder.PersistenceError
	switch {
	case err == nil, errors.Is(err, builder.ErrNothingToSave):
		writeJSON(w, http.StatusOK, e.Snapshot())
	case errors.As(err, &perr):
		slog.Error("explicit save failed", "page_id", perr.PageID, "error", perr.Err)
		writeJSON(w, http.StatusBadGateway, e.Snapshot())
	default:
		writeErr(w, r, err)
	}
}

// UploadImage stores a hero image and points the page's heroImage at it.
func (h *Editor) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.images == nil {
		writeError(w, http.StatusServiceUnavailable, "image uploads are not configured")
		return
	}
	e, _, ok := h.editor(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxImageSize+1024)
	if err := r.ParseMultipartForm(storage.MaxImageSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "image too large (max 5 MB)")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no image provided")
		return
	}
	defer file.Close()
	if header.Size > storage.MaxImageSize {
		writeError(w, http.StatusRequestEntityTooLarge, "image too large (max 5 MB)")
		return
	}

	sniff := make([]byte, 512)
	n, err := file.Read(sniff)
	if err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "unreadable image")
		return
	}
	contentType := http.DetectContentType(sniff[:n])
	if _, err := storage.Extension(contentType); err != nil {
		writeErr(w, r, err)
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeErr(w, r, err)
		return
	}

	url, err := h.images.UploadHeroImage(r.Context(), e.Page().ID, contentType, file, header.Size)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	snap, err := e.EditField(content.Root(models.KeyHeroImage), url)
	if err != nil {
		if derr := h.images.DeleteURL(context.WithoutCancel(r.Context()), url); derr != nil {
			slog.Warn("orphaned hero image", "url", url, "error", derr)
		}
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Preview renders the in-memory content, including unsaved edits.
func (h *Editor) Preview(w http.ResponseWriter, r *http.Request) {
	e, pro, ok := h.editor(w, r)
	if !ok {
		return
	}
	page := e.Page()
	tmpl := e.Template()
	doc, err := h.engine.Render(tmpl, e.Snapshot().Content, *pro, engine.Options{
		Title:      page.DisplayTitle(tmpl.Name),
		FormAction: "#",
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(doc.HTML))
}

// Close flushes pending edits and ends the session.
func (h *Editor) Close(w http.ResponseWriter, r *http.Request) {
	pro, ok := professional(w, r)
	if !ok {
		return
	}
	id, ok := pageID(w, r)
	if !ok {
		return
	}
	if err := h.sessions.Close(r.Context(), pro.ID, id); err != nil {
		var perr *builder.PersistenceError
		if errors.As(err, &perr) {
			slog.Error("flush on close failed", "page_id", id, "error", perr.Err)
			writeError(w, http.StatusBadGateway, "could not save pending changes")
			return
		}
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
