// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"landingkit/internal/models"
	"landingkit/internal/pages"
)

// PageManager is the page lifecycle the API exposes.
type PageManager interface {
	Create(ctx context.Context, owner models.Professional, req pages.CreateRequest) (*models.Page, error)
	Delete(ctx context.Context, owner models.Professional, id uuid.UUID) error
	List(ctx context.Context, owner models.Professional) ([]models.PageSummary, error)
	PublicURL(slug string) string
}

// TemplateCatalog lists the available templates.
type TemplateCatalog interface {
	All() []models.Template
}

// SessionDiscarder drops editing sessions of deleted pages.
type SessionDiscarder interface {
	Discard(pageID uuid.UUID)
}

// Pages serves the page management API.
type Pages struct {
	manager   PageManager
	templates TemplateCatalog
	sessions  SessionDiscarder
}

// NewPages creates the page API handler group. sessions may be nil.
func NewPages(manager PageManager, templates TemplateCatalog, sessions SessionDiscarder) *Pages {
	return &Pages{manager: manager, templates: templates, sessions: sessions}
}

// Templates lists the template catalogue.
func (h *Pages) Templates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.templates.All())
}

// List returns the professional's pages with lead counts.
func (h *Pages) List(w http.ResponseWriter, r *http.Request) {
	pro, ok := professional(w, r)
	if !ok {
		return
	}
	list, err := h.manager.List(r.Context(), *pro)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if list == nil {
		list = []models.PageSummary{}
	}
	writeJSON(w, http.StatusOK, list)
}

type createdPage struct {
	*models.Page
	PublicURL string `json:"public_url"`
}

// Create makes a page from a template.
func (h *Pages) Create(w http.ResponseWriter, r *http.Request) {
	pro, ok := professional(w, r)
	if !ok {
		return
	}
	var req pages.CreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	page, err := h.manager.Create(r.Context(), *pro, req)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdPage{Page: page, PublicURL: h.manager.PublicURL(page.CustomUsername)})
}

// Delete removes a page and any open editing session on it.
func (h *Pages) Delete(w http.ResponseWriter, r *http.Request) {
	pro, ok := professional(w, r)
	if !ok {
		return
	}
	id, ok := pageID(w, r)
	if !ok {
		return
	}
	if err := h.manager.Delete(r.Context(), *pro, id); err != nil {
		writeErr(w, r, err)
		return
	}
	if h.sessions != nil {
		h.sessions.Discard(id)
	}
	w.WriteHeader(http.StatusNoContent)
}
