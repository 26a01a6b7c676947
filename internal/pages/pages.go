// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pages manages a professional's landing pages: creation from a
// template, listing and deletion.
package pages

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"landingkit/internal/content"
	"landingkit/internal/models"
	"landingkit/internal/slug"
	"landingkit/internal/store"
)

var (
	ErrTemplateNotFound  = fmt.Errorf("template %w", models.ErrNotFound)
	ErrPageNotFound      = fmt.Errorf("page %w", models.ErrNotFound)
	ErrDuplicateTemplate = errors.New("a page for this template already exists")
	ErrSlugTaken         = errors.New("custom username is already taken")
	ErrInvalidSlug       = errors.New("custom username may only contain lowercase letters, digits, hyphens and underscores")
	ErrInvalidRequest    = errors.New("invalid page request")
)

// Store is the page storage the manager works on.
type Store interface {
	Create(ctx context.Context, p *models.Page) (*models.Page, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (string, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PageSummary, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	HasTemplate(ctx context.Context, userID uuid.UUID, id models.TemplateID) (bool, error)
}

// TemplateSource resolves templates.
type TemplateSource interface {
	Lookup(id models.TemplateID) (models.Template, error)
}

// Invalidator drops cached renders of a public page.
type Invalidator interface {
	Invalidate(ctx context.Context, slug string) error
}

// CreateRequest describes a new page.
type CreateRequest struct {
	TemplateType   models.TemplateID `json:"template_type" validate:"required"`
	CustomUsername string            `json:"custom_username,omitempty" validate:"omitempty,max=64"`
	Title          string            `json:"title,omitempty" validate:"omitempty,max=300"`
	Overrides      map[string]any    `json:"content,omitempty"`
}

// Manager creates, lists and deletes pages.
type Manager struct {
	store     Store
	templates TemplateSource
	cache     Invalidator
	baseURL   string
	validate  *validator.Validate
}

// NewManager creates a Manager. baseURL prefixes public page URLs; cache
// may be nil.
func NewManager(store Store, templates TemplateSource, cache Invalidator, baseURL string) *Manager {
	return &Manager{
		store:     store,
		templates: templates,
		cache:     cache,
		baseURL:   strings.TrimRight(baseURL, "/"),
		validate:  validator.New(),
	}
}

// Create makes a page of req.TemplateType for owner. The content is the
// template's seeded defaults with req.Overrides merged on top. Without a
// custom username the page gets "{username}-{template}".
func (m *Manager) Create(ctx context.Context, owner models.Professional, req CreateRequest) (*models.Page, error) {
	if err := m.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	tmpl, err := m.templates.Lookup(req.TemplateType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, req.TemplateType)
	}

	pageSlug := req.CustomUsername
	if pageSlug == "" {
		pageSlug = slug.Default(owner.Username, tmpl.ID)
	}
	if slug.Reserved(pageSlug) {
		return nil, fmt.Errorf("%w: %q", ErrSlugTaken, pageSlug)
	}
	if !slug.Valid(pageSlug) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSlug, pageSlug)
	}

	has, err := m.store.HasTemplate(ctx, owner.ID, tmpl.ID)
	if err != nil {
		return nil, err
	}
	if has {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateTemplate, tmpl.ID)
	}
	taken, err := m.store.SlugExists(ctx, pageSlug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %q", ErrSlugTaken, pageSlug)
	}

	c, err := content.Merge(content.Seed(tmpl), req.Overrides)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	raw, err := content.Encode(c)
	if err != nil {
		return nil, err
	}

	page := &models.Page{
		UserID:         owner.ID,
		TemplateType:   tmpl.ID,
		CustomUsername: pageSlug,
		Content:        raw,
	}
	if req.Title != "" {
		title := req.Title
		page.Title = &title
	}

	created, err := m.store.Create(ctx, page)
	if err != nil {
		return nil, conflict(err, tmpl.ID, pageSlug)
	}
	slog.Info("page created", "page_id", created.ID, "template", tmpl.ID, "slug", pageSlug)
	return created, nil
}

// conflict translates unique violations that slipped past the pre-checks.
func conflict(err error, id models.TemplateID, pageSlug string) error {
	var ue *store.UniqueError
	if !errors.As(err, &ue) {
		return err
	}
	switch ue.Constraint {
	case store.ConstraintUserTemplate:
		return fmt.Errorf("%w: %s", ErrDuplicateTemplate, id)
	case store.ConstraintCustomUsername:
		return fmt.Errorf("%w: %q", ErrSlugTaken, pageSlug)
	}
	return err
}

// Delete removes one of owner's pages and drops its cached render.
func (m *Manager) Delete(ctx context.Context, owner models.Professional, id uuid.UUID) error {
	pageSlug, err := m.store.Delete(ctx, owner.ID, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrPageNotFound, id)
		}
		return err
	}
	if m.cache != nil {
		if err := m.cache.Invalidate(ctx, pageSlug); err != nil {
			slog.Warn("page cache invalidation failed", "slug", pageSlug, "error", err)
		}
	}
	slog.Info("page deleted", "page_id", id, "slug", pageSlug)
	return nil
}

// List returns owner's pages with their public URLs.
func (m *Manager) List(ctx context.Context, owner models.Professional) ([]models.PageSummary, error) {
	list, err := m.store.ListByUser(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].PublicURL = m.PublicURL(list[i].CustomUsername)
	}
	return list, nil
}

// PublicURL is the address visitors reach a page at.
func (m *Manager) PublicURL(pageSlug string) string {
	return m.baseURL + "/" + pageSlug
}
