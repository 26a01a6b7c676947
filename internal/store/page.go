// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"landingkit/internal/models"
)

const pageColumns = `p.id, p.user_id, p.template_type, p.custom_username, p.title, p.content, p.created_at, p.updated_at`

// PageStore handles landing page persistence.
type PageStore struct {
	db *sql.DB
}

// NewPageStore creates a new PageStore with the given database connection.
func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db}
}

func scanPage(row interface{ Scan(...any) error }, p *models.Page, extra ...any) error {
	dest := []any{
		&p.ID, &p.UserID, &p.TemplateType, &p.CustomUsername, &p.Title,
		&p.Content, &p.CreatedAt, &p.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

// FetchPage retrieves a page by id. Unknown ids return an error matching
// models.ErrNotFound.
func (s *PageStore) FetchPage(ctx context.Context, id uuid.UUID) (*models.Page, error) {
	p := &models.Page{}
	err := scanPage(s.db.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM landing_pages p WHERE p.id = $1`, id), p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("page %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	return p, nil
}

// UpdateContent replaces the serialized content of a page.
func (s *PageStore) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE landing_pages SET content = $1, updated_at = NOW() WHERE id = $2
	`, content, id)
	if err != nil {
		return fmt.Errorf("update page content: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update page content: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("page %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// Create inserts a page and returns it with its generated id. A taken
// custom username or a second page of the same template for one owner
// yields a *UniqueError.
func (s *PageStore) Create(ctx context.Context, p *models.Page) (*models.Page, error) {
	out := &models.Page{}
	err := scanPage(s.db.QueryRowContext(ctx, `
		INSERT INTO landing_pages AS p (user_id, template_type, custom_username, title, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+pageColumns,
		p.UserID, p.TemplateType, p.CustomUsername, p.Title, p.Content,
	), out)
	if err != nil {
		return nil, fmt.Errorf("create page: %w", uniqueViolation(err))
	}
	return out, nil
}

// Delete removes a page owned by userID and returns its custom username.
func (s *PageStore) Delete(ctx context.Context, userID, id uuid.UUID) (string, error) {
	var slug string
	err := s.db.QueryRowContext(ctx, `
		DELETE FROM landing_pages WHERE id = $1 AND user_id = $2 RETURNING custom_username
	`, id, userID).Scan(&slug)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("page %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("delete page: %w", err)
	}
	return slug, nil
}

// ListByUser returns the pages of one owner, newest first, with their
// lead counts.
func (s *PageStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PageSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+pageColumns+`, COUNT(l.id)
		FROM landing_pages p
		LEFT JOIN leads l ON l.page_id = p.id
		WHERE p.user_id = $1
		GROUP BY p.id
		ORDER BY p.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var pages []models.PageSummary
	for rows.Next() {
		var ps models.PageSummary
		if err := scanPage(rows, &ps.Page, &ps.LeadCount); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, ps)
	}
	return pages, rows.Err()
}

// SlugExists reports whether a custom username is taken.
func (s *PageStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM landing_pages WHERE custom_username = $1)
	`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return exists, nil
}

// HasTemplate reports whether userID already owns a page of template id.
func (s *PageStore) HasTemplate(ctx context.Context, userID uuid.UUID, id models.TemplateID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM landing_pages WHERE user_id = $1 AND template_type = $2)
	`, userID, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check template: %w", err)
	}
	return exists, nil
}

// FindBySlugWithOwner retrieves a page and its owner by custom username.
// Returns nil if not found.
func (s *PageStore) FindBySlugWithOwner(ctx context.Context, slug string) (*models.PageWithOwner, error) {
	pw := &models.PageWithOwner{}
	o := &pw.Owner
	err := scanPage(s.db.QueryRowContext(ctx, `
		SELECT `+pageColumns+`,
		       o.id, o.username, o.display_name, o.email, o.phone, o.avatar_url, o.created_at, o.updated_at
		FROM landing_pages p
		JOIN professionals o ON o.id = p.user_id
		WHERE p.custom_username = $1
	`, slug), &pw.Page,
		&o.ID, &o.Username, &o.DisplayName, &o.Email, &o.Phone, &o.AvatarURL, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page by slug: %w", err)
	}
	return pw, nil
}
