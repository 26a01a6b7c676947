// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"landingkit/internal/models"
)

const professionalColumns = `id, username, display_name, email, phone, avatar_url, created_at, updated_at`

// ProfessionalStore mirrors the identities of page owners.
type ProfessionalStore struct {
	db *sql.DB
}

// NewProfessionalStore creates a new ProfessionalStore with the given database connection.
func NewProfessionalStore(db *sql.DB) *ProfessionalStore {
	return &ProfessionalStore{db: db}
}

// Upsert inserts the professional or refreshes the stored identity claims.
// Phone and avatar are kept when the new values are empty.
func (s *ProfessionalStore) Upsert(ctx context.Context, p *models.Professional) (*models.Professional, error) {
	out := &models.Professional{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO professionals (id, username, display_name, email, phone, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			username     = EXCLUDED.username,
			display_name = EXCLUDED.display_name,
			email        = EXCLUDED.email,
			phone        = COALESCE(NULLIF(EXCLUDED.phone, ''), professionals.phone),
			avatar_url   = COALESCE(NULLIF(EXCLUDED.avatar_url, ''), professionals.avatar_url),
			updated_at   = NOW()
		RETURNING `+professionalColumns,
		p.ID, p.Username, p.DisplayName, p.Email, p.Phone, p.AvatarURL,
	).Scan(
		&out.ID, &out.Username, &out.DisplayName, &out.Email, &out.Phone,
		&out.AvatarURL, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert professional: %w", uniqueViolation(err))
	}
	return out, nil
}
