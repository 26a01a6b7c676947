// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"landingkit/internal/models"
)

// LeadStore persists lead submissions.
type LeadStore struct {
	db *sql.DB
}

// NewLeadStore creates a new LeadStore with the given database connection.
func NewLeadStore(db *sql.DB) *LeadStore {
	return &LeadStore{db: db}
}

// Create stores a lead and returns it with its id and timestamp.
func (s *LeadStore) Create(ctx context.Context, l *models.Lead) (*models.Lead, error) {
	fields, err := json.Marshal(l.Fields)
	if err != nil {
		return nil, fmt.Errorf("encode lead fields: %w", err)
	}
	out := *l
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO leads (page_id, professional_id, template_id, source, fields)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, nullUUID(l.PageID), l.ProfessionalID, l.TemplateID, l.Source, string(fields),
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	return &out, nil
}

// ListByProfessional returns the newest leads of a professional.
func (s *LeadStore) ListByProfessional(ctx context.Context, professionalID uuid.UUID, limit int) ([]models.Lead, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, page_id, professional_id, template_id, source, fields, created_at
		FROM leads
		WHERE professional_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, professionalID, limit)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		var (
			l      models.Lead
			pageID uuid.NullUUID
			fields []byte
		)
		if err := rows.Scan(&l.ID, &pageID, &l.ProfessionalID, &l.TemplateID, &l.Source, &fields, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		if pageID.Valid {
			l.PageID = &pageID.UUID
		}
		if err := json.Unmarshal(fields, &l.Fields); err != nil {
			return nil, fmt.Errorf("decode lead fields: %w", err)
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
