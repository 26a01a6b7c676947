// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"landingkit/internal/content"
	"landingkit/internal/models"
	"landingkit/internal/registry"
	"landingkit/internal/slug"
)

// DemoProfessionalID identifies the development professional created by Seed.
var DemoProfessionalID = uuid.MustParse("00000000-0000-4000-8000-000000000001")

// DemoUsername is the username of the development professional.
const DemoUsername = "demo"

// Seed populates the database with development data: a demo professional
// owning one page per template. It does nothing when the demo professional
// already exists.
func Seed(ctx context.Context, db *sql.DB) error {
	var exists bool
	if err := db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM professionals WHERE id = $1)", DemoProfessionalID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("seed check professional: %w", err)
	}
	if exists {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO professionals (id, username, display_name, email)
		VALUES ($1, $2, $3, $4)
	`, DemoProfessionalID, DemoUsername, "Demo Professional", "demo@landingkit.local"); err != nil {
		return fmt.Errorf("seed insert professional: %w", err)
	}

	for _, t := range registry.New().All() {
		raw, err := content.Encode(content.Seed(t))
		if err != nil {
			return fmt.Errorf("seed encode %s: %w", t.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO landing_pages (user_id, template_type, custom_username, content)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT DO NOTHING
		`, DemoProfessionalID, t.ID, slug.Default(DemoUsername, t.ID), raw); err != nil {
			return fmt.Errorf("seed insert page %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo professional",
		"username", DemoUsername,
		"pages", len(models.TemplateIDs),
	)
	return nil
}
