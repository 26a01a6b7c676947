// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides PostgreSQL access for landingkit entities. Each
// store struct wraps a *sql.DB and exposes typed, context-aware queries.
package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Unique constraints callers branch on.
const (
	ConstraintCustomUsername = "landing_pages_custom_username_key"
	ConstraintUserTemplate   = "landing_pages_user_template_key"
)

// ErrUnique is matched by every UniqueError.
var ErrUnique = errors.New("unique constraint violated")

// UniqueError reports an insert rejected by a unique constraint.
type UniqueError struct {
	Constraint string
	Err        error
}

func (e *UniqueError) Error() string {
	return fmt.Sprintf("unique constraint %s: %v", e.Constraint, e.Err)
}

func (e *UniqueError) Unwrap() []error { return []error{ErrUnique, e.Err} }

// uniqueViolation converts a PostgreSQL 23505 error into a UniqueError and
// returns any other error unchanged.
func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return &UniqueError{Constraint: pgErr.ConstraintName, Err: err}
	}
	return err
}
