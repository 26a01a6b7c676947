// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"

	"landingkit/internal/database"
	"landingkit/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "landingkit")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "landingkit")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable&connect_timeout=2"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB connects to the test database and runs migrations. If the
// database is unavailable, the test is skipped.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Connect(context.Background(), testDSN())
	if err != nil {
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// testProfessional inserts a professional with a unique username and
// removes it (and, by cascade, its pages and leads) when the test ends.
func testProfessional(t *testing.T, db *sql.DB) *models.Professional {
	t.Helper()
	id := uuid.New()
	p, err := NewProfessionalStore(db).Upsert(context.Background(), &models.Professional{
		ID:          id,
		Username:    "test-" + id.String()[:8],
		DisplayName: "Test Professional",
		Email:       id.String()[:8] + "@example.test",
	})
	if err != nil {
		t.Fatalf("Upsert professional: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM professionals WHERE id = $1", id) })
	return p
}
