// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PublicBaseURL prefixes the public address of every landing page.
	PublicBaseURL string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	PageCacheTTL   time.Duration

	// Identity tokens issued by the external provider
	AuthJWTSecret string
	AuthIssuer    string
	AuthAudience  string

	// S3-compatible object storage for hero images (optional)
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string

	// Page builder
	AutosaveDelay time.Duration
	SaveTimeout   time.Duration
	// EditorIdleTTL closes editing sessions left unused this long.
	EditorIdleTTL time.Duration

	// Lead intake
	LeadRedirectURL string
	LeadRateLimit   int
	LeadRateWindow  time.Duration

	// SeedDemo inserts the demo professional and pages on startup.
	SeedDemo bool
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A .env file in the working directory
// is read first when present; real environment variables win over it.
// Returns an error if critical values are missing in production mode.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "landingkit"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "landingkit"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AuthJWTSecret: os.Getenv("AUTH_JWT_SECRET"),
		AuthIssuer:    os.Getenv("AUTH_ISSUER"),
		AuthAudience:  os.Getenv("AUTH_AUDIENCE"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "landingkit-media"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		LeadRedirectURL: os.Getenv("LEAD_REDIRECT_URL"),
	}

	cfg.PublicBaseURL = strings.TrimRight(envOrDefault("PUBLIC_BASE_URL", "http://localhost:"+cfg.Port), "/")

	var err error
	if cfg.PageCacheTTL, err = durationOrDefault("PAGE_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.AutosaveDelay, err = durationOrDefault("AUTOSAVE_DELAY", time.Second); err != nil {
		return nil, err
	}
	if cfg.SaveTimeout, err = durationOrDefault("SAVE_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.EditorIdleTTL, err = durationOrDefault("EDITOR_IDLE_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.LeadRateWindow, err = durationOrDefault("LEAD_RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.LeadRateLimit, err = intOrDefault("LEAD_RATE_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.SeedDemo, err = boolOrDefault("SEED_DEMO", cfg.IsDev()); err != nil {
		return nil, err
	}

	if cfg.AutosaveDelay <= 0 {
		return nil, fmt.Errorf("AUTOSAVE_DELAY must be positive, got %s", cfg.AutosaveDelay)
	}
	if cfg.EditorIdleTTL <= 0 {
		return nil, fmt.Errorf("EDITOR_IDLE_TTL must be positive, got %s", cfg.EditorIdleTTL)
	}
	if cfg.LeadRateLimit < 1 {
		return nil, fmt.Errorf("LEAD_RATE_LIMIT must be at least 1, got %d", cfg.LeadRateLimit)
	}

	if cfg.AuthJWTSecret == "" {
		if !cfg.IsDev() {
			return nil, fmt.Errorf("AUTH_JWT_SECRET must be set outside development")
		}
		cfg.AuthJWTSecret = "dev-secret-change-me"
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if len(cfg.AuthJWTSecret) < 32 {
			return nil, fmt.Errorf("AUTH_JWT_SECRET must be at least 32 characters in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func intOrDefault(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func boolOrDefault(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
