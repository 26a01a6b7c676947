// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains. Routes are
// split into the builder API, which requires a bearer token, and the
// public landing pages, which carry CSRF protection and lead rate limits.
package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"landingkit/internal/handlers"
	"landingkit/internal/middleware"
)

// Check reports whether a backing service is reachable.
type Check func(ctx context.Context) error

// Config carries the handler groups and cross-cutting middleware.
type Config struct {
	Public *handlers.Public
	Pages  *handlers.Pages
	Editor *handlers.Editor
	Leads  *handlers.Leads

	Identity    *middleware.Identity
	LeadLimiter *middleware.RateLimiter
	// SecureCookies marks the CSRF cookie HTTPS-only.
	SecureCookies bool
	// Checks are run by /health, keyed by service name.
	Checks map[string]Check
}

// New creates the configured Chi router.
func New(cfg Config) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler(cfg.Checks))
	r.Handle("/metrics", promhttp.Handler())

	// Builder API, for authenticated professionals.
	r.Route("/api", func(r chi.Router) {
		r.Use(cfg.Identity.Require)

		r.Get("/templates", cfg.Pages.Templates)
		r.Get("/pages", cfg.Pages.List)
		r.Post("/pages", cfg.Pages.Create)
		r.Delete("/pages/{id}", cfg.Pages.Delete)
		r.Get("/leads", cfg.Leads.List)

		r.Route("/pages/{id}/editor", func(r chi.Router) {
			r.Post("/", cfg.Editor.Open)
			r.Get("/", cfg.Editor.Snapshot)
			r.Patch("/", cfg.Editor.Edit)
			r.Delete("/", cfg.Editor.Close)
			r.Post("/save", cfg.Editor.Save)
			r.Post("/image", cfg.Editor.UploadImage)
			r.Get("/preview", cfg.Editor.Preview)
		})
	})

	// Public landing pages.
	r.Group(func(r chi.Router) {
		r.Use(middleware.PageSecurity)
		r.Use(middleware.CSRF(cfg.SecureCookies))

		r.Get("/{slug}", cfg.Public.Page)
		if cfg.LeadLimiter != nil {
			r.With(cfg.LeadLimiter.Middleware).Post("/{slug}/lead", cfg.Public.SubmitLead)
		} else {
			r.Post("/{slug}/lead", cfg.Public.SubmitLead)
		}
	})

	return r
}

// healthHandler reports ok when every check passes and 503 otherwise.
func healthHandler(checks map[string]Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		body := map[string]string{"status": "ok"}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "unavailable"
				body[name] = err.Error()
				continue
			}
			body[name] = "ok"
		}
		writeJSON(w, status, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
