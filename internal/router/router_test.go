// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"landingkit/internal/engine"
	"landingkit/internal/handlers"
	"landingkit/internal/middleware"
	"landingkit/internal/models"
	"landingkit/internal/registry"
	"landingkit/internal/slug"
)

const testSecret = "router-test-secret-0123456789abcdef"

type noPages struct{}

func (noPages) FindBySlugWithOwner(context.Context, string) (*models.PageWithOwner, error) {
	return nil, nil
}

func testRouter(t *testing.T, checks map[string]Check) http.Handler {
	t.Helper()
	reg := registry.New()
	limiter := middleware.NewRateLimiter(1, time.Minute)
	t.Cleanup(limiter.Stop)
	return New(Config{
		Public:      handlers.NewPublic(engine.MustNew(), noPages{}, reg, nil, nil),
		Pages:       handlers.NewPages(nil, reg, nil),
		Editor:      handlers.NewEditor(nil, nil, nil),
		Leads:       handlers.NewLeads(nil),
		Identity:    middleware.NewIdentity(testSecret, "", "", nil),
		LeadLimiter: limiter,
		Checks:      checks,
	})
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h := testRouter(t, map[string]Check{"postgres": func(context.Context) error { return nil }})
		rr := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}
		if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type: got %q, want application/json", ct)
		}
		var body map[string]string
		if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["status"] != "ok" || body["postgres"] != "ok" {
			t.Errorf("body = %v", body)
		}
	})

	t.Run("failing check", func(t *testing.T) {
		h := testRouter(t, map[string]Check{"valkey": func(context.Context) error { return errors.New("connection refused") }})
		rr := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
		if rr.Code != http.StatusServiceUnavailable {
			t.Fatalf("status: got %d, want 503", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "connection refused") {
			t.Errorf("body does not name the failure: %s", rr.Body.String())
		}
	})
}

func TestMetricsEndpoint(t *testing.T) {
	rr := serve(testRouter(t, nil), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "go_goroutines") {
		t.Error("metrics output is missing the Go collector")
	}
}

func TestAPIRequiresToken(t *testing.T) {
	h := testRouter(t, nil)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/api/templates", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("without token: got %d, want 401", rr.Code)
	}
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing on API response")
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		PreferredUsername: "jane",
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	if rr := serve(h, req); rr.Code != http.StatusOK {
		t.Fatalf("with token: got %d, want 200", rr.Code)
	}
}

func TestPublicRoutes(t *testing.T) {
	h := testRouter(t, nil)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/nobody", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown slug: got %d, want 404", rr.Code)
	}
	if rr.Header().Get("Content-Security-Policy") != middleware.PageCSP {
		t.Error("public pages are missing the page CSP")
	}
	if len(rr.Result().Cookies()) == 0 {
		t.Error("public page did not issue a CSRF cookie")
	}

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/nobody/lead", strings.NewReader("csrf_token=tok"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: middleware.CSRFCookieName, Value: "tok"})
		req.RemoteAddr = "198.51.100.4:4000"
		return serve(h, req)
	}
	if rr := post(); rr.Code != http.StatusNotFound {
		t.Errorf("first lead post: got %d, want 404", rr.Code)
	}
	if rr := post(); rr.Code != http.StatusTooManyRequests {
		t.Errorf("second lead post: got %d, want 429", rr.Code)
	}
}

// Every static first segment the router serves must be unavailable as a
// page slug, or such a page would be shadowed.
func TestRootRoutesAreReservedSlugs(t *testing.T) {
	r := testRouter(t, nil).(chi.Router)
	seen := 0
	err := chi.Walk(r, func(_ string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		first, _, _ := strings.Cut(strings.TrimPrefix(route, "/"), "/")
		if first == "" || strings.HasPrefix(first, "{") {
			return nil
		}
		seen++
		if !slug.Reserved(first) {
			t.Errorf("route %s: segment %q is not a reserved slug", route, first)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if seen == 0 {
		t.Fatal("no static routes walked")
	}
}
