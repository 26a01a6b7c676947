// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"landingkit/internal/models"
)

func apiRequest(env *testEnv, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rr.Body.String())
	}
	return v
}

func TestTemplatesAPI(t *testing.T) {
	env := newTestEnv(t, "")
	rr := apiRequest(env, http.MethodGet, "/api/templates", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	list := decode[[]models.Template](t, rr)
	if len(list) != 5 {
		t.Fatalf("got %d templates, want 5", len(list))
	}
	if list[0].ID != models.TemplateRecruiting {
		t.Errorf("first template = %s, want recruiting", list[0].ID)
	}
}

func TestCreatePageAPI(t *testing.T) {
	env := newTestEnv(t, "")

	rr := apiRequest(env, http.MethodPost, "/api/pages", `{"template_type":"recruiting","title":"Join us"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rr.Code, rr.Body.String())
	}
	got := decode[struct {
		models.Page
		PublicURL string `json:"public_url"`
	}](t, rr)
	if got.CustomUsername != "jane-recruiting" {
		t.Errorf("slug = %q, want jane-recruiting", got.CustomUsername)
	}
	if got.PublicURL != "https://pages.example.test/jane-recruiting" {
		t.Errorf("public_url = %q", got.PublicURL)
	}
	if got.Title == nil || *got.Title != "Join us" {
		t.Errorf("title = %v", got.Title)
	}

	tests := []struct {
		name string
		body string
		want int
	}{
		{"duplicate template", `{"template_type":"recruiting","custom_username":"other-slug"}`, http.StatusConflict},
		{"slug taken", `{"template_type":"client","custom_username":"jane-recruiting"}`, http.StatusConflict},
		{"invalid slug", `{"template_type":"client","custom_username":"Jane Page"}`, http.StatusBadRequest},
		{"unknown template", `{"template_type":"retired"}`, http.StatusNotFound},
		{"missing template", `{}`, http.StatusBadRequest},
		{"malformed body", `{"template_type":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := apiRequest(env, http.MethodPost, "/api/pages", tt.body)
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rr.Code, tt.want, rr.Body.String())
			}
		})
	}
}

func TestListPagesAPI(t *testing.T) {
	env := newTestEnv(t, "")

	rr := apiRequest(env, http.MethodGet, "/api/pages", "")
	if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("empty list: status %d body %q", rr.Code, rr.Body.String())
	}

	env.seedPage(t, models.TemplateClient, "jane-client")
	env.store.put(models.Professional{ID: uuid.New(), Username: "bob"}, models.TemplateClient, "bob-client", "")

	list := decode[[]models.PageSummary](t, apiRequest(env, http.MethodGet, "/api/pages", ""))
	if len(list) != 1 || list[0].CustomUsername != "jane-client" {
		t.Fatalf("list = %+v, want only jane-client", list)
	}
	if list[0].PublicURL != "https://pages.example.test/jane-client" {
		t.Errorf("public_url = %q", list[0].PublicURL)
	}
}

func TestDeletePageAPI(t *testing.T) {
	env := newTestEnv(t, "")
	page := env.seedPage(t, models.TemplateHybrid, "jane-hybrid")
	env.cache.Set(t.Context(), "jane-hybrid", []byte("cached"))

	if rr := apiRequest(env, http.MethodPost, "/api/pages/"+page.ID.String()+"/editor", ""); rr.Code != http.StatusOK {
		t.Fatalf("open editor: status %d", rr.Code)
	}

	rr := apiRequest(env, http.MethodDelete, "/api/pages/"+page.ID.String(), "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}
	if env.sessions.Len() != 0 {
		t.Error("editing session survived page deletion")
	}
	if env.cache.has("jane-hybrid") {
		t.Error("cached render survived page deletion")
	}

	if rr := apiRequest(env, http.MethodDelete, "/api/pages/"+page.ID.String(), ""); rr.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", rr.Code)
	}
	if rr := apiRequest(env, http.MethodDelete, "/api/pages/not-a-uuid", ""); rr.Code != http.StatusBadRequest {
		t.Errorf("bad id: status = %d, want 400", rr.Code)
	}
}
