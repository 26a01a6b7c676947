// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP surface: the JSON API used by the
// page builder and the public landing pages with their lead forms.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"landingkit/internal/builder"
	"landingkit/internal/content"
	"landingkit/internal/middleware"
	"landingkit/internal/models"
	"landingkit/internal/pages"
	"landingkit/internal/storage"
)

// maxJSONBody bounds API request bodies.
const maxJSONBody = 1 << 20

// writeJSON sends a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}

// writeError sends {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeErr maps a domain error to its status code. Server-side failures
// are logged and reported without detail.
func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, status, http.StatusText(status))
		return
	}
	writeError(w, status, err.Error())
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, pages.ErrInvalidRequest),
		errors.Is(err, pages.ErrInvalidSlug),
		errors.Is(err, content.ErrInvalidPath),
		errors.Is(err, content.ErrNoFormConfig),
		errors.Is(err, content.ErrFieldIndex),
		errors.Is(err, storage.ErrUnsupportedType):
		return http.StatusBadRequest
	case errors.Is(err, content.ErrSchema):
		return http.StatusUnprocessableEntity
	case errors.Is(err, builder.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, builder.ErrNoSession):
		return http.StatusNotFound
	case errors.Is(err, pages.ErrDuplicateTemplate),
		errors.Is(err, pages.ErrSlugTaken),
		errors.Is(err, builder.ErrSaveInProgress),
		errors.Is(err, builder.ErrClosed):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// pageID parses the {id} URL parameter.
func pageID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid page id")
		return uuid.Nil, false
	}
	return id, true
}

// professional returns the authenticated professional. Routes behind
// Identity.Require always have one.
func professional(w http.ResponseWriter, r *http.Request) (*models.Professional, bool) {
	pro := middleware.ProfessionalFromCtx(r.Context())
	if pro == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return pro, true
}
