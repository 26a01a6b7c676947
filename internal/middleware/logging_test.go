// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// captureLog routes the default logger into a buffer for the test and
// returns a func decoding every record written so far.
func captureLog(t *testing.T) func() []map[string]any {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	return func() []map[string]any {
		var records []map[string]any
		dec := json.NewDecoder(bytes.NewReader(buf.Bytes()))
		for dec.More() {
			var rec map[string]any
			if err := dec.Decode(&rec); err != nil {
				t.Fatalf("decode log record: %v", err)
			}
			records = append(records, rec)
		}
		return records
	}
}

// requestRecord returns the single "http request" record.
func requestRecord(t *testing.T, records []map[string]any) map[string]any {
	t.Helper()
	var found []map[string]any
	for _, rec := range records {
		if rec["msg"] == "http request" {
			found = append(found, rec)
		}
	}
	if len(found) != 1 {
		t.Fatalf("got %d request records, want 1: %v", len(found), records)
	}
	return found[0]
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
	}{
		{"success", http.StatusOK, "INFO"},
		{"created", http.StatusCreated, "INFO"},
		{"redirect", http.StatusSeeOther, "INFO"},
		{"not found", http.StatusNotFound, "WARN"},
		{"unprocessable lead", http.StatusUnprocessableEntity, "WARN"},
		{"rate limited", http.StatusTooManyRequests, "WARN"},
		{"server error", http.StatusInternalServerError, "ERROR"},
		{"intake down", http.StatusBadGateway, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := captureLog(t)
			handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/jane-recruiting/lead", nil))

			if rr.Code != tt.status {
				t.Errorf("status passed through = %d, want %d", rr.Code, tt.status)
			}
			rec := requestRecord(t, records())
			if rec["level"] != tt.level {
				t.Errorf("level = %v, want %s", rec["level"], tt.level)
			}
			if rec["status"] != float64(tt.status) {
				t.Errorf("logged status = %v, want %d", rec["status"], tt.status)
			}
		})
	}
}

func TestLoggerFields(t *testing.T) {
	records := captureLog(t)
	handler := chimw.RequestID(Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Implicit 200, body written in three chunks.
		w.Write([]byte("<html>"))
		w.Write([]byte("landing"))
		w.Write([]byte("</html>"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/jane-client", nil)
	req.RemoteAddr = "198.51.100.7:5123"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Body.String() != "<html>landing</html>" {
		t.Errorf("body = %q", rr.Body.String())
	}
	rec := requestRecord(t, records())
	want := map[string]any{
		"level":  "INFO",
		"method": http.MethodGet,
		"path":   "/jane-client",
		"status": float64(http.StatusOK),
		"bytes":  float64(len("<html>landing</html>")),
		"remote": "198.51.100.7",
	}
	for k, v := range want {
		if rec[k] != v {
			t.Errorf("%s = %v, want %v", k, rec[k], v)
		}
	}
	if id, _ := rec["request_id"].(string); id == "" {
		t.Error("request_id missing from the log record")
	}
	if d, _ := rec["duration"].(string); d == "" {
		t.Error("duration missing from the log record")
	}
}

func TestLoggerErrorBodyBytes(t *testing.T) {
	records := captureLog(t)
	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "page not found", http.StatusNotFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nobody", nil))

	rec := requestRecord(t, records())
	// http.Error appends a newline.
	if rec["bytes"] != float64(len("page not found\n")) {
		t.Errorf("bytes = %v, want %d", rec["bytes"], len("page not found\n"))
	}
	if rec["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", rec["level"])
	}
}

func TestResponseWriter(t *testing.T) {
	t.Run("first WriteHeader wins", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
		rw.WriteHeader(http.StatusNotFound)
		rw.WriteHeader(http.StatusInternalServerError)

		if rw.statusCode != http.StatusNotFound {
			t.Errorf("statusCode = %d, want 404", rw.statusCode)
		}
	})

	t.Run("Write implies 200 and counts bytes", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder()}
		for _, chunk := range []string{"ab", "cde", ""} {
			if _, err := rw.Write([]byte(chunk)); err != nil {
				t.Fatalf("Write: %v", err)
			}
		}
		if rw.statusCode != http.StatusOK || !rw.written {
			t.Errorf("statusCode = %d, written = %v", rw.statusCode, rw.written)
		}
		if rw.bytes != 5 {
			t.Errorf("bytes = %d, want 5", rw.bytes)
		}
	})

	t.Run("Write keeps an explicit status", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
		rw.WriteHeader(http.StatusCreated)
		rw.Write([]byte("created"))

		if rw.statusCode != http.StatusCreated {
			t.Errorf("statusCode = %d, want 201", rw.statusCode)
		}
	})

	t.Run("Unwrap returns the underlying writer", func(t *testing.T) {
		rr := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rr}
		if rw.Unwrap() != rr {
			t.Error("Unwrap did not return the wrapped writer")
		}
	})
}
