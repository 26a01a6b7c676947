// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Stop()
	now := time.Now()

	for i := 0; i < 3; i++ {
		if ok, _ := rl.allow("test-ip", now); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	ok, wait := rl.allow("test-ip", now.Add(10*time.Second))
	if ok {
		t.Error("4th request should be rate-limited")
	}
	if wait != 50*time.Second {
		t.Errorf("wait = %s, want 50s", wait)
	}
	if ok, _ := rl.allow("other-ip", now); !ok {
		t.Error("different IP should be allowed")
	}
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()
	now := time.Now()

	rl.allow("test-ip", now)
	rl.allow("test-ip", now)
	if ok, _ := rl.allow("test-ip", now.Add(30*time.Second)); ok {
		t.Error("should be rate-limited")
	}
	if ok, _ := rl.allow("test-ip", now.Add(61*time.Second)); !ok {
		t.Error("should be allowed after the window expires")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/jane-recruiting/lead", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	for i := 0; i < 2; i++ {
		if rr := send(); rr.Code != http.StatusOK {
			t.Fatalf("request %d: got status %d, want 200", i+1, rr.Code)
		}
	}
	rr := send()
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("got status %d, want 429", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("429 response has no Retry-After")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr", "10.0.0.1:5555", nil, "10.0.0.1"},
		{"ipv6 remote addr", "[::1]:5555", nil, "::1"},
		{"no port", "10.0.0.1", nil, "10.0.0.1"},
		{"forwarded for", "10.0.0.1:5555", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"real ip", "10.0.0.1:5555", map[string]string{"X-Real-IP": " 203.0.113.9 "}, "203.0.113.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)
	defer rl.Stop()
	now := time.Now()

	rl.allow("old", now.Add(-2*time.Minute))
	rl.allow("recent", now.Add(-10*time.Second))
	rl.cleanup(now)

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	if _, ok := rl.clients["old"]; ok {
		t.Error("expired entry was kept")
	}
	if _, ok := rl.clients["recent"]; !ok {
		t.Error("recent entry was removed")
	}
}

func TestRateLimiterStopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	rl.Stop()
	rl.Stop()
}
