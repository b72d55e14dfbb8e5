// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func captureID(captured *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestID_GeneratesNewID(t *testing.T) {
	t.Parallel()

	var capturedID string
	req := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
	rec := httptest.NewRecorder()

	RequestID(captureID(&capturedID)).ServeHTTP(rec, req)

	responseID := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("Response X-Request-ID is not a valid UUID: %v", err)
	}
	if capturedID != responseID {
		t.Errorf("Context ID (%s) doesn't match response header ID (%s)", capturedID, responseID)
	}
}

func TestRequestID_PreservesUpstreamProxyID(t *testing.T) {
	t.Parallel()

	var capturedID string
	req := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
	req.Header.Set(RequestIDHeader, "nginx-7f3a9c")
	rec := httptest.NewRecorder()

	RequestID(captureID(&capturedID)).ServeHTTP(rec, req)

	if capturedID != "nginx-7f3a9c" {
		t.Errorf("Expected upstream ID to be preserved, got %q", capturedID)
	}
	if got := rec.Header().Get(RequestIDHeader); got != "nginx-7f3a9c" {
		t.Errorf("Expected response header to echo upstream ID, got %q", got)
	}
}

func TestRequestID_ReplacesMalformedID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"contains space", "abc def"},
		{"contains newline", "abc\ndef"},
		{"too long", strings.Repeat("a", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var capturedID string
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, tt.id)
			rec := httptest.NewRecorder()

			RequestID(captureID(&capturedID)).ServeHTTP(rec, req)

			if capturedID == tt.id {
				t.Errorf("Expected malformed ID %q to be replaced", tt.id)
			}
			if _, err := uuid.Parse(capturedID); err != nil {
				t.Errorf("Replacement ID is not a UUID: %v", err)
			}
		})
	}
}

func TestGetRequestID_WithoutID(t *testing.T) {
	t.Parallel()

	if id := GetRequestID(context.Background()); id != "" {
		t.Errorf("Expected empty request ID, got %q", id)
	}
}

func TestRequestID_MultipleRequests(t *testing.T) {
	t.Parallel()

	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	seen := make(map[string]bool)

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(RequestIDHeader)
		if seen[id] {
			t.Fatalf("Duplicate request ID generated: %s", id)
		}
		seen[id] = true
	}
}

func BenchmarkRequestID(b *testing.B) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}
