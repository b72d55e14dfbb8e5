// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func largeBody(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "999")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	})
}

func TestCompression_WithGzipAccept(t *testing.T) {
	t.Parallel()

	body := strings.Repeat(`{"title":"Heat","year":1995}`, 100)
	req := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rec := httptest.NewRecorder()

	Compression(largeBody(body)).ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("Expected Content-Encoding: gzip, got: %s", rec.Header().Get("Content-Encoding"))
	}
	if rec.Header().Get("Content-Length") != "" {
		t.Error("Expected Content-Length header to be removed")
	}
	if rec.Header().Get("Vary") != "Accept-Encoding" {
		t.Errorf("Expected Vary: Accept-Encoding, got %q", rec.Header().Get("Vary"))
	}

	reader, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("Failed to create gzip reader: %v", err)
	}
	defer reader.Close()

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("Failed to read decompressed data: %v", err)
	}
	if string(decompressed) != body {
		t.Error("Decompressed data doesn't match expected")
	}
}

func TestCompression_Passthrough(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		method         string
		acceptEncoding string
	}{
		{"no accept header", http.MethodGet, ""},
		{"identity only", http.MethodGet, "identity"},
		{"head request", http.MethodHead, "gzip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, "/health", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rec := httptest.NewRecorder()

			Compression(largeBody("plain")).ServeHTTP(rec, req)

			if rec.Header().Get("Content-Encoding") == "gzip" {
				t.Error("Expected response to be uncompressed")
			}
			if tt.method == http.MethodGet && rec.Body.String() != "plain" {
				t.Errorf("Expected plain body, got %q", rec.Body.String())
			}
		})
	}
}

func TestGzipResponseWriter_WriteSetsStatus(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	w := &gzipResponseWriter{Writer: io.Discard, ResponseWriter: rec}

	if _, err := w.Write([]byte("x")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !w.wroteHeader || rec.Code != http.StatusOK {
		t.Errorf("Expected implicit 200, got wroteHeader=%v code=%d", w.wroteHeader, rec.Code)
	}
}

func BenchmarkCompression(b *testing.B) {
	handler := Compression(largeBody(strings.Repeat("movie ", 500)))
	req := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func TestCompression_HidesAcceptEncodingFromInnerHandler(t *testing.T) {
	t.Parallel()

	var seen string
	handler := Compression(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Accept-Encoding")
	}))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "" {
		t.Errorf("Expected inner handler to see no Accept-Encoding, got %q", seen)
	}
	if req.Header.Get("Accept-Encoding") != "gzip" {
		t.Error("Expected original request headers to be left untouched")
	}
}
