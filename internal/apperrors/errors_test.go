// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string { return "i/o timeout" }
func (timeoutErr) Timeout() bool { return true }

func TestKindAndStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		kind   string
		status int
	}{
		{"nil", nil, "", http.StatusOK},
		{"not found wrapped", fmt.Errorf("read watchlist.csv: %w", ErrNotFound), "NotFound", http.StatusNotFound},
		{"malformed", ErrMalformedFeed, "MalformedFeed", http.StatusBadGateway},
		{"unavailable", ErrUpstreamUnavailable, "UpstreamUnavailable", http.StatusBadGateway},
		{"timeout", ErrUpstreamTimeout, "UpstreamTimeout", http.StatusGatewayTimeout},
		{"deadline", context.DeadlineExceeded, "UpstreamTimeout", http.StatusGatewayTimeout},
		{"validation", ErrValidation, "ValidationError", http.StatusBadRequest},
		{"exhausted", ErrExhaustedFallback, "ExhaustedFallback", http.StatusInternalServerError},
		{"not configured", ErrNotConfigured, "NotConfigured", http.StatusInternalServerError},
		{"unauthorized", ErrUpstreamUnauthorized, "Unauthorized", http.StatusBadGateway},
		{"rate limited", fmt.Errorf("search: %w", ErrUpstreamRateLimited), "RateLimited", http.StatusBadGateway},
		{"unknown", errors.New("boom"), "Internal", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Kind(tt.err); got != tt.kind {
				t.Errorf("Kind() = %q, want %q", got, tt.kind)
			}
			if got := HTTPStatus(tt.err); got != tt.status {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.status)
			}
		})
	}
}

func TestFromTransport(t *testing.T) {
	t.Parallel()

	if FromTransport(nil) != nil {
		t.Error("FromTransport(nil) should be nil")
	}

	urlTimeout := &url.Error{Op: "Get", URL: "https://example.test", Err: timeoutErr{}}
	if err := FromTransport(urlTimeout); !errors.Is(err, ErrUpstreamTimeout) {
		t.Errorf("timeout transport error classified as %v", err)
	}

	refused := &url.Error{Op: "Get", URL: "https://example.test", Err: errors.New("connection refused")}
	err := FromTransport(refused)
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("refused transport error classified as %v", err)
	}
	var ue *url.Error
	if !errors.As(err, &ue) {
		t.Error("original error should remain in the chain")
	}
}
