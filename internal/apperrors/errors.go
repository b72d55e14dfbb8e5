// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

// Package apperrors defines the error taxonomy shared by the fetchers,
// parsers, merger and HTTP layer.
//
// Producers wrap a sentinel with context:
//
//	return fmt.Errorf("read %s: %w", path, apperrors.ErrNotFound)
//
// Consumers classify with errors.Is, Kind or HTTPStatus.
package apperrors

import (
	"context"
	"errors"
	"net/http"
)

var (
	// ErrNotFound covers a missing local file or a missing upstream resource.
	ErrNotFound = errors.New("not found")

	// ErrMalformedFeed is a structural validation failure on RSS input.
	ErrMalformedFeed = errors.New("malformed feed")

	// ErrUpstreamTimeout is an outbound call that hit its deadline.
	ErrUpstreamTimeout = errors.New("upstream timeout")

	// ErrUpstreamUnavailable is a network or HTTP failure talking to an upstream.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrValidation is bad input or a record missing required fields.
	ErrValidation = errors.New("validation error")

	// ErrExhaustedFallback is returned once the fallback retry budget is spent.
	ErrExhaustedFallback = errors.New("fallback attempts exhausted")

	// ErrNotConfigured marks a feature whose credentials are absent.
	ErrNotConfigured = errors.New("not configured")

	// ErrUpstreamUnauthorized is an upstream rejecting our credentials.
	ErrUpstreamUnauthorized = errors.New("upstream rejected credentials")

	// ErrUpstreamRateLimited is an upstream answering 429.
	ErrUpstreamRateLimited = errors.New("upstream rate limit exceeded")
)

// Kind names the class of err for structured results and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrMalformedFeed):
		return "MalformedFeed"
	case errors.Is(err, ErrUpstreamTimeout), errors.Is(err, context.DeadlineExceeded):
		return "UpstreamTimeout"
	case errors.Is(err, ErrUpstreamUnavailable):
		return "UpstreamUnavailable"
	case errors.Is(err, ErrValidation):
		return "ValidationError"
	case errors.Is(err, ErrExhaustedFallback):
		return "ExhaustedFallback"
	case errors.Is(err, ErrNotConfigured):
		return "NotConfigured"
	case errors.Is(err, ErrUpstreamUnauthorized):
		return "Unauthorized"
	case errors.Is(err, ErrUpstreamRateLimited):
		return "RateLimited"
	default:
		return "Internal"
	}
}

// HTTPStatus maps err onto the status code the API reports for it. An
// upstream rejecting our key or throttling us is a gateway failure, not the
// caller's.
func HTTPStatus(err error) int {
	switch Kind(err) {
	case "":
		return http.StatusOK
	case "NotFound":
		return http.StatusNotFound
	case "MalformedFeed", "UpstreamUnavailable", "Unauthorized", "RateLimited":
		return http.StatusBadGateway
	case "UpstreamTimeout":
		return http.StatusGatewayTimeout
	case "ValidationError":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// FromTransport classifies a client-side transport error: deadline and
// timeout errors become ErrUpstreamTimeout, everything else
// ErrUpstreamUnavailable. The original error stays in the chain.
func FromTransport(err error) error {
	if err == nil {
		return nil
	}
	var te interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &te) && te.Timeout()) {
		return errors.Join(ErrUpstreamTimeout, err)
	}
	return errors.Join(ErrUpstreamUnavailable, err)
}
