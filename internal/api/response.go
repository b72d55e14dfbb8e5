// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelfeed/internal/apperrors"
	"github.com/tomtom215/reelfeed/internal/logging"
)

// APIResponse is the envelope of every API response.
type APIResponse struct {
	// Success indicates whether the request was successful
	Success bool `json:"success"`

	// Data contains the response payload (absent on error)
	Data any `json:"data,omitempty"`

	// Metadata describes the payload: counts, limits, provenance
	Metadata Metadata `json:"metadata,omitempty"`

	// Error contains error details (absent on success)
	Error *APIError `json:"error,omitempty"`
}

// Metadata is free-form route metadata. requestId and timestamp are always
// set on success.
type Metadata map[string]any

// APIError represents an error response.
type APIError struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details contains additional error details (optional)
	Details any `json:"details,omitempty"`

	// RequestID is the request ID for tracing
	RequestID string `json:"requestId,omitempty"`
}

// Error codes for API responses
const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrCodeUpstreamTimeout     = "UPSTREAM_TIMEOUT"
	ErrCodeRateLimitExceeded   = "RATE_LIMIT_EXCEEDED"
	ErrCodeNotConfigured       = "NOT_CONFIGURED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// errorCode maps an apperrors kind onto an API error code.
func errorCode(kind string) string {
	switch kind {
	case "NotFound":
		return ErrCodeNotFound
	case "ValidationError":
		return ErrCodeValidation
	case "MalformedFeed", "UpstreamUnavailable", "Unauthorized", "RateLimited":
		return ErrCodeUpstreamUnavailable
	case "UpstreamTimeout":
		return ErrCodeUpstreamTimeout
	case "NotConfigured":
		return ErrCodeNotConfigured
	default:
		return ErrCodeInternalError
	}
}

// respondSuccess writes a 200 envelope. meta may be nil.
func respondSuccess(w http.ResponseWriter, r *http.Request, data any, meta Metadata) {
	if meta == nil {
		meta = Metadata{}
	}
	meta["timestamp"] = time.Now().UTC()
	if id := logging.RequestIDFromContext(r.Context()); id != "" {
		meta["requestId"] = id
	}

	respondJSON(w, http.StatusOK, &APIResponse{
		Success:  true,
		Data:     data,
		Metadata: meta,
	})
}

// respondError writes an error envelope with an explicit status and code.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	respondJSON(w, status, &APIResponse{
		Success: false,
		Error: &APIError{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
	})
}

// respondAppError classifies err and writes the matching envelope. Internal
// errors are logged with their cause and reported with a generic message.
func respondAppError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperrors.Kind(err)
	status := apperrors.HTTPStatus(err)
	message := err.Error()

	if status >= http.StatusInternalServerError {
		logging.CtxErr(r.Context(), err).
			Str("kind", kind).
			Str("path", r.URL.Path).
			Msg("Request failed")
	}
	if kind == "Internal" {
		message = "An unexpected error occurred"
	}

	respondError(w, r, status, errorCode(kind), message, map[string]any{"kind": kind})
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if response.Success {
		w.Header().Set("ETag", generateETag(data))
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a weak ETag from data using FNV-1a hash
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return `W/"` + strconv.FormatUint(uint64(hash), 16) + `"`
}
