// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package api

import (
	"net/http"
	"time"
)

// Health handles GET /health. It always answers 200; the status field is
// "healthy" or "degraded".
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	health := h.svc.Health(r.Context())

	respondSuccess(w, r, health, Metadata{
		"version": h.version,
		"uptime":  time.Since(h.startTime).Seconds(),
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]any{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, nil)
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if the random-pick probe succeeds, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	health := h.svc.Health(r.Context())

	if health.Status != "healthy" {
		respondError(w, r, http.StatusServiceUnavailable, "NOT_READY", "Service is not ready", map[string]any{
			"status":          health.Status,
			"randomPickError": health.RandomPickError,
		})
		return
	}

	respondSuccess(w, r, map[string]any{
		"ready":     true,
		"status":    health.Status,
		"upstreams": health.Upstreams,
	}, nil)
}
