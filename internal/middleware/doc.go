// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package middleware provides HTTP middleware components for the API.

Every component has the chi signature func(http.Handler) http.Handler and
is installed with r.Use.

Key Components:

  - RequestID: UUID request IDs propagated into the logging context
  - PrometheusMetrics: request count, latency and in-flight gauges labelled
    by chi route pattern
  - Compression: gzip for clients sending Accept-Encoding: gzip

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)         // Layer 1: request tracking
	r.Use(middleware.PrometheusMetrics) // Layer 2: metrics
	r.Use(middleware.Compression)       // Layer 3: gzip
	r.Get("/api/movies", handler.Movies)

Request IDs:

An X-Request-ID header from an upstream proxy is kept when it is at most
128 printable ASCII characters; otherwise a new UUID is generated. The ID
is echoed in the response header and available through GetRequestID and
logging.Ctx.
*/
package middleware
