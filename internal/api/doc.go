// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package api provides the HTTP surface of Reelfeed on a chi router.

Routes (all GET unless noted):

	/api/letterboxd/diary             limit (5), username
	/api/letterboxd/five-star-movies  limit (12)
	/api/letterboxd/watchlist         limit (8), random
	/api/letterboxd/watchlist-random
	/api/letterboxd/lists             limit (6), featured
	/api/tmdb/search                  query (required), year, page
	/api/tmdb/movie-details           id (required), append_to_response
	/api/movies                       cache, enhance
	/api/movies/dedupe                username
	/api/movies/rotation              index
	/api/movies/fallback              title (required), year
	/api/cache/stats
	/api/cache/reset                  POST
	/health, /health/live, /health/ready
	/metrics

Response Envelope:

Every handler answers with APIResponse:

	{"success": true, "data": ..., "metadata": {...}}
	{"success": false, "error": {"code": "...", "message": "...", "details": ...}}

Errors from the service layer are classified with apperrors and mapped to
status codes: 400 VALIDATION_ERROR, 404 NOT_FOUND, 502 UPSTREAM_UNAVAILABLE
for network failures and malformed feeds, 504 UPSTREAM_TIMEOUT, 429
RATE_LIMIT_EXCEEDED and 500 INTERNAL_ERROR.

Query parameters are read into request structs and checked with
go-playground/validator; field names in validation errors are the query
parameter names.

Middleware:

Request IDs, Prometheus metrics and gzip come from the middleware package.
CORS (go-chi/cors) and per-IP rate limits (go-chi/httprate) are built by
ChiMiddleware from config.SecurityConfig.
*/
package api
