// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package tmdb is the client for The Movie Database v3 API, the secondary
metadata source.

Requests authenticate with a v4 read access token when one is configured
and fall back to the api_key query parameter otherwise. Every request waits
on a token-bucket limiter, runs through a circuit breaker, and is collapsed
with identical in-flight requests through singleflight. Formatted responses
are stored in the shared cache under the tmdb_ key prefixes.

Upstream status codes map onto apperrors sentinels:

	401 -> ErrUpstreamUnauthorized
	404 -> ErrNotFound
	429 -> ErrUpstreamRateLimited
	other non-2xx -> ErrUpstreamUnavailable
*/
package tmdb
