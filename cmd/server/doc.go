// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package main is the entry point for the Reelfeed server.

Reelfeed aggregates a Letterboxd diary RSS feed, local CSV/JSON fixtures
(five-star favorites, watchlist, lists) and optional TMDB metadata into a
small JSON API for a personal website.

# Application Architecture

The server runs under Suture v4 process supervision:

	RootSupervisor ("reelfeed")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Cache sweeper (cron schedule, CACHE_SWEEP_SCHEDULE)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, .env, environment)
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Cache: Badger durable tier with an in-memory fallback
 4. Upstreams: Letterboxd RSS client and TMDB client, each behind a circuit breaker
 5. Aggregation: merger, fixtures loader and the aggregator service
 6. HTTP: chi router with CORS, rate limiting, gzip and Prometheus metrics

# Configuration

Common environment variables:

	LETTERBOXD_USERNAME    diary owner (default handle for /api/letterboxd/diary)
	TMDB_API_KEY           TMDB v3 key (or TMDB_READ_ACCESS_TOKEN)
	FIXTURES_DIR           directory holding the CSV and JSON fixtures
	CACHE_PATH             Badger directory; empty keeps the cache in memory
	HTTP_PORT              listen port (default 3000)
	LOG_LEVEL, LOG_FORMAT  zerolog level and json/console output

Without TMDB credentials the server still runs: enhancement is skipped and
the /api/tmdb routes answer 503 NOT_CONFIGURED.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP service drains
in-flight requests for up to 10s, the sweeper stops its cron runner and the
cache is closed last.

# Example Usage

	export LETTERBOXD_USERNAME=someone
	export TMDB_API_KEY=your-tmdb-key
	export FIXTURES_DIR=./data
	./reelfeed
*/
package main
