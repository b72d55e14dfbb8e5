// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package config provides layered configuration loading for Reelfeed.

Configuration is assembled by Koanf v2 from three layers, later layers
overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file (CONFIG_PATH, or config.yaml / config.yml in the
    working directory, or /etc/reelfeed/config.yaml)
 3. Environment variables, mapped explicitly by envTransformFunc

A .env file in the working directory is loaded into the process environment
before layer 3 when present; variables already set are never overwritten.

# Environment Variables

Server:
  - HTTP_PORT (default 3000), HTTP_HOST (default 0.0.0.0)
  - SERVER_TIMEOUT (default 30s), ENVIRONMENT (default development)

Letterboxd feed:
  - LETTERBOXD_USERNAME: default handle for the diary feed
  - LETTERBOXD_FEED_BASE_URL (default https://letterboxd.com)
  - LETTERBOXD_TIMEOUT (default 10s)
  - FEED_PARSER: regex (default) or gofeed

TMDB:
  - TMDB_API_KEY or TMDB_READ_ACCESS_TOKEN (bearer token preferred)
  - TMDB_BASE_URL (default https://api.themoviedb.org/3)
  - TMDB_IMAGE_BASE_URL (default https://image.tmdb.org/t/p)
  - TMDB_TIMEOUT (default 10s), TMDB_REQUESTS_PER_SECOND (default 4)

Fixtures:
  - FIXTURES_DIR: directory holding five-star-movies.csv, watchlist.csv and
    lists-metadata.json (default .)

Cache:
  - CACHE_ENABLED (default true)
  - CACHE_PATH: Badger directory; empty keeps the cache in memory only
  - CACHE_MEMORY_MAX_ENTRIES (default 100)
  - CACHE_SWEEP_SCHEDULE: cron spec for expired-entry sweeps (default @every 10m)

Security:
  - RATE_LIMIT_REQUESTS (default 100), RATE_LIMIT_WINDOW (default 1m)
  - DISABLE_RATE_LIMIT, CORS_ORIGINS (comma-separated, default *)

Logging:
  - LOG_LEVEL (default info), LOG_FORMAT (json|console), LOG_CALLER
*/
package config
