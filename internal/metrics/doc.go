// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package metrics declares the Prometheus collectors exported at /metrics.

All collectors are registered on the default registry through promauto when
the package is initialized.

API Metrics:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Upstream Metrics:
  - upstream_request_duration_seconds{upstream, operation}
  - upstream_errors_total{upstream, kind}
  - feed_items_parsed_total{parser, feed}

Cache Metrics:
  - cache_hits_total{store}, cache_misses_total{store}
  - cache_entries{store}
  - cache_evictions_total{store, reason}
  - cache_write_fallbacks_total

Circuit Breaker Metrics:
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

Pipeline Metrics:
  - merger_enhancements_total{outcome}
  - merger_fallback_attempts_total{outcome}
  - aggregator_branch_results_total{branch, outcome, cached}
  - aggregator_duration_seconds
*/
package metrics
