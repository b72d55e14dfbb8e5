// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

// Package logging provides the zerolog-based structured logger shared by every
// Reelfeed component.
//
// A single global logger is configured once at startup from the logging
// section of the configuration and is then reached through package-level
// helpers:
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	logging.Info().Str("user", handle).Msg("Fetching diary feed")
//	logging.Err(err).Str("branch", "lists").Msg("Branch failed")
//
// Request-scoped logging carries the correlation and request identifiers that
// the HTTP middleware stores in the request context:
//
//	logging.Ctx(r.Context()).Warn().Msg("Upstream slow")
//
// Components create child loggers with a fixed component field:
//
//	log := logging.WithComponent("cache")
//
// The slog adapter lets libraries that speak log/slog (the suture supervisor
// event hook in particular) write through the same zerolog pipeline.
package logging
