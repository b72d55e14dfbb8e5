// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

// Package models defines the normalized data types shared across Reelfeed:
// MovieRecord, ListSummary and the branch/combined results returned by the
// aggregation facade.
package models
