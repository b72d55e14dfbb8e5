// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package models

import "time"

// BranchResult is the per-source outcome inside a CombinedResult. A failed
// branch carries Success=false, a human readable Error and the error class in
// ErrorKind; Data holds the zero value.
type BranchResult[T any] struct {
	Success   bool           `json:"success"`
	Data      T              `json:"data"`
	Error     string         `json:"error,omitempty"`
	ErrorKind string         `json:"errorKind,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Enhanced  bool           `json:"enhanced,omitempty"`
	FromCache bool           `json:"fromCache,omitempty"`
}

// CombinedResult is returned by the aggregation facade. All four branches are
// always populated with either a success or a failure shape.
type CombinedResult struct {
	Diary          BranchResult[[]MovieRecord] `json:"diary"`
	FiveStarMovies BranchResult[[]MovieRecord] `json:"fiveStarMovies"`
	RandomMovie    BranchResult[*MovieRecord]  `json:"randomMovie"`
	Lists          BranchResult[[]ListSummary] `json:"lists"`
	FetchedAt      time.Time                   `json:"fetchedAt"`
	FromCache      bool                        `json:"fromCache"`
}
