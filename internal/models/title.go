// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package models

import (
	"regexp"
	"strings"
)

var trailingCommas = regexp.MustCompile(`(?:,\s*)+$`)

// CleanTitle removes trailing commas and surrounding whitespace, so
// "Paris, Texas, " becomes "Paris, Texas". Blank input is returned unchanged.
func CleanTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return title
	}
	return strings.TrimSpace(trailingCommas.ReplaceAllString(strings.TrimSpace(title), ""))
}
