// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package models

import (
	"slices"
	"strings"
	"time"
)

// FeaturedListTag marks curated lists shown in the featured section.
const FeaturedListTag = "topstats"

// ListSummary is a named curated collection of films.
type ListSummary struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	ExternalURL   string     `json:"url"`
	Tags          []string   `json:"tags"`
	LastUpdatedAt *time.Time `json:"lastUpdated"`
	Source        string     `json:"source,omitempty"`

	// Populated only for lists parsed from an RSS list feed.
	MovieCount    *int     `json:"movieCount,omitempty"`
	PreviewImages []string `json:"previewImages,omitempty"`
}

// NormalizeTags trims, drops empties and removes duplicate tags while keeping
// first-seen order, giving Tags set semantics.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// HasTag reports whether the list carries tag.
func (l *ListSummary) HasTag(tag string) bool {
	return slices.Contains(l.Tags, tag)
}
