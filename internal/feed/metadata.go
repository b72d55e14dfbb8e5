// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package feed

import (
	"fmt"
	"regexp"
	"time"

	"github.com/tomtom215/reelfeed/internal/apperrors"
)

var channelBlockRe = regexp.MustCompile(`(?is)<channel[^>]*>(.*?)</channel>`)

// Metadata describes the channel of a feed.
type Metadata struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Link          string     `json:"link"`
	LastBuildDate *time.Time `json:"lastBuildDate,omitempty"`
	ItemCount     int        `json:"itemCount"`
}

// ExtractMetadata reads channel level fields. Only the channel header, the
// part before the first <item>, is consulted so item titles never leak in.
func ExtractMetadata(raw string) (Metadata, error) {
	m := channelBlockRe.FindStringSubmatch(raw)
	if m == nil {
		return Metadata{}, fmt.Errorf("no channel found: %w", apperrors.ErrMalformedFeed)
	}
	head := m[1]
	if loc := itemTagRe.FindStringIndex(head); loc != nil {
		head = head[:loc[0]]
	}
	return Metadata{
		Title:         textField(head, "title"),
		Description:   textField(head, "description"),
		Link:          textField(head, "link"),
		LastBuildDate: parseDate(textField(head, "lastBuildDate")),
		ItemCount:     len(itemBlockRe.FindAllStringIndex(m[1], -1)),
	}, nil
}
