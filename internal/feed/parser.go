// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package feed

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/tomtom215/reelfeed/internal/apperrors"
	"github.com/tomtom215/reelfeed/internal/models"
)

// Parser kinds accepted by New.
const (
	KindRegex  = "regex"
	KindGofeed = "gofeed"
)

// Parser converts raw RSS text into records. Implementations must be safe
// for concurrent use.
type Parser interface {
	ParseDiary(raw string) ([]models.MovieRecord, error)
	ParseWatchlist(raw string) ([]models.MovieRecord, error)
	ParseLists(raw string) ([]models.ListSummary, error)
}

// New returns the parser registered under kind. An empty kind selects the
// regex parser.
func New(kind string) (Parser, error) {
	switch kind {
	case "", KindRegex:
		return NewRegexParser(), nil
	case KindGofeed:
		return NewGofeedParser(), nil
	default:
		return nil, fmt.Errorf("unknown feed parser %q: %w", kind, apperrors.ErrValidation)
	}
}

var (
	rssTagRe     = regexp.MustCompile(`(?i)<rss[^>]*>`)
	channelTagRe = regexp.MustCompile(`(?i)<channel[^>]*>`)
	itemTagRe    = regexp.MustCompile(`(?i)<item[^>]*>`)
)

// Validate checks that raw has the minimal RSS structure: an <rss> root, a
// <channel> and at least one <item>.
func Validate(raw string) error {
	switch {
	case raw == "":
		return fmt.Errorf("empty document: %w", apperrors.ErrMalformedFeed)
	case !rssTagRe.MatchString(raw):
		return fmt.Errorf("missing <rss> element: %w", apperrors.ErrMalformedFeed)
	case !channelTagRe.MatchString(raw):
		return fmt.Errorf("missing <channel> element: %w", apperrors.ErrMalformedFeed)
	case !itemTagRe.MatchString(raw):
		return fmt.Errorf("missing <item> element: %w", apperrors.ErrMalformedFeed)
	}
	return nil
}

// item is the parser-neutral view of one <item>. Both parsers fill it and
// share the conversion into records.
type item struct {
	Title       string
	Link        string
	Description string
	PubDate     string
	GUID        string

	// Published is set when the underlying library already parsed PubDate.
	Published *time.Time
}

func (it item) date() *time.Time {
	if it.Published != nil {
		t := *it.Published
		return &t
	}
	return parseDate(it.PubDate)
}

// description is a cleaned item description.
type description struct {
	Images []string
	Text   string
}

// cleaner extracts images and visible text from an item description.
type cleaner func(html string) description

func diaryRecords(items []item, clean cleaner) []models.MovieRecord {
	out := make([]models.MovieRecord, 0, len(items))
	for _, it := range items {
		if rec, ok := diaryRecord(it, clean); ok {
			out = append(out, rec)
		}
	}
	return out
}

func diaryRecord(it item, clean cleaner) (models.MovieRecord, bool) {
	t := parseTitle(it.Title)
	if t.Name == "" {
		return models.MovieRecord{}, false
	}
	desc := clean(it.Description)

	rec := models.MovieRecord{
		ID:           itemID(it, t),
		Title:        t.Name,
		Year:         t.Year,
		Rating:       t.Rating,
		IsRewatch:    t.Rewatch || rewatchRe.MatchString(it.Description),
		WatchedAt:    it.date(),
		OriginSource: models.OriginPrimary,
		Source:       models.SourceDiaryRSS,
	}
	if len(desc.Images) > 0 {
		rec.PosterURL = models.Ptr(desc.Images[0])
	}
	if it.Link != "" {
		rec.SourceURL = models.Ptr(it.Link)
	}
	if review, ok := reviewText(desc.Text); ok {
		rec.ReviewText = models.Ptr(review)
	}
	return rec, true
}

func watchlistRecords(items []item, clean cleaner) []models.MovieRecord {
	out := make([]models.MovieRecord, 0, len(items))
	for _, it := range items {
		t := parseTitle(it.Title)
		if t.Name == "" {
			continue
		}
		rec := models.MovieRecord{
			ID:           itemID(it, t),
			Title:        t.Name,
			Year:         t.Year,
			AddedAt:      it.date(),
			OriginSource: models.OriginPrimary,
			Source:       models.SourceWatchlistRSS,
		}
		if imgs := clean(it.Description).Images; len(imgs) > 0 {
			rec.PosterURL = models.Ptr(imgs[0])
		}
		if it.Link != "" {
			rec.SourceURL = models.Ptr(it.Link)
		}
		out = append(out, rec)
	}
	return out
}

const maxPreviewImages = 4

var filmCountRe = regexp.MustCompile(`(?i)(\d+)\s+films?`)

func listSummaries(items []item, clean cleaner) []models.ListSummary {
	out := make([]models.ListSummary, 0, len(items))
	for _, it := range items {
		name := models.CleanTitle(collapseSpace(it.Title))
		if name == "" {
			continue
		}
		desc := clean(it.Description)

		count := 0
		if m := filmCountRe.FindStringSubmatch(desc.Text); m != nil {
			count, _ = strconv.Atoi(m[1])
		}
		images := desc.Images
		if len(images) > maxPreviewImages {
			images = images[:maxPreviewImages]
		}

		id := lastPathSegment(it.Link)
		if id == "" {
			id = models.Slug(name)
		}
		out = append(out, models.ListSummary{
			ID:            id,
			Name:          name,
			Description:   desc.Text,
			ExternalURL:   it.Link,
			Tags:          []string{},
			LastUpdatedAt: it.date(),
			Source:        models.SourceListsRSS,
			MovieCount:    models.Ptr(count),
			PreviewImages: images,
		})
	}
	return out
}

// itemID prefers the last path segment of the item link, then the GUID, then
// a slug of title and year.
func itemID(it item, t title) string {
	if id := lastPathSegment(it.Link); id != "" {
		return id
	}
	if it.GUID != "" {
		return it.GUID
	}
	return models.RecordID("diary", t.Name, t.Year)
}
