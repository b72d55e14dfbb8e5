// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package feed

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/tomtom215/reelfeed/internal/apperrors"
	"github.com/tomtom215/reelfeed/internal/models"
)

// GofeedParser reads items with gofeed and cleans descriptions with goquery.
// Unlike RegexParser it rejects documents that are not well-formed XML.
type GofeedParser struct{}

// NewGofeedParser returns a gofeed-backed parser.
func NewGofeedParser() *GofeedParser {
	return &GofeedParser{}
}

// ParseDiary implements Parser.
func (p *GofeedParser) ParseDiary(raw string) ([]models.MovieRecord, error) {
	items, err := p.items(raw)
	if err != nil {
		return nil, err
	}
	return diaryRecords(items, queryClean), nil
}

// ParseWatchlist implements Parser.
func (p *GofeedParser) ParseWatchlist(raw string) ([]models.MovieRecord, error) {
	items, err := p.items(raw)
	if err != nil {
		return nil, err
	}
	return watchlistRecords(items, queryClean), nil
}

// ParseLists implements Parser.
func (p *GofeedParser) ParseLists(raw string) ([]models.ListSummary, error) {
	items, err := p.items(raw)
	if err != nil {
		return nil, err
	}
	return listSummaries(items, queryClean), nil
}

func (p *GofeedParser) items(raw string) ([]item, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	// gofeed.Parser keeps per-parse state, so one is built per call.
	f, err := gofeed.NewParser().ParseString(raw)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", errors.Join(apperrors.ErrMalformedFeed, err))
	}

	items := make([]item, 0, len(f.Items))
	for _, fi := range f.Items {
		it := item{
			Title:       fi.Title,
			Link:        fi.Link,
			Description: fi.Description,
			PubDate:     fi.Published,
			GUID:        fi.GUID,
			Published:   fi.PublishedParsed,
		}
		if it.Description == "" {
			it.Description = fi.Content
		}
		items = append(items, it)
	}
	return items, nil
}

// queryClean walks the description as an HTML fragment. Block elements are
// padded so adjacent paragraphs do not run together.
func queryClean(fragment string) description {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return regexClean(fragment)
	}

	var d description
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok && src != "" {
			d.Images = append(d.Images, src)
		}
	})
	doc.Find("img").Remove()
	doc.Find("p, br, div, li").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})
	d.Text = collapseSpace(doc.Text())
	return d
}
