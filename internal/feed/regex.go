// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package feed

import (
	"html"
	"regexp"
	"strings"

	"github.com/tomtom215/reelfeed/internal/models"
)

var (
	itemBlockRe = regexp.MustCompile(`(?is)<item[^>]*>(.*?)</item>`)
	imgSrcRe    = regexp.MustCompile(`(?i)<img[^>]+src="([^"]+)"`)
	imgTagRe    = regexp.MustCompile(`(?i)<img[^>]*>`)
	tagRe       = regexp.MustCompile(`<[^>]*>`)
)

var fieldRes = map[string]*regexp.Regexp{}

func init() {
	for _, f := range []string{"title", "link", "description", "pubDate", "guid", "lastBuildDate"} {
		fieldRes[f] = regexp.MustCompile(`(?is)<` + f + `[^>]*>(.*?)</` + f + `>`)
	}
}

// RegexParser extracts items with regular expressions. It does not require
// well-formed XML, only the minimal structure checked by Validate.
type RegexParser struct{}

// NewRegexParser returns the default parser.
func NewRegexParser() *RegexParser {
	return &RegexParser{}
}

// ParseDiary implements Parser.
func (p *RegexParser) ParseDiary(raw string) ([]models.MovieRecord, error) {
	items, err := p.items(raw)
	if err != nil {
		return nil, err
	}
	return diaryRecords(items, regexClean), nil
}

// ParseWatchlist implements Parser.
func (p *RegexParser) ParseWatchlist(raw string) ([]models.MovieRecord, error) {
	items, err := p.items(raw)
	if err != nil {
		return nil, err
	}
	return watchlistRecords(items, regexClean), nil
}

// ParseLists implements Parser.
func (p *RegexParser) ParseLists(raw string) ([]models.ListSummary, error) {
	items, err := p.items(raw)
	if err != nil {
		return nil, err
	}
	return listSummaries(items, regexClean), nil
}

func (p *RegexParser) items(raw string) ([]item, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	blocks := itemBlockRe.FindAllStringSubmatch(raw, -1)
	items := make([]item, 0, len(blocks))
	for _, b := range blocks {
		body := b[1]
		items = append(items, item{
			Title:       textField(body, "title"),
			Link:        textField(body, "link"),
			Description: field(body, "description"),
			PubDate:     textField(body, "pubDate"),
			GUID:        textField(body, "guid"),
		})
	}
	return items, nil
}

// field returns the trimmed inner text of the first <name> element in
// block, or "" when absent.
func field(block, name string) string {
	m := fieldRes[name].FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// textField is field with CDATA markers removed and entities decoded.
func textField(block, name string) string {
	return strings.TrimSpace(html.UnescapeString(cdataRe.ReplaceAllString(field(block, name), "")))
}

// regexClean collects image sources and visible text from a description.
func regexClean(fragment string) description {
	s := cdataRe.ReplaceAllString(fragment, "")
	if !strings.Contains(s, "<") && strings.Contains(s, "&lt;") {
		s = html.UnescapeString(s)
	}

	var d description
	for _, m := range imgSrcRe.FindAllStringSubmatch(s, -1) {
		d.Images = append(d.Images, html.UnescapeString(m[1]))
	}
	s = imgTagRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, " ")
	d.Text = collapseSpace(html.UnescapeString(s))
	return d
}
