// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package feed

import (
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomtom215/reelfeed/internal/models"
)

const maxRating = 5.0

var (
	rewatchTagRe    = regexp.MustCompile(`(?i)\(rewatch\)`)
	rewatchRe       = regexp.MustCompile(`(?i)rewatch`)
	trailingStarsRe = regexp.MustCompile(`\s*(?:-\s*)?(★+½?|½)\s*$`)
	titleYearRe     = regexp.MustCompile(`^(.+?)[,\s]+(\d{4})$`)
	starRunRe       = regexp.MustCompile(`★+½?|½`)
	watchedOnRe     = regexp.MustCompile(`Watched on [^.]*\.`)
	boilerplateRe   = regexp.MustCompile(`^(?:Watched|Added|Liked)`)
	cdataRe         = regexp.MustCompile(`<!\[CDATA\[|\]\]>`)
	spaceRe         = regexp.MustCompile(`\s+`)
)

// title is the decomposition of a diary item title.
type title struct {
	Name    string
	Year    *int
	Rating  *float64
	Rewatch bool
}

// parseTitle splits "Name, YYYY - ★★★½ (rewatch)" into its parts. A title
// without a trailing year keeps the whole text as Name and a nil Year.
func parseTitle(raw string) title {
	var t title
	s := collapseSpace(html.UnescapeString(cdataRe.ReplaceAllString(raw, "")))

	if rewatchTagRe.MatchString(s) {
		t.Rewatch = true
		s = strings.TrimSpace(rewatchTagRe.ReplaceAllString(s, ""))
	}
	if m := trailingStarsRe.FindStringSubmatchIndex(s); m != nil {
		t.Rating = models.Ptr(starRating(s[m[2]:m[3]]))
		s = strings.TrimSpace(s[:m[0]])
	}
	if m := titleYearRe.FindStringSubmatch(s); m != nil {
		if y, err := strconv.Atoi(m[2]); err == nil {
			t.Year = &y
			s = m[1]
		}
	}
	t.Name = models.CleanTitle(strings.TrimSpace(s))
	return t
}

// starRating converts a glyph run to a number: 1.0 per ★, 0.5 for ½.
func starRating(stars string) float64 {
	r := float64(strings.Count(stars, "★"))
	if strings.HasSuffix(stars, "½") {
		r += 0.5
	}
	return min(r, maxRating)
}

// reviewText strips diary boilerplate from cleaned description text and
// reports whether anything worth showing is left.
func reviewText(text string) (string, bool) {
	s := watchedOnRe.ReplaceAllString(text, "")
	s = starRunRe.ReplaceAllString(s, "")
	s = rewatchTagRe.ReplaceAllString(s, "")
	s = collapseSpace(s)
	if utf8.RuneCountInString(s) <= 5 || boilerplateRe.MatchString(s) {
		return "", false
	}
	return s, true
}

var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC3339,
	"2006-01-02",
}

// parseDate accepts the RFC 822 variants seen in feeds. Unparsable input
// yields nil.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func lastPathSegment(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return ""
	}
	p := strings.Trim(u.Path, "/")
	if p == "" {
		return ""
	}
	return p[strings.LastIndex(p, "/")+1:]
}

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
