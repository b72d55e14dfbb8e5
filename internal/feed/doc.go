// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package feed turns Letterboxd RSS documents into normalized records.

Two Parser implementations share one contract:

  - RegexParser (default) scans <item> blocks with regular expressions and
    tolerates documents that are not well-formed XML.
  - GofeedParser delegates XML handling to github.com/mmcdole/gofeed and
    cleans item descriptions with github.com/PuerkitoBio/goquery.

Both reject a blob that lacks <rss>, <channel> or <item> with
apperrors.ErrMalformedFeed and zero records. Items without a title are
dropped silently.

Diary titles look like "Heat, 1995 - ★★★★½". The trailing four digit token is
the year; the star run is the rating, one point per ★ plus 0.5 for ½, capped
at 5.0.

Usage:

	p, err := feed.New(feed.KindRegex)
	if err != nil {
	    return err
	}
	records, err := p.ParseDiary(body)
*/
package feed
