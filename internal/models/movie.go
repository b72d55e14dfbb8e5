// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package models

import (
	"strconv"
	"strings"
	"time"
)

// OriginSource records which upstream produced the authoritative fields of a
// MovieRecord.
type OriginSource string

const (
	// OriginPrimary marks records read from the diary feed or local fixtures.
	OriginPrimary OriginSource = "primary"

	// OriginSecondaryEnriched marks primary records that received TMDB fields.
	OriginSecondaryEnriched OriginSource = "secondary-enriched"

	// OriginSecondaryFallback marks records built entirely from TMDB because
	// the primary feed could not be reached.
	OriginSecondaryFallback OriginSource = "secondary-fallback"
)

// Ingress labels carried in MovieRecord.Source.
const (
	SourceDiaryRSS     = "letterboxd-rss"
	SourceWatchlistRSS = "letterboxd-watchlist-rss"
	SourceListsRSS     = "letterboxd-list-rss"
	SourceFiveStarCSV  = "five-star-csv"
	SourceWatchlistCSV = "watchlist-csv"
	SourceListsJSON    = "letterboxd-metadata"
	SourceTMDB         = "tmdb"
	SourceTMDBFallback = "tmdb-fallback"
)

// MovieRecord is the single normalized film reference used by every stage of
// the pipeline. Each ingress boundary (feed item, CSV row, TMDB movie)
// converts into a MovieRecord exactly once.
//
// Title is always non-empty on a valid record; Year and PosterURL may be nil.
// The enrichment block is filled only by the merger.
type MovieRecord struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Year         *int         `json:"year"`
	PosterURL    *string      `json:"posterUrl"`
	SourceURL    *string      `json:"sourceUrl"`
	Rating       *float64     `json:"rating"`
	ReviewText   *string      `json:"reviewText"`
	IsRewatch    bool         `json:"isRewatch"`
	WatchedAt    *time.Time   `json:"watchedAt"`
	AddedAt      *time.Time   `json:"addedAt,omitempty"`
	OriginSource OriginSource `json:"originSource"`
	Source       string       `json:"source,omitempty"`

	// Order is the 0-based position in a curated fixture file.
	Order *int `json:"order,omitempty"`

	TMDBID            *int         `json:"tmdbId,omitempty"`
	Overview          *string      `json:"overview,omitempty"`
	PosterOriginalURL *string      `json:"posterOriginalUrl,omitempty"`
	BackdropURL       *string      `json:"backdropUrl,omitempty"`
	VoteAverage       *float64     `json:"voteAverage,omitempty"`
	Genres            []string     `json:"genres,omitempty"`
	Runtime           *int         `json:"runtime,omitempty"`
	Cast              []CastMember `json:"cast,omitempty"`
	Crew              []CrewMember `json:"crew,omitempty"`
}

// CastMember is a billed actor from TMDB credits.
type CastMember struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Character  string  `json:"character"`
	ProfileURL *string `json:"profileUrl,omitempty"`
	Order      int     `json:"order"`
}

// CrewMember is a key crew credit (director, writer, producer).
type CrewMember struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Job        string  `json:"job"`
	Department string  `json:"department"`
	ProfileURL *string `json:"profileUrl,omitempty"`
}

// Clone returns a copy that shares no slices or pointers with r.
func (r MovieRecord) Clone() MovieRecord {
	c := r
	c.Year = clonePtr(r.Year)
	c.PosterURL = clonePtr(r.PosterURL)
	c.SourceURL = clonePtr(r.SourceURL)
	c.Rating = clonePtr(r.Rating)
	c.ReviewText = clonePtr(r.ReviewText)
	c.WatchedAt = clonePtr(r.WatchedAt)
	c.AddedAt = clonePtr(r.AddedAt)
	c.Order = clonePtr(r.Order)
	c.TMDBID = clonePtr(r.TMDBID)
	c.Overview = clonePtr(r.Overview)
	c.PosterOriginalURL = clonePtr(r.PosterOriginalURL)
	c.BackdropURL = clonePtr(r.BackdropURL)
	c.VoteAverage = clonePtr(r.VoteAverage)
	c.Runtime = clonePtr(r.Runtime)
	if r.Genres != nil {
		c.Genres = append([]string(nil), r.Genres...)
	}
	if r.Cast != nil {
		c.Cast = make([]CastMember, len(r.Cast))
		for i, m := range r.Cast {
			m.ProfileURL = clonePtr(m.ProfileURL)
			c.Cast[i] = m
		}
	}
	if r.Crew != nil {
		c.Crew = make([]CrewMember, len(r.Crew))
		for i, m := range r.Crew {
			m.ProfileURL = clonePtr(m.ProfileURL)
			c.Crew[i] = m
		}
	}
	return c
}

// YearString returns the year as text, or "" when unknown.
func (r *MovieRecord) YearString() string {
	if r.Year == nil {
		return ""
	}
	return strconv.Itoa(*r.Year)
}

// RecordID builds the stable "<prefix>-<slug>-<year>" identifier used for
// fixture-derived records.
func RecordID(prefix, title string, year *int) string {
	y := "null"
	if year != nil {
		y = strconv.Itoa(*year)
	}
	return prefix + "-" + Slug(title) + "-" + y
}

// Slug lower-cases s and replaces every character outside [a-z0-9] with '-'.
func Slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns *p, or the zero value when p is nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
