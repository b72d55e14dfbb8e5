// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package tmdb

import (
	"strconv"
	"strings"

	"github.com/tomtom215/reelfeed/internal/models"
)

// Image sizes requested from the TMDB image CDN.
const (
	SizePoster   = "w500"
	SizeBackdrop = "w1280"
	SizeProfile  = "w185"
	SizeOriginal = "original"
)

const (
	maxCast       = 10
	maxImages     = 5
	maxVideos     = 3
	youtubeWatch  = "https://www.youtube.com/watch?v="
	detailsSource = "tmdb"
)

var keyCrewJobs = map[string]bool{
	"Director":   true,
	"Producer":   true,
	"Writer":     true,
	"Screenplay": true,
	"Story":      true,
}

// ImageURL expands a TMDB file path into a CDN URL at size. A nil or empty
// path yields nil.
func (c *Client) ImageURL(size string, path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	u := c.imageURL + "/" + size + *path
	return &u
}

func (c *Client) formatSearch(raw *apiSearch) *SearchPage {
	page := &SearchPage{
		Results:      make([]SearchResult, 0, len(raw.Results)),
		Page:         raw.Page,
		TotalPages:   raw.TotalPages,
		TotalResults: raw.TotalResults,
	}
	for i := range raw.Results {
		m := &raw.Results[i]
		genreIDs := m.GenreIDs
		if genreIDs == nil {
			genreIDs = []int{}
		}
		page.Results = append(page.Results, SearchResult{
			ID:               m.ID,
			Title:            m.Title,
			Year:             yearOf(m.ReleaseDate),
			Poster:           c.ImageURL(SizePoster, m.PosterPath),
			PosterOriginal:   c.ImageURL(SizeOriginal, m.PosterPath),
			Overview:         m.Overview,
			VoteAverage:      m.VoteAverage,
			VoteCount:        m.VoteCount,
			Popularity:       m.Popularity,
			Adult:            m.Adult,
			OriginalLanguage: m.OriginalLanguage,
			OriginalTitle:    m.OriginalTitle,
			ReleaseDate:      m.ReleaseDate,
			BackdropPath:     c.ImageURL(SizeBackdrop, m.BackdropPath),
			GenreIDs:         genreIDs,
			TMDBID:           m.ID,
		})
	}
	return page
}

func (c *Client) formatDetails(raw *apiDetails) *MovieDetails {
	d := &MovieDetails{
		ID:               raw.ID,
		Title:            raw.Title,
		Year:             yearOf(raw.ReleaseDate),
		Poster:           c.ImageURL(SizePoster, raw.PosterPath),
		PosterOriginal:   c.ImageURL(SizeOriginal, raw.PosterPath),
		Backdrop:         c.ImageURL(SizeBackdrop, raw.BackdropPath),
		BackdropOriginal: c.ImageURL(SizeOriginal, raw.BackdropPath),
		Overview:         raw.Overview,
		Tagline:          raw.Tagline,
		Runtime:          raw.Runtime,
		ReleaseDate:      raw.ReleaseDate,
		VoteAverage:      raw.VoteAverage,
		VoteCount:        raw.VoteCount,
		Popularity:       raw.Popularity,
		Budget:           raw.Budget,
		Revenue:          raw.Revenue,
		Status:           raw.Status,
		OriginalLanguage: raw.OriginalLanguage,
		OriginalTitle:    raw.OriginalTitle,
		Adult:            raw.Adult,
		Homepage:         raw.Homepage,
		IMDBID:           raw.IMDBID,
		Genres:           raw.Genres,
		TMDBID:           raw.ID,
		Source:           detailsSource,
	}
	if d.Genres == nil {
		d.Genres = []Genre{}
	}

	d.ProductionCompanies = make([]Company, 0, len(raw.ProductionCompanies))
	for _, pc := range raw.ProductionCompanies {
		d.ProductionCompanies = append(d.ProductionCompanies, Company(pc))
	}
	d.ProductionCountries = make([]Country, 0, len(raw.ProductionCountries))
	for _, pc := range raw.ProductionCountries {
		d.ProductionCountries = append(d.ProductionCountries, Country(pc))
	}
	d.SpokenLanguages = make([]Language, 0, len(raw.SpokenLanguages))
	for _, l := range raw.SpokenLanguages {
		d.SpokenLanguages = append(d.SpokenLanguages, Language(l))
	}

	if raw.Credits != nil {
		for i, m := range raw.Credits.Cast {
			if i == maxCast {
				break
			}
			d.Cast = append(d.Cast, Person{
				ID:          m.ID,
				Name:        m.Name,
				Character:   m.Character,
				ProfilePath: c.ImageURL(SizeProfile, m.ProfilePath),
				Order:       m.Order,
			})
		}
		for _, m := range raw.Credits.Crew {
			if !keyCrewJobs[m.Job] {
				continue
			}
			d.Crew = append(d.Crew, Person{
				ID:          m.ID,
				Name:        m.Name,
				Job:         m.Job,
				Department:  m.Department,
				ProfilePath: c.ImageURL(SizeProfile, m.ProfilePath),
			})
		}
	}

	if raw.Images != nil {
		d.Images = &Images{
			Backdrops: c.images(raw.Images.Backdrops, SizeBackdrop),
			Posters:   c.images(raw.Images.Posters, SizePoster),
		}
	}

	if raw.Videos != nil {
		for _, v := range raw.Videos.Results {
			if len(d.Videos) == maxVideos {
				break
			}
			if v.Site != "YouTube" || (v.Type != "Trailer" && v.Type != "Teaser") {
				continue
			}
			d.Videos = append(d.Videos, Video{
				ID:          v.ID,
				Key:         v.Key,
				Name:        v.Name,
				Site:        v.Site,
				Type:        v.Type,
				Official:    v.Official,
				PublishedAt: v.PublishedAt,
				YouTubeURL:  youtubeWatch + v.Key,
			})
		}
	}
	return d
}

func (c *Client) images(in []apiImage, size string) []Image {
	out := make([]Image, 0, min(len(in), maxImages))
	for i := range in {
		if i == maxImages {
			break
		}
		img := in[i]
		path := img.FilePath
		out = append(out, Image{
			FilePath:    models.Deref(c.ImageURL(size, &path)),
			Width:       img.Width,
			Height:      img.Height,
			AspectRatio: img.AspectRatio,
			VoteAverage: img.VoteAverage,
		})
	}
	return out
}

// yearOf reads the year from a YYYY-MM-DD release date.
func yearOf(releaseDate string) *int {
	if len(releaseDate) < 4 {
		return nil
	}
	y, err := strconv.Atoi(releaseDate[:4])
	if err != nil || y <= 0 {
		return nil
	}
	return &y
}

// Record converts a search result into a MovieRecord.
func (r *SearchResult) Record() models.MovieRecord {
	rec := models.MovieRecord{
		ID:                "tmdb-" + strconv.Itoa(r.ID),
		Title:             r.Title,
		Year:              r.Year,
		PosterURL:         r.Poster,
		PosterOriginalURL: r.PosterOriginal,
		BackdropURL:       r.BackdropPath,
		TMDBID:            models.Ptr(r.ID),
		VoteAverage:       models.Ptr(r.VoteAverage),
		Source:            models.SourceTMDB,
	}
	if strings.TrimSpace(r.Overview) != "" {
		rec.Overview = models.Ptr(r.Overview)
	}
	return rec.Clone()
}

// Record converts movie details into a MovieRecord, including genres and
// credits.
func (d *MovieDetails) Record() models.MovieRecord {
	rec := models.MovieRecord{
		ID:                "tmdb-" + strconv.Itoa(d.ID),
		Title:             d.Title,
		Year:              d.Year,
		PosterURL:         d.Poster,
		PosterOriginalURL: d.PosterOriginal,
		BackdropURL:       d.Backdrop,
		TMDBID:            models.Ptr(d.ID),
		VoteAverage:       models.Ptr(d.VoteAverage),
		Runtime:           d.Runtime,
		Source:            models.SourceTMDB,
	}
	if strings.TrimSpace(d.Overview) != "" {
		rec.Overview = models.Ptr(d.Overview)
	}
	for _, g := range d.Genres {
		rec.Genres = append(rec.Genres, g.Name)
	}
	for _, p := range d.Cast {
		rec.Cast = append(rec.Cast, models.CastMember{
			ID:         p.ID,
			Name:       p.Name,
			Character:  p.Character,
			ProfileURL: p.ProfilePath,
			Order:      p.Order,
		})
	}
	for _, p := range d.Crew {
		rec.Crew = append(rec.Crew, models.CrewMember{
			ID:         p.ID,
			Name:       p.Name,
			Job:        p.Job,
			Department: p.Department,
			ProfileURL: p.ProfilePath,
		})
	}
	return rec.Clone()
}
