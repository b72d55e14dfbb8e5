// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package fixtures

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelfeed/internal/apperrors"
	"github.com/tomtom215/reelfeed/internal/models"
)

// File names inside the data directory.
const (
	FiveStarFile  = "five-star-movies.csv"
	WatchlistFile = "watchlist.csv"
	ListsFile     = "lists-metadata.json"
)

// Loader reads fixture files from one directory. Files are read on every
// call; callers cache results.
type Loader struct {
	dir string
}

// NewLoader returns a Loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Dir returns the data directory.
func (l *Loader) Dir() string {
	return l.dir
}

// FiveStar returns the five-star films in file order.
func (l *Loader) FiveStar() ([]models.MovieRecord, error) {
	data, err := l.read(FiveStarFile)
	if err != nil {
		return nil, err
	}
	rows, err := ParseSimple(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", FiveStarFile, err)
	}
	return convert(rows, FiveStarRecord), nil
}

// Watchlist returns every watchlist film in file order.
func (l *Loader) Watchlist() ([]models.MovieRecord, error) {
	data, err := l.read(WatchlistFile)
	if err != nil {
		return nil, err
	}
	rows, err := ParseQuoted(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", WatchlistFile, err)
	}
	return convert(rows, WatchlistRecord), nil
}

// listEntry is the on-disk shape of one curated list.
type listEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	Date        string   `json:"date"`
}

// Lists returns curated lists sorted by date, newest first. Lists without a
// date sort last. With featured set only lists tagged "topstats" remain.
func (l *Loader) Lists(featured bool) ([]models.ListSummary, error) {
	data, err := l.read(ListsFile)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.ListSummary{}, nil
	}

	var entries []listEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ListsFile, errors.Join(apperrors.ErrValidation, err))
	}

	out := make([]models.ListSummary, 0, len(entries))
	for _, e := range entries {
		name := models.CleanTitle(strings.TrimSpace(e.Name))
		if name == "" {
			continue
		}
		ls := models.ListSummary{
			ID:            e.ID,
			Name:          name,
			Description:   e.Description,
			ExternalURL:   e.URL,
			Tags:          models.NormalizeTags(e.Tags),
			LastUpdatedAt: parseDate(e.Date),
			Source:        models.SourceListsJSON,
		}
		if ls.ID == "" {
			ls.ID = models.Slug(name)
		}
		if featured && !ls.HasTag(models.FeaturedListTag) {
			continue
		}
		out = append(out, ls)
	}

	slices.SortStableFunc(out, func(a, b models.ListSummary) int {
		return compareDesc(a.LastUpdatedAt, b.LastUpdatedAt)
	})
	return out, nil
}

// compareDesc orders newer times first and nil last.
func compareDesc(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(b.UnixNano(), a.UnixNano())
}

func (l *Loader) read(name string) ([]byte, error) {
	f, err := os.Open(filepath.Join(l.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func convert(rows []Row, fn func(Row) (models.MovieRecord, bool)) []models.MovieRecord {
	out := make([]models.MovieRecord, 0, len(rows))
	for _, r := range rows {
		if rec, ok := fn(r); ok {
			out = append(out, rec)
		}
	}
	return out
}
