// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package aggregator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelfeed/internal/apperrors"
	"github.com/tomtom215/reelfeed/internal/cache"
	"github.com/tomtom215/reelfeed/internal/feed"
	"github.com/tomtom215/reelfeed/internal/merger"
	"github.com/tomtom215/reelfeed/internal/models"
)

// posterLookups bounds concurrent TMDB poster searches.
const posterLookups = 4

// ErrEmptySource marks a fixture that loaded but holds no rows. It always
// travels with apperrors.ErrNotFound.
var ErrEmptySource = errors.New("source is empty")

func emptySource(msg string) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrEmptySource, apperrors.ErrNotFound)
}

// DiaryResult is a page of diary entries.
type DiaryResult struct {
	Entries   []models.MovieRecord `json:"entries"`
	Username  string               `json:"username"`
	Total     int                  `json:"total"`
	Feed      feed.Metadata        `json:"feed"`
	FromCache bool                 `json:"-"`
}

// MovieList is a page of curated movies.
type MovieList struct {
	Movies    []models.MovieRecord `json:"movies"`
	Total     int                  `json:"total"`
	FromCache bool                 `json:"-"`
}

// RandomPick is one movie drawn from the watchlist.
type RandomPick struct {
	Movie     models.MovieRecord `json:"movie"`
	Total     int                `json:"total"`
	Index     int                `json:"index"`
	FromCache bool               `json:"-"`
}

// ListPage is a page of list summaries.
type ListPage struct {
	Lists     []models.ListSummary `json:"lists"`
	Total     int                  `json:"total"`
	FromCache bool                 `json:"-"`
}

// Rotation is the five-star movie at one position of the rotation order.
type Rotation struct {
	Movie    models.MovieRecord `json:"movie"`
	Index    int                `json:"index"`
	Position int                `json:"position"`
	Total    int                `json:"total"`
}

// Diary returns up to limit diary entries of user, newest first. An empty
// user means the configured username; limit <= 0 returns every entry.
func (s *Service) Diary(ctx context.Context, user string, limit int, useCache bool) (*DiaryResult, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		user = s.username
	}
	if user == "" {
		return nil, fmt.Errorf("letterboxd username not configured: %w", apperrors.ErrValidation)
	}

	res, fromCache, err := cached(s, useCache, cache.DiaryKey(user, limit), func() (DiaryResult, error) {
		d, err := s.diary.Diary(ctx, user)
		if err != nil {
			return DiaryResult{}, err
		}
		return DiaryResult{
			Entries:  cleanRecords(head(d.Entries, limit)),
			Username: user,
			Total:    len(d.Entries),
			Feed:     d.Feed,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	res.FromCache = fromCache
	return &res, nil
}

// FiveStar returns up to limit five-star movies in file order.
func (s *Service) FiveStar(_ context.Context, limit int, useCache bool) (*MovieList, error) {
	res, fromCache, err := cached(s, useCache, cache.FiveStarKey(limit), func() (MovieList, error) {
		all, err := s.fixtures.FiveStar()
		if err != nil {
			return MovieList{}, err
		}
		return MovieList{Movies: cleanRecords(head(all, limit)), Total: len(all)}, nil
	})
	if err != nil {
		return nil, err
	}
	if len(res.Movies) == 0 {
		return nil, emptySource("no five-star movies found")
	}
	res.FromCache = fromCache
	return &res, nil
}

// Watchlist returns up to limit watchlist movies with TMDB posters filled
// in where the fixture has none. random shuffles before truncating.
func (s *Service) Watchlist(ctx context.Context, limit int, random bool) (*MovieList, error) {
	all, fromCache, err := s.watchlist(true)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, emptySource("no movies found in watchlist")
	}

	picked := all
	if random {
		picked = make([]models.MovieRecord, len(all))
		for i, j := range s.permutation(len(all)) {
			picked[i] = all[j]
		}
	}
	picked = head(picked, limit)

	return &MovieList{Movies: s.withPosters(ctx, picked), Total: len(all), FromCache: fromCache}, nil
}

// RandomWatchlist draws one watchlist movie. The draw is cached briefly so
// repeated calls agree.
func (s *Service) RandomWatchlist(_ context.Context, useCache bool) (*RandomPick, error) {
	res, fromCache, err := cached(s, useCache, cache.WatchlistRandomKey(), func() (RandomPick, error) {
		all, _, err := s.watchlist(useCache)
		if err != nil {
			return RandomPick{}, err
		}
		if len(all) == 0 {
			return RandomPick{}, emptySource("no movies found in watchlist")
		}
		i := s.intN(len(all))
		return RandomPick{Movie: all[i], Total: len(all), Index: i}, nil
	})
	if err != nil {
		return nil, err
	}
	res.FromCache = fromCache
	return &res, nil
}

// Lists returns up to limit list summaries, newest first. featured keeps
// only lists tagged topstats.
func (s *Service) Lists(_ context.Context, featured bool, limit int, useCache bool) (*ListPage, error) {
	res, fromCache, err := cached(s, useCache, cache.ListsKey(featured, limit), func() (ListPage, error) {
		all, err := s.fixtures.Lists(featured)
		if err != nil {
			return ListPage{}, err
		}
		lists := head(all, limit)
		for i := range lists {
			lists[i].Name = models.CleanTitle(lists[i].Name)
		}
		return ListPage{Lists: lists, Total: len(all)}, nil
	})
	if err != nil {
		return nil, err
	}
	if len(res.Lists) == 0 {
		return nil, emptySource("no lists found")
	}
	res.FromCache = fromCache
	return &res, nil
}

// Rotation returns the five-star movie at position index of the service's
// shuffled rotation order. index wraps around.
func (s *Service) Rotation(ctx context.Context, index int) (*Rotation, error) {
	all, err := s.FiveStar(ctx, 0, true)
	if err != nil {
		return nil, err
	}
	n := len(all.Movies)
	order := s.ShuffleOrder(n)
	pos := ((index % n) + n) % n
	return &Rotation{Movie: all.Movies[order[pos]], Index: index, Position: pos, Total: n}, nil
}

// DedupeResult is the deduplicated diary with duplicate statistics.
type DedupeResult struct {
	Entries []models.MovieRecord `json:"entries"`
	Stats   DuplicateStats       `json:"stats"`
}

// DedupedDiary returns every diary entry of user with rewatches collapsed
// onto their latest viewing.
func (s *Service) DedupedDiary(ctx context.Context, user string, useCache bool) (*DedupeResult, error) {
	d, err := s.Diary(ctx, user, 0, useCache)
	if err != nil {
		return nil, err
	}
	return &DedupeResult{Entries: Dedupe(d.Entries), Stats: ComputeDuplicateStats(d.Entries)}, nil
}

func (s *Service) watchlist(useCache bool) ([]models.MovieRecord, bool, error) {
	return cached(s, useCache, cache.WatchlistKey(), func() ([]models.MovieRecord, error) {
		all, err := s.fixtures.Watchlist()
		if err != nil {
			return nil, err
		}
		return cleanRecords(all), nil
	})
}

// withPosters fills missing posters from TMDB. Lookup failures leave the
// record unchanged.
func (s *Service) withPosters(ctx context.Context, recs []models.MovieRecord) []models.MovieRecord {
	out := make([]models.MovieRecord, len(recs))
	copy(out, recs)
	if s.posters == nil || !s.posters.Configured() {
		return out
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(posterLookups)
	for i := range out {
		if out[i].PosterURL != nil {
			continue
		}
		g.Go(func() error {
			match, err := s.posters.FindMovie(gctx, out[i].Title, out[i].Year)
			if err != nil {
				if !errors.Is(err, apperrors.ErrNotFound) {
					s.logger.Debug().Err(err).Str("title", out[i].Title).Msg("Watchlist poster lookup failed")
				}
				return nil
			}
			merged := merger.Merge(out[i], match.Record())
			merged.OriginSource = models.OriginSecondaryEnriched
			out[i] = merged
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func head[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func cleanRecords(recs []models.MovieRecord) []models.MovieRecord {
	out := make([]models.MovieRecord, len(recs))
	for i := range recs {
		out[i] = recs[i].Clone()
		out[i].Title = models.CleanTitle(out[i].Title)
	}
	return out
}
