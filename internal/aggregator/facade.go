// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package aggregator

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelfeed/internal/apperrors"
	"github.com/tomtom215/reelfeed/internal/metrics"
	"github.com/tomtom215/reelfeed/internal/models"
)

// Branch sizes of the combined result.
const (
	DiaryBranchLimit    = 5
	FiveStarBranchLimit = 15
	ListsBranchLimit    = 3
	EnhanceLimit        = 3
)

// Branch names used in metrics and logs.
const (
	BranchDiary    = "diary"
	BranchFiveStar = "five_star"
	BranchRandom   = "random"
	BranchLists    = "lists"
)

// Options control one GetAllMovieData call.
type Options struct {
	UseCache          bool
	EnhanceWithTMDB   bool
	ClearExpiredCache bool
}

// DefaultOptions uses the cache, skips enhancement and sweeps expired
// entries first.
func DefaultOptions() Options {
	return Options{UseCache: true, EnhanceWithTMDB: false, ClearExpiredCache: true}
}

// GetAllMovieData fetches the diary, five-star, random-pick and lists
// branches concurrently. It never fails: each branch reports its own
// outcome.
func (s *Service) GetAllMovieData(ctx context.Context, opts Options) models.CombinedResult {
	start := s.now()
	if opts.ClearExpiredCache && s.cache != nil {
		if n := s.cache.ClearExpired(); n > 0 {
			s.logger.Debug().Int("removed", n).Msg("Cleared expired cache entries")
		}
	}

	var res models.CombinedResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.Diary = s.diaryBranch(gctx, opts)
		return nil
	})
	g.Go(func() error {
		res.FiveStarMovies = s.fiveStarBranch(gctx, opts)
		return nil
	})
	g.Go(func() error {
		res.RandomMovie = s.randomBranch(gctx, opts)
		return nil
	})
	g.Go(func() error {
		res.Lists = s.listsBranch(gctx, opts)
		return nil
	})
	_ = g.Wait()

	res.FetchedAt = s.now().UTC()
	res.FromCache = res.Diary.FromCache && res.FiveStarMovies.FromCache &&
		res.RandomMovie.FromCache && res.Lists.FromCache
	metrics.AggregationDuration.Observe(s.now().Sub(start).Seconds())

	s.logger.Info().
		Bool("diary", res.Diary.Success).
		Bool("five_star", res.FiveStarMovies.Success).
		Bool("random", res.RandomMovie.Success).
		Bool("lists", res.Lists.Success).
		Bool("from_cache", res.FromCache).
		Msg("Aggregated movie data")
	return res
}

func (s *Service) diaryBranch(ctx context.Context, opts Options) models.BranchResult[[]models.MovieRecord] {
	d, err := s.Diary(ctx, "", DiaryBranchLimit, opts.UseCache)
	if err != nil {
		return failed[[]models.MovieRecord](s, BranchDiary, err)
	}

	br := models.BranchResult[[]models.MovieRecord]{
		Success:   true,
		Data:      d.Entries,
		FromCache: d.FromCache,
		Metadata: map[string]any{
			"username":        d.Username,
			"totalEntries":    d.Total,
			"returnedEntries": len(d.Entries),
		},
	}
	if opts.EnhanceWithTMDB && s.enhancer != nil {
		for i := range min(EnhanceLimit, len(br.Data)) {
			r := s.enhancer.Enhance(ctx, br.Data[i], false)
			br.Data[i] = r.Record
			br.Enhanced = br.Enhanced || r.Enhanced
		}
	}
	metrics.RecordBranch(BranchDiary, true, d.FromCache)
	return br
}

func (s *Service) fiveStarBranch(ctx context.Context, opts Options) models.BranchResult[[]models.MovieRecord] {
	l, err := s.FiveStar(ctx, FiveStarBranchLimit, opts.UseCache)
	if err != nil {
		return failed[[]models.MovieRecord](s, BranchFiveStar, err)
	}
	metrics.RecordBranch(BranchFiveStar, true, l.FromCache)
	return models.BranchResult[[]models.MovieRecord]{
		Success:   true,
		Data:      l.Movies,
		FromCache: l.FromCache,
		Metadata: map[string]any{
			"totalMovies":    l.Total,
			"returnedMovies": len(l.Movies),
		},
	}
}

func (s *Service) randomBranch(ctx context.Context, opts Options) models.BranchResult[*models.MovieRecord] {
	p, err := s.RandomWatchlist(ctx, opts.UseCache)
	if err != nil {
		return failed[*models.MovieRecord](s, BranchRandom, err)
	}
	metrics.RecordBranch(BranchRandom, true, p.FromCache)
	return models.BranchResult[*models.MovieRecord]{
		Success:   true,
		Data:      &p.Movie,
		FromCache: p.FromCache,
		Metadata: map[string]any{
			"totalMoviesInWatchlist": p.Total,
			"selectedIndex":          p.Index,
		},
	}
}

func (s *Service) listsBranch(ctx context.Context, opts Options) models.BranchResult[[]models.ListSummary] {
	l, err := s.Lists(ctx, false, ListsBranchLimit, opts.UseCache)
	if err != nil {
		return failed[[]models.ListSummary](s, BranchLists, err)
	}
	metrics.RecordBranch(BranchLists, true, l.FromCache)
	return models.BranchResult[[]models.ListSummary]{
		Success:   true,
		Data:      l.Lists,
		FromCache: l.FromCache,
		Metadata: map[string]any{
			"totalLists":    l.Total,
			"returnedLists": len(l.Lists),
		},
	}
}

// failed reports a branch error. An empty source keeps the NotFound kind and
// is flagged with metadata empty=true.
func failed[T any](s *Service, branch string, err error) models.BranchResult[T] {
	s.logger.Warn().Err(err).Str("branch", branch).Msg("Branch failed")
	metrics.RecordBranch(branch, false, false)
	br := models.BranchResult[T]{
		Success:   false,
		Error:     err.Error(),
		ErrorKind: apperrors.Kind(err),
	}
	if errors.Is(err, ErrEmptySource) {
		br.Metadata = map[string]any{"empty": true}
	}
	return br
}
