// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/reelfeed/internal/apperrors"
	"github.com/tomtom215/reelfeed/internal/cache"
	"github.com/tomtom215/reelfeed/internal/feed"
	"github.com/tomtom215/reelfeed/internal/letterboxd"
	"github.com/tomtom215/reelfeed/internal/merger"
	"github.com/tomtom215/reelfeed/internal/models"
	"github.com/tomtom215/reelfeed/internal/tmdb"
)

var day0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func at(days int) *time.Time {
	t := day0.AddDate(0, 0, days)
	return &t
}

func movie(title string, year int, watched *time.Time) models.MovieRecord {
	return models.MovieRecord{
		ID:           models.RecordID("test", title, &year),
		Title:        title,
		Year:         models.Ptr(year),
		WatchedAt:    watched,
		OriginSource: models.OriginPrimary,
	}
}

type fakeDiary struct {
	calls   atomic.Int32
	entries []models.MovieRecord
	err     error
}

func (f *fakeDiary) Diary(_ context.Context, user string) (*letterboxd.Diary, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &letterboxd.Diary{Entries: f.entries, Feed: feed.Metadata{Title: "Letterboxd - " + user}}, nil
}

func (f *fakeDiary) BreakerState() string { return "closed" }

type fakeFixtures struct {
	calls        atomic.Int32
	fiveStar     []models.MovieRecord
	watchlist    []models.MovieRecord
	lists        []models.ListSummary
	watchlistErr error
}

func (f *fakeFixtures) FiveStar() ([]models.MovieRecord, error) {
	f.calls.Add(1)
	return append([]models.MovieRecord(nil), f.fiveStar...), nil
}

func (f *fakeFixtures) Watchlist() ([]models.MovieRecord, error) {
	f.calls.Add(1)
	if f.watchlistErr != nil {
		return nil, f.watchlistErr
	}
	return append([]models.MovieRecord(nil), f.watchlist...), nil
}

func (f *fakeFixtures) Lists(featured bool) ([]models.ListSummary, error) {
	f.calls.Add(1)
	var out []models.ListSummary
	for _, l := range f.lists {
		if !featured || l.HasTag(models.FeaturedListTag) {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeEnhancer struct {
	mu     sync.Mutex
	seen   []string
	resets int
}

func (f *fakeEnhancer) Enhance(_ context.Context, rec models.MovieRecord, _ bool) merger.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, rec.Title)
	rec.OriginSource = models.OriginSecondaryEnriched
	return merger.Result{Record: rec, Enhanced: true, Level: merger.LevelFull}
}

func (f *fakeEnhancer) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
}

func (f *fakeEnhancer) Stats() merger.Stats {
	return merger.Stats{MaxFallbackAttempts: merger.MaxFallbackAttempts}
}

type fakePosters struct {
	calls atomic.Int32
}

func (f *fakePosters) Configured() bool { return true }

func (f *fakePosters) FindMovie(_ context.Context, title string, year *int) (*tmdb.SearchResult, error) {
	f.calls.Add(1)
	if title == "Obscure Short" {
		return nil, apperrors.ErrNotFound
	}
	return &tmdb.SearchResult{
		ID:     42,
		Title:  title,
		Year:   year,
		Poster: models.Ptr("https://image.tmdb.org/t/p/w500/" + models.Slug(title) + ".jpg"),
		TMDBID: 42,
	}, nil
}

func newFixtures() *fakeFixtures {
	var five []models.MovieRecord
	for i := range 20 {
		m := movie(fmt.Sprintf("Five Star %02d", i), 1990+i, nil)
		m.Order = models.Ptr(i)
		five = append(five, m)
	}
	return &fakeFixtures{
		fiveStar: five,
		watchlist: []models.MovieRecord{
			movie("Alien,", 1979, nil),
			movie("Stalker", 1979, nil),
			movie("Obscure Short", 2001, nil),
		},
		lists: []models.ListSummary{
			{ID: "1", Name: "Top Ten Thrillers, ", Tags: []string{"topstats"}, LastUpdatedAt: at(0)},
			{ID: "2", Name: "Scratchpad", LastUpdatedAt: at(-1)},
			{ID: "3", Name: "Noir", LastUpdatedAt: at(-2)},
			{ID: "4", Name: "Westerns", LastUpdatedAt: at(-3)},
		},
	}
}

func newDiary() *fakeDiary {
	return &fakeDiary{entries: []models.MovieRecord{
		movie("Heat", 1995, at(0)),
		movie("Alien", 1979, at(-1)),
		movie("Heat", 1995, at(-2)),
		movie("Stalker", 1979, at(-3)),
		movie("Paris, Texas", 1984, at(-4)),
		movie("Ran", 1985, at(-5)),
	}}
}

func newService(t *testing.T, diary DiarySource, fx FixtureSource, opts ...Option) *Service {
	t.Helper()
	base := []Option{
		WithCache(cache.New(cache.NewMemoryStore(100))),
		WithRandom(func(n int) int { return n - 1 }),
	}
	return New("jdoe", diary, fx, append(base, opts...)...)
}

func TestGetAllMovieData(t *testing.T) {
	t.Parallel()

	enh := &fakeEnhancer{}
	s := newService(t, newDiary(), newFixtures(), WithEnhancer(enh))

	opts := DefaultOptions()
	opts.EnhanceWithTMDB = true
	res := s.GetAllMovieData(context.Background(), opts)

	if !res.Diary.Success || len(res.Diary.Data) != DiaryBranchLimit {
		t.Fatalf("Diary = %+v", res.Diary)
	}
	if !res.Diary.Enhanced || len(enh.seen) != EnhanceLimit {
		t.Errorf("enhanced %d entries, want %d", len(enh.seen), EnhanceLimit)
	}
	if res.Diary.Data[3].OriginSource != models.OriginPrimary {
		t.Error("entries past the enhance limit should stay primary")
	}
	if got := res.Diary.Metadata["totalEntries"]; got != 6 {
		t.Errorf("totalEntries = %v, want 6", got)
	}

	if !res.FiveStarMovies.Success || len(res.FiveStarMovies.Data) != FiveStarBranchLimit {
		t.Errorf("FiveStarMovies = %d movies", len(res.FiveStarMovies.Data))
	}
	if !res.RandomMovie.Success || res.RandomMovie.Data.Title != "Obscure Short" {
		t.Errorf("RandomMovie = %+v", res.RandomMovie)
	}
	if !res.Lists.Success || len(res.Lists.Data) != ListsBranchLimit {
		t.Errorf("Lists = %+v", res.Lists)
	}
	if res.Lists.Data[0].Name != "Top Ten Thrillers" {
		t.Errorf("list name = %q, want cleaned", res.Lists.Data[0].Name)
	}
	if res.FromCache {
		t.Error("first call should not be served from cache")
	}
	if res.FetchedAt.IsZero() {
		t.Error("FetchedAt not set")
	}
}

func TestGetAllMovieDataUsesCache(t *testing.T) {
	t.Parallel()

	diary, fx := newDiary(), newFixtures()
	s := newService(t, diary, fx)

	first := s.GetAllMovieData(context.Background(), DefaultOptions())
	second := s.GetAllMovieData(context.Background(), DefaultOptions())

	if !second.FromCache {
		t.Errorf("second call FromCache = false: %+v", second)
	}
	if diary.calls.Load() != 1 {
		t.Errorf("diary fetched %d times, want 1", diary.calls.Load())
	}
	if first.RandomMovie.Data.Title != second.RandomMovie.Data.Title {
		t.Error("cached random pick changed")
	}

	noCache := DefaultOptions()
	noCache.UseCache = false
	third := s.GetAllMovieData(context.Background(), noCache)
	if third.FromCache || diary.calls.Load() != 2 {
		t.Errorf("UseCache=false FromCache = %v, diary calls = %d", third.FromCache, diary.calls.Load())
	}
}

func TestBranchIsolation(t *testing.T) {
	t.Parallel()

	fx := newFixtures()
	fx.watchlistErr = fmt.Errorf("read watchlist.csv: %w", apperrors.ErrNotFound)
	diary := &fakeDiary{err: fmt.Errorf("fetch: %w", apperrors.ErrUpstreamTimeout)}
	s := newService(t, diary, fx)

	res := s.GetAllMovieData(context.Background(), DefaultOptions())

	if res.RandomMovie.Success || res.RandomMovie.ErrorKind != "NotFound" {
		t.Errorf("RandomMovie = %+v, want NotFound failure", res.RandomMovie)
	}
	if res.Diary.Success || res.Diary.ErrorKind != "UpstreamTimeout" {
		t.Errorf("Diary = %+v, want UpstreamTimeout failure", res.Diary)
	}
	if !res.FiveStarMovies.Success || !res.Lists.Success {
		t.Error("healthy branches should still succeed")
	}
}

func TestEmptyFixtureBranchIsFlagged(t *testing.T) {
	t.Parallel()

	missing := newFixtures()
	missing.watchlistErr = fmt.Errorf("read watchlist.csv: %w", apperrors.ErrNotFound)
	empty := newFixtures()
	empty.watchlist = nil

	gone := newService(t, newDiary(), missing).GetAllMovieData(context.Background(), DefaultOptions()).RandomMovie
	blank := newService(t, newDiary(), empty).GetAllMovieData(context.Background(), DefaultOptions()).RandomMovie

	if gone.ErrorKind != "NotFound" || blank.ErrorKind != "NotFound" {
		t.Fatalf("kinds = %q / %q, want NotFound for both", gone.ErrorKind, blank.ErrorKind)
	}
	if gone.Metadata["empty"] == true {
		t.Errorf("missing file flagged empty: %+v", gone.Metadata)
	}
	if blank.Metadata["empty"] != true {
		t.Errorf("empty watchlist metadata = %+v, want empty=true", blank.Metadata)
	}
	if gone.Error == blank.Error {
		t.Errorf("missing and empty share message %q", gone.Error)
	}
}

func TestDiary(t *testing.T) {
	t.Parallel()

	s := newService(t, newDiary(), newFixtures())

	d, err := s.Diary(context.Background(), "", 2, true)
	if err != nil {
		t.Fatalf("Diary() error = %v", err)
	}
	if d.Username != "jdoe" || d.Total != 6 || len(d.Entries) != 2 {
		t.Errorf("Diary() = %+v", d)
	}
	if d.Feed.Title != "Letterboxd - jdoe" {
		t.Errorf("Feed.Title = %q", d.Feed.Title)
	}

	noUser := New("", newDiary(), newFixtures())
	if _, err := noUser.Diary(context.Background(), " ", 5, false); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("Diary(no user) error = %v, want ErrValidation", err)
	}
}

func TestWatchlist(t *testing.T) {
	t.Parallel()

	posters := &fakePosters{}
	s := newService(t, newDiary(), newFixtures(), WithPosterSource(posters))

	l, err := s.Watchlist(context.Background(), 8, false)
	if err != nil {
		t.Fatalf("Watchlist() error = %v", err)
	}
	if l.Total != 3 || len(l.Movies) != 3 {
		t.Fatalf("Watchlist() = %+v", l)
	}
	if l.Movies[0].Title != "Alien" {
		t.Errorf("title = %q, want trailing comma stripped", l.Movies[0].Title)
	}
	if got := models.Deref(l.Movies[0].PosterURL); got != "https://image.tmdb.org/t/p/w500/alien.jpg" {
		t.Errorf("PosterURL = %q", got)
	}
	if l.Movies[2].PosterURL != nil {
		t.Error("unmatched movie should keep a nil poster")
	}
	if posters.calls.Load() != 3 {
		t.Errorf("poster lookups = %d, want 3", posters.calls.Load())
	}

	limited, err := s.Watchlist(context.Background(), 1, true)
	if err != nil {
		t.Fatalf("Watchlist(random) error = %v", err)
	}
	if len(limited.Movies) != 1 {
		t.Errorf("len = %d, want 1", len(limited.Movies))
	}
}

func TestEmptyFixturesAreNotFound(t *testing.T) {
	t.Parallel()

	s := newService(t, newDiary(), &fakeFixtures{})

	if _, err := s.FiveStar(context.Background(), 12, true); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("FiveStar() error = %v, want ErrNotFound", err)
	}
	if _, err := s.Watchlist(context.Background(), 8, false); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Watchlist() error = %v, want ErrNotFound", err)
	}
	if _, err := s.RandomWatchlist(context.Background(), true); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("RandomWatchlist() error = %v, want ErrNotFound", err)
	}
	if _, err := s.Lists(context.Background(), true, 6, true); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Lists() error = %v, want ErrNotFound", err)
	}
	if _, err := s.FiveStar(context.Background(), 12, true); !errors.Is(err, ErrEmptySource) {
		t.Errorf("FiveStar() error = %v, want ErrEmptySource", err)
	}
}

func TestListsFeatured(t *testing.T) {
	t.Parallel()

	s := newService(t, newDiary(), newFixtures())
	l, err := s.Lists(context.Background(), true, 6, true)
	if err != nil {
		t.Fatalf("Lists() error = %v", err)
	}
	if l.Total != 1 || l.Lists[0].ID != "1" {
		t.Errorf("Lists(featured) = %+v", l)
	}
}

func TestShuffleOrderAndReset(t *testing.T) {
	t.Parallel()

	var draws atomic.Int32
	enh := &fakeEnhancer{}
	s := newService(t, newDiary(), newFixtures(), WithEnhancer(enh), WithRandom(func(n int) int {
		draws.Add(1)
		return 0
	}))

	first := s.ShuffleOrder(5)
	second := s.ShuffleOrder(5)
	if fmt.Sprint(first) != fmt.Sprint(second) {
		t.Errorf("order changed between calls: %v vs %v", first, second)
	}
	seen := map[int]bool{}
	for _, v := range first {
		seen[v] = true
	}
	if len(seen) != 5 {
		t.Errorf("ShuffleOrder(5) = %v, not a permutation", first)
	}
	first[0] = 99
	if s.ShuffleOrder(5)[0] == 99 {
		t.Error("ShuffleOrder() exposes internal state")
	}

	before := draws.Load()
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	s.ShuffleOrder(5)
	if draws.Load() == before {
		t.Error("Reset() did not force a reshuffle")
	}
	if enh.resets != 1 {
		t.Errorf("enhancer resets = %d, want 1", enh.resets)
	}
	if got := s.ShuffleOrder(0); len(got) != 0 {
		t.Errorf("ShuffleOrder(0) = %v", got)
	}
}

func TestRotation(t *testing.T) {
	t.Parallel()

	s := newService(t, newDiary(), newFixtures())
	order := s.ShuffleOrder(20)

	r, err := s.Rotation(context.Background(), 23)
	if err != nil {
		t.Fatalf("Rotation() error = %v", err)
	}
	if r.Position != 3 || r.Total != 20 {
		t.Errorf("Rotation() = %+v", r)
	}
	if want := fmt.Sprintf("Five Star %02d", order[3]); r.Movie.Title != want {
		t.Errorf("Movie = %q, want %q", r.Movie.Title, want)
	}

	neg, err := s.Rotation(context.Background(), -1)
	if err != nil || neg.Position != 19 {
		t.Errorf("Rotation(-1) = %+v, %v", neg, err)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	s := newService(t, newDiary(), newFixtures(), WithEnhancer(&fakeEnhancer{}))
	h := s.Health(context.Background())
	if h.Status != "healthy" || !h.RandomPick || h.Cache == nil || h.Merger == nil {
		t.Errorf("Health() = %+v", h)
	}
	if h.Upstreams["letterboxd"] != "closed" {
		t.Errorf("Upstreams = %v", h.Upstreams)
	}

	fx := newFixtures()
	fx.watchlistErr = apperrors.ErrNotFound
	degraded := newService(t, newDiary(), fx).Health(context.Background())
	if degraded.Status != "degraded" || degraded.RandomPickError == "" {
		t.Errorf("Health() = %+v, want degraded", degraded)
	}
}

func TestDedupedDiary(t *testing.T) {
	t.Parallel()

	s := newService(t, newDiary(), newFixtures())
	res, err := s.DedupedDiary(context.Background(), "", true)
	if err != nil {
		t.Fatalf("DedupedDiary() error = %v", err)
	}
	if len(res.Entries) != 5 || res.Stats.DuplicateEntries != 1 {
		t.Errorf("DedupedDiary() = %d entries, stats %+v", len(res.Entries), res.Stats)
	}
}
