// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package feed

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/reelfeed/internal/apperrors"
	"github.com/tomtom215/reelfeed/internal/models"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return string(b)
}

func parsers(t *testing.T) map[string]Parser {
	t.Helper()
	out := map[string]Parser{}
	for _, kind := range []string{KindRegex, KindGofeed} {
		p, err := New(kind)
		if err != nil {
			t.Fatalf("New(%q): %v", kind, err)
		}
		out[kind] = p
	}
	return out
}

func TestNew(t *testing.T) {
	t.Parallel()

	if p, err := New(""); err != nil {
		t.Fatalf("New(\"\") error = %v", err)
	} else if _, ok := p.(*RegexParser); !ok {
		t.Errorf("New(\"\") = %T, want *RegexParser", p)
	}
	if _, err := New("xml"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("New(\"xml\") error = %v, want ErrValidation", err)
	}
}

func TestParseDiary(t *testing.T) {
	t.Parallel()

	raw := readFixture(t, "diary.xml")
	for kind, p := range parsers(t) {
		t.Run(kind, func(t *testing.T) {
			t.Parallel()

			records, err := p.ParseDiary(raw)
			if err != nil {
				t.Fatalf("ParseDiary() error = %v", err)
			}
			if len(records) != 4 {
				t.Fatalf("got %d records, want 4 (untitled item dropped)", len(records))
			}

			heat := records[0]
			if heat.ID != "heat" || heat.Title != "Heat" || models.Deref(heat.Year) != 1995 {
				t.Errorf("heat = %q %q %v", heat.ID, heat.Title, heat.Year)
			}
			if models.Deref(heat.Rating) != 4.5 {
				t.Errorf("heat rating = %v, want 4.5", heat.Rating)
			}
			if models.Deref(heat.PosterURL) != "https://a.ltrbxd.com/resized/film-poster/heat.jpg" {
				t.Errorf("heat poster = %v", heat.PosterURL)
			}
			if models.Deref(heat.ReviewText) != "Mann at his best. The bank shootout still rattles." {
				t.Errorf("heat review = %q", models.Deref(heat.ReviewText))
			}
			want := time.Date(2024, 6, 1, 9, 15, 22, 0, time.FixedZone("", 12*3600))
			if heat.WatchedAt == nil || !heat.WatchedAt.Equal(want) {
				t.Errorf("heat watchedAt = %v, want %v", heat.WatchedAt, want)
			}
			if heat.OriginSource != models.OriginPrimary || heat.Source != models.SourceDiaryRSS {
				t.Errorf("heat origin = %q source = %q", heat.OriginSource, heat.Source)
			}
			if heat.IsRewatch {
				t.Error("heat should not be a rewatch")
			}

			br := records[1]
			if br.Title != "Blade Runner 2049" || models.Deref(br.Year) != 2017 || models.Deref(br.Rating) != 5 {
				t.Errorf("blade runner = %q %v %v", br.Title, br.Year, br.Rating)
			}
			if br.ReviewText != nil {
				t.Errorf("boilerplate review kept: %q", *br.ReviewText)
			}

			paris := records[2]
			if paris.Title != "Paris, Texas" || models.Deref(paris.Year) != 1984 {
				t.Errorf("paris = %q %v", paris.Title, paris.Year)
			}
			if paris.Rating != nil {
				t.Errorf("paris rating = %v, want nil", *paris.Rating)
			}
			if paris.WatchedAt != nil {
				t.Errorf("unparsable pubDate gave %v, want nil", paris.WatchedAt)
			}
			if !paris.IsRewatch {
				t.Error("description mentioning rewatch should set IsRewatch")
			}
			if models.Deref(paris.ReviewText) != "First rewatch in years & still perfect." {
				t.Errorf("paris review = %q", models.Deref(paris.ReviewText))
			}

			untitled := records[3]
			if untitled.Title != "Untitled Project" || untitled.Year != nil || !untitled.IsRewatch {
				t.Errorf("untitled = %q %v rewatch=%v", untitled.Title, untitled.Year, untitled.IsRewatch)
			}
			if untitled.PosterURL != nil {
				t.Errorf("untitled poster = %v, want nil", *untitled.PosterURL)
			}
		})
	}
}

func TestParseWatchlist(t *testing.T) {
	t.Parallel()

	raw := readFixture(t, "watchlist.xml")
	for kind, p := range parsers(t) {
		t.Run(kind, func(t *testing.T) {
			t.Parallel()

			records, err := p.ParseWatchlist(raw)
			if err != nil {
				t.Fatalf("ParseWatchlist() error = %v", err)
			}
			if len(records) != 2 {
				t.Fatalf("got %d records, want 2", len(records))
			}
			alien := records[0]
			if alien.Title != "Alien" || models.Deref(alien.Year) != 1979 || alien.AddedAt == nil {
				t.Errorf("alien = %q %v added=%v", alien.Title, alien.Year, alien.AddedAt)
			}
			if alien.Source != models.SourceWatchlistRSS || alien.PosterURL == nil {
				t.Errorf("alien source = %q poster = %v", alien.Source, alien.PosterURL)
			}
			if records[1].ID != "stalker" || records[1].Year != nil {
				t.Errorf("stalker = %q %v", records[1].ID, records[1].Year)
			}
		})
	}
}

func TestParseLists(t *testing.T) {
	t.Parallel()

	raw := readFixture(t, "lists.xml")
	for kind, p := range parsers(t) {
		t.Run(kind, func(t *testing.T) {
			t.Parallel()

			lists, err := p.ParseLists(raw)
			if err != nil {
				t.Fatalf("ParseLists() error = %v", err)
			}
			if len(lists) != 2 {
				t.Fatalf("got %d lists, want 2", len(lists))
			}
			top := lists[0]
			if top.ID != "top-ten-thrillers" || top.Name != "Top Ten Thrillers" {
				t.Errorf("top = %q %q", top.ID, top.Name)
			}
			if models.Deref(top.MovieCount) != 42 {
				t.Errorf("movieCount = %v, want 42", top.MovieCount)
			}
			if len(top.PreviewImages) != 4 || top.PreviewImages[0] != "https://img/1.jpg" {
				t.Errorf("previewImages = %v", top.PreviewImages)
			}
			if top.LastUpdatedAt == nil {
				t.Error("lastUpdated should be parsed")
			}
			if models.Deref(lists[1].MovieCount) != 0 || lists[1].Description != "Things to sort out later." {
				t.Errorf("scratchpad = %v %q", lists[1].MovieCount, lists[1].Description)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	inputs := map[string]string{
		"empty":      "",
		"html":       "<html><body>Not a feed</body></html>",
		"no channel": "<rss version=\"2.0\"><item><title>Heat, 1995</title></item></rss>",
		"no items":   "<rss version=\"2.0\"><channel><title>x</title></channel></rss>",
	}
	for kind, p := range parsers(t) {
		for name, raw := range inputs {
			t.Run(kind+"/"+name, func(t *testing.T) {
				t.Parallel()

				records, err := p.ParseDiary(raw)
				if !errors.Is(err, apperrors.ErrMalformedFeed) {
					t.Errorf("error = %v, want ErrMalformedFeed", err)
				}
				if len(records) != 0 {
					t.Errorf("got %d records, want 0", len(records))
				}
			})
		}
	}
}

func TestRegexParserToleratesUnclosedDocument(t *testing.T) {
	t.Parallel()

	raw := `<rss><channel><item><title>Heat, 1995 - ★★★</title><link>https://letterboxd.com/u/film/heat/</link></item>`
	records, err := NewRegexParser().ParseDiary(raw)
	if err != nil {
		t.Fatalf("ParseDiary() error = %v", err)
	}
	if len(records) != 1 || records[0].Title != "Heat" || models.Deref(records[0].Rating) != 3 {
		t.Errorf("records = %+v", records)
	}
}

func TestParseTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		name    string
		year    int
		rating  float64
		rewatch bool
	}{
		{"Heat, 1995 - ★★★★½", "Heat", 1995, 4.5, false},
		{"Heat 1995 ★★", "Heat", 1995, 2, false},
		{"Alien, 1979", "Alien", 1979, 0, false},
		{"Solaris, 1972 - ½", "Solaris", 1972, 0.5, false},
		{"Too Many, 2001 - ★★★★★★★", "Too Many", 2001, 5, false},
		{"Alien, 1979 - ★★★ (rewatch)", "Alien", 1979, 3, true},
		{"Tom &amp; Jerry, 1992", "Tom & Jerry", 1992, 0, false},
		{"No Year Here", "No Year Here", 0, 0, false},
		{"1917", "1917", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got := parseTitle(tt.in)
			if got.Name != tt.name {
				t.Errorf("name = %q, want %q", got.Name, tt.name)
			}
			if models.Deref(got.Year) != tt.year {
				t.Errorf("year = %v, want %d", got.Year, tt.year)
			}
			if models.Deref(got.Rating) != tt.rating {
				t.Errorf("rating = %v, want %v", got.Rating, tt.rating)
			}
			if got.Rewatch != tt.rewatch {
				t.Errorf("rewatch = %v, want %v", got.Rewatch, tt.rewatch)
			}
		})
	}
}

func TestReviewText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Watched on Sunday June 2, 2024.", "", false},
		{"Liked this a lot, more than expected", "", false},
		{"Short", "", false},
		{"★★★★ Loved it, again.", "Loved it, again.", true},
		{"Great (rewatch) film overall", "Great film overall", true},
	}
	for _, tt := range tests {
		got, ok := reviewText(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("reviewText(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestExtractMetadata(t *testing.T) {
	t.Parallel()

	md, err := ExtractMetadata(readFixture(t, "diary.xml"))
	if err != nil {
		t.Fatalf("ExtractMetadata() error = %v", err)
	}
	if md.Title != "Letterboxd - jdoe" || md.Link != "https://letterboxd.com/jdoe/" {
		t.Errorf("metadata = %+v", md)
	}
	if md.ItemCount != 5 {
		t.Errorf("itemCount = %d, want 5", md.ItemCount)
	}
	if md.LastBuildDate == nil {
		t.Error("lastBuildDate should be parsed")
	}

	if _, err := ExtractMetadata("<rss></rss>"); !errors.Is(err, apperrors.ErrMalformedFeed) {
		t.Errorf("missing channel error = %v, want ErrMalformedFeed", err)
	}
}
