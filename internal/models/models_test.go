// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package models

import (
	"reflect"
	"testing"
)

func TestSlugAndRecordID(t *testing.T) {
	t.Parallel()

	if got := Slug("Spider-Man: Across the Spider-Verse"); got != "spider-man--across-the-spider-verse" {
		t.Errorf("Slug() = %q", got)
	}
	if got := RecordID("watchlist", "Heat", Ptr(1995)); got != "watchlist-heat-1995" {
		t.Errorf("RecordID() = %q", got)
	}
	if got := RecordID("five-star", "Heat", nil); got != "five-star-heat-null" {
		t.Errorf("RecordID() without year = %q", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	orig := MovieRecord{
		Title:     "Paris, Texas",
		Year:      Ptr(1984),
		PosterURL: Ptr("https://a.ltrbxd.com/p.jpg"),
		Genres:    []string{"Drama"},
		Cast:      []CastMember{{ID: 1, Name: "Harry Dean Stanton", ProfileURL: Ptr("https://img/p.jpg")}},
	}
	c := orig.Clone()
	if !reflect.DeepEqual(orig, c) {
		t.Fatal("clone should equal original")
	}

	*c.Year = 1985
	c.Genres[0] = "Western"
	*c.Cast[0].ProfileURL = "changed"

	if *orig.Year != 1984 || orig.Genres[0] != "Drama" || *orig.Cast[0].ProfileURL != "https://img/p.jpg" {
		t.Error("mutating the clone changed the original")
	}
}

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	got := NormalizeTags([]string{" topstats", "horror", "", "topstats", "horror "})
	want := []string{"topstats", "horror"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTags() = %v, want %v", got, want)
	}

	l := ListSummary{Tags: got}
	if !l.HasTag(FeaturedListTag) {
		t.Error("expected featured tag")
	}
}

func TestDeref(t *testing.T) {
	t.Parallel()

	if Deref[int](nil) != 0 {
		t.Error("Deref(nil) should be zero")
	}
	if Deref(Ptr("x")) != "x" {
		t.Error("Deref(Ptr(x)) should be x")
	}
	r := MovieRecord{}
	if r.YearString() != "" {
		t.Error("unknown year should render empty")
	}
	r.Year = Ptr(2001)
	if r.YearString() != "2001" {
		t.Errorf("YearString() = %q", r.YearString())
	}
}

func TestCleanTitle(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"Heat,", "Heat"},
		{"Paris, Texas, , ", "Paris, Texas"},
		{"  Alien  ", "Alien"},
		{"", ""},
		{"   ", "   "},
		{"No Commas", "No Commas"},
	}
	for _, tt := range tests {
		if got := CleanTitle(tt.in); got != tt.want {
			t.Errorf("CleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
