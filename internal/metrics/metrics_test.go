// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/movies", "200"))

	RecordAPIRequest("GET", "/api/movies", "200", 15*time.Millisecond)
	RecordAPIRequest("GET", "/api/movies", "200", 25*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/movies", "200"))
	if after-before != 2 {
		t.Errorf("api_requests_total delta = %v, want 2", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordUpstreamRequest(t *testing.T) {
	before := testutil.ToFloat64(UpstreamErrors.WithLabelValues("tmdb", "UpstreamTimeout"))

	RecordUpstreamRequest("tmdb", "search", time.Second, "")
	RecordUpstreamRequest("tmdb", "search", 10*time.Second, "UpstreamTimeout")

	after := testutil.ToFloat64(UpstreamErrors.WithLabelValues("tmdb", "UpstreamTimeout"))
	if after-before != 1 {
		t.Errorf("upstream_errors_total delta = %v, want 1", after-before)
	}
}

func TestRecordBranch(t *testing.T) {
	tests := []struct {
		branch  string
		success bool
		cached  bool
		outcome string
		label   string
	}{
		{"diary", true, false, "success", "false"},
		{"diary", true, true, "success", "true"},
		{"randomMovie", false, false, "failure", "false"},
	}
	for _, tt := range tests {
		t.Run(tt.branch+"_"+tt.outcome+"_"+tt.label, func(t *testing.T) {
			c := BranchResults.WithLabelValues(tt.branch, tt.outcome, tt.label)
			before := testutil.ToFloat64(c)
			RecordBranch(tt.branch, tt.success, tt.cached)
			if got := testutil.ToFloat64(c) - before; got != 1 {
				t.Errorf("delta = %v, want 1", got)
			}
		})
	}
}

func TestSetAppInfo(t *testing.T) {
	SetAppInfo("test")
	if n := testutil.CollectAndCount(AppInfo); n < 1 {
		t.Errorf("app_info series = %d, want >= 1", n)
	}
}

func TestMetricGathering(t *testing.T) {
	RecordAPIRequest("GET", "/health", "200", time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint() error = %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}
