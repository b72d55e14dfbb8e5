// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package services adapts long-running components to suture.Service.

  - HTTPServerService: http.Server with graceful Shutdown on cancellation
  - CacheSweeperService: cron-scheduled removal of expired cache entries

Each wrapper implements Serve(ctx) error and String(), and returns
ctx.Err() when stopped by its supervisor.
*/
package services
