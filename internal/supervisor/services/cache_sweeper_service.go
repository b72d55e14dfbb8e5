// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package services

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/tomtom215/reelfeed/internal/logging"
)

// CacheSweeper removes expired cache entries. *cache.Cache implements it.
type CacheSweeper interface {
	ClearExpired() int
}

// CacheSweeperService runs CacheSweeper.ClearExpired on a cron schedule.
//
// The schedule accepts standard five-field cron expressions and the
// descriptors understood by robfig/cron ("@hourly", "@every 10m").
// Sweeps never overlap: a sweep still running when the next one is due
// causes that tick to be skipped.
type CacheSweeperService struct {
	sweeper  CacheSweeper
	schedule cron.Schedule
	spec     string
	name     string
}

// NewCacheSweeperService parses spec and returns the service. An invalid
// spec is a configuration error, so it is reported here rather than on
// every restart.
func NewCacheSweeperService(sweeper CacheSweeper, spec string) (*CacheSweeperService, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cache sweep schedule %q: %w", spec, err)
	}
	return &CacheSweeperService{
		sweeper:  sweeper,
		schedule: schedule,
		spec:     spec,
		name:     "cache-sweeper",
	}, nil
}

// Serve implements suture.Service. It blocks until ctx is canceled, then
// waits for a running sweep to finish.
func (s *CacheSweeperService) Serve(ctx context.Context) error {
	logger := logging.WithComponent(s.name)

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(s.schedule, cron.FuncJob(func() {
		if removed := s.sweeper.ClearExpired(); removed > 0 {
			logger.Info().Int("removed", removed).Msg("Swept expired cache entries")
		}
	}))

	c.Start()
	logger.Debug().Str("schedule", s.spec).Msg("Cache sweeper started")

	<-ctx.Done()

	<-c.Stop().Done()
	return ctx.Err()
}

// String implements fmt.Stringer; suture uses it in log messages.
func (s *CacheSweeperService) String() string {
	return s.name
}
