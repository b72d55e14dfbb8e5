// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

/*
Package supervisor provides process supervision for Reelfeed using suture v4.

# Overview

Long-running services are organized into two layers:

	RootSupervisor ("reelfeed")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheSweeperService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff; the failure threshold,
decay and backoff come from TreeConfig. Supervisor events are logged through
sutureslog into the zerolog-backed slog handler from the logging package.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	tree.AddMaintenanceService(sweeper)
	return tree.Serve(ctx)

Service wrappers live in the services subpackage.
*/
package supervisor
