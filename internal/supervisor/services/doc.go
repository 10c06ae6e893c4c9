// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

/*
Package services provides suture.Service wrappers for Tressly components.

Each wrapper implements suture's Serve(ctx) error and returns when the context
ends. Returning any other error asks the supervisor to restart the service.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Runs drain hooks after shutdown, e.g. engagement.Tracker.Wait

Periodic jobs (PeriodicService):
  - Runs a Task on a ticker with a per-run timeout
  - Failed runs are logged and retried on the next tick
  - NewSnapshotRefreshService refreshes engagement snapshots for every catalog product
  - NewSessionSweepService evicts expired sessions

Catalog reload (CatalogReloadService):
  - Rebuilds the catalog index each time its trigger channel fires
  - Keeps the previous catalog when the reload fails or is empty
  - Reports per-category sizes to Prometheus

# Example

	tree.AddDataService(services.NewSnapshotRefreshService(tracker, index, time.Minute, logger))
	tree.AddBackgroundService(services.NewSessionSweepService(manager, time.Minute, logger))

	reloader := services.NewCatalogReloadService(loader, index, hup, logger)
	tree.AddDataService(reloader)

	httpSvc := services.NewHTTPServerService(server, 10*time.Second, logger)
	httpSvc.OnDrain(tracker.Wait)
	tree.AddAPIService(httpSvc)
*/
package services
