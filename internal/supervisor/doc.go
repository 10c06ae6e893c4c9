// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

/*
Package supervisor provides process supervision for Tressly using suture v4.

Every long-running component runs under a hierarchical supervisor tree with
automatic restart, failure isolation and graceful shutdown.

# Overview

	RootSupervisor ("tressly")
	├── DataSupervisor ("data-layer")
	│   ├── snapshot-refresher
	│   └── catalog-reloader
	├── BackgroundSupervisor ("background-layer")
	│   └── session-sweeper
	└── APISupervisor ("api-layer")
	    └── http-server

A failing engagement store crashes at most the data layer. The API keeps
serving sessions from the last good snapshots while it restarts.

# Restart Policy

TreeConfig maps onto suture.Spec. FailureThreshold failures, decayed at
FailureDecay per second, put a supervisor into FailureBackoff. Zero values
take suture's defaults (5, 30, 15s); ShutdownTimeout defaults to 10s.

A service that returns suture.ErrDoNotRestart is not restarted. Returning
suture.ErrTerminateSupervisorTree stops the whole tree.

# Logging

Supervisor events go through sutureslog to the slog logger passed to
NewSupervisorTree. In Tressly that is logging.NewSlogLogger("supervisor"),
which forwards into the global zerolog logger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}
*/
package supervisor
