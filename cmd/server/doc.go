// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

/*
Package main is the entry point for the Tressly server.

Tressly recommends one hair-care product per routine category (Shampoo,
Conditioner, Leave-In, Treatment, Styler, Oil) for a hair-type profile. It
scores catalog products by where beneficial ingredients sit in their
ingredient lists and by aggregate user engagement. Users can lock, reroll,
like or dislike products and save a routine.

# Application Architecture

	RootSupervisor ("tressly")
	├── DataSupervisor ("data-layer")
	│   ├── snapshot-refresher   (engagement snapshots for scoring)
	│   └── catalog-reloader     (SIGHUP)
	├── BackgroundSupervisor ("background-layer")
	│   └── session-sweeper
	└── APISupervisor ("api-layer")
	    └── http-server          (chi router, /api/v1)

Component initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Catalog: JSON file into the in-memory category index
 4. Engagement store: embedded BadgerDB or a remote engagement API
 5. Tracker and snapshots, then the scoring engine
 6. Profiles, session manager and JWT session tokens
 7. Classifier client (optional)
 8. Supervisor tree and HTTP server

# Configuration

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	HTTP_PORT=8080
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	CATALOG_PATH=data/products.json
	CATALOG_SEED_ENGAGEMENT=true

	ENGAGEMENT_BACKEND=badger    # badger or remote
	ENGAGEMENT_BADGER_PATH=/data/engagement
	ENGAGEMENT_REMOTE_URL=http://engagement:8080

	CLASSIFIER_ENABLED=false
	CLASSIFIER_URL=http://localhost:8000

	JWT_SECRET=<32+ chars>       # Required
	SESSION_TTL=30m

# Signals

SIGINT and SIGTERM shut down gracefully: the HTTP server stops accepting
connections, in-flight requests finish, then pending engagement writes drain
for up to ENGAGEMENT_DRAIN_TIMEOUT. SIGHUP reloads the catalog file.

# Example Usage

	export JWT_SECRET=$(openssl rand -base64 48)
	export CATALOG_PATH=./products.json
	export ENGAGEMENT_BADGER_PATH=./data/engagement
	./tressly

With the classifier sidecar:

	export CLASSIFIER_ENABLED=true
	export CLASSIFIER_URL=http://classifier:8000
	./tressly
*/
package main
