// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

/*
Package api provides the HTTP API for Tressly.

The API exposes the state a recommendation UI renders: a per-category product
selection with lock flags and scores, and the transitions that change it
(lock, reroll, save routine, feedback). It also serves engagement counters,
which lets one Tressly instance act as the remote engagement store of another,
and proxies hair-type classification.

Endpoints:

	GET    /api/v1/health                             status, catalog size, sessions
	GET    /api/v1/health/live                        liveness probe
	GET    /api/v1/health/ready                       readiness probe
	GET    /api/v1/profiles                           hair-type profiles
	POST   /api/v1/sessions                           {"profile"} -> token + view
	GET    /api/v1/sessions/{token}                   current view
	DELETE /api/v1/sessions/{token}                   end session
	POST   /api/v1/sessions/{token}/locks/{productID} toggle lock
	POST   /api/v1/sessions/{token}/reroll            reroll unlocked categories
	POST   /api/v1/sessions/{token}/routine           save routine
	POST   /api/v1/sessions/{token}/feedback          {"product_id","kind"}
	GET    /api/v1/products/{productID}               product with engagement
	GET    /api/v1/products/{productID}/engagement    counters
	POST   /api/v1/products/{productID}/engagement    {"field","amount"}
	GET    /api/v1/engagement?ids=a,b                 counters for several products
	POST   /api/v1/classify                           {"image","create_session"}
	GET    /metrics                                   Prometheus

Response Format:

Every JSON response uses the same envelope:

	{
	  "success": true,
	  "data": {...},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}
	}

Errors carry a machine-readable code:

	{
	  "success": false,
	  "error": {"code": "SESSION_NOT_FOUND", "message": "...", "request_id": "..."},
	  "meta": {...}
	}

Sessions:

The {token} segment is a signed JWT naming a server-side session. Tokens that
fail verification get 401; valid tokens for sessions that expired or were
ended get 404.

Middleware:

Global: request id, real IP, panic recovery, Prometheus metrics, CORS.
API routes add per-IP rate limiting (go-chi/httprate), security headers and
gzip. Session creation and classification have stricter limits.
*/
package api
