// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

// Package engagement tracks per-product engagement counters (views, likes,
// dislikes, routine-adds and rerolls) and feeds them back into scoring.
//
// # Stores
//
// Counters live in a Store keyed by product id. Two implementations exist:
//
//   - BadgerStore: embedded key-value store, JSON values, durable across restarts.
//   - RemoteStore: HTTP client for an external engagement API, guarded by a
//     circuit breaker and a client-side rate limiter.
//
// Stores make no idempotency guarantee. Duplicate suppression happens on the
// caller side in Tracker.
//
// # Tracker
//
// Tracker is what the session layer talks to. Increment allows at most one
// in-flight store call per (product, field); concurrent duplicates wait for
// it and receive the same stats. Emit runs an increment in the background and
// only logs failures, so engagement problems never block or roll back a
// session transition. Every successful response refreshes the Snapshots the
// recommender reads.
package engagement

import (
	"context"

	"github.com/tomtom215/tressly/internal/catalog"
)

// Store is a key-value store of engagement counters by product id.
//
// A product with no recorded engagement reads as zero counters, not an error.
type Store interface {
	// Get returns the counters for one product.
	Get(ctx context.Context, productID string) (catalog.EngagementStats, error)

	// GetMany returns counters for the given products. Products without
	// recorded engagement may be omitted from the result.
	GetMany(ctx context.Context, productIDs []string) (map[string]catalog.EngagementStats, error)

	// Increment adds amount to field for productID and returns the updated counters.
	Increment(ctx context.Context, productID string, field Field, amount int) (catalog.EngagementStats, error)
}
