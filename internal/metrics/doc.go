// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry at package init through
promauto, and exposed by the API at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Recommendation Metrics:
  - recommend_selections_total: Category selections (counter)
    Labels: category, outcome (selected, fallback, empty)
  - session_rerolls_total: Rerolled categories (counter)
  - sessions_active, sessions_created_total, session_routines_saved_total

Engagement Metrics:
  - engagement_increments_total: Store increments (counter)
    Labels: field, result
  - engagement_increments_coalesced_total: Increments that joined an
    in-flight call (counter)
  - engagement_increment_duration_seconds: Store latency (histogram)
    Labels: store (badger, remote)
  - engagement_emissions_in_flight: Outstanding async emissions (gauge)
  - engagement_snapshot_refreshes_total, engagement_snapshot_products

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Labels: name, result
  - circuit_breaker_state_transitions_total: Labels: name, from_state, to_state

Classifier and Catalog Metrics:
  - classifier_request_duration_seconds, classifier_requests_total
  - catalog_products (per category), catalog_reloads_total

# Usage

	start := time.Now()
	stats, err := store.Increment(ctx, id, field, 1)
	metrics.RecordEngagementIncrement("badger", field.String(), time.Since(start), err)

# Testing

Use prometheus/testutil to read collector values:

	before := testutil.ToFloat64(metrics.SelectionsTotal.WithLabelValues("Shampoo", "fallback"))
*/
package metrics
