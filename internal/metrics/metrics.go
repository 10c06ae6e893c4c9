// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Category selection and fallback
// - Session lifecycle
// - Engagement increments and coalescing
// - Circuit breakers on outbound calls
// - Classifier latency
// - Catalog size and reloads

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, // Optimized for API latency
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Selection Metrics
	SelectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_selections_total",
			Help: "Total number of category selections by outcome",
		},
		[]string{"category", "outcome"}, // outcome: "selected", "fallback", "empty"
	)

	// Session Metrics
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Current number of live recommendation sessions",
		},
	)

	SessionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sessions_created_total",
			Help: "Total number of sessions created by hair-type profile",
		},
		[]string{"profile"},
	)

	SessionRerollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_rerolls_total",
			Help: "Total number of category rerolls",
		},
		[]string{"category"},
	)

	SessionRoutinesSavedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_routines_saved_total",
			Help: "Total number of saved routines",
		},
	)

	// Engagement Metrics
	EngagementIncrementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_increments_total",
			Help: "Total number of engagement store increments",
		},
		[]string{"field", "result"}, // result: "success", "failure"
	)

	EngagementCoalescedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_increments_coalesced_total",
			Help: "Total number of increments that shared an in-flight call",
		},
		[]string{"field"},
	)

	EngagementIncrementDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "engagement_increment_duration_seconds",
			Help:    "Duration of engagement store increments",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"store"},
	)

	EngagementEmissionsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "engagement_emissions_in_flight",
			Help: "Current number of fire-and-forget engagement emissions",
		},
	)

	EngagementSnapshotRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engagement_snapshot_refreshes_total",
			Help: "Total number of bulk snapshot refreshes",
		},
		[]string{"result"},
	)

	EngagementSnapshotSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "engagement_snapshot_products",
			Help: "Number of products with a cached engagement snapshot",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Classifier Metrics
	ClassifierRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "classifier_request_duration_seconds",
			Help:    "Duration of hair-type classifier calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	ClassifierRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classifier_requests_total",
			Help: "Total number of classifier calls",
		},
		[]string{"result"},
	)

	// Catalog Metrics
	CatalogProducts = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Number of catalog products per category",
		},
		[]string{"category"},
	)

	CatalogReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_reloads_total",
			Help: "Total number of catalog reloads",
		},
		[]string{"result"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordSelection records the outcome of one category selection.
func RecordSelection(category, outcome string) {
	SelectionsTotal.WithLabelValues(category, outcome).Inc()
}

// RecordReroll records one category being rerolled.
func RecordReroll(category string) {
	SessionRerollsTotal.WithLabelValues(category).Inc()
}

// RecordEngagementIncrement records a store increment and its latency.
func RecordEngagementIncrement(store, field string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	EngagementIncrementsTotal.WithLabelValues(field, result).Inc()
	EngagementIncrementDuration.WithLabelValues(store).Observe(duration.Seconds())
}

// RecordEngagementCoalesced records an increment that joined an in-flight call.
func RecordEngagementCoalesced(field string) {
	EngagementCoalescedTotal.WithLabelValues(field).Inc()
}

// RecordSnapshotRefresh records a bulk snapshot refresh.
func RecordSnapshotRefresh(products int, err error) {
	if err != nil {
		EngagementSnapshotRefreshes.WithLabelValues("failure").Inc()
		return
	}
	EngagementSnapshotRefreshes.WithLabelValues("success").Inc()
	EngagementSnapshotSize.Set(float64(products))
}

// RecordClassifierRequest records a classifier call.
func RecordClassifierRequest(duration time.Duration, err error) {
	ClassifierRequestDuration.Observe(duration.Seconds())
	if err != nil {
		ClassifierRequestsTotal.WithLabelValues("failure").Inc()
		return
	}
	ClassifierRequestsTotal.WithLabelValues("success").Inc()
}

// RecordCatalogReload records a catalog (re)load and the per-category sizes.
func RecordCatalogReload(counts map[string]int, err error) {
	if err != nil {
		CatalogReloadsTotal.WithLabelValues("failure").Inc()
		return
	}
	CatalogReloadsTotal.WithLabelValues("success").Inc()
	for category, n := range counts {
		CatalogProducts.WithLabelValues(category).Set(float64(n))
	}
}
