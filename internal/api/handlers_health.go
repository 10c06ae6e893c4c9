// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/tressly/internal/catalog"
)

// classifierHealthTimeout bounds the classifier probe inside /health.
const classifierHealthTimeout = 2 * time.Second

// HealthStatus is the /api/v1/health payload.
type HealthStatus struct {
	Status         string           `json:"status"`
	Version        string           `json:"version"`
	UptimeSeconds  float64          `json:"uptime_seconds"`
	Products       int              `json:"products"`
	Categories     map[string]int   `json:"categories"`
	ActiveSessions int              `json:"active_sessions"`
	Classifier     ClassifierStatus `json:"classifier"`
}

// ClassifierStatus reports whether classification is usable.
type ClassifierStatus struct {
	Enabled     bool   `json:"enabled"`
	Status      string `json:"status,omitempty"`
	ModelLoaded bool   `json:"model_loaded"`
	Error       string `json:"error,omitempty"`
}

// Health reports catalog size, session count and classifier state.
//
// Status is "healthy" when the catalog has products and the classifier, if
// enabled, reports healthy; otherwise "degraded". The endpoint always returns
// 200 so dashboards can read the body.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	counts := h.deps.Catalog.CategoryCounts()
	categories := make(map[string]int, len(counts))
	for _, c := range catalog.RoutineCategories() {
		categories[c.String()] = counts[c]
	}

	health := HealthStatus{
		Status:         "healthy",
		Version:        h.deps.Version,
		UptimeSeconds:  time.Since(h.startTime).Seconds(),
		Products:       h.deps.Catalog.Len(),
		Categories:     categories,
		ActiveSessions: h.deps.Sessions.Len(),
		Classifier:     h.classifierStatus(r.Context()),
	}

	if health.Products == 0 {
		health.Status = "degraded"
	}
	if health.Classifier.Enabled && health.Classifier.Status != "healthy" {
		health.Status = "degraded"
	}

	NewResponseWriter(w, r).Success(health)
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// The service is ready once a non-empty catalog is loaded; the classifier
// is optional and does not gate readiness.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.deps.Catalog.Len() == 0 {
		rw.ServiceUnavailable("Catalog is empty")
		return
	}
	rw.Success(map[string]string{"status": "ready"})
}

func (h *Handler) classifierStatus(ctx context.Context) ClassifierStatus {
	if h.deps.Classifier == nil {
		return ClassifierStatus{}
	}

	ctx, cancel := context.WithTimeout(ctx, classifierHealthTimeout)
	defer cancel()

	hs, err := h.deps.Classifier.Health(ctx)
	if err != nil {
		return ClassifierStatus{Enabled: true, Status: "unreachable", Error: err.Error()}
	}
	return ClassifierStatus{
		Enabled:     true,
		Status:      hs.Status,
		ModelLoaded: hs.ModelLoaded,
		Error:       hs.Error,
	}
}
