// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/tressly/internal/middleware"
)

// compressionLevel is the gzip level for JSON responses. Session views with
// full ingredient lists compress well.
const compressionLevel = 5

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)         // X-Request-ID header with logging context
	r.Use(chimiddleware.RealIP)         // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)      // Recover from panics
	r.Use(middleware.PrometheusMetrics) // Labelled by route pattern
	r.Use(router.chiMiddleware.CORS())  // CORS must be global to handle OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Core API Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chimiddleware.Compress(compressionLevel, "application/json"))

		r.Get("/profiles", router.handler.ListProfiles)

		// Sessions
		r.With(router.chiMiddleware.RateLimitCustom("sessions", RateLimitSessionCreate)).
			Post("/sessions", router.handler.CreateSession)
		r.Route("/sessions/{token}", func(r chi.Router) {
			r.Use(router.handler.SessionContext)
			r.Get("/", router.handler.GetSession)
			r.Delete("/", router.handler.DeleteSession)
			r.Post("/locks/{productID}", router.handler.ToggleLock)
			r.Post("/reroll", router.handler.Reroll)
			r.Post("/routine", router.handler.SaveRoutine)
			r.Post("/feedback", router.handler.Feedback)
		})

		// Products and engagement
		r.Get("/engagement", router.handler.BatchEngagement)
		r.Route("/products/{productID}", func(r chi.Router) {
			r.Get("/", router.handler.GetProduct)
			r.Get("/engagement", router.handler.GetEngagement)
			r.Post("/engagement", router.handler.IncrementEngagement)
		})

		// Classification
		r.With(router.chiMiddleware.RateLimitCustom("classify", RateLimitClassify)).
			Post("/classify", router.handler.Classify)
	})

	// ========================
	// Metrics
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	return r
}
