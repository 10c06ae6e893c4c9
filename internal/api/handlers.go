// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package api

import (
	"context"
	"time"

	"github.com/tomtom215/tressly/internal/auth"
	"github.com/tomtom215/tressly/internal/catalog"
	"github.com/tomtom215/tressly/internal/classifier"
	"github.com/tomtom215/tressly/internal/engagement"
	"github.com/tomtom215/tressly/internal/session"
)

// Catalog is the read side of the product index.
type Catalog interface {
	Product(id string) (catalog.Product, bool)
	Len() int
	CategoryCounts() map[catalog.Category]int
}

// Sessions creates and looks up live sessions.
// This is typically implemented by session.Manager.
type Sessions interface {
	Create(profile string) (*session.Session, error)
	Get(id string) (*session.Session, error)
	Delete(id string)
	Len() int
}

// Tokens issues and validates session tokens.
// This is typically implemented by auth.JWTManager.
type Tokens interface {
	GenerateToken(sessionID, profile string) (string, error)
	ValidateToken(token string) (*auth.Claims, error)
}

// Engagement reads and increments engagement counters.
// This is typically implemented by engagement.Tracker.
type Engagement interface {
	Get(ctx context.Context, productID string) (catalog.EngagementStats, error)
	GetMany(ctx context.Context, productIDs []string) (map[string]catalog.EngagementStats, error)
	Add(ctx context.Context, productID string, field engagement.Field, amount int) (catalog.EngagementStats, error)
}

// Classifier analyzes hair photos.
// This is typically implemented by classifier.Client.
type Classifier interface {
	Analyze(ctx context.Context, image string) (classifier.Prediction, error)
	Health(ctx context.Context) (classifier.Health, error)
}

// HandlerDeps are the collaborators the HTTP handlers call into.
type HandlerDeps struct {
	Catalog    Catalog
	Sessions   Sessions
	Tokens     Tokens
	Engagement Engagement

	// Classifier is nil when classification is disabled.
	Classifier Classifier
	Profiles   *classifier.Profiles

	// MaxImageBytes bounds the /classify body. Zero uses 10MB.
	MaxImageBytes int

	Version string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_health.go: health, liveness and readiness
//   - handlers_sessions.go: session lifecycle and transitions
//   - handlers_engagement.go: product lookup and engagement counters
//   - handlers_classify.go: hair-type classification
type Handler struct {
	deps      HandlerDeps
	startTime time.Time
}

// NewHandler creates the API handler.
//
// Example:
//
//	handler := api.NewHandler(api.HandlerDeps{
//	    Catalog:    index,
//	    Sessions:   sessions,
//	    Tokens:     tokens,
//	    Engagement: tracker,
//	    Profiles:   profiles,
//	})
//	router := api.NewRouter(handler, api.NewChiMiddleware(mwConfig))
//
//nolint:gocritic // hugeParam: deps passed by value at construction only
func NewHandler(deps HandlerDeps) *Handler {
	if deps.MaxImageBytes <= 0 {
		deps.MaxImageBytes = 10 << 20
	}
	if deps.Profiles == nil {
		deps.Profiles = classifier.NewProfiles(classifier.DefaultProfiles())
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}
	return &Handler{
		deps:      deps,
		startTime: time.Now(),
	}
}
