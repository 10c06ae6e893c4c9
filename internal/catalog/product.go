// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

// Package catalog holds the product model and the category index the
// recommender ranks over.
//
// The catalog is process-wide, read-only state. It is loaded once at startup
// and rebuilt only through an explicit Rebuild (triggered on reload). There is
// no implicit invalidation.
package catalog

import (
	"time"

	"github.com/tomtom215/tressly/internal/ingredients"
)

// Category is a routine step a product belongs to.
type Category string

// Routine categories.
const (
	Shampoo     Category = "Shampoo"
	Conditioner Category = "Conditioner"
	LeaveIn     Category = "Leave-In"
	Treatment   Category = "Treatment"
	Styler      Category = "Styler"
	Oil         Category = "Oil"
)

// routineCategories is the deterministic iteration order used by sessions.
var routineCategories = []Category{Shampoo, Conditioner, LeaveIn, Treatment, Styler, Oil}

// RoutineCategories returns the routine categories in display order.
func RoutineCategories() []Category {
	out := make([]Category, len(routineCategories))
	copy(out, routineCategories)
	return out
}

// Valid reports whether c is one of the routine categories.
func (c Category) Valid() bool {
	for _, rc := range routineCategories {
		if c == rc {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// EngagementStats are the engagement counters for one product.
// They are owned by the engagement store; callers only ever hold snapshots.
type EngagementStats struct {
	Likes       int       `json:"likes"`
	Dislikes    int       `json:"dislikes"`
	Rerolls     int       `json:"rerolls"`
	Routines    int       `json:"routines"`
	Views       int       `json:"views"`
	LastUpdated time.Time `json:"last_updated"`
}

// Product is a single catalog entry.
//
// Ingredients keep source order, which reflects concentration (highest first).
// Engagement is the only field that changes after load, and only by
// replacing the snapshot pointer.
type Product struct {
	ID          string           `json:"id" validate:"required,max=128"`
	Brand       string           `json:"brand" validate:"max=256"`
	Name        string           `json:"name" validate:"required,max=512"`
	Category    Category         `json:"category" validate:"required,oneof=Shampoo Conditioner Leave-In Treatment Styler Oil"`
	Price       *float64         `json:"price,omitempty" validate:"omitempty,gte=0"`
	URL         string           `json:"url,omitempty" validate:"omitempty,url"`
	ImageURL    string           `json:"image_url,omitempty" validate:"omitempty,url"`
	Rating      *float64         `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	ReviewCount *int             `json:"review_count,omitempty" validate:"omitempty,gte=0"`
	Ingredients ingredients.List `json:"ingredients"`
	Engagement  *EngagementStats `json:"engagement_stats,omitempty"`
}

// WithEngagement returns a copy of p carrying stats as its engagement snapshot.
func (p Product) WithEngagement(stats *EngagementStats) Product {
	p.Engagement = stats
	return p
}
