// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package recommend

import (
	"math"

	"github.com/tomtom215/tressly/internal/catalog"
)

// Breakdown exposes every component of a product's composite score.
type Breakdown struct {
	// PositionPenalty is index-of-first-match / ingredient count, or 1 when
	// nothing matches or the product has no ingredients.
	PositionPenalty float64 `json:"position_penalty"`

	// Coverage is the fraction of distinct beneficial ingredients present.
	Coverage float64 `json:"coverage"`

	// Ingredient is the blended ingredient sub-score.
	Ingredient float64 `json:"ingredient"`

	// Engagement is the engagement score, 0.5 (by default) without views.
	Engagement float64 `json:"engagement"`

	// Composite is the final ranking value in [0, 1].
	Composite float64 `json:"composite"`

	// Percent is the composite rendered as a whole percentage.
	Percent int `json:"score_percent"`
}

// ScoredProduct is a product with its computed score.
type ScoredProduct struct {
	Product   catalog.Product `json:"product"`
	Score     float64         `json:"score"`
	Breakdown Breakdown       `json:"breakdown"`
}

// Percent renders a [0, 1] score as a rounded percentage.
func Percent(score float64) int {
	return int(math.Round(score * 100))
}

// clamp limits v to [lo, hi].
func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
