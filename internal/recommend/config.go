// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package recommend

import (
	"fmt"
	"math"
)

// weightTolerance is the allowed drift when checking that blend weights sum to 1.
const weightTolerance = 1e-6

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights are the scoring constants.
	Weights Weights `json:"weights"`
}

// Weights holds every scoring constant.
type Weights struct {
	// Position is the weight of (1 - position penalty) in the ingredient sub-score.
	Position float64 `json:"position"`

	// Coverage is the weight of beneficial-ingredient coverage in the ingredient sub-score.
	Coverage float64 `json:"coverage"`

	// LikeRatio weighs (likes - dislikes) / views in the raw engagement signal.
	LikeRatio float64 `json:"like_ratio"`

	// RoutineRate weighs routines / views.
	RoutineRate float64 `json:"routine_rate"`

	// RerollRate weighs rerolls / views. It is subtracted.
	RerollRate float64 `json:"reroll_rate"`

	// ActionRate weighs total actions / views.
	ActionRate float64 `json:"action_rate"`

	// Ingredient is the weight of the ingredient sub-score in the composite.
	Ingredient float64 `json:"ingredient"`

	// Engagement is the weight of the engagement score in the composite.
	Engagement float64 `json:"engagement"`

	// NeutralEngagement is the engagement score of a product with no views.
	NeutralEngagement float64 `json:"neutral_engagement"`
}

// DefaultWeights returns the tuned scoring constants.
func DefaultWeights() Weights {
	return Weights{
		Position:          0.8,
		Coverage:          0.2,
		LikeRatio:         0.55,
		RoutineRate:       0.25,
		RerollRate:        0.10,
		ActionRate:        0.10,
		Ingredient:        0.4,
		Engagement:        0.6,
		NeutralEngagement: 0.5,
	}
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: DefaultWeights(),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	return c.Weights.Validate()
}

// Validate checks that the weights keep every score in [0, 1].
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w Weights) Validate() error {
	named := []struct {
		name  string
		value float64
	}{
		{"position", w.Position},
		{"coverage", w.Coverage},
		{"like_ratio", w.LikeRatio},
		{"routine_rate", w.RoutineRate},
		{"reroll_rate", w.RerollRate},
		{"action_rate", w.ActionRate},
		{"ingredient", w.Ingredient},
		{"engagement", w.Engagement},
		{"neutral_engagement", w.NeutralEngagement},
	}
	for _, n := range named {
		if math.IsNaN(n.value) || n.value < 0 || n.value > 1 {
			return fmt.Errorf("weights.%s must be in [0, 1], got %f", n.name, n.value)
		}
	}

	if sum := w.Position + w.Coverage; math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("weights.position + weights.coverage must equal 1, got %f", sum)
	}
	if sum := w.Ingredient + w.Engagement; math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("weights.ingredient + weights.engagement must equal 1, got %f", sum)
	}
	return nil
}
