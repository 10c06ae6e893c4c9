// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package recommend

import (
	"github.com/tomtom215/tressly/internal/catalog"
	"github.com/tomtom215/tressly/internal/ingredients"
)

// Scorer computes per-product scores. It never fails: malformed or missing
// ingredient data scores as the worst-case ingredient match, and missing
// engagement stats score as neutral.
type Scorer struct {
	w Weights
}

// NewScorer creates a scorer with the given weights.
// Weights are assumed valid; see Weights.Validate.
//
//nolint:gocritic // weights passed by value for immutability
func NewScorer(w Weights) *Scorer {
	return &Scorer{w: w}
}

// Weights returns the scorer's weights.
func (s *Scorer) Weights() Weights {
	return s.w
}

// PositionPenalty returns the index of the first token found in beneficial
// divided by the token count. Empty tokens or no match give 1.
func PositionPenalty(tokens []string, beneficial ingredients.Set) float64 {
	if len(tokens) == 0 {
		return 1
	}
	for i, tok := range tokens {
		if beneficial.Contains(tok) {
			return float64(i) / float64(len(tokens))
		}
	}
	return 1
}

// Coverage returns the fraction of distinct beneficial ingredients that
// appear anywhere in tokens. It is 0 when either side is empty.
func Coverage(tokens []string, beneficial ingredients.Set) float64 {
	if len(tokens) == 0 || beneficial.Len() == 0 {
		return 0
	}

	found := make(map[string]struct{}, beneficial.Len())
	for _, tok := range tokens {
		if beneficial.Contains(tok) {
			found[tok] = struct{}{}
		}
	}
	return float64(len(found)) / float64(beneficial.Len())
}

// IngredientScore returns the ingredient sub-score for p.
//
//nolint:gocritic // hugeParam: product passed by value for immutability
func (s *Scorer) IngredientScore(p catalog.Product, beneficial ingredients.Set) float64 {
	tokens := p.Ingredients.Normalized()
	return s.ingredientScore(PositionPenalty(tokens, beneficial), Coverage(tokens, beneficial))
}

func (s *Scorer) ingredientScore(penalty, coverage float64) float64 {
	return clamp(0, 1, s.w.Position*(1-penalty)+s.w.Coverage*coverage)
}

// EngagementScore maps engagement stats to [0, 1]. Nil stats or zero views
// give the neutral score regardless of the other counters.
func (s *Scorer) EngagementScore(stats *catalog.EngagementStats) float64 {
	if stats == nil || stats.Views <= 0 {
		return s.w.NeutralEngagement
	}

	views := float64(stats.Views)
	likeRatio := clamp(-1, 1, float64(stats.Likes-stats.Dislikes)/views)
	routineRate := float64(stats.Routines) / views
	rerollRate := float64(stats.Rerolls) / views
	actionRate := float64(stats.Likes+stats.Dislikes+stats.Routines+stats.Rerolls) / views

	raw := s.w.LikeRatio*likeRatio +
		s.w.RoutineRate*routineRate -
		s.w.RerollRate*rerollRate +
		s.w.ActionRate*actionRate

	return clamp(0, 1, (raw+1)/2)
}

// Composite returns the final ranking score for p in [0, 1].
//
//nolint:gocritic // hugeParam: product passed by value for immutability
func (s *Scorer) Composite(p catalog.Product, beneficial ingredients.Set) float64 {
	return s.Breakdown(p, beneficial).Composite
}

// Breakdown returns every scoring component for p.
//
//nolint:gocritic // hugeParam: product passed by value for immutability
func (s *Scorer) Breakdown(p catalog.Product, beneficial ingredients.Set) Breakdown {
	tokens := p.Ingredients.Normalized()
	penalty := PositionPenalty(tokens, beneficial)
	coverage := Coverage(tokens, beneficial)
	ingredient := s.ingredientScore(penalty, coverage)
	engagement := s.EngagementScore(p.Engagement)
	composite := clamp(0, 1, s.w.Ingredient*ingredient+s.w.Engagement*engagement)

	return Breakdown{
		PositionPenalty: penalty,
		Coverage:        coverage,
		Ingredient:      ingredient,
		Engagement:      engagement,
		Composite:       composite,
		Percent:         Percent(composite),
	}
}
