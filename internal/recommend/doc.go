// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

// Package recommend scores catalog products against a beneficial-ingredient
// list and selects the best match per routine category.
//
// # Scoring
//
// Every product gets a composite score in [0, 1] that blends two signals:
//
//   - Ingredient match: how early the first beneficial ingredient appears in
//     the product's ingredient list (position), plus the fraction of distinct
//     beneficial ingredients present anywhere (coverage).
//   - Engagement: likes, dislikes, routine-adds and rerolls relative to views.
//     Products with no recorded views score a neutral 0.5 so new products are
//     not penalized.
//
// With the default weights engagement carries 60% of the composite, so
// observed behavior dominates once it exists while ingredient match alone
// still orders products without history. All weights are configuration (see
// Weights); none are algorithmic invariants.
//
// # Selection
//
// RankCategory filters excluded ids, scores survivors and stable-sorts them by
// descending score. SelectTopN adds the fallback policy: when every candidate
// in a non-empty category is excluded, ranking is retried once without
// exclusions, so a category never goes empty only because everything was shown
// recently. In a one-product category the fallback can return the product
// that was just excluded.
//
// # Engagement Snapshots
//
// The engine reads engagement through a StatsSource. When the source has a
// snapshot for a product it replaces whatever stats the catalog carried
// before scoring; otherwise the catalog value (if any) is used.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), snapshots, logger)
//	if err != nil {
//	    return err
//	}
//	beneficial := ingredients.NewSet([]string{"Shea Butter", "Argan Oil"})
//	top := engine.SelectTopN(index, catalog.Shampoo, beneficial, excluded, 1)
//
// # Thread Safety
//
// Engine and Scorer are immutable after construction and safe for concurrent
// use.
package recommend
