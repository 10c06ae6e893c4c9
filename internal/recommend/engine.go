// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package recommend

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tressly/internal/catalog"
	"github.com/tomtom215/tressly/internal/ingredients"
	"github.com/tomtom215/tressly/internal/metrics"
)

// Selection outcomes reported to metrics.
const (
	outcomeSelected = "selected"
	outcomeFallback = "fallback"
	outcomeEmpty    = "empty"
)

// StatsSource supplies the latest engagement snapshot for a product.
// This is typically implemented by engagement.Snapshots.
type StatsSource interface {
	Stats(productID string) (catalog.EngagementStats, bool)
}

// CategoryLookup returns the products in a category in source order.
// This is typically implemented by catalog.Index.
type CategoryLookup interface {
	Products(c catalog.Category) []catalog.Product
}

// Engine ranks and selects products. It is safe for concurrent use.
type Engine struct {
	config *Config
	scorer *Scorer
	stats  StatsSource
	logger zerolog.Logger
}

// NewEngine creates a new recommendation engine. A nil stats source means
// products are scored with whatever engagement the catalog carries.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, stats StatsSource, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg,
		scorer: NewScorer(cfg.Weights),
		stats:  stats,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Scorer returns the engine's scorer.
func (e *Engine) Scorer() *Scorer {
	return e.scorer
}

// Score returns the score breakdown for p after applying the latest
// engagement snapshot.
//
//nolint:gocritic // hugeParam: product passed by value for immutability
func (e *Engine) Score(p catalog.Product, beneficial ingredients.Set) Breakdown {
	return e.scorer.Breakdown(e.withSnapshot(p), beneficial)
}

// RankCategory filters out products whose id is in exclude, scores the
// survivors and returns them sorted by descending composite score. Ties keep
// their source order.
func (e *Engine) RankCategory(products []catalog.Product, beneficial ingredients.Set, exclude []string) []ScoredProduct {
	excluded := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	ranked := make([]ScoredProduct, 0, len(products))
	for _, p := range products {
		if _, skip := excluded[p.ID]; skip {
			continue
		}
		p = e.withSnapshot(p)
		b := e.scorer.Breakdown(p, beneficial)
		ranked = append(ranked, ScoredProduct{
			Product:   p,
			Score:     b.Composite,
			Breakdown: b,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

// SelectTopN returns up to topN of the best products in category. When every
// product is excluded it retries once without exclusions. An empty category
// returns an empty slice.
func (e *Engine) SelectTopN(lookup CategoryLookup, category catalog.Category, beneficial ingredients.Set, exclude []string, topN int) []ScoredProduct {
	products := lookup.Products(category)
	if len(products) == 0 {
		metrics.RecordSelection(category.String(), outcomeEmpty)
		return []ScoredProduct{}
	}

	outcome := outcomeSelected
	ranked := e.RankCategory(products, beneficial, exclude)
	if len(ranked) == 0 && len(exclude) > 0 {
		e.logger.Debug().
			Str("category", category.String()).
			Int("excluded", len(exclude)).
			Msg("all candidates excluded, retrying without exclusions")
		ranked = e.RankCategory(products, beneficial, nil)
		outcome = outcomeFallback
	}

	n := min(max(topN, 0), len(ranked))

	metrics.RecordSelection(category.String(), outcome)
	return ranked[:n]
}

//nolint:gocritic // hugeParam: product passed by value for immutability
func (e *Engine) withSnapshot(p catalog.Product) catalog.Product {
	if e.stats == nil {
		return p
	}
	if stats, ok := e.stats.Stats(p.ID); ok {
		return p.WithEngagement(&stats)
	}
	return p
}
