// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tressly/internal/catalog"
	"github.com/tomtom215/tressly/internal/metrics"
)

// ErrEmptyCatalog is returned when a reload yields no products. The
// previous catalog stays in place.
var ErrEmptyCatalog = errors.New("reloaded catalog is empty")

// CatalogLoader reads the catalog source. Satisfied by *catalog.Loader.
type CatalogLoader interface {
	Load() ([]catalog.Product, error)
}

// CatalogIndex is rebuilt on each successful reload. Satisfied by *catalog.Index.
type CatalogIndex interface {
	Rebuild(products []catalog.Product)
	CategoryCounts() map[catalog.Category]int
}

// ReloadHook runs after the index has been rebuilt.
type ReloadHook func(ctx context.Context, products []catalog.Product) error

// CatalogReloadService rebuilds the catalog index whenever its trigger
// fires, typically on SIGHUP. Sessions already open keep the products they
// were shown; new selections and rerolls see the new catalog.
type CatalogReloadService struct {
	loader  CatalogLoader
	index   CatalogIndex
	trigger <-chan struct{}
	hooks   []ReloadHook
	logger  zerolog.Logger
}

// NewCatalogReloadService creates a reload service listening on trigger.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogReloadService(loader CatalogLoader, index CatalogIndex, trigger <-chan struct{}, logger zerolog.Logger) *CatalogReloadService {
	return &CatalogReloadService{
		loader:  loader,
		index:   index,
		trigger: trigger,
		logger:  logger.With().Str("service", "catalog-reloader").Logger(),
	}
}

// OnReload registers a hook that runs after every successful reload.
func (s *CatalogReloadService) OnReload(hook ReloadHook) {
	s.hooks = append(s.hooks, hook)
}

// Serve implements suture.Service.
func (s *CatalogReloadService) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-s.trigger:
			if !ok {
				return nil
			}
			if err := s.Reload(ctx); err != nil {
				s.logger.Error().Err(err).Msg("Catalog reload failed, keeping previous catalog")
			}
		}
	}
}

// Reload loads the catalog and swaps it into the index.
func (s *CatalogReloadService) Reload(ctx context.Context) error {
	products, err := s.loader.Load()
	if err == nil && len(products) == 0 {
		err = ErrEmptyCatalog
	}
	if err != nil {
		metrics.RecordCatalogReload(nil, err)
		return err
	}

	s.index.Rebuild(products)

	counts := s.index.CategoryCounts()
	labelled := make(map[string]int, len(counts))
	for c, n := range counts {
		labelled[c.String()] = n
	}
	metrics.RecordCatalogReload(labelled, nil)

	s.logger.Info().Int("products", len(products)).Msg("Catalog reloaded")

	for _, hook := range s.hooks {
		if err := hook(ctx, products); err != nil {
			s.logger.Warn().Err(err).Msg("Catalog reload hook failed")
		}
	}
	return nil
}

// String implements fmt.Stringer.
func (s *CatalogReloadService) String() string {
	return "catalog-reloader"
}
