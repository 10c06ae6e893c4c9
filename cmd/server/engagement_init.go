// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package main

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/tressly/internal/breaker"
	"github.com/tomtom215/tressly/internal/catalog"
	"github.com/tomtom215/tressly/internal/config"
	"github.com/tomtom215/tressly/internal/engagement"
	"github.com/tomtom215/tressly/internal/logging"
)

// engagementStore is the configured engagement backend plus the handles
// main needs for seeding and shutdown.
type engagementStore struct {
	engagement.Store

	// badger and db are nil for the remote backend.
	badger *engagement.BadgerStore
	db     *badger.DB
}

// openEngagementStore opens the backend selected by cfg.Backend.
func openEngagementStore(cfg *config.EngagementConfig) (*engagementStore, error) {
	switch cfg.Backend {
	case "remote":
		remote := engagement.NewRemoteStore(engagement.RemoteConfig{
			BaseURL:           cfg.RemoteURL,
			APIKey:            cfg.RemoteAPIKey,
			Timeout:           cfg.RemoteTimeout,
			RequestsPerSecond: cfg.RemoteRPS,
			Burst:             cfg.RemoteBurst,
			Breaker:           breakerConfig(cfg.Breaker),
		})
		logging.Info().Str("url", cfg.RemoteURL).Msg("Using remote engagement store")
		return &engagementStore{Store: remote}, nil

	case "badger", "":
		db, err := engagement.OpenBadger(cfg.BadgerPath)
		if err != nil {
			return nil, fmt.Errorf("open engagement store: %w", err)
		}
		store := engagement.NewBadgerStore(db)
		if cfg.BadgerPath == "" {
			logging.Warn().Msg("Engagement store is in-memory; counters are lost on restart")
		} else {
			logging.Info().Str("path", cfg.BadgerPath).Msg("Using BadgerDB engagement store")
		}
		return &engagementStore{Store: store, badger: store, db: db}, nil

	default:
		return nil, fmt.Errorf("unknown engagement backend %q", cfg.Backend)
	}
}

// Seed copies catalog engagement_stats into products the store has never
// seen. The remote backend owns its data and is never seeded.
func (s *engagementStore) Seed(products []catalog.Product) {
	if s.badger == nil {
		return
	}

	seeded := 0
	for _, p := range products {
		if p.Engagement == nil {
			continue
		}
		ok, err := s.badger.Seed(p.ID, *p.Engagement)
		if err != nil {
			logging.Warn().Err(err).Str("product_id", p.ID).Msg("Failed to seed engagement")
			continue
		}
		if ok {
			seeded++
		}
	}
	if seeded > 0 {
		logging.Info().Int("products", seeded).Msg("Seeded engagement from catalog")
	}
}

// Close releases the embedded database, if any.
func (s *engagementStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// breakerConfig maps a config breaker section onto breaker.Config.
func breakerConfig(b config.BreakerConfig) breaker.Config {
	return breaker.Config{
		MaxRequests:  b.MaxRequests,
		Interval:     b.Interval,
		Timeout:      b.Timeout,
		MinRequests:  b.MinRequests,
		FailureRatio: b.FailureRatio,
	}
}
