// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SnapshotRefresher reloads engagement snapshots for a set of products and
// records the refresh metrics. Satisfied by *engagement.Tracker.
type SnapshotRefresher interface {
	Refresh(ctx context.Context, productIDs []string) error
}

// ProductLister returns the ids currently in the catalog.
// Satisfied by *catalog.Index.
type ProductLister interface {
	IDs() []string
}

// NewSnapshotRefreshService keeps scoring snapshots in step with the
// engagement store. Writes made through this process update snapshots
// directly; the periodic refresh picks up writes made by other replicas
// sharing a remote store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSnapshotRefreshService(refresher SnapshotRefresher, products ProductLister, interval time.Duration, logger zerolog.Logger) *PeriodicService {
	task := func(ctx context.Context) error {
		return refresher.Refresh(ctx, products.IDs())
	}
	return NewPeriodicService(task, PeriodicConfig{
		Name:       "snapshot-refresher",
		Interval:   interval,
		RunOnStart: true,
	}, logger)
}
