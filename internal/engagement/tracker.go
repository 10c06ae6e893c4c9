// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package engagement

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tressly/internal/catalog"
	"github.com/tomtom215/tressly/internal/coalesce"
	"github.com/tomtom215/tressly/internal/metrics"
)

// Emitter is the fire-and-forget side of Tracker that session state uses.
type Emitter interface {
	Emit(productID string, field Field)
}

// Tracker coalesces engagement increments and keeps snapshots fresh.
type Tracker struct {
	store     Store
	snapshots *Snapshots
	group     coalesce.Group[catalog.EngagementStats]
	logger    zerolog.Logger

	// base is the detached context emissions run on.
	base context.Context
	wg   sync.WaitGroup
}

// NewTracker creates a tracker writing to store and refreshing snapshots.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTracker(store Store, snapshots *Snapshots, logger zerolog.Logger) *Tracker {
	if snapshots == nil {
		snapshots = NewSnapshots()
	}
	return &Tracker{
		store:     store,
		snapshots: snapshots,
		logger:    logger.With().Str("component", "engagement").Logger(),
		base:      context.Background(),
	}
}

// Snapshots returns the snapshot cache the tracker refreshes.
func (t *Tracker) Snapshots() *Snapshots {
	return t.snapshots
}

// Increment adds amount to field for productID. While a call for the same
// (productID, field) is in flight, further calls wait for it and return its
// result; their own amount is not applied separately.
func (t *Tracker) Increment(ctx context.Context, productID string, field Field, amount int) (catalog.EngagementStats, error) {
	if !field.Valid() {
		return catalog.EngagementStats{}, fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}

	key := coalesce.Key(productID, field.String())
	if t.group.Waiting(key) > 0 {
		metrics.RecordEngagementCoalesced(field.String())
	}

	stats, _, err := t.group.Do(key, func() (catalog.EngagementStats, error) {
		st, err := t.store.Increment(ctx, productID, field, amount)
		if err != nil {
			return catalog.EngagementStats{}, err
		}
		t.snapshots.Set(productID, st)
		return st, nil
	})
	return stats, err
}

// Add applies amount to field for productID without coalescing. Concurrent
// calls each reach the store, so callers that carry their own amounts (a peer
// instance, a correction) are never merged.
func (t *Tracker) Add(ctx context.Context, productID string, field Field, amount int) (catalog.EngagementStats, error) {
	if !field.Valid() {
		return catalog.EngagementStats{}, fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}
	st, err := t.store.Increment(ctx, productID, field, amount)
	if err != nil {
		return catalog.EngagementStats{}, err
	}
	t.snapshots.Set(productID, st)
	return st, nil
}

// Emit increments field by one in the background. Failures are logged and
// dropped; Emit never blocks the caller.
func (t *Tracker) Emit(productID string, field Field) {
	t.wg.Add(1)
	metrics.EngagementEmissionsInFlight.Inc()

	go func() {
		defer t.wg.Done()
		defer metrics.EngagementEmissionsInFlight.Dec()

		if _, err := t.Increment(t.base, productID, field, 1); err != nil {
			t.logger.Warn().
				Err(err).
				Str("product_id", productID).
				Str("field", field.String()).
				Msg("engagement increment failed")
		}
	}()
}

// Wait blocks until every emission started so far has finished or ctx is done.
func (t *Tracker) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get returns the current counters for productID from the store and
// refreshes its snapshot.
func (t *Tracker) Get(ctx context.Context, productID string) (catalog.EngagementStats, error) {
	st, err := t.store.Get(ctx, productID)
	if err != nil {
		return catalog.EngagementStats{}, err
	}
	t.snapshots.Set(productID, st)
	return st, nil
}

// GetMany returns counters for productIDs and refreshes their snapshots.
func (t *Tracker) GetMany(ctx context.Context, productIDs []string) (map[string]catalog.EngagementStats, error) {
	batch, err := t.store.GetMany(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	t.snapshots.Merge(batch)
	return batch, nil
}

// Refresh reloads snapshots for productIDs from the store.
func (t *Tracker) Refresh(ctx context.Context, productIDs []string) error {
	_, err := t.GetMany(ctx, productIDs)
	metrics.RecordSnapshotRefresh(t.snapshots.Len(), err)
	if err != nil {
		return fmt.Errorf("refresh snapshots: %w", err)
	}
	t.logger.Debug().Int("products", len(productIDs)).Int("snapshots", t.snapshots.Len()).Msg("snapshots refreshed")
	return nil
}
