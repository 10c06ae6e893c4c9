// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package engagement

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/tressly/internal/catalog"
	"github.com/tomtom215/tressly/internal/metrics"
)

// Key prefix for BadgerDB storage
const statsKeyPrefix = "engagement:"

// maxConflictRetries bounds retries of an increment that lost an optimistic
// transaction race.
const maxConflictRetries = 5

// BadgerStore implements Store using BadgerDB for durable storage.
// Increments from this process are serialized; conflicts with other writers
// sharing the database are retried.
type BadgerStore struct {
	db  *badger.DB
	now func() time.Time

	writeMu sync.Mutex
}

// NewBadgerStore creates a new BadgerDB-backed engagement store.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db, now: time.Now}
}

// OpenBadger opens (or creates) a BadgerDB at dir. An empty dir opens an
// in-memory database.
func OpenBadger(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", dir, err)
	}
	return db, nil
}

func statsKey(productID string) []byte {
	return []byte(statsKeyPrefix + productID)
}

// Get retrieves the counters for a product.
func (s *BadgerStore) Get(ctx context.Context, productID string) (catalog.EngagementStats, error) {
	var stats catalog.EngagementStats

	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stats, _, err = readStats(txn, productID)
		return err
	})
	if err != nil {
		return catalog.EngagementStats{}, fmt.Errorf("get engagement %s: %w", productID, err)
	}
	return stats, nil
}

// GetMany retrieves counters for several products in one read transaction.
// Products with no stored counters are omitted.
func (s *BadgerStore) GetMany(ctx context.Context, productIDs []string) (map[string]catalog.EngagementStats, error) {
	out := make(map[string]catalog.EngagementStats, len(productIDs))

	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range productIDs {
			if err := ctx.Err(); err != nil {
				return err
			}
			stats, found, err := readStats(txn, id)
			if err != nil {
				return fmt.Errorf("read %s: %w", id, err)
			}
			if found {
				out[id] = stats
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get engagement batch: %w", err)
	}
	return out, nil
}

// Increment adds amount to field and returns the updated counters.
// Conflicting concurrent writers are retried.
func (s *BadgerStore) Increment(ctx context.Context, productID string, field Field, amount int) (catalog.EngagementStats, error) {
	if !field.Valid() {
		return catalog.EngagementStats{}, fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	start := time.Now()
	var stats catalog.EngagementStats
	var err error

	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
			break
		}
		err = s.db.Update(func(txn *badger.Txn) error {
			current, _, readErr := readStats(txn, productID)
			if readErr != nil {
				return readErr
			}
			if applyErr := Apply(&current, field, amount); applyErr != nil {
				return applyErr
			}
			current.LastUpdated = s.now().UTC()

			data, marshalErr := json.Marshal(current)
			if marshalErr != nil {
				return fmt.Errorf("marshal stats: %w", marshalErr)
			}
			if setErr := txn.Set(statsKey(productID), data); setErr != nil {
				return fmt.Errorf("set stats: %w", setErr)
			}
			stats = current
			return nil
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}

	metrics.RecordEngagementIncrement("badger", field.String(), time.Since(start), err)
	if err != nil {
		return catalog.EngagementStats{}, fmt.Errorf("increment %s.%s: %w", productID, field, err)
	}
	return stats, nil
}

// Seed writes stats for a product unless the store already holds counters
// for it. It is used to carry engagement from the catalog file into a fresh
// store.
//
//nolint:gocritic // hugeParam: stats passed by value for immutability
func (s *BadgerStore) Seed(productID string, stats catalog.EngagementStats) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	seeded := false
	err := s.db.Update(func(txn *badger.Txn) error {
		_, found, err := readStats(txn, productID)
		if err != nil || found {
			return err
		}
		data, err := json.Marshal(stats)
		if err != nil {
			return fmt.Errorf("marshal stats: %w", err)
		}
		seeded = true
		return txn.Set(statsKey(productID), data)
	})
	if err != nil {
		return false, fmt.Errorf("seed engagement %s: %w", productID, err)
	}
	return seeded, nil
}

// readStats loads the counters for productID. Missing keys read as zero.
func readStats(txn *badger.Txn, productID string) (catalog.EngagementStats, bool, error) {
	var stats catalog.EngagementStats

	item, err := txn.Get(statsKey(productID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return stats, false, nil
	}
	if err != nil {
		return stats, false, fmt.Errorf("get stats: %w", err)
	}

	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &stats)
	})
	if err != nil {
		return stats, false, fmt.Errorf("decode stats: %w", err)
	}
	return stats, true, nil
}
