// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package engagement

import (
	"sync"

	"github.com/tomtom215/tressly/internal/catalog"
)

// Snapshots holds the latest known counters per product for scoring.
// It implements recommend.StatsSource and is safe for concurrent use.
type Snapshots struct {
	mu    sync.RWMutex
	stats map[string]catalog.EngagementStats
}

// NewSnapshots creates an empty snapshot cache.
func NewSnapshots() *Snapshots {
	return &Snapshots{stats: make(map[string]catalog.EngagementStats)}
}

// Stats returns the snapshot for productID.
func (s *Snapshots) Stats(productID string) (catalog.EngagementStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.stats[productID]
	return st, ok
}

// Set records a fresh snapshot for productID. A timestamped snapshot older
// than the current one is ignored.
//
//nolint:gocritic // hugeParam: stats passed by value for immutability
func (s *Snapshots) Set(productID string, stats catalog.EngagementStats) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.stats[productID]; ok && !stats.LastUpdated.IsZero() && stats.LastUpdated.Before(cur.LastUpdated) {
		return
	}
	s.stats[productID] = stats
}

// Merge records several snapshots.
func (s *Snapshots) Merge(batch map[string]catalog.EngagementStats) {
	for id, st := range batch {
		s.Set(id, st)
	}
}

// Len returns the number of products with a snapshot.
func (s *Snapshots) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stats)
}
