// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package engagement

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tressly/internal/catalog"
	"github.com/tomtom215/tressly/internal/coalesce"
	"github.com/tomtom215/tressly/internal/metrics"
)

// mockStore is a Store whose Increment can be held open and made to fail.
type mockStore struct {
	mu       sync.Mutex
	stats    map[string]catalog.EngagementStats
	calls    atomic.Int32
	release  chan struct{}
	failWith error
}

func newMockStore() *mockStore {
	return &mockStore{stats: make(map[string]catalog.EngagementStats)}
}

func (m *mockStore) Get(_ context.Context, id string) (catalog.EngagementStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats[id], nil
}

func (m *mockStore) GetMany(_ context.Context, ids []string) (map[string]catalog.EngagementStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make(map[string]catalog.EngagementStats)
	for _, id := range ids {
		if st, ok := m.stats[id]; ok {
			out[id] = st
		}
	}
	return out, nil
}

func (m *mockStore) Increment(_ context.Context, id string, field Field, amount int) (catalog.EngagementStats, error) {
	m.calls.Add(1)
	if m.release != nil {
		<-m.release
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return catalog.EngagementStats{}, m.failWith
	}
	st := m.stats[id]
	if err := Apply(&st, field, amount); err != nil {
		return catalog.EngagementStats{}, err
	}
	m.stats[id] = st
	return st, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestTracker_CoalescesConcurrentIncrements(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	store.release = make(chan struct{})
	tr := NewTracker(store, nil, zerolog.Nop())

	const callers = 2
	results := make([]catalog.EngagementStats, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			st, err := tr.Increment(context.Background(), "p1", Views, 1)
			if err != nil {
				t.Errorf("Increment() error = %v", err)
			}
			results[i] = st
		}(i)
	}

	waitFor(t, func() bool { return tr.group.Waiting(coalesce.Key("p1", "views")) == callers })
	time.Sleep(20 * time.Millisecond)
	close(store.release)
	wg.Wait()

	if got := store.calls.Load(); got != 1 {
		t.Errorf("store.Increment called %d times, want 1", got)
	}
	if results[0] != results[1] {
		t.Errorf("callers saw different results: %+v vs %+v", results[0], results[1])
	}
	if results[0].Views != 1 {
		t.Errorf("Views = %d, want 1", results[0].Views)
	}
	if st, ok := tr.Snapshots().Stats("p1"); !ok || st.Views != 1 {
		t.Errorf("snapshot = %+v, %v", st, ok)
	}
}

func TestTracker_DistinctFieldsNotCoalesced(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	tr := NewTracker(store, nil, zerolog.Nop())
	ctx := context.Background()

	_, _ = tr.Increment(ctx, "p1", Views, 1)
	_, _ = tr.Increment(ctx, "p1", Likes, 1)
	_, _ = tr.Increment(ctx, "p1", Views, 1)

	if got := store.calls.Load(); got != 3 {
		t.Errorf("store.Increment called %d times, want 3", got)
	}
	st, _ := tr.Snapshots().Stats("p1")
	if st.Views != 2 || st.Likes != 1 {
		t.Errorf("snapshot = %+v", st)
	}
}

func TestTracker_AddAppliesEveryAmount(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	store.release = make(chan struct{})
	tr := NewTracker(store, nil, zerolog.Nop())

	amounts := []int{1, 2, 3}
	var wg sync.WaitGroup
	for _, amount := range amounts {
		wg.Add(1)
		go func(amount int) {
			defer wg.Done()
			if _, err := tr.Add(context.Background(), "p1", Views, amount); err != nil {
				t.Errorf("Add() error = %v", err)
			}
		}(amount)
	}

	// All three reach the store while none has finished.
	waitFor(t, func() bool { return store.calls.Load() == int32(len(amounts)) })
	close(store.release)
	wg.Wait()

	st, _ := store.Get(context.Background(), "p1")
	if st.Views != 6 {
		t.Errorf("Views = %d, want 6", st.Views)
	}
	if snap, ok := tr.Snapshots().Stats("p1"); !ok || snap.Views == 0 {
		t.Errorf("snapshot = %+v, %v", snap, ok)
	}
	if _, err := tr.Add(context.Background(), "p1", Field("shares"), 1); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Add() error = %v, want ErrUnknownField", err)
	}
}

func TestTracker_IncrementUnknownField(t *testing.T) {
	t.Parallel()

	tr := NewTracker(newMockStore(), nil, zerolog.Nop())
	if _, err := tr.Increment(context.Background(), "p1", Field("shares"), 1); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Increment() error = %v, want ErrUnknownField", err)
	}
}

func TestTracker_EmitSwallowsFailures(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	store := newMockStore()
	store.failWith = errors.New("store offline")
	tr := NewTracker(store, nil, zerolog.New(&buf))

	tr.Emit("p1", Rerolls)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := tr.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "engagement increment failed") || !strings.Contains(out, "store offline") {
		t.Errorf("log output = %q", out)
	}
	if _, ok := tr.Snapshots().Stats("p1"); ok {
		t.Error("failed increment should not produce a snapshot")
	}
}

func TestTracker_EmitUpdatesSnapshot(t *testing.T) {
	t.Parallel()

	tr := NewTracker(newMockStore(), nil, zerolog.Nop())
	tr.Emit("p1", Routines)

	if err := tr.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	if st, ok := tr.Snapshots().Stats("p1"); !ok || st.Routines != 1 {
		t.Errorf("snapshot = %+v, %v", st, ok)
	}
}

func TestTracker_WaitHonorsContext(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	store.release = make(chan struct{})
	tr := NewTracker(store, nil, zerolog.Nop())

	tr.Emit("p1", Views)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := tr.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want DeadlineExceeded", err)
	}

	close(store.release)
	if err := tr.Wait(context.Background()); err != nil {
		t.Errorf("Wait() after release error = %v", err)
	}
}

func TestTracker_Refresh(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	store.stats["a"] = catalog.EngagementStats{Likes: 2}
	store.stats["b"] = catalog.EngagementStats{Views: 7}
	snaps := NewSnapshots()
	tr := NewTracker(store, snaps, zerolog.Nop())

	if err := tr.Refresh(context.Background(), []string{"a", "b", "c"}); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if snaps.Len() != 2 {
		t.Errorf("snapshots = %d, want 2", snaps.Len())
	}
	if st, _ := snaps.Stats("b"); st.Views != 7 {
		t.Errorf("b snapshot = %+v", st)
	}

	store.failWith = errors.New("boom")
	if err := tr.Refresh(context.Background(), []string{"a"}); err == nil {
		t.Error("Refresh() should surface store errors")
	}
}

func TestTracker_RefreshRecordsOnce(t *testing.T) {
	successes := metrics.EngagementSnapshotRefreshes.WithLabelValues("success")
	failures := metrics.EngagementSnapshotRefreshes.WithLabelValues("failure")
	okBefore := testutil.ToFloat64(successes)
	failBefore := testutil.ToFloat64(failures)

	store := newMockStore()
	store.stats["a"] = catalog.EngagementStats{Views: 1}
	tr := NewTracker(store, nil, zerolog.Nop())

	if err := tr.Refresh(context.Background(), []string{"a"}); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if got := testutil.ToFloat64(metrics.EngagementSnapshotSize); got != 1 {
		t.Errorf("snapshot size = %v, want 1", got)
	}

	store.failWith = errors.New("boom")
	_ = tr.Refresh(context.Background(), []string{"a"})

	if got := testutil.ToFloat64(successes) - okBefore; got != 1 {
		t.Errorf("success delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(failures) - failBefore; got != 1 {
		t.Errorf("failure delta = %v, want 1", got)
	}
}

func TestTracker_Get(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	store.stats["p1"] = catalog.EngagementStats{Dislikes: 3}
	tr := NewTracker(store, nil, zerolog.Nop())

	st, err := tr.Get(context.Background(), "p1")
	if err != nil || st.Dislikes != 3 {
		t.Fatalf("Get() = %+v, %v", st, err)
	}
	if snap, ok := tr.Snapshots().Stats("p1"); !ok || snap.Dislikes != 3 {
		t.Errorf("snapshot = %+v, %v", snap, ok)
	}
}
