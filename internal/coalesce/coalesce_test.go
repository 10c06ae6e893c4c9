// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package coalesce

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// waitFor polls cond until it is true or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	if Key("ab", "c") == Key("a", "bc") {
		t.Error("Key must not collide across part boundaries")
	}
	if Key("p1", "views") != Key("p1", "views") {
		t.Error("Key must be deterministic")
	}
}

func TestGroup_CoalescesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var g Group[int]
	var calls atomic.Int32
	release := make(chan struct{})
	key := Key("p1", "views")

	fn := func() (int, error) {
		calls.Add(1)
		<-release
		return 7, nil
	}

	const callers = 5
	var wg sync.WaitGroup
	results := make([]int, callers)
	shared := make([]bool, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, sh, err := g.Do(key, fn)
			if err != nil {
				t.Errorf("Do() error = %v", err)
			}
			results[i] = v
			shared[i] = sh
		}(i)
	}

	waitFor(t, func() bool { return g.Waiting(key) == callers })
	// Waiting counts callers on entry; give the last ones time to join the call.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("fn called %d times, want 1", got)
	}
	for i := range results {
		if results[i] != 7 {
			t.Errorf("caller %d got %d, want 7", i, results[i])
		}
		if !shared[i] {
			t.Errorf("caller %d: shared = false, want true", i)
		}
	}
	if g.Waiting(key) != 0 {
		t.Errorf("Waiting() = %d after completion, want 0", g.Waiting(key))
	}
}

func TestGroup_DistinctKeysRunIndependently(t *testing.T) {
	t.Parallel()

	var g Group[string]
	var calls atomic.Int32
	release := make(chan struct{})

	fn := func(v string) func() (string, error) {
		return func() (string, error) {
			calls.Add(1)
			<-release
			return v, nil
		}
	}

	var wg sync.WaitGroup
	got := make(map[string]string)
	var mu sync.Mutex

	for _, k := range []string{Key("p1", "views"), Key("p1", "likes"), Key("p2", "views")} {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			v, _, _ := g.Do(k, fn(k))
			mu.Lock()
			got[k] = v
			mu.Unlock()
		}(k)
	}

	waitFor(t, func() bool { return calls.Load() == 3 })
	close(release)
	wg.Wait()

	for k, v := range got {
		if k != v {
			t.Errorf("key %q got result %q", k, v)
		}
	}
}

func TestGroup_EntryRemovedAfterFailure(t *testing.T) {
	t.Parallel()

	var g Group[int]
	key := Key("p1", "rerolls")
	errBoom := errors.New("boom")

	_, _, err := g.Do(key, func() (int, error) { return 0, errBoom })
	if !errors.Is(err, errBoom) {
		t.Fatalf("Do() error = %v, want %v", err, errBoom)
	}

	v, shared, err := g.Do(key, func() (int, error) { return 3, nil })
	if err != nil {
		t.Fatalf("second Do() error = %v", err)
	}
	if v != 3 || shared {
		t.Errorf("second Do() = (%d, shared=%v), want (3, false)", v, shared)
	}
}

func TestGroup_SequentialCallsAreNotShared(t *testing.T) {
	t.Parallel()

	var g Group[int]
	var calls atomic.Int32
	fn := func() (int, error) { return int(calls.Add(1)), nil }

	first, _, _ := g.Do("k", fn)
	second, _, _ := g.Do("k", fn)

	if first != 1 || second != 2 {
		t.Errorf("results = %d, %d; want 1, 2", first, second)
	}
}

func TestGroup_PointerValues(t *testing.T) {
	t.Parallel()

	type stats struct{ views int }
	var g Group[*stats]

	v, _, err := g.Do("k", func() (*stats, error) { return &stats{views: 4}, nil })
	if err != nil || v == nil || v.views != 4 {
		t.Errorf("Do() = %+v, %v", v, err)
	}

	v, _, err = g.Do("k", func() (*stats, error) { return nil, errors.New("x") })
	if err == nil || v != nil {
		t.Errorf("Do() = %+v, %v; want nil, error", v, err)
	}
}
