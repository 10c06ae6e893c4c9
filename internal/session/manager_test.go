// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package session

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tressly/internal/catalog"
	"github.com/tomtom215/tressly/internal/ingredients"
	"github.com/tomtom215/tressly/internal/recommend"
)

// stubProfiles resolves every profile except "curly" to "default".
type stubProfiles struct{}

func (stubProfiles) Resolve(profile string) (string, ingredients.Set) {
	if profile == "curly" {
		return "curly", ingredients.NewSet([]string{"shea butter"})
	}
	return "default", ingredients.NewSet(nil)
}

func newTestManager(t *testing.T, cfg ManagerConfig) (*Manager, *recordingEmitter) {
	t.Helper()

	engine, err := recommend.NewEngine(nil, nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	emitter := &recordingEmitter{}
	m := NewManager(cfg, Deps{
		Selector: engine,
		Catalog:  testCatalog(),
		Emitter:  emitter,
		Logger:   zerolog.Nop(),
	}, stubProfiles{})
	return m, emitter
}

func TestManager_CreateAndGet(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, ManagerConfig{TTL: time.Minute})

	s, err := m.Create("curly")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if s.ID() == "" || s.Profile() != "curly" {
		t.Errorf("session id=%q profile=%q", s.ID(), s.Profile())
	}
	if _, ok := s.Selection(catalog.Shampoo); !ok {
		t.Error("Create should run Init")
	}

	got, err := m.Get(s.ID())
	if err != nil || got != s {
		t.Errorf("Get() = %p, %v; want %p", got, err, s)
	}

	other, _ := m.Create("unknown-type")
	if other.Profile() != "default" {
		t.Errorf("unknown profile resolved to %q, want default", other.Profile())
	}
	if other.ID() == s.ID() {
		t.Error("session ids must be unique")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestManager_GetUnknown(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, ManagerConfig{TTL: time.Minute})
	if _, err := m.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() error = %v, want ErrSessionNotFound", err)
	}
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, ManagerConfig{TTL: time.Minute})
	s, _ := m.Create("curly")
	m.Delete(s.ID())

	if _, err := m.Get(s.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() after Delete error = %v", err)
	}
}

func TestManager_SweepExpired(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, ManagerConfig{TTL: 10 * time.Millisecond})
	s, _ := m.Create("curly")

	time.Sleep(30 * time.Millisecond)

	if evicted := m.Sweep(); evicted != 1 {
		t.Errorf("Sweep() = %d, want 1", evicted)
	}
	if _, err := m.Get(s.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expired session Get() error = %v", err)
	}
}

func TestManager_MaxSessions(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t, ManagerConfig{TTL: time.Minute, MaxSessions: 2})

	for i := 0; i < 2; i++ {
		if _, err := m.Create("curly"); err != nil {
			t.Fatalf("Create() #%d error = %v", i, err)
		}
	}
	if _, err := m.Create("curly"); !errors.Is(err, ErrTooManySessions) {
		t.Errorf("Create() over limit error = %v, want ErrTooManySessions", err)
	}
}

func TestManager_MaxSessionsConcurrent(t *testing.T) {
	t.Parallel()

	const limit = 5
	m, _ := newTestManager(t, ManagerConfig{TTL: time.Minute, MaxSessions: limit})

	var created, rejected atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Create("curly")
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, ErrTooManySessions):
				rejected.Add(1)
			default:
				t.Errorf("Create() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if created.Load() != limit || rejected.Load() != 50-limit {
		t.Errorf("created %d, rejected %d; want %d and %d", created.Load(), rejected.Load(), limit, 50-limit)
	}
	if m.Len() != limit {
		t.Errorf("Len() = %d, want %d", m.Len(), limit)
	}
}
