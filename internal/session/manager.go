// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tressly/internal/cache"
	"github.com/tomtom215/tressly/internal/ingredients"
	"github.com/tomtom215/tressly/internal/metrics"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session ids.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTooManySessions is returned when the live session limit is reached.
	ErrTooManySessions = errors.New("too many active sessions")
)

// ProfileResolver maps a requested hair-type profile to its canonical name
// and beneficial ingredient list. Unknown profiles resolve to a default.
type ProfileResolver interface {
	Resolve(profile string) (name string, beneficial ingredients.Set)
}

// ManagerConfig bounds session lifetime and count.
type ManagerConfig struct {
	// TTL is how long an idle session is kept.
	TTL time.Duration

	// MaxSessions caps live sessions. Zero means unlimited.
	MaxSessions int
}

// Manager creates and tracks live sessions.
type Manager struct {
	cfg      ManagerConfig
	deps     Deps
	profiles ProfileResolver
	sessions *cache.Cache[*Session]
	logger   zerolog.Logger

	// createMu makes the limit check and insert in Create atomic.
	createMu sync.Mutex
}

// NewManager creates a session manager.
//
//nolint:gocritic // hugeParam: deps passed by value at construction only
func NewManager(cfg ManagerConfig, deps Deps, profiles ProfileResolver) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	return &Manager{
		cfg:      cfg,
		deps:     deps,
		profiles: profiles,
		sessions: cache.New[*Session](cfg.TTL),
		logger:   deps.Logger.With().Str("component", "session_manager").Logger(),
	}
}

// Create starts a session for profile and runs Init.
func (m *Manager) Create(profile string) (*Session, error) {
	m.createMu.Lock()
	defer m.createMu.Unlock()

	if m.cfg.MaxSessions > 0 && m.sessions.Len() >= m.cfg.MaxSessions {
		m.Sweep()
		if m.sessions.Len() >= m.cfg.MaxSessions {
			return nil, fmt.Errorf("%w: limit %d", ErrTooManySessions, m.cfg.MaxSessions)
		}
	}

	name, beneficial := m.profiles.Resolve(profile)
	s := New(uuid.NewString(), name, beneficial, m.deps)
	s.Init()

	m.sessions.Set(s.ID(), s)
	metrics.SessionsCreatedTotal.WithLabelValues(name).Inc()
	metrics.SessionsActive.Set(float64(m.sessions.Len()))

	m.logger.Info().
		Str("session_id", s.ID()).
		Str("profile", name).
		Int("beneficial_ingredients", beneficial.Len()).
		Msg("Session created")

	return s, nil
}

// Get returns a live session and extends its lifetime.
func (m *Manager) Get(id string) (*Session, error) {
	s, ok := m.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	m.sessions.Touch(id)
	return s, nil
}

// Delete ends a session.
func (m *Manager) Delete(id string) {
	m.sessions.Delete(id)
	metrics.SessionsActive.Set(float64(m.sessions.Len()))
}

// Sweep drops expired sessions and returns how many were removed.
func (m *Manager) Sweep() int {
	evicted := m.sessions.Cleanup()
	metrics.SessionsActive.Set(float64(m.sessions.Len()))
	if evicted > 0 {
		m.logger.Debug().Int("evicted", evicted).Int("active", m.sessions.Len()).Msg("Expired sessions swept")
	}
	return evicted
}

// Len returns the number of stored sessions.
func (m *Manager) Len() int {
	return m.sessions.Len()
}
