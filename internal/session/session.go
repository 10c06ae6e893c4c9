// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tressly/internal/catalog"
	"github.com/tomtom215/tressly/internal/engagement"
	"github.com/tomtom215/tressly/internal/ingredients"
	"github.com/tomtom215/tressly/internal/metrics"
	"github.com/tomtom215/tressly/internal/recommend"
)

// MaxRecentlyExcluded is the per-category reroll history length.
const MaxRecentlyExcluded = 5

// Selector picks the best products for a category.
// This is typically implemented by recommend.Engine.
type Selector interface {
	SelectTopN(lookup recommend.CategoryLookup, category catalog.Category, beneficial ingredients.Set, exclude []string, topN int) []recommend.ScoredProduct
}

// FeedbackKind is a user's verdict on a shown product.
type FeedbackKind string

// Feedback kinds.
const (
	Like    FeedbackKind = "like"
	Dislike FeedbackKind = "dislike"
)

// Valid reports whether k is a known feedback kind.
func (k FeedbackKind) Valid() bool {
	return k == Like || k == Dislike
}

func (k FeedbackKind) field() engagement.Field {
	if k == Like {
		return engagement.Likes
	}
	return engagement.Dislikes
}

// Deps are the collaborators a session transitions against.
type Deps struct {
	Selector Selector
	Catalog  recommend.CategoryLookup
	Emitter  engagement.Emitter
	Logger   zerolog.Logger
}

// Session is one user's recommendation state. Every transition holds the
// session lock for its whole duration.
type Session struct {
	mu sync.Mutex

	id         string
	profile    string
	beneficial ingredients.Set
	createdAt  time.Time
	deps       Deps
	logger     zerolog.Logger

	selection        map[catalog.Category]recommend.ScoredProduct
	locked           map[string]struct{}
	recentlyExcluded map[catalog.Category][]string
	tracked          map[string]struct{}
}

// New creates an empty session. Call Init to populate the selection.
//
//nolint:gocritic // hugeParam: deps passed by value at construction only
func New(id, profile string, beneficial ingredients.Set, deps Deps) *Session {
	return &Session{
		id:               id,
		profile:          profile,
		beneficial:       beneficial,
		createdAt:        time.Now().UTC(),
		deps:             deps,
		logger:           deps.Logger.With().Str("component", "session").Str("session_id", id).Logger(),
		selection:        make(map[catalog.Category]recommend.ScoredProduct),
		locked:           make(map[string]struct{}),
		recentlyExcluded: make(map[catalog.Category][]string),
		tracked:          make(map[string]struct{}),
	}
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Profile returns the hair-type profile the session was created for.
func (s *Session) Profile() string {
	return s.profile
}

// Init selects the top product for every routine category, honoring the
// current exclusion history, then records views for what is shown.
func (s *Session) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range catalog.RoutineCategories() {
		s.selectLocked(c)
	}
	s.markViewedLocked()

	s.logger.Debug().Int("selected", len(s.selection)).Msg("session initialized")
}

// ToggleLock flips the lock on productID and returns the new state. Locking
// counts as adding the product to the routine.
func (s *Session) ToggleLock(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.locked[productID]; ok {
		delete(s.locked, productID)
		return false
	}

	s.locked[productID] = struct{}{}
	s.emit(productID, engagement.Routines)
	return true
}

// Reroll replaces the shown product in every category whose selection is
// present and unlocked. The replaced id joins the category's exclusion
// history. It returns the categories that were rerolled.
func (s *Session) Reroll() []catalog.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rerolled []catalog.Category
	newlySelected := make([]string, 0, len(s.selection))

	for _, c := range catalog.RoutineCategories() {
		current, ok := s.selection[c]
		if !ok || s.isLocked(current.Product.ID) {
			continue
		}

		s.pushExcluded(c, current.Product.ID)
		s.emit(current.Product.ID, engagement.Rerolls)
		metrics.RecordReroll(c.String())

		if s.selectLocked(c) {
			newlySelected = append(newlySelected, s.selection[c].Product.ID)
		}
		rerolled = append(rerolled, c)
	}

	for _, id := range newlySelected {
		if !s.isLocked(id) {
			delete(s.tracked, id)
		}
	}

	return rerolled
}

// MarkViewed records a view for every shown, unlocked product not already
// counted in this session.
func (s *Session) MarkViewed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markViewedLocked()
}

// SaveRoutine records every locked product as added to a routine and
// returns their ids in sorted order. Session state is unchanged.
func (s *Session) SaveRoutine() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.lockedIDs()
	for _, id := range ids {
		s.emit(id, engagement.Routines)
	}
	metrics.SessionRoutinesSavedTotal.Inc()

	s.logger.Info().Strs("product_ids", ids).Msg("routine saved")
	return ids
}

// Feedback records a like or dislike for a product currently shown.
func (s *Session) Feedback(productID string, kind FeedbackKind) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown feedback kind %q", kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isShown(productID) {
		return fmt.Errorf("%w: %s is not shown in this session", catalog.ErrProductNotFound, productID)
	}
	s.emit(productID, kind.field())
	return nil
}

// Selection returns the product currently shown for c.
func (s *Session) Selection(c catalog.Category) (recommend.ScoredProduct, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, ok := s.selection[c]
	return sp, ok
}

// RecentlyExcluded returns a copy of the exclusion history for c, oldest
// first.
func (s *Session) RecentlyExcluded(c catalog.Category) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.recentlyExcluded[c]...)
}

// IsLocked reports whether productID is locked.
func (s *Session) IsLocked(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLocked(productID)
}

// selectLocked replaces the selection for c using its exclusion history and
// reports whether a product was selected. The caller holds s.mu.
func (s *Session) selectLocked(c catalog.Category) bool {
	picks := s.deps.Selector.SelectTopN(s.deps.Catalog, c, s.beneficial, s.recentlyExcluded[c], 1)
	if len(picks) == 0 {
		delete(s.selection, c)
		return false
	}
	s.selection[c] = picks[0]
	return true
}

func (s *Session) markViewedLocked() {
	for _, c := range catalog.RoutineCategories() {
		sp, ok := s.selection[c]
		if !ok {
			continue
		}
		id := sp.Product.ID
		if s.isLocked(id) {
			continue
		}
		if _, seen := s.tracked[id]; seen {
			continue
		}
		s.tracked[id] = struct{}{}
		s.emit(id, engagement.Views)
	}
}

// pushExcluded appends id to the history for c, keeping the newest
// MaxRecentlyExcluded entries.
func (s *Session) pushExcluded(c catalog.Category, id string) {
	history := append(s.recentlyExcluded[c], id)
	if len(history) > MaxRecentlyExcluded {
		trimmed := make([]string, MaxRecentlyExcluded)
		copy(trimmed, history[len(history)-MaxRecentlyExcluded:])
		history = trimmed
	}
	s.recentlyExcluded[c] = history
}

func (s *Session) isLocked(id string) bool {
	_, ok := s.locked[id]
	return ok
}

func (s *Session) isShown(id string) bool {
	for _, sp := range s.selection {
		if sp.Product.ID == id {
			return true
		}
	}
	return false
}

func (s *Session) lockedIDs() []string {
	ids := make([]string, 0, len(s.locked))
	for id := range s.locked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Session) emit(productID string, field engagement.Field) {
	if s.deps.Emitter == nil {
		return
	}
	s.deps.Emitter.Emit(productID, field)
}
