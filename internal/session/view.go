// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package session

import (
	"time"

	"github.com/tomtom215/tressly/internal/catalog"
	"github.com/tomtom215/tressly/internal/recommend"
)

// Item is one category slot as the UI renders it.
type Item struct {
	Category  catalog.Category    `json:"category"`
	Product   catalog.Product     `json:"product"`
	Score     float64             `json:"score"`
	Percent   int                 `json:"score_percent"`
	Breakdown recommend.Breakdown `json:"breakdown"`
	Locked    bool                `json:"locked"`
}

// View is a point-in-time snapshot of a session.
type View struct {
	ID        string    `json:"id"`
	Profile   string    `json:"profile"`
	CreatedAt time.Time `json:"created_at"`

	// Items holds one entry per category with a selection, in routine order.
	Items []Item `json:"items"`

	// Locked lists locked product ids in sorted order.
	Locked []string `json:"locked"`

	// Empty lists routine categories that currently have no product.
	Empty []catalog.Category `json:"empty_categories"`
}

// View returns the current selection with scores and lock flags.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:        s.id,
		Profile:   s.profile,
		CreatedAt: s.createdAt,
		Items:     make([]Item, 0, len(s.selection)),
		Locked:    s.lockedIDs(),
		Empty:     []catalog.Category{},
	}

	for _, c := range catalog.RoutineCategories() {
		sp, ok := s.selection[c]
		if !ok {
			v.Empty = append(v.Empty, c)
			continue
		}
		v.Items = append(v.Items, Item{
			Category:  c,
			Product:   sp.Product,
			Score:     sp.Score,
			Percent:   sp.Breakdown.Percent,
			Breakdown: sp.Breakdown,
			Locked:    s.isLocked(sp.Product.ID),
		})
	}

	return v
}
