// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package engagement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/tressly/internal/catalog"
)

// ErrUnknownField is returned for a counter name outside the Field set.
var ErrUnknownField = errors.New("unknown engagement field")

// Field names an engagement counter.
type Field string

// Engagement counters.
const (
	Likes    Field = "likes"
	Dislikes Field = "dislikes"
	Views    Field = "views"
	Routines Field = "routines"
	Rerolls  Field = "rerolls"
)

// Fields lists every counter.
var Fields = []Field{Likes, Dislikes, Views, Routines, Rerolls}

// ParseField parses a counter name, case-insensitively.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
	return f, nil
}

// Valid reports whether f is a known counter.
func (f Field) Valid() bool {
	switch f {
	case Likes, Dislikes, Views, Routines, Rerolls:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (f Field) String() string {
	return string(f)
}

// Apply adds amount to the f counter of stats. Counters never go below zero.
func Apply(stats *catalog.EngagementStats, f Field, amount int) error {
	var counter *int
	switch f {
	case Likes:
		counter = &stats.Likes
	case Dislikes:
		counter = &stats.Dislikes
	case Views:
		counter = &stats.Views
	case Routines:
		counter = &stats.Routines
	case Rerolls:
		counter = &stats.Rerolls
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}

	*counter += amount
	if *counter < 0 {
		*counter = 0
	}
	return nil
}
