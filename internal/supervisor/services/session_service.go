// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SessionSweeper evicts expired sessions and reports how many it removed.
// Satisfied by *session.Manager.
type SessionSweeper interface {
	Sweep() int
}

// NewSessionSweepService evicts idle sessions every interval.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSessionSweepService(sweeper SessionSweeper, interval time.Duration, logger zerolog.Logger) *PeriodicService {
	task := func(context.Context) error {
		sweeper.Sweep()
		return nil
	}
	return NewPeriodicService(task, PeriodicConfig{
		Name:     "session-sweeper",
		Interval: interval,
	}, logger)
}
