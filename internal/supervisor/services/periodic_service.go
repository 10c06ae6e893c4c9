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

// Task is one run of a periodic job.
type Task func(ctx context.Context) error

// PeriodicConfig controls a PeriodicService.
type PeriodicConfig struct {
	// Name identifies the service in suture events and logs.
	Name string

	// Interval between runs. Must be positive.
	Interval time.Duration

	// RunOnStart runs the task once before the first tick.
	RunOnStart bool

	// Timeout bounds a single run. Zero means Interval.
	Timeout time.Duration
}

// PeriodicService runs a task on a ticker until its context ends.
// A failed run is logged and retried on the next tick; it never crashes
// the service, so a flaky dependency does not trip the supervisor backoff.
type PeriodicService struct {
	task   Task
	config PeriodicConfig
	logger zerolog.Logger
}

// NewPeriodicService creates a periodic service. A non-positive interval
// defaults to one minute.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPeriodicService(task Task, cfg PeriodicConfig, logger zerolog.Logger) *PeriodicService {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = cfg.Interval
	}
	if cfg.Name == "" {
		cfg.Name = "periodic"
	}
	return &PeriodicService{
		task:   task,
		config: cfg,
		logger: logger.With().Str("service", cfg.Name).Logger(),
	}
}

// Serve implements suture.Service.
func (s *PeriodicService) Serve(ctx context.Context) error {
	s.logger.Debug().
		Bool("run_on_start", s.config.RunOnStart).
		Dur("interval", s.config.Interval).
		Msg("Periodic service starting")

	if s.config.RunOnStart {
		s.run(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug().Msg("Periodic service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *PeriodicService) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	if err := s.task(runCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("Periodic task failed")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("Periodic task complete")
}

// String implements fmt.Stringer.
func (s *PeriodicService) String() string {
	return s.config.Name
}
