// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

// Package logging provides centralized zerolog-based structured logging for Tressly.
//
// JSON output is the default; console output is available for local
// development. Every entry carries service=tressly and a timestamp.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  cfg.Logging.Level,
//	    Format: cfg.Logging.Format,
//	    Caller: cfg.Logging.Caller,
//	})
//
//	logging.Info().Int("products", n).Msg("Catalog loaded")
//	logging.Error().Err(err).Msg("Engagement refresh failed")
//
// # Components
//
// Long-lived components take a child logger rather than using the globals:
//
//	logger := logging.WithComponent("session")
//
// # Request Context
//
// The API stores the chi request id and the current session id on the
// request context; Ctx adds both to every entry. Session ids are masked
// with MaskID because they act as bearer handles.
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Feedback rejected")
//
// # slog
//
// SlogHandler adapts zerolog to log/slog for the suture supervisor event
// hook (sutureslog), so supervisor restarts land in the same stream.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging
