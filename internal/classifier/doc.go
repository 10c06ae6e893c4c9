// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

// Package classifier talks to the external hair-type classifier and maps its
// labels to beneficial ingredient profiles.
//
// The classifier accepts POST /api/analyze with {"image": "<base64 or data
// URL>"} and answers {"classification": {"curly": 0.7, ...}}. Calls go
// through a circuit breaker; 4xx answers are reported as ErrInvalidImage and
// do not count against the circuit.
package classifier
