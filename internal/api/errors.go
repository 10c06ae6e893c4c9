// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/tressly/internal/auth"
	"github.com/tomtom215/tressly/internal/breaker"
	"github.com/tomtom215/tressly/internal/catalog"
	"github.com/tomtom215/tressly/internal/classifier"
	"github.com/tomtom215/tressly/internal/engagement"
	"github.com/tomtom215/tressly/internal/logging"
	"github.com/tomtom215/tressly/internal/session"
)

// ErrClassifierDisabled is returned by /classify when no classifier is configured.
var ErrClassifierDisabled = errors.New("classifier is not enabled")

// errorMapping binds a sentinel error to a response.
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// errorMappings is checked in order with errors.Is; the first match wins.
var errorMappings = []errorMapping{
	{auth.ErrInvalidToken, http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid or expired session token"},
	{session.ErrSessionNotFound, http.StatusNotFound, ErrCodeSessionNotFound, "Session not found or expired"},
	{session.ErrTooManySessions, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Too many active sessions, try again later"},
	{catalog.ErrProductNotFound, http.StatusNotFound, ErrCodeProductNotFound, "Product not found"},
	{engagement.ErrUnknownField, http.StatusBadRequest, ErrCodeBadRequest, "Unknown engagement field"},
	{classifier.ErrInvalidImage, http.StatusBadRequest, ErrCodeBadRequest, "Image was rejected by the classifier"},
	{ErrClassifierDisabled, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Hair-type classification is not enabled"},
}

// respondError maps err to a status code and writes the error envelope.
// Unmapped errors become 500s and are logged; mapped ones are logged at debug.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)
	logger := logging.Ctx(r.Context())

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			logger.Debug().Err(err).Int("status", m.status).Msg("Request failed")
			rw.Error(m.status, m.code, m.message)
			return
		}
	}

	switch {
	case breaker.IsRejection(err):
		logger.Warn().Err(err).Msg("Dependency circuit open")
		rw.ServiceUnavailable("A dependency is temporarily unavailable, try again later")
	case errors.Is(err, classifier.ErrUnavailable):
		rw.ExternalServiceError("classifier", err)
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn().Err(err).Msg("Request timed out")
		rw.Error(http.StatusGatewayTimeout, ErrCodeServiceUnavailable, "Request timed out")
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to tell it.
		logger.Debug().Err(err).Msg("Request canceled")
	default:
		logger.Error().Err(err).Msg("Unhandled request error")
		rw.InternalError("An internal error occurred")
	}
}
