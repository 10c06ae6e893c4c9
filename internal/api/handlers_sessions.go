// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/tressly/internal/catalog"
	"github.com/tomtom215/tressly/internal/logging"
	"github.com/tomtom215/tressly/internal/session"
)

type sessionContextKey struct{}

// SessionResponse is a session view, with the token on creation.
type SessionResponse struct {
	Token   string       `json:"token,omitempty"`
	Session session.View `json:"session"`
}

// LockResponse is returned by ToggleLock.
type LockResponse struct {
	ProductID string       `json:"product_id"`
	Locked    bool         `json:"locked"`
	Session   session.View `json:"session"`
}

// RerollResponse lists the categories whose product changed.
type RerollResponse struct {
	Changed []catalog.Category `json:"changed"`
	Session session.View       `json:"session"`
}

// RoutineResponse lists the product ids saved to the routine.
type RoutineResponse struct {
	ProductIDs []string `json:"product_ids"`
}

// FeedbackResponse echoes recorded feedback.
type FeedbackResponse struct {
	ProductID string `json:"product_id"`
	Kind      string `json:"kind"`
}

// SessionContext resolves the {token} URL parameter to a live session.
// Invalid tokens get 401, expired or unknown sessions 404.
func (h *Handler) SessionContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.deps.Tokens.ValidateToken(chi.URLParam(r, "token"))
		if err != nil {
			respondError(w, r, err)
			return
		}

		s, err := h.deps.Sessions.Get(claims.SessionID)
		if err != nil {
			respondError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey{}, s)
		ctx = logging.ContextWithSessionID(ctx, s.ID())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFromContext returns the session SessionContext stored.
func sessionFromContext(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionContextKey{}).(*session.Session)
	return s
}

// CreateSession starts a session for a hair-type profile and returns the
// initial selection together with a signed token.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !decodeJSON(w, r, &req, defaultMaxBodyBytes, true) {
		return
	}

	resp, err := h.startSession(req.Profile)
	if err != nil {
		respondError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(resp)
}

func (h *Handler) startSession(profile string) (SessionResponse, error) {
	s, err := h.deps.Sessions.Create(profile)
	if err != nil {
		return SessionResponse{}, err
	}

	token, err := h.deps.Tokens.GenerateToken(s.ID(), s.Profile())
	if err != nil {
		h.deps.Sessions.Delete(s.ID())
		return SessionResponse{}, err
	}

	return SessionResponse{Token: token, Session: s.View()}, nil
}

// GetSession returns the current view.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())
	NewResponseWriter(w, r).Success(SessionResponse{Session: s.View()})
}

// DeleteSession ends a session. The token stays cryptographically valid
// until it expires but no longer resolves.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())
	h.deps.Sessions.Delete(s.ID())
	logging.Ctx(r.Context()).Info().Msg("Session ended")
	NewResponseWriter(w, r).NoContent()
}

// ToggleLock flips the lock on a product. Products not in the catalog are
// rejected; a product that is not currently shown may still be locked.
func (h *Handler) ToggleLock(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if _, ok := h.deps.Catalog.Product(productID); !ok {
		NewResponseWriter(w, r).Error(http.StatusNotFound, ErrCodeProductNotFound, "Product not found")
		return
	}

	s := sessionFromContext(r.Context())
	locked := s.ToggleLock(productID)

	logging.Ctx(r.Context()).Debug().
		Str("product_id", sanitizeLogValue(productID)).
		Bool("locked", locked).
		Msg("Lock toggled")

	NewResponseWriter(w, r).Success(LockResponse{
		ProductID: productID,
		Locked:    locked,
		Session:   s.View(),
	})
}

// Reroll replaces every unlocked selection and records views for the new
// products.
func (h *Handler) Reroll(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())

	changed := s.Reroll()
	s.MarkViewed()

	if changed == nil {
		changed = []catalog.Category{}
	}
	NewResponseWriter(w, r).Success(RerollResponse{
		Changed: changed,
		Session: s.View(),
	})
}

// SaveRoutine records every locked product as added to a routine.
func (h *Handler) SaveRoutine(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())

	ids := s.SaveRoutine()
	if ids == nil {
		ids = []string{}
	}
	NewResponseWriter(w, r).Success(RoutineResponse{ProductIDs: ids})
}

// Feedback records a like or dislike for a shown product.
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if !decodeJSON(w, r, &req, defaultMaxBodyBytes, false) {
		return
	}

	s := sessionFromContext(r.Context())
	if err := s.Feedback(req.ProductID, session.FeedbackKind(req.Kind)); err != nil {
		respondError(w, r, err)
		return
	}

	NewResponseWriter(w, r).Success(FeedbackResponse(req))
}
