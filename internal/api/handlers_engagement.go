// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/tressly/internal/catalog"
	"github.com/tomtom215/tressly/internal/engagement"
	"github.com/tomtom215/tressly/internal/logging"
)

// GetProduct returns a catalog product with its current engagement snapshot.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := h.product(w, r)
	if !ok {
		return
	}

	stats, err := h.deps.Engagement.Get(r.Context(), p.ID)
	if err != nil {
		// The product is still useful without counters.
		logging.Ctx(r.Context()).Warn().Err(err).Str("product_id", p.ID).Msg("Engagement lookup failed")
		NewResponseWriter(w, r).Success(p)
		return
	}
	NewResponseWriter(w, r).Success(p.WithEngagement(&stats))
}

// GetEngagement returns the counters for one product.
//
// The response body is the EngagementStats object, which is also what
// engagement.RemoteStore expects from a peer.
func (h *Handler) GetEngagement(w http.ResponseWriter, r *http.Request) {
	p, ok := h.product(w, r)
	if !ok {
		return
	}

	stats, err := h.deps.Engagement.Get(r.Context(), p.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(stats)
}

// IncrementEngagement adds amount (default 1) to one counter and returns the
// updated stats. Every request is applied on its own; only session emissions
// are coalesced.
func (h *Handler) IncrementEngagement(w http.ResponseWriter, r *http.Request) {
	p, ok := h.product(w, r)
	if !ok {
		return
	}

	var req IncrementRequest
	if !decodeJSON(w, r, &req, defaultMaxBodyBytes, false) {
		return
	}

	field, err := engagement.ParseField(req.Field)
	if err != nil {
		respondError(w, r, err)
		return
	}
	amount := req.Amount
	if amount == 0 {
		amount = 1
	}

	stats, err := h.deps.Engagement.Add(r.Context(), p.ID, field, amount)
	if err != nil {
		respondError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(stats)
}

// BatchEngagement returns counters for ?ids=a,b,c. Ids that are not in the
// catalog are left out of the result; catalog products without stored
// counters report zeros.
func (h *Handler) BatchEngagement(w http.ResponseWriter, r *http.Request) {
	req := BatchEngagementRequest{IDs: parseCommaSeparated(r.URL.Query().Get("ids"))}
	if !validateRequest(w, r, &req) {
		return
	}

	known := make([]string, 0, len(req.IDs))
	seen := make(map[string]struct{}, len(req.IDs))
	for _, id := range req.IDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := h.deps.Catalog.Product(id); ok {
			known = append(known, id)
		}
	}

	stats, err := h.deps.Engagement.GetMany(r.Context(), known)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if stats == nil {
		stats = make(map[string]catalog.EngagementStats, len(known))
	}
	for _, id := range known {
		if _, ok := stats[id]; !ok {
			stats[id] = catalog.EngagementStats{}
		}
	}
	NewResponseWriter(w, r).Success(stats)
}

// product resolves the {productID} URL parameter, writing a 404 if unknown.
func (h *Handler) product(w http.ResponseWriter, r *http.Request) (catalog.Product, bool) {
	p, ok := h.deps.Catalog.Product(chi.URLParam(r, "productID"))
	if !ok {
		NewResponseWriter(w, r).Error(http.StatusNotFound, ErrCodeProductNotFound, "Product not found")
	}
	return p, ok
}
