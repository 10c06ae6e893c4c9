// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package api

import (
	"net/http"

	"github.com/tomtom215/tressly/internal/logging"
)

// bodyOverhead is room for the JSON wrapper around the encoded image.
const bodyOverhead = 4 << 10

// ClassifyResponse is the classifier's distribution plus the profile it
// resolves to.
type ClassifyResponse struct {
	Classification map[string]float64 `json:"classification"`
	HairType       string             `json:"hair_type"`
	Probability    float64            `json:"probability"`
	Profile        string             `json:"profile"`
	Session        *SessionResponse   `json:"session,omitempty"`
}

// Classify forwards a photo to the classifier and resolves the most likely
// hair type to a beneficial-ingredient profile. Optionally starts a session
// for that profile in the same call.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	if h.deps.Classifier == nil {
		respondError(w, r, ErrClassifierDisabled)
		return
	}

	var req ClassifyRequest
	if !decodeJSON(w, r, &req, int64(h.deps.MaxImageBytes)+bodyOverhead, false) {
		return
	}

	pred, err := h.deps.Classifier.Analyze(r.Context(), req.Image)
	if err != nil {
		respondError(w, r, err)
		return
	}

	label, probability, _ := pred.Top()
	profile, _ := h.deps.Profiles.ResolvePrediction(pred)

	resp := ClassifyResponse{
		Classification: pred.Classification,
		HairType:       label,
		Probability:    probability,
		Profile:        profile,
	}

	logging.Ctx(r.Context()).Info().
		Str("hair_type", label).
		Float64("probability", probability).
		Str("profile", profile).
		Msg("Photo classified")

	if !req.CreateSession {
		NewResponseWriter(w, r).Success(resp)
		return
	}

	sess, err := h.startSession(profile)
	if err != nil {
		respondError(w, r, err)
		return
	}
	resp.Session = &sess
	NewResponseWriter(w, r).Created(resp)
}

// ListProfiles returns the hair-type profiles a session can be created with.
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string][]string{
		"profiles": h.deps.Profiles.Names(),
	})
}
