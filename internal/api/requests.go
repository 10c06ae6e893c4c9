// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package api

// Request bodies. Field names in validation messages follow the json tags.

// CreateSessionRequest starts a recommendation session. An empty or unknown
// profile resolves to the default hair-type profile.
type CreateSessionRequest struct {
	Profile string `json:"profile" validate:"omitempty,hairtype"`
}

// FeedbackRequest records a like or dislike on a product the session shows.
type FeedbackRequest struct {
	ProductID string `json:"product_id" validate:"required,productid"`
	Kind      string `json:"kind" validate:"required,oneof=like dislike"`
}

// IncrementRequest adjusts one engagement counter. Amount defaults to 1;
// negative amounts correct over-counts and counters never drop below zero.
type IncrementRequest struct {
	Field  string `json:"field" validate:"required,oneof=likes dislikes views routines rerolls"`
	Amount int    `json:"amount" validate:"gte=-1000,lte=1000"`
}

// BatchEngagementRequest is built from the ?ids= query parameter.
type BatchEngagementRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=100,productids"`
}

// ClassifyRequest sends a photo to the hair-type classifier. Image is a
// base64 string or a data URL. With CreateSession set, a session is started
// for the resolved profile.
type ClassifyRequest struct {
	Image         string `json:"image" validate:"required"`
	CreateSession bool   `json:"create_session"`
}
