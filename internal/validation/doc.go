// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

// Package validation provides struct validation using go-playground/validator v10.
//
// The package wraps a thread-safe singleton validator with Tressly's custom
// tags and translates failures into user-facing messages and the API error
// envelope.
//
// # Quick Start
//
//	type feedbackRequest struct {
//	    ProductID string `json:"product_id" validate:"required,productid"`
//	    Kind      string `json:"kind" validate:"required,oneof=like dislike"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // respond 400 with apiErr.Code, apiErr.Message, apiErr.Details
//	}
//
// # Custom Tags
//
//   - productid: alphanumeric start, then letters, digits, '.', '_', ':' or '-' (max 128)
//   - productids: every element of a []string is a productid
//   - hairtype: lowercase profile name such as "curly" or "kinky"
//
// Field names in messages come from json tags, so a failure on ProductID
// reads "product_id is required".
package validation
