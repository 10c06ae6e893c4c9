// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tressly/internal/validation"
)

// defaultMaxBodyBytes caps JSON request bodies other than /classify.
const defaultMaxBodyBytes = 64 << 10

// ErrCodeInvalidJSON is returned for bodies that do not decode.
const ErrCodeInvalidJSON = "INVALID_JSON"

// sanitizeLogValue escapes control characters so user input cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// parseCommaSeparated parses a comma-separated string into a slice of
// trimmed, non-empty values.
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// decodeJSON reads a bounded JSON body into v and validates it.
// It writes the error response itself and returns false on failure.
// An empty body is accepted when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}, maxBytes int64, allowEmpty bool) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			NewResponseWriter(w, r).Error(http.StatusRequestEntityTooLarge, ErrCodeBadRequest,
				fmt.Sprintf("Request body exceeds %d bytes", maxBytes))
			return false
		}
		NewResponseWriter(w, r).BadRequest("Failed to read request body")
		return false
	}

	if len(bytes.TrimSpace(body)) > 0 || !allowEmpty {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			NewResponseWriter(w, r).Error(http.StatusBadRequest, ErrCodeInvalidJSON, "Invalid request body")
			return false
		}
	}

	return validateRequest(w, r, v)
}

// validateRequest validates a struct using go-playground/validator and
// writes a VALIDATION_FAILED response when it does not pass.
func validateRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return true
	}

	apiErr := validationErr.ToAPIError()
	NewResponseWriter(w, r).ValidationError(apiErr.Message, apiErr.Details)
	return false
}
