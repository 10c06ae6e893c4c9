// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package ingredients

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"
)

// List is a raw, ordered ingredient list as it appears in catalog data.
//
// In JSON it may be written as an array of strings or as one comma-delimited
// string. Malformed values decode to an empty list rather than failing the
// whole product record.
type List []string

// UnmarshalJSON accepts null, a string, or an array of strings.
func (l *List) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = List{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			*l = List{}
			return nil
		}
		if strings.TrimSpace(s) == "" {
			*l = List{}
			return nil
		}
		*l = List(strings.Split(s, Separator))
	case '[':
		var items []interface{}
		if err := json.Unmarshal(trimmed, &items); err != nil {
			*l = List{}
			return nil
		}
		raw := make(List, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
		*l = raw
	default:
		*l = List{}
	}
	return nil
}

// Normalized returns the normalized tokens of the list.
func (l List) Normalized() []string {
	return Normalize(l)
}
