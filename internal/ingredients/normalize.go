// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

// Package ingredients canonicalizes ingredient lists into comparable tokens.
//
// Product ingredient lists arrive either as a single comma-delimited string
// ("Water, Glycerin, Shea Butter") or as an ordered list of strings. Both
// shapes normalize to the same ordered sequence of lowercase, trimmed,
// non-empty tokens. Order is preserved because it reflects concentration.
//
// Matching between a product and a reference list is exact on the normalized
// token. There is no substring or fuzzy matching: "shea butter" does not match
// "butyrospermum parkii (shea) butter".
package ingredients

import (
	"strings"
)

// Separator splits a single-string ingredient list.
const Separator = ","

// Normalize returns the lowercase, trimmed, non-empty tokens of raw in order.
// A nil or empty input yields an empty (non-nil) slice.
func Normalize(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if tok := normalizeToken(s); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// NormalizeString splits a comma-delimited ingredient string and normalizes
// each part.
func NormalizeString(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return Normalize(strings.Split(s, Separator))
}

// NormalizeAny normalizes loosely typed ingredient data, as decoded from
// JSON into interface{}. Strings and lists of strings are accepted; lists may
// mix strings with other values, which are skipped. Anything else, including
// nil, yields an empty slice.
func NormalizeAny(v interface{}) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case string:
		return NormalizeString(t)
	case []string:
		return Normalize(t)
	case List:
		return Normalize(t)
	case []interface{}:
		raw := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
		return Normalize(raw)
	default:
		return []string{}
	}
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Set is a normalized reference list with O(1) membership.
// The zero value is an empty set.
type Set struct {
	ordered []string
	index   map[string]struct{}
}

// NewSet normalizes raw and removes duplicate tokens, keeping first occurrence order.
func NewSet(raw []string) Set {
	tokens := Normalize(raw)
	s := Set{
		ordered: make([]string, 0, len(tokens)),
		index:   make(map[string]struct{}, len(tokens)),
	}
	for _, tok := range tokens {
		if _, dup := s.index[tok]; dup {
			continue
		}
		s.index[tok] = struct{}{}
		s.ordered = append(s.ordered, tok)
	}
	return s
}

// Contains reports whether the normalized token is in the set.
// The argument must already be normalized.
func (s Set) Contains(token string) bool {
	_, ok := s.index[token]
	return ok
}

// Len returns the number of distinct tokens.
func (s Set) Len() int {
	return len(s.ordered)
}

// Tokens returns the distinct tokens in first-seen order.
func (s Set) Tokens() []string {
	out := make([]string, len(s.ordered))
	copy(out, s.ordered)
	return out
}
