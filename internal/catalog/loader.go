// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tressly/internal/validation"
)

// ErrDuplicateProduct is returned when two catalog records share an id.
var ErrDuplicateProduct = errors.New("duplicate product id")

// ErrProductNotFound is returned when a product id is not in the catalog.
var ErrProductNotFound = errors.New("product not found")

// Loader reads the catalog from a JSON file.
//
// The file holds either a top-level array of products or an object with a
// "products" array. Records that fail to decode or validate are dropped with
// a warning; the rest of the catalog still loads.
type Loader struct {
	path   string
	logger zerolog.Logger
}

// NewLoader creates a loader for the catalog file at path.
func NewLoader(path string, logger zerolog.Logger) *Loader {
	return &Loader{
		path:   path,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// Path returns the catalog file path.
func (l *Loader) Path() string {
	return l.path
}

// Load reads and decodes the catalog file.
func (l *Loader) Load() ([]Product, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", l.path, err)
	}

	products, err := Decode(data, l.logger)
	if err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", l.path, err)
	}

	l.logger.Info().
		Str("path", l.path).
		Int("products", len(products)).
		Msg("Catalog loaded")

	return products, nil
}

type catalogDocument struct {
	Products []json.RawMessage `json:"products"`
}

// Decode parses catalog JSON.
func Decode(data []byte, logger zerolog.Logger) ([]Product, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []Product{}, nil
	}

	var records []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("parse product array: %w", err)
		}
	case '{':
		var doc catalogDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("parse catalog document: %w", err)
		}
		records = doc.Products
	default:
		return nil, fmt.Errorf("catalog must be a JSON array or object")
	}

	products := make([]Product, 0, len(records))
	seen := make(map[string]int, len(records))

	for i, raw := range records {
		var p Product
		if err := json.Unmarshal(raw, &p); err != nil {
			logger.Warn().Err(err).Int("record", i).Msg("Skipping undecodable product")
			continue
		}
		if verr := validation.ValidateStruct(&p); verr != nil {
			logger.Warn().
				Str("product_id", p.ID).
				Int("record", i).
				Str("reason", verr.Error()).
				Msg("Skipping invalid product")
			continue
		}
		if first, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: %q at records %d and %d", ErrDuplicateProduct, p.ID, first, i)
		}
		seen[p.ID] = i
		products = append(products, p)
	}

	return products, nil
}
