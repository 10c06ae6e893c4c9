// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package catalog

import (
	"sync"
)

// Index partitions the catalog by category, preserving source order within
// each category. It is safe for concurrent use; Rebuild swaps the whole
// partition atomically.
type Index struct {
	mu         sync.RWMutex
	byCategory map[Category][]Product
	byID       map[string]Product
	size       int
}

// NewIndex builds an index over products.
func NewIndex(products []Product) *Index {
	idx := &Index{}
	idx.Rebuild(products)
	return idx
}

// Rebuild replaces the indexed catalog.
func (i *Index) Rebuild(products []Product) {
	byCategory := make(map[Category][]Product)
	byID := make(map[string]Product, len(products))

	for _, p := range products {
		byCategory[p.Category] = append(byCategory[p.Category], p)
		byID[p.ID] = p
	}

	i.mu.Lock()
	i.byCategory = byCategory
	i.byID = byID
	i.size = len(products)
	i.mu.Unlock()
}

// Products returns the products in category c in source order.
// An unknown or empty category yields an empty slice.
func (i *Index) Products(c Category) []Product {
	i.mu.RLock()
	defer i.mu.RUnlock()

	src := i.byCategory[c]
	out := make([]Product, len(src))
	copy(out, src)
	return out
}

// Product looks up a product by id.
func (i *Index) Product(id string) (Product, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	p, ok := i.byID[id]
	return p, ok
}

// IDs returns every indexed product id, in no particular order.
func (i *Index) IDs() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	ids := make([]string, 0, len(i.byID))
	for id := range i.byID {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of indexed products.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.size
}

// CategoryCounts returns the number of products per routine category.
func (i *Index) CategoryCounts() map[Category]int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	counts := make(map[Category]int, len(routineCategories))
	for _, c := range routineCategories {
		counts[c] = len(i.byCategory[c])
	}
	return counts
}
