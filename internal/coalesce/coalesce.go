// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

// Package coalesce suppresses duplicate concurrent side-effecting calls.
//
// A Group keeps at most one in-flight call per key. Callers that arrive while
// a call for their key is running wait for it and receive the same result
// instead of issuing their own. The in-flight entry is removed when the call
// returns, on success or failure, so the next caller starts a fresh call.
//
// Group is a typed wrapper around golang.org/x/sync/singleflight.
package coalesce

import (
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// keySeparator joins key parts. It cannot appear in product ids or field names.
const keySeparator = "\x00"

// Key builds a composite key from parts. Parts are joined with a separator
// that cannot collide the way plain concatenation can ("ab"+"c" vs "a"+"bc").
func Key(parts ...string) string {
	return strings.Join(parts, keySeparator)
}

// Group is a keyed in-flight call registry. The zero value is ready to use.
type Group[V any] struct {
	sf singleflight.Group

	mu      sync.Mutex
	waiting map[string]int
}

// Do runs fn for key unless a call for key is already in flight, in which
// case it waits for that call. shared reports whether the result was
// delivered to more than one caller.
func (g *Group[V]) Do(key string, fn func() (V, error)) (v V, shared bool, err error) {
	g.enter(key)
	defer g.leave(key)

	res, err, shared := g.sf.Do(key, func() (interface{}, error) {
		return fn()
	})
	if res != nil {
		v = res.(V) //nolint:errcheck,forcetypeassert // fn only ever returns V
	}
	return v, shared, err
}

// Waiting returns the number of callers currently inside Do for key,
// including the one running the call.
func (g *Group[V]) Waiting(key string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.waiting[key]
}

// Forget drops the in-flight entry for key so the next Do starts a new call
// even if the current one has not returned.
func (g *Group[V]) Forget(key string) {
	g.sf.Forget(key)
}

func (g *Group[V]) enter(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.waiting == nil {
		g.waiting = make(map[string]int)
	}
	g.waiting[key]++
}

func (g *Group[V]) leave(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.waiting[key]--
	if g.waiting[key] <= 0 {
		delete(g.waiting, key)
	}
}
