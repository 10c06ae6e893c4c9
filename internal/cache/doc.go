// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

/*
Package cache provides a thread-safe, generic in-memory cache with TTL support.

The cache holds live recommendation sessions keyed by session id. Entries
expire a fixed time after they were last set or touched, so an active
session stays alive while an abandoned one ages out.

# Expiration

Expiration is checked lazily on Get and in bulk by Cleanup. The cache does
not start a background goroutine; the owner schedules Cleanup (the session
sweeper service does this under the supervisor tree).

# Usage Example

	c := cache.New[*session.Session](30 * time.Minute)
	c.Set(id, s)

	if s, ok := c.Get(id); ok {
	    c.Touch(id)
	    // use s
	}

	evicted := c.Cleanup()

# Thread Safety

All methods are safe for concurrent use. Entries are guarded by a
sync.RWMutex; statistics have their own lock.
*/
package cache
