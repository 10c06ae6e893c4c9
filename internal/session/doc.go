// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

/*
Package session holds per-user recommendation state and its transitions.

A Session tracks, for each routine category, the product currently shown,
the set of locked product ids, a short per-category history of rerolled
products, and which products have already had a view counted.

# Transitions

  - Init selects the best product per category and counts views.
  - ToggleLock flips a product lock; locking counts as a routine add.
  - Reroll replaces every unlocked selection, pushing the replaced id onto
    the category history (at most MaxRecentlyExcluded, oldest dropped).
  - MarkViewed counts views for newly shown products.
  - SaveRoutine counts a routine add for every locked product.
  - Feedback records a like or dislike for a shown product.

Engagement is reported through an engagement.Emitter and never fails a
transition.

# Thread Safety

Each transition holds the session mutex for its whole duration, so two
rerolls, or a reroll and a lock toggle, never interleave. Manager is safe for
concurrent use.
*/
package session
