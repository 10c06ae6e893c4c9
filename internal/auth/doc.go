// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

/*
Package auth issues and validates signed session tokens.

Sessions live in server memory; clients hold a JWT (HS256) that names the
session. The token lets the API reject forged or expired handles before a
session lookup, and lets session ids stay unguessable in URLs.

Usage Example:

	tokens, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
	    return err
	}

	token, err := tokens.GenerateToken(s.ID(), s.Profile())

	claims, err := tokens.ValidateToken(token)
	if errors.Is(err, auth.ErrInvalidToken) {
	    // 401
	}

Security:

  - The secret must be at least 32 characters.
  - Only HS256 is accepted; "none" and asymmetric algorithms are rejected.
  - When an issuer is configured it must match.
*/
package auth
