// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

/*
Package config provides centralized configuration management for Tressly.

Configuration is layered with Koanf v2 (see LoadWithKoanf):

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
    /etc/tressly/config.yaml, /etc/tressly/config.yml
 3. Environment variables (highest priority)

Only environment variables listed in envMappings are read; anything else in
the process environment is ignored.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8080)
  - HTTP_TIMEOUT: Request timeout (default: 30s)
  - SHUTDOWN_TIMEOUT: Graceful shutdown budget (default: 15s)
  - ENVIRONMENT: development, staging, production

Catalog:
  - CATALOG_PATH: Product catalog JSON (default: data/products.json)
  - CATALOG_SEED_ENGAGEMENT: Seed an empty store from the catalog (default: true)

Engagement:
  - ENGAGEMENT_BACKEND: badger or remote (default: badger)
  - ENGAGEMENT_BADGER_PATH: Badger directory, empty for in-memory
  - ENGAGEMENT_REMOTE_URL, ENGAGEMENT_REMOTE_API_KEY
  - ENGAGEMENT_REMOTE_RPS, ENGAGEMENT_REMOTE_BURST: Outbound rate limit (0 = unlimited)
  - ENGAGEMENT_REFRESH_INTERVAL: Snapshot refresh period (default: 1m)
  - ENGAGEMENT_BREAKER_*: Circuit breaker tuning

Classifier:
  - CLASSIFIER_ENABLED, CLASSIFIER_URL, CLASSIFIER_TIMEOUT
  - CLASSIFIER_MAX_IMAGE_BYTES: Largest accepted base64 payload (default: 10MB)

Scoring:
  - SCORING_INGREDIENT_WEIGHT, SCORING_ENGAGEMENT_WEIGHT (must sum to 1)
  - SCORING_POSITION_WEIGHT, SCORING_COVERAGE_WEIGHT (must sum to 1)
  - SCORING_LIKE_RATIO_WEIGHT, SCORING_ROUTINE_RATE_WEIGHT,
    SCORING_REROLL_RATE_WEIGHT, SCORING_ACTION_RATE_WEIGHT
  - SCORING_NEUTRAL_ENGAGEMENT: Score for products with no views (default: 0.5)

Sessions and security:
  - SESSION_TTL, SESSION_MAX, SESSION_SWEEP_INTERVAL
  - JWT_SECRET (required, min 32 chars), TOKEN_TIMEOUT, TOKEN_ISSUER
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS: Comma-separated origins (wildcard rejected in production)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Hair-type profiles can only be set from the config file:

	profiles:
	  coily:
	    - Shea Butter
	    - Castor Oil

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatal(err)
	}
	if cfg.ShouldWarnAboutCORS() {
	    logging.Warn().Msg("CORS allows all origins")
	}

Config is immutable after loading and safe for concurrent reads.
*/
package config
