// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file, and environment variables (see LoadWithKoanf).
//
// Thread Safety:
// Config is immutable after loading and safe for concurrent read access.
type Config struct {
	Server     ServerConfig        `koanf:"server"`
	Logging    LoggingConfig       `koanf:"logging"`
	Catalog    CatalogConfig       `koanf:"catalog"`
	Engagement EngagementConfig    `koanf:"engagement"`
	Classifier ClassifierConfig    `koanf:"classifier"`
	Scoring    ScoringConfig       `koanf:"scoring"`
	Session    SessionConfig       `koanf:"session"`
	Security   SecurityConfig      `koanf:"security"`
	Profiles   map[string][]string `koanf:"profiles"` // Hair type -> beneficial ingredients; merged over built-ins
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// CatalogConfig points at the product catalog.
//
// Environment Variables:
//   - CATALOG_PATH: JSON catalog file (default: data/products.json)
//   - CATALOG_SEED_ENGAGEMENT: copy catalog engagement_stats into an empty store (default: true)
type CatalogConfig struct {
	Path           string `koanf:"path"`
	SeedEngagement bool   `koanf:"seed_engagement"`
}

// BreakerConfig configures a circuit breaker for an outbound client.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// EngagementConfig selects and tunes the engagement store.
//
// Backend "badger" keeps counters in an embedded BadgerDB at BadgerPath
// (empty path = in-memory). Backend "remote" talks to an external
// engagement API at RemoteURL.
type EngagementConfig struct {
	Backend         string        `koanf:"backend"`
	BadgerPath      string        `koanf:"badger_path"`
	RemoteURL       string        `koanf:"remote_url"`
	RemoteAPIKey    string        `koanf:"remote_api_key"`
	RemoteTimeout   time.Duration `koanf:"remote_timeout"`
	RemoteRPS       float64       `koanf:"remote_rps"`
	RemoteBurst     int           `koanf:"remote_burst"`
	RefreshInterval time.Duration `koanf:"refresh_interval"` // Snapshot refresh period
	DrainTimeout    time.Duration `koanf:"drain_timeout"`    // Max wait for pending increments on shutdown
	Breaker         BreakerConfig `koanf:"breaker"`
}

// ClassifierConfig configures the hair-type classifier client.
type ClassifierConfig struct {
	Enabled       bool          `koanf:"enabled"`
	URL           string        `koanf:"url"`
	Timeout       time.Duration `koanf:"timeout"`
	MaxImageBytes int           `koanf:"max_image_bytes"`
	Breaker       BreakerConfig `koanf:"breaker"`
}

// ScoringConfig holds the scoring weights. Position+Coverage and
// Ingredient+Engagement must each sum to 1.
type ScoringConfig struct {
	Position          float64 `koanf:"position"`
	Coverage          float64 `koanf:"coverage"`
	LikeRatio         float64 `koanf:"like_ratio"`
	RoutineRate       float64 `koanf:"routine_rate"`
	RerollRate        float64 `koanf:"reroll_rate"`
	ActionRate        float64 `koanf:"action_rate"`
	Ingredient        float64 `koanf:"ingredient"`
	Engagement        float64 `koanf:"engagement"`
	NeutralEngagement float64 `koanf:"neutral_engagement"`
}

// SessionConfig bounds live sessions.
type SessionConfig struct {
	TTL           time.Duration `koanf:"ttl"`
	MaxSessions   int           `koanf:"max_sessions"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// SecurityConfig holds token and request-limiting settings
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"` // Session token lifetime
	TokenIssuer       string        `koanf:"token_issuer"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}
