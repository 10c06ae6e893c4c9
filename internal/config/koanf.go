// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/tressly/config.yaml",
	"/etc/tressly/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultBreaker mirrors breaker.DefaultConfig.
func defaultBreaker() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Catalog: CatalogConfig{
			Path:           "data/products.json",
			SeedEngagement: true,
		},
		Engagement: EngagementConfig{
			Backend:         "badger",
			BadgerPath:      "/data/engagement",
			RemoteTimeout:   10 * time.Second,
			RemoteRPS:       0, // Unlimited
			RemoteBurst:     10,
			RefreshInterval: time.Minute,
			DrainTimeout:    10 * time.Second,
			Breaker:         defaultBreaker(),
		},
		Classifier: ClassifierConfig{
			Enabled:       false,
			URL:           "http://localhost:8000",
			Timeout:       30 * time.Second,
			MaxImageBytes: 10 << 20, // 10MB encoded
			Breaker:       defaultBreaker(),
		},
		Scoring: ScoringConfig{
			Position:          0.8,
			Coverage:          0.2,
			LikeRatio:         0.55,
			RoutineRate:       0.25,
			RerollRate:        0.10,
			ActionRate:        0.10,
			Ingredient:        0.4,
			Engagement:        0.6,
			NeutralEngagement: 0.5,
		},
		Session: SessionConfig{
			TTL:           30 * time.Minute,
			MaxSessions:   10000,
			SweepInterval: time.Minute,
		},
		Security: SecurityConfig{
			JWTSecret:         "",
			SessionTimeout:    24 * time.Hour,
			TokenIssuer:       "tressly",
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Profiles: map[string][]string{},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence is ENV > File > Defaults. The result is validated before it is
// returned.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// CATALOG_PATH -> catalog.path, SCORING_ENGAGEMENT -> scoring.engagement
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML or defaults)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Catalog mappings
	"catalog_path":            "catalog.path",
	"catalog_seed_engagement": "catalog.seed_engagement",

	// Engagement store mappings
	"engagement_backend":               "engagement.backend",
	"engagement_badger_path":           "engagement.badger_path",
	"engagement_remote_url":            "engagement.remote_url",
	"engagement_remote_api_key":        "engagement.remote_api_key",
	"engagement_remote_timeout":        "engagement.remote_timeout",
	"engagement_remote_rps":            "engagement.remote_rps",
	"engagement_remote_burst":          "engagement.remote_burst",
	"engagement_refresh_interval":      "engagement.refresh_interval",
	"engagement_drain_timeout":         "engagement.drain_timeout",
	"engagement_breaker_max_requests":  "engagement.breaker.max_requests",
	"engagement_breaker_interval":      "engagement.breaker.interval",
	"engagement_breaker_timeout":       "engagement.breaker.timeout",
	"engagement_breaker_min_requests":  "engagement.breaker.min_requests",
	"engagement_breaker_failure_ratio": "engagement.breaker.failure_ratio",

	// Classifier mappings
	"classifier_breaker_max_requests":  "classifier.breaker.max_requests",
	"classifier_breaker_interval":      "classifier.breaker.interval",
	"classifier_breaker_timeout":       "classifier.breaker.timeout",
	"classifier_breaker_min_requests":  "classifier.breaker.min_requests",
	"classifier_breaker_failure_ratio": "classifier.breaker.failure_ratio",
	"classifier_enabled":               "classifier.enabled",
	"classifier_url":                   "classifier.url",
	"classifier_timeout":               "classifier.timeout",
	"classifier_max_image_bytes":       "classifier.max_image_bytes",

	// Scoring mappings
	"scoring_position_weight":     "scoring.position",
	"scoring_coverage_weight":     "scoring.coverage",
	"scoring_like_ratio_weight":   "scoring.like_ratio",
	"scoring_routine_rate_weight": "scoring.routine_rate",
	"scoring_reroll_rate_weight":  "scoring.reroll_rate",
	"scoring_action_rate_weight":  "scoring.action_rate",
	"scoring_ingredient_weight":   "scoring.ingredient",
	"scoring_engagement_weight":   "scoring.engagement",
	"scoring_neutral_engagement":  "scoring.neutral_engagement",

	// Session mappings
	"session_ttl":            "session.ttl",
	"session_max":            "session.max_sessions",
	"session_sweep_interval": "session.sweep_interval",

	// Security mappings
	"jwt_secret":          "security.jwt_secret",
	"token_timeout":       "security.session_timeout",
	"token_issuer":        "security.token_issuer",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - CATALOG_PATH -> catalog.path
//   - ENGAGEMENT_BACKEND -> engagement.backend
//   - JWT_SECRET -> security.jwt_secret
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated environment variables do not
	// pollute the config.
	return ""
}
