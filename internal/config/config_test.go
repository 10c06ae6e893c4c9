// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = testJWTSecret
	return cfg
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"no shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "SHUTDOWN_TIMEOUT"},
		{"empty catalog path", func(c *Config) { c.Catalog.Path = "  " }, "CATALOG_PATH"},
		{"in-memory badger", func(c *Config) { c.Engagement.BadgerPath = "" }, ""},
		{"remote without url", func(c *Config) { c.Engagement.Backend = "remote" }, "ENGAGEMENT_REMOTE_URL is required"},
		{"remote with path", func(c *Config) {
			c.Engagement.Backend = "remote"
			c.Engagement.RemoteURL = "https://api.example.org/v1"
		}, "remove path"},
		{"remote valid", func(c *Config) {
			c.Engagement.Backend = "remote"
			c.Engagement.RemoteURL = "https://engagement.internal:9443"
		}, ""},
		{"remote rps without burst", func(c *Config) {
			c.Engagement.Backend = "remote"
			c.Engagement.RemoteURL = "https://engagement.internal"
			c.Engagement.RemoteRPS = 10
			c.Engagement.RemoteBurst = 0
		}, "ENGAGEMENT_REMOTE_BURST"},
		{"zero refresh", func(c *Config) { c.Engagement.RefreshInterval = 0 }, "ENGAGEMENT_REFRESH_INTERVAL"},
		{"breaker ratio", func(c *Config) { c.Engagement.Breaker.FailureRatio = 1.5 }, "ENGAGEMENT_BREAKER_FAILURE_RATIO"},
		{"classifier disabled ignores url", func(c *Config) { c.Classifier.URL = "ftp://nope" }, ""},
		{"classifier bad scheme", func(c *Config) {
			c.Classifier.Enabled = true
			c.Classifier.URL = "ftp://classifier"
		}, "CLASSIFIER_URL is invalid"},
		{"classifier zero image size", func(c *Config) {
			c.Classifier.Enabled = true
			c.Classifier.MaxImageBytes = 0
		}, "CLASSIFIER_MAX_IMAGE_BYTES"},
		{"negative weight", func(c *Config) { c.Scoring.RerollRate = -0.1 }, "SCORING_REROLL_RATE_WEIGHT"},
		{"position sum", func(c *Config) { c.Scoring.Position = 0.7 }, "SCORING_POSITION_WEIGHT + SCORING_COVERAGE_WEIGHT"},
		{"alternate blend", func(c *Config) {
			c.Scoring.Ingredient = 0.2
			c.Scoring.Engagement = 0.8
		}, ""},
		{"session ttl", func(c *Config) { c.Session.TTL = 0 }, "SESSION_TTL"},
		{"unlimited sessions", func(c *Config) { c.Session.MaxSessions = 0 }, ""},
		{"short secret", func(c *Config) { c.Security.JWTSecret = "short" }, "at least 32 characters"},
		{"placeholder secret", func(c *Config) {
			c.Security.JWTSecret = "REPLACE_WITH_A_LONG_RANDOM_SECRET_VALUE"
		}, "placeholder"},
		{"wildcard cors in production", func(c *Config) { c.Server.Environment = "production" }, "CORS_ORIGINS"},
		{"explicit cors in production", func(c *Config) {
			c.Server.Environment = "production"
			c.Security.CORSOrigins = []string{"https://tressly.app"}
		}, ""},
		{"rate limit too high", func(c *Config) { c.Security.RateLimitReqs = 1_000_000 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled skips bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"rate window", func(c *Config) { c.Security.RateLimitWindow = time.Millisecond }, "RATE_LIMIT_WINDOW"},
		{"empty profile", func(c *Config) { c.Profiles = map[string][]string{"coily": nil} }, "profiles.coily"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	t.Parallel()

	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() with LOG_LEVEL=%s error = %v", level, err)
		}
	}
}

func TestValidateHTTPURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url     string
		wantErr bool
	}{
		{"http://localhost:8000", false},
		{"https://classifier.example.org/", false},
		{"http://192.168.1.10:8000", false},
		{"ftp://classifier", true},
		{"http://", true},
		{"http://host/api", true},
		{"http://host?x=1", true},
		{"://bad", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			err := validateHTTPURL(tt.url, "TEST_URL")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateHTTPURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestEnvironmentHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env         string
		production  bool
		development bool
	}{
		{"", false, true},
		{"dev", false, true},
		{"Development", false, true},
		{"staging", false, false},
		{"prod", true, false},
		{"PRODUCTION", true, false},
	}

	for _, tt := range tests {
		cfg := &Config{Server: ServerConfig{Environment: tt.env}}
		if cfg.IsProduction() != tt.production || cfg.IsDevelopment() != tt.development {
			t.Errorf("env %q: IsProduction=%v IsDevelopment=%v", tt.env, cfg.IsProduction(), cfg.IsDevelopment())
		}
	}
}

func TestContainsPlaceholder(t *testing.T) {
	t.Parallel()

	if !containsPlaceholder("changeme-please-changeme-please-x") {
		t.Error("lowercase changeme should be detected")
	}
	if containsPlaceholder(testJWTSecret) {
		t.Error("random secret flagged as placeholder")
	}
}
