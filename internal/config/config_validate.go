// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package config

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateCatalog,
		c.validateEngagement,
		c.validateClassifier,
		c.validateScoring,
		c.validateSession,
		c.validateSecurity,
		c.validateProfiles,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return c.validateLogging()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// validateCatalog validates catalog configuration
func (c *Config) validateCatalog() error {
	if strings.TrimSpace(c.Catalog.Path) == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	return nil
}

// validEngagementBackends defines the allowed engagement store backends
var validEngagementBackends = map[string]bool{
	"badger": true,
	"remote": true,
}

// validateEngagement validates engagement store configuration
func (c *Config) validateEngagement() error {
	if !validEngagementBackends[c.Engagement.Backend] {
		return fmt.Errorf("ENGAGEMENT_BACKEND must be one of: badger, remote")
	}

	if c.Engagement.Backend == "remote" {
		if err := c.validateRemoteEngagement(); err != nil {
			return err
		}
	}

	if c.Engagement.RefreshInterval <= 0 {
		return fmt.Errorf("ENGAGEMENT_REFRESH_INTERVAL must be positive")
	}
	if c.Engagement.DrainTimeout < 0 {
		return fmt.Errorf("ENGAGEMENT_DRAIN_TIMEOUT must not be negative")
	}
	return validateBreaker(c.Engagement.Breaker, "ENGAGEMENT_BREAKER")
}

// validateRemoteEngagement validates the remote engagement API settings
func (c *Config) validateRemoteEngagement() error {
	if c.Engagement.RemoteURL == "" {
		return fmt.Errorf("ENGAGEMENT_REMOTE_URL is required when ENGAGEMENT_BACKEND=remote")
	}
	if err := validateHTTPURL(c.Engagement.RemoteURL, "ENGAGEMENT_REMOTE_URL"); err != nil {
		return fmt.Errorf("ENGAGEMENT_REMOTE_URL is invalid: %w", err)
	}
	if c.Engagement.RemoteTimeout <= 0 {
		return fmt.Errorf("ENGAGEMENT_REMOTE_TIMEOUT must be positive")
	}
	if c.Engagement.RemoteRPS < 0 {
		return fmt.Errorf("ENGAGEMENT_REMOTE_RPS must not be negative")
	}
	if c.Engagement.RemoteRPS > 0 && c.Engagement.RemoteBurst < 1 {
		return fmt.Errorf("ENGAGEMENT_REMOTE_BURST must be at least 1 when ENGAGEMENT_REMOTE_RPS is set")
	}
	return nil
}

// validateClassifier validates classifier configuration (only if enabled)
func (c *Config) validateClassifier() error {
	if !c.Classifier.Enabled {
		return nil
	}

	if c.Classifier.URL == "" {
		return fmt.Errorf("CLASSIFIER_URL is required when CLASSIFIER_ENABLED=true")
	}
	if err := validateHTTPURL(c.Classifier.URL, "CLASSIFIER_URL"); err != nil {
		return fmt.Errorf("CLASSIFIER_URL is invalid: %w", err)
	}
	if c.Classifier.Timeout <= 0 {
		return fmt.Errorf("CLASSIFIER_TIMEOUT must be positive")
	}
	if c.Classifier.MaxImageBytes < 1 {
		return fmt.Errorf("CLASSIFIER_MAX_IMAGE_BYTES must be positive")
	}
	return validateBreaker(c.Classifier.Breaker, "CLASSIFIER_BREAKER")
}

// validateBreaker validates circuit breaker settings. prefix names the
// environment variable group in error messages.
func validateBreaker(b BreakerConfig, prefix string) error {
	if b.FailureRatio <= 0 || b.FailureRatio > 1 {
		return fmt.Errorf("%s_FAILURE_RATIO must be in (0, 1]", prefix)
	}
	if b.MinRequests < 1 {
		return fmt.Errorf("%s_MIN_REQUESTS must be at least 1", prefix)
	}
	if b.Timeout <= 0 {
		return fmt.Errorf("%s_TIMEOUT must be positive", prefix)
	}
	return nil
}

// weightTolerance absorbs float rounding in weight sums.
const weightTolerance = 1e-9

// validateScoring validates scoring weights
func (c *Config) validateScoring() error {
	s := c.Scoring
	weights := map[string]float64{
		"SCORING_POSITION_WEIGHT":     s.Position,
		"SCORING_COVERAGE_WEIGHT":     s.Coverage,
		"SCORING_LIKE_RATIO_WEIGHT":   s.LikeRatio,
		"SCORING_ROUTINE_RATE_WEIGHT": s.RoutineRate,
		"SCORING_REROLL_RATE_WEIGHT":  s.RerollRate,
		"SCORING_ACTION_RATE_WEIGHT":  s.ActionRate,
		"SCORING_INGREDIENT_WEIGHT":   s.Ingredient,
		"SCORING_ENGAGEMENT_WEIGHT":   s.Engagement,
		"SCORING_NEUTRAL_ENGAGEMENT":  s.NeutralEngagement,
	}
	for name, w := range weights {
		if w < 0 || w > 1 || math.IsNaN(w) {
			return fmt.Errorf("%s must be between 0 and 1", name)
		}
	}

	if math.Abs(s.Position+s.Coverage-1) > weightTolerance {
		return fmt.Errorf("SCORING_POSITION_WEIGHT + SCORING_COVERAGE_WEIGHT must equal 1")
	}
	if math.Abs(s.Ingredient+s.Engagement-1) > weightTolerance {
		return fmt.Errorf("SCORING_INGREDIENT_WEIGHT + SCORING_ENGAGEMENT_WEIGHT must equal 1")
	}
	return nil
}

// validateSession validates session lifecycle configuration
func (c *Config) validateSession() error {
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}
	if c.Session.MaxSessions < 0 {
		return fmt.Errorf("SESSION_MAX must not be negative (0 = unlimited)")
	}
	return nil
}

// validateSecurity validates token, CORS, and rate limit configuration
func (c *Config) validateSecurity() error {
	if err := c.validateJWTSecret(); err != nil {
		return err
	}
	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("TOKEN_TIMEOUT must be positive")
	}
	if err := c.validateCORS(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

// validateJWTSecret validates the JWT secret configuration
func (c *Config) validateJWTSecret() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters for security")
	}
	if containsPlaceholder(c.Security.JWTSecret) {
		return fmt.Errorf("JWT_SECRET contains a placeholder value - generate a secure secret with: openssl rand -base64 32")
	}
	return nil
}

// validateCORS rejects wildcard CORS in production. Session tokens travel
// in the Authorization header, so any origin could replay a stolen token.
func (c *Config) validateCORS() error {
	if c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production. " +
			"Set specific origins: CORS_ORIGINS=https://yourdomain.com,https://app.yourdomain.com " +
			"or use ENVIRONMENT=development for testing purposes")
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if CORS configuration has security concerns
// that should be logged at startup
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS()
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateProfiles validates custom hair-type profiles
func (c *Config) validateProfiles() error {
	for name, ingredients := range c.Profiles {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("profiles: hair type name must not be empty")
		}
		if len(ingredients) == 0 {
			return fmt.Errorf("profiles.%s must list at least one ingredient", name)
		}
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
// Production mode is determined by the ENVIRONMENT environment variable.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// placeholderPatterns defines common placeholder patterns that indicate
// the user forgot to set a real value.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"PLACEHOLDER",
	"TODO",
	"FIXME",
	"XXX",
	"EXAMPLE",
}

// containsPlaceholder checks if a value contains common placeholder patterns
func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}

// validateHTTPURL validates that a URL is properly formatted for HTTP/HTTPS services.
// Validates: scheme (http/https), host present, no paths or query params.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	// Allow trailing slash but no other paths
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, parsedURL.Path)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}
