// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package engagement

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/tressly/internal/breaker"
	"github.com/tomtom215/tressly/internal/catalog"
	"github.com/tomtom215/tressly/internal/metrics"
)

// maxErrorBody caps how much of an error response is copied into the error.
const maxErrorBody = 512

// RemoteConfig configures a RemoteStore.
type RemoteConfig struct {
	// BaseURL is the engagement API root, e.g. http://engagement:8080.
	BaseURL string

	// APIKey is sent as a bearer token when set.
	APIKey string

	// Timeout bounds each HTTP call.
	Timeout time.Duration

	// RequestsPerSecond and Burst configure the client-side limiter.
	// Zero RequestsPerSecond disables limiting.
	RequestsPerSecond float64
	Burst             int

	// Breaker configures the circuit breaker.
	Breaker breaker.Config
}

// RemoteStore implements Store against an external engagement HTTP API
// that speaks the same envelope as this service's engagement endpoints:
//
//	GET  /api/v1/products/{id}/engagement
//	POST /api/v1/products/{id}/engagement  {"field": "views", "amount": 1}
//	GET  /api/v1/engagement?ids=a,b,c
type RemoteStore struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *breaker.Breaker
}

// NewRemoteStore creates a remote engagement store client.
//
//nolint:gocritic // hugeParam: cfg passed by value at construction only
func NewRemoteStore(cfg RemoteConfig) *RemoteStore {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &RemoteStore{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: limiter,
		breaker: breaker.New("engagement-api", cfg.Breaker),
	}
}

// apiEnvelope mirrors the API response envelope.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type incrementBody struct {
	Field  Field `json:"field"`
	Amount int   `json:"amount"`
}

// Get retrieves the counters for a product.
func (s *RemoteStore) Get(ctx context.Context, productID string) (catalog.EngagementStats, error) {
	var stats catalog.EngagementStats
	err := s.call(ctx, http.MethodGet, productPath(productID), nil, &stats)
	if err != nil {
		return catalog.EngagementStats{}, fmt.Errorf("get engagement %s: %w", productID, err)
	}
	return stats, nil
}

// GetMany retrieves counters for several products in one call.
func (s *RemoteStore) GetMany(ctx context.Context, productIDs []string) (map[string]catalog.EngagementStats, error) {
	if len(productIDs) == 0 {
		return map[string]catalog.EngagementStats{}, nil
	}

	q := url.Values{}
	q.Set("ids", strings.Join(productIDs, ","))

	out := make(map[string]catalog.EngagementStats, len(productIDs))
	if err := s.call(ctx, http.MethodGet, "/api/v1/engagement?"+q.Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("get engagement batch: %w", err)
	}
	return out, nil
}

// Increment adds amount to field for productID.
func (s *RemoteStore) Increment(ctx context.Context, productID string, field Field, amount int) (catalog.EngagementStats, error) {
	if !field.Valid() {
		return catalog.EngagementStats{}, fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}

	start := time.Now()
	var stats catalog.EngagementStats
	err := s.call(ctx, http.MethodPost, productPath(productID), incrementBody{Field: field, Amount: amount}, &stats)
	metrics.RecordEngagementIncrement("remote", field.String(), time.Since(start), err)
	if err != nil {
		return catalog.EngagementStats{}, fmt.Errorf("increment %s.%s: %w", productID, field, err)
	}
	return stats, nil
}

// BreakerState exposes the circuit state for health reporting.
func (s *RemoteStore) BreakerState() string {
	return s.breaker.State()
}

func productPath(productID string) string {
	return "/api/v1/products/" + url.PathEscape(productID) + "/engagement"
}

// call performs one rate-limited, breaker-protected request and decodes the
// envelope's data into out.
func (s *RemoteStore) call(ctx context.Context, method, path string, body, out interface{}) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	_, err := breaker.Execute(s.breaker, func() (struct{}, error) {
		return struct{}{}, s.do(ctx, method, path, body, out)
	})
	return err
}

func (s *RemoteStore) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("engagement API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if !env.Success {
		if env.Error != nil {
			return fmt.Errorf("engagement API error %s: %s", env.Error.Code, env.Error.Message)
		}
		return fmt.Errorf("engagement API reported failure")
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode data: %w", err)
		}
	}
	return nil
}
