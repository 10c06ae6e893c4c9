// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package classifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tressly/internal/breaker"
	"github.com/tomtom215/tressly/internal/metrics"
)

var (
	// ErrUnavailable means the classifier could not be reached or failed.
	ErrUnavailable = errors.New("classifier unavailable")

	// ErrInvalidImage means the image payload was rejected.
	ErrInvalidImage = errors.New("invalid image")
)

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 512

// Config configures a Client.
type Config struct {
	// BaseURL is the classifier root, e.g. http://classifier:8000.
	BaseURL string

	// Timeout bounds each HTTP call. Inference on CPU can be slow.
	Timeout time.Duration

	// MaxImageBytes rejects larger encoded payloads before sending.
	// Zero disables the check.
	MaxImageBytes int

	// Breaker configures the circuit breaker.
	Breaker breaker.Config
}

// Prediction is a probability distribution over hair-type labels.
type Prediction struct {
	Classification map[string]float64 `json:"classification"`
}

// Top returns the most probable label. Ties resolve to the alphabetically
// first label so the result is deterministic. ok is false for an empty
// distribution.
func (p Prediction) Top() (label string, probability float64, ok bool) {
	labels := make([]string, 0, len(p.Classification))
	for l := range p.Classification {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	for _, l := range labels {
		if prob := p.Classification[l]; !ok || prob > probability {
			label, probability, ok = l, prob, true
		}
	}
	return label, probability, ok
}

// Health is the classifier's self-reported status.
type Health struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	ModelPath   string `json:"model_path,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Healthy reports whether the classifier said it is healthy.
func (h Health) Healthy() bool {
	return h.Status == "healthy"
}

// Client calls the hair-type classifier service.
type Client struct {
	baseURL       string
	maxImageBytes int
	httpClient    *http.Client
	breaker       *breaker.Breaker
}

// NewClient creates a classifier client.
//
//nolint:gocritic // hugeParam: cfg passed by value at construction only
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		maxImageBytes: cfg.MaxImageBytes,
		httpClient:    &http.Client{Timeout: timeout},
		breaker:       breaker.New("classifier", cfg.Breaker),
	}
}

// BreakerState exposes the circuit state for health reporting.
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

// ValidateImage checks that image is base64, optionally wrapped in a data
// URL, and within the size limit.
func (c *Client) ValidateImage(image string) error {
	if image == "" {
		return fmt.Errorf("%w: no image provided", ErrInvalidImage)
	}
	if c.maxImageBytes > 0 && len(image) > c.maxImageBytes {
		return fmt.Errorf("%w: payload exceeds %d bytes", ErrInvalidImage, c.maxImageBytes)
	}

	payload := image
	if i := strings.IndexByte(payload, ','); i >= 0 {
		payload = payload[i+1:]
	}
	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return fmt.Errorf("%w: not base64: %w", ErrInvalidImage, err)
	}
	return nil
}

// rawResponse is what crosses the breaker: transport and 5xx failures are
// errors, 4xx responses are results so bad input never trips the circuit.
type rawResponse struct {
	status int
	body   []byte
}

// Analyze sends an image (base64 or data URL) and returns the label
// distribution.
func (c *Client) Analyze(ctx context.Context, image string) (Prediction, error) {
	if err := c.ValidateImage(image); err != nil {
		return Prediction{}, err
	}

	body, err := json.Marshal(map[string]string{"image": image})
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to encode request: %w", err)
	}

	start := time.Now()
	resp, err := breaker.Execute(c.breaker, func() (rawResponse, error) {
		return c.do(ctx, http.MethodPost, "/api/analyze", body)
	})
	err = unavailable(err)
	if err == nil && resp.status != http.StatusOK {
		err = statusError(resp)
	}

	var pred Prediction
	if err == nil {
		if decodeErr := json.Unmarshal(resp.body, &pred); decodeErr != nil {
			err = fmt.Errorf("%w: decode response: %w", ErrUnavailable, decodeErr)
		} else if len(pred.Classification) == 0 {
			err = fmt.Errorf("%w: empty classification", ErrUnavailable)
		}
	}

	metrics.RecordClassifierRequest(time.Since(start), err)
	if err != nil {
		return Prediction{}, err
	}
	return pred, nil
}

// Health queries the classifier health endpoint. An unhealthy report is
// returned along with ErrUnavailable.
func (c *Client) Health(ctx context.Context) (Health, error) {
	resp, err := breaker.Execute(c.breaker, func() (rawResponse, error) {
		return c.do(ctx, http.MethodGet, "/api/health", nil)
	})
	if err != nil {
		return Health{}, unavailable(err)
	}

	var h Health
	if decodeErr := json.Unmarshal(resp.body, &h); decodeErr != nil {
		return Health{}, fmt.Errorf("%w: decode health: %w", ErrUnavailable, decodeErr)
	}
	if resp.status != http.StatusOK || !h.Healthy() {
		return h, fmt.Errorf("%w: status %q", ErrUnavailable, h.Status)
	}
	return h, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (rawResponse, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return rawResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return rawResponse{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return rawResponse{}, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	out := rawResponse{status: resp.StatusCode, body: data}
	if resp.StatusCode >= http.StatusInternalServerError {
		return out, statusError(out)
	}
	return out, nil
}

// unavailable tags breaker rejections with ErrUnavailable.
func unavailable(err error) error {
	if breaker.IsRejection(err) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

// statusError converts a non-200 response. The classifier reports failures
// as {"error": "..."}.
func statusError(resp rawResponse) error {
	msg := strings.TrimSpace(string(resp.body))
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(resp.body, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody]
	}

	if resp.status >= http.StatusBadRequest && resp.status < http.StatusInternalServerError {
		return fmt.Errorf("%w: %s", ErrInvalidImage, msg)
	}
	return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.status, msg)
}
