// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/tressly/internal/metrics"
)

func testConfig() Config {
	return Config{
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Hour,
		MinRequests:  3,
		FailureRatio: 0.5,
	}
}

func TestExecute_Success(t *testing.T) {
	t.Parallel()

	b := New("test-success", testConfig())

	got, err := Execute(b, func() (int, error) { return 42, nil })
	if err != nil || got != 42 {
		t.Fatalf("Execute() = %d, %v; want 42, nil", got, err)
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
	if b.Name() != "test-success" {
		t.Errorf("Name() = %q", b.Name())
	}
}

func TestExecute_OpensAfterFailures(t *testing.T) {
	t.Parallel()

	b := New("test-open", testConfig())
	errBoom := errors.New("boom")

	for i := 0; i < 3; i++ {
		if _, err := Execute(b, func() (string, error) { return "", errBoom }); !errors.Is(err, errBoom) {
			t.Fatalf("call %d: error = %v, want %v", i, err, errBoom)
		}
	}

	if b.State() != "open" {
		t.Fatalf("State() = %q after failures, want open", b.State())
	}

	called := false
	_, err := Execute(b, func() (string, error) {
		called = true
		return "ok", nil
	})
	if !IsRejection(err) {
		t.Errorf("error = %v, want rejection", err)
	}
	if called {
		t.Error("open breaker must not run the call")
	}

	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-open")); got != 2 {
		t.Errorf("circuit_breaker_state = %f, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues("test-open", "rejected")); got != 1 {
		t.Errorf("rejected requests = %f, want 1", got)
	}
}

func TestExecute_BelowMinRequestsStaysClosed(t *testing.T) {
	t.Parallel()

	b := New("test-min", testConfig())
	for i := 0; i < 2; i++ {
		_, _ = Execute(b, func() (int, error) { return 0, errors.New("fail") })
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed below MinRequests", b.State())
	}
}

func TestIsRejection(t *testing.T) {
	t.Parallel()

	if IsRejection(errors.New("other")) {
		t.Error("IsRejection() = true for ordinary error")
	}
	if IsRejection(nil) {
		t.Error("IsRejection(nil) = true")
	}
}
