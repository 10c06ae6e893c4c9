// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRequestAndSessionIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if RequestIDFromContext(ctx) != "" || SessionIDFromContext(ctx) != "" {
		t.Error("empty context should carry no ids")
	}

	ctx = ContextWithRequestID(ctx, "req-1")
	ctx = ContextWithSessionID(ctx, "sess-1")
	if RequestIDFromContext(ctx) != "req-1" || SessionIDFromContext(ctx) != "sess-1" {
		t.Errorf("ids = %q/%q", RequestIDFromContext(ctx), SessionIDFromContext(ctx))
	}
}

func TestCtx(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "req-42")
	ctx = ContextWithSessionID(ctx, "0b8e5c1e-7d2a-4f3b-9c11-2a5d8e7f6b40")

	Ctx(ctx).Info().Msg("product locked")

	output := buf.String()
	if !strings.Contains(output, `"request_id":"req-42"`) {
		t.Errorf("missing request_id: %s", output)
	}
	if !strings.Contains(output, `"session_id":"0b8e...6b40"`) {
		t.Errorf("session id not masked: %s", output)
	}
	if strings.Contains(output, "7d2a") {
		t.Errorf("full session id leaked: %s", output)
	}
}

func TestLoggerFromContext_NoLogger(t *testing.T) {
	t.Parallel()

	logger := LoggerFromContext(context.Background())
	if logger.GetLevel() != Logger().GetLevel() {
		t.Error("expected global logger fallback")
	}
}

func TestWithComponent(t *testing.T) {
	restoreGlobal(t)

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))

	logger := WithComponent("session-sweeper")
	logger.Info().Msg("swept")

	if !strings.Contains(buf.String(), `"component":"session-sweeper"`) {
		t.Errorf("missing component: %s", buf.String())
	}
}

func TestMaskID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"short", "***"},
		{"abcdefghijkl", "***"},
		{"abcdefghijklm", "abcd...jklm"},
		{"eyJhbGciOiJIUzI1NiJ9.payload.sig", "eyJh....sig"},
	}

	for _, tt := range tests {
		if got := MaskID(tt.in); got != tt.want {
			t.Errorf("MaskID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
