// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tressly/internal/auth"
	"github.com/tomtom215/tressly/internal/catalog"
	"github.com/tomtom215/tressly/internal/classifier"
	"github.com/tomtom215/tressly/internal/config"
	"github.com/tomtom215/tressly/internal/engagement"
	"github.com/tomtom215/tressly/internal/ingredients"
	"github.com/tomtom215/tressly/internal/recommend"
	"github.com/tomtom215/tressly/internal/session"
)

const testSecret = "p4q8r1s5t9u2v6w0x3y7z1a5b9c3d7e1f5"

// mockClassifier returns a fixed prediction or error.
type mockClassifier struct {
	prediction classifier.Prediction
	err        error
	health     classifier.Health
	healthErr  error
	calls      int
}

func (m *mockClassifier) Analyze(_ context.Context, _ string) (classifier.Prediction, error) {
	m.calls++
	return m.prediction, m.err
}

func (m *mockClassifier) Health(_ context.Context) (classifier.Health, error) {
	return m.health, m.healthErr
}

// testServer is a fully wired API over an in-memory engagement store.
type testServer struct {
	handler  http.Handler
	sessions *session.Manager
	tracker  *engagement.Tracker
	tokens   *auth.JWTManager
}

type serverOption func(*HandlerDeps, *ChiMiddlewareConfig)

func withClassifier(c Classifier) serverOption {
	return func(d *HandlerDeps, _ *ChiMiddlewareConfig) { d.Classifier = c }
}

func withRateLimit(requests int) serverOption {
	return func(_ *HandlerDeps, m *ChiMiddlewareConfig) {
		m.RateLimitDisabled = false
		m.RateLimitRequests = requests
		m.RateLimitWindow = time.Minute
	}
}

func withCatalog(products []catalog.Product) serverOption {
	return func(d *HandlerDeps, _ *ChiMiddlewareConfig) { d.Catalog = catalog.NewIndex(products) }
}

func testProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "sh-1", Name: "Curl Wash", Category: catalog.Shampoo, Ingredients: ingredients.List{"shea butter", "coconut oil", "glycerin"}},
		{ID: "sh-2", Name: "Basic Wash", Category: catalog.Shampoo, Ingredients: ingredients.List{"water", "sodium laureth sulfate"}},
		{ID: "co-1", Name: "Soft Rinse", Category: catalog.Conditioner, Ingredients: ingredients.List{"aloe vera", "glycerin"}},
		{ID: "oi-1", Name: "Jojoba Drops", Category: catalog.Oil, Ingredients: ingredients.List{"jojoba oil"}},
	}
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	db, err := engagement.OpenBadger("")
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	tracker := engagement.NewTracker(engagement.NewBadgerStore(db), nil, zerolog.Nop())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tracker.Wait(ctx)
	})

	tokens, err := auth.NewJWTManager(&config.SecurityConfig{
		JWTSecret:      testSecret,
		SessionTimeout: time.Hour,
		TokenIssuer:    "tressly",
	})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	deps := HandlerDeps{
		Catalog:    catalog.NewIndex(testProducts()),
		Tokens:     tokens,
		Engagement: tracker,
		Profiles:   classifier.NewProfiles(classifier.DefaultProfiles()),
		Version:    "test",
	}
	mwConfig := DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = []string{"https://app.tressly.test"}
	mwConfig.RateLimitDisabled = true

	for _, opt := range opts {
		opt(&deps, mwConfig)
	}

	engine, err := recommend.NewEngine(nil, tracker.Snapshots(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	index, ok := deps.Catalog.(*catalog.Index)
	if !ok {
		t.Fatalf("test catalog must be a *catalog.Index")
	}
	sessions := session.NewManager(session.ManagerConfig{TTL: time.Minute}, session.Deps{
		Selector: engine,
		Catalog:  index,
		Emitter:  tracker,
		Logger:   zerolog.Nop(),
	}, deps.Profiles)
	deps.Sessions = sessions

	router := NewRouter(NewHandler(deps), NewChiMiddleware(mwConfig))
	return &testServer{
		handler:  router.SetupChi(),
		sessions: sessions,
		tracker:  tracker,
		tokens:   tokens,
	}
}

// testEnvelope mirrors APIResponse with raw data for typed decoding.
type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	var env testEnvelope
	if rec.Code != http.StatusNoContent && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode envelope: %v\n%s", method, path, err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env testEnvelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v\n%s", err, env.Data)
	}
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d\n%s", rec.Code, want, rec.Body.String())
	}
}

func wantErrorCode(t *testing.T, env testEnvelope, code string) {
	t.Helper()
	if env.Success || env.Error == nil {
		t.Fatalf("expected error envelope, got success=%v", env.Success)
	}
	if env.Error.Code != code {
		t.Errorf("error code = %q, want %q (%s)", env.Error.Code, code, env.Error.Message)
	}
}

// createSession starts a session and returns its token and view.
func (ts *testServer) createSession(t *testing.T, profile string) (string, session.View) {
	t.Helper()

	rec, env := ts.do(t, http.MethodPost, "/api/v1/sessions", CreateSessionRequest{Profile: profile})
	wantStatus(t, rec, http.StatusCreated)

	var resp SessionResponse
	decodeData(t, env, &resp)
	if resp.Token == "" {
		t.Fatal("CreateSession returned no token")
	}
	return resp.Token, resp.Session
}
