// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/tressly/internal/catalog"
	"github.com/tomtom215/tressly/internal/session"
)

func itemFor(v session.View, c catalog.Category) (session.Item, bool) {
	for _, it := range v.Items {
		if it.Category == c {
			return it, true
		}
	}
	return session.Item{}, false
}

func TestCreateSession(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	_, view := ts.createSession(t, "curly")

	if view.Profile != "curly" {
		t.Errorf("profile = %q, want curly", view.Profile)
	}
	shampoo, ok := itemFor(view, catalog.Shampoo)
	if !ok {
		t.Fatal("no shampoo selected")
	}
	if shampoo.Product.ID != "sh-1" {
		t.Errorf("shampoo = %s, want sh-1 (matches curly ingredients)", shampoo.Product.ID)
	}
	if shampoo.Percent < 0 || shampoo.Percent > 100 {
		t.Errorf("score percent = %d", shampoo.Percent)
	}
	if len(view.Empty) != 3 {
		t.Errorf("empty categories = %v, want Leave-In, Treatment, Styler", view.Empty)
	}
	if ts.sessions.Len() != 1 {
		t.Errorf("sessions.Len() = %d, want 1", ts.sessions.Len())
	}
}

func TestCreateSession_ProfileResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    interface{}
		profile string
	}{
		{"empty body", nil, "default"},
		{"empty profile", CreateSessionRequest{}, "default"},
		{"unknown profile", CreateSessionRequest{Profile: "frizzy"}, "default"},
		{"known profile", CreateSessionRequest{Profile: "kinky"}, "kinky"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t)

			rec, env := ts.do(t, http.MethodPost, "/api/v1/sessions", tt.body)
			wantStatus(t, rec, http.StatusCreated)

			var resp SessionResponse
			decodeData(t, env, &resp)
			if resp.Session.Profile != tt.profile {
				t.Errorf("profile = %q, want %q", resp.Session.Profile, tt.profile)
			}
		})
	}
}

func TestCreateSession_BadRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		code string
	}{
		{"malformed json", `{"profile":`, ErrCodeInvalidJSON},
		{"unknown field", `{"profile":"curly","admin":true}`, ErrCodeInvalidJSON},
		{"invalid profile", `{"profile":"Curly Hair!"}`, ErrCodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t)

			rec, env := ts.do(t, http.MethodPost, "/api/v1/sessions", tt.body)
			wantStatus(t, rec, http.StatusBadRequest)
			wantErrorCode(t, env, tt.code)
			if ts.sessions.Len() != 0 {
				t.Error("rejected request must not create a session")
			}
		})
	}
}

func TestSessionToken_Errors(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	t.Run("garbage token", func(t *testing.T) {
		rec, env := ts.do(t, http.MethodGet, "/api/v1/sessions/not-a-jwt", nil)
		wantStatus(t, rec, http.StatusUnauthorized)
		wantErrorCode(t, env, ErrCodeUnauthorized)
	})

	t.Run("valid token for unknown session", func(t *testing.T) {
		token, err := ts.tokens.GenerateToken("no-such-session", "curly")
		if err != nil {
			t.Fatal(err)
		}
		rec, env := ts.do(t, http.MethodGet, "/api/v1/sessions/"+token, nil)
		wantStatus(t, rec, http.StatusNotFound)
		wantErrorCode(t, env, ErrCodeSessionNotFound)
	})

	t.Run("deleted session", func(t *testing.T) {
		token, _ := ts.createSession(t, "curly")

		rec, _ := ts.do(t, http.MethodDelete, "/api/v1/sessions/"+token, nil)
		wantStatus(t, rec, http.StatusNoContent)

		rec, env := ts.do(t, http.MethodGet, "/api/v1/sessions/"+token, nil)
		wantStatus(t, rec, http.StatusNotFound)
		wantErrorCode(t, env, ErrCodeSessionNotFound)
	})
}

func TestGetSession(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	token, created := ts.createSession(t, "curly")

	rec, env := ts.do(t, http.MethodGet, "/api/v1/sessions/"+token, nil)
	wantStatus(t, rec, http.StatusOK)

	var resp SessionResponse
	decodeData(t, env, &resp)
	if resp.Token != "" {
		t.Error("GET must not reissue the token")
	}
	if resp.Session.ID != created.ID || len(resp.Session.Items) != len(created.Items) {
		t.Errorf("view = %+v, want same session as %+v", resp.Session, created)
	}
}

func TestToggleLock(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	token, _ := ts.createSession(t, "curly")
	path := "/api/v1/sessions/" + token + "/locks/sh-1"

	rec, env := ts.do(t, http.MethodPost, path, nil)
	wantStatus(t, rec, http.StatusOK)
	var lock LockResponse
	decodeData(t, env, &lock)
	if !lock.Locked || lock.ProductID != "sh-1" {
		t.Errorf("first toggle = %+v, want locked", lock)
	}
	if len(lock.Session.Locked) != 1 || lock.Session.Locked[0] != "sh-1" {
		t.Errorf("view locked ids = %v", lock.Session.Locked)
	}

	rec, env = ts.do(t, http.MethodPost, path, nil)
	wantStatus(t, rec, http.StatusOK)
	decodeData(t, env, &lock)
	if lock.Locked {
		t.Error("second toggle should unlock")
	}

	rec, env = ts.do(t, http.MethodPost, "/api/v1/sessions/"+token+"/locks/nope-99", nil)
	wantStatus(t, rec, http.StatusNotFound)
	wantErrorCode(t, env, ErrCodeProductNotFound)
}

func TestReroll_KeepsLockedProduct(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	token, _ := ts.createSession(t, "curly")

	rec, _ := ts.do(t, http.MethodPost, "/api/v1/sessions/"+token+"/locks/sh-1", nil)
	wantStatus(t, rec, http.StatusOK)

	rec, env := ts.do(t, http.MethodPost, "/api/v1/sessions/"+token+"/reroll", nil)
	wantStatus(t, rec, http.StatusOK)

	var resp RerollResponse
	decodeData(t, env, &resp)
	shampoo, ok := itemFor(resp.Session, catalog.Shampoo)
	if !ok || shampoo.Product.ID != "sh-1" || !shampoo.Locked {
		t.Errorf("locked shampoo replaced: %+v", shampoo)
	}
	for _, c := range resp.Changed {
		if c == catalog.Shampoo {
			t.Error("locked category reported as changed")
		}
	}
}

func TestReroll_SingleProductCategoryFallsBack(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	token, _ := ts.createSession(t, "curly")

	rec, env := ts.do(t, http.MethodPost, "/api/v1/sessions/"+token+"/reroll", nil)
	wantStatus(t, rec, http.StatusOK)

	var resp RerollResponse
	decodeData(t, env, &resp)

	// Conditioner and Oil have one product each; the fallback keeps them filled.
	for _, c := range []catalog.Category{catalog.Conditioner, catalog.Oil} {
		if _, ok := itemFor(resp.Session, c); !ok {
			t.Errorf("%s emptied by reroll", c)
		}
	}
	if shampoo, _ := itemFor(resp.Session, catalog.Shampoo); shampoo.Product.ID != "sh-2" {
		t.Errorf("shampoo after reroll = %s, want sh-2", shampoo.Product.ID)
	}
}

func TestSaveRoutine(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	token, _ := ts.createSession(t, "curly")

	rec, env := ts.do(t, http.MethodPost, "/api/v1/sessions/"+token+"/routine", nil)
	wantStatus(t, rec, http.StatusOK)
	var resp RoutineResponse
	decodeData(t, env, &resp)
	if len(resp.ProductIDs) != 0 || !strings.Contains(string(env.Data), `"product_ids":[]`) {
		t.Errorf("routine without locks = %v, want empty list", resp.ProductIDs)
	}

	for _, id := range []string{"oi-1", "co-1"} {
		rec, _ = ts.do(t, http.MethodPost, "/api/v1/sessions/"+token+"/locks/"+id, nil)
		wantStatus(t, rec, http.StatusOK)
	}

	rec, env = ts.do(t, http.MethodPost, "/api/v1/sessions/"+token+"/routine", nil)
	wantStatus(t, rec, http.StatusOK)
	decodeData(t, env, &resp)
	if len(resp.ProductIDs) != 2 || resp.ProductIDs[0] != "co-1" || resp.ProductIDs[1] != "oi-1" {
		t.Errorf("routine ids = %v, want sorted [co-1 oi-1]", resp.ProductIDs)
	}
}

func TestFeedback(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	token, _ := ts.createSession(t, "curly")
	path := "/api/v1/sessions/" + token + "/feedback"

	tests := []struct {
		name   string
		body   interface{}
		status int
		code   string
	}{
		{"like shown", FeedbackRequest{ProductID: "sh-1", Kind: "like"}, http.StatusOK, ""},
		{"dislike shown", FeedbackRequest{ProductID: "co-1", Kind: "dislike"}, http.StatusOK, ""},
		{"not shown", FeedbackRequest{ProductID: "sh-2", Kind: "like"}, http.StatusNotFound, ErrCodeProductNotFound},
		{"bad kind", FeedbackRequest{ProductID: "sh-1", Kind: "love"}, http.StatusBadRequest, ErrCodeValidationFailed},
		{"missing product", FeedbackRequest{Kind: "like"}, http.StatusBadRequest, ErrCodeValidationFailed},
		{"empty body", nil, http.StatusBadRequest, ErrCodeInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := ts.do(t, http.MethodPost, path, tt.body)
			wantStatus(t, rec, tt.status)
			if tt.code != "" {
				wantErrorCode(t, env, tt.code)
			}
		})
	}
}
