// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/tressly/internal/classifier"
)

func curlyPrediction() classifier.Prediction {
	return classifier.Prediction{Classification: map[string]float64{
		"curly":    0.72,
		"wavy":     0.18,
		"straight": 0.10,
	}}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	mock := &mockClassifier{prediction: curlyPrediction()}
	ts := newTestServer(t, withClassifier(mock))

	rec, env := ts.do(t, http.MethodPost, "/api/v1/classify", ClassifyRequest{Image: "data:image/jpeg;base64,/9j/4AAQ"})
	wantStatus(t, rec, http.StatusOK)

	var resp ClassifyResponse
	decodeData(t, env, &resp)
	if resp.HairType != "curly" || resp.Profile != "curly" {
		t.Errorf("hair_type=%q profile=%q, want curly", resp.HairType, resp.Profile)
	}
	if resp.Probability != 0.72 || len(resp.Classification) != 3 {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Session != nil {
		t.Error("session created without create_session")
	}
	if ts.sessions.Len() != 0 {
		t.Error("unexpected session")
	}
}

func TestClassify_CreateSession(t *testing.T) {
	t.Parallel()

	mock := &mockClassifier{prediction: classifier.Prediction{Classification: map[string]float64{"kinky": 0.9, "curly": 0.1}}}
	ts := newTestServer(t, withClassifier(mock))

	rec, env := ts.do(t, http.MethodPost, "/api/v1/classify", ClassifyRequest{Image: "aGVsbG8=", CreateSession: true})
	wantStatus(t, rec, http.StatusCreated)

	var resp ClassifyResponse
	decodeData(t, env, &resp)
	if resp.Session == nil || resp.Session.Token == "" {
		t.Fatalf("missing session in %+v", resp)
	}
	if resp.Session.Session.Profile != "kinky" {
		t.Errorf("session profile = %q, want kinky", resp.Session.Session.Profile)
	}

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/sessions/"+resp.Session.Token, nil)
	wantStatus(t, rec, http.StatusOK)
}

func TestClassify_UnknownLabelUsesDefaultProfile(t *testing.T) {
	t.Parallel()

	mock := &mockClassifier{prediction: classifier.Prediction{Classification: map[string]float64{"bald": 1}}}
	ts := newTestServer(t, withClassifier(mock))

	rec, env := ts.do(t, http.MethodPost, "/api/v1/classify", ClassifyRequest{Image: "aGVsbG8="})
	wantStatus(t, rec, http.StatusOK)

	var resp ClassifyResponse
	decodeData(t, env, &resp)
	if resp.HairType != "bald" || resp.Profile != classifier.DefaultProfile {
		t.Errorf("hair_type=%q profile=%q", resp.HairType, resp.Profile)
	}
}

func TestClassify_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		classifier Classifier
		body       interface{}
		status     int
		code       string
	}{
		{"disabled", nil, ClassifyRequest{Image: "aGVsbG8="}, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"missing image", &mockClassifier{}, ClassifyRequest{}, http.StatusBadRequest, ErrCodeValidationFailed},
		{"invalid image", &mockClassifier{err: fmt.Errorf("%w: not base64", classifier.ErrInvalidImage)},
			ClassifyRequest{Image: "???"}, http.StatusBadRequest, ErrCodeBadRequest},
		{"classifier down", &mockClassifier{err: fmt.Errorf("%w: connection refused", classifier.ErrUnavailable)},
			ClassifyRequest{Image: "aGVsbG8="}, http.StatusBadGateway, ErrCodeExternalServiceFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var opts []serverOption
			if tt.classifier != nil {
				opts = append(opts, withClassifier(tt.classifier))
			}
			ts := newTestServer(t, opts...)

			rec, env := ts.do(t, http.MethodPost, "/api/v1/classify", tt.body)
			wantStatus(t, rec, tt.status)
			wantErrorCode(t, env, tt.code)
		})
	}
}

func TestClassify_BodyTooLarge(t *testing.T) {
	t.Parallel()

	mock := &mockClassifier{prediction: curlyPrediction()}
	ts := newTestServer(t, withClassifier(mock), func(d *HandlerDeps, _ *ChiMiddlewareConfig) {
		d.MaxImageBytes = 16
	})

	image := strings.Repeat("A", bodyOverhead+64)
	rec, _ := ts.do(t, http.MethodPost, "/api/v1/classify", ClassifyRequest{Image: image})
	wantStatus(t, rec, http.StatusRequestEntityTooLarge)
	if mock.calls != 0 {
		t.Error("oversized body reached the classifier")
	}
}

func TestListProfiles(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	rec, env := ts.do(t, http.MethodGet, "/api/v1/profiles", nil)
	wantStatus(t, rec, http.StatusOK)

	var resp map[string][]string
	decodeData(t, env, &resp)
	want := []string{"curly", "default", "kinky", "straight", "wavy"}
	if strings.Join(resp["profiles"], ",") != strings.Join(want, ",") {
		t.Errorf("profiles = %v, want %v", resp["profiles"], want)
	}
}
