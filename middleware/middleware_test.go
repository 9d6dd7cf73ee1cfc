// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/ask-the-audience/models"
)

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusCreated, map[string]string{"hello": "world"})

	if w.Code != http.StatusCreated {
		t.Errorf("Expected 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	if body["hello"] != "world" {
		t.Errorf("Unexpected body %v", body)
	}
}

func TestErrorResponseCarriesCode(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Session not found")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
	var body models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	if body.Error != models.CodeNotFound {
		t.Errorf("Expected code %q, got %q", models.CodeNotFound, body.Error)
	}
	if body.Message == "" {
		t.Error("Expected a human-readable message")
	}
}

func TestParseJSONBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"team":"A"}`))
	var req models.ScoreRequest
	if err := ParseJSONBody(r, &req); err != nil {
		t.Fatalf("ParseJSONBody failed: %v", err)
	}
	if req.Team != "A" {
		t.Errorf("Expected team A, got %q", req.Team)
	}

	r = httptest.NewRequest("POST", "/", strings.NewReader(`not json`))
	if err := ParseJSONBody(r, &req); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS("https://app.example.com", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Preflight should not reach the next handler")
	}))

	r := httptest.NewRequest(http.MethodOptions, "/api/session", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for preflight, got %d", w.Code)
	}
	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "https://app.example.com" {
		t.Errorf("Expected configured origin, got %q", origin)
	}
}

func TestCORSPassesThrough(t *testing.T) {
	called := false
	handler := CORS("https://app.example.com", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if !called {
		t.Error("GET request should reach the next handler")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name     string
		xff      string
		realIP   string
		remote   string
		expected string
	}{
		{"forwarded chain", "203.0.113.7, 10.0.0.1", "", "10.0.0.2:1234", "203.0.113.7"},
		{"real ip", "", "203.0.113.8", "10.0.0.2:1234", "203.0.113.8"},
		{"remote addr", "", "", "203.0.113.9:5678", "203.0.113.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := GetClientIP(r); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestWithLogging(t *testing.T) {
	called := false
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	r := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler(w, r)

	if !called {
		t.Error("Wrapped handler not called")
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("Status not propagated, got %d", w.Code)
	}
}
