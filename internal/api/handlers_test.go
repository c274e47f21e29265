package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/limjk/policylens/internal/source"
)

func newTestServer() *Server {
	return NewServer(ServerConfig{
		Documents: source.NewTemplateSource(),
	})
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestHandleSearch(t *testing.T) {
	server := newTestServer()

	payload := `{"query": "compare BTO waiting times", "userType": "lawyer"}`
	req := httptest.NewRequest("POST", "/api/v1/search", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp SearchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success")
	}
	if resp.UserType != "lawyer" {
		t.Errorf("expected lawyer user type, got %s", resp.UserType)
	}
	if resp.Results == nil {
		t.Fatal("expected results")
	}
	if resp.Results.CrossVerification == nil {
		t.Error("cross-verification defaults to enabled")
	}
	if resp.DocumentCount != resp.Results.DocumentCount {
		t.Error("document counts must agree")
	}
	if resp.SearchTime == "" {
		t.Error("expected a search timestamp")
	}
}

func TestHandleSearch_CrossVerificationOptOut(t *testing.T) {
	server := newTestServer()

	payload := `{"query": "BTO supply", "includeCrossVerification": false}`
	req := httptest.NewRequest("POST", "/api/v1/search", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp SearchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Results.CrossVerification != nil {
		t.Error("expected no cross-verification block when opted out")
	}
	if resp.UserType != "layperson" {
		t.Errorf("expected layperson default, got %s", resp.UserType)
	}
}

func TestHandleSearch_BadRequests(t *testing.T) {
	server := newTestServer()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"query": `},
		{"empty query", `{"query": ""}`},
		{"blank query", `{"query": "   "}`},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("POST", "/api/v1/search", bytes.NewReader([]byte(tt.body)))
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.name, rec.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("%s: decode response: %v", tt.name, err)
		}
		if body["error"] == "" {
			t.Errorf("%s: expected an error message", tt.name)
		}
	}
}
