package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glyphforge/glyphforge/pkg/forge"
	"github.com/glyphforge/glyphforge/pkg/registry"
)

func testServer(t *testing.T) (*Server, registry.Registry) {
	t.Helper()
	reg := registry.NewMemoryRegistry()
	return NewServer(forge.New(nil, nil, nil, nil), reg, nil), reg
}

func TestHealth(t *testing.T) {
	s, _ := testServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestGenerateEndpoint(t *testing.T) {
	s, _ := testServer(t)

	body := `{"kind":"barline","dimensions":[{"width":32,"height":48}]}`
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/generate", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp setResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !strings.HasPrefix(resp.Primary.Metadata.CapsuleID, "barline-32x48-") {
		t.Errorf("capsule ID = %q", resp.Primary.Metadata.CapsuleID)
	}
	if resp.Primary.PNG == "" {
		t.Error("missing PNG payload")
	}
	if len(resp.Primary.Results) != 3 {
		t.Errorf("results = %d, want 3", len(resp.Primary.Results))
	}
}

func TestGenerateEndpointErrors(t *testing.T) {
	s, _ := testServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed JSON", "{", http.StatusBadRequest, "INVALID_REQUEST"},
		{"no dimensions", `{"kind":"stem"}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad dimensions", `{"kind":"stem","dimensions":[{"width":-1,"height":4}]}`, http.StatusBadRequest, "INVALID_DIMENSIONS"},
		{"bad kind chars", `{"kind":"Not Valid","dimensions":[{"width":8,"height":8}]}`, http.StatusBadRequest, "INVALID_KIND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/generate", strings.NewReader(tt.body)))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d; body: %s", rec.Code, tt.status, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if resp.Code != tt.code {
				t.Errorf("code = %q, want %q", resp.Code, tt.code)
			}
			if resp.RequestID == "" {
				t.Error("error response missing request ID")
			}
		})
	}
}

func TestGenerateEndpointFallback(t *testing.T) {
	s, _ := testServer(t)

	body := `{"kind":"unknown-kind","dimensions":[{"width":16,"height":16}]}`
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/generate", strings.NewReader(body)))

	// A lookup miss degrades to an invalid capsule, not an HTTP error.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var resp setResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Primary.Valid {
		t.Error("fallback capsule must be invalid")
	}
}

func TestMorphEndpointMissingSource(t *testing.T) {
	s, _ := testServer(t)

	body := `{"source_a":"ghost-a","source_b":"ghost-b"}`
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/morph", strings.NewReader(body)))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body: %s", rec.Code, rec.Body.String())
	}
}

func TestRegistryEndpoint(t *testing.T) {
	s, reg := testServer(t)

	_, err := reg.Append(context.Background(), registry.Record{
		CapsuleID:    "stem-16x16-deadbeef",
		TemplateHash: "deadbeef",
		CreatedAt:    time.Now().UTC(),
		Valid:        true,
	})
	if err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/registry", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Records []registry.Record `json:"records"`
		Count   int               `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 || resp.Records[0].CapsuleID != "stem-16x16-deadbeef" {
		t.Errorf("unexpected listing: %+v", resp)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "fixed-id" {
		t.Errorf("request ID = %q, want fixed-id", got)
	}
}
