package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		origin      string
		env         string
		wantAllowed bool
	}{
		{"no origin", "", "", false},
		{"localhost", "http://localhost:3000", "", true},
		{"localhost https", "https://localhost", "", true},
		{"localhost lookalike", "http://localhost.evil.com", "", false},
		{"unknown origin", "https://example.com", "", false},
		{"whitelisted origin", "https://example.com", "https://example.com", true},
		{"whitelisted list", "https://b.example.com", "https://a.example.com, https://b.example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("IMAGEHASH_ALLOWED_ORIGINS", tt.env)

			handler := CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			got := rec.Header().Get("Access-Control-Allow-Origin")
			if tt.wantAllowed && got != tt.origin {
				t.Errorf("expected origin %q to be allowed, got header %q", tt.origin, got)
			}
			if !tt.wantAllowed && got != "" {
				t.Errorf("expected origin %q to be rejected, got header %q", tt.origin, got)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight request should not reach the next handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/hash", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("expected Allow-Methods header on preflight response")
	}
}
