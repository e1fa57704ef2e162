package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/StrideHQ/stride-web/internal/db"
	"github.com/StrideHQ/stride-web/internal/ratelimit"
	"github.com/StrideHQ/stride-web/internal/storage"
)

// testRouter builds the full middleware chain with inert dependencies.
// Routes that never reach the database or storage can be exercised
// without containers.
func testRouter(t *testing.T) http.Handler {
	t.Helper()

	limiter := ratelimit.NewTokenBucket(1000, 1000)
	t.Cleanup(limiter.Stop)

	server := NewServer(&db.DB{}, &storage.S3Storage{}, limiter, limiter, []string{"*"})
	return server.SetupRoutes()
}

func TestHandleHealth(t *testing.T) {
	handler := testRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf(`status field = %q, want "ok"`, body["status"])
	}
}

func TestHandleRoot(t *testing.T) {
	handler := testRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["service"] != "stride-backend" {
		t.Errorf(`service field = %q, want "stride-backend"`, body["service"])
	}
}

func TestUnknownRoute(t *testing.T) {
	handler := testRouter(t)

	req := httptest.NewRequest("GET", "/nonexistent", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestValidateContentType(t *testing.T) {
	handler := testRouter(t)

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
	}{
		{
			name:        "missing Content-Type",
			contentType: "",
			body:        `{"format":"json","timeframe":"week"}`,
			wantStatus:  http.StatusUnsupportedMediaType,
		},
		{
			name:        "wrong media type",
			contentType: "text/plain",
			body:        `{"format":"json","timeframe":"week"}`,
			wantStatus:  http.StatusUnsupportedMediaType,
		},
		{
			// Charset parameter is stripped before comparison; the
			// request then fails format validation, not media type.
			name:        "json with charset",
			contentType: "application/json; charset=utf-8",
			body:        `{"format":"xml","timeframe":"week"}`,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "malformed body",
			contentType: "application/json",
			body:        `{not json`,
			wantStatus:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/analytics/export/shares", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestExportRateLimit(t *testing.T) {
	limiter := ratelimit.NewTokenBucket(1000, 1000)
	t.Cleanup(limiter.Stop)
	exportLimiter := ratelimit.NewTokenBucket(1, 2)
	t.Cleanup(exportLimiter.Stop)

	server := NewServer(&db.DB{}, &storage.S3Storage{}, limiter, exportLimiter, []string{"*"})
	handler := server.SetupRoutes()

	// Invalid timeframe keeps the handler from touching the database
	// while still passing through the export limiter.
	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/v1/analytics/export?timeframe=decade", nil)
		req.RemoteAddr = "10.9.8.7:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		last = rec.Code
	}

	if last != http.StatusTooManyRequests {
		t.Errorf("third export request status = %d, want %d", last, http.StatusTooManyRequests)
	}
}
