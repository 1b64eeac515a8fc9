package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Fantasim/solvault/internal/config"
	"github.com/Fantasim/solvault/internal/models"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestHostCheck(t *testing.T) {
	tests := []struct {
		name       string
		host       string
		wantStatus int
	}{
		{"localhost", "localhost:8080", http.StatusOK},
		{"loopback", "127.0.0.1:8080", http.StatusOK},
		{"localhost no port", "localhost", http.StatusOK},
		{"external host", "example.com", http.StatusForbidden},
		{"lan address", "192.168.1.10:8080", http.StatusForbidden},
	}

	handler := HostCheck(okHandler())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			req.Host = tt.host
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("HostCheck host=%q status = %d, want %d", tt.host, rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	handler := CORS(okHandler())

	t.Run("localhost origin allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Allow-Origin = %q", got)
		}
	})

	t.Run("external origin ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "http://evil.example.com")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Allow-Origin = %q, want empty", got)
		}
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("preflight status = %d, want %d", rec.Code, http.StatusNoContent)
		}
	})
}

func TestRateLimit(t *testing.T) {
	// rps=1 allows one immediate request plus one burst token.
	handler := RateLimit(1)(okHandler())

	statuses := make([]int, 3)
	bodies := make([]string, 3)
	for i := range statuses {
		req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		statuses[i] = rec.Code
		bodies[i] = rec.Body.String()
	}

	if statuses[0] != http.StatusOK {
		t.Errorf("first request status = %d, want 200", statuses[0])
	}

	limited := 0
	for i, s := range statuses {
		if s != http.StatusTooManyRequests {
			continue
		}
		limited++

		var resp models.APIError
		if err := json.Unmarshal([]byte(bodies[i]), &resp); err != nil {
			t.Fatalf("rate-limited body is not JSON: %v", err)
		}
		if resp.Error.Code != config.ErrorRateLimited {
			t.Errorf("rate-limited error code = %q, want %q", resp.Error.Code, config.ErrorRateLimited)
		}
	}
	if limited == 0 {
		t.Error("expected at least one rate-limited request")
	}
}

func TestRequestLogging(t *testing.T) {
	handler := RequestLogging(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
