package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/Fantasim/solvault/internal/config"
	"github.com/Fantasim/solvault/internal/models"
)

// RateLimit applies a global token-bucket limiter to the API. rps is the
// sustained request rate; a burst of the same size absorbs short spikes.
func RateLimit(rps int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), rps)

	slog.Debug("API rate limiter created", "rps", rps)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				slog.Warn("request rate limited",
					"path", r.URL.Path,
					"remoteAddr", r.RemoteAddr,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(models.APIError{
					Error: models.APIErrorDetail{
						Code:    config.ErrorRateLimited,
						Message: "too many requests",
					},
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
