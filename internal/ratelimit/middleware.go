package ratelimit

import (
	"net"
	"net/http"

	"github.com/StrideHQ/stride-web/internal/logger"
)

// Middleware applies the limiter to every request, keyed by client IP.
// Place after chi's RealIP middleware so RemoteAddr reflects the
// originating client behind a proxy.
func Middleware(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			if !limiter.Allow(r.Context(), key) {
				logger.Ctx(r.Context()).Warn("rate limit exceeded",
					"key", key, "path", r.URL.Path)
				http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// HandlerFunc wraps a single handler with rate limiting, for endpoints
// that need a tighter limit than the shared middleware.
func HandlerFunc(limiter Limiter, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		if !limiter.Allow(r.Context(), key) {
			logger.Ctx(r.Context()).Warn("rate limit exceeded",
				"key", key, "path", r.URL.Path)
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}
		handler(w, r)
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
