package api

import (
	"net/http"
	"strings"

	"github.com/StrideHQ/stride-web/internal/logger"
)

// validateContentType middleware ensures POST requests carry a JSON body
func validateContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			log := logger.Ctx(r.Context())
			contentType := r.Header.Get("Content-Type")

			if contentType == "" {
				log.Info("Request missing Content-Type header", "method", r.Method, "path", r.URL.Path)
				respondError(w, http.StatusUnsupportedMediaType, "Content-Type header required")
				return
			}

			// Extract media type, ignoring parameters like charset
			mediaType := contentType
			if idx := strings.Index(contentType, ";"); idx != -1 {
				mediaType = strings.TrimSpace(contentType[:idx])
			}

			if mediaType != "application/json" {
				log.Info("Request with invalid Content-Type", "method", r.Method, "path", r.URL.Path, "content_type", mediaType)
				respondError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
