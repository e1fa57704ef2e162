package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/StrideHQ/stride-web/internal/db"
	"github.com/StrideHQ/stride-web/internal/logger"
	"github.com/StrideHQ/stride-web/internal/ratelimit"
	"github.com/StrideHQ/stride-web/internal/storage"
)

const (
	// DatabaseTimeout is the maximum duration for database operations
	DatabaseTimeout = 5 * time.Second

	// StorageTimeout is the maximum duration for object storage operations
	StorageTimeout = 30 * time.Second
)

// Server holds dependencies for API handlers
type Server struct {
	db             *db.DB
	storage        *storage.S3Storage
	limiter        ratelimit.Limiter
	exportLimiter  ratelimit.Limiter
	allowedOrigins []string
}

// NewServer creates a new API server
func NewServer(database *db.DB, store *storage.S3Storage, limiter, exportLimiter ratelimit.Limiter, allowedOrigins []string) *Server {
	return &Server{
		db:             database,
		storage:        store,
		limiter:        limiter,
		exportLimiter:  exportLimiter,
		allowedOrigins: allowedOrigins,
	}
}

// SetupRoutes configures HTTP routes
func (s *Server) SetupRoutes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(validateContentType)
	r.Use(SpanEnricher)
	r.Use(ratelimit.Middleware(s.limiter))

	// Health check
	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleRoot)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/analytics/snapshot", HandleGetSnapshot(s.db))
		r.Get("/analytics/export", ratelimit.HandlerFunc(s.exportLimiter, HandleExport(s.db)))

		r.Post("/analytics/export/shares", HandleCreateShare(s.db, s.storage))
		r.Get("/analytics/export/shares/{token}", HandleGetShare(s.db, s.storage))
		r.Delete("/analytics/export/shares/{token}", HandleRevokeShare(s.db, s.storage))

		r.Get("/goals", HandleListGoals(s.db))
		r.Get("/goals/{goalId}", HandleGetGoal(s.db))
		r.Get("/tasks", HandleListTasks(s.db))
	})

	return r
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// handleRoot returns API info
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"service": "stride-backend",
		"version": "v1",
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
