package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/StrideHQ/stride-web/internal/analytics"
	"github.com/StrideHQ/stride-web/internal/db"
	"github.com/StrideHQ/stride-web/internal/export"
	"github.com/StrideHQ/stride-web/internal/logger"
	"github.com/StrideHQ/stride-web/internal/models"
	"github.com/StrideHQ/stride-web/internal/storage"
)

const (
	// defaultShareExpiryDays applies when the request omits expires_in_days
	defaultShareExpiryDays = 7

	// maxShareExpiryDays caps how long a share artifact is retained
	maxShareExpiryDays = 30
)

// renderExport computes a snapshot and renders it in the requested format.
func renderExport(ctx context.Context, database *db.DB, params snapshotParams, format export.Format, ref time.Time) ([]byte, error) {
	goals, subgoals, tasks, err := fetchRecords(ctx, database, params.GoalID)
	if err != nil {
		return nil, err
	}

	snapshot := analytics.Compute(goals, subgoals, tasks, params.Timeframe, params.GoalID, ref)
	exporter := &export.Exporter{
		Snapshot: snapshot,
		Goals:    goals,
		Subgoals: subgoals,
		Tasks:    tasks,
	}
	return exporter.Render(format)
}

// HandleExport renders an analytics export for direct download.
//
// Query parameters:
//   - format: json, csv, or text (default: json)
//   - timeframe, goal_id: as for the snapshot endpoint
func HandleExport(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.Ctx(r.Context())

		params, ok := parseSnapshotParams(w, r)
		if !ok {
			return
		}
		format, err := export.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "format must be one of: json, csv, text")
			return
		}

		ref := time.Now().UTC()

		dbCtx, dbCancel := context.WithTimeout(r.Context(), DatabaseTimeout)
		defer dbCancel()

		data, err := renderExport(dbCtx, database, params, format, ref)
		if err != nil {
			if respondGoalNotFound(w, err) {
				return
			}
			log.Error("Failed to render export", "error", err, "format", format)
			respondError(w, http.StatusInternalServerError, "Failed to render export")
			return
		}

		filename := fmt.Sprintf("productivity-export-%s.%s", ref.Format("2006-01-02"), format)
		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		writeMaybeCompressed(w, r, data)
	}
}

// CreateShareRequest is the request body for creating an export share
type CreateShareRequest struct {
	Format        string `json:"format"`
	Timeframe     string `json:"timeframe"`
	GoalID        *int64 `json:"goal_id"`
	ExpiresInDays *int   `json:"expires_in_days"`
}

// CreateShareResponse is the response for creating an export share
type CreateShareResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	Format    string    `json:"format"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HandleCreateShare renders an export, stores the artifact, and returns
// a share token for unauthenticated retrieval.
func HandleCreateShare(database *db.DB, store *storage.S3Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.Ctx(r.Context())

		var req CreateShareRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		format, err := export.ParseFormat(req.Format)
		if err != nil {
			respondError(w, http.StatusBadRequest, "format must be one of: json, csv, text")
			return
		}
		tf, err := analytics.ParseTimeframe(req.Timeframe)
		if err != nil {
			respondError(w, http.StatusBadRequest, "timeframe must be one of: week, month, quarter, year")
			return
		}
		if req.GoalID != nil && *req.GoalID <= 0 {
			respondError(w, http.StatusBadRequest, "goal_id must be a positive integer")
			return
		}

		expiryDays := defaultShareExpiryDays
		if req.ExpiresInDays != nil {
			if *req.ExpiresInDays <= 0 || *req.ExpiresInDays > maxShareExpiryDays {
				respondError(w, http.StatusBadRequest,
					fmt.Sprintf("expires_in_days must be between 1 and %d", maxShareExpiryDays))
				return
			}
			expiryDays = *req.ExpiresInDays
		}

		ref := time.Now().UTC()
		params := snapshotParams{Timeframe: tf, GoalID: req.GoalID}

		dbCtx, dbCancel := context.WithTimeout(r.Context(), DatabaseTimeout)
		defer dbCancel()

		data, err := renderExport(dbCtx, database, params, format, ref)
		if err != nil {
			if respondGoalNotFound(w, err) {
				return
			}
			log.Error("Failed to render export for share", "error", err, "format", format)
			respondError(w, http.StatusInternalServerError, "Failed to render export")
			return
		}

		token := uuid.NewString()
		key := storage.ExportKey(token, string(format))

		storageCtx, storageCancel := context.WithTimeout(r.Context(), StorageTimeout)
		defer storageCancel()

		if err := store.Upload(storageCtx, key, data, format.ContentType()); err != nil {
			log.Error("Failed to upload export artifact", "error", err, "key", key)
			respondError(w, http.StatusInternalServerError, "Failed to store export")
			return
		}

		share := models.ExportShare{
			Token:     token,
			ObjectKey: key,
			Format:    string(format),
			CreatedAt: ref,
			ExpiresAt: ref.AddDate(0, 0, expiryDays),
		}
		if err := database.CreateExportShare(dbCtx, share); err != nil {
			log.Error("Failed to record export share", "error", err, "token", token)
			// Best effort: the orphaned artifact is removed by the sweeper
			respondError(w, http.StatusInternalServerError, "Failed to create share")
			return
		}

		respondJSON(w, http.StatusCreated, CreateShareResponse{
			Token:     share.Token,
			URL:       "/api/v1/analytics/export/shares/" + share.Token,
			Format:    share.Format,
			ExpiresAt: share.ExpiresAt,
		})
	}
}

// HandleGetShare serves a previously stored export artifact by token.
// No authentication: possession of the token grants read access.
func HandleGetShare(database *db.DB, store *storage.S3Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.Ctx(r.Context())

		token := chi.URLParam(r, "token")
		if _, err := uuid.Parse(token); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid share token")
			return
		}

		dbCtx, dbCancel := context.WithTimeout(r.Context(), DatabaseTimeout)
		defer dbCancel()

		share, err := database.GetExportShare(dbCtx, token, time.Now().UTC())
		if err != nil {
			switch {
			case errors.Is(err, db.ErrShareNotFound):
				respondError(w, http.StatusNotFound, "Share not found")
			case errors.Is(err, db.ErrShareExpired):
				respondError(w, http.StatusGone, "Share expired")
			default:
				log.Error("Failed to load export share", "error", err, "token", token)
				respondError(w, http.StatusInternalServerError, "Failed to load share")
			}
			return
		}

		storageCtx, storageCancel := context.WithTimeout(r.Context(), StorageTimeout)
		defer storageCancel()

		data, err := store.Download(storageCtx, share.ObjectKey)
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotFound) {
				respondError(w, http.StatusNotFound, "Share artifact no longer available")
				return
			}
			log.Error("Failed to download export artifact", "error", err, "key", share.ObjectKey)
			respondError(w, http.StatusInternalServerError, "Failed to load share")
			return
		}

		w.Header().Set("Content-Type", export.Format(share.Format).ContentType())
		writeMaybeCompressed(w, r, data)
	}
}

// HandleRevokeShare deletes a share row and its stored artifact.
func HandleRevokeShare(database *db.DB, store *storage.S3Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.Ctx(r.Context())

		token := chi.URLParam(r, "token")
		if _, err := uuid.Parse(token); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid share token")
			return
		}

		dbCtx, dbCancel := context.WithTimeout(r.Context(), DatabaseTimeout)
		defer dbCancel()

		// Fetch first so the object key is known even for expired shares
		share, err := database.GetExportShare(dbCtx, token, time.Time{})
		if err != nil {
			if errors.Is(err, db.ErrShareNotFound) {
				respondError(w, http.StatusNotFound, "Share not found")
				return
			}
			log.Error("Failed to load export share", "error", err, "token", token)
			respondError(w, http.StatusInternalServerError, "Failed to revoke share")
			return
		}

		if err := database.DeleteExportShare(dbCtx, token); err != nil {
			if errors.Is(err, db.ErrShareNotFound) {
				respondError(w, http.StatusNotFound, "Share not found")
				return
			}
			log.Error("Failed to delete export share", "error", err, "token", token)
			respondError(w, http.StatusInternalServerError, "Failed to revoke share")
			return
		}

		storageCtx, storageCancel := context.WithTimeout(r.Context(), StorageTimeout)
		defer storageCancel()

		if err := store.Delete(storageCtx, share.ObjectKey); err != nil {
			// Row is gone; the sweeper retries orphaned artifacts
			log.Warn("Failed to delete export artifact", "error", err, "key", share.ObjectKey)
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
