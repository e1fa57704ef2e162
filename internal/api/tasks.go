package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/StrideHQ/stride-web/internal/db"
	"github.com/StrideHQ/stride-web/internal/logger"
)

// HandleListTasks returns tasks with optional filters.
//
// Query parameters:
//   - goal_id: restrict to one goal
//   - categories: comma-separated category names
//   - priorities: comma-separated priority names (matched case-insensitively)
//   - done: "true" to return only completed tasks
func HandleListTasks(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.Ctx(r.Context())

		var filter db.TaskFilter

		if idStr := r.URL.Query().Get("goal_id"); idStr != "" {
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil || id <= 0 {
				respondError(w, http.StatusBadRequest, "goal_id must be a positive integer")
				return
			}
			filter.GoalID = &id
		}

		filter.Categories = splitParam(r.URL.Query().Get("categories"))
		filter.Priorities = splitParam(r.URL.Query().Get("priorities"))

		if doneStr := r.URL.Query().Get("done"); doneStr != "" {
			filter.DoneOnly = doneStr == "true" || doneStr == "1"
		}

		dbCtx, dbCancel := context.WithTimeout(r.Context(), DatabaseTimeout)
		defer dbCancel()

		tasks, err := database.ListTasks(dbCtx, filter)
		if err != nil {
			log.Error("Failed to list tasks", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to list tasks")
			return
		}

		respondJSON(w, http.StatusOK, tasks)
	}
}

// splitParam parses a comma-separated query value into a slice,
// dropping empty entries. Returns an empty slice, never nil.
func splitParam(raw string) []string {
	values := []string{}
	if raw == "" {
		return values
	}
	for _, v := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
