package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/StrideHQ/stride-web/internal/analytics"
	"github.com/StrideHQ/stride-web/internal/db"
	"github.com/StrideHQ/stride-web/internal/logger"
	"github.com/StrideHQ/stride-web/internal/models"
)

// snapshotParams holds the parsed query parameters shared by the
// snapshot and export endpoints.
type snapshotParams struct {
	Timeframe analytics.Timeframe
	GoalID    *int64
}

// parseSnapshotParams validates timeframe and goal_id query parameters.
// Writes an error response and returns false on invalid input.
func parseSnapshotParams(w http.ResponseWriter, r *http.Request) (snapshotParams, bool) {
	var params snapshotParams

	tf, err := analytics.ParseTimeframe(r.URL.Query().Get("timeframe"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "timeframe must be one of: week, month, quarter, year")
		return params, false
	}
	params.Timeframe = tf

	if idStr := r.URL.Query().Get("goal_id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			respondError(w, http.StatusBadRequest, "goal_id must be a positive integer")
			return params, false
		}
		params.GoalID = &id
	}

	return params, true
}

// fetchRecords loads the goal, subgoal, and task records the analytics
// engine consumes. Scoped queries verify goal existence first so a
// missing goal surfaces as db.ErrGoalNotFound rather than empty data.
func fetchRecords(ctx context.Context, database *db.DB, goalID *int64) ([]models.Goal, []models.Subgoal, []models.Task, error) {
	if goalID != nil {
		if _, err := database.GetGoal(ctx, *goalID); err != nil {
			return nil, nil, nil, err
		}
	}

	goals, err := database.ListGoals(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	subgoals, err := database.ListSubgoals(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	tasks, err := database.ListTasks(ctx, db.TaskFilter{})
	if err != nil {
		return nil, nil, nil, err
	}
	return goals, subgoals, tasks, nil
}

// HandleGetSnapshot computes the full analytics snapshot for the
// requested timeframe, optionally scoped to a single goal.
//
// Query parameters:
//   - timeframe: week, month, quarter, or year (default: month)
//   - goal_id: scope the snapshot to one goal
func HandleGetSnapshot(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.Ctx(r.Context())

		params, ok := parseSnapshotParams(w, r)
		if !ok {
			return
		}

		// Capture the reference instant once so every analyzer sees the
		// same clock reading
		ref := time.Now().UTC()

		dbCtx, dbCancel := context.WithTimeout(r.Context(), DatabaseTimeout)
		defer dbCancel()

		goals, subgoals, tasks, err := fetchRecords(dbCtx, database, params.GoalID)
		if err != nil {
			if respondGoalNotFound(w, err) {
				return
			}
			log.Error("Failed to load analytics records", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to load analytics data")
			return
		}

		snapshot := analytics.Compute(goals, subgoals, tasks, params.Timeframe, params.GoalID, ref)
		respondJSON(w, http.StatusOK, snapshot)
	}
}
