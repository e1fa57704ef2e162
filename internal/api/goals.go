package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/StrideHQ/stride-web/internal/db"
	"github.com/StrideHQ/stride-web/internal/logger"
	"github.com/StrideHQ/stride-web/internal/models"
)

// respondGoalNotFound writes a 404 when err is ErrGoalNotFound.
// Returns true if a response was written.
func respondGoalNotFound(w http.ResponseWriter, err error) bool {
	if errors.Is(err, db.ErrGoalNotFound) {
		respondError(w, http.StatusNotFound, "Goal not found")
		return true
	}
	return false
}

// HandleListGoals returns all goals
func HandleListGoals(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.Ctx(r.Context())

		dbCtx, dbCancel := context.WithTimeout(r.Context(), DatabaseTimeout)
		defer dbCancel()

		goals, err := database.ListGoals(dbCtx)
		if err != nil {
			log.Error("Failed to list goals", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to list goals")
			return
		}

		respondJSON(w, http.StatusOK, goals)
	}
}

// GoalDetail is a goal with its subgoals attached
type GoalDetail struct {
	models.Goal
	Subgoals []models.Subgoal `json:"subgoals"`
}

// HandleGetGoal returns a single goal with its subgoals
func HandleGetGoal(database *db.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.Ctx(r.Context())

		goalID, err := strconv.ParseInt(chi.URLParam(r, "goalId"), 10, 64)
		if err != nil || goalID <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid goal ID")
			return
		}

		dbCtx, dbCancel := context.WithTimeout(r.Context(), DatabaseTimeout)
		defer dbCancel()

		goal, err := database.GetGoal(dbCtx, goalID)
		if err != nil {
			if respondGoalNotFound(w, err) {
				return
			}
			log.Error("Failed to get goal", "error", err, "goal_id", goalID)
			respondError(w, http.StatusInternalServerError, "Failed to get goal")
			return
		}

		subgoals, err := database.ListSubgoals(dbCtx, &goalID)
		if err != nil {
			log.Error("Failed to list subgoals", "error", err, "goal_id", goalID)
			respondError(w, http.StatusInternalServerError, "Failed to get goal")
			return
		}

		respondJSON(w, http.StatusOK, GoalDetail{Goal: *goal, Subgoals: subgoals})
	}
}
