package db

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/StrideHQ/stride-web/internal/models"
)

// GetGoal retrieves a single goal by ID
func (db *DB) GetGoal(ctx context.Context, goalID int64) (*models.Goal, error) {
	query := `SELECT id, name, status, category, end_date, created_at FROM goals WHERE id = $1`

	var g models.Goal
	err := db.conn.QueryRowContext(ctx, query, goalID).Scan(
		&g.ID,
		&g.Name,
		&g.Status,
		&g.Category,
		&g.EndDate,
		&g.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	return &g, nil
}

// ListGoals retrieves all goals ordered by creation time
func (db *DB) ListGoals(ctx context.Context) ([]models.Goal, error) {
	ctx, span := tracer.Start(ctx, "db.list_goals")
	defer span.End()

	query := `SELECT id, name, status, category, end_date, created_at FROM goals ORDER BY created_at, id`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.Name, &g.Status, &g.Category, &g.EndDate, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("goals.count", len(goals)))
	return goals, nil
}

// ListSubgoals retrieves subgoals, optionally scoped to one goal
func (db *DB) ListSubgoals(ctx context.Context, goalID *int64) ([]models.Subgoal, error) {
	ctx, span := tracer.Start(ctx, "db.list_subgoals",
		trace.WithAttributes(attribute.Bool("scoped", goalID != nil)))
	defer span.End()

	query := `
		SELECT id, goal_id, name, status
		FROM subgoals
		WHERE ($1::bigint IS NULL OR goal_id = $1)
		ORDER BY id
	`

	rows, err := db.conn.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subgoals: %w", err)
	}
	defer rows.Close()

	subgoals := []models.Subgoal{}
	for rows.Next() {
		var sg models.Subgoal
		if err := rows.Scan(&sg.ID, &sg.GoalID, &sg.Name, &sg.Status); err != nil {
			return nil, fmt.Errorf("failed to scan subgoal: %w", err)
		}
		subgoals = append(subgoals, sg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("subgoals.count", len(subgoals)))
	return subgoals, nil
}
