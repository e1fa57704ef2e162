package db

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/StrideHQ/stride-web/internal/models"
)

// TaskFilter narrows task listings. Zero-value fields are ignored.
type TaskFilter struct {
	GoalID     *int64
	Categories []string
	Priorities []string
	DoneOnly   bool
}

// ListTasks retrieves task records matching the filter. Priorities are
// normalized through models.ParsePriority on the way out, so everything
// downstream sees the closed lowercase enum regardless of how rows were
// written.
func (db *DB) ListTasks(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	ctx, span := tracer.Start(ctx, "db.list_tasks",
		trace.WithAttributes(
			attribute.Bool("scoped", filter.GoalID != nil),
			attribute.Bool("done_only", filter.DoneOnly),
		))
	defer span.End()

	query := `
		SELECT id, goal_id, subgoal_id, name, priority, is_done, start_date, end_date, category
		FROM tasks
		WHERE ($1::bigint IS NULL OR goal_id = $1)
			AND (cardinality($2::text[]) = 0 OR COALESCE(category, 'Uncategorized') = ANY($2::text[]))
			AND (cardinality($3::text[]) = 0 OR lower(priority) = ANY($3::text[]))
			AND ($4 = false OR is_done = true)
		ORDER BY id
	`

	rows, err := db.conn.QueryContext(ctx, query,
		filter.GoalID,
		pq.Array(filter.Categories),
		pq.Array(filter.Priorities),
		filter.DoneOnly,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		var rawPriority string
		if err := rows.Scan(
			&t.ID,
			&t.GoalID,
			&t.SubgoalID,
			&t.Name,
			&rawPriority,
			&t.Done,
			&t.StartDate,
			&t.EndDate,
			&t.Category,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.Priority = models.ParsePriority(rawPriority)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("tasks.count", len(tasks)))
	return tasks, nil
}
