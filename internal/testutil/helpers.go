package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/StrideHQ/stride-web/internal/models"
)

// SeedGoal inserts a goal and returns its ID
func SeedGoal(t *testing.T, env *TestEnvironment, name string, endDate *time.Time) int64 {
	t.Helper()

	var id int64
	err := env.DB.QueryRow(context.Background(),
		`INSERT INTO goals (name, status, end_date) VALUES ($1, 'In Progress', $2) RETURNING id`,
		name, endDate).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed goal: %v", err)
	}
	return id
}

// SeedSubgoal inserts a subgoal and returns its ID
func SeedSubgoal(t *testing.T, env *TestEnvironment, goalID int64, name, status string) int64 {
	t.Helper()

	var id int64
	err := env.DB.QueryRow(context.Background(),
		`INSERT INTO subgoals (goal_id, name, status) VALUES ($1, $2, $3) RETURNING id`,
		goalID, name, status).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed subgoal: %v", err)
	}
	return id
}

// SeedTask inserts a task and returns its ID
func SeedTask(t *testing.T, env *TestEnvironment, task models.Task) int64 {
	t.Helper()

	priority := task.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	var id int64
	err := env.DB.QueryRow(context.Background(),
		`INSERT INTO tasks (goal_id, subgoal_id, name, priority, is_done, start_date, end_date, category)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		task.GoalID, task.SubgoalID, task.Name, string(priority), task.Done,
		task.StartDate, task.EndDate, task.Category).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	return id
}

// CompletedTask builds a done task ending at the given time
func CompletedTask(goalID int64, name string, end time.Time) models.Task {
	start := end.Add(-24 * time.Hour)
	return models.Task{
		GoalID:    goalID,
		Name:      name,
		Priority:  models.PriorityMedium,
		Done:      true,
		StartDate: &start,
		EndDate:   &end,
	}
}

// JSONRequest creates an HTTP request with a JSON body
func JSONRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()

	var bodyReader *bytes.Reader
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(bodyJSON)
	} else {
		bodyReader = bytes.NewReader([]byte{})
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ParseJSONResponse decodes JSON response body into v
func ParseJSONResponse(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

// AssertStatus fails the test when the recorded status differs
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()

	if w.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}
