package analytics

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/StrideHQ/stride-web/internal/models"
)

func TestCompute_EmptyInput(t *testing.T) {
	snap := Compute(nil, nil, nil, TimeframeMonth, nil, testRef)

	if snap.Overview.TotalTasks != 0 || snap.Overview.CompletionRate != 0 {
		t.Errorf("Overview = %+v, want zeroed", snap.Overview)
	}
	if snap.Streaks.Current != 0 || snap.Streaks.Longest != 0 {
		t.Errorf("Streaks = %+v, want zeroed", snap.Streaks)
	}
	if snap.Forecast.EstimatedCompletionDate != nil {
		t.Errorf("Forecast date = %v, want nil", snap.Forecast.EstimatedCompletionDate)
	}
	if len(snap.Velocity.Periods) != 4 {
		t.Errorf("len(Velocity.Periods) = %d, want 4", len(snap.Velocity.Periods))
	}
	if len(snap.Heatmap) != 42 {
		t.Errorf("len(Heatmap) = %d, want 42", len(snap.Heatmap))
	}
}

func TestCompute_EmptyInputSerializesWithoutNulls(t *testing.T) {
	snap := Compute(nil, nil, nil, TimeframeMonth, nil, testRef)

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	// Collection fields must encode as [] rather than null.
	for _, field := range []string{"health", "risk", "burndown", "recent_wins", "timeline", "milestones"} {
		needle := []byte(`"` + field + `":null`)
		if bytes.Contains(data, needle) {
			t.Errorf("snapshot JSON contains %s, want empty array", needle)
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	category := "Work"
	end := testRef.Add(-2 * time.Hour)
	start := end.Add(-24 * time.Hour)
	goals := []models.Goal{{ID: 1, Name: "g", Status: "In Progress", CreatedAt: start}}
	subgoals := []models.Subgoal{{ID: 1, GoalID: 1, Name: "m", Status: "In Progress"}}
	tasks := []models.Task{
		{ID: 1, GoalID: 1, Name: "a", Priority: models.PriorityHigh, Done: true, StartDate: &start, EndDate: &end, Category: &category},
		{ID: 2, GoalID: 1, Name: "b", Priority: models.PriorityLow},
	}

	first, err := json.Marshal(Compute(goals, subgoals, tasks, TimeframeWeek, nil, testRef))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	second, err := json.Marshal(Compute(goals, subgoals, tasks, TimeframeWeek, nil, testRef))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical input and reference instant produced different snapshots")
	}
}

func TestCompute_GoalScoping(t *testing.T) {
	goals := []models.Goal{
		{ID: 1, Name: "mine"},
		{ID: 2, Name: "other"},
	}
	tasks := []models.Task{
		doneTask(1, "a", testRef.Add(-time.Hour)),
		doneTask(2, "b", testRef.Add(-time.Hour)),
		doneTask(2, "c", testRef.Add(-time.Hour)),
	}

	goalID := int64(1)
	snap := Compute(goals, nil, tasks, TimeframeMonth, &goalID, testRef)

	if snap.Overview.TotalTasks != 1 {
		t.Errorf("scoped TotalTasks = %d, want 1", snap.Overview.TotalTasks)
	}
	if len(snap.Health) != 1 || snap.Health[0].GoalID != 1 {
		t.Errorf("scoped Health = %+v, want only goal 1", snap.Health)
	}
	if snap.GoalID == nil || *snap.GoalID != 1 {
		t.Errorf("GoalID = %v, want 1", snap.GoalID)
	}
}

func TestCompute_BurndownOnlyWhenScoped(t *testing.T) {
	goals := []models.Goal{goalWithEndDate(1, "g", testRef.AddDate(0, 0, 14))}
	tasks := []models.Task{openTask(1, "a")}

	unscoped := Compute(goals, nil, tasks, TimeframeMonth, nil, testRef)
	if len(unscoped.Burndown) != 0 {
		t.Errorf("unscoped Burndown has %d points, want 0", len(unscoped.Burndown))
	}

	goalID := int64(1)
	scoped := Compute(goals, nil, tasks, TimeframeMonth, &goalID, testRef)
	if len(scoped.Burndown) == 0 {
		t.Error("scoped Burndown is empty, want points")
	}
}

func TestCompute_UnknownGoalScopeYieldsEmpty(t *testing.T) {
	goals := []models.Goal{{ID: 1, Name: "g"}}
	tasks := []models.Task{openTask(1, "a")}

	missing := int64(99)
	snap := Compute(goals, nil, tasks, TimeframeMonth, &missing, testRef)

	if snap.Overview.TotalTasks != 0 {
		t.Errorf("TotalTasks = %d, want 0 for unknown goal scope", snap.Overview.TotalTasks)
	}
	if len(snap.Burndown) != 0 {
		t.Errorf("Burndown has %d points, want 0", len(snap.Burndown))
	}
}
