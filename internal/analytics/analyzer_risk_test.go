package analytics

import (
	"testing"

	"github.com/StrideHQ/stride-web/internal/models"
)

func riskFor(t *testing.T, goal models.Goal, subgoals []models.Subgoal, tasks []models.Task) GoalRisk {
	t.Helper()
	ds := NewDataset([]models.Goal{goal}, subgoals, tasks, testRef)
	risks := (&RiskAnalyzer{}).Analyze(ds)
	if len(risks) != 1 {
		t.Fatalf("len(risks) = %d, want 1", len(risks))
	}
	return risks[0]
}

func containsFactor(factors []string, want string) bool {
	for _, f := range factors {
		if f == want {
			return true
		}
	}
	return false
}

func TestRiskAnalyzer_OverdueGoal(t *testing.T) {
	goal := goalWithEndDate(1, "late", testRef.AddDate(0, 0, -5))
	risk := riskFor(t, goal, nil, nil)

	if !containsFactor(risk.Factors, "Goal is overdue") {
		t.Errorf("Factors = %v, want to contain %q", risk.Factors, "Goal is overdue")
	}
	if risk.Score < 40 {
		t.Errorf("Score = %d, want >= 40", risk.Score)
	}
}

func TestRiskAnalyzer_NoTasksNoActivityPenalty(t *testing.T) {
	// An empty goal has no activity penalty; only the zero-progress
	// factor applies.
	goal := models.Goal{ID: 1, Name: "fresh"}
	risk := riskFor(t, goal, nil, nil)

	if risk.Score != 25 {
		t.Errorf("Score = %d, want 25", risk.Score)
	}
	if containsFactor(risk.Factors, "No recent activity (last 3 days)") {
		t.Errorf("Factors = %v, should not penalize activity with zero tasks", risk.Factors)
	}
}

func TestRiskAnalyzer_LowRiskGoal(t *testing.T) {
	goal := goalWithEndDate(1, "healthy", testRef.AddDate(0, 0, 60))
	tasks := []models.Task{
		doneTask(1, "a", testRef.AddDate(0, 0, -1)),
		doneTask(1, "b", testRef.AddDate(0, 0, -2)),
		openTask(1, "c"),
	}
	risk := riskFor(t, goal, nil, tasks)

	if risk.Score != 0 {
		t.Errorf("Score = %d, want 0 (factors: %v)", risk.Score, risk.Factors)
	}
	if risk.Level != "low" {
		t.Errorf("Level = %q, want %q", risk.Level, "low")
	}
	if len(risk.Factors) != 0 {
		t.Errorf("Factors = %v, want empty", risk.Factors)
	}
}

func TestRiskAnalyzer_TimelinePressure(t *testing.T) {
	// 5 remaining tasks against a 2-day runway.
	goal := goalWithEndDate(1, "crunch", testRef.AddDate(0, 0, 2))
	tasks := []models.Task{
		doneTask(1, "done", testRef.AddDate(0, 0, -1)),
	}
	for i := 0; i < 5; i++ {
		tasks = append(tasks, openTask(1, "open"))
	}
	risk := riskFor(t, goal, nil, tasks)

	if !containsFactor(risk.Factors, "Timeline pressure: More tasks than days remaining") {
		t.Errorf("Factors = %v, want timeline pressure factor", risk.Factors)
	}
}

func TestRiskAnalyzer_HighPriorityBacklog(t *testing.T) {
	goal := models.Goal{ID: 1, Name: "g"}
	tasks := []models.Task{doneTask(1, "done", testRef.AddDate(0, 0, -1))}
	for i := 0; i < 4; i++ {
		task := openTask(1, "urgent")
		task.Priority = models.PriorityHigh
		tasks = append(tasks, task)
	}
	risk := riskFor(t, goal, nil, tasks)

	if !containsFactor(risk.Factors, "Many high-priority tasks remaining") {
		t.Errorf("Factors = %v, want high-priority backlog factor", risk.Factors)
	}
}

func TestRiskAnalyzer_MilestonesBehindSchedule(t *testing.T) {
	goal := models.Goal{ID: 1, Name: "g"}
	subgoals := []models.Subgoal{
		{ID: 1, GoalID: 1, Name: "m1", Status: "Overdue"},
		{ID: 2, GoalID: 1, Name: "m2", Status: "Delayed"},
		{ID: 3, GoalID: 1, Name: "m3", Status: "On Track"},
	}
	risk := riskFor(t, goal, subgoals, nil)

	if !containsFactor(risk.Factors, "2 milestone(s) behind schedule") {
		t.Errorf("Factors = %v, want %q", risk.Factors, "2 milestone(s) behind schedule")
	}
}

func TestRiskAnalyzer_ScoreCappedAtHundred(t *testing.T) {
	goal := goalWithEndDate(1, "doomed", testRef.AddDate(0, 0, -30))
	old := testRef.AddDate(0, 0, -60)
	var tasks []models.Task
	for i := 0; i < 5; i++ {
		task := models.Task{GoalID: 1, Name: "urgent", Priority: models.PriorityHigh, StartDate: &old}
		tasks = append(tasks, task)
	}
	risk := riskFor(t, goal, nil, tasks)

	if risk.Score != 100 {
		t.Errorf("Score = %d, want 100 (capped)", risk.Score)
	}
	if risk.Level != "high" {
		t.Errorf("Level = %q, want %q", risk.Level, "high")
	}
}

func TestRiskLevels(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "low"},
		{39, "low"},
		{40, "medium"},
		{69, "medium"},
		{70, "high"},
		{100, "high"},
	}
	for _, tt := range tests {
		if got := riskLevel(tt.score); got != tt.want {
			t.Errorf("riskLevel(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestRiskAnalyzer_RecommendationsMatchLevel(t *testing.T) {
	goal := goalWithEndDate(1, "late", testRef.AddDate(0, 0, -5))
	risk := riskFor(t, goal, nil, nil)

	want := riskRecommendations[risk.Level]
	if len(risk.Recommendations) != len(want) {
		t.Fatalf("len(Recommendations) = %d, want %d", len(risk.Recommendations), len(want))
	}
	for i := range want {
		if risk.Recommendations[i] != want[i] {
			t.Errorf("Recommendations[%d] = %q, want %q", i, risk.Recommendations[i], want[i])
		}
	}
}
