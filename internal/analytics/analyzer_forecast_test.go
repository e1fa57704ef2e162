package analytics

import (
	"testing"
	"time"

	"github.com/StrideHQ/stride-web/internal/models"
)

func TestForecastAnalyzer_NoCompletedTasks(t *testing.T) {
	ds := dataset(openTask(1, "a"), openTask(1, "b"))
	card := (&ForecastAnalyzer{}).Analyze(ds)

	if card.EstimatedCompletionDate != nil {
		t.Errorf("EstimatedCompletionDate = %v, want nil", card.EstimatedCompletionDate)
	}
	if card.Confidence != 0 {
		t.Errorf("Confidence = %d, want 0", card.Confidence)
	}
	if card.Timeline == nil || len(card.Timeline) != 0 {
		t.Errorf("Timeline = %v, want empty non-nil slice", card.Timeline)
	}
}

func TestForecastAnalyzer_Estimate(t *testing.T) {
	// Two completed tasks with 2-day cycles each, two remaining:
	// 2 days per task * 2 tasks = 4 estimated days.
	mkDone := func(name string, end time.Time, cycleDays int) models.Task {
		start := end.AddDate(0, 0, -cycleDays)
		return models.Task{
			GoalID: 1, Name: name, Priority: models.PriorityMedium, Done: true,
			StartDate: &start, EndDate: &end,
		}
	}
	ds := dataset(
		mkDone("a", testRef.AddDate(0, 0, -1), 2),
		mkDone("b", testRef.AddDate(0, 0, -2), 2),
		openTask(1, "c"),
		openTask(1, "d"),
	)
	card := (&ForecastAnalyzer{}).Analyze(ds)

	if card.AvgCycleDays != 2 {
		t.Errorf("AvgCycleDays = %v, want 2", card.AvgCycleDays)
	}
	if card.EstimatedDaysRemaining != 4 {
		t.Errorf("EstimatedDaysRemaining = %d, want 4", card.EstimatedDaysRemaining)
	}
	if card.EstimatedCompletionDate == nil {
		t.Fatal("EstimatedCompletionDate = nil, want a date")
	}
	want := testRef.Add(4 * 24 * time.Hour)
	if !card.EstimatedCompletionDate.Equal(want) {
		t.Errorf("EstimatedCompletionDate = %v, want %v", card.EstimatedCompletionDate, want)
	}
}

func TestForecastAnalyzer_ConfidenceShrinksWithBacklog(t *testing.T) {
	build := func(remaining int) ForecastCard {
		ds := dataset(doneTask(1, "done", testRef.AddDate(0, 0, -1)))
		for i := 0; i < remaining; i++ {
			ds.Tasks = append(ds.Tasks, openTask(1, "open"))
		}
		return (&ForecastAnalyzer{}).Analyze(ds)
	}

	if got := build(0).Confidence; got != 100 {
		t.Errorf("Confidence with 0 remaining = %d, want 100", got)
	}
	if got := build(4).Confidence; got != 80 {
		t.Errorf("Confidence with 4 remaining = %d, want 80", got)
	}
	if got := build(30).Confidence; got != 20 {
		t.Errorf("Confidence with 30 remaining = %d, want 20 (floor)", got)
	}
}

func TestForecastAnalyzer_TimelineShape(t *testing.T) {
	ds := dataset(
		doneTask(1, "done", testRef.AddDate(0, 0, -1)),
		openTask(1, "a"),
		openTask(1, "b"),
	)
	card := (&ForecastAnalyzer{}).Analyze(ds)

	if len(card.Timeline) != 11 {
		t.Fatalf("len(Timeline) = %d, want 11", len(card.Timeline))
	}
	if card.Timeline[0].Date != dayKey(testRef) {
		t.Errorf("Timeline[0].Date = %s, want %s", card.Timeline[0].Date, dayKey(testRef))
	}

	total := len(ds.Tasks)
	prev := -1
	for i, p := range card.Timeline {
		if p.Forecast < prev {
			t.Errorf("Timeline[%d].Forecast = %d, decreased from %d", i, p.Forecast, prev)
		}
		prev = p.Forecast
		if p.Forecast > total {
			t.Errorf("Timeline[%d].Forecast = %d, exceeds total %d", i, p.Forecast, total)
		}
		if p.Actual > len(ds.CompletedTasks()) {
			t.Errorf("Timeline[%d].Actual = %d, exceeds completed count", i, p.Actual)
		}
	}

	// All completions are in the past, so every point sees them.
	if card.Timeline[0].Actual != 1 {
		t.Errorf("Timeline[0].Actual = %d, want 1", card.Timeline[0].Actual)
	}
	// With a 1-day cycle the forecast reaches the full task count.
	if last := card.Timeline[10]; last.Forecast != total {
		t.Errorf("Timeline[10].Forecast = %d, want %d", last.Forecast, total)
	}
}

func TestForecastAnalyzer_CycleFloorOneDay(t *testing.T) {
	// Zero-duration completions must not produce an instant forecast.
	end := testRef.AddDate(0, 0, -1)
	task := models.Task{
		GoalID: 1, Name: "instant", Priority: models.PriorityMedium, Done: true,
		StartDate: &end, EndDate: &end,
	}
	ds := dataset(task, openTask(1, "open"))
	card := (&ForecastAnalyzer{}).Analyze(ds)

	if card.EstimatedDaysRemaining != 1 {
		t.Errorf("EstimatedDaysRemaining = %d, want 1 (per-task floor)", card.EstimatedDaysRemaining)
	}
}
