package analytics

import (
	"testing"
	"time"

	"github.com/StrideHQ/stride-web/internal/models"
)

func TestPatternsAnalyzer_HeatmapWindow(t *testing.T) {
	cells := (&PatternsAnalyzer{}).Heatmap(dataset())

	if len(cells) != 42 {
		t.Fatalf("len(cells) = %d, want 42", len(cells))
	}
	if cells[41].Date != dayKey(testRef) {
		t.Errorf("last cell date = %s, want %s (today last)", cells[41].Date, dayKey(testRef))
	}
	if cells[0].Date != dayKey(testRef.AddDate(0, 0, -41)) {
		t.Errorf("first cell date = %s, want %s (oldest first)", cells[0].Date, dayKey(testRef.AddDate(0, 0, -41)))
	}
	for i, c := range cells {
		if c.Completions != 0 || c.Intensity != 0 {
			t.Errorf("cells[%d] = %+v, want zeroed for empty dataset", i, c)
		}
	}
}

func TestPatternsAnalyzer_HeatmapIntensityScaling(t *testing.T) {
	// Busiest day has 4 completions, another day 1: intensities 1.0
	// and 0.25.
	ds := dataset(
		doneTask(1, "a", testRef.Add(-time.Hour)),
		doneTask(1, "b", testRef.Add(-2*time.Hour)),
		doneTask(1, "c", testRef.Add(-3*time.Hour)),
		doneTask(1, "d", testRef.Add(-4*time.Hour)),
		doneTask(1, "e", testRef.AddDate(0, 0, -3)),
	)
	cells := (&PatternsAnalyzer{}).Heatmap(ds)

	today := cells[41]
	if today.Completions != 4 {
		t.Fatalf("today completions = %d, want 4", today.Completions)
	}
	if today.Intensity != 1.0 {
		t.Errorf("today intensity = %v, want 1.0", today.Intensity)
	}

	threeDaysAgo := cells[38]
	if threeDaysAgo.Completions != 1 {
		t.Fatalf("3-days-ago completions = %d, want 1", threeDaysAgo.Completions)
	}
	if threeDaysAgo.Intensity != 0.25 {
		t.Errorf("3-days-ago intensity = %v, want 0.25", threeDaysAgo.Intensity)
	}
}

func TestPatternsAnalyzer_HourlyBuckets(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2025, 3, 14, hour, 30, 0, 0, time.UTC)
	}
	high := models.Task{GoalID: 1, Name: "big", Priority: models.PriorityHigh, Done: true}
	end := at(9)
	high.EndDate = &end

	ds := dataset(
		high,
		doneTask(1, "a", at(9)),
		doneTask(1, "b", at(14)),
		doneTask(1, "c", at(20)),
	)
	card := (&PatternsAnalyzer{}).Analyze(ds)

	if len(card.Hourly) != 24 {
		t.Fatalf("len(Hourly) = %d, want 24", len(card.Hourly))
	}
	if got := card.Hourly[9].Completions; got != 2 {
		t.Errorf("hour 9 completions = %d, want 2", got)
	}
	// high (weight 3) + medium (weight 2)
	if got := card.Hourly[9].Productivity; got != 5 {
		t.Errorf("hour 9 productivity = %d, want 5", got)
	}
	if card.PeakHour != 9 {
		t.Errorf("PeakHour = %d, want 9", card.PeakHour)
	}
	if card.Morning != 2 || card.Afternoon != 1 || card.Evening != 1 {
		t.Errorf("Morning/Afternoon/Evening = %d/%d/%d, want 2/1/1",
			card.Morning, card.Afternoon, card.Evening)
	}
	if len(card.LowEnergy) != 21 {
		t.Errorf("len(LowEnergy) = %d, want 21", len(card.LowEnergy))
	}
}

func TestPatternsAnalyzer_PeakHourTieBreaksLow(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2025, 3, 14, hour, 0, 0, 0, time.UTC)
	}
	ds := dataset(
		doneTask(1, "a", at(8)),
		doneTask(1, "b", at(16)),
	)
	card := (&PatternsAnalyzer{}).Analyze(ds)

	if card.PeakHour != 8 {
		t.Errorf("PeakHour = %d, want 8 (lowest hour wins ties)", card.PeakHour)
	}
}

func TestPatternsAnalyzer_DayOfWeek(t *testing.T) {
	// 2025-03-14 is a Friday.
	friday := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	ds := dataset(
		doneTask(1, "a", friday),
		doneTask(1, "b", friday.Add(time.Hour)),
	)
	card := (&PatternsAnalyzer{}).Analyze(ds)

	if len(card.DayOfWeek) != 7 {
		t.Fatalf("len(DayOfWeek) = %d, want 7", len(card.DayOfWeek))
	}
	if card.DayOfWeek[0].Day != "Sunday" {
		t.Errorf("DayOfWeek[0].Day = %q, want Sunday first", card.DayOfWeek[0].Day)
	}
	if got := card.DayOfWeek[5].Completions; got != 2 {
		t.Errorf("Friday completions = %d, want 2", got)
	}
}
