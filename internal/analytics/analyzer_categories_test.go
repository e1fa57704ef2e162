package analytics

import (
	"testing"
	"time"

	"github.com/StrideHQ/stride-web/internal/models"
)

func withCategory(task models.Task, category string) models.Task {
	task.Category = &category
	return task
}

func TestCategoryAnalyzer_SortedWithUncategorized(t *testing.T) {
	ds := dataset(
		withCategory(doneTask(1, "a", testRef.Add(-time.Hour)), "Work"),
		withCategory(openTask(1, "b"), "Work"),
		withCategory(doneTask(1, "c", testRef.Add(-time.Hour)), "Health"),
		openTask(1, "d"),
	)
	stats := (&CategoryAnalyzer{}).Analyze(ds)

	if len(stats) != 3 {
		t.Fatalf("len(stats) = %d, want 3", len(stats))
	}
	wantNames := []string{"Health", "Uncategorized", "Work"}
	for i, want := range wantNames {
		if stats[i].Name != want {
			t.Errorf("stats[%d].Name = %q, want %q", i, stats[i].Name, want)
		}
	}

	work := stats[2]
	if work.Total != 2 || work.Completed != 1 || work.CompletionRate != 50 {
		t.Errorf("Work = %+v, want total 2, completed 1, rate 50", work)
	}
}

func TestPriorityEffectiveness_Alignment(t *testing.T) {
	mk := func(p models.Priority, done bool) models.Task {
		task := openTask(1, "t")
		task.Priority = p
		if done {
			end := testRef.Add(-time.Hour)
			task.Done = true
			task.EndDate = &end
		}
		return task
	}

	// High 100%, medium 0%, low 0%: alignment = 50.
	ds := dataset(
		mk(models.PriorityHigh, true),
		mk(models.PriorityMedium, false),
		mk(models.PriorityLow, false),
	)
	card := (&CategoryAnalyzer{}).PriorityEffectiveness(ds)

	if card.AlignmentScore != 50 {
		t.Errorf("AlignmentScore = %d, want 50", card.AlignmentScore)
	}
	if len(card.Effectiveness) != 3 {
		t.Fatalf("len(Effectiveness) = %d, want 3", len(card.Effectiveness))
	}
	if card.Effectiveness[0].Priority != "high" {
		t.Errorf("Effectiveness[0].Priority = %q, want high first", card.Effectiveness[0].Priority)
	}
	if len(card.Recommendations) != 2 {
		t.Errorf("Recommendations = %v, want the two low-alignment suggestions", card.Recommendations)
	}
}

func TestPriorityEffectiveness_GoodAlignment(t *testing.T) {
	end := testRef.Add(-time.Hour)
	mk := func(p models.Priority) models.Task {
		return models.Task{GoalID: 1, Name: "t", Priority: p, Done: true, EndDate: &end}
	}
	ds := dataset(mk(models.PriorityHigh), mk(models.PriorityMedium), mk(models.PriorityLow))
	card := (&CategoryAnalyzer{}).PriorityEffectiveness(ds)

	if card.AlignmentScore != 100 {
		t.Errorf("AlignmentScore = %d, want 100", card.AlignmentScore)
	}
	if len(card.Recommendations) != 1 || card.Recommendations[0] != "Good priority management" {
		t.Errorf("Recommendations = %v, want single good-management entry", card.Recommendations)
	}
}

func TestTimeDistribution_Buckets(t *testing.T) {
	mk := func(d time.Duration) models.Task {
		end := testRef
		start := end.Add(-d)
		return models.Task{
			GoalID: 1, Name: "t", Priority: models.PriorityMedium, Done: true,
			StartDate: &start, EndDate: &end,
		}
	}
	ds := dataset(
		mk(30*time.Minute),   // Quick
		mk(2*time.Hour),      // Short
		mk(10*time.Hour),     // Medium
		mk(48*time.Hour),     // Long
		mk(100*time.Hour),    // Extended
		mk(100*time.Hour),    // Extended
	)
	buckets := (&CategoryAnalyzer{}).TimeDistribution(ds)

	wantCounts := []int{1, 1, 1, 1, 2}
	if len(buckets) != len(wantCounts) {
		t.Fatalf("len(buckets) = %d, want %d", len(buckets), len(wantCounts))
	}
	for i, want := range wantCounts {
		if buckets[i].Count != want {
			t.Errorf("buckets[%d] (%s) = %d, want %d", i, buckets[i].Range, buckets[i].Count, want)
		}
	}
}

func TestTimeDistribution_SkipsDatelessTasks(t *testing.T) {
	dateless := models.Task{GoalID: 1, Name: "t", Done: true, Priority: models.PriorityMedium}
	buckets := (&CategoryAnalyzer{}).TimeDistribution(dataset(dateless))

	for i, b := range buckets {
		if b.Count != 0 {
			t.Errorf("buckets[%d].Count = %d, want 0", i, b.Count)
		}
	}
}
