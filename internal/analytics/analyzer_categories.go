package analytics

import (
	"math"
	"sort"

	"github.com/StrideHQ/stride-web/internal/models"
)

// uncategorized is the bucket for tasks without a category.
const uncategorized = "Uncategorized"

// Duration bucket boundaries in hours.
var durationRanges = []struct {
	label string
	max   float64
}{
	{"Quick (< 1h)", 1},
	{"Short (1-4h)", 4},
	{"Medium (4h-1d)", 24},
	{"Long (1-3d)", 72},
	{"Extended (3d+)", math.Inf(1)},
}

// CategoryAnalyzer breaks completion performance down by category,
// priority, and task duration.
type CategoryAnalyzer struct{}

// Analyze returns per-category totals and completion rates, sorted by
// category name so the output is deterministic.
func (a *CategoryAnalyzer) Analyze(ds *Dataset) []CategoryStats {
	type tally struct{ total, completed int }
	byCategory := make(map[string]*tally)

	for _, t := range ds.Tasks {
		name := uncategorized
		if t.Category != nil && *t.Category != "" {
			name = *t.Category
		}
		c := byCategory[name]
		if c == nil {
			c = &tally{}
			byCategory[name] = c
		}
		c.total++
		if t.Done {
			c.completed++
		}
	}

	stats := make([]CategoryStats, 0, len(byCategory))
	for name, c := range byCategory {
		stats = append(stats, CategoryStats{
			Name:           name,
			Total:          c.total,
			Completed:      c.completed,
			CompletionRate: roundedRate(c.completed, c.total),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}

// PriorityEffectiveness scores how completion rates line up with task
// priorities. High-priority completion dominates the alignment score.
func (a *CategoryAnalyzer) PriorityEffectiveness(ds *Dataset) PriorityCard {
	order := []models.Priority{models.PriorityHigh, models.PriorityMedium, models.PriorityLow}

	stats := make([]PriorityStats, 0, len(order))
	rates := make(map[models.Priority]int, len(order))
	for _, p := range order {
		total, completed := 0, 0
		for _, t := range ds.Tasks {
			if t.Priority != p {
				continue
			}
			total++
			if t.Done {
				completed++
			}
		}
		rate := roundedRate(completed, total)
		rates[p] = rate
		stats = append(stats, PriorityStats{
			Priority:       string(p),
			Total:          total,
			Completed:      completed,
			CompletionRate: rate,
		})
	}

	alignment := int(math.Round(
		float64(rates[models.PriorityHigh])*0.5 +
			float64(rates[models.PriorityMedium])*0.3 +
			float64(rates[models.PriorityLow])*0.2))

	recommendations := []string{"Good priority management"}
	if alignment < 60 {
		recommendations = []string{
			"Focus more on high-priority tasks",
			"Review task prioritization",
		}
	}

	return PriorityCard{
		Effectiveness:   stats,
		AlignmentScore:  alignment,
		Recommendations: recommendations,
	}
}

// TimeDistribution buckets completed tasks by wall-clock duration.
// Tasks missing either date have no measurable duration and are skipped.
func (a *CategoryAnalyzer) TimeDistribution(ds *Dataset) []DurationBucket {
	buckets := make([]DurationBucket, len(durationRanges))
	for i, r := range durationRanges {
		buckets[i].Range = r.label
	}

	for _, t := range ds.CompletedTasks() {
		if t.StartDate == nil || t.EndDate == nil {
			continue
		}
		hours := t.EndDate.Sub(*t.StartDate).Hours()
		for i, r := range durationRanges {
			if hours < r.max {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// roundedRate is completed/total as a rounded percentage, 0 when the
// denominator is zero.
func roundedRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
