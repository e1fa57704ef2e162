package analytics

import (
	"math"
	"strconv"

	"github.com/StrideHQ/stride-web/internal/models"
)

// BurndownAnalyzer samples remaining work weekly from 30 days before the
// reference instant out to the goal's end date, alongside an ideal
// straight-line burn.
type BurndownAnalyzer struct{}

// Analyze returns the burndown series for a goal. Goals without an end
// date have no burndown.
func (a *BurndownAnalyzer) Analyze(ds *Dataset, goal models.Goal) []BurndownPoint {
	if goal.EndDate == nil {
		return []BurndownPoint{}
	}

	tasks := ds.TasksForGoal(goal.ID)
	total := len(tasks)
	start := ds.Ref.AddDate(0, 0, -30)
	end := *goal.EndDate

	totalWeeks := int(math.Ceil(end.Sub(start).Hours() / 24 / 7))
	if totalWeeks < 1 {
		totalWeeks = 1
	}

	points := []BurndownPoint{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 7) {
		completedByDate := 0
		for _, t := range tasks {
			if ts, ok := t.CompletionDate(); ok && !ts.After(d) {
				completedByDate++
			}
		}
		remaining := total - completedByDate
		if remaining < 0 {
			remaining = 0
		}

		weeksFromStart := int(math.Ceil(d.Sub(start).Hours() / 24 / 7))
		ideal := float64(total) - float64(total*weeksFromStart)/float64(totalWeeks)
		if ideal < 0 {
			ideal = 0
		}

		points = append(points, BurndownPoint{
			Date:      dayKey(d),
			Remaining: remaining,
			Ideal:     int(math.Round(ideal)),
		})
	}
	return points
}

// ProgressTrends buckets all tasks by start date into trailing 7-day
// periods and reports per-period completion rates, labelled P1..PN
// oldest to newest. Period count follows the timeframe: 4 for a week,
// 6 for a month, 12 beyond that.
func (a *BurndownAnalyzer) ProgressTrends(ds *Dataset, tf Timeframe) []ProgressPoint {
	count := 12
	switch tf {
	case TimeframeWeek:
		count = 4
	case TimeframeMonth:
		count = 6
	}

	periods := Periods(ds.Ref, 7, count)
	points := make([]ProgressPoint, len(periods))
	for i, p := range periods {
		total, completed := 0, 0
		for _, t := range ds.Tasks {
			if t.StartDate == nil || !p.Contains(*t.StartDate) {
				continue
			}
			total++
			if t.Done {
				completed++
			}
		}
		rate := 0
		if total > 0 {
			rate = int(math.Round(float64(completed) / float64(total) * 100))
		}
		points[i] = ProgressPoint{
			Label:          "P" + strconv.Itoa(i+1),
			CompletionRate: rate,
			Completed:      completed,
			Total:          total,
		}
	}
	return points
}
