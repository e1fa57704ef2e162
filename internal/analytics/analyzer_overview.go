package analytics

import (
	"math"
	"sort"

	"github.com/StrideHQ/stride-web/internal/models"
)

// maxRecentWins caps how many recent completion names the overview lists.
const maxRecentWins = 3

// OverviewAnalyzer computes headline counts and momentum signals for the
// requested scope.
type OverviewAnalyzer struct{}

// Analyze computes the overview card.
func (a *OverviewAnalyzer) Analyze(ds *Dataset) OverviewCard {
	today := dayStart(ds.Ref)
	weekAgo := ds.Ref.AddDate(0, 0, -7)

	var (
		completed, overdue, completedToday, completedThisWeek, addedThisWeek int
		wins                                                                 []models.Task
	)
	for _, t := range ds.Tasks {
		if t.Done {
			completed++
		}
		if !t.Done && t.EndDate != nil && t.EndDate.Before(ds.Ref) {
			overdue++
		}
		if t.StartDate != nil && !t.StartDate.Before(weekAgo) {
			addedThisWeek++
		}
		if ts, ok := t.CompletionDate(); ok {
			if !ts.Before(today) {
				completedToday++
			}
			if !ts.Before(weekAgo) {
				completedThisWeek++
				wins = append(wins, t)
			}
		}
	}

	// Most recent completions first.
	sort.Slice(wins, func(i, j int) bool {
		return wins[i].EndDate.After(*wins[j].EndDate)
	})
	recentWins := []string{}
	for i, t := range wins {
		if i == maxRecentWins {
			break
		}
		recentWins = append(recentWins, t.Name)
	}

	return OverviewCard{
		TotalTasks:        len(ds.Tasks),
		CompletedTasks:    completed,
		CompletionRate:    roundedRate(completed, len(ds.Tasks)),
		OverdueTasks:      overdue,
		CompletedToday:    completedToday,
		CompletedThisWeek: completedThisWeek,
		AddedThisWeek:     addedThisWeek,
		AvgCompletionDays: avgCompletionDays(ds.CompletedTasks()),
		RecentWins:        recentWins,
	}
}

// avgCompletionDays is the rounded mean of per-task cycle times in days,
// over completed tasks carrying both dates. Each task's cycle time is
// rounded up to whole days.
func avgCompletionDays(completed []models.Task) int {
	var total, n int
	for _, t := range completed {
		if t.StartDate == nil || t.EndDate == nil {
			continue
		}
		total += int(math.Ceil(t.EndDate.Sub(*t.StartDate).Hours() / 24))
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(n)))
}
