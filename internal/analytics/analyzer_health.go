package analytics

import (
	"math"
	"strings"

	"github.com/StrideHQ/stride-web/internal/models"
)

// HealthAnalyzer scores how well each goal is progressing: a 0-100
// composite of progress rate, timeline headroom, recent activity, and
// subgoal completion.
type HealthAnalyzer struct{}

// Analyze returns one health score per goal in the dataset.
func (a *HealthAnalyzer) Analyze(ds *Dataset) []GoalHealth {
	scores := make([]GoalHealth, 0, len(ds.Goals))
	for _, g := range ds.Goals {
		scores = append(scores, GoalHealth{
			GoalID: g.ID,
			Name:   g.Name,
			Score:  a.score(ds, g),
		})
	}
	return scores
}

func (a *HealthAnalyzer) score(ds *Dataset, goal models.Goal) int {
	tasks := ds.TasksForGoal(goal.ID)
	subgoals := ds.SubgoalsForGoal(goal.ID)

	score := 50.0

	completed := 0
	for _, t := range tasks {
		if t.Done {
			completed++
		}
	}
	progressRate := 0.0
	if len(tasks) > 0 {
		progressRate = float64(completed) / float64(len(tasks)) * 100
	}
	score += progressRate * 0.4

	if goal.EndDate != nil {
		daysLeft := daysUntil(ds.Ref, *goal.EndDate)
		if daysLeft > 0 {
			score += math.Min(float64(daysLeft)/30*20, 20)
		} else {
			score -= 30
		}
	}

	// Touched = started or finished within the trailing week.
	weekAgo := ds.Ref.AddDate(0, 0, -7)
	recent := 0
	for _, t := range tasks {
		if ts, ok := t.ActivityDate(); ok && !ts.Before(weekAgo) {
			recent++
		}
	}
	score += math.Min(float64(recent)*5, 20)

	if len(subgoals) > 0 {
		completedSubgoals := 0
		for _, sg := range subgoals {
			if subgoalStatusContains(sg, "completed") {
				completedSubgoals++
			}
		}
		score += float64(completedSubgoals) / float64(len(subgoals)) * 20
	}

	return clampScore(int(math.Round(score)))
}

// subgoalStatusContains matches free-text subgoal statuses
// case-insensitively.
func subgoalStatusContains(sg models.Subgoal, substr string) bool {
	return strings.Contains(strings.ToLower(sg.Status), substr)
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
