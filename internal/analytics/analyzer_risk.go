package analytics

import (
	"fmt"

	"github.com/StrideHQ/stride-web/internal/models"
)

// Risk level thresholds.
const (
	riskHighThreshold   = 70
	riskMediumThreshold = 40
)

// riskRecommendations is a fixed lookup keyed by risk level; the
// recommendations are not computed from the data.
var riskRecommendations = map[string][]string{
	"high": {
		"Break down large tasks immediately",
		"Review and adjust timeline",
		"Remove blockers",
		"Increase daily focus time",
	},
	"medium": {
		"Monitor progress closely",
		"Adjust schedule if needed",
		"Focus on high-priority items",
	},
	"low": {
		"Maintain current momentum",
		"Continue good practices",
	},
}

// RiskAnalyzer scores how likely each goal is to miss its deadline or
// stall. The additive penalty checks run in a fixed order so the factor
// list is deterministic.
type RiskAnalyzer struct{}

// Analyze returns one risk assessment per goal in the dataset.
func (a *RiskAnalyzer) Analyze(ds *Dataset) []GoalRisk {
	risks := make([]GoalRisk, 0, len(ds.Goals))
	for _, g := range ds.Goals {
		risks = append(risks, a.assess(ds, g))
	}
	return risks
}

func (a *RiskAnalyzer) assess(ds *Dataset, goal models.Goal) GoalRisk {
	tasks := ds.TasksForGoal(goal.ID)
	subgoals := ds.SubgoalsForGoal(goal.ID)

	score := 0
	factors := []string{}

	completed := 0
	for _, t := range tasks {
		if t.Done {
			completed++
		}
	}
	remaining := len(tasks) - completed

	if goal.EndDate != nil {
		daysLeft := daysUntil(ds.Ref, *goal.EndDate)
		if remaining > daysLeft && remaining > 0 {
			score += 30
			factors = append(factors, "Timeline pressure: More tasks than days remaining")
		}
		if daysLeft < 0 {
			score += 40
			factors = append(factors, "Goal is overdue")
		}
	}

	progressRate := 0.0
	if len(tasks) > 0 {
		progressRate = float64(completed) / float64(len(tasks)) * 100
	}
	if progressRate < 25 {
		score += 25
		factors = append(factors, "Low progress rate (< 25%)")
	}

	threeDaysAgo := ds.Ref.AddDate(0, 0, -3)
	recent := 0
	for _, t := range tasks {
		if ts, ok := t.ActivityDate(); ok && !ts.Before(threeDaysAgo) {
			recent++
		}
	}
	if recent == 0 && len(tasks) > 0 {
		score += 20
		factors = append(factors, "No recent activity (last 3 days)")
	}

	highPriority := 0
	for _, t := range tasks {
		if t.Priority == models.PriorityHigh && !t.Done {
			highPriority++
		}
	}
	if highPriority > 3 {
		score += 15
		factors = append(factors, "Many high-priority tasks remaining")
	}

	behindSchedule := 0
	for _, sg := range subgoals {
		if subgoalStatusContains(sg, "overdue") || subgoalStatusContains(sg, "delayed") {
			behindSchedule++
		}
	}
	if behindSchedule > 0 {
		// Flat penalty regardless of how many are behind.
		score += 10
		factors = append(factors, fmt.Sprintf("%d milestone(s) behind schedule", behindSchedule))
	}

	if score > 100 {
		score = 100
	}

	level := riskLevel(score)
	return GoalRisk{
		GoalID:          goal.ID,
		Name:            goal.Name,
		Score:           score,
		Level:           level,
		Factors:         factors,
		Recommendations: riskRecommendations[level],
	}
}

func riskLevel(score int) string {
	switch {
	case score >= riskHighThreshold:
		return "high"
	case score >= riskMediumThreshold:
		return "medium"
	default:
		return "low"
	}
}
