package analytics

import (
	"time"

	"github.com/StrideHQ/stride-web/internal/models"
)

// Compute assembles one snapshot for the requested timeframe and goal
// scope. It only composes: each analyzer runs independently over the
// scoped dataset and none mutates another's output. The reference
// instant must be captured once by the caller so every derived window
// agrees on the same "now".
func Compute(goals []models.Goal, subgoals []models.Subgoal, tasks []models.Task, tf Timeframe, goalID *int64, ref time.Time) *Snapshot {
	ds := NewDataset(goals, subgoals, tasks, ref).Scoped(goalID)

	categories := &CategoryAnalyzer{}
	burndown := &BurndownAnalyzer{}
	patterns := &PatternsAnalyzer{}

	snap := &Snapshot{
		ComputedAt: ref,
		Timeframe:  tf,
		GoalID:     goalID,
		Overview:   (&OverviewAnalyzer{}).Analyze(ds),
		Velocity:   (&VelocityAnalyzer{Timeframe: tf}).Analyze(ds),
		Streaks:    (&StreakAnalyzer{}).Analyze(ds),
		Health:     (&HealthAnalyzer{}).Analyze(ds),
		Risk:       (&RiskAnalyzer{}).Analyze(ds),
		Forecast:   (&ForecastAnalyzer{}).Analyze(ds),
		Heatmap:    patterns.Heatmap(ds),
		Patterns:   patterns.Analyze(ds),
		Burndown:   []BurndownPoint{},
		Progress:   burndown.ProgressTrends(ds, tf),
		Categories: categories.Analyze(ds),
		Priorities: categories.PriorityEffectiveness(ds),
		Durations:  categories.TimeDistribution(ds),
		Milestones: (&MilestoneAnalyzer{}).Analyze(ds),
	}

	// A burndown needs a single goal's end date; the all-goals scope has
	// no meaningful one.
	if goalID != nil && len(ds.Goals) == 1 {
		snap.Burndown = burndown.Analyze(ds, ds.Goals[0])
	}

	return snap
}
