package analytics

import "time"

// Snapshot is the read-only aggregate computed fresh on every call. It is
// never persisted or mutated after being returned; callers hand it to a
// renderer or exporter and discard it.
type Snapshot struct {
	ComputedAt time.Time `json:"computed_at"`
	Timeframe  Timeframe `json:"timeframe"`
	GoalID     *int64    `json:"goal_id,omitempty"`

	Overview  OverviewCard     `json:"overview"`
	Velocity  VelocityCard     `json:"velocity"`
	Streaks   StreakCard       `json:"streaks"`
	Health    []GoalHealth     `json:"health"`
	Risk      []GoalRisk       `json:"risk"`
	Forecast  ForecastCard     `json:"forecast"`
	Heatmap   []HeatmapDay     `json:"heatmap"`
	Patterns  PatternsCard     `json:"patterns"`
	Burndown  []BurndownPoint  `json:"burndown"`
	Progress  []ProgressPoint  `json:"progress_trends"`
	Categories []CategoryStats `json:"categories"`
	Priorities PriorityCard    `json:"priorities"`
	Durations  []DurationBucket `json:"time_distribution"`
	Milestones MilestoneCard   `json:"milestones"`
}

// OverviewCard carries headline counts, rates, and momentum signals.
type OverviewCard struct {
	TotalTasks        int      `json:"total_tasks"`
	CompletedTasks    int      `json:"completed_tasks"`
	CompletionRate    int      `json:"completion_rate"`
	OverdueTasks      int      `json:"overdue_tasks"`
	CompletedToday    int      `json:"completed_today"`
	CompletedThisWeek int      `json:"completed_this_week"`
	AddedThisWeek     int      `json:"added_this_week"`
	AvgCompletionDays int      `json:"avg_completion_days"`
	RecentWins        []string `json:"recent_wins"`
}

// VelocityPoint is one 7-day completion bucket, labelled W1..WN oldest
// to newest.
type VelocityPoint struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Date  string `json:"date"`
}

// VelocityComparison compares the current trailing window against the
// immediately preceding equal-length window. Projected applies a flat
// 10% growth heuristic, not a statistical fit.
type VelocityComparison struct {
	Period    Timeframe `json:"period"`
	Current   int       `json:"current"`
	Previous  int       `json:"previous"`
	ChangePct int       `json:"change_pct"`
	Projected int       `json:"projected"`
}

// VelocityCard is the velocity trend series plus its comparison.
type VelocityCard struct {
	Periods    []VelocityPoint    `json:"periods"`
	Comparison VelocityComparison `json:"comparison"`
}

// StreakCard holds consecutive-day completion runs.
type StreakCard struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// GoalHealth is the bounded 0-100 health composite for one goal.
type GoalHealth struct {
	GoalID int64  `json:"goal_id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
}

// GoalRisk is the bounded 0-100 risk composite for one goal, with the
// ordered human-readable factors that produced it.
type GoalRisk struct {
	GoalID          int64    `json:"goal_id"`
	Name            string   `json:"name"`
	Score           int      `json:"score"`
	Level           string   `json:"level"`
	Factors         []string `json:"factors"`
	Recommendations []string `json:"recommendations"`
}

// ForecastPoint is one weekly point on the completion timeline.
type ForecastPoint struct {
	Date     string `json:"date"`
	Actual   int    `json:"actual"`
	Forecast int    `json:"forecast"`
}

// ForecastCard extrapolates a completion date from average cycle time.
// With zero completed tasks the date is nil, confidence 0, and the
// timeline empty.
type ForecastCard struct {
	EstimatedCompletionDate *time.Time      `json:"estimated_completion_date"`
	EstimatedDaysRemaining  int             `json:"estimated_days_remaining"`
	AvgCycleDays            float64         `json:"avg_cycle_days"`
	Confidence              int             `json:"confidence"`
	Timeline                []ForecastPoint `json:"timeline"`
}

// HeatmapDay is one cell of the trailing 42-day activity heatmap.
// Intensity is completions scaled by the window maximum, in [0,1].
type HeatmapDay struct {
	Date        string  `json:"date"`
	Completions int     `json:"completions"`
	Intensity   float64 `json:"intensity"`
}

// HourBucket accumulates completions for one hour of the day, with a
// priority-weighted productivity score (high=3, medium=2, low=1).
type HourBucket struct {
	Hour         int `json:"hour"`
	Completions  int `json:"completions"`
	Productivity int `json:"productivity"`
}

// DayOfWeekBucket counts completions per weekday, Sunday first.
type DayOfWeekBucket struct {
	Day         string `json:"day"`
	Completions int    `json:"completions"`
}

// PatternsCard holds hourly and daily completion distributions.
type PatternsCard struct {
	Hourly    []HourBucket      `json:"hourly"`
	PeakHour  int               `json:"peak_hour"`
	LowEnergy []int             `json:"low_energy_hours"`
	Morning   int               `json:"morning_completions"`
	Afternoon int               `json:"afternoon_completions"`
	Evening   int               `json:"evening_completions"`
	DayOfWeek []DayOfWeekBucket `json:"day_of_week"`
}

// BurndownPoint is one weekly remaining-vs-ideal sample.
type BurndownPoint struct {
	Date      string `json:"date"`
	Remaining int    `json:"remaining"`
	Ideal     int    `json:"ideal"`
}

// ProgressPoint is a per-period completion rate bucketed by start date.
type ProgressPoint struct {
	Label          string `json:"label"`
	CompletionRate int    `json:"completion_rate"`
	Completed      int    `json:"completed"`
	Total          int    `json:"total"`
}

// CategoryStats summarizes completion performance for one category.
type CategoryStats struct {
	Name           string `json:"name"`
	Total          int    `json:"total"`
	Completed      int    `json:"completed"`
	CompletionRate int    `json:"completion_rate"`
}

// PriorityStats summarizes completion performance for one priority.
type PriorityStats struct {
	Priority       string `json:"priority"`
	Total          int    `json:"total"`
	Completed      int    `json:"completed"`
	CompletionRate int    `json:"completion_rate"`
}

// PriorityCard weights per-priority completion rates into an alignment
// score with fixed threshold recommendations.
type PriorityCard struct {
	Effectiveness   []PriorityStats `json:"effectiveness"`
	AlignmentScore  int             `json:"alignment_score"`
	Recommendations []string        `json:"recommendations"`
}

// DurationBucket counts completed tasks by wall-clock duration range.
type DurationBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// MilestoneProgress is the per-subgoal completion rollup.
type MilestoneProgress struct {
	SubgoalID      int64  `json:"subgoal_id"`
	Name           string `json:"name"`
	Progress       int    `json:"progress"`
	Status         string `json:"status"`
	TotalTasks     int    `json:"total_tasks"`
	CompletedTasks int    `json:"completed_tasks"`
}

// MilestoneCard aggregates subgoal progress for the scope.
type MilestoneCard struct {
	Milestones     []MilestoneProgress `json:"milestones"`
	Completed      int                 `json:"completed"`
	Total          int                 `json:"total"`
	CompletionRate int                 `json:"completion_rate"`
}
