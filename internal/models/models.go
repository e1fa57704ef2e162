package models

import (
	"strings"
	"time"
)

// Priority is the closed task priority enumeration.
// Raw records arrive with mixed casing ("High", "high"); normalize once
// at the boundary with ParsePriority and compare enum values downstream.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority normalizes a raw priority string case-insensitively.
// Empty and unrecognized values fall back to medium, matching the
// default the original records were created with.
func ParsePriority(raw string) Priority {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return PriorityLow
	case "high":
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

// Weight returns the productivity weight used by the pattern analyzer.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// Goal is a top-level objective owning tasks directly or via subgoals.
type Goal struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	Category  *string    `json:"category,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Subgoal is an intermediate milestone grouping tasks under a goal.
// Status is free text; analytics matches "completed"/"overdue"/"delayed"
// case-insensitively.
type Subgoal struct {
	ID     int64  `json:"id"`
	GoalID int64  `json:"goal_id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Task is an atomic unit of work with optional start/end timestamps.
// A done task without an end date has no completion date to bucket by
// and is invisible to every date-keyed aggregation.
type Task struct {
	ID        int64      `json:"id"`
	GoalID    int64      `json:"goal_id"`
	SubgoalID *int64     `json:"subgoal_id,omitempty"`
	Name      string     `json:"name"`
	Priority  Priority   `json:"priority"`
	Done      bool       `json:"is_done"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Category  *string    `json:"category,omitempty"`
}

// CompletionDate returns the task's completion timestamp, or false when
// the task is not done or has no end date.
func (t Task) CompletionDate() (time.Time, bool) {
	if !t.Done || t.EndDate == nil {
		return time.Time{}, false
	}
	return *t.EndDate, true
}

// ActivityDate returns the most recent signal of work on the task:
// the end date when set, otherwise the start date.
func (t Task) ActivityDate() (time.Time, bool) {
	if t.EndDate != nil {
		return *t.EndDate, true
	}
	if t.StartDate != nil {
		return *t.StartDate, true
	}
	return time.Time{}, false
}

// ExportShare is a stored, shareable rendering of an analytics export.
type ExportShare struct {
	Token     string    `json:"token"`
	ObjectKey string    `json:"-"`
	Format    string    `json:"format"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
