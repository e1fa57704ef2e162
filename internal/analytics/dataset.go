package analytics

import (
	"time"

	"github.com/StrideHQ/stride-web/internal/models"
)

// Dataset is the immutable input to every analyzer: the raw record
// collections plus the single reference instant all derived windows agree
// on. Callers capture "now" once per computation and pass it in; nothing
// in this package reads the system clock.
type Dataset struct {
	Goals    []models.Goal
	Subgoals []models.Subgoal
	Tasks    []models.Task
	Ref      time.Time
}

// NewDataset builds a dataset for one computation.
func NewDataset(goals []models.Goal, subgoals []models.Subgoal, tasks []models.Task, ref time.Time) *Dataset {
	return &Dataset{Goals: goals, Subgoals: subgoals, Tasks: tasks, Ref: ref}
}

// Scoped returns a copy of the dataset narrowed to a single goal's
// subgoals and tasks. The zero-cost path (nil goalID) returns the
// receiver unchanged.
func (d *Dataset) Scoped(goalID *int64) *Dataset {
	if goalID == nil {
		return d
	}
	scoped := &Dataset{Ref: d.Ref}
	for _, g := range d.Goals {
		if g.ID == *goalID {
			scoped.Goals = append(scoped.Goals, g)
		}
	}
	for _, sg := range d.Subgoals {
		if sg.GoalID == *goalID {
			scoped.Subgoals = append(scoped.Subgoals, sg)
		}
	}
	for _, t := range d.Tasks {
		if t.GoalID == *goalID {
			scoped.Tasks = append(scoped.Tasks, t)
		}
	}
	return scoped
}

// CompletedTasks returns tasks that are done. Tasks missing an end date
// are included here; date-keyed analyzers filter them individually.
func (d *Dataset) CompletedTasks() []models.Task {
	var out []models.Task
	for _, t := range d.Tasks {
		if t.Done {
			out = append(out, t)
		}
	}
	return out
}

// RemainingTasks returns tasks that are not done.
func (d *Dataset) RemainingTasks() []models.Task {
	var out []models.Task
	for _, t := range d.Tasks {
		if !t.Done {
			out = append(out, t)
		}
	}
	return out
}

// TasksForGoal returns tasks owned by the goal.
func (d *Dataset) TasksForGoal(goalID int64) []models.Task {
	var out []models.Task
	for _, t := range d.Tasks {
		if t.GoalID == goalID {
			out = append(out, t)
		}
	}
	return out
}

// SubgoalsForGoal returns subgoals under the goal.
func (d *Dataset) SubgoalsForGoal(goalID int64) []models.Subgoal {
	var out []models.Subgoal
	for _, sg := range d.Subgoals {
		if sg.GoalID == goalID {
			out = append(out, sg)
		}
	}
	return out
}

// completionsByDay builds a calendar-day index of completion counts.
// Only done tasks with an end date contribute.
func (d *Dataset) completionsByDay() map[string]int {
	byDay := make(map[string]int)
	for _, t := range d.Tasks {
		if ts, ok := t.CompletionDate(); ok {
			byDay[dayKey(ts.In(d.Ref.Location()))]++
		}
	}
	return byDay
}
