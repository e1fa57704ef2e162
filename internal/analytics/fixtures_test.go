package analytics

import (
	"time"

	"github.com/StrideHQ/stride-web/internal/models"
)

// testRef is the fixed reference instant used across analyzer tests.
var testRef = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func doneTask(goalID int64, name string, end time.Time) models.Task {
	start := end.Add(-24 * time.Hour)
	return models.Task{
		GoalID:    goalID,
		Name:      name,
		Priority:  models.PriorityMedium,
		Done:      true,
		StartDate: &start,
		EndDate:   &end,
	}
}

func openTask(goalID int64, name string) models.Task {
	return models.Task{
		GoalID:   goalID,
		Name:     name,
		Priority: models.PriorityMedium,
	}
}

func dataset(tasks ...models.Task) *Dataset {
	return NewDataset(nil, nil, tasks, testRef)
}

func goalWithEndDate(id int64, name string, end time.Time) models.Goal {
	return models.Goal{ID: id, Name: name, Status: "In Progress", EndDate: &end}
}
