package analytics

import "math"

// MilestoneAnalyzer rolls task completion up to each subgoal.
type MilestoneAnalyzer struct{}

// Analyze returns per-subgoal progress and the aggregate milestone
// completion rate for the dataset's scope.
func (a *MilestoneAnalyzer) Analyze(ds *Dataset) MilestoneCard {
	milestones := make([]MilestoneProgress, 0, len(ds.Subgoals))
	completed := 0

	for _, sg := range ds.Subgoals {
		total, done := 0, 0
		for _, t := range ds.Tasks {
			if t.SubgoalID == nil || *t.SubgoalID != sg.ID {
				continue
			}
			total++
			if t.Done {
				done++
			}
		}

		progress := 0
		if total > 0 {
			progress = int(math.Round(float64(done) / float64(total) * 100))
		}
		status := "not-started"
		switch {
		case progress == 100:
			status = "completed"
			completed++
		case progress > 50:
			status = "in-progress"
		}

		milestones = append(milestones, MilestoneProgress{
			SubgoalID:      sg.ID,
			Name:           sg.Name,
			Progress:       progress,
			Status:         status,
			TotalTasks:     total,
			CompletedTasks: done,
		})
	}

	return MilestoneCard{
		Milestones:     milestones,
		Completed:      completed,
		Total:          len(milestones),
		CompletionRate: roundedRate(completed, len(milestones)),
	}
}
