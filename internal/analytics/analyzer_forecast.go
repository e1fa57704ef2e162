package analytics

import (
	"math"
	"time"
)

// forecastTimelinePoints is the number of weekly samples on the
// actual-vs-forecast timeline (i = 0..10).
const forecastTimelinePoints = 11

// ForecastAnalyzer extrapolates an estimated completion date from the
// average cycle time of completed tasks. The projection is linear and
// deliberately simple; confidence shrinks with backlog size.
type ForecastAnalyzer struct{}

// Analyze computes the completion forecast for the dataset's tasks.
// With zero completed tasks it returns immediately: nil date, zero
// confidence, empty timeline.
func (a *ForecastAnalyzer) Analyze(ds *Dataset) ForecastCard {
	completed := ds.CompletedTasks()
	remaining := ds.RemainingTasks()

	if len(completed) == 0 {
		return ForecastCard{Timeline: []ForecastPoint{}}
	}

	// Mean cycle time over completed tasks that carry both dates; tasks
	// missing either date are excluded from the mean but do not block
	// the computation.
	var totalDays float64
	for _, t := range completed {
		if t.StartDate != nil && t.EndDate != nil {
			totalDays += t.EndDate.Sub(*t.StartDate).Hours() / 24
		}
	}
	avgCycleDays := totalDays / float64(len(completed))

	// The 1-day floor keeps zero-duration tasks from collapsing the
	// estimate.
	perTask := math.Max(avgCycleDays, 1)
	estimatedDays := float64(len(remaining)) * perTask
	estimated := ds.Ref.Add(time.Duration(estimatedDays * 24 * float64(time.Hour)))

	confidence := 100 - len(remaining)*5
	if confidence < 20 {
		confidence = 20
	}
	if confidence > 100 {
		confidence = 100
	}

	timeline := make([]ForecastPoint, 0, forecastTimelinePoints)
	total := len(ds.Tasks)
	for i := 0; i < forecastTimelinePoints; i++ {
		point := ds.Ref.AddDate(0, 0, i*7)
		actual := 0
		for _, t := range completed {
			if t.EndDate != nil && !t.EndDate.After(point) {
				actual++
			}
		}
		forecast := len(completed) + int(math.Round(float64(i*7)/perTask))
		if forecast > total {
			forecast = total
		}
		timeline = append(timeline, ForecastPoint{
			Date:     dayKey(point),
			Actual:   actual,
			Forecast: forecast,
		})
	}

	return ForecastCard{
		EstimatedCompletionDate: &estimated,
		EstimatedDaysRemaining:  int(math.Round(estimatedDays)),
		AvgCycleDays:            avgCycleDays,
		Confidence:              confidence,
		Timeline:                timeline,
	}
}
