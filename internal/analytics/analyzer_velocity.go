package analytics

import (
	"math"
	"strconv"
)

// VelocityAnalyzer buckets completions into trailing 7-day periods and
// compares the current window against the one before it.
type VelocityAnalyzer struct {
	Timeframe Timeframe
}

// Analyze computes the velocity trend series and comparison.
func (a *VelocityAnalyzer) Analyze(ds *Dataset) VelocityCard {
	windowDays := a.Timeframe.Days()
	periods := Periods(ds.Ref, 7, PeriodCount(windowDays))

	points := make([]VelocityPoint, len(periods))
	for i, p := range periods {
		count := 0
		for _, t := range ds.Tasks {
			if ts, ok := t.CompletionDate(); ok && p.Contains(ts) {
				count++
			}
		}
		points[i] = VelocityPoint{
			Label: "W" + strconv.Itoa(i+1),
			Count: count,
			Date:  dayKey(p.Start),
		}
	}

	return VelocityCard{
		Periods:    points,
		Comparison: a.compare(ds, windowDays),
	}
}

// compare counts completions in the trailing window and the equal-length
// window before it. A zero previous count yields a 0% change, never a
// division by zero.
func (a *VelocityAnalyzer) compare(ds *Dataset, windowDays int) VelocityComparison {
	current := Period{Start: ds.Ref.AddDate(0, 0, -windowDays), End: ds.Ref}
	previous := Period{Start: ds.Ref.AddDate(0, 0, -2*windowDays), End: current.Start}

	var cur, prev int
	for _, t := range ds.Tasks {
		ts, ok := t.CompletionDate()
		if !ok {
			continue
		}
		switch {
		case current.Contains(ts):
			cur++
		case previous.Contains(ts):
			prev++
		}
	}

	change := 0
	if prev > 0 {
		change = int(math.Round(float64(cur-prev) / float64(prev) * 100))
	}

	return VelocityComparison{
		Period:    a.Timeframe,
		Current:   cur,
		Previous:  prev,
		ChangePct: change,
		Projected: cur + int(math.Round(float64(cur)*0.1)),
	}
}
