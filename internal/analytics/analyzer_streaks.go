package analytics

// streakWindowDays bounds how far back streak scans look.
const streakWindowDays = 365

// StreakAnalyzer tracks consecutive-day completion runs. A day counts
// when at least one task completed on it; done tasks without an end date
// can neither extend nor break a streak.
type StreakAnalyzer struct{}

// Analyze computes the current and longest streaks over the trailing
// 365-day window.
func (a *StreakAnalyzer) Analyze(ds *Dataset) StreakCard {
	byDay := ds.completionsByDay()
	if len(byDay) == 0 {
		return StreakCard{}
	}

	today := dayStart(ds.Ref)

	// Current: walk backward from today inclusive, stop at the first
	// day with zero completions.
	current := 0
	for i := 0; i < streakWindowDays; i++ {
		day := today.AddDate(0, 0, -i)
		if byDay[dayKey(day)] == 0 {
			break
		}
		current++
	}

	// Longest: walk the whole window forward, tracking the maximum run.
	longest, run := 0, 0
	for i := streakWindowDays; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		if byDay[dayKey(day)] > 0 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}

	return StreakCard{Current: current, Longest: longest}
}
