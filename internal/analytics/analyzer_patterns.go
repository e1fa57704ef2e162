package analytics

// heatmapDays is the size of the trailing daily-activity window.
const heatmapDays = 42

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// PatternsAnalyzer derives completion distributions: the trailing daily
// heatmap, hourly energy buckets, and day-of-week counts.
type PatternsAnalyzer struct{}

// Heatmap returns the trailing 42-day completion heatmap, oldest day
// first. Intensity scales each day against the busiest day in the
// window, so it is always within [0,1].
func (a *PatternsAnalyzer) Heatmap(ds *Dataset) []HeatmapDay {
	byDay := ds.completionsByDay()
	today := dayStart(ds.Ref)

	max := 0
	for i := heatmapDays - 1; i >= 0; i-- {
		if c := byDay[dayKey(today.AddDate(0, 0, -i))]; c > max {
			max = c
		}
	}
	if max < 1 {
		max = 1
	}

	cells := make([]HeatmapDay, 0, heatmapDays)
	for i := heatmapDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		c := byDay[dayKey(day)]
		cells = append(cells, HeatmapDay{
			Date:        dayKey(day),
			Completions: c,
			Intensity:   float64(c) / float64(max),
		})
	}
	return cells
}

// Analyze computes the hourly and day-of-week patterns. The hour is
// taken from each completion's end date, falling back to the start date;
// tasks with neither are skipped.
func (a *PatternsAnalyzer) Analyze(ds *Dataset) PatternsCard {
	hours := make([]HourBucket, 24)
	for h := range hours {
		hours[h].Hour = h
	}
	days := make([]DayOfWeekBucket, 7)
	for d := range days {
		days[d].Day = weekdayNames[d]
	}

	for _, t := range ds.Tasks {
		if !t.Done {
			continue
		}
		ts, ok := t.ActivityDate()
		if !ok {
			continue
		}
		local := ts.In(ds.Ref.Location())
		hours[local.Hour()].Completions++
		hours[local.Hour()].Productivity += t.Priority.Weight()
		if t.EndDate != nil {
			days[int(t.EndDate.In(ds.Ref.Location()).Weekday())].Completions++
		}
	}

	// Peak hour: maximum completions, first occurrence wins on ties.
	peak := 0
	for h := 1; h < 24; h++ {
		if hours[h].Completions > hours[peak].Completions {
			peak = h
		}
	}

	lowEnergy := []int{}
	for h := 0; h < 24; h++ {
		if hours[h].Completions == 0 {
			lowEnergy = append(lowEnergy, h)
		}
	}

	sum := func(from, to int) int {
		total := 0
		for h := from; h < to; h++ {
			total += hours[h].Completions
		}
		return total
	}

	return PatternsCard{
		Hourly:    hours,
		PeakHour:  peak,
		LowEnergy: lowEnergy,
		Morning:   sum(6, 12),
		Afternoon: sum(12, 18),
		Evening:   sum(18, 24),
		DayOfWeek: days,
	}
}
