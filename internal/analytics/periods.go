package analytics

import (
	"fmt"
	"math"
	"time"
)

// Timeframe selects how far back an aggregation looks.
type Timeframe string

const (
	TimeframeWeek    Timeframe = "week"
	TimeframeMonth   Timeframe = "month"
	TimeframeQuarter Timeframe = "quarter"
	TimeframeYear    Timeframe = "year"
)

// ParseTimeframe validates a raw timeframe string. Empty defaults to month.
func ParseTimeframe(raw string) (Timeframe, error) {
	switch Timeframe(raw) {
	case "":
		return TimeframeMonth, nil
	case TimeframeWeek, TimeframeMonth, TimeframeQuarter, TimeframeYear:
		return Timeframe(raw), nil
	default:
		return "", fmt.Errorf("unknown timeframe %q", raw)
	}
}

// Days returns the trailing window width in days.
func (t Timeframe) Days() int {
	switch t {
	case TimeframeWeek:
		return 7
	case TimeframeQuarter:
		return 90
	case TimeframeYear:
		return 365
	default:
		return 30
	}
}

// Period is a half-open time window [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether ts falls inside the window.
func (p Period) Contains(ts time.Time) bool {
	return !ts.Before(p.Start) && ts.Before(p.End)
}

// Periods returns count contiguous windows of sizeDays days each, trailing
// backward from ref, ordered oldest to newest. Every boundary is derived
// fresh from ref by day-offset arithmetic; nothing is mutated across
// iterations.
func Periods(ref time.Time, sizeDays, count int) []Period {
	if sizeDays <= 0 || count <= 0 {
		return []Period{}
	}
	periods := make([]Period, 0, count)
	for i := count - 1; i >= 0; i-- {
		periods = append(periods, Period{
			Start: ref.AddDate(0, 0, -(i+1)*sizeDays),
			End:   ref.AddDate(0, 0, -i*sizeDays),
		})
	}
	return periods
}

// PeriodCount returns how many 7-day buckets the velocity calculator uses
// for a trailing window of windowDays: at most 12, zero below one week.
func PeriodCount(windowDays int) int {
	n := windowDays / 7
	if n > 12 {
		return 12
	}
	return n
}

// dayStart truncates ts to local midnight in its own location.
func dayStart(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}

// dayKey formats a calendar day for map lookups and JSON series.
func dayKey(ts time.Time) string {
	return ts.Format("2006-01-02")
}

// daysUntil returns the number of days from ref until ts, rounded up.
// Negative when ts is in the past.
func daysUntil(ref, ts time.Time) int {
	return int(math.Ceil(ts.Sub(ref).Hours() / 24))
}
