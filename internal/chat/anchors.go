package chat

import "time"

// anchorLayout is the timestamp format the generation prompt feeds the model
// for BETWEEN clauses.
const anchorLayout = "2006-01-02 15:04:05"

// Anchors holds the date boundaries injected into the stage-1 prompt so the
// model never has to compute dates itself. Computed once per request from
// wall-clock time, immutable afterwards.
type Anchors struct {
	WeekStart  time.Time
	WeekEnd    time.Time
	MonthStart time.Time
	MonthEnd   time.Time
	YearStart  time.Time
	YearEnd    time.Time
}

// ComputeAnchors derives the current week (starting Monday), month and year
// boundaries from now. The week anchors keep the time-of-day; month and year
// anchors are clamped to their first/last instant.
func ComputeAnchors(now time.Time) Anchors {
	// Monday = 0 ... Sunday = 6
	weekday := (int(now.Weekday()) + 6) % 7
	weekStart := now.AddDate(0, 0, -weekday)
	weekEnd := weekStart.AddDate(0, 0, 6)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Microsecond)

	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	yearEnd := time.Date(now.Year(), time.December, 31, 23, 59, 59, 999999000, now.Location())

	return Anchors{
		WeekStart:  weekStart,
		WeekEnd:    weekEnd,
		MonthStart: monthStart,
		MonthEnd:   monthEnd,
		YearStart:  yearStart,
		YearEnd:    yearEnd,
	}
}
