package domain

import "time"

// DaysPerWeek is the fixed column count of the calendar grid.
const DaysPerWeek = 7

// DayCell is one rendered unit of a month grid: an in-month day or a filler
// cell padding the first/last row. Cells are a derived view, rebuilt wholesale
// on every grid request and never persisted.
type DayCell struct {
	Date       time.Time `json:"date"`
	DayNumber  int       `json:"dayNumber"` // 1-based day of month, 0 for filler cells
	GridRow    int       `json:"gridRow"`
	GridColumn int       `json:"gridColumn"`

	IsCurrentDay bool `json:"isCurrentDay"`
	IsEnabled    bool `json:"isEnabled"` // false for filler cells

	HasWorkout         bool `json:"hasWorkout"`
	HasClass           bool `json:"hasClass"`
	IsWorkoutCompleted bool `json:"isWorkoutCompleted"` // meaningless unless HasWorkout
}

// MonthStart returns the first day of anchor's month, midnight UTC.
func MonthStart(anchor time.Time) time.Time {
	return time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of anchor's month, midnight UTC.
// First day of the next month minus one day.
func MonthEnd(anchor time.Time) time.Time {
	return MonthStart(anchor).AddDate(0, 1, -1)
}

// LeadingFillerCount is the number of filler cells needed before the first of
// the month to pad the first grid row back to the week-start boundary.
func LeadingFillerCount(anchor time.Time, weekStart time.Weekday) int {
	first := MonthStart(anchor)
	return (int(first.Weekday()) - int(weekStart) + DaysPerWeek) % DaysPerWeek
}

// TrailingFillerCount is the number of filler cells needed after the last of
// the month to pad the last grid row forward to the week-end boundary.
func TrailingFillerCount(anchor time.Time, weekStart time.Weekday) int {
	last := MonthEnd(anchor)
	weekEnd := (int(weekStart) + DaysPerWeek - 1) % DaysPerWeek
	return (weekEnd - int(last.Weekday()) + DaysPerWeek) % DaysPerWeek
}

// GridRange returns the first date of the grid and the total number of cells
// for the month containing anchor. The count is always a positive multiple of
// DaysPerWeek: the month extended backward to the nearest week start and
// forward to the nearest week end.
func GridRange(anchor time.Time, weekStart time.Weekday) (start time.Time, days int) {
	leading := LeadingFillerCount(anchor, weekStart)
	start = MonthStart(anchor).AddDate(0, 0, -leading)
	days = leading + MonthEnd(anchor).Day() + TrailingFillerCount(anchor, weekStart)
	return start, days
}
