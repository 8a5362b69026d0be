// Package daterange resolves a coarse period selection into a
// calendar-aligned date range.
package daterange

import (
	"time"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
)

// Resolve maps a period unit and an anchor date to the calendar-aligned
// range containing the anchor. Boundaries are normalized to start-of-day and
// end-of-day in the anchor's location, so resolving the same anchor twice
// always yields the identical range. The function is total; every time.Time
// is a valid anchor.
func Resolve(unit models.PeriodUnit, anchor time.Time) models.DateRange {
	year, month, day := anchor.Date()
	loc := anchor.Location()
	date := time.Date(year, month, day, 0, 0, 0, 0, loc)

	var start, end time.Time
	switch unit {
	case models.PeriodDay:
		start, end = date, date
	case models.PeriodWeek:
		// Sunday-Saturday week containing the anchor.
		start = date.AddDate(0, 0, -int(date.Weekday()))
		end = start.AddDate(0, 0, 6)
	case models.PeriodMonth:
		start = time.Date(year, month, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0).AddDate(0, 0, -1)
	case models.PeriodQuarter:
		firstMonth := time.Month((int(month)-1)/3*3 + 1)
		start = time.Date(year, firstMonth, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 3, 0).AddDate(0, 0, -1)
	case models.PeriodYear:
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		end = time.Date(year, time.December, 31, 0, 0, 0, 0, loc)
	default:
		start, end = date, date
	}

	return models.DateRange{Start: start, End: endOfDay(end)}
}

// ResolveWindow resolves a time window value.
func ResolveWindow(w models.TimeWindow) models.DateRange {
	return Resolve(w.Unit, w.Anchor)
}

// endOfDay returns the last representable instant of t's calendar day.
func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
