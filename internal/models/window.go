package models

import "time"

// PeriodUnit is the coarse time-period selection for the dashboard.
type PeriodUnit int

const (
	// PeriodDay shows a single day.
	PeriodDay PeriodUnit = iota
	// PeriodWeek shows the Sunday-Saturday week containing the anchor.
	PeriodWeek
	// PeriodMonth shows the calendar month containing the anchor.
	PeriodMonth
	// PeriodQuarter shows the calendar quarter containing the anchor.
	PeriodQuarter
	// PeriodYear shows the calendar year containing the anchor.
	PeriodYear
)

// String returns the display name for a period unit.
func (p PeriodUnit) String() string {
	switch p {
	case PeriodDay:
		return "Day"
	case PeriodWeek:
		return "Week"
	case PeriodMonth:
		return "Month"
	case PeriodQuarter:
		return "Quarter"
	case PeriodYear:
		return "Year"
	default:
		return "Unknown"
	}
}

// Next cycles to the next period unit.
func (p PeriodUnit) Next() PeriodUnit {
	return (p + 1) % 5
}

// TimeWindow is the coarse period selection plus its anchor date. It is
// replaced wholesale on every change, never mutated in place, so range
// resolution stays a pure function of the current value.
type TimeWindow struct {
	Unit   PeriodUnit
	Anchor time.Time
}

// NewTimeWindow creates a window anchored at the given instant.
func NewTimeWindow(unit PeriodUnit, anchor time.Time) TimeWindow {
	return TimeWindow{Unit: unit, Anchor: anchor}
}

// WithUnit returns a copy with a different unit, same anchor.
func (w TimeWindow) WithUnit(unit PeriodUnit) TimeWindow {
	return TimeWindow{Unit: unit, Anchor: w.Anchor}
}

// WithAnchor returns a copy with a different anchor, same unit.
func (w TimeWindow) WithAnchor(anchor time.Time) TimeWindow {
	return TimeWindow{Unit: w.Unit, Anchor: anchor}
}

// DateRange is a calendar-aligned inclusive date range. Start has zero
// time-of-day components and End the maximum ones, so timestamp comparisons
// against the range are unambiguous.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range, boundaries included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Days returns the number of calendar days covered by the range.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}
