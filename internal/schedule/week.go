package schedule

import (
	"time"

	"taskboard/internal/model"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Week is a Monday-aligned 7-day window. Start and End are inclusive
// calendar dates at midnight UTC.
type Week struct {
	Start time.Time
	End   time.Time
}

// WeekOf returns the Monday-aligned week containing day.
func WeekOf(day time.Time) Week {
	day = truncate(day)
	// time.Weekday puts Sunday at 0; shift so Monday is 0.
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return Week{Start: start, End: start.AddDate(0, 0, 6)}
}

// Shift moves the window by whole weeks. Negative n moves backwards.
func (w Week) Shift(n int) Week {
	return Week{Start: w.Start.AddDate(0, 0, 7*n), End: w.End.AddDate(0, 0, 7*n)}
}

// Days lists the seven dates of the window, Monday first.
func (w Week) Days() []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = w.Start.AddDate(0, 0, i)
	}
	return days
}

// Contains reports whether day falls inside the window.
func (w Week) Contains(day time.Time) bool {
	day = truncate(day)
	return !day.Before(w.Start) && !day.After(w.End)
}

// InCell reports whether a task renders in the (user, day) grid cell:
// the task is owned by that user and [start_date, due_date] covers the
// day. A multi-day task therefore appears once per spanned day.
func InCell(t *model.Task, userID string, day time.Time) bool {
	if t.OwnerID.String() != userID {
		return false
	}
	return Covers(t, day)
}

// Covers reports whether [start_date, due_date] includes day, inclusive
// on both ends.
func Covers(t *model.Task, day time.Time) bool {
	day = truncate(day)
	start := truncate(t.StartDate)
	due := truncate(t.DueDate)
	return !day.Before(start) && !day.After(due)
}

// Intersects reports whether a task's date range overlaps the window at
// all, which is what the week query selects on.
func Intersects(t *model.Task, w Week) bool {
	return !truncate(t.StartDate).After(w.End) && !truncate(t.DueDate).Before(w.Start)
}

func truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
