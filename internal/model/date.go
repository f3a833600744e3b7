package model

import "time"

// DayStart truncates t to midnight in its own location. Calendar-day
// comparisons throughout the app go through this so "today" means the local
// calendar date, not a 24-hour window.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayStart(a).Equal(DayStart(b.In(a.Location())))
}
