package itinerary

import "time"

const calendarLayout = "2006-01-02"

// ParseCalendarDate extracts the calendar date from a stored date string.
// Time-of-day and timezone offsets inside the string are ignored; only the
// leading YYYY-MM-DD is read, in UTC.
func ParseCalendarDate(s string) (time.Time, bool) {
	if len(s) < len(calendarLayout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(calendarLayout, s[:len(calendarLayout)], time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// TruncateToDay drops the time-of-day component, in UTC.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole-day UTC difference from start to date.
// Negative when date precedes start.
func DaysBetween(start, date time.Time) int {
	return int(TruncateToDay(date).Sub(TruncateToDay(start)).Hours() / 24)
}

// SameCalendarDay reports whether two instants fall on the same UTC calendar
// date.
func SameCalendarDay(a, b time.Time) bool {
	return TruncateToDay(a).Equal(TruncateToDay(b))
}
