package billing

import "time"

// dateOnly truncates a timestamp to a calendar date in UTC so that day
// arithmetic is exact regardless of the zone or wall-clock part.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BookedDays returns the inclusive day count of a booking range: a booking
// from day D to day D is 1 day, from D to D+6 is 7 days.
func BookedDays(start, end time.Time) (int, error) {
	s, e := dateOnly(start), dateOnly(end)
	if e.Before(s) {
		return 0, &InvalidRangeError{Start: s, End: e}
	}
	return int(e.Sub(s)/(24*time.Hour)) + 1, nil
}

// DaysBetween returns the signed, non-inclusive number of days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)) / (24 * time.Hour))
}

// AddMonths advances a date by n calendar months, clamping the day to the
// last day of the target month (Jan 31 + 1 month = Feb 28, not Mar 3).
func AddMonths(t time.Time, n int) time.Time {
	t = dateOnly(t)
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}
