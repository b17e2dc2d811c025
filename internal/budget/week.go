package budget

import "time"

// WeekStart returns midnight on the Monday of the ISO week containing
// now, in now's location. The caller passes the clock in, so everything
// keyed on it stays reproducible in tests.
func WeekStart(now time.Time) time.Time {
	shift := (int(now.Weekday()) + 6) % 7 // Monday = 0
	d := now.AddDate(0, 0, -shift)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
}

// WeekEnd returns midnight on the Sunday closing the same week.
func WeekEnd(now time.Time) time.Time {
	return WeekStart(now).AddDate(0, 0, 6)
}
