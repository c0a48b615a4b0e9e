package core

import "time"

const monthKeyLayout = "2006-01"

// MonthKey formats a point in time as a YYYY-MM month key.
func MonthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// AvailableMonths returns the trailing twelve month keys ending at the month
// containing now. Index 0 is the current month, higher indices go further
// into the past. The window is purely clock-derived; months without any
// stored data are still listed.
func AvailableMonths(now time.Time) []string {
	months := make([]string, 0, 12)
	// Normalize to the first of the month so stepping back never skips a
	// short month (e.g. Mar 31 minus one month).
	cur := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 0; i < 12; i++ {
		months = append(months, cur.Format(monthKeyLayout))
		cur = cur.AddDate(0, -1, 0)
	}
	return months
}
