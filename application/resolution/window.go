package resolution

import "time"

// dayBounds returns the start and end of the calendar day containing t,
// evaluated in the reference time zone. The resolution pass loads the day
// report and counts same-day duration occurrences against this window.
func dayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.Add(24 * time.Hour)
}
