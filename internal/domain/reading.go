package domain

import "time"

// Reading is a single interval energy reading from a load-profile export.
// Time carries no zone information; it is stored in UTC only as a carrier.
type Reading struct {
	Time   time.Time
	Energy float64
}

// TimeOfDay returns the clock time of the reading, dropping the calendar date.
func (r Reading) TimeOfDay() TimeOfDay {
	return TimeOfDayOf(r.Time)
}
