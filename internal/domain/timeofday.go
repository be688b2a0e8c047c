package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is a clock time expressed as seconds since midnight.
// Its natural integer order is the (hour, minute, second) order.
type TimeOfDay int32

const secondsPerDay = 24 * 60 * 60

// NewTimeOfDay validates the components and builds a TimeOfDay.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, fmt.Errorf("time of day %02d:%02d:%02d out of range", hour, minute, second)
	}
	return TimeOfDay(hour*3600 + minute*60 + second), nil
}

// TimeOfDayOf extracts the clock time of t in its own location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay(h*3600 + m*60 + s)
}

func (d TimeOfDay) Hour() int   { return int(d) / 3600 }
func (d TimeOfDay) Minute() int { return int(d) % 3600 / 60 }
func (d TimeOfDay) Second() int { return int(d) % 60 }

// Seconds returns the number of seconds since midnight.
func (d TimeOfDay) Seconds() int { return int(d) }

// Duration returns the offset from midnight.
func (d TimeOfDay) Duration() time.Duration { return time.Duration(d) * time.Second }

// Valid reports whether d lies within a single day.
func (d TimeOfDay) Valid() bool { return d >= 0 && d < secondsPerDay }

// On places the clock time on the calendar date of day.
func (d TimeOfDay) On(day time.Time) time.Time {
	y, m, dd := day.Date()
	return time.Date(y, m, dd, d.Hour(), d.Minute(), d.Second(), 0, day.Location())
}

// HHMM formats as "15:04", the form used in reports.
func (d TimeOfDay) HHMM() string {
	return fmt.Sprintf("%02d:%02d", d.Hour(), d.Minute())
}

func (d TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", d.Hour(), d.Minute(), d.Second())
}
