package domain

import "time"

// Window bounds which readings are aggregated. A nil bound is unbounded.
// Both bounds are exclusive: a reading stamped exactly at From or To is dropped.
type Window struct {
	From *time.Time
	To   *time.Time
}

// ContainsExclusive reports whether From < t < To.
func (w Window) ContainsExclusive(t time.Time) bool {
	if w.From != nil && !t.After(*w.From) {
		return false
	}
	if w.To != nil && !t.Before(*w.To) {
		return false
	}
	return true
}

// Bounded reports whether at least one bound is set.
func (w Window) Bounded() bool {
	return w.From != nil || w.To != nil
}

// TimeRange is a daily clock interval used to split an aggregated profile.
// Unlike Window, both ends are inclusive.
type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

// ContainsInclusive reports whether Start <= d <= End.
func (r TimeRange) ContainsInclusive(d TimeOfDay) bool {
	return d >= r.Start && d <= r.End
}

func (r TimeRange) String() string {
	return r.Start.HHMM() + "-" + r.End.HHMM()
}
