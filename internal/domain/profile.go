package domain

// SeriesPoint is the summed energy for one clock time across all dates.
type SeriesPoint struct {
	Time  TimeOfDay
	Total float64
}

// Profile is the aggregated time-of-day series, ordered by Time ascending.
// It must be treated as read-only once built.
type Profile struct {
	Points []SeriesPoint
}

// Total sums every point of the profile.
func (p Profile) Total() float64 {
	var sum float64
	for _, pt := range p.Points {
		sum += pt.Total
	}
	return sum
}

// Len returns the number of distinct clock times.
func (p Profile) Len() int { return len(p.Points) }
