// Package profile folds interval readings onto a 24-hour clock axis.
//
// Readings from different calendar dates that share a clock time are summed
// into one point, giving the shape of a typical day over the selected window.
package profile

import (
	"slices"

	"github.com/milad/loadprofile/internal/domain"
)

// Aggregator accumulates energy per time of day. It is not safe for
// concurrent use; one Aggregator serves one pass over the input.
type Aggregator struct {
	window   domain.Window
	totals   map[domain.TimeOfDay]float64
	accepted int
	skipped  int
}

func NewAggregator(window domain.Window) *Aggregator {
	return &Aggregator{
		window: window,
		totals: make(map[domain.TimeOfDay]float64),
	}
}

// Add accumulates r when it lies strictly inside the window and reports
// whether it was accepted.
func (a *Aggregator) Add(r domain.Reading) bool {
	if !a.window.ContainsExclusive(r.Time) {
		a.skipped++
		return false
	}
	a.totals[r.TimeOfDay()] += r.Energy
	a.accepted++
	return true
}

// AddAll calls Add for every reading.
func (a *Aggregator) AddAll(readings []domain.Reading) {
	for _, r := range readings {
		a.Add(r)
	}
}

// Accepted returns how many readings were folded into the profile.
func (a *Aggregator) Accepted() int { return a.accepted }

// Skipped returns how many readings fell outside the window.
func (a *Aggregator) Skipped() int { return a.skipped }

// Profile returns the accumulated series ordered by time of day.
// Later calls to Add do not affect a returned Profile.
func (a *Aggregator) Profile() domain.Profile {
	keys := make([]domain.TimeOfDay, 0, len(a.totals))
	for k := range a.totals {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	points := make([]domain.SeriesPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, domain.SeriesPoint{Time: k, Total: a.totals[k]})
	}
	return domain.Profile{Points: points}
}

// Aggregate is a one-shot helper over a slice of readings.
func Aggregate(readings []domain.Reading, window domain.Window) domain.Profile {
	a := NewAggregator(window)
	a.AddAll(readings)
	return a.Profile()
}
