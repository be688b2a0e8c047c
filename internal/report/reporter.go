// Package report turns an aggregated profile into a range split with costs,
// console rows, or the parallel axes handed to a chart renderer.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/milad/loadprofile/internal/domain"
)

// Split is the energy of a profile inside and outside a daily time range.
type Split struct {
	Range       domain.TimeRange
	Inside      float64
	Outside     float64
	InsideCost  decimal.Decimal
	OutsideCost decimal.Decimal
	Currency    string
}

// Reporter renders profiles priced with a fixed tariff.
type Reporter struct {
	tariff Tariff
}

func NewReporter(t Tariff) *Reporter {
	return &Reporter{tariff: t}
}

func (r *Reporter) Tariff() Tariff { return r.tariff }

// Split partitions p by tr. Keys equal to the range start or end count as inside.
func (r *Reporter) Split(p domain.Profile, tr domain.TimeRange) Split {
	var inside, outside float64
	for _, pt := range p.Points {
		if tr.ContainsInclusive(pt.Time) {
			inside += pt.Total
		} else {
			outside += pt.Total
		}
	}
	return Split{
		Range:       tr,
		Inside:      inside,
		Outside:     outside,
		InsideCost:  r.tariff.Cost(inside),
		OutsideCost: r.tariff.Cost(outside),
		Currency:    r.tariff.Currency,
	}
}

// WriteSplit prints the two report lines:
//
//	07:00-17:00	5kWh, 2.626NIS
//	The rest:	1kWh, 0.5252NIS
func WriteSplit(w io.Writer, s Split) error {
	_, err := fmt.Fprintf(w, "%s\t%skWh, %s%s\nThe rest:\t%skWh, %s%s\n",
		s.Range, FormatEnergy(s.Inside), s.InsideCost.String(), s.Currency,
		FormatEnergy(s.Outside), s.OutsideCost.String(), s.Currency,
	)
	return err
}

// WriteSeries echoes one "HH:MM<TAB>total" row per profile point.
func WriteSeries(w io.Writer, p domain.Profile) error {
	for _, pt := range p.Points {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", pt.Time.HHMM(), FormatEnergy(pt.Total)); err != nil {
			return err
		}
	}
	return nil
}

// Series is the chart-ready form of a profile: seconds since midnight on X,
// summed energy on Y.
type Series struct {
	X []int
	Y []float64
}

func (s Series) Len() int { return len(s.X) }

// ChartSeries splits p into parallel axes, preserving its order.
func ChartSeries(p domain.Profile) Series {
	s := Series{
		X: make([]int, 0, len(p.Points)),
		Y: make([]float64, 0, len(p.Points)),
	}
	for _, pt := range p.Points {
		s.X = append(s.X, pt.Time.Seconds())
		s.Y = append(s.Y, pt.Total)
	}
	return s
}

// FormatEnergy prints kWh with the fewest digits that round-trip.
func FormatEnergy(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
