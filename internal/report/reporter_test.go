package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milad/loadprofile/internal/domain"
)

func hm(h, m int) domain.TimeOfDay { return domain.TimeOfDay(h*3600 + m*60) }

func sampleProfile() domain.Profile {
	return domain.Profile{Points: []domain.SeriesPoint{
		{Time: hm(6, 45), Total: 0.5},
		{Time: hm(7, 0), Total: 5.0},
		{Time: hm(17, 0), Total: 2.0},
		{Time: hm(17, 15), Total: 1.0},
	}}
}

func TestReporter_SplitRangeIsInclusive(t *testing.T) {
	t.Parallel()

	r := NewReporter(DefaultTariff())
	s := r.Split(sampleProfile(), domain.TimeRange{Start: hm(7, 0), End: hm(17, 0)})

	assert.Equal(t, 7.0, s.Inside)
	assert.Equal(t, 1.5, s.Outside)
	assert.Equal(t, "3.6764", s.InsideCost.String())
	assert.Equal(t, "0.7878", s.OutsideCost.String())
	assert.Equal(t, "NIS", s.Currency)
}

func TestWriteSplit(t *testing.T) {
	t.Parallel()

	r := NewReporter(DefaultTariff())
	p := domain.Profile{Points: []domain.SeriesPoint{
		{Time: hm(7, 0), Total: 5.0},
		{Time: hm(20, 0), Total: 1.0},
	}}
	s := r.Split(p, domain.TimeRange{Start: hm(7, 0), End: hm(17, 0)})

	var buf bytes.Buffer
	require.NoError(t, WriteSplit(&buf, s))
	assert.Equal(t, "07:00-17:00\t5kWh, 2.626NIS\nThe rest:\t1kWh, 0.5252NIS\n", buf.String())
}

func TestTariff(t *testing.T) {
	t.Parallel()

	_, err := NewTariff(-1, "")
	require.Error(t, err)

	tr, err := NewTariff(0.3, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultCurrency, tr.Currency)
	assert.Equal(t, "0.3", tr.Cost(1).String())
	assert.Equal(t, "0", tr.Cost(0).String())
}

func TestWriteSeries(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteSeries(&buf, sampleProfile()))
	assert.Equal(t, "06:45\t0.5\n07:00\t5\n17:00\t2\n17:15\t1\n", buf.String())
}

func TestChartSeries(t *testing.T) {
	t.Parallel()

	s := ChartSeries(sampleProfile())
	assert.Equal(t, []int{6*3600 + 45*60, 7 * 3600, 17 * 3600, 17*3600 + 15*60}, s.X)
	assert.Equal(t, []float64{0.5, 5, 2, 1}, s.Y)
	assert.Equal(t, 4, s.Len())
}
