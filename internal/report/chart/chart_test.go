package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/milad/loadprofile/internal/report"
)

func sampleSeries() report.Series {
	return report.Series{
		X: []int{0, 900, 25200},
		Y: []float64{1.5, 2, 5},
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := New("svg", Options{})
	require.Error(t, err)

	r, err := New("", Options{})
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, r.Ext())
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "data/meter_22016209_LP.html", OutputPath("data/meter_22016209_LP.csv", "html"))
	assert.Equal(t, "meter.xlsx", OutputPath("meter", "xlsx"))
}

func TestHTMLRenderer_EmbedsSeries(t *testing.T) {
	t.Parallel()

	r, err := New(FormatHTML, Options{Title: "August <weekdays>"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, sampleSeries()))
	out := buf.String()

	assert.Contains(t, out, "[0,900,25200]")
	assert.Contains(t, out, "[1.5,2,5]")
	assert.Contains(t, out, `href="uPlot/dist/uPlot.min.css"`)
	assert.Regexp(t, `width:\s+1900`, out)
	assert.Contains(t, out, "<title>August &lt;weekdays&gt;</title>")
	assert.NotContains(t, out, "<weekdays>")
}

func TestHTMLRenderer_EmptySeries(t *testing.T) {
	t.Parallel()

	r, err := New(FormatHTML, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, report.Series{}))
	assert.Equal(t, 2, strings.Count(buf.String(), "[],"))
}

func TestXLSXRenderer(t *testing.T) {
	t.Parallel()

	r, err := New(FormatXLSX, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, sampleSeries()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	v, err := f.GetCellValue(xlsxSheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "07:00", v)
	v, err = f.GetCellValue(xlsxSheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "1.5", v)
}

func TestPDFRenderer(t *testing.T) {
	t.Parallel()

	r, err := New(FormatPDF, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, sampleSeries()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
