package chart

import (
	_ "embed"
	"html/template"
	"io"

	"github.com/milad/loadprofile/internal/report"
)

//go:embed chart.html.tmpl
var chartHTML string

var chartTemplate = template.Must(template.New("chart").Parse(chartHTML))

type htmlRenderer struct {
	opts Options
}

func (r *htmlRenderer) Ext() string { return FormatHTML }

func (r *htmlRenderer) Render(w io.Writer, s report.Series) error {
	x, y := s.X, s.Y
	if x == nil {
		x = []int{}
	}
	if y == nil {
		y = []float64{}
	}
	return chartTemplate.Execute(w, struct {
		Options
		X []int
		Y []float64
	}{Options: r.opts, X: x, Y: y})
}
