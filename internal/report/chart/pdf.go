package chart

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/milad/loadprofile/internal/domain"
	"github.com/milad/loadprofile/internal/report"
)

const secondsPerDay = 24 * 60 * 60

type pdfRenderer struct {
	opts Options
}

func (r *pdfRenderer) Ext() string { return FormatPDF }

// Render draws the series as a dashed polyline over a 24h axis, followed by
// a table of the values.
func (r *pdfRenderer) Render(w io.Writer, s report.Series) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()
	pdf.Cell(0, 8, r.opts.Title)
	pdf.Ln(12)

	const (
		left   = 20.0
		top    = 30.0
		width  = 257.0
		height = 150.0
	)
	maxY := 0.0
	for _, v := range s.Y {
		if v > maxY {
			maxY = v
		}
	}
	if maxY <= 0 {
		maxY = 1
	}

	pdf.SetFont("Arial", "", 8)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Line(left, top+height, left+width, top+height)
	pdf.Line(left, top, left, top+height)
	for h := 0; h <= 24; h += 3 {
		x := left + width*float64(h)/24
		pdf.Line(x, top+height, x, top+height+1.5)
		pdf.Text(x-3, top+height+5, fmt.Sprintf("%02d:00", h))
	}
	pdf.Text(left-15, top+2, report.FormatEnergy(maxY))
	pdf.Text(left-5, top+height, "0")

	pdf.SetDrawColor(255, 0, 0)
	pdf.SetDashPattern([]float64{2, 1}, 0)
	for i := 1; i < s.Len(); i++ {
		x0 := left + width*float64(s.X[i-1])/secondsPerDay
		y0 := top + height - height*s.Y[i-1]/maxY
		x1 := left + width*float64(s.X[i])/secondsPerDay
		y1 := top + height - height*s.Y[i]/maxY
		pdf.Line(x0, y0, x1, y1)
	}
	pdf.SetDashPattern([]float64{}, 0)
	pdf.SetDrawColor(0, 0, 0)

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Time", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, r.opts.SeriesLabel, "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for i := range s.X {
		pdf.CellFormat(40, 6, domain.TimeOfDay(s.X[i]).HHMM(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, report.FormatEnergy(s.Y[i]), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
