package chart

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/milad/loadprofile/internal/domain"
	"github.com/milad/loadprofile/internal/report"
)

const xlsxSheet = "profile"

type xlsxRenderer struct {
	opts Options
}

func (r *xlsxRenderer) Ext() string { return FormatXLSX }

// Render writes the series to a sheet and adds a line chart over it.
func (r *xlsxRenderer) Render(w io.Writer, s report.Series) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}
	_ = f.SetCellValue(xlsxSheet, "A1", "Time")
	_ = f.SetCellValue(xlsxSheet, "B1", "Seconds")
	_ = f.SetCellValue(xlsxSheet, "C1", r.opts.SeriesLabel)
	for i := range s.X {
		row := i + 2
		_ = f.SetCellValue(xlsxSheet, fmt.Sprintf("A%d", row), domain.TimeOfDay(s.X[i]).HHMM())
		_ = f.SetCellValue(xlsxSheet, fmt.Sprintf("B%d", row), s.X[i])
		_ = f.SetCellValue(xlsxSheet, fmt.Sprintf("C%d", row), s.Y[i])
	}

	if n := s.Len(); n > 0 {
		last := n + 1
		err := f.AddChart(xlsxSheet, "E2", &excelize.Chart{
			Type: excelize.Line,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$C$1", xlsxSheet),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", xlsxSheet, last),
				Values:     fmt.Sprintf("%s!$C$2:$C$%d", xlsxSheet, last),
			}},
			Title:  []excelize.RichTextRun{{Text: r.opts.Title}},
			Legend: excelize.ChartLegend{Position: "bottom"},
			Dimension: excelize.ChartDimension{
				Width:  uint(r.opts.Width / 2),
				Height: uint(r.opts.Height / 2),
			},
		})
		if err != nil {
			return fmt.Errorf("add chart: %w", err)
		}
	}

	return f.Write(w)
}
