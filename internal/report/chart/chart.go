// Package chart renders a time-of-day series into a standalone artifact.
package chart

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/milad/loadprofile/internal/report"
)

const (
	FormatHTML = "html"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// Options control chart appearance. Zero fields take the defaults.
type Options struct {
	Title       string
	SeriesLabel string
	Width       int
	Height      int
	// AssetBase is where the HTML page loads uPlot from.
	AssetBase string
}

func DefaultOptions() Options {
	return Options{
		Title:       "kW consumption",
		SeriesLabel: "kWh",
		Width:       1900,
		Height:      600,
		AssetBase:   "uPlot/dist",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Title == "" {
		o.Title = d.Title
	}
	if o.SeriesLabel == "" {
		o.SeriesLabel = d.SeriesLabel
	}
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.AssetBase == "" {
		o.AssetBase = d.AssetBase
	}
	o.AssetBase = strings.TrimSuffix(o.AssetBase, "/")
	return o
}

// Renderer writes a chart of s to w.
type Renderer interface {
	Render(w io.Writer, s report.Series) error
	// Ext is the file extension of the artifact, without the dot.
	Ext() string
}

// New returns the renderer for format.
func New(format string, opts Options) (Renderer, error) {
	opts = opts.withDefaults()
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatHTML:
		return &htmlRenderer{opts: opts}, nil
	case FormatXLSX:
		return &xlsxRenderer{opts: opts}, nil
	case FormatPDF:
		return &pdfRenderer{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown chart format %q (want %s)", format, strings.Join(Formats(), ", "))
	}
}

// Formats lists the supported chart formats.
func Formats() []string {
	return []string{FormatHTML, FormatXLSX, FormatPDF}
}

// OutputPath replaces the extension of input with ext.
func OutputPath(input, ext string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + ext
}
