// Command loadprofile folds a meter load-profile export onto a 24-hour axis
// and either prints the energy and cost inside and outside a daily time range
// or writes a chart of the typical day next to the input file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/milad/loadprofile/internal/config"
	"github.com/milad/loadprofile/internal/logging"
	"github.com/milad/loadprofile/internal/repo/csvrepo"
	"github.com/milad/loadprofile/internal/report"
	"github.com/milad/loadprofile/internal/report/chart"
	"github.com/milad/loadprofile/internal/service"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	input      string
	from       string
	to         string
	timeRange  string
	tariff     float64
	currency   string
	format     string
	output     string
	configPath string
	logLevel   string
	set        map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("loadprofile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: loadprofile -f meter_22016209_LP_17-10-2024.csv [-from 20240801T000000] [-to 20240901T000000] [-r 7:00-17:00]\n\nAvailable options:\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&o.input, "input-file", "", "input stats file (required)")
	fs.StringVar(&o.input, "f", "", "shorthand for -input-file")
	fs.StringVar(&o.from, "from", "", "from date and/or time, ISO format, exclusive (optional)")
	fs.StringVar(&o.to, "to", "", "to date and/or time, ISO format, exclusive (optional)")
	fs.StringVar(&o.timeRange, "time-range", "", "daily time range HH:MM-HH:MM; prints a cost report instead of a chart (optional)")
	fs.StringVar(&o.timeRange, "r", "", "shorthand for -time-range")
	fs.Float64Var(&o.tariff, "tariff", report.DefaultPricePerKWh, "price per kWh")
	fs.StringVar(&o.currency, "currency", report.DefaultCurrency, "currency label")
	fs.StringVar(&o.format, "format", chart.FormatHTML, "chart format: html, xlsx or pdf")
	fs.StringVar(&o.output, "o", "", "chart output path (default: input path with the format extension)")
	fs.StringVar(&o.configPath, "config", "", "YAML config file (default $"+config.PathEnv+")")
	fs.StringVar(&o.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.input == "" && fs.NArg() > 0 {
		o.input = fs.Arg(0)
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	if o.input == "" {
		fs.Usage()
		return o, errors.New("input file not specified")
	}
	return o, nil
}

// applyTo lets explicit flags win over the config file and environment.
func (o options) applyTo(cfg *config.Config) {
	if o.set["tariff"] {
		cfg.Tariff.PricePerKWh = o.tariff
	}
	if o.set["currency"] {
		cfg.Tariff.Currency = o.currency
	}
	if o.set["format"] {
		cfg.Chart.Format = o.format
	}
	if o.set["log-level"] {
		cfg.Log.Level = o.logLevel
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	opts.applyTo(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger := logging.NewTo(stderr, cfg.Log.Level, logging.EncodingConsole)
	defer func() { _ = logger.Sync() }()

	if err := execute(ctx, opts, cfg, logger, stdout); err != nil {
		logger.Error("loadprofile failed", zap.Error(err))
		return 1
	}
	return 0
}

func execute(ctx context.Context, opts options, cfg config.Config, logger *zap.Logger, stdout io.Writer) error {
	// Configuration problems are fatal before a single row is read.
	q, err := service.ParseQuery(opts.from, opts.to, opts.timeRange)
	if err != nil {
		return err
	}
	tariff, err := cfg.ReportTariff()
	if err != nil {
		return err
	}
	var renderer chart.Renderer
	if q.Range == nil {
		if renderer, err = chart.New(cfg.Chart.Format, cfg.ChartOptions()); err != nil {
			return err
		}
	}

	repo, loadErr := csvrepo.NewFromFile(opts.input)
	if repo == nil {
		return loadErr
	}
	rejected := csvrepo.RowErrors(loadErr)
	for _, re := range rejected {
		logger.Warn("invalid row", zap.Int("line", re.Line), zap.String("text", re.Text), zap.Error(re.Err))
	}
	service.ObserveRejectedRows(len(rejected))

	svc := service.NewProfileService(repo, report.NewReporter(tariff))
	res, err := svc.Profile(ctx, q)
	if err != nil {
		return err
	}
	logger.Debug("profile built",
		zap.Int("accepted", res.Accepted),
		zap.Int("skipped", res.Skipped),
		zap.Int("rejected", len(rejected)),
		zap.Int("points", res.Profile.Len()),
	)

	if res.Split != nil {
		return report.WriteSplit(stdout, *res.Split)
	}
	return writeChart(opts, renderer, res, stdout)
}

func writeChart(opts options, renderer chart.Renderer, res service.Result, stdout io.Writer) error {
	path := opts.output
	if path == "" {
		path = chart.OutputPath(opts.input, renderer.Ext())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open plot output %q: %w", path, err)
	}
	if err := emitChart(f, renderer, res, stdout); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close plot output %q: %w", path, err)
	}
	return nil
}

// emitChart echoes the series to stdout and renders it into w.
func emitChart(w io.Writer, renderer chart.Renderer, res service.Result, stdout io.Writer) error {
	if err := report.WriteSeries(stdout, res.Profile); err != nil {
		return fmt.Errorf("write series: %w", err)
	}
	if err := renderer.Render(w, report.ChartSeries(res.Profile)); err != nil {
		return fmt.Errorf("render %s chart: %w", renderer.Ext(), err)
	}
	return nil
}
