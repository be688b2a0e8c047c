// Package config loads tool settings from an optional YAML file followed by
// LOADPROFILE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milad/loadprofile/internal/report"
	"github.com/milad/loadprofile/internal/report/chart"
)

// PathEnv names the config file when no path is given explicitly.
const PathEnv = "LOADPROFILE_CONFIG"

// TariffConfig prices energy in the range report.
type TariffConfig struct {
	PricePerKWh float64 `yaml:"price_per_kwh"`
	Currency    string  `yaml:"currency"`
}

// ChartConfig controls the visualization artifact.
type ChartConfig struct {
	Format    string `yaml:"format"`
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	AssetBase string `yaml:"asset_base"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Tariff TariffConfig `yaml:"tariff"`
	Chart  ChartConfig  `yaml:"chart"`
	Log    LogConfig    `yaml:"log"`
}

// Default returns the built-in settings.
func Default() Config {
	opts := chart.DefaultOptions()
	return Config{
		Tariff: TariffConfig{
			PricePerKWh: report.DefaultPricePerKWh,
			Currency:    report.DefaultCurrency,
		},
		Chart: ChartConfig{
			Format:    chart.FormatHTML,
			Title:     opts.Title,
			Width:     opts.Width,
			Height:    opts.Height,
			AssetBase: opts.AssetBase,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load starts from Default, merges the YAML file at path (or $LOADPROFILE_CONFIG
// when path is empty), applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(PathEnv)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: decode yaml: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := lookup("LOADPROFILE_PRICE_PER_KWH"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: parse LOADPROFILE_PRICE_PER_KWH: %w", err)
		}
		cfg.Tariff.PricePerKWh = f
	}
	if v, ok := lookup("LOADPROFILE_CURRENCY"); ok {
		cfg.Tariff.Currency = v
	}
	if v, ok := lookup("LOADPROFILE_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookup("LOADPROFILE_CHART_FORMAT"); ok {
		cfg.Chart.Format = v
	}
	if v, ok := lookup("LOADPROFILE_CHART_TITLE"); ok {
		cfg.Chart.Title = v
	}
	if v, ok := lookup("LOADPROFILE_UPLOT_BASE"); ok {
		cfg.Chart.AssetBase = v
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	if c.Tariff.PricePerKWh < 0 {
		return errors.New("config: tariff price_per_kwh must be >= 0")
	}
	if _, err := chart.New(c.Chart.Format, c.ChartOptions()); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ReportTariff converts the tariff section for the reporter.
func (c Config) ReportTariff() (report.Tariff, error) {
	return report.NewTariff(c.Tariff.PricePerKWh, c.Tariff.Currency)
}

// ChartOptions converts the chart section for the renderers.
func (c Config) ChartOptions() chart.Options {
	return chart.Options{
		Title:     c.Chart.Title,
		Width:     c.Chart.Width,
		Height:    c.Chart.Height,
		AssetBase: c.Chart.AssetBase,
	}
}
