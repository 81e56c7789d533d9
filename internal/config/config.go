package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/couchcryptid/nom-chart/internal/adapter/htmlpage"
	"github.com/couchcryptid/nom-chart/internal/chart"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all run settings, populated from environment variables.
// Defaults reproduce the published Victorian chart.
type Config struct {
	InputPath       string
	InputSheet      string
	HTMLPath        string
	PNGPath         string // empty disables the PNG snapshot
	PlotlyURL       string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Interactive display.
	Show        bool
	ShowAddr    string
	ShowTimeout time.Duration

	// Chart options derived from NOM_OUTLIER_LABEL and NOM_ARROW_LENGTH.
	Chart chart.Options
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	showTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("NOM_SHOW_TIMEOUT", "30s"))
	if err != nil || showTimeout <= 0 {
		return nil, errors.New("invalid NOM_SHOW_TIMEOUT")
	}

	show, err := strconv.ParseBool(sharedcfg.EnvOrDefault("NOM_SHOW", "true"))
	if err != nil {
		return nil, errors.New("invalid NOM_SHOW")
	}

	opts := chart.DefaultOptions()
	opts.OutlierLabel = sharedcfg.EnvOrDefault("NOM_OUTLIER_LABEL", opts.OutlierLabel)
	if s := os.Getenv("NOM_ARROW_LENGTH"); s != "" {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid NOM_ARROW_LENGTH %q", s)
		}
		opts.ArrowLength = n
	}

	cfg := &Config{
		InputPath:       sharedcfg.EnvOrDefault("NOM_CSV_PATH", "vic_nom_last5.csv"),
		InputSheet:      os.Getenv("NOM_SHEET"),
		HTMLPath:        sharedcfg.EnvOrDefault("NOM_HTML_PATH", "vic_nom_trend_plotly.html"),
		PNGPath:         os.Getenv("NOM_PNG_PATH"),
		PlotlyURL:       sharedcfg.EnvOrDefault("NOM_PLOTLY_CDN", htmlpage.DefaultPlotlyURL),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "auto"),
		ShutdownTimeout: shutdownTimeout,

		Show:        show,
		ShowAddr:    sharedcfg.EnvOrDefault("NOM_SHOW_ADDR", "127.0.0.1:0"),
		ShowTimeout: showTimeout,

		Chart: opts,
	}

	switch cfg.LogFormat {
	case "auto", "console", "json":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	return cfg, nil
}
