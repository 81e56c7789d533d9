// Command nomchart renders the net overseas migration chart: it reads the
// input table, writes a standalone HTML chart (and optionally a PNG), then
// opens the chart in the system browser.
//
// All settings come from environment variables; see internal/config.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/nom-chart/internal/adapter/http"
	"github.com/couchcryptid/nom-chart/internal/adapter/htmlpage"
	"github.com/couchcryptid/nom-chart/internal/adapter/snapshot"
	"github.com/couchcryptid/nom-chart/internal/adapter/table"
	"github.com/couchcryptid/nom-chart/internal/config"
	"github.com/couchcryptid/nom-chart/internal/observability"
	"github.com/couchcryptid/nom-chart/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(
		table.Open(cfg.InputPath, cfg.InputSheet, logger),
		pipeline.NewChartBuilder(cfg.Chart),
		emitters(cfg, metrics, logger),
		logger,
		metrics,
	)

	if err := p.Run(ctx); err != nil {
		logger.Error("chart run failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// emitters returns the outputs in run order: files first, display last.
func emitters(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) []pipeline.Emitter {
	out := []pipeline.Emitter{htmlpage.NewWriter(cfg.HTMLPath, cfg.PlotlyURL, logger)}

	if cfg.PNGPath != "" {
		out = append(out, snapshot.NewWriter(cfg.PNGPath, logger))
	}

	if cfg.Show {
		out = append(out, httpadapter.NewViewer(httpadapter.ViewerConfig{
			Addr:            cfg.ShowAddr,
			PlotlyURL:       cfg.PlotlyURL,
			Timeout:         cfg.ShowTimeout,
			ShutdownTimeout: cfg.ShutdownTimeout,
		}, nil, nil, metrics, logger))
	} else {
		logger.Info("interactive display disabled")
	}

	return out
}
