package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/couchcryptid/nom-chart/internal/adapter/htmlpage"
	"github.com/couchcryptid/nom-chart/internal/chart"
	"github.com/couchcryptid/nom-chart/internal/domain"
	"github.com/couchcryptid/nom-chart/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/browser"
)

// Opener shows a URL to the user, usually by launching a browser.
type Opener func(url string) error

// BrowserOpener opens url in the system browser.
func BrowserOpener(url string) error {
	return browser.OpenURL(url)
}

// ViewerConfig configures the interactive display.
type ViewerConfig struct {
	Addr            string        // loopback listen address, port 0 picks a free port
	PlotlyURL       string        // CDN script for the served page
	Timeout         time.Duration // how long to wait for the page to be fetched
	ShutdownTimeout time.Duration
}

// Viewer shows a figure interactively: it serves the rendered page from a
// short-lived local HTTP server, opens it, and waits for the first fetch.
type Viewer struct {
	cfg     ViewerConfig
	open    Opener
	clock   clockwork.Clock
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewViewer creates a Viewer. A nil opener uses BrowserOpener; a nil clock
// uses the real clock.
func NewViewer(cfg ViewerConfig, open Opener, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Viewer {
	if open == nil {
		open = BrowserOpener
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	return &Viewer{cfg: cfg, open: open, clock: clock, metrics: metrics, logger: logger}
}

// Name identifies the output in logs and metrics.
func (v *Viewer) Name() string { return "display" }

// Emit blocks until the page has been served once. A failed launch, a
// timeout, or a server error wraps domain.ErrDisplayUnavailable.
func (v *Viewer) Emit(ctx context.Context, fig *chart.Figure) error {
	page, err := htmlpage.Render(fig, v.cfg.PlotlyURL)
	if err != nil {
		return err
	}
	figJSON, err := json.Marshal(fig)
	if err != nil {
		return fmt.Errorf("encode figure: %w", err)
	}

	srv := NewServer(v.cfg.Addr, v.metrics, v.logger)
	srv.Publish(page, figJSON)

	ln, err := net.Listen("tcp", v.cfg.Addr)
	if err != nil {
		return fmt.Errorf("%w: listen %s: %w", domain.ErrDisplayUnavailable, v.cfg.Addr, err)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()
	defer v.shutdown(srv)

	url := "http://" + ln.Addr().String() + "/"
	v.logger.Info("opening chart viewer", "url", url)
	if err := v.open(url); err != nil {
		return fmt.Errorf("%w: open %s: %w", domain.ErrDisplayUnavailable, url, err)
	}

	timer := v.clock.NewTimer(v.cfg.Timeout)
	defer timer.Stop()

	select {
	case <-srv.Viewed():
		v.logger.Info("chart displayed", "url", url)
		return nil
	case <-timer.Chan():
		return fmt.Errorf("%w: page not opened within %s", domain.ErrDisplayUnavailable, v.cfg.Timeout)
	case err := <-serveErr:
		return fmt.Errorf("%w: viewer server: %w", domain.ErrDisplayUnavailable, err)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (v *Viewer) shutdown(srv *Server) {
	ctx, cancel := context.WithTimeout(context.Background(), v.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		v.logger.Warn("viewer shutdown error", "error", err)
	}
}
