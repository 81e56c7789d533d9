package http_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	httpadapter "github.com/couchcryptid/nom-chart/internal/adapter/http"
	"github.com/couchcryptid/nom-chart/internal/chart"
	"github.com/couchcryptid/nom-chart/internal/domain"
	"github.com/couchcryptid/nom-chart/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFigure(t *testing.T) *chart.Figure {
	t.Helper()
	fig, err := chart.Build([]domain.Row{
		{FinancialYear: "2019-20", NetMigrant: 100000},
		{FinancialYear: "2020-21", NetMigrant: 30000},
	}, chart.DefaultOptions())
	require.NoError(t, err)
	return fig
}

func testViewerConfig() httpadapter.ViewerConfig {
	return httpadapter.ViewerConfig{
		Addr:            "127.0.0.1:0",
		Timeout:         time.Minute,
		ShutdownTimeout: time.Second,
	}
}

// fetchOpener plays the browser: it fetches the page and records the body.
type fetchOpener struct {
	url  string
	body string
}

func (o *fetchOpener) open(url string) error {
	o.url = url
	resp, err := http.Get(url) //nolint:noctx // test helper
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	o.body = string(b)
	return err
}

func TestViewer_DisplaysPage(t *testing.T) {
	opener := &fetchOpener{}
	v := httpadapter.NewViewer(testViewerConfig(), opener.open, clockwork.NewFakeClock(), observability.NewMetricsForTesting(), slog.Default())
	assert.Equal(t, "display", v.Name())

	require.NoError(t, v.Emit(context.Background(), testFigure(t)))

	assert.True(t, strings.HasPrefix(opener.url, "http://127.0.0.1:"))
	assert.Contains(t, opener.body, "Plotly.newPlot")
	assert.Contains(t, opener.body, "Significant drop due to COVID-19")
}

func TestViewer_ServerClosedAfterEmit(t *testing.T) {
	opener := &fetchOpener{}
	v := httpadapter.NewViewer(testViewerConfig(), opener.open, clockwork.NewFakeClock(), observability.NewMetricsForTesting(), slog.Default())
	require.NoError(t, v.Emit(context.Background(), testFigure(t)))

	client := &http.Client{Timeout: time.Second}
	_, err := client.Get(opener.url) //nolint:noctx // test helper
	require.Error(t, err)
}

func TestViewer_OpenerFailure(t *testing.T) {
	failing := func(string) error { return errors.New("no browser found") }
	v := httpadapter.NewViewer(testViewerConfig(), failing, clockwork.NewFakeClock(), observability.NewMetricsForTesting(), slog.Default())

	err := v.Emit(context.Background(), testFigure(t))
	require.ErrorIs(t, err, domain.ErrDisplayUnavailable)
	assert.Contains(t, err.Error(), "no browser found")
}

func TestViewer_TimeoutWhenNeverFetched(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cfg := testViewerConfig()
	v := httpadapter.NewViewer(cfg, func(string) error { return nil }, clock, observability.NewMetricsForTesting(), slog.Default())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		if err := clock.BlockUntilContext(ctx, 1); err == nil {
			clock.Advance(cfg.Timeout)
		}
	}()

	err := v.Emit(ctx, testFigure(t))
	require.ErrorIs(t, err, domain.ErrDisplayUnavailable)
	assert.Contains(t, err.Error(), "not opened within")
}

func TestViewer_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	opener := func(string) error {
		cancel()
		return nil
	}
	v := httpadapter.NewViewer(testViewerConfig(), opener, clockwork.NewFakeClock(), observability.NewMetricsForTesting(), slog.Default())

	err := v.Emit(ctx, testFigure(t))
	require.ErrorIs(t, err, context.Canceled)
}

func TestViewer_ListenFailure(t *testing.T) {
	cfg := testViewerConfig()
	cfg.Addr = "not-an-address"
	v := httpadapter.NewViewer(cfg, func(string) error { return nil }, clockwork.NewFakeClock(), observability.NewMetricsForTesting(), slog.Default())

	err := v.Emit(context.Background(), testFigure(t))
	require.ErrorIs(t, err, domain.ErrDisplayUnavailable)
}
