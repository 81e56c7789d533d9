package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/nom-chart/internal/chart"
	"github.com/couchcryptid/nom-chart/internal/domain"
	"github.com/couchcryptid/nom-chart/internal/observability"
	"github.com/couchcryptid/nom-chart/internal/pipeline"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockExtractor struct {
	ds  domain.Dataset
	err error
}

func (m *mockExtractor) Extract(_ context.Context) (domain.Dataset, error) {
	return m.ds, m.err
}

type mockEmitter struct {
	name    string
	err     error
	emitted []*chart.Figure
	delay   time.Duration
	clock   *clockwork.FakeClock
}

func (m *mockEmitter) Name() string { return m.name }

func (m *mockEmitter) Emit(_ context.Context, fig *chart.Figure) error {
	if m.clock != nil {
		m.clock.Advance(m.delay)
	}
	if m.err != nil {
		return m.err
	}
	m.emitted = append(m.emitted, fig)
	return nil
}

func scenarioDataset() domain.Dataset {
	return domain.Dataset{
		Source: "vic_nom_last5.csv",
		Rows: []domain.Row{
			{FinancialYear: "2019-20", NetMigrant: 100000},
			{FinancialYear: "2020-21", NetMigrant: 30000},
			{FinancialYear: "2021-22", NetMigrant: 90000},
			{FinancialYear: "2022-23", NetMigrant: 110000},
			{FinancialYear: "2023-24", NetMigrant: 120000},
		},
	}
}

func newPipeline(ext pipeline.Extractor, emitters ...pipeline.Emitter) (*pipeline.Pipeline, *observability.Metrics) {
	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(ext, pipeline.NewChartBuilder(chart.DefaultOptions()), emitters, slog.Default(), metrics)
	return p, metrics
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	html := &mockEmitter{name: "html"}
	display := &mockEmitter{name: "display"}
	p, metrics := newPipeline(&mockExtractor{ds: scenarioDataset()}, html, display)

	require.NoError(t, p.Run(context.Background()))

	require.Len(t, html.emitted, 1)
	require.Len(t, display.emitted, 1)
	assert.Same(t, html.emitted[0], display.emitted[0], "both outputs consume the same figure")

	outlier, ok := html.emitted[0].Trace(chart.TraceOutlier)
	require.True(t, ok)
	assert.Equal(t, []float64{30000}, outlier.Y)

	assert.Equal(t, 5.0, testutil.ToFloat64(metrics.RowsLoaded))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FiguresBuilt))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Emits.WithLabelValues("html", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Emits.WithLabelValues("display", "success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.RunInProgress))
}

func TestPipeline_Run_LoadErrorEmitsNothing(t *testing.T) {
	html := &mockEmitter{name: "html"}
	p, metrics := newPipeline(&mockExtractor{err: domain.ErrDataLoad}, html)

	err := p.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrDataLoad)
	assert.Empty(t, html.emitted)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.FiguresBuilt))
}

func TestPipeline_Run_MissingOutlierEmitsNothing(t *testing.T) {
	ds := domain.Dataset{Rows: []domain.Row{{FinancialYear: "2019-20", NetMigrant: 1}}}
	html := &mockEmitter{name: "html"}
	p, metrics := newPipeline(&mockExtractor{ds: ds}, html)

	err := p.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrMissingOutlier)
	assert.Empty(t, html.emitted)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.BuildErrors))
}

func TestPipeline_Run_EmitErrorStopsLaterEmitters(t *testing.T) {
	html := &mockEmitter{name: "html", err: domain.ErrOutputWrite}
	display := &mockEmitter{name: "display"}
	p, metrics := newPipeline(&mockExtractor{ds: scenarioDataset()}, html, display)

	err := p.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrOutputWrite)
	assert.Contains(t, err.Error(), "emit html")
	assert.Empty(t, display.emitted)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Emits.WithLabelValues("html", "error")))
}

func TestPipeline_Run_DisplayErrorIsFatal(t *testing.T) {
	html := &mockEmitter{name: "html"}
	display := &mockEmitter{name: "display", err: errors.Join(domain.ErrDisplayUnavailable, errors.New("headless"))}
	p, _ := newPipeline(&mockExtractor{ds: scenarioDataset()}, html, display)

	err := p.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrDisplayUnavailable)
	assert.Len(t, html.emitted, 1)
}

func TestPipeline_Run_RecordsDurations(t *testing.T) {
	clock := clockwork.NewFakeClock()
	html := &mockEmitter{name: "html", clock: clock, delay: 2 * time.Second}
	p, metrics := newPipeline(&mockExtractor{ds: scenarioDataset()}, html)
	p.WithClock(clock)

	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.RunDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.EmitDuration))
}

func TestChartBuilder_UsesOptions(t *testing.T) {
	opts := chart.DefaultOptions()
	opts.OutlierLabel = "2023-24"

	fig, err := pipeline.NewChartBuilder(opts).Build(scenarioDataset())
	require.NoError(t, err)

	outlier, ok := fig.Trace(chart.TraceOutlier)
	require.True(t, ok)
	assert.Equal(t, []string{"2023-24"}, outlier.X)
}
