package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/nom-chart/internal/chart"
	"github.com/couchcryptid/nom-chart/internal/domain"
	"github.com/couchcryptid/nom-chart/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Extractor loads the whole input table.
type Extractor interface {
	Extract(ctx context.Context) (domain.Dataset, error)
}

// Builder turns a dataset into an immutable figure.
type Builder interface {
	Build(ds domain.Dataset) (*chart.Figure, error)
}

// Emitter consumes a finished figure: writes it somewhere or shows it.
type Emitter interface {
	Name() string
	Emit(ctx context.Context, fig *chart.Figure) error
}

// Pipeline runs load, build, and emit once, in that order.
type Pipeline struct {
	extractor Extractor
	builder   Builder
	emitters  []Emitter
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
}

// New creates a Pipeline with the given stages and observability. Emitters
// run in the order given.
func New(e Extractor, b Builder, emitters []Emitter, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor: e,
		builder:   b,
		emitters:  emitters,
		logger:    logger,
		metrics:   metrics,
		clock:     clockwork.NewRealClock(),
	}
}

// WithClock replaces the time source used for duration metrics.
func (p *Pipeline) WithClock(c clockwork.Clock) *Pipeline {
	p.clock = c
	return p
}

// Run executes one chart run. The first error aborts the run: nothing is
// emitted when loading or building fails, and later emitters are skipped
// when an earlier one fails. There are no retries.
func (p *Pipeline) Run(ctx context.Context) error {
	start := p.clock.Now()
	p.metrics.RunInProgress.Set(1)
	defer p.metrics.RunInProgress.Set(0)

	ds, err := p.extractor.Extract(ctx)
	if err != nil {
		p.logger.Error("load dataset failed", "error", err)
		return fmt.Errorf("load: %w", err)
	}
	p.metrics.RowsLoaded.Add(float64(len(ds.Rows)))
	p.logger.Info("dataset loaded", "source", ds.Source, "rows", len(ds.Rows))

	fig, err := p.builder.Build(ds)
	if err != nil {
		p.metrics.BuildErrors.Inc()
		p.logger.Error("build figure failed", "error", err, "source", ds.Source)
		return fmt.Errorf("build: %w", err)
	}
	p.metrics.FiguresBuilt.Inc()

	for _, e := range p.emitters {
		if err := p.emit(ctx, e, fig); err != nil {
			return err
		}
	}

	p.metrics.RunDuration.Observe(p.clock.Since(start).Seconds())
	p.logger.Info("chart run complete", "outputs", len(p.emitters))
	return nil
}

func (p *Pipeline) emit(ctx context.Context, e Emitter, fig *chart.Figure) error {
	start := p.clock.Now()
	err := e.Emit(ctx, fig)
	p.metrics.EmitDuration.WithLabelValues(e.Name()).Observe(p.clock.Since(start).Seconds())

	if err != nil {
		p.metrics.Emits.WithLabelValues(e.Name(), "error").Inc()
		p.logger.Error("emit failed", "output", e.Name(), "error", err)
		return fmt.Errorf("emit %s: %w", e.Name(), err)
	}
	p.metrics.Emits.WithLabelValues(e.Name(), "success").Inc()
	return nil
}
