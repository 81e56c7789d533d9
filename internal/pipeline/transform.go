package pipeline

import (
	"github.com/couchcryptid/nom-chart/internal/chart"
	"github.com/couchcryptid/nom-chart/internal/domain"
)

// ChartBuilder implements Builder with fixed chart options.
type ChartBuilder struct {
	opts chart.Options
}

// NewChartBuilder creates a ChartBuilder.
func NewChartBuilder(opts chart.Options) *ChartBuilder {
	return &ChartBuilder{opts: opts}
}

func (b *ChartBuilder) Build(ds domain.Dataset) (*chart.Figure, error) {
	return chart.Build(ds.Rows, b.opts)
}
