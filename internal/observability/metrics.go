package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for a chart run.
type Metrics struct {
	RowsLoaded    prometheus.Counter
	FiguresBuilt  prometheus.Counter
	BuildErrors   prometheus.Counter
	RunInProgress prometheus.Gauge
	RunDuration   prometheus.Histogram

	// Output metrics.
	Emits        *prometheus.CounterVec   // labels: output={html,png,display}, outcome={success,error}
	EmitDuration *prometheus.HistogramVec // labels: output
	PageViews    prometheus.Counter
}

// NewMetrics creates and registers all run metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsLoaded,
		m.FiguresBuilt,
		m.BuildErrors,
		m.RunInProgress,
		m.RunDuration,
		m.Emits,
		m.EmitDuration,
		m.PageViews,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nom_chart",
			Name:      "rows_loaded_total",
			Help:      "Total dataset rows read from the input table.",
		}),
		FiguresBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nom_chart",
			Name:      "figures_built_total",
			Help:      "Total figures built from a loaded dataset.",
		}),
		BuildErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nom_chart",
			Name:      "build_errors_total",
			Help:      "Total figure build failures.",
		}),
		RunInProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nom_chart",
			Name:      "run_in_progress",
			Help:      "1 while a chart run is active, 0 otherwise.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nom_chart",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete load-build-emit run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		}),
		Emits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nom_chart",
			Name:      "emits_total",
			Help:      "Chart outputs by output channel and outcome.",
		}, []string{"output", "outcome"}),
		EmitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nom_chart",
			Name:      "emit_duration_seconds",
			Help:      "Time spent producing each chart output.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"output"}),
		PageViews: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nom_chart",
			Name:      "page_views_total",
			Help:      "Chart page requests served by the viewer.",
		}),
	}
}
