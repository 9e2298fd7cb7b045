package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRecorder observes planner activity. It is entirely optional:
// NoopMetrics is the zero-cost default a Context is built with. Env.Metrics
// is called without a nil check, so it must not be set to nil.
type MetricsRecorder interface {
	// IterationCompleted is called once per planner iteration (for LSI,
	// once per generation-phase playout and once per evaluation-phase
	// playout).
	IterationCompleted()

	// SearchCompleted is called once, after Execute's run function returns,
	// with the wall-clock duration of the whole call.
	SearchCompleted(d time.Duration)
}

// NoopMetrics discards everything. It is the default on a freshly built
// Context so embedders who don't want metrics pay nothing for them.
type NoopMetrics struct{}

func (NoopMetrics) IterationCompleted()          {}
func (NoopMetrics) SearchCompleted(time.Duration) {}

var _ MetricsRecorder = NoopMetrics{}

// PrometheusMetrics is a MetricsRecorder backed by client_golang counters
// and histograms, registered against the default registry at construction.
type PrometheusMetrics struct {
	iterations prometheus.Counter
	durations  prometheus.Histogram
}

// NewPrometheusMetrics builds and registers a PrometheusMetrics under the
// given metric namespace. Panics if the metrics are already registered
// (i.e. if called twice with the same namespace), matching
// prometheus.MustRegister's own behavior.
func NewPrometheusMetrics(namespace string) *PrometheusMetrics {
	pm := &PrometheusMetrics{
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_iterations_total",
			Help:      "Planner iterations executed.",
		}),
		durations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Wall-clock duration of a completed search.",
		}),
	}
	prometheus.MustRegister(pm.iterations, pm.durations)
	return pm
}

func (pm *PrometheusMetrics) IterationCompleted() {
	pm.iterations.Inc()
}

func (pm *PrometheusMetrics) SearchCompleted(d time.Duration) {
	pm.durations.Observe(d.Seconds())
}

var _ MetricsRecorder = (*PrometheusMetrics)(nil)
