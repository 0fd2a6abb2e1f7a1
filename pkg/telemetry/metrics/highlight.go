package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/tagviz/pkg/config"
)

// HighlightMetrics tracks colorization.
//
// Metrics:
//   - tagviz_highlight_tokens_total: Tokens emitted by category
//   - tagviz_highlight_colorize_failures_total: Values that could not be serialized
type HighlightMetrics struct {
	tokensTotal      *prometheus.CounterVec
	colorizeFailures prometheus.Counter
}

// NewHighlightMetrics creates and registers highlight metrics with the provided registry.
func NewHighlightMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *HighlightMetrics {
	hm := &HighlightMetrics{
		tokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "highlight",
				Name:      "tokens_total",
				Help:      "Total number of tokens colorized by category",
			},
			[]string{"category"},
		),

		colorizeFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "highlight",
				Name:      "colorize_failures_total",
				Help:      "Total number of values that produced a diagnostic instead of tokens",
			},
		),
	}

	registry.MustRegister(
		hm.tokensTotal,
		hm.colorizeFailures,
	)

	return hm
}

// RecordTokens adds n tokens of the given category.
func (hm *HighlightMetrics) RecordTokens(category string, n int) {
	hm.tokensTotal.WithLabelValues(category).Add(float64(n))
}

// RecordColorizeFailure records a value that could not be serialized.
func (hm *HighlightMetrics) RecordColorizeFailure() {
	hm.colorizeFailures.Inc()
}
