package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/tagviz/pkg/config"
)

// ParserMetrics tracks tag expression parsing.
//
// Metrics:
//   - tagviz_parser_parses_total: Parses by the source that produced the tree
//   - tagviz_parser_parse_duration_seconds: Parse duration by source
//   - tagviz_parser_grammar_failures_total: Inputs the grammar rejected
//   - tagviz_parser_recovered_panics_total: Parser panics turned into errors
type ParserMetrics struct {
	parsesTotal     *prometheus.CounterVec
	parseDuration   *prometheus.HistogramVec
	grammarFailures prometheus.Counter
	recoveredPanics prometheus.Counter
}

// NewParserMetrics creates and registers parser metrics with the provided registry.
func NewParserMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ParserMetrics {
	pm := &ParserMetrics{
		parsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "parser",
				Name:      "parses_total",
				Help:      "Total number of tag expression parses by result source",
			},
			[]string{"source"},
		),

		parseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: "parser",
				Name:      "parse_duration_seconds",
				Help:      "Duration of tag expression parsing in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10), // 1µs to ~260ms
			},
			[]string{"source"},
		),

		grammarFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "parser",
				Name:      "grammar_failures_total",
				Help:      "Total number of inputs rejected by the grammar",
			},
		),

		recoveredPanics: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "parser",
				Name:      "recovered_panics_total",
				Help:      "Total number of parser panics recovered",
			},
		),
	}

	registry.MustRegister(
		pm.parsesTotal,
		pm.parseDuration,
		pm.grammarFailures,
		pm.recoveredPanics,
	)

	return pm
}

// RecordParse records one parse and the source of its tree
// ("empty", "example", "grammar" or "fallback").
func (pm *ParserMetrics) RecordParse(source string, duration time.Duration) {
	pm.parsesTotal.WithLabelValues(source).Inc()
	pm.parseDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordGrammarFailure records an input the grammar did not accept.
func (pm *ParserMetrics) RecordGrammarFailure() {
	pm.grammarFailures.Inc()
}

// RecordRecoveredPanic records a parser panic that was turned into a diagnostic.
func (pm *ParserMetrics) RecordRecoveredPanic() {
	pm.recoveredPanics.Inc()
}
