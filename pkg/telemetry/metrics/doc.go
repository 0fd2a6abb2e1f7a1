// Package metrics provides Prometheus metrics for tagviz.
//
// A Collector owns a registry and records three metric groups:
//
//   - Parser: parses by result source, parse duration, grammar failures
//     and recovered panics
//   - Highlight: tokens by category and colorize failures
//   - Watch: reload cycles by result
//
// The Collector satisfies tagexpr.Recorder and highlight.Recorder, so it is
// passed straight to those packages:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	parser := tagexpr.NewParser().WithMetrics(collector)
//	spans := highlight.Colorize(value, highlight.Options{Metrics: collector})
//
// When metrics are disabled every Record method returns immediately.
// Gathered metrics can be written in text form with WriteText or served
// over HTTP with Handler.
package metrics
