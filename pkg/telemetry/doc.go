// Package telemetry groups the observability packages used by tagviz.
//
//   - logging: structured logging on log/slog
//   - metrics: Prometheus metrics for parsing, highlighting and watching
//   - health: liveness and readiness endpoints for the watch command
package telemetry
