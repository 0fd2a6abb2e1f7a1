package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/tagviz/pkg/config"
)

// WatchMetrics tracks the watch command's reload cycles.
//
// Metrics:
//   - tagviz_watch_reloads_total: Reload cycles by result ("ok", "error")
type WatchMetrics struct {
	reloadsTotal *prometheus.CounterVec
}

// NewWatchMetrics creates and registers watch metrics with the provided registry.
func NewWatchMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *WatchMetrics {
	wm := &WatchMetrics{
		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: "watch",
				Name:      "reloads_total",
				Help:      "Total number of watch reload cycles by result",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(wm.reloadsTotal)

	return wm
}

// RecordReload records one reload cycle.
func (wm *WatchMetrics) RecordReload(result string) {
	wm.reloadsTotal.WithLabelValues(result).Inc()
}
