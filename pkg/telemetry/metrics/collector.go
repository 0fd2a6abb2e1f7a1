package metrics

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"mercator-hq/tagviz/pkg/config"
)

// Collector owns the Prometheus registry for a tagviz process and records
// parser, highlight and watch metrics. It satisfies the recorder interfaces
// of the tagexpr and highlight packages.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	parserMetrics    *ParserMetrics
	highlightMetrics *HighlightMetrics
	watchMetrics     *WatchMetrics

	// Label values arrive as strings from other packages; unknown values
	// beyond the limit are folded into "other".
	cardinalityLimiter *CardinalityLimiter
}

// maxLabelValues bounds the distinct label values per metric.
const maxLabelValues = 64

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true, Namespace: "tagviz"}
//	collector := metrics.NewCollector(cfg, nil)
//	parser := tagexpr.NewParser().WithMetrics(collector)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		parserMetrics:      NewParserMetrics(cfg, registry),
		highlightMetrics:   NewHighlightMetrics(cfg, registry),
		watchMetrics:       NewWatchMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(maxLabelValues),
	}
}

// Enabled reports whether metrics are being recorded.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

func (c *Collector) label(metric, value string) string {
	if !c.cardinalityLimiter.Allow(metric + ":" + value) {
		return "other"
	}
	return value
}

// RecordParse records one parse and where its tree came from.
func (c *Collector) RecordParse(source string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.parserMetrics.RecordParse(c.label("parse", source), duration)
}

// RecordGrammarFailure records an input the grammar rejected.
func (c *Collector) RecordGrammarFailure() {
	if !c.config.Enabled {
		return
	}

	c.parserMetrics.RecordGrammarFailure()
}

// RecordRecoveredPanic records a parser panic turned into a diagnostic.
func (c *Collector) RecordRecoveredPanic() {
	if !c.config.Enabled {
		return
	}

	c.parserMetrics.RecordRecoveredPanic()
}

// RecordTokens records n colorized tokens of one category.
func (c *Collector) RecordTokens(category string, n int) {
	if !c.config.Enabled || n <= 0 {
		return
	}

	c.highlightMetrics.RecordTokens(c.label("tokens", category), n)
}

// RecordColorizeFailure records a value that produced a diagnostic span.
func (c *Collector) RecordColorizeFailure() {
	if !c.config.Enabled {
		return
	}

	c.highlightMetrics.RecordColorizeFailure()
}

// RecordReload records one watch reload cycle; err is the cycle's outcome.
func (c *Collector) RecordReload(err error) {
	if !c.config.Enabled {
		return
	}

	result := "ok"
	if err != nil {
		result = "error"
	}
	c.watchMetrics.RecordReload(result)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format. The CLI uses it to dump metrics on exit.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metric family %q: %w", mf.GetName(), err)
		}
	}
	return nil
}

// CardinalityLimiter bounds the number of unique label combinations.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether a label set may be used: it is already known, or
// there is still room for it.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
