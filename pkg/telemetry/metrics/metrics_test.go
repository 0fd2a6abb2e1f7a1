package metrics

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"mercator-hq/tagviz/pkg/config"
	"mercator-hq/tagviz/pkg/highlight"
	"mercator-hq/tagviz/pkg/tagexpr"
)

var (
	_ tagexpr.Recorder   = (*Collector)(nil)
	_ highlight.Recorder = (*Collector)(nil)
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:   true,
		Namespace: "test",
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector.config != cfg {
		t.Error("Collector config not set correctly")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
	if !collector.Enabled() {
		t.Error("expected collector to be enabled")
	}
}

func TestCollector_DefaultNamespace(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	collector := NewCollector(cfg, nil)
	collector.RecordGrammarFailure()

	if err := testutil.GatherAndCompare(collector.Registry(), strings.NewReader(`
# HELP tagviz_parser_grammar_failures_total Total number of inputs rejected by the grammar
# TYPE tagviz_parser_grammar_failures_total counter
tagviz_parser_grammar_failures_total 1
`), "tagviz_parser_grammar_failures_total"); err != nil {
		t.Error(err)
	}
}

func TestCollector_RecordParse(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordParse("grammar", time.Millisecond)
	collector.RecordParse("grammar", 2*time.Millisecond)
	collector.RecordParse("fallback", time.Millisecond)

	if got := testutil.ToFloat64(collector.parserMetrics.parsesTotal.WithLabelValues("grammar")); got != 2 {
		t.Errorf("grammar parses = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.parserMetrics.parsesTotal.WithLabelValues("fallback")); got != 1 {
		t.Errorf("fallback parses = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(collector.parserMetrics.parseDuration); got != 2 {
		t.Errorf("duration series = %d, want 2", got)
	}
}

func TestCollector_ParserCounters(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordGrammarFailure()
	collector.RecordGrammarFailure()
	collector.RecordRecoveredPanic()

	if got := testutil.ToFloat64(collector.parserMetrics.grammarFailures); got != 2 {
		t.Errorf("grammar failures = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.parserMetrics.recoveredPanics); got != 1 {
		t.Errorf("recovered panics = %v, want 1", got)
	}
}

func TestCollector_RecordTokens(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordTokens("key", 3)
	collector.RecordTokens("key", 2)
	collector.RecordTokens("string", 0)
	collector.RecordColorizeFailure()

	if got := testutil.ToFloat64(collector.highlightMetrics.tokensTotal.WithLabelValues("key")); got != 5 {
		t.Errorf("key tokens = %v, want 5", got)
	}
	if got := testutil.CollectAndCount(collector.highlightMetrics.tokensTotal); got != 1 {
		t.Errorf("token series = %d, want 1 (zero counts are skipped)", got)
	}
	if got := testutil.ToFloat64(collector.highlightMetrics.colorizeFailures); got != 1 {
		t.Errorf("colorize failures = %v, want 1", got)
	}
}

func TestCollector_RecordReload(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordReload(nil)
	collector.RecordReload(errors.New("boom"))
	collector.RecordReload(nil)

	if got := testutil.ToFloat64(collector.watchMetrics.reloadsTotal.WithLabelValues("ok")); got != 2 {
		t.Errorf("ok reloads = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.watchMetrics.reloadsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("error reloads = %v, want 1", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.RecordParse("grammar", time.Millisecond)
	collector.RecordGrammarFailure()
	collector.RecordRecoveredPanic()
	collector.RecordTokens("key", 4)
	collector.RecordColorizeFailure()
	collector.RecordReload(nil)

	if got := testutil.ToFloat64(collector.parserMetrics.grammarFailures); got != 0 {
		t.Errorf("grammar failures = %v, want 0 when disabled", got)
	}
	if got := testutil.CollectAndCount(collector.parserMetrics.parsesTotal); got != 0 {
		t.Errorf("parse series = %d, want 0 when disabled", got)
	}
	if got := testutil.CollectAndCount(collector.highlightMetrics.tokensTotal); got != 0 {
		t.Errorf("token series = %d, want 0 when disabled", got)
	}
}

func TestCollector_CardinalityLimit(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	for i := 0; i < maxLabelValues+10; i++ {
		collector.RecordTokens(fmt.Sprintf("category-%d", i), 1)
	}

	if got := testutil.ToFloat64(collector.highlightMetrics.tokensTotal.WithLabelValues("other")); got != 10 {
		t.Errorf("other tokens = %v, want 10", got)
	}
	if got := collector.cardinalityLimiter.Count(); got != maxLabelValues {
		t.Errorf("cardinality = %d, want %d", got, maxLabelValues)
	}
}

func TestCollector_WithParser(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	parser := tagexpr.NewParser().WithMetrics(collector)

	parser.Parse("a||b")
	parser.Parse("")

	if got := testutil.ToFloat64(collector.parserMetrics.parsesTotal.WithLabelValues(string(tagexpr.SourceGrammar))); got != 1 {
		t.Errorf("grammar parses = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.parserMetrics.parsesTotal.WithLabelValues(string(tagexpr.SourceEmpty))); got != 1 {
		t.Errorf("empty parses = %v, want 1", got)
	}
}

func TestCollector_WithHighlight(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	highlight.ColorizeText(`{"a": true}`, highlight.Options{Metrics: collector})

	if got := testutil.ToFloat64(collector.highlightMetrics.tokensTotal.WithLabelValues("boolean")); got != 1 {
		t.Errorf("boolean tokens = %v, want 1", got)
	}
}

func TestCollector_WriteText(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.RecordReload(nil)

	var buf bytes.Buffer
	if err := collector.WriteText(&buf); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "# TYPE test_watch_reloads_total counter") {
		t.Errorf("expected TYPE line, got:\n%s", out)
	}
	if !strings.Contains(out, `test_watch_reloads_total{result="ok"} 1`) {
		t.Errorf("expected reload sample, got:\n%s", out)
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.RecordGrammarFailure()

	server := httptest.NewServer(collector.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), "test_parser_grammar_failures_total 1") {
		t.Errorf("expected grammar failure sample, got:\n%s", body)
	}
}

func TestCardinalityLimiter(t *testing.T) {
	cl := NewCardinalityLimiter(2)

	if !cl.Allow("a") || !cl.Allow("b") {
		t.Fatal("expected first two label sets to be allowed")
	}
	if cl.Allow("c") {
		t.Error("expected third label set to be rejected")
	}
	if !cl.Allow("a") {
		t.Error("expected known label set to stay allowed")
	}
	if cl.Count() != 2 {
		t.Errorf("Count() = %d, want 2", cl.Count())
	}
}
