package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"mercator-hq/tagviz/pkg/watch"
)

// syncBuffer is a bytes.Buffer safe for the watcher's callback goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunWatch_RendersAndStops(t *testing.T) {
	resetFlags()
	a, _ := newTestApp(t)
	watchFlags.file = writeFile(t, t.TempDir(), "q.tags", "a,b\n")
	watchFlags.format = "text"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out syncBuffer
	if err := runWatch(ctx, a, &out); err != nil {
		t.Fatalf("runWatch() error = %v", err)
	}
	if !strings.Contains(out.String(), "a,b\n") {
		t.Errorf("initial render missing:\n%s", out.String())
	}
}

func TestRunWatch_ReRendersOnChange(t *testing.T) {
	resetFlags()
	a, _ := newTestApp(t)
	a.cfg.Watch.Debounce = 20 * time.Millisecond
	dir := t.TempDir()
	watchFlags.file = writeFile(t, dir, "q.tags", "a,b\n")
	watchFlags.format = "text"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- runWatch(ctx, a, &out) }()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) && !strings.Contains(out.String(), "x||y") {
		// Rewrite until the watcher has registered and picked the change up.
		writeFile(t, dir, "q.tags", "x||y\n")
		time.Sleep(100 * time.Millisecond)
	}
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("runWatch() error = %v", err)
	}
	if !strings.Contains(out.String(), "x||y") {
		t.Errorf("change not rendered:\n%s", out.String())
	}
}

func TestRunWatch_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{"no file", ""},
		{"stdin", "-"},
		{"missing file", "testdata/missing.tags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			a, _ := newTestApp(t)
			watchFlags.file = tt.file
			if err := runWatch(context.Background(), a, &bytes.Buffer{}); err == nil {
				t.Error("runWatch() should return error")
			}
		})
	}
}

func TestWatchSession_ReloadsConfig(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "tagviz.yaml", "parser:\n  use_examples: true\n")
	watchFlags.file = writeFile(t, dir, "q.tags", "39500..39600\n")
	watchFlags.format = "text"
	watchFlags.source = true

	a, err := newApp(appOptions{configPath: cfgPath, configExplicit: true, metrics: true, logWriter: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	var out bytes.Buffer
	s := &watchSession{app: a, w: &out}

	if err := s.onChange(context.Background(), []string{watchFlags.file}); err != nil {
		t.Fatalf("onChange() error = %v", err)
	}
	if !strings.Contains(out.String(), "# source: example") {
		t.Errorf("expected example source before reload:\n%s", out.String())
	}

	writeFile(t, dir, "tagviz.yaml", "parser:\n  use_examples: false\n")
	out.Reset()
	if err := s.onChange(context.Background(), []string{cfgPath}); err != nil {
		t.Fatalf("onChange() after config change error = %v", err)
	}
	if !strings.Contains(out.String(), "# source: grammar") {
		t.Errorf("reloaded config not applied:\n%s", out.String())
	}
	assertMetric(t, a, `tagviz_watch_reloads_total{result="ok"} 1`)

	writeFile(t, dir, "tagviz.yaml", "highlight:\n  indent_size: 99\n")
	out.Reset()
	if err := s.onChange(context.Background(), []string{cfgPath}); err == nil {
		t.Fatal("onChange() with invalid config should return error")
	}
	if !strings.Contains(out.String(), "configuration not reloaded") {
		t.Errorf("reload failure not reported:\n%s", out.String())
	}
	if a.cfg.Parser.UseExamples {
		t.Error("invalid config replaced the running configuration")
	}
	assertMetric(t, a, `tagviz_watch_reloads_total{result="error"} 1`)
}

func assertMetric(t *testing.T, a *app, line string) {
	t.Helper()
	var buf bytes.Buffer
	if err := a.metrics.WriteText(&buf); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if !strings.Contains(buf.String(), line) {
		t.Errorf("metrics missing %q:\n%s", line, buf.String())
	}
}

func TestConfigChanged(t *testing.T) {
	a, _ := newTestApp(t)
	a.configPath = "tagviz.yaml"
	a.cfg.Parser.ExamplesFile = "examples.yaml"

	abs, err := filepath.Abs("tagviz.yaml")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		changed []string
		want    bool
	}{
		{[]string{"q.tags"}, false},
		{[]string{"q.tags", "./tagviz.yaml"}, true},
		{[]string{abs}, true},
		{[]string{"examples.yaml"}, true},
	}
	for _, tt := range tests {
		if got := configChanged(a, tt.changed); got != tt.want {
			t.Errorf("configChanged(%v) = %v, want %v", tt.changed, got, tt.want)
		}
	}
}

func TestWatchSession_StatusEndpoints(t *testing.T) {
	resetFlags()
	a, err := newApp(appOptions{configExplicit: true, metrics: true, logWriter: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	watcher, err := watch.New(watch.Config{Paths: []string{t.TempDir()}}, nil)
	if err != nil {
		t.Fatalf("watch.New() error = %v", err)
	}
	s := &watchSession{app: a, w: &bytes.Buffer{}}
	mux := s.mux(watcher)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	if rec := get("/health"); rec.Code != http.StatusOK {
		t.Errorf("/health code = %d, want 200", rec.Code)
	}
	if rec := get("/ready"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("/ready before watching code = %d, want 503", rec.Code)
	}
	if rec := get("/metrics"); rec.Code != http.StatusOK {
		t.Errorf("/metrics code = %d, want 200", rec.Code)
	}
	if rec := get("/version"); !strings.Contains(rec.Body.String(), Version) {
		t.Errorf("/version body = %q", rec.Body.String())
	}
}
