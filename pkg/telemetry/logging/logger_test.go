package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"mercator-hq/tagviz/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"valid JSON config", Config{Level: "info", Format: "json"}, false},
		{"valid text config", Config{Level: "debug", Format: "text"}, false},
		{"valid console config", Config{Level: "warn", Format: "console"}, false},
		{"defaults", Config{}, false},
		{"upper case", Config{Level: "ERROR", Format: "JSON"}, false},
		{"invalid log level", Config{Level: "invalid", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "invalid"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && logger == nil {
				t.Error("New() returned nil logger")
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := FromConfig(config.LoggingConfig{Level: "warn", Format: "json", AddSource: true}, &buf)
	if cfg.Level != "warn" || cfg.Format != "json" || !cfg.AddSource || cfg.Writer != &buf {
		t.Errorf("FromConfig() = %+v", cfg)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below warn should be filtered, got %s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("expected warn and error messages, got %s", out)
	}
	if logger.Level() != slog.LevelWarn {
		t.Errorf("Level() = %v, want %v", logger.Level(), slog.LevelWarn)
	}
}

func TestLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.With("palette", "dark").Info("colorized", "spans", 7)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "colorized" {
		t.Errorf("msg = %v, want colorized", entry["msg"])
	}
	if entry["palette"] != "dark" {
		t.Errorf("palette = %v, want dark", entry["palette"])
	}
	if entry["spans"] != float64(7) {
		t.Errorf("spans = %v, want 7", entry["spans"])
	}
}

func TestLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("ready")

	out := buf.String()
	if strings.Contains(out, "time=") {
		t.Errorf("console format should omit the timestamp, got %q", out)
	}
	if !strings.Contains(out, "level=info") {
		t.Errorf("expected lower-case level, got %q", out)
	}
}

func TestLogger_Context(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := WithSourceFile(context.Background(), "queries.tags")
	logger.DebugContext(ctx, "parsed", "line", 3)

	out := buf.String()
	if !strings.Contains(out, `"source_file":"queries.tags"`) {
		t.Errorf("expected source_file field, got %s", out)
	}

	if logger.WithContext(context.Background()) != logger {
		t.Error("WithContext with no fields should return the same logger")
	}
}

func TestLogger_Slog(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "info", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Slog().Info("via slog")
	if !strings.Contains(buf.String(), "via slog") {
		t.Errorf("Slog() should write to the same handler, got %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Error("dropped")
	if logger.Slog().Enabled(context.Background(), slog.LevelError) {
		t.Error("Nop logger should not be enabled at any level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"Warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}
