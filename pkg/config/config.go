package config

import (
	"time"

	"mercator-hq/tagviz/pkg/highlight"
)

// Config is the root configuration structure for tagviz.
type Config struct {
	// Parser controls how tag expressions are resolved.
	Parser ParserConfig `yaml:"parser"`

	// Highlight controls indentation, palettes and colour output.
	Highlight HighlightConfig `yaml:"highlight"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Watch configures the file watcher used by the watch command.
	Watch WatchConfig `yaml:"watch"`
}

// ParserConfig contains configuration for the parse façade.
type ParserConfig struct {
	// UseExamples enables the exact-match example shortcut.
	// Default: true
	UseExamples bool `yaml:"use_examples"`

	// ExamplesFile is an optional YAML example table replacing the built-in one.
	// Default: "" (built-in examples)
	ExamplesFile string `yaml:"examples_file"`

	// MaxInputLength is the byte length above which the grammar is skipped
	// and the fallback parser is used directly. 0 means unlimited.
	// Default: 4096
	MaxInputLength int `yaml:"max_input_length"`
}

// HighlightConfig contains configuration for the colorizer.
type HighlightConfig struct {
	// IndentSize is the number of spaces per nesting level.
	// Default: 2
	IndentSize int `yaml:"indent_size"`

	// Palette is the name of a built-in or custom palette.
	// Default: "dark"
	Palette string `yaml:"palette"`

	// Color selects ANSI colour output.
	// Options: "auto", "always", "never"
	// Default: "auto"
	Color string `yaml:"color"`

	// Background paints the palette background behind tokens.
	// Default: false
	Background bool `yaml:"background"`

	// Palettes defines custom palettes by name.
	Palettes map[string]PaletteConfig `yaml:"palettes"`
}

// PaletteConfig defines a custom palette as overrides of a base palette.
// Slots left empty inherit the base palette's colour.
type PaletteConfig struct {
	// Base is the built-in palette the overrides apply to.
	// Default: "dark"
	Base string `yaml:"base"`

	highlight.Palette `yaml:",inline"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "tagviz"
	Namespace string `yaml:"namespace"`

	// ListenAddress serves /metrics over HTTP during watch when set.
	// Default: "" (disabled)
	ListenAddress string `yaml:"listen_address"`
}

// WatchConfig contains file watcher configuration.
type WatchConfig struct {
	// Debounce is the quiet period after the last change before reloading.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// Extensions are the file extensions watched in directories.
	// Default: [".tags", ".txt", ".yaml", ".yml", ".json"]
	Extensions []string `yaml:"extensions"`
}
