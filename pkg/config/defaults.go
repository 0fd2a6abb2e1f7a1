package config

import "time"

// Default values for configuration fields.
const (
	DefaultConfigPath = "tagviz.yaml"

	// Parser defaults
	DefaultUseExamples    = true
	DefaultMaxInputLength = 4096

	// Highlight defaults
	DefaultIndentSize = 2
	DefaultPalette    = "dark"
	DefaultColor      = "auto"

	// Telemetry defaults
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
	DefaultMetricsEnabled   = false
	DefaultMetricsNamespace = "tagviz"

	// Watch defaults
	DefaultWatchDebounce = 100 * time.Millisecond
)

// DefaultWatchExtensions are the extensions watched when none are configured.
var DefaultWatchExtensions = []string{".tags", ".txt", ".yaml", ".yml", ".json"}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{
		Parser: ParserConfig{
			UseExamples: DefaultUseExamples,
		},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in zero-valued fields with defaults. Booleans cannot be
// told apart from an explicit false here; LoadConfig decodes on top of
// Default() so that they keep their defaults when omitted.
func ApplyDefaults(cfg *Config) {
	// Parser defaults
	if cfg.Parser.MaxInputLength == 0 {
		cfg.Parser.MaxInputLength = DefaultMaxInputLength
	}

	// Highlight defaults
	if cfg.Highlight.IndentSize == 0 {
		cfg.Highlight.IndentSize = DefaultIndentSize
	}
	if cfg.Highlight.Palette == "" {
		cfg.Highlight.Palette = DefaultPalette
	}
	if cfg.Highlight.Color == "" {
		cfg.Highlight.Color = DefaultColor
	}
	for name, p := range cfg.Highlight.Palettes {
		if p.Base == "" {
			p.Base = DefaultPalette
			cfg.Highlight.Palettes[name] = p
		}
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = append([]string(nil), DefaultWatchExtensions...)
	}
}
