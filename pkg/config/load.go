package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads and validates the YAML file at path. Fields the file
// omits keep their defaults. Environment variables are not consulted.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration on top of the defaults. Unknown fields
// are rejected. An empty document yields the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	// Decoding replaces slices wholesale, so start from an empty list.
	cfg.Watch.Extensions = nil

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	ApplyDefaults(cfg)
	return cfg, nil
}

// LoadConfigWithEnvOverrides is LoadConfig followed by the TAGVIZ_*
// environment overrides (see envBindings), which win over the file. An
// empty path starts from the defaults. Validation runs again after the
// overrides are applied.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvOverrides(cfg)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("after environment overrides: %w", err)
	}
	return cfg, nil
}

// envBinding maps one environment variable onto a config field. set reports
// whether the value parsed; unparsable values leave the field untouched.
type envBinding struct {
	name string
	set  func(cfg *Config, val string) bool
}

func stringField(field func(*Config) *string) func(*Config, string) bool {
	return func(cfg *Config, val string) bool {
		*field(cfg) = val
		return true
	}
}

func boolField(field func(*Config) *bool) func(*Config, string) bool {
	return func(cfg *Config, val string) bool {
		b, err := strconv.ParseBool(val)
		if err == nil {
			*field(cfg) = b
		}
		return err == nil
	}
}

func intField(field func(*Config) *int) func(*Config, string) bool {
	return func(cfg *Config, val string) bool {
		i, err := strconv.Atoi(val)
		if err == nil {
			*field(cfg) = i
		}
		return err == nil
	}
}

var envBindings = []envBinding{
	{"TAGVIZ_PARSER_USE_EXAMPLES", boolField(func(c *Config) *bool { return &c.Parser.UseExamples })},
	{"TAGVIZ_PARSER_EXAMPLES_FILE", stringField(func(c *Config) *string { return &c.Parser.ExamplesFile })},
	{"TAGVIZ_PARSER_MAX_INPUT_LENGTH", intField(func(c *Config) *int { return &c.Parser.MaxInputLength })},

	{"TAGVIZ_HIGHLIGHT_INDENT_SIZE", intField(func(c *Config) *int { return &c.Highlight.IndentSize })},
	{"TAGVIZ_HIGHLIGHT_PALETTE", stringField(func(c *Config) *string { return &c.Highlight.Palette })},
	{"TAGVIZ_HIGHLIGHT_COLOR", stringField(func(c *Config) *string { return &c.Highlight.Color })},
	{"TAGVIZ_HIGHLIGHT_BACKGROUND", boolField(func(c *Config) *bool { return &c.Highlight.Background })},

	{"TAGVIZ_TELEMETRY_LOGGING_LEVEL", stringField(func(c *Config) *string { return &c.Telemetry.Logging.Level })},
	{"TAGVIZ_TELEMETRY_LOGGING_FORMAT", stringField(func(c *Config) *string { return &c.Telemetry.Logging.Format })},
	{"TAGVIZ_TELEMETRY_LOGGING_ADD_SOURCE", boolField(func(c *Config) *bool { return &c.Telemetry.Logging.AddSource })},
	{"TAGVIZ_TELEMETRY_METRICS_ENABLED", boolField(func(c *Config) *bool { return &c.Telemetry.Metrics.Enabled })},
	{"TAGVIZ_TELEMETRY_METRICS_NAMESPACE", stringField(func(c *Config) *string { return &c.Telemetry.Metrics.Namespace })},
	{"TAGVIZ_TELEMETRY_METRICS_LISTEN_ADDRESS", stringField(func(c *Config) *string { return &c.Telemetry.Metrics.ListenAddress })},

	{"TAGVIZ_WATCH_DEBOUNCE", func(c *Config, val string) bool {
		d, err := time.ParseDuration(val)
		if err == nil {
			c.Watch.Debounce = d
		}
		return err == nil
	}},
	{"TAGVIZ_WATCH_EXTENSIONS", func(c *Config, val string) bool {
		var exts []string
		for _, ext := range strings.Split(val, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				exts = append(exts, ext)
			}
		}
		if len(exts) == 0 {
			return false
		}
		c.Watch.Extensions = exts
		return true
	}},
}

// applyEnvOverrides applies every set TAGVIZ_* variable and returns the
// names of those whose values could not be parsed.
func applyEnvOverrides(cfg *Config) (ignored []string) {
	for _, b := range envBindings {
		val := os.Getenv(b.name)
		if val == "" {
			continue
		}
		if !b.set(cfg, val) {
			ignored = append(ignored, b.name)
		}
	}
	return ignored
}
