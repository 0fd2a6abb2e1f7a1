package config

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"

	"mercator-hq/tagviz/pkg/highlight"
)

// FieldError is a problem with one configuration field. Field is the dotted
// YAML path, e.g. "highlight.palette".
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

// ValidationError carries every problem Validate found.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "invalid configuration"
	case 1:
		return "invalid configuration: " + e.Errors[0].Error()
	}
	lines := make([]string, 0, len(e.Errors)+1)
	lines = append(lines, fmt.Sprintf("invalid configuration (%d problems):", len(e.Errors)))
	for _, fe := range e.Errors {
		lines = append(lines, "  - "+fe.Error())
	}
	return strings.Join(lines, "\n") + "\n"
}

// problems accumulates field errors in the order they are found.
type problems []FieldError

func (p *problems) add(field, format string, args ...any) {
	*p = append(*p, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks the whole configuration and reports all problems at once
// as a ValidationError.
func Validate(cfg *Config) error {
	var p problems
	validateParser(&p, &cfg.Parser)
	validateHighlight(&p, &cfg.Highlight)
	validateTelemetry(&p, &cfg.Telemetry)
	validateWatch(&p, &cfg.Watch)
	if len(p) == 0 {
		return nil
	}
	return ValidationError{Errors: p}
}

func validateParser(p *problems, cfg *ParserConfig) {
	if cfg.MaxInputLength < 0 {
		p.add("parser.max_input_length", "must be non-negative (0 means unlimited)")
	}
}

const maxIndentSize = 16

func validateHighlight(p *problems, cfg *HighlightConfig) {
	if cfg.IndentSize < 0 || cfg.IndentSize > maxIndentSize {
		p.add("highlight.indent_size", "must be between 1 and %d", maxIndentSize)
	}
	if _, err := highlight.ParseColorMode(cfg.Color); err != nil {
		p.add("highlight.color", "must be one of: auto, always, never")
	}

	custom := make([]string, 0, len(cfg.Palettes))
	for name := range cfg.Palettes {
		custom = append(custom, name)
	}
	sort.Strings(custom)
	for _, name := range custom {
		field := "highlight.palettes." + name
		if _, builtin := highlight.LookupPalette(name); builtin {
			p.add(field, "shadows a built-in palette")
			continue
		}
		pal, err := cfg.ResolvePalette(name)
		if err == nil {
			err = pal.Validate()
		}
		if err != nil {
			p.add(field, "%v", err)
		}
	}

	if _, err := cfg.ResolvePalette(cfg.Palette); err != nil {
		p.add("highlight.palette", "%v", err)
	}
}

// ResolvePalette returns the built-in or custom palette with the given name.
// Custom palettes are their base palette with the configured slots applied.
func (cfg *HighlightConfig) ResolvePalette(name string) (highlight.Palette, error) {
	if p, ok := highlight.LookupPalette(name); ok {
		return p, nil
	}
	custom, ok := cfg.Palettes[name]
	if !ok {
		return highlight.Palette{}, fmt.Errorf("unknown palette %q (available: %s)",
			name, strings.Join(cfg.PaletteNames(), ", "))
	}
	base, ok := highlight.LookupPalette(custom.Base)
	if !ok {
		return highlight.Palette{}, fmt.Errorf("unknown base palette %q", custom.Base)
	}
	override := custom.Palette
	override.Name = name
	return base.Merge(override), nil
}

// PaletteNames lists the built-in palettes followed by the custom ones.
func (cfg *HighlightConfig) PaletteNames() []string {
	names := highlight.PaletteNames()
	custom := make([]string, 0, len(cfg.Palettes))
	for name := range cfg.Palettes {
		if _, builtin := highlight.LookupPalette(name); !builtin {
			custom = append(custom, name)
		}
	}
	sort.Strings(custom)
	return append(names, custom...)
}

var (
	metricName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text", "console"}
)

func validateTelemetry(p *problems, cfg *TelemetryConfig) {
	if !slices.Contains(logLevels, strings.ToLower(cfg.Logging.Level)) {
		p.add("telemetry.logging.level", "must be one of: %s", strings.Join(logLevels, ", "))
	}
	if !slices.Contains(logFormats, strings.ToLower(cfg.Logging.Format)) {
		p.add("telemetry.logging.format", "must be one of: %s", strings.Join(logFormats, ", "))
	}
	if !metricName.MatchString(cfg.Metrics.Namespace) {
		p.add("telemetry.metrics.namespace", "must be a valid metric name prefix (letters, digits, underscores)")
	}
}

func validateWatch(p *problems, cfg *WatchConfig) {
	if cfg.Debounce < 0 {
		p.add("watch.debounce", "must be positive")
	}
	for i, ext := range cfg.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			p.add(fmt.Sprintf("watch.extensions[%d]", i), "%q must start with a dot", ext)
		}
	}
}
