package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"mercator-hq/tagviz/pkg/cli"
	"mercator-hq/tagviz/pkg/config"
	"mercator-hq/tagviz/pkg/highlight"
	"mercator-hq/tagviz/pkg/tagexpr"
	"mercator-hq/tagviz/pkg/telemetry/logging"
	"mercator-hq/tagviz/pkg/telemetry/metrics"
)

type appOptions struct {
	configPath     string
	configExplicit bool // --config was given on the command line
	verbose        bool
	logLevel       string
	metrics        bool
	logWriter      io.Writer
}

// app holds what every subcommand needs: configuration, logger, metrics
// and a parser configured from them.
type app struct {
	cfg        *config.Config
	configPath string // Empty when running on defaults
	logger     *logging.Logger
	metrics    *metrics.Collector
	parser     *tagexpr.Parser
	ctx        context.Context // Carries the run ID
}

func newApp(opts appOptions) (*app, error) {
	path := opts.configPath
	if !opts.configExplicit && path == config.DefaultConfigPath {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}

	cfg, err := config.LoadConfigWithEnvOverrides(path)
	if err != nil {
		field := path
		if field == "" {
			field = "environment"
		}
		return nil, cli.NewConfigError(field, err)
	}

	logCfg := logging.FromConfig(cfg.Telemetry.Logging, opts.logWriter)
	if opts.verbose {
		logCfg.Level = "debug"
	}
	if opts.logLevel != "" {
		logCfg.Level = opts.logLevel
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, cli.NewConfigError("log-level", err)
	}

	metricsCfg := cfg.Telemetry.Metrics
	if opts.metrics {
		metricsCfg.Enabled = true
	}

	a := &app{
		configPath: path,
		logger:     logger,
		metrics:    metrics.NewCollector(&metricsCfg, nil),
		ctx:        logging.WithRunID(context.Background(), logging.NewRunID()),
	}
	if err := a.apply(cfg); err != nil {
		return nil, err
	}

	logger.DebugContext(a.ctx, "configuration loaded",
		"path", path,
		"palette", cfg.Highlight.Palette,
		"use_examples", cfg.Parser.UseExamples,
	)
	return a, nil
}

// apply installs cfg and rebuilds the parser from it. On error the previous
// configuration stays in place.
func (a *app) apply(cfg *config.Config) error {
	examples := tagexpr.DefaultExamples()
	if cfg.Parser.ExamplesFile != "" {
		loaded, err := tagexpr.LoadExamples(cfg.Parser.ExamplesFile)
		if err != nil {
			return cli.NewConfigError("parser.examples_file", err)
		}
		examples = loaded
	}
	if !cfg.Parser.UseExamples {
		examples = nil
	}

	a.parser = tagexpr.NewParser().
		WithExamples(examples).
		WithMaxInputLength(cfg.Parser.MaxInputLength).
		WithLogger(a.logger.Slog()).
		WithMetrics(a.metrics)
	a.cfg = cfg
	config.Install(cfg)
	return nil
}

// renderOptions are the per-command display flags; empty values fall back
// to the configuration.
type renderOptions struct {
	palette    string
	color      string
	indent     int
	background bool
	format     string // ansi, plain or html; empty picks ansi or plain from color
}

type renderer struct {
	palette    highlight.Palette
	indent     int
	background bool
	format     string
	metrics    highlight.Recorder
}

func (a *app) renderer(w io.Writer, opts renderOptions) (*renderer, error) {
	name := opts.palette
	if name == "" {
		name = a.cfg.Highlight.Palette
	}
	palette, err := a.cfg.Highlight.ResolvePalette(name)
	if err != nil {
		return nil, err
	}

	indent := opts.indent
	if indent <= 0 {
		indent = a.cfg.Highlight.IndentSize
	}

	format := opts.format
	switch format {
	case "":
		colorFlag := opts.color
		if colorFlag == "" {
			colorFlag = a.cfg.Highlight.Color
		}
		mode, err := highlight.ParseColorMode(colorFlag)
		if err != nil {
			return nil, err
		}
		format = "plain"
		if highlight.UseColor(mode, w) {
			format = "ansi"
		}
	case "ansi", "plain", "html":
	default:
		return nil, fmt.Errorf("unsupported render format %q (must be ansi, plain, or html)", format)
	}

	return &renderer{
		palette:    palette,
		indent:     indent,
		background: opts.background || a.cfg.Highlight.Background,
		format:     format,
		metrics:    a.metrics,
	}, nil
}

func (r *renderer) options() highlight.Options {
	return highlight.Options{
		IndentSize: r.indent,
		Palette:    r.palette,
		Metrics:    r.metrics,
	}
}

// value colorizes an arbitrary value and writes it followed by a newline.
func (r *renderer) value(w io.Writer, v any) error {
	return r.spans(w, highlight.Colorize(v, r.options()))
}

func (r *renderer) spans(w io.Writer, spans []highlight.Span) error {
	var err error
	switch r.format {
	case "ansi":
		err = highlight.RenderANSI(w, spans, highlight.RenderOptions{
			Palette:    r.palette,
			Background: r.background,
			Profile:    highlight.DetectProfile(),
		})
	case "html":
		return highlight.RenderHTML(w, spans, r.palette)
	default:
		err = highlight.RenderPlain(w, spans)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// addRenderFlags registers the display flags shared by parse, highlight and watch.
func addRenderFlags(flags *pflag.FlagSet, opts *renderOptions) {
	flags.StringVar(&opts.palette, "palette", "", "colour palette (see 'tagviz palettes')")
	flags.StringVar(&opts.color, "color", "", "colour output: auto, always, never")
	flags.IntVar(&opts.indent, "indent", 0, "spaces per nesting level")
	flags.BoolVar(&opts.background, "background", false, "paint the palette background")
}
