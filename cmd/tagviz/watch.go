package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/tagviz/pkg/cli"
	"mercator-hq/tagviz/pkg/config"
	"mercator-hq/tagviz/pkg/telemetry/health"
	"mercator-hq/tagviz/pkg/telemetry/logging"
	"mercator-hq/tagviz/pkg/watch"
)

var watchFlags struct {
	file   string
	format string
	source bool
	clear  bool
	render renderOptions
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-parse an expression file whenever it changes",
	Long: `Parse an expression file and print its trees, then do it again every time
the file is saved.

The configuration file and the configured examples file are watched too;
changes to them are reloaded and applied to the next render. A configuration
that fails to load or validate is reported and the previous one is kept.

When telemetry.metrics.listen_address is set, /health, /ready and /version
are served over HTTP while watching, and /metrics when metrics are enabled.
/ready fails while the last configuration reload is failing.

Examples:
  tagviz watch --file queries.tags
  tagviz watch --file queries.tags --format tree --clear`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := cli.SetupSignalHandler(current.ctx)
		defer stop()
		return runWatch(ctx, current, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.file, "file", "f", "", "expression file to watch (required)")
	watchCmd.Flags().StringVar(&watchFlags.format, "format", "json", "output format: json, yaml, tree, text")
	watchCmd.Flags().BoolVar(&watchFlags.source, "source", false, "print which parser produced each tree")
	watchCmd.Flags().BoolVar(&watchFlags.clear, "clear", false, "clear the screen before each render")
	addRenderFlags(watchCmd.Flags(), &watchFlags.render)
}

// watchSession serializes renders and reloads, which run on the watcher's
// timer goroutine.
type watchSession struct {
	mu        sync.Mutex
	app       *app
	w         io.Writer
	reloadErr error // Outcome of the last configuration reload
}

func runWatch(ctx context.Context, a *app, w io.Writer) error {
	if watchFlags.file == "" {
		return fmt.Errorf("--file is required")
	}
	if watchFlags.file == "-" {
		return fmt.Errorf("watch needs a file, not stdin")
	}

	s := &watchSession{app: a, w: w}
	if err := s.render(ctx); err != nil {
		return err
	}

	paths := []string{watchFlags.file}
	if a.configPath != "" {
		paths = append(paths, a.configPath)
	}
	if a.cfg.Parser.ExamplesFile != "" {
		paths = append(paths, a.cfg.Parser.ExamplesFile)
	}

	watcher, err := watch.New(watch.Config{
		Paths:      paths,
		Debounce:   a.cfg.Watch.Debounce,
		Extensions: a.cfg.Watch.Extensions,
		SkipHidden: true,
	}, a.logger.Slog())
	if err != nil {
		return err
	}

	if addr := a.cfg.Telemetry.Metrics.ListenAddress; addr != "" {
		srv := &http.Server{
			Addr:              addr,
			Handler:           s.mux(watcher),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			a.logger.InfoContext(ctx, "serving status endpoints", "address", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.ErrorContext(ctx, "status server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	return watcher.Watch(ctx, s.onChange)
}

// mux serves health probes, plus /metrics when metrics are enabled.
func (s *watchSession) mux(watcher *watch.Watcher) *http.ServeMux {
	checker := health.New(time.Second)
	checker.RegisterCheck("watcher", func(ctx context.Context) error {
		select {
		case <-watcher.Ready():
			return nil
		default:
			return errors.New("watcher not started")
		}
	})
	checker.RegisterCheck("config", func(ctx context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.reloadErr
	})

	mux := http.NewServeMux()
	health.Register(mux, checker, health.VersionInfo{
		Version:   Version,
		Commit:    GitCommit,
		BuildTime: BuildDate,
	})
	if s.app.metrics.Enabled() {
		mux.Handle("/metrics", s.app.metrics.Handler())
	}
	return mux
}

func (s *watchSession) onChange(ctx context.Context, changed []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.app
	if configChanged(a, changed) {
		err := s.reload()
		s.reloadErr = err
		a.metrics.RecordReload(err)
		if err != nil {
			fmt.Fprintf(s.w, "# configuration not reloaded: %v\n", err)
			return err
		}
		a.logger.InfoContext(ctx, "configuration reloaded", "path", a.configPath)
	}
	return s.renderLocked(ctx)
}

// configChanged reports whether the configuration or examples file is among
// the changed paths.
func configChanged(a *app, changed []string) bool {
	for _, p := range changed {
		if a.configPath != "" && samePath(p, a.configPath) {
			return true
		}
		if a.cfg.Parser.ExamplesFile != "" && samePath(p, a.cfg.Parser.ExamplesFile) {
			return true
		}
	}
	return false
}

func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// reload re-reads the configuration; on failure the running one is kept.
func (s *watchSession) reload() error {
	a := s.app
	previous := a.cfg
	cfg := previous
	if a.configPath != "" {
		loaded, err := config.Reload(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := a.apply(cfg); err != nil {
		config.Install(previous)
		return err
	}
	return nil
}

func (s *watchSession) render(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderLocked(ctx)
}

func (s *watchSession) renderLocked(ctx context.Context) error {
	a := s.app
	exprs, err := readExpressionFile(watchFlags.file, nil)
	if err != nil {
		return err
	}
	r, err := a.renderer(s.w, watchFlags.render)
	if err != nil {
		return err
	}

	if watchFlags.clear {
		fmt.Fprint(s.w, "\033[H\033[2J")
	}
	fmt.Fprintf(s.w, "# %s (%d expressions, %s)\n", watchFlags.file, len(exprs), time.Now().Format(time.TimeOnly))

	ctx = logging.WithSourceFile(ctx, watchFlags.file)
	for _, expr := range exprs {
		res := a.parser.Parse(expr.Text)
		a.logger.DebugContext(logging.WithExpression(ctx, expr.Text), "parsed expression",
			"line", expr.Line,
			"source", res.Source,
		)
		if err := writeResult(s.w, r, res, watchFlags.format, watchFlags.source); err != nil {
			return cli.NewCommandError("watch", err)
		}
	}
	return nil
}
