// Package logging provides structured logging for tagviz.
//
// The package wraps log/slog with JSON, text and console formats and a
// small set of context fields:
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stderr))
//
//	ctx = logging.WithRunID(ctx, logging.NewRunID())
//	ctx = logging.WithSourceFile(ctx, "queries.tags")
//	logger.InfoContext(ctx, "parsed file", "expressions", 12)
//
// Logs are written to stderr by default so that rendered output on stdout
// can be piped. Packages that take a *slog.Logger receive Logger.Slog().
package logging
