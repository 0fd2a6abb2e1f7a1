package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/tagviz/pkg/cli"
	"mercator-hq/tagviz/pkg/tagexpr"
	"mercator-hq/tagviz/pkg/tagexpr/ast"
	tagerrors "mercator-hq/tagviz/pkg/tagexpr/errors"
	"mercator-hq/tagviz/pkg/telemetry/logging"
)

var parseFlags struct {
	file   string
	format string
	source bool
	render renderOptions
}

var parseCmd = &cobra.Command{
	Use:   "parse [expression...]",
	Short: "Parse tag expressions and print their trees",
	Long: `Parse tag expressions given as arguments, or one per line from a file.

Output formats:
  json   colorized JSON tree (default)
  yaml   YAML tree
  tree   indented outline
  text   canonical expression

Blank lines and lines starting with '#' are skipped when reading a file.

Examples:
  # Parse one expression
  tagviz parse "39500..39600||79500.099,80000"

  # Parse a file, showing which parser produced each tree
  tagviz parse --file queries.tags --source --format tree

  # Read from stdin
  echo "a,b" | tagviz parse --file -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runParse(current, cmd.OutOrStdout(), cmd.InOrStdin(), args)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFlags.file, "file", "f", "", "file of expressions, one per line ('-' for stdin)")
	parseCmd.Flags().StringVar(&parseFlags.format, "format", "json", "output format: json, yaml, tree, text")
	parseCmd.Flags().BoolVar(&parseFlags.source, "source", false, "print which parser produced each tree")
	addRenderFlags(parseCmd.Flags(), &parseFlags.render)
}

// expression is one input line.
type expression struct {
	Line int
	Text string
}

func runParse(a *app, w io.Writer, stdin io.Reader, args []string) error {
	if parseFlags.file == "" && len(args) == 0 {
		return fmt.Errorf("an expression argument or --file is required")
	}

	exprs := make([]expression, 0, len(args))
	for i, arg := range args {
		exprs = append(exprs, expression{Line: i + 1, Text: arg})
	}
	ctx := a.ctx
	if parseFlags.file != "" {
		fromFile, err := readExpressionFile(parseFlags.file, stdin)
		if err != nil {
			return err
		}
		exprs = append(exprs, fromFile...)
		ctx = logging.WithSourceFile(ctx, parseFlags.file)
	}

	r, err := a.renderer(w, parseFlags.render)
	if err != nil {
		return err
	}

	for _, expr := range exprs {
		res := a.parser.Parse(expr.Text)
		a.logger.DebugContext(logging.WithExpression(ctx, expr.Text), "parsed expression",
			"line", expr.Line,
			"source", res.Source,
		)
		if err := writeResult(w, r, res, parseFlags.format, parseFlags.source); err != nil {
			return cli.NewCommandError("parse", err)
		}
	}
	return nil
}

func writeResult(w io.Writer, r *renderer, res tagexpr.Result, format string, showSource bool) error {
	if showSource {
		fmt.Fprintf(w, "# source: %s", res.Source)
		if reason := grammarReason(res.Err); reason != "" {
			fmt.Fprintf(w, " (%s)", reason)
		}
		fmt.Fprintln(w)
	}

	switch format {
	case "json", "":
		return r.value(w, ast.ToValue(res.Node))
	case "yaml":
		return cli.NewFormatter(cli.FormatYAML).FormatTo(w, res.Node)
	case "tree":
		_, err := fmt.Fprintln(w, renderTree(res.Node))
		return err
	case "text":
		_, err := fmt.Fprintln(w, ast.String(res.Node))
		return err
	}
	return fmt.Errorf("unsupported format %q (must be json, yaml, tree, or text)", format)
}

// grammarReason describes why the grammar was not used, in one line.
func grammarReason(err error) string {
	if err == nil {
		return ""
	}
	var diag *tagerrors.Error
	if errors.As(err, &diag) {
		return diag.Short()
	}
	return err.Error()
}

func readExpressionFile(path string, stdin io.Reader) ([]expression, error) {
	if path == "-" {
		return readExpressions(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open expression file: %w", err)
	}
	defer f.Close()
	return readExpressions(f)
}

// readExpressions returns the non-blank, non-comment lines of r.
func readExpressions(r io.Reader) ([]expression, error) {
	var exprs []expression
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		exprs = append(exprs, expression{Line: line, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expressions: %w", err)
	}
	return exprs, nil
}
