package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/tagviz/pkg/cli"
	"mercator-hq/tagviz/pkg/tagexpr"
	"mercator-hq/tagviz/pkg/tagexpr/ast"
	tagerrors "mercator-hq/tagviz/pkg/tagexpr/errors"
	"mercator-hq/tagviz/pkg/telemetry/logging"
)

var lintFlags struct {
	file     string
	dir      string
	strict   bool
	format   string
	progress bool
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check expression files against the grammar",
	Long: `Parse every expression in a file and report the ones the grammar rejects.

Rejected expressions are still parsed by the fallback parser; lint reports
them as warnings with the grammar's diagnostic and a suggestion. With
--strict, warnings fail the command.

Examples:
  # Lint single file
  tagviz lint --file queries.tags

  # Lint every expression file in a directory
  tagviz lint --dir queries/

  # JSON output for CI
  tagviz lint --file queries.tags --format json --strict`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLint(current, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "expression file to check")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of expression files")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json, yaml")
	lintCmd.Flags().BoolVar(&lintFlags.progress, "progress", false, "show progress on stderr")
}

// LintResult is the outcome for one file.
type LintResult struct {
	File        string      `json:"file" yaml:"file"`
	Expressions int         `json:"expressions" yaml:"expressions"`
	Valid       bool        `json:"valid" yaml:"valid"`
	Issues      []LintIssue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// LintIssue is one expression the grammar did not accept.
type LintIssue struct {
	Line       int    `json:"line" yaml:"line"`
	Column     int    `json:"column,omitempty" yaml:"column,omitempty"`
	Expression string `json:"expression" yaml:"expression"`
	Message    string `json:"message" yaml:"message"`
	Type       string `json:"type,omitempty" yaml:"type,omitempty"`
	Severity   string `json:"severity" yaml:"severity"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Context    string `json:"-" yaml:"-"`
	Recovered  string `json:"recovered,omitempty" yaml:"recovered,omitempty"` // Fallback tree, canonical form
}

// lintExtensions are the files picked up by --dir.
var lintExtensions = []string{".tags", ".txt"}

func runLint(a *app, w, progressOut io.Writer) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}
	format, err := cli.ParseOutputFormat(lintFlags.format)
	if err != nil {
		return err
	}

	var files []string
	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}
	if lintFlags.dir != "" {
		found, err := expressionFiles(lintFlags.dir)
		if err != nil {
			return err
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no expression files found")
	}

	var progress cli.ProgressReporter
	if lintFlags.progress {
		progress = cli.NewProgressReporter(progressOut, "files")
		progress.Start(int64(len(files)))
	}

	results := make([]LintResult, 0, len(files))
	for i, file := range files {
		result, err := lintFile(a, file)
		if err != nil {
			if progress != nil {
				progress.Error(err)
			}
			return cli.NewCommandError("lint", err)
		}
		results = append(results, result)
		if progress != nil {
			progress.Update(int64(i + 1))
		}
	}
	if progress != nil {
		progress.Finish()
	}

	if format == cli.FormatText {
		writeLintText(w, results)
	} else if err := cli.NewFormatter(format).FormatTo(w, results); err != nil {
		return err
	}

	return lintOutcome(results, lintFlags.strict)
}

func expressionFiles(dir string) ([]string, error) {
	var files []string
	for _, ext := range lintExtensions {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
		if err != nil {
			return nil, fmt.Errorf("failed to list expression files: %w", err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

func lintFile(a *app, path string) (LintResult, error) {
	result := LintResult{File: path, Valid: true}

	f, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	exprs, err := readExpressions(f)
	if err != nil {
		return result, fmt.Errorf("%s: %w", path, err)
	}
	result.Expressions = len(exprs)

	ctx := logging.WithSourceFile(a.ctx, path)
	for _, expr := range exprs {
		res := a.parser.Parse(expr.Text)
		if res.Source != tagexpr.SourceFallback {
			continue
		}
		issue := lintIssue(expr, res)
		a.logger.DebugContext(logging.WithExpression(ctx, expr.Text), "grammar rejected expression",
			"line", expr.Line,
			"message", issue.Message,
		)
		result.Issues = append(result.Issues, issue)
	}
	result.Valid = len(result.Issues) == 0
	return result, nil
}

func lintIssue(expr expression, res tagexpr.Result) LintIssue {
	issue := LintIssue{
		Line:       expr.Line,
		Expression: expr.Text,
		Severity:   "warning",
	}
	if res.Node != nil {
		issue.Recovered = ast.String(res.Node)
	} else {
		issue.Severity = "error"
	}

	var diag *tagerrors.Error
	switch {
	case errors.As(res.Err, &diag):
		issue.Column = diag.Location.Column
		issue.Message = diag.Message
		issue.Type = string(diag.Type)
		issue.Suggestion = diag.Suggestion
		issue.Context = diag.Context
		if diag.Type == tagerrors.ErrorTypeInternal {
			issue.Severity = "error"
		}
	case errors.Is(res.Err, tagexpr.ErrInputTooLong):
		issue.Message = res.Err.Error()
		issue.Suggestion = "raise parser.max_input_length to check long expressions against the grammar"
	case res.Err != nil:
		issue.Message = res.Err.Error()
	}
	return issue
}

func writeLintText(w io.Writer, results []LintResult) {
	errorsTotal, warningsTotal := 0, 0

	for _, result := range results {
		fmt.Fprintf(w, "Checking %s...\n", result.File)

		if result.Valid {
			fmt.Fprintf(w, "✓ %d expression(s) accepted by the grammar\n", result.Expressions)
		}

		for _, issue := range result.Issues {
			marker := "⚠  Warning"
			if issue.Severity == "error" {
				marker = "✗ Error"
				errorsTotal++
			} else {
				warningsTotal++
			}
			fmt.Fprintf(w, "%s: %s (line %d", marker, issue.Message, issue.Line)
			if issue.Column > 0 {
				fmt.Fprintf(w, ", col %d", issue.Column)
			}
			fmt.Fprint(w, ")")
			if issue.Type != "" {
				fmt.Fprintf(w, " [%s]", issue.Type)
			}
			fmt.Fprintln(w)
			if issue.Context != "" {
				fmt.Fprint(w, indentLines(issue.Context, "    "))
			}
			if issue.Suggestion != "" {
				fmt.Fprintf(w, "    Suggestion: %s\n", issue.Suggestion)
			}
			if issue.Recovered != "" {
				fmt.Fprintf(w, "    Fallback parsed: %s\n", issue.Recovered)
			}
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  %d error(s), %d warning(s)\n", errorsTotal, warningsTotal)
}

func indentLines(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	var sb strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		sb.WriteString(prefix)
		sb.WriteString(line)
	}
	if !strings.HasSuffix(s, "\n") {
		sb.WriteByte('\n')
	}
	return sb.String()
}

func lintOutcome(results []LintResult, strict bool) error {
	errorsTotal, warningsTotal := 0, 0
	for _, result := range results {
		for _, issue := range result.Issues {
			if issue.Severity == "error" {
				errorsTotal++
			} else {
				warningsTotal++
			}
		}
	}

	if errorsTotal > 0 {
		return cli.NewCommandError("lint", fmt.Errorf("%d expression(s) could not be parsed", errorsTotal))
	}
	if strict && warningsTotal > 0 {
		return cli.NewCommandError("lint", fmt.Errorf("%d expression(s) rejected by the grammar (strict mode)", warningsTotal))
	}
	return nil
}
