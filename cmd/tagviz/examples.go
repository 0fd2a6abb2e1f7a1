package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mercator-hq/tagviz/pkg/cli"
	"mercator-hq/tagviz/pkg/tagexpr/ast"
)

var examplesFlags struct {
	showAST bool
	format  string
}

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "List the example expressions",
	Long: `List the example table the parser consults before the grammar.

The table is the built-in one unless parser.examples_file is configured, and
is empty when parser.use_examples is false.

Examples:
  tagviz examples
  tagviz examples --ast --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExamples(current, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(examplesCmd)

	examplesCmd.Flags().BoolVar(&examplesFlags.showAST, "ast", false, "include each example's tree")
	examplesCmd.Flags().StringVar(&examplesFlags.format, "format", "text", "output format: text, json, yaml")
}

// exampleView is the serialized form of one example.
type exampleView struct {
	Text string `json:"text" yaml:"text"`
	AST  any    `json:"ast,omitempty" yaml:"ast,omitempty"`
}

func runExamples(a *app, w io.Writer) error {
	format, err := cli.ParseOutputFormat(examplesFlags.format)
	if err != nil {
		return err
	}

	examples := a.parser.Examples()
	if format == cli.FormatText {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, ex := range examples {
			if examplesFlags.showAST {
				fmt.Fprintf(tw, "%s\t%s\n", ex.Text, ast.String(ex.AST))
			} else {
				fmt.Fprintln(tw, ex.Text)
			}
		}
		return tw.Flush()
	}

	views := make([]exampleView, len(examples))
	for i, ex := range examples {
		views[i] = exampleView{Text: ex.Text}
		if examplesFlags.showAST {
			views[i].AST = ast.ToValue(ex.AST)
		}
	}
	return cli.NewFormatter(format).FormatTo(w, views)
}
