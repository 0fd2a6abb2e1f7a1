package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mercator-hq/tagviz/pkg/cli"
	"mercator-hq/tagviz/pkg/highlight"
)

var highlightFlags struct {
	format string
	render renderOptions
}

var highlightCmd = &cobra.Command{
	Use:   "highlight [file]",
	Short: "Colorize a JSON or YAML document",
	Long: `Reformat a JSON or YAML document as indented JSON and colorize it.

Mapping keys keep their source order. Reads stdin when no file is given or
the file is '-'.

Examples:
  tagviz highlight config.json
  tagviz highlight --palette light --format html doc.yaml > doc.html
  kubectl get pod x -o json | tagviz highlight --color always`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHighlight(current, cmd.OutOrStdout(), cmd.InOrStdin(), args)
	},
}

func init() {
	rootCmd.AddCommand(highlightCmd)

	highlightCmd.Flags().StringVar(&highlightFlags.format, "format", "", "render format: ansi, plain, html (default: from --color)")
	addRenderFlags(highlightCmd.Flags(), &highlightFlags.render)
}

func runHighlight(a *app, w io.Writer, stdin io.Reader, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	value, err := decodeDocument(data)
	if err != nil {
		return cli.NewCommandError("highlight", err)
	}

	opts := highlightFlags.render
	opts.format = highlightFlags.format
	r, err := a.renderer(w, opts)
	if err != nil {
		return err
	}
	return r.value(w, value)
}

// decodeDocument reads JSON or YAML (a superset of JSON) keeping key order.
// Only the first document of a multi-document stream is used.
func decodeDocument(data []byte) (any, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return highlight.FromYAML(&doc)
}
