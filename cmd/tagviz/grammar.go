package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mercator-hq/tagviz/pkg/tagexpr/grammar"
)

var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Print the tag expression grammar in EBNF",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGrammar(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(grammarCmd)
}

func runGrammar(w io.Writer) error {
	_, err := fmt.Fprintln(w, grammar.Default().EBNF())
	return err
}
