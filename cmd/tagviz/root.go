package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/tagviz/pkg/cli"
	"mercator-hq/tagviz/pkg/config"
)

var (
	// Global flags
	cfgFile     string
	verbose     bool
	logLevel    string
	showMetrics bool
)

// current is the application state built before each subcommand runs.
var current *app

var rootCmd = &cobra.Command{
	Use:   "tagviz",
	Short: "Tag expression parser and structured-text colorizer",
	Long: `Tagviz parses tag expressions into trees and colorizes structured text.

Tag expressions combine tags with three operators, from loosest to tightest:
  ||   or
  ,    and
  ..   inclusive range between two tags

Inputs the grammar rejects are still parsed by a tolerant fallback parser, so
every expression yields a tree.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{
			configPath:     cfgFile,
			configExplicit: cmd.Flags().Changed("config"),
			verbose:        verbose,
			logLevel:       logLevel,
			metrics:        showMetrics,
			logWriter:      cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if current == nil || !showMetrics {
			return nil
		}
		return current.metrics.WriteText(cmd.ErrOrStderr())
	},
}

// Execute runs the root command and exits with a status derived from the error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultConfigPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "print collected metrics to stderr on exit")
}
