package main

import (
	"fmt"
	"io"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// Overridden at build time with -ldflags "-X main.Version=...".
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, Git commit, build date and Go runtime of this binary.`,
	Args:  cobra.NoArgs,
	// No configuration is loaded for this command.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runVersion(cmd.OutOrStdout())
	},
}

func runVersion(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "tagviz %s\n", Version); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "  commit:\t%s\n", GitCommit)
	fmt.Fprintf(tw, "  built:\t%s\n", BuildDate)
	fmt.Fprintf(tw, "  go:\t%s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return tw.Flush()
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
