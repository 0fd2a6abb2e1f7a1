package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for tagviz.

To load completions:

Bash:
  $ source <(tagviz completion bash)

Zsh:
  $ tagviz completion zsh > "${fpath[1]}/_tagviz"
  $ compinit

Fish:
  $ tagviz completion fish > ~/.config/fish/completions/tagviz.fish

PowerShell:
  PS> tagviz completion powershell | Out-String | Invoke-Expression
`,
	ValidArgs:         []string{"bash", "zsh", "fish", "powershell"},
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(w)
		case "zsh":
			return rootCmd.GenZshCompletion(w)
		case "fish":
			return rootCmd.GenFishCompletion(w, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(w)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
