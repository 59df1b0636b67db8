package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell
// completions. It needs no configuration.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for umldoc.

To load completions:

Bash:
  $ source <(umldoc completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ umldoc completion bash > /etc/bash_completion.d/umldoc
  # macOS:
  $ umldoc completion bash > $(brew --prefix)/etc/bash_completion.d/umldoc

Zsh:
  $ umldoc completion zsh > "${fpath[1]}/_umldoc"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ umldoc completion fish > ~/.config/fish/completions/umldoc.fish

PowerShell:
  PS> umldoc completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
