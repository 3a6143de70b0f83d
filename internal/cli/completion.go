package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for markercube.

To load completions:

Bash:
  $ source <(markercube completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ markercube completion bash > /etc/bash_completion.d/markercube
  # macOS:
  $ markercube completion bash > $(brew --prefix)/etc/bash_completion.d/markercube

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ markercube completion zsh > "${fpath[1]}/_markercube"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ markercube completion fish | source

  # To load completions for each session, execute once:
  $ markercube completion fish > ~/.config/fish/completions/markercube.fish

PowerShell:
  PS> markercube completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> markercube completion powershell > markercube.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(stdout, true)
			case "zsh":
				return root.GenZshCompletion(stdout)
			case "fish":
				return root.GenFishCompletion(stdout, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(stdout)
			}
			return nil
		},
	}

	return cmd
}
