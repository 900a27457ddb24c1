package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for bifconv.

To load completions:

Bash:
  $ source <(bifconv completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ bifconv completion bash > /etc/bash_completion.d/bifconv
  # macOS:
  $ bifconv completion bash > $(brew --prefix)/etc/bash_completion.d/bifconv

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ bifconv completion zsh > "${fpath[1]}/_bifconv"

Fish:
  $ bifconv completion fish | source

  # To load completions for each session, execute once:
  $ bifconv completion fish > ~/.config/fish/completions/bifconv.fish

PowerShell:
  PS> bifconv completion powershell | Out-String | Invoke-Expression

Input arguments of bifconv, render, inspect and browse complete to .bif
files only.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(c.Stdout)
			case "zsh":
				return root.GenZshCompletion(c.Stdout)
			case "fish":
				return root.GenFishCompletion(c.Stdout, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(c.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// completeBIF offers .bif files for a command's single input argument.
func completeBIF(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"bif"}, cobra.ShellCompDirectiveFilterFileExt
}
