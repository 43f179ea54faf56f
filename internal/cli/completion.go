package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gallery/pkg/layout"
	"github.com/matzehuels/gallery/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for gallery.

To load completions:

Bash:
  $ source <(gallery completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ gallery completion bash > /etc/bash_completion.d/gallery
  # macOS:
  $ gallery completion bash > $(brew --prefix)/etc/bash_completion.d/gallery

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ gallery completion zsh > "${fpath[1]}/_gallery"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ gallery completion fish | source

  # To load completions for each session, execute once:
  $ gallery completion fish > ~/.config/fish/completions/gallery.fish

PowerShell:
  PS> gallery completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> gallery completion powershell > gallery.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}

// fixedCompletion completes a flag from a fixed list of values.
func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// registerLayoutCompletions completes the enumerated layout flags.
func registerLayoutCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("mode",
		fixedCompletion(string(layout.ModeRows), string(layout.ModeColumns)))
	_ = cmd.RegisterFlagCompletionFunc("last-row",
		fixedCompletion(layout.LastRowJustify.String(), layout.LastRowNatural.String()))
}

// registerRenderCompletions completes the output format flag.
func registerRenderCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("format",
		fixedCompletion(pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON))
}
