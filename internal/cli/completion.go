package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/screenforge/pkg/catalog"
)

var shells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand prints a shell completion script. Besides command and
// flag names the scripts complete the values of --format on flow and
// --category on catalog.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for screenforge.

The script completes subcommands (create, styles, regenerate, flow, catalog,
session, ui, cache), their flags, the flow map formats and the screen
categories of the catalog.

  bash:        source <(screenforge completion bash)
  zsh:         screenforge completion zsh > "${fpath[1]}/_screenforge"
  fish:        screenforge completion fish > ~/.config/fish/completions/screenforge.fish
  powershell:  screenforge completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, root := cmd.OutOrStdout(), cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// fixedCompletion completes a flag from a fixed list of values.
func fixedCompletion(values ...string) cobra.CompletionFunc {
	return func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

func categoryNames() []string {
	names := make([]string, len(catalog.Categories))
	for i, cat := range catalog.Categories {
		names[i] = string(cat)
	}
	return names
}
