// Package completion provides the shell completion command.
package completion

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Supported shells.
const (
	ShellBash       = "bash"
	ShellZsh        = "zsh"
	ShellFish       = "fish"
	ShellPowerShell = "powershell"
)

// NewCommand creates the completion command. It replaces cobra's generated
// one so the help text speaks about kolmap.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <bash|zsh|fish|powershell>",
		Short: "Generate a shell completion script",
		Long: `Generate the autocompletion script for the given shell.

To load completions in your current bash session:

  source <(kolmap completion bash)

For every new zsh session, execute once:

  kolmap completion zsh > "${fpath[1]}/_kolmap"

For fish:

  kolmap completion fish > ~/.config/fish/completions/kolmap.fish`,
		Args:                  cobra.ExactArgs(1),
		ValidArgs:             []string{ShellBash, ShellZsh, ShellFish, ShellPowerShell},
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Generate(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

// Generate writes the completion script of shell for root to w.
func Generate(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case ShellBash:
		return root.GenBashCompletionV2(w, true)
	case ShellZsh:
		return root.GenZshCompletion(w)
	case ShellFish:
		return root.GenFishCompletion(w, true)
	case ShellPowerShell:
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell %q: must be one of bash, zsh, fish, powershell", shell)
	}
}
