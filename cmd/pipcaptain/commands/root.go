package commands

import (
	"github.com/spf13/cobra"
)

// Root returns the root cobra command with all subcommands attached.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipcaptain",
		Short: "Manage packages in a virtualenv through pip",
		Long:  "PipCaptain drives the pip executable inside a virtualenv root and keeps a record of installs, removals, and wheel builds.",
	}

	cmd.AddCommand(initCmd())
	cmd.AddCommand(installCmd())
	cmd.AddCommand(uninstallCmd())
	cmd.AddCommand(wheelCmd())
	cmd.AddCommand(searchCmd())
	cmd.AddCommand(fetchCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(historyCmd())
	cmd.AddCommand(statusCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}
