package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func uninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall <package>",
		Short: "Remove a package from the environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orc, cleanup, err := buildOrchestrator()
			if err != nil {
				return err
			}
			defer cleanup()

			w := cmd.OutOrStdout()
			step := func(msg string) {
				fmt.Fprintln(w, msg)
			}

			if err := orc.Uninstall(cmd.Context(), args[0], step); err != nil {
				return err
			}

			fmt.Fprintf(w, "✓ %s removed\n", args[0])
			return nil
		},
	}
}
