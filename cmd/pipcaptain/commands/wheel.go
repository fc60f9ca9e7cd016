package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func wheelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wheel <package> [-- pip options...]",
		Short: "Build a wheel for a package",
		Long:  "Build a wheel with pip. Wheels land in the environment root unless pip options say otherwise (e.g. -- --wheel-dir /tmp/wheels).",
		Args:  cobra.MinimumNArgs(1),
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

			if err := orc.Wheel(cmd.Context(), args[0], args[1:], step); err != nil {
				return err
			}

			fmt.Fprintf(w, "✓ wheel built for %s\n", args[0])
			return nil
		},
	}
}
