package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the environment and the package index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orc, cleanup, err := buildOrchestrator()
			if err != nil {
				return err
			}
			defer cleanup()

			info, err := orc.Status(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if info.PipExists {
				fmt.Fprintf(w, "  pip: OK (%s)\n", info.PipPath)
			} else {
				fmt.Fprintf(w, "  pip: MISSING (%s)\n", info.PipPath)
			}
			if info.IndexErr != nil {
				fmt.Fprintf(w, "  index %s: FAILED (%v)\n", info.IndexURL, info.IndexErr)
			} else {
				fmt.Fprintf(w, "  index %s: OK\n", info.IndexURL)
			}
			fmt.Fprintf(w, "  inventory: %d package(s)\n", info.Packages)

			if !info.PipExists {
				return fmt.Errorf("pip not found at %s", info.PipPath)
			}
			return nil
		},
	}
}
