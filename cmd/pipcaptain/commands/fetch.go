package commands

import (
	"fmt"

	"github.com/ecairns22/PipCaptain/internal/orchestrator"
	"github.com/spf13/cobra"
)

func fetchCmd() *cobra.Command {
	var (
		version string
		pkg     string
		install bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <repo>",
		Short: "Download a wheel from a GitHub release",
		Long:  "Download a wheel asset from a GitHub release into the wheel directory. Repo may be \"name\" (using the configured owner) or \"owner/name\".",
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

			req := orchestrator.FetchRequest{
				Repo:    args[0],
				Version: version,
				Package: pkg,
				Install: install,
			}

			result, err := orc.Fetch(cmd.Context(), req, step)
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "✓ %s fetched to %s\n", result.Version, result.WheelPath)
			if result.Installed {
				fmt.Fprintln(w, "✓ installed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&version, "version", "latest", "Release tag to fetch")
	cmd.Flags().StringVar(&pkg, "package", "", "Wheel package name (defaults to the repo name)")
	cmd.Flags().BoolVar(&install, "install", false, "Install the wheel after downloading")

	return cmd
}
