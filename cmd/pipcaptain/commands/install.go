package commands

import (
	"fmt"

	"github.com/ecairns22/PipCaptain/internal/orchestrator"
	"github.com/spf13/cobra"
)

func installCmd() *cobra.Command {
	var (
		fromGitHub string
		version    string
	)

	cmd := &cobra.Command{
		Use:   "install <package> [-- pip options...]",
		Short: "Install a package into the environment",
		Long:  "Install a package (or requirement specifier) with pip. Arguments after -- are passed to pip verbatim, e.g. pipcaptain install requests -- --upgrade. With --from-github the wheel is fetched from a GitHub release and installed from disk.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("version") && fromGitHub == "" {
				return fmt.Errorf("--version requires --from-github; pin index versions in the specifier instead, e.g. %s==1.2.3", args[0])
			}

			orc, cleanup, err := buildOrchestrator()
			if err != nil {
				return err
			}
			defer cleanup()

			w := cmd.OutOrStdout()
			step := func(msg string) {
				fmt.Fprintln(w, msg)
			}

			if fromGitHub != "" {
				req := orchestrator.FetchRequest{
					Repo:    fromGitHub,
					Version: version,
					Package: args[0],
					Install: true,
				}
				result, err := orc.Fetch(cmd.Context(), req, step)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "✓ %s %s installed from %s\n", args[0], result.Version, result.WheelPath)
				return nil
			}

			req := orchestrator.InstallRequest{
				Package: args[0],
				Options: args[1:],
			}

			result, err := orc.Install(cmd.Context(), req, step)
			if err != nil {
				return err
			}

			if result.Version != "" {
				fmt.Fprintf(w, "✓ %s %s installed\n", result.Package, result.Version)
			} else {
				fmt.Fprintf(w, "✓ %s installed\n", result.Package)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromGitHub, "from-github", "", "Install from a GitHub release wheel (\"repo\" or \"owner/repo\") instead of the index")
	cmd.Flags().StringVar(&version, "version", "latest", "Release tag when installing with --from-github")

	return cmd
}
