package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show packages recorded in the inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := buildStateOnly()
			if err != nil {
				return err
			}
			defer store.Close()

			packages, err := store.ListPackages(cmd.Context())
			if err != nil {
				return err
			}

			if len(packages) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No packages recorded. Run 'pipcaptain install <package>' to get started.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tVERSION\tINSTALLED\tUPDATED")

			for _, pkg := range packages {
				version := pkg.Version
				if version == "" {
					version = "—"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					pkg.Name, version,
					pkg.InstalledAt.Format(time.DateOnly),
					pkg.UpdatedAt.Format(time.DateOnly),
				)
			}

			w.Flush()
			return nil
		},
	}
}
