package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [package]",
		Short: "Show recorded pip operations, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := buildStateOnly()
			if err != nil {
				return err
			}
			defer store.Close()

			pkg := ""
			if len(args) == 1 {
				pkg = args[0]
			}

			ops, err := store.ListOperations(cmd.Context(), pkg)
			if err != nil {
				return err
			}

			if len(ops) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No operations recorded.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tPACKAGE\tACTION\tEXIT")

			for _, op := range ops {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
					op.Timestamp.Format(time.DateTime),
					op.Package, op.Action, op.ExitCode,
				)
			}

			w.Flush()
			return nil
		},
	}
}
