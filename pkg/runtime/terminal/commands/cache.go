package commands

import (
	"fmt"

	"github.com/de-tools/eval-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

func NewCacheCmd(env EnvFunc, reporter *export.Reporter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the local score cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List cached runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := env(cmd)
			if err != nil {
				return err
			}
			snapshots, err := e.Loader.CachedRuns(cmd.Context())
			if err != nil {
				return err
			}
			if len(snapshots) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Score cache is empty")
				return nil
			}
			return reporter.Handle(export.SnapshotsReport(snapshots))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear <run>",
		Short: "Drop the cached scores of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env(cmd)
			if err != nil {
				return err
			}
			if err := e.Loader.Invalidate(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared cached scores for run %s\n", args[0])
			return nil
		},
	})

	return cmd
}
