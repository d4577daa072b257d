package commands

import (
	"fmt"

	"github.com/de-tools/eval-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type RunsCmd struct {
	env      EnvFunc
	reporter *export.Reporter
}

func NewRunsCmd(env EnvFunc, reporter *export.Reporter) *cobra.Command {
	rc := &RunsCmd{env: env, reporter: reporter}
	return &cobra.Command{
		Use:   "runs <assessment>",
		Short: "List the evaluation runs of an assessment, newest first",
		Args:  cobra.ExactArgs(1),
		RunE:  rc.run,
	}
}

func (rc *RunsCmd) run(cmd *cobra.Command, args []string) error {
	env, err := rc.env(cmd)
	if err != nil {
		return err
	}

	runs, err := env.Loader.LoadRuns(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No runs found for assessment: %s\n", args[0])
		return nil
	}

	return rc.reporter.Handle(export.RunsReport(args[0], runs))
}
