package commands

import (
	"fmt"

	"github.com/de-tools/eval-atlas/pkg/models/domain"
	"github.com/de-tools/eval-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/eval-atlas/pkg/services/console"
	"github.com/de-tools/eval-atlas/pkg/services/navigation"
	"github.com/de-tools/eval-atlas/pkg/services/trigger"
	"github.com/spf13/cobra"
)

type EvaluateCmd struct {
	watch    bool
	env      EnvFunc
	reporter *export.Reporter
}

func NewEvaluateCmd(env EnvFunc, reporter *export.Reporter) *cobra.Command {
	ec := &EvaluateCmd{env: env, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "evaluate <assessment>",
		Short: "Start a new evaluation run for an assessment",
		Args:  cobra.ExactArgs(1),
		RunE:  ec.run,
	}

	cmd.Flags().BoolVar(&ec.watch, "watch", false, "Poll the new run until it completes")

	return cmd
}

func (ec *EvaluateCmd) run(cmd *cobra.Command, args []string) error {
	env, err := ec.env(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	opts := trigger.Options{
		Progress: trigger.SimulatedProgress{
			Steps:        trigger.DefaultSteps,
			StepDuration: env.Settings.ProgressStep,
		},
		SettleDelay: env.Settings.SettleDelay,
	}
	hooks := trigger.Hooks{
		Progress: func(step *domain.ProgressStep) {
			if step != nil {
				fmt.Fprintf(out, "[%d/%d] %s\n", step.Index+1, step.Total, step.Label)
			}
		},
	}

	result, err := trigger.NewOrchestrator(env.Client, opts, hooks).TriggerEvaluation(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Started run #%d %s (%s)\n", result.RunNumber, result.RunID, result.Status)

	if !ec.watch {
		return nil
	}
	bundle, err := watchRun(cmd.Context(), env, result.RunID, out)
	if err != nil {
		return err
	}
	return ec.reporter.Handle(export.RunReport(console.BuildRunView(*bundle, navigation.SubLevelSummary, "")))
}
