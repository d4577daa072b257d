package commands

import (
	"fmt"

	"github.com/de-tools/eval-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/eval-atlas/pkg/services/console"
	"github.com/de-tools/eval-atlas/pkg/services/navigation"
	"github.com/spf13/cobra"
)

type RunCmd struct {
	interview string
	breakdown bool
	insights  bool
	env       EnvFunc
	reporter  *export.Reporter
}

func NewRunCmd(env EnvFunc, reporter *export.Reporter) *cobra.Command {
	rc := &RunCmd{env: env, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "run <run>",
		Short: "Show a run's metrics and strategic position",
		Args:  cobra.ExactArgs(1),
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.interview, "interview", "", "Show the scores of a single interview (source id)")
	cmd.Flags().BoolVar(&rc.breakdown, "breakdown", false, "Show per-question statistics across interviews")
	cmd.Flags().BoolVar(&rc.insights, "insights", false, "Append the refined report")
	cmd.MarkFlagsMutuallyExclusive("interview", "breakdown")

	return cmd
}

func (rc *RunCmd) run(cmd *cobra.Command, args []string) error {
	env, err := rc.env(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	runID := args[0]

	bundle, err := env.Loader.LoadRunDetail(ctx, runID)
	if err != nil {
		return err
	}

	sub := navigation.SubLevelSummary
	switch {
	case rc.interview != "":
		if _, ok := bundle.Detail.Source(rc.interview); !ok {
			return fmt.Errorf("run %s has no interview %q", runID, rc.interview)
		}
		sub = navigation.SubLevelInterview
	case rc.breakdown:
		sub = navigation.SubLevelBreakdown
	}

	report := export.RunReport(console.BuildRunView(*bundle, sub, rc.interview))
	if rc.insights {
		refined, err := env.Loader.LoadRefinedReport(ctx, runID)
		if err != nil {
			return fmt.Errorf("failed to load insights: %w", err)
		}
		report.Sections = append(report.Sections, export.InsightsSections(refined)...)
	}

	return rc.reporter.Handle(report)
}
