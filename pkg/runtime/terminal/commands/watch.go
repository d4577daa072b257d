package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/de-tools/eval-atlas/pkg/models/domain"
	"github.com/de-tools/eval-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/eval-atlas/pkg/services/console"
	"github.com/de-tools/eval-atlas/pkg/services/loader"
	"github.com/de-tools/eval-atlas/pkg/services/navigation"
	"github.com/spf13/cobra"
)

type WatchCmd struct {
	env      EnvFunc
	reporter *export.Reporter
}

func NewWatchCmd(env EnvFunc, reporter *export.Reporter) *cobra.Command {
	wc := &WatchCmd{env: env, reporter: reporter}
	return &cobra.Command{
		Use:   "watch <run>",
		Short: "Poll a run until it completes or fails",
		Args:  cobra.ExactArgs(1),
		RunE:  wc.run,
	}
}

func (wc *WatchCmd) run(cmd *cobra.Command, args []string) error {
	env, err := wc.env(cmd)
	if err != nil {
		return err
	}

	bundle, err := watchRun(cmd.Context(), env, args[0], cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return wc.reporter.Handle(export.RunReport(console.BuildRunView(*bundle, navigation.SubLevelSummary, "")))
}

// watchRun loads runID and, while it is not terminal, polls it at the
// configured interval. Each observed status is written to out.
func watchRun(ctx context.Context, env *Environment, runID string, out io.Writer) (*domain.RunBundle, error) {
	bundle, err := env.Loader.LoadRunDetail(ctx, runID)
	if err != nil {
		return nil, err
	}
	printStatus(out, bundle)
	if bundle.Detail.Status.IsTerminal() {
		return bundle, nil
	}

	var pollErr error
	p := loader.Poller{Interval: env.Settings.PollInterval}
	h := env.Loader.PollRunDetail(ctx, p, runID,
		func(b *domain.RunBundle) {
			bundle = b
			printStatus(out, b)
		},
		func(err error) {
			pollErr = err
		},
	)
	<-h.Done()

	if pollErr != nil {
		return nil, pollErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return bundle, nil
}

func printStatus(out io.Writer, b *domain.RunBundle) {
	fmt.Fprintf(out, "run %s #%d: %s\n", b.Detail.ID, b.Detail.RunNumber, b.Detail.Status)
}
