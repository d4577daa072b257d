package commands

import (
	"fmt"

	"github.com/de-tools/eval-atlas/pkg/services/trigger"
	"github.com/spf13/cobra"
)

type ResolveCmd struct {
	resolution string
	env        EnvFunc
}

func NewResolveCmd(env EnvFunc) *cobra.Command {
	rc := &ResolveCmd{env: env}
	cmd := &cobra.Command{
		Use:   "resolve <flag>",
		Short: "Resolve a run flag",
		Args:  cobra.ExactArgs(1),
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.resolution, "resolution", "", "How the flag was addressed")
	_ = cmd.MarkFlagRequired("resolution")

	return cmd
}

func (rc *ResolveCmd) run(cmd *cobra.Command, args []string) error {
	env, err := rc.env(cmd)
	if err != nil {
		return err
	}

	o := trigger.NewOrchestrator(env.Client, trigger.DefaultOptions(), trigger.Hooks{})
	if err := o.ResolveFlag(cmd.Context(), args[0], rc.resolution); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Flag %s resolved\n", args[0])
	return nil
}
