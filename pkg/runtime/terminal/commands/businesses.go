package commands

import (
	"fmt"

	"github.com/de-tools/eval-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type BusinessesCmd struct {
	env      EnvFunc
	reporter *export.Reporter
}

func NewBusinessesCmd(env EnvFunc, reporter *export.Reporter) *cobra.Command {
	bc := &BusinessesCmd{env: env, reporter: reporter}
	return &cobra.Command{
		Use:   "businesses",
		Short: "List businesses with their assessments and latest runs",
		Args:  cobra.NoArgs,
		RunE:  bc.run,
	}
}

func (bc *BusinessesCmd) run(cmd *cobra.Command, _ []string) error {
	env, err := bc.env(cmd)
	if err != nil {
		return err
	}

	businesses, err := env.Loader.LoadEnrichedBusinesses(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load businesses: %w", err)
	}
	if len(businesses) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No businesses with evaluations found")
		return nil
	}

	return bc.reporter.Handle(export.BusinessesReport(businesses))
}
