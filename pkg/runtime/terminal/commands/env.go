package commands

import (
	"github.com/de-tools/eval-atlas/pkg/services/config"
	"github.com/de-tools/eval-atlas/pkg/services/loader"
	"github.com/de-tools/eval-atlas/pkg/store/client"
	"github.com/spf13/cobra"
)

// Environment is what subcommands run against. It is resolved once per
// invocation from the global flags.
type Environment struct {
	Client   client.AdminClient
	Loader   *loader.Loader
	Settings config.Settings
}

type EnvFunc func(cmd *cobra.Command) (*Environment, error)
