package main

import (
	"fmt"
	"os"

	"github.com/de-tools/eval-atlas/pkg/handlers/evaluation"
	"github.com/de-tools/eval-atlas/pkg/runtime/app"
	"github.com/de-tools/eval-atlas/pkg/server"
	"github.com/de-tools/eval-atlas/pkg/services/console"
	"github.com/de-tools/eval-atlas/pkg/services/trigger"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var opts app.Options

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Eval Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVar(&opts.Profile, "profile", app.DefaultProfile, "Profile to use from the profiles file")
	rootCmd.Flags().StringVar(&opts.ProfilesFile, "profiles-file", "",
		"Path to the profiles file (default is $HOME/.evalatlascfg)")
	rootCmd.Flags().StringVar(&opts.SettingsFile, "settings", "", "Path to a settings file (yaml, json or toml)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	a, err := app.Open(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	settings := a.Settings
	logger.Info().Msgf("Profile `%s` loaded, admin API at `%s`.", a.Profile.Name, a.Profile.Host)

	sessions := evaluation.NewSessions(func(onError func(string)) *console.Console {
		return console.New(a.Client, a.Loader, console.Config{
			PollInterval: settings.PollInterval,
			Progress: trigger.SimulatedProgress{
				Steps:        trigger.DefaultSteps,
				StepDuration: settings.ProgressStep,
			},
			SettleDelay: settings.SettleDelay,
			OnError:     onError,
		})
	}, settings.Server.SessionIdleTimeout)

	api := server.NewWebAPI(server.Config{
		Addr: settings.Server.Addr(),
		Dependencies: server.Dependencies{
			Loader:   a.Loader,
			Sessions: sessions,
			Logger:   logger,
		},
	})

	return api.Start()
}
