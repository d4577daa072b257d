package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/eval-atlas/pkg/runtime/app"
	"github.com/de-tools/eval-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/eval-atlas/pkg/runtime/terminal/export"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Connector resolves the command environment from the global flags. The
// returned cleanup runs once the command has finished.
type Connector func(ctx context.Context, opts app.Options) (*commands.Environment, func(), error)

// CLI represents the command-line interface
type CLI struct {
	connect  Connector
	output   io.Writer
	logs     io.Writer
	reporter *export.Reporter
	rootCmd  *cobra.Command

	opts    app.Options
	format  string
	verbose bool

	env     *commands.Environment
	cleanup func()
}

// Options contain configuration for the CLI
type Options struct {
	Connect Connector
	Output  io.Writer
	Logs    io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logs == nil {
		opts.Logs = os.Stderr
	}
	if opts.Connect == nil {
		opts.Connect = Connect
	}

	cli := &CLI{
		connect:  opts.Connect,
		output:   opts.Output,
		logs:     opts.Logs,
		reporter: export.NewReporter(opts.Output, export.FormatTable),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute(ctx context.Context, args ...string) error {
	defer cli.close()
	if args != nil {
		cli.rootCmd.SetArgs(args)
	}
	return cli.rootCmd.ExecuteContext(ctx)
}

// Connect opens the application for the selected profile.
func Connect(ctx context.Context, opts app.Options) (*commands.Environment, func(), error) {
	a, err := app.Open(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	env := &commands.Environment{
		Client:   a.Client,
		Loader:   a.Loader,
		Settings: a.Settings,
	}
	return env, func() { _ = a.Close() }, nil
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "evalctl",
		Short:         "Browse and trigger assessment evaluations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			format, err := export.ParseFormat(cli.format)
			if err != nil {
				return err
			}
			cli.reporter.SetFormat(format)

			level := zerolog.WarnLevel
			if cli.verbose {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: cli.logs}).
				Level(level).
				With().Timestamp().Logger()
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}
	cmd.SetOut(cli.output)

	flags := cmd.PersistentFlags()
	flags.StringVar(&cli.opts.Profile, "profile", app.DefaultProfile, "Profile to use from the profiles file")
	flags.StringVar(&cli.opts.ProfilesFile, "profiles-file", "", "Path to the profiles file (default is $HOME/.evalatlascfg)")
	flags.StringVar(&cli.opts.SettingsFile, "settings", "", "Path to a settings file (yaml, json or toml)")
	flags.StringVar(&cli.format, "format", string(export.FormatTable), "Output format: table or plain")
	flags.BoolVarP(&cli.verbose, "verbose", "v", false, "Enable debug logging")

	env := cli.environment

	cmd.AddCommand(commands.NewBusinessesCmd(env, cli.reporter))
	cmd.AddCommand(commands.NewRunsCmd(env, cli.reporter))
	cmd.AddCommand(commands.NewRunCmd(env, cli.reporter))
	cmd.AddCommand(commands.NewWatchCmd(env, cli.reporter))
	cmd.AddCommand(commands.NewEvaluateCmd(env, cli.reporter))
	cmd.AddCommand(commands.NewResolveCmd(env))
	cmd.AddCommand(commands.NewCacheCmd(env, cli.reporter))

	return cmd
}

func (cli *CLI) environment(cmd *cobra.Command) (*commands.Environment, error) {
	if cli.env != nil {
		return cli.env, nil
	}
	env, cleanup, err := cli.connect(cmd.Context(), cli.opts)
	if err != nil {
		return nil, err
	}
	cli.env, cli.cleanup = env, cleanup
	return env, nil
}

func (cli *CLI) close() {
	if cli.cleanup != nil {
		cli.cleanup()
		cli.cleanup = nil
	}
	cli.env = nil
}
