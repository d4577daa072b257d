package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/eval-atlas/pkg/services/auth"
	"github.com/de-tools/eval-atlas/pkg/services/config"
	"github.com/de-tools/eval-atlas/pkg/services/loader"
	"github.com/de-tools/eval-atlas/pkg/store/client"
	"github.com/de-tools/eval-atlas/pkg/store/duckdb"
	"github.com/de-tools/eval-atlas/pkg/store/duckdb/snapshot"
	"github.com/rs/zerolog"
)

const DefaultProfile = "DEFAULT"

type Options struct {
	Profile      string
	ProfilesFile string
	SettingsFile string
}

// App wires the admin client, the score cache and the loader for one
// profile.
type App struct {
	Settings config.Settings
	Profile  config.Profile
	Session  *auth.Session
	Client   client.AdminClient
	Loader   *loader.Loader

	db *sql.DB
}

func Open(ctx context.Context, opts Options) (*App, error) {
	logger := zerolog.Ctx(ctx)

	settings, err := config.LoadSettings(opts.SettingsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	profilesPath := opts.ProfilesFile
	if profilesPath == "" {
		if profilesPath, err = config.DefaultProfilesPath(); err != nil {
			return nil, err
		}
	}
	registry, err := config.NewRegistry(profilesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile registry: %w", err)
	}

	name := opts.Profile
	if name == "" {
		name = DefaultProfile
	}
	profile, err := registry.GetProfile(ctx, name)
	if err != nil {
		return nil, err
	}

	session := auth.NewSession(profile.Token)
	c, err := client.NewAdminClient(profile.ClientConfig(settings.RequestTimeout), session)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin client: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: settings.CachePath})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	snapshots, err := snapshot.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create snapshot store: %w", err)
	}

	logger.Debug().
		Str("profile", profile.Name).
		Str("host", profile.Host).
		Str("cache_path", settings.CachePath).
		Msg("application initialized")

	return &App{
		Settings: *settings,
		Profile:  *profile,
		Session:  session,
		Client:   c,
		Loader:   loader.NewLoader(c, snapshots),
		db:       db,
	}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
