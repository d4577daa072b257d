package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	profiles := writeFile(t, dir, "profiles.ini", `
[DEFAULT]
host = admin.example.com
token = t-default

[staging]
host = https://staging.example.com
token = t-staging
`)
	settings := writeFile(t, dir, "settings.yaml", "cache_path: "+filepath.Join(dir, "cache.db")+"\n")

	tests := []struct {
		name        string
		opts        Options
		wantProfile string
		wantToken   string
		wantErr     string
	}{
		{
			name:        "DefaultProfile",
			opts:        Options{ProfilesFile: profiles, SettingsFile: settings},
			wantProfile: "DEFAULT",
			wantToken:   "t-default",
		},
		{
			name:        "NamedProfile",
			opts:        Options{Profile: "staging", ProfilesFile: profiles, SettingsFile: settings},
			wantProfile: "staging",
			wantToken:   "t-staging",
		},
		{
			name:    "UnknownProfile",
			opts:    Options{Profile: "prod", ProfilesFile: profiles, SettingsFile: settings},
			wantErr: "profile prod not found",
		},
		{
			name:    "MissingProfilesFile",
			opts:    Options{ProfilesFile: filepath.Join(dir, "missing.ini"), SettingsFile: settings},
			wantErr: "failed to create profile registry",
		},
		{
			name:    "MissingSettingsFile",
			opts:    Options{ProfilesFile: profiles, SettingsFile: filepath.Join(dir, "missing.yaml")},
			wantErr: "failed to load settings",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, err := Open(context.Background(), tc.opts)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			defer func() { assert.NoError(t, a.Close()) }()

			assert.Equal(t, tc.wantProfile, a.Profile.Name)
			assert.Equal(t, tc.wantToken, a.Session.Token())
			assert.NotNil(t, a.Client)

			snapshots, err := a.Loader.CachedRuns(context.Background())
			require.NoError(t, err)
			assert.Empty(t, snapshots)
		})
	}
}
