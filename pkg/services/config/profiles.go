package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/de-tools/eval-atlas/pkg/store/client"
	"gopkg.in/ini.v1"
)

const ProfilesFileName = ".evalatlascfg"

// Profile is one admin API target from the profiles file.
type Profile struct {
	Name  string
	Host  string
	Token string
}

func (p Profile) ClientConfig(timeout time.Duration) client.Config {
	return client.Config{
		Host:    p.Host,
		Timeout: timeout,
	}
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, profile string) (*Profile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// DefaultProfilesPath returns ~/.evalatlascfg.
func DefaultProfilesPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ProfilesFileName), nil
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, profile string) (*Profile, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	host := section.Key("host").String()
	if host == "" {
		return nil, fmt.Errorf("profile %s has no host", profile)
	}

	return &Profile{
		Name:  profile,
		Host:  host,
		Token: section.Key("token").String(),
	}, nil
}
