package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "EVALATLAS"

type ServerSettings struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// SessionIdleTimeout closes dashboard sessions nobody has used for this
	// long. Zero keeps sessions until they are deleted or the server stops.
	SessionIdleTimeout time.Duration `mapstructure:"session_idle_timeout"`
}

func (s ServerSettings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Settings tunes the console. Every field has a default, so the settings file
// is optional.
type Settings struct {
	PollInterval   time.Duration  `mapstructure:"poll_interval"`
	ProgressStep   time.Duration  `mapstructure:"progress_step"`
	SettleDelay    time.Duration  `mapstructure:"settle_delay"`
	RequestTimeout time.Duration  `mapstructure:"request_timeout"`
	CachePath      string         `mapstructure:"cache_path"`
	Server         ServerSettings `mapstructure:"server"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("poll_interval", 3*time.Second)
	v.SetDefault("progress_step", 800*time.Millisecond)
	v.SetDefault("settle_delay", 500*time.Millisecond)
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("cache_path", "eval-atlas.db")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.session_idle_timeout", 30*time.Minute)
}

// LoadSettings reads settingsPath when given, then applies EVALATLAS_*
// environment overrides (EVALATLAS_SERVER_PORT for server.port).
func LoadSettings(settingsPath string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if settingsPath != "" {
		v.SetConfigFile(settingsPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *Settings) Validate() error {
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"poll_interval", s.PollInterval},
		{"progress_step", s.ProgressStep},
		{"request_timeout", s.RequestTimeout},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.value)
		}
	}
	if s.SettleDelay < 0 {
		return fmt.Errorf("settle_delay must not be negative, got %s", s.SettleDelay)
	}
	if s.CachePath == "" {
		return fmt.Errorf("cache_path is required")
	}
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", s.Server.Port)
	}
	if s.Server.SessionIdleTimeout < 0 {
		return fmt.Errorf("server.session_idle_timeout must not be negative, got %s", s.Server.SessionIdleTimeout)
	}
	return nil
}
