package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings holds CLI preferences. Precedence, lowest first: defaults, the
// TOML file, .env, process environment, command-line flags.
type Settings struct {
	General GeneralSettings `toml:"general"`
	Logging LoggingSettings `toml:"logging"`
	Output  OutputSettings  `toml:"output"`
	Cache   CacheSettings   `toml:"cache"`
}

// GeneralSettings holds default input files.
type GeneralSettings struct {
	ProfilePath string `toml:"profile,omitempty" env:"FIREPLAN_PROFILE"`
	RulesPath   string `toml:"rules,omitempty" env:"FIREPLAN_RULES"`
}

// LoggingSettings controls the slog handler.
type LoggingSettings struct {
	Level  string `toml:"level" env:"FIREPLAN_LOG_LEVEL"`
	Format string `toml:"format" env:"FIREPLAN_LOG_FORMAT"`
}

// OutputSettings controls report rendering.
type OutputSettings struct {
	Format      string `toml:"format" env:"FIREPLAN_FORMAT"`
	RealDollars bool   `toml:"real_dollars" env:"FIREPLAN_REAL_DOLLARS"`
}

// CacheSettings controls the in-process result cache.
type CacheSettings struct {
	Enabled    bool `toml:"enabled" env:"FIREPLAN_CACHE"`
	TTLMinutes int  `toml:"ttl_minutes" env:"FIREPLAN_CACHE_TTL_MINUTES"`
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		Logging: LoggingSettings{Level: "warn", Format: "text"},
		Output:  OutputSettings{Format: "console"},
		Cache:   CacheSettings{Enabled: true, TTLMinutes: 10},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fireplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fireplan")
}

// ConfigPath returns the full path to the settings file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadSettings reads the settings file at path (ConfigPath when empty),
// returning defaults if it does not exist, then applies environment
// overrides.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parsing settings: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return s, fmt.Errorf("reading settings: %w", err)
	}

	if err := ApplyEnv(&s); err != nil {
		return s, err
	}
	return s, nil
}

// ApplyEnv loads .env files (missing files are ignored) and overlays
// FIREPLAN_* variables on s.
func ApplyEnv(s *Settings, dotenvFiles ...string) error {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	if err := env.Parse(s); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// SaveSettings writes s to path (ConfigPath when empty).
func SaveSettings(s Settings, path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating settings file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(s)
}
