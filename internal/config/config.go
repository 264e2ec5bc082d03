// Package config loads daypad's YAML config file, overlaid by DAYPAD_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/utils"
)

type StorageConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	// Path is the sqlite file or the diskv directory.
	Path string `mapstructure:"path" yaml:"path"`
	// DSN is a PostgreSQL URL without a password.
	DSN string `mapstructure:"dsn" yaml:"dsn"`
}

type DebounceConfig struct {
	NotesMs int `mapstructure:"notes_ms" yaml:"notes_ms"`
	ZoomMs  int `mapstructure:"zoom_ms" yaml:"zoom_ms"`
}

type FocusConfig struct {
	Minutes int `mapstructure:"minutes" yaml:"minutes"`
}

type CalendarConfig struct {
	WeekStart string `mapstructure:"week_start" yaml:"week_start"`
}

type Config struct {
	Storage  StorageConfig  `mapstructure:"storage" yaml:"storage"`
	Debounce DebounceConfig `mapstructure:"debounce" yaml:"debounce"`
	Focus    FocusConfig    `mapstructure:"focus" yaml:"focus"`
	Calendar CalendarConfig `mapstructure:"calendar" yaml:"calendar"`
	Timezone string         `mapstructure:"timezone" yaml:"timezone"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", constants.BackendSQLite)
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("debounce.notes_ms", constants.NotesDebounce.Milliseconds())
	v.SetDefault("debounce.zoom_ms", constants.ZoomDebounce.Milliseconds())
	v.SetDefault("focus.minutes", constants.DefaultFocusMinutes)
	v.SetDefault("calendar.week_start", constants.DefaultWeekStart)
	v.SetDefault("timezone", constants.DefaultTimezone)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg, _ := decode(newViper())
	return cfg
}

// Load reads path (a missing file is not an error) and applies environment
// overrides such as DAYPAD_STORAGE_BACKEND.
func Load(path string) (*Config, error) {
	expanded, err := utils.ExpandPath(path)
	if err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigFile(expanded)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config %s: %w", expanded, err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", expanded, err)
	}
	return cfg, cfg.Validate()
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Calendar.WeekStart = strings.ToLower(strings.TrimSpace(cfg.Calendar.WeekStart))
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case constants.BackendSQLite, constants.BackendPostgres, constants.BackendDiskv:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend)
	}
	if c.Debounce.NotesMs <= 0 || c.Debounce.ZoomMs <= 0 {
		return errors.New("debounce windows must be positive")
	}
	if c.Focus.Minutes <= 0 {
		return errors.New("focus.minutes must be positive")
	}
	if _, err := utils.ParseWeekStart(c.Calendar.WeekStart); err != nil {
		return fmt.Errorf("calendar.week_start: %w", err)
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("timezone: unknown zone %q", c.Timezone)
	}
	return nil
}

// Save writes c as YAML, creating parent directories.
func Save(path string, c *Config) error {
	expanded, err := utils.ExpandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("storage", map[string]any{"backend": c.Storage.Backend, "path": c.Storage.Path, "dsn": c.Storage.DSN})
	v.Set("debounce", map[string]any{"notes_ms": c.Debounce.NotesMs, "zoom_ms": c.Debounce.ZoomMs})
	v.Set("focus", map[string]any{"minutes": c.Focus.Minutes})
	v.Set("calendar", map[string]any{"week_start": c.Calendar.WeekStart})
	v.Set("timezone", c.Timezone)
	if err := v.WriteConfigAs(expanded); err != nil {
		return fmt.Errorf("writing config to %s: %w", expanded, err)
	}
	return nil
}

func (c *Config) NotesDelay() time.Duration {
	return time.Duration(c.Debounce.NotesMs) * time.Millisecond
}

func (c *Config) ZoomDelay() time.Duration {
	return time.Duration(c.Debounce.ZoomMs) * time.Millisecond
}

func (c *Config) FocusDuration() time.Duration {
	return time.Duration(c.Focus.Minutes) * time.Minute
}

// WeekStart falls back to Sunday for an invalid value; Load rejects those.
func (c *Config) WeekStart() time.Weekday {
	d, err := utils.ParseWeekStart(c.Calendar.WeekStart)
	if err != nil {
		return time.Sunday
	}
	return d
}

// StoragePath returns the configured path or the backend's default.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	if c.Storage.Backend == constants.BackendDiskv {
		return constants.DefaultDiskvPath
	}
	return constants.DefaultDBPath
}
