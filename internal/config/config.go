package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	DataDir  string `yaml:"data_dir"`
	DBPath   string `yaml:"db_path"`
	LogPath  string `yaml:"log_path"`
	LogLevel string `yaml:"log_level"`
	Theme    string `yaml:"theme"`

	Notifications bool          `yaml:"notifications"`
	Bell          bool          `yaml:"bell"`
	Sound         bool          `yaml:"sound"`
	Volume        float64       `yaml:"volume"`
	TickInterval  time.Duration `yaml:"tick_interval"`

	DefaultDuration      time.Duration `yaml:"default_duration"`
	DefaultSnoozeMinutes int           `yaml:"default_snooze_minutes"`
}

// DefaultDataDir returns the default data directory path
func DefaultDataDir() string {
	if dir := os.Getenv("DESKTIMER_DATA_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".desktimer"
	}
	return filepath.Join(home, ".local", "share", "desktimer")
}

// Default returns the default configuration
func Default() *Config {
	cfg := base()
	cfg.applyDefaults()
	return cfg
}

func base() *Config {
	return &Config{
		Notifications: true,
		Bell:          true,
	}
}

// DefaultPath returns where the config file is looked up
func DefaultPath() string {
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

// Load reads a YAML configuration file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := base()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir()
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "desktimer.db")
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(c.DataDir, "desktimer.log")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Theme == "" {
		c.Theme = "nord"
	}
	if c.TickInterval <= 0 {
		c.TickInterval = time.Second
	}
	if c.DefaultDuration <= 0 {
		c.DefaultDuration = 10 * time.Minute
	}
	if c.DefaultSnoozeMinutes == 0 {
		c.DefaultSnoozeMinutes = 5
	}
}

// Validate checks the configuration for values the app cannot use
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	if c.DefaultSnoozeMinutes < 1 || c.DefaultSnoozeMinutes > 60 {
		return fmt.Errorf("default_snooze_minutes must be between 1 and 60; got %d", c.DefaultSnoozeMinutes)
	}
	if c.Volume < -10 || c.Volume > 2 {
		return fmt.Errorf("volume must be between -10 and 2; got %g", c.Volume)
	}
	if c.DefaultDuration >= 24*time.Hour {
		return fmt.Errorf("default_duration must be under 24h; got %s", c.DefaultDuration)
	}
	return nil
}
