// Package config loads zbook settings from a YAML file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/zarlcorp/zbook/internal/contact"
	"github.com/zarlcorp/zbook/internal/logger"
	"gopkg.in/yaml.v3"
)

// Config holds all zbook configuration.
type Config struct {
	// DataDir holds the encrypted store and the log file.
	DataDir string `yaml:"data_dir"`

	// BirthdayWindow is how many days ahead "birthdays" looks.
	BirthdayWindow int `yaml:"birthday_window"`

	Log logger.Options `yaml:"log"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	dir := DataDir()
	return &Config{
		DataDir:        dir,
		BirthdayWindow: contact.DefaultWindow,
		Log: logger.Options{
			Level:  "info",
			File:   filepath.Join(dir, "zbook.log"),
			Format: "text",
		},
	}
}

// DataDir returns the default data directory for zbook.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d + "/zbook"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zbook"
	}
	return home + "/.local/share/zbook"
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return d + "/zbook/config.yaml"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zbook/config.yaml"
	}
	return home + "/.config/zbook/config.yaml"
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Validate rejects settings the rest of the program cannot use.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("config: data_dir is empty")
	}
	if c.BirthdayWindow < 0 {
		return fmt.Errorf("config: birthday_window must not be negative, got %d", c.BirthdayWindow)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("ZBOOK_DATA_DIR"); v != "" {
		if c.Log.File == filepath.Join(c.DataDir, "zbook.log") {
			c.Log.File = filepath.Join(v, "zbook.log")
		}
		c.DataDir = v
	}
	if v := os.Getenv("ZBOOK_BIRTHDAY_WINDOW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: ZBOOK_BIRTHDAY_WINDOW: %w", err)
		}
		c.BirthdayWindow = n
	}
	if v := os.Getenv("ZBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ZBOOK_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("ZBOOK_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}
