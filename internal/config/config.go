package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "trajview.yaml"

// Config holds all trajview configuration.
type Config struct {
	// Input is the trajectory file to plot.
	Input string `yaml:"input"`

	// Select is "all", an object index or an object name.
	Select string `yaml:"select"`

	// Axes maps dimensions to X,Y,Z, e.g. "0,1,2". Empty means the default
	// for the file's dimension count.
	Axes string `yaml:"axes"`

	// Watch reloads the input when it changes on disk.
	Watch bool `yaml:"watch"`

	// Theme is auto, light or dark.
	Theme string `yaml:"theme"`

	Logging LoggingConfig `yaml:"logging"`
}

// ValidThemes lists the accepted theme names.
var ValidThemes = []string{"auto", "light", "dark"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Input:  "trajectoryData.json",
		Select: "all",
		Theme:  "auto",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// ErrConfigExists is returned by Save when it would replace an existing file.
var ErrConfigExists = errors.New("config file already exists")

const fileHeader = "# trajview configuration. Flags override environment variables,\n" +
	"# which override this file.\n"

// Save writes the configuration to path as YAML, creating parent
// directories. An existing file is only replaced when overwrite is set.
func (c *Config) Save(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(fileHeader), data...), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TRAJVIEW_INPUT"); v != "" {
		c.Input = v
	}
	if v := os.Getenv("TRAJVIEW_SELECT"); v != "" {
		c.Select = v
	}
	if v := os.Getenv("TRAJVIEW_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if os.Getenv("TRAJVIEW_DARK_MODE") == "1" {
		c.Theme = "dark"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input file not configured")
	}

	validTheme := false
	for _, t := range ValidThemes {
		if c.Theme == t {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("invalid theme: %s (valid: %v)", c.Theme, ValidThemes)
	}

	return c.Logging.Validate()
}
