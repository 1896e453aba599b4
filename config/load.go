package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file.
// Flag overrides are applied by the command layer on top of the result.
// An explicit path must exist; the implicit search tolerates absence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	if err := loadFromFile(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./handcast.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Handcast")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Handcast")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "handcast")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "handcast")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate rejects values outside their working ranges.
func (c *Config) Validate() error {
	if c.Game.MinConfidence < 0 || c.Game.MinConfidence > 1 {
		return fmt.Errorf("game.min_confidence must be in [0,1], got %v", c.Game.MinConfidence)
	}
	if !c.Game.Script && c.Feed.Listen == "" {
		return fmt.Errorf("feed.listen must be set when the script source is disabled")
	}
	return nil
}
