// Package config handles game configuration loading and management.
package config

import (
	"github.com/avindel/handcast/spell"
)

// Config holds all game settings.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Feed    FeedConfig    `yaml:"feed"`
	Audio   AudioConfig   `yaml:"audio"`
	Logging LoggingConfig `yaml:"logging"`

	// Spells overrides tuning values of the built-in spell catalog,
	// keyed by spell id
	Spells map[spell.ID]spell.Override `yaml:"spells"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	// MinConfidence is the detection score below which a frame counts
	// as no hand
	MinConfidence float64 `yaml:"min_confidence"`

	// Script selects the built-in demo source instead of the TCP feed
	Script bool `yaml:"script"`
}

// FeedConfig holds pose feed settings.
type FeedConfig struct {
	// Listen is the TCP address the pose feed binds to
	Listen string `yaml:"listen"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Game: GameConfig{
			MinConfidence: 0.5,
			Script:        false,
		},
		Feed: FeedConfig{
			Listen: "127.0.0.1:7810",
		},
		Audio: AudioConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "handcast.log",
		},
	}
}
