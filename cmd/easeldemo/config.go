package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Range bounds a randomly generated value.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// DemoConfig controls the random shape population.
type DemoConfig struct {
	Count            int      `yaml:"count"`
	DimensionRange   Range    `yaml:"dimensionRange"`
	PositionRange    Range    `yaml:"positionRange"`
	BorderWidthRange Range    `yaml:"borderWidthRange"`
	Jitter           float64  `yaml:"jitter"`
	ImageURLs        []string `yaml:"imageURLs,omitempty"`
	Seed             uint64   `yaml:"seed,omitempty"`
}

// Config represents the optional easel.yaml configuration.
type Config struct {
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Frames int        `yaml:"frames"`
	Demo   DemoConfig `yaml:"demo"`
}

// DefaultConfig returns the configuration used when no easel.yaml exists.
func DefaultConfig() Config {
	return Config{
		Width:  800,
		Height: 600,
		Frames: 60,
		Demo: DemoConfig{
			Count:            40,
			DimensionRange:   Range{Min: 20, Max: 120},
			PositionRange:    Range{Min: 0, Max: 600},
			BorderWidthRange: Range{Min: 0, Max: 4},
			Jitter:           0.3,
		},
	}
}

// LoadOptional reads the config file if present, falling back to defaults.
func LoadOptional(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}
