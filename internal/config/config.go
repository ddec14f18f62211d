// Package config handles editor configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/latticeforge/internal/engine/lattice"
	"github.com/Faultbox/latticeforge/internal/engine/mesh"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds all editor settings.
type Config struct {
	Model   ModelConfig   `yaml:"model"`
	Lattice LatticeConfig `yaml:"lattice"`
	Blend   BlendConfig   `yaml:"blend"`
	Guide   GuideConfig   `yaml:"guide"`
	Logging LoggingConfig `yaml:"logging"`
}

// ModelConfig selects the base shape and its refinement level.
type ModelConfig struct {
	Shape string `yaml:"shape"`
	Level int    `yaml:"level"` // 0..4
}

// LatticeConfig holds control lattice settings.
type LatticeConfig struct {
	Spans [3]int `yaml:"spans"` // Cells per axis, each >= 1
}

// BlendConfig holds region blend settings. The guide proximity radius is
// fixed at ffd.DefaultRadius.
type BlendConfig struct {
	Factor float64 `yaml:"factor"` // 0..1
}

// GuideConfig holds guide surface sampling settings.
type GuideConfig struct {
	Density int `yaml:"density"` // Barycentric steps per hull edge; <= 1 samples vertices only
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Shape: "box",
			Level: 2,
		},
		Lattice: LatticeConfig{
			Spans: [3]int{2, 2, 2},
		},
		Blend: BlendConfig{
			Factor: 0.5,
		},
		Guide: GuideConfig{
			Density: 0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks value ranges. Shape names are resolved by the mesh package.
func (c *Config) Validate() error {
	if c.Model.Shape == "" {
		return fmt.Errorf("model.shape is empty: %w", ErrInvalidConfig)
	}
	if c.Model.Level < mesh.MinLevel || c.Model.Level > mesh.MaxLevel {
		return fmt.Errorf("model.level %d not in [%d, %d]: %w",
			c.Model.Level, mesh.MinLevel, mesh.MaxLevel, ErrInvalidConfig)
	}
	if err := lattice.Spans(c.Lattice.Spans).Validate(); err != nil {
		return fmt.Errorf("lattice.spans: %w: %w", err, ErrInvalidConfig)
	}
	if c.Blend.Factor < 0 || c.Blend.Factor > 1 {
		return fmt.Errorf("blend.factor %v not in [0, 1]: %w", c.Blend.Factor, ErrInvalidConfig)
	}
	return nil
}
