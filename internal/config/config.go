// Package config handles brush and terrain configuration loading.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/heightbrush/internal/brush"
	"github.com/Faultbox/heightbrush/internal/logger"
	"github.com/Faultbox/heightbrush/pkg/math"
)

// Config holds all settings.
type Config struct {
	Brush   brush.Config  `yaml:"brush"`
	Terrain TerrainConfig `yaml:"terrain"`
	Preview PreviewConfig `yaml:"preview"`
	Logging LoggingConfig `yaml:"logging"`
}

// TerrainConfig describes the heightfield created by "brushtool new".
type TerrainConfig struct {
	Resolution int       `yaml:"resolution"`  // samples per side
	WorldSize  math.Vec3 `yaml:"world_size"`  // world extent; y is the nominal height range
	Origin     math.Vec3 `yaml:"origin"`      // world position of sample (0, 0)
	BaseHeight float64   `yaml:"base_height"` // initial height of every sample
}

// PreviewConfig holds PNG preview settings.
type PreviewConfig struct {
	SizeCM     float64 `yaml:"size_cm"`     // image edge length
	ShowRegion bool    `yaml:"show_region"` // outline the last edited region
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Brush: brush.DefaultConfig(),
		Terrain: TerrainConfig{
			Resolution: 513,
			WorldSize:  math.Vec3{X: 1000, Y: 600, Z: 1000},
			Origin:     math.Vec3{},
			BaseHeight: 0,
		},
		Preview: PreviewConfig{
			SizeCM:     15,
			ShowRegion: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the config for values the engine cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Brush.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Terrain.Resolution < 1 {
		errs = append(errs, fmt.Errorf("terrain resolution %d must be at least 1", c.Terrain.Resolution))
	}
	if c.Terrain.WorldSize.X <= 0 || c.Terrain.WorldSize.Z <= 0 {
		errs = append(errs, fmt.Errorf("terrain world size %v must be positive on x and z", c.Terrain.WorldSize))
	}
	if c.Preview.SizeCM <= 0 {
		errs = append(errs, fmt.Errorf("preview size %vcm must be positive", c.Preview.SizeCM))
	}
	if !logger.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Logging.Level))
	}
	return errors.Join(errs...)
}
