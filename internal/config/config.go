// Package config loads sunmap settings from a TOML file.
//
// Every field has a sensible default, so a missing or partial file is fine:
// Load starts from Default and overlays whatever the file provides. Values
// are normalized the same way the session normalizes them (threshold
// clamped to [0, 255], footprint dimensions kept positive).
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/greenshed/sunmap/internal/exposure"
)

// Config holds the session defaults for builds and exports.
type Config struct {
	// Threshold is the brightness above which a pixel counts as sunny.
	Threshold int `toml:"threshold"`

	// ChunkRows and Workers tune the aggregation pass.
	ChunkRows int `toml:"chunk_rows"`
	Workers   int `toml:"workers"`

	// BedWidthFeet and BedHeightFeet describe the candidate bed in
	// real-world units; the fixed scene scale converts them to pixels.
	BedWidthFeet  float64 `toml:"bed_width_feet"`
	BedHeightFeet float64 `toml:"bed_height_feet"`

	// ExportStyle is "gray" or "heat"; ExportScale resizes exported maps.
	ExportStyle string  `toml:"export_style"`
	ExportScale float64 `toml:"export_scale"`

	// Legend appends a gradient legend to exported heat maps.
	Legend bool `toml:"legend"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Threshold:     exposure.DefaultThreshold,
		ChunkRows:     exposure.DefaultChunkRows,
		Workers:       1,
		BedWidthFeet:  8,
		BedHeightFeet: 4,
		ExportStyle:   "heat",
		ExportScale:   1,
		Legend:        true,
	}
}

// Load reads the TOML file at path over the defaults. An empty path returns
// Default unchanged; a path that does not exist is an error, since the user
// asked for it explicitly.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return cfg, fmt.Errorf("config file: %w", err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.Threshold = exposure.ClampThreshold(c.Threshold)
	if c.ChunkRows <= 0 {
		c.ChunkRows = exposure.DefaultChunkRows
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.BedWidthFeet <= 0 {
		c.BedWidthFeet = 8
	}
	if c.BedHeightFeet <= 0 {
		c.BedHeightFeet = 4
	}
	if c.ExportScale <= 0 {
		c.ExportScale = 1
	}
	if c.ExportStyle == "" {
		c.ExportStyle = "heat"
	}
}
