// Package config handles configuration loading and shared data structures.
package config

import (
	"os"

	"github.com/finwatch/sharkmap/internal/geo"
	"github.com/finwatch/sharkmap/internal/predict"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Attribution string   `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Regions     []Region `yaml:"regions" json:"regions"`
	DefaultKm   float64  `yaml:"default_km,omitempty" json:"default_km,omitempty"`

	// Overrides for the built-in estimator tables; empty means defaults.
	Hotspots    []predict.Hotspot    `yaml:"hotspots,omitempty" json:"-"`
	LandRegions []predict.LandRegion `yaml:"land_regions,omitempty" json:"-"`
}

// Region represents a named preset area points can be generated for.
type Region struct {
	Index *int `yaml:"index,omitempty" json:"index,omitempty"`

	Name        string          `yaml:"name" json:"name"`
	Aliases     []string        `yaml:"aliases,omitempty" json:"-"`
	Attribution string          `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	BBox        geo.BoundingBox `yaml:"bbox" json:"bbox"`
	Km          float64         `yaml:"km,omitempty" json:"km"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Estimator builds the likelihood estimator from the config overrides,
// falling back to the built-in tables when a section is empty.
func (c *Config) Estimator() *predict.Estimator {
	e := predict.DefaultEstimator()
	if len(c.Hotspots) > 0 {
		e.Hotspots = c.Hotspots
	}
	if len(c.LandRegions) > 0 {
		e.LandRegions = c.LandRegions
	}
	return e
}
