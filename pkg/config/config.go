// Package config provides configuration loading and management for neurodensity.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"neurodensity/internal/models"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Input parameters
	Input struct {
		// Dir is the folder containing one delimited text file per dataset
		Dir string `yaml:"dir"`

		// StripSpaces derives display names by removing spaces from the
		// raw file name instead of trimming the extension
		StripSpaces bool `yaml:"stripSpaces"`
	} `yaml:"input"`

	// Density estimation parameters
	Density struct {
		// Bins is the side length of the square density grid
		Bins int `yaml:"bins"`

		// Grid holds the kde-grid bounds in microns
		Grid models.Bounds `yaml:"grid"`
	} `yaml:"density"`

	// Plot parameters
	Plot struct {
		// Limits holds the display bounds in microns
		Limits models.Bounds `yaml:"limits"`

		// Levels is the number of contour levels per density field
		Levels int `yaml:"levels"`

		// HTMLReport enables the interactive scatter report
		HTMLReport bool `yaml:"htmlReport"`
	} `yaml:"plot"`

	// Output parameters
	Output struct {
		// Dir is the folder receiving exported figures
		Dir string `yaml:"dir"`

		// Verbose controls the level of progress output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default input parameters
	cfg.Input.Dir = "text"
	cfg.Input.StripSpaces = false

	// Set default density parameters
	cfg.Density.Bins = 256
	cfg.Density.Grid = models.Bounds{XMin: 0, XMax: 700, YMin: -500, YMax: 450}

	// Set default plot parameters
	cfg.Plot.Limits = models.Bounds{XMin: 0, XMax: 700, YMin: -500, YMax: 450}
	cfg.Plot.Levels = 9
	cfg.Plot.HTMLReport = false

	// Set default output parameters
	cfg.Output.Dir = "plots"
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate checks that the configured bounds and constants are usable
func (c *Config) Validate() error {
	if !c.Density.Grid.Valid() {
		return fmt.Errorf("invalid kde grid bounds: x [%g,%g] y [%g,%g]",
			c.Density.Grid.XMin, c.Density.Grid.XMax, c.Density.Grid.YMin, c.Density.Grid.YMax)
	}
	if !c.Plot.Limits.Valid() {
		return fmt.Errorf("invalid plot limits: x [%g,%g] y [%g,%g]",
			c.Plot.Limits.XMin, c.Plot.Limits.XMax, c.Plot.Limits.YMin, c.Plot.Limits.YMax)
	}
	if c.Density.Bins < 2 {
		return fmt.Errorf("density grid needs at least 2 bins, got %d", c.Density.Bins)
	}
	if c.Plot.Levels < 1 {
		return fmt.Errorf("contour level count must be positive, got %d", c.Plot.Levels)
	}
	return nil
}
