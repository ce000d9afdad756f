package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies the documented default values.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Input.Dir != "text" {
		t.Errorf("Expected default input dir %q, got %q", "text", cfg.Input.Dir)
	}
	if cfg.Output.Dir != "plots" {
		t.Errorf("Expected default output dir %q, got %q", "plots", cfg.Output.Dir)
	}
	if cfg.Density.Bins != 256 {
		t.Errorf("Expected 256 bins, got %d", cfg.Density.Bins)
	}
	if cfg.Plot.Levels != 9 {
		t.Errorf("Expected 9 contour levels, got %d", cfg.Plot.Levels)
	}

	grid := cfg.Density.Grid
	if grid.XMin != 0 || grid.XMax != 700 || grid.YMin != -500 || grid.YMax != 450 {
		t.Errorf("Unexpected default kde grid: %+v", grid)
	}
	if cfg.Plot.Limits != grid {
		t.Errorf("Expected plot limits to default to the kde grid, got %+v", cfg.Plot.Limits)
	}
	if cfg.Plot.HTMLReport {
		t.Error("Expected HTML report disabled by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to validate, got %v", err)
	}
}

// TestLoadConfigMissingFile verifies the defaults fallback.
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(os.TempDir(), "no-such-neurodensity-config.yaml"))
	if err != nil {
		t.Fatalf("Expected defaults for missing file, got error: %v", err)
	}
	if cfg.Density.Bins != 256 {
		t.Errorf("Expected default bins 256, got %d", cfg.Density.Bins)
	}
}

// TestSaveAndLoadConfig verifies the YAML round trip.
func TestSaveAndLoadConfig(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	cfg := DefaultConfig()
	cfg.Input.Dir = "coordinates"
	cfg.Density.Bins = 128
	cfg.Plot.Limits.YMin = -250
	cfg.Plot.HTMLReport = true

	path := filepath.Join(tempDir, "nested", "config.yaml")
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Input.Dir != "coordinates" {
		t.Errorf("Expected input dir %q, got %q", "coordinates", loaded.Input.Dir)
	}
	if loaded.Density.Bins != 128 {
		t.Errorf("Expected 128 bins, got %d", loaded.Density.Bins)
	}
	if loaded.Plot.Limits.YMin != -250 {
		t.Errorf("Expected y limit -250, got %g", loaded.Plot.Limits.YMin)
	}
	if !loaded.Plot.HTMLReport {
		t.Error("Expected HTML report enabled after round trip")
	}
}

// TestValidate verifies rejection of unusable configurations.
func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"inverted grid", func(c *Config) { c.Density.Grid.XMin = 800 }},
		{"inverted limits", func(c *Config) { c.Plot.Limits.YMax = -600 }},
		{"single bin", func(c *Config) { c.Density.Bins = 1 }},
		{"no levels", func(c *Config) { c.Plot.Levels = 0 }},
	}

	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error, got nil", tc.name)
		}
	}
}
