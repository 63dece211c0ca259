package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}

	if cfg.Trail.DiffuseRadius != 1 {
		t.Errorf("expected diffuse radius 1, got %d", cfg.Trail.DiffuseRadius)
	}
	if cfg.Trail.DecayFactor != 0.97 {
		t.Errorf("expected decay factor 0.97, got %v", cfg.Trail.DecayFactor)
	}
	if cfg.Sensors.Radius != 2 || cfg.Sensors.Distance != 8 {
		t.Errorf("unexpected sensor defaults: %+v", cfg.Sensors)
	}
	if math.Abs(cfg.Derived.SensorAngle-math.Pi/4) > 1e-12 {
		t.Errorf("expected sensor angle pi/4, got %v", cfg.Derived.SensorAngle)
	}
	if math.Abs(cfg.Derived.TurnAngle-math.Pi/12) > 1e-12 {
		t.Errorf("expected turn angle pi/12, got %v", cfg.Derived.TurnAngle)
	}
	if cfg.Derived.KernelArea != 9 {
		t.Errorf("expected kernel area 9, got %d", cfg.Derived.KernelArea)
	}
	if cfg.Derived.CellCount != cfg.Field.Width*cfg.Field.Height {
		t.Errorf("cell count %d does not match field %dx%d", cfg.Derived.CellCount, cfg.Field.Width, cfg.Field.Height)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("field:\n  width: 64\ntrail:\n  mode: dense\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Field.Width != 64 {
		t.Errorf("expected overridden width 64, got %d", cfg.Field.Width)
	}
	// Keys absent from the overlay keep their defaults.
	if cfg.Field.Height != Default().Field.Height {
		t.Errorf("expected default height, got %d", cfg.Field.Height)
	}
	if cfg.Trail.Mode != TrailDense {
		t.Errorf("expected dense mode, got %q", cfg.Trail.Mode)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Field.Width = 0 }},
		{"negative agents", func(c *Config) { c.Agents.Count = -1 }},
		{"nan velocity", func(c *Config) { c.Agents.Velocity = math.NaN() }},
		{"unknown spawn", func(c *Config) { c.Agents.Spawn = "grid" }},
		{"negative ring fraction", func(c *Config) { c.Agents.RingFraction = -0.1 }},
		{"infinite spawn sigma", func(c *Config) { c.Agents.SpawnSigmaFraction = math.Inf(1) }},
		{"negative sensor radius", func(c *Config) { c.Sensors.Radius = -1 }},
		{"negative diffuse radius", func(c *Config) { c.Trail.DiffuseRadius = -2 }},
		{"decay above one", func(c *Config) { c.Trail.DecayFactor = 1.5 }},
		{"deposit too large", func(c *Config) { c.Trail.DepositAmount = 300 }},
		{"unknown mode", func(c *Config) { c.Trail.Mode = "gpu" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Agents.Count = 7
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Agents.Count != 7 {
		t.Errorf("expected 7 agents after reload, got %d", loaded.Agents.Count)
	}
}
