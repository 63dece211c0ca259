// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Spawn modes.
const (
	SpawnRing   = "ring"
	SpawnNormal = "normal"
)

// Trail modes.
const (
	TrailSparse = "sparse"
	TrailDense  = "dense"
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Agents    AgentsConfig    `yaml:"agents"`
	Sensors   SensorsConfig   `yaml:"sensors"`
	Steering  SteeringConfig  `yaml:"steering"`
	Trail     TrailConfig     `yaml:"trail"`
	Parallel  ParallelConfig  `yaml:"parallel"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Render    RenderConfig    `yaml:"render"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// FieldConfig holds the trail grid dimensions in cells.
// The field is allocated once and never resized.
type FieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AgentsConfig holds population and placement parameters.
type AgentsConfig struct {
	Count              int     `yaml:"count"`
	Velocity           float64 `yaml:"velocity"`             // cells per tick
	Spawn              string  `yaml:"spawn"`                // ring | normal
	RingFraction       float64 `yaml:"ring_fraction"`        // ring radius = this * min(w, h)
	SpawnSigmaFraction float64 `yaml:"spawn_sigma_fraction"` // normal spawn sigma = this * dimension
}

// SensorsConfig holds the three-sensor geometry.
type SensorsConfig struct {
	Radius   int     `yaml:"radius"`    // half-width of the sampled box in cells
	AngleDeg float64 `yaml:"angle_deg"` // offset of the side sensors from the heading
	Distance float64 `yaml:"distance"`  // distance of the sample points from the agent
}

// SteeringConfig holds the turn step.
type SteeringConfig struct {
	TurnAngleDeg float64 `yaml:"turn_angle_deg"`
}

// TrailConfig holds deposit, diffusion and decay parameters.
type TrailConfig struct {
	DiffuseRadius int     `yaml:"diffuse_radius"` // box kernel half-width (1 = 3x3)
	DecayFactor   float64 `yaml:"decay_factor"`   // value = floor(value * factor) each tick
	DepositAmount int     `yaml:"deposit_amount"` // saturating add per agent per tick
	Mode          string  `yaml:"mode"`           // sparse | dense
}

// ParallelConfig holds worker pool settings for the sense/move phase.
type ParallelConfig struct {
	Threshold int `yaml:"threshold"` // minimum agent count for parallel processing
	Workers   int `yaml:"workers"`   // 0 = GOMAXPROCS
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // ticks per stats window
	PerfWindow  int `yaml:"perf_window"`  // ticks averaged by the perf collector
}

// RenderConfig holds drawing parameters for the graphical mode.
type RenderConfig struct {
	CellSize      int  `yaml:"cell_size"`      // screen pixels per cell at zoom 1
	SensorOverlay bool `yaml:"sensor_overlay"` // draw sensor boxes and readings
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SensorAngle float64 // Sensors.AngleDeg in radians
	TurnAngle   float64 // Steering.TurnAngleDeg in radians
	KernelArea  int     // (2*DiffuseRadius+1)^2
	CellCount   int     // Field.Width * Field.Height
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ComputeDerived()

	return cfg, nil
}

// Validate reports the first invalid parameter, wrapped around ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("%w: field size %dx%d must be positive", ErrInvalidConfig, c.Field.Width, c.Field.Height)
	case c.Agents.Count < 0:
		return fmt.Errorf("%w: agents.count %d is negative", ErrInvalidConfig, c.Agents.Count)
	case !finite(c.Agents.Velocity) || c.Agents.Velocity < 0:
		return fmt.Errorf("%w: agents.velocity %v", ErrInvalidConfig, c.Agents.Velocity)
	case c.Agents.Spawn != SpawnRing && c.Agents.Spawn != SpawnNormal:
		return fmt.Errorf("%w: unknown agents.spawn %q", ErrInvalidConfig, c.Agents.Spawn)
	case !finite(c.Agents.RingFraction) || c.Agents.RingFraction < 0:
		return fmt.Errorf("%w: agents.ring_fraction %v", ErrInvalidConfig, c.Agents.RingFraction)
	case !finite(c.Agents.SpawnSigmaFraction) || c.Agents.SpawnSigmaFraction < 0:
		return fmt.Errorf("%w: agents.spawn_sigma_fraction %v", ErrInvalidConfig, c.Agents.SpawnSigmaFraction)
	case c.Sensors.Radius < 0:
		return fmt.Errorf("%w: sensors.radius %d is negative", ErrInvalidConfig, c.Sensors.Radius)
	case !finite(c.Sensors.AngleDeg) || !finite(c.Sensors.Distance):
		return fmt.Errorf("%w: sensor geometry must be finite", ErrInvalidConfig)
	case !finite(c.Steering.TurnAngleDeg):
		return fmt.Errorf("%w: steering.turn_angle_deg must be finite", ErrInvalidConfig)
	case c.Trail.DiffuseRadius < 0:
		return fmt.Errorf("%w: trail.diffuse_radius %d is negative", ErrInvalidConfig, c.Trail.DiffuseRadius)
	case !finite(c.Trail.DecayFactor) || c.Trail.DecayFactor < 0 || c.Trail.DecayFactor > 1:
		return fmt.Errorf("%w: trail.decay_factor %v outside [0,1]", ErrInvalidConfig, c.Trail.DecayFactor)
	case c.Trail.DepositAmount < 0 || c.Trail.DepositAmount > 255:
		return fmt.Errorf("%w: trail.deposit_amount %d outside [0,255]", ErrInvalidConfig, c.Trail.DepositAmount)
	case c.Trail.Mode != TrailSparse && c.Trail.Mode != TrailDense:
		return fmt.Errorf("%w: unknown trail.mode %q", ErrInvalidConfig, c.Trail.Mode)
	}
	return nil
}

// ComputeDerived calculates values derived from loaded config.
// Call again after mutating a loaded config in code.
func (c *Config) ComputeDerived() {
	c.Derived.SensorAngle = c.Sensors.AngleDeg * math.Pi / 180
	c.Derived.TurnAngle = c.Steering.TurnAngleDeg * math.Pi / 180
	k := 2*c.Trail.DiffuseRadius + 1
	c.Derived.KernelArea = k * k
	c.Derived.CellCount = c.Field.Width * c.Field.Height
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
