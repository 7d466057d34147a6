// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Field       FieldConfig       `yaml:"field"`
	Forces      ForcesConfig      `yaml:"forces"`
	Collision   CollisionConfig   `yaml:"collision"`
	Integration IntegrationConfig `yaml:"integration"`
	Bins        BinsConfig        `yaml:"bins"`
	Spawn       SpawnConfig       `yaml:"spawn"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// FieldConfig holds simulation field dimensions and population.
// Field coordinates are origin-centered: x in [-width/2, width/2).
type FieldConfig struct {
	Width         int `yaml:"width"`  // Field width in world units (0 = use screen width)
	Height        int `yaml:"height"` // Field height in world units (0 = use screen height)
	ParticleCount int `yaml:"particle_count"`
}

// ForcesConfig holds the pairwise and centering force parameters.
// A range of 0 means unlimited.
type ForcesConfig struct {
	AttractionStrength float64 `yaml:"attraction_strength"`
	AttractionRange    float64 `yaml:"attraction_range"`
	RepulsionStrength  float64 `yaml:"repulsion_strength"`
	RepulsionRange     float64 `yaml:"repulsion_range"`
	CenterStrength     float64 `yaml:"center_strength"`
}

// CollisionConfig holds pairwise collision response parameters.
type CollisionConfig struct {
	ParticleRadius    float64 `yaml:"particle_radius"`
	CollisionResponse float64 `yaml:"collision_response"`
}

// IntegrationConfig holds time stepping and stability clamp parameters.
// A max of 0 means unclamped.
type IntegrationConfig struct {
	Speed           float64 `yaml:"speed"`
	Momentum        float64 `yaml:"momentum"` // per-step velocity damping factor
	MaxAcceleration float64 `yaml:"max_acceleration"`
	MaxVelocity     float64 `yaml:"max_velocity"`
}

// BinsConfig holds spatial bin grid parameters.
// Grid dimensions are derived: ceil(field extent / bin size) per axis.
type BinsConfig struct {
	SizeX float64 `yaml:"size_x"`
	SizeY float64 `yaml:"size_y"`
}

// SpawnConfig holds initial particle placement parameters.
type SpawnConfig struct {
	Pattern          string  `yaml:"pattern"`           // uniform | disc | clusters
	DiscRadius       float64 `yaml:"disc_radius"`       // 0 = quarter of the smaller field extent
	ClusterScale     float64 `yaml:"cluster_scale"`     // noise frequency for cluster placement
	ClusterThreshold float64 `yaml:"cluster_threshold"` // noise value above which a spot is populated
	MaxSpeed         float64 `yaml:"max_speed"`         // initial velocity components drawn from [-v, v]
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // steps per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FieldW32 float32 // effective field width as float32
	FieldH32 float32 // effective field height as float32
	NumBinsX int     // bin grid columns
	NumBinsY int     // bin grid rows
	NumBins  int     // NumBinsX * NumBinsY
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

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the simulation cannot run with.
// Malformed bin or field geometry must fail here rather than produce garbage.
func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("config: screen dimensions must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Field.Width < 0 || c.Field.Height < 0 {
		return fmt.Errorf("config: field dimensions must not be negative, got %dx%d", c.Field.Width, c.Field.Height)
	}
	if c.Field.ParticleCount <= 0 {
		return fmt.Errorf("config: particle_count must be positive, got %d", c.Field.ParticleCount)
	}
	if c.Bins.SizeX <= 0 || c.Bins.SizeY <= 0 {
		return fmt.Errorf("config: bin size must be positive, got %gx%g", c.Bins.SizeX, c.Bins.SizeY)
	}
	if c.Forces.AttractionRange < 0 || c.Forces.RepulsionRange < 0 {
		return fmt.Errorf("config: force ranges must not be negative")
	}
	if c.Collision.ParticleRadius < 0 {
		return fmt.Errorf("config: particle_radius must not be negative, got %g", c.Collision.ParticleRadius)
	}
	if c.Integration.MaxAcceleration < 0 || c.Integration.MaxVelocity < 0 {
		return fmt.Errorf("config: clamp limits must not be negative")
	}
	switch c.Spawn.Pattern {
	case "uniform", "disc", "clusters":
	default:
		return fmt.Errorf("config: unknown spawn pattern %q", c.Spawn.Pattern)
	}
	if c.Telemetry.StatsWindow <= 0 {
		return fmt.Errorf("config: stats_window must be positive, got %d", c.Telemetry.StatsWindow)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// Field dimensions default to screen size if not specified
	fieldW := c.Field.Width
	if fieldW == 0 {
		fieldW = c.Screen.Width
	}
	fieldH := c.Field.Height
	if fieldH == 0 {
		fieldH = c.Screen.Height
	}
	c.Derived.FieldW32 = float32(fieldW)
	c.Derived.FieldH32 = float32(fieldH)

	// Bin grid covers the full field; the last row/column may overhang
	c.Derived.NumBinsX = int(math.Ceil(float64(fieldW) / c.Bins.SizeX))
	c.Derived.NumBinsY = int(math.Ceil(float64(fieldH) / c.Bins.SizeY))
	c.Derived.NumBins = c.Derived.NumBinsX * c.Derived.NumBinsY
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
