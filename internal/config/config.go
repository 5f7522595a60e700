// Package config defines the yaml configuration surface and the named
// presets that seed a simulation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/partisim/internal/forces"
	"github.com/san-kum/partisim/internal/vec"
)

const (
	DefaultDt           = 1.0 / 60.0
	DefaultDuration     = 10.0
	DefaultMaxParticles = 1000
	DefaultMaxVelocity  = 100.0
)

type Config struct {
	Preset       string  `yaml:"preset,omitempty"`
	Dt           float64 `yaml:"dt"`
	Duration     float64 `yaml:"duration"`
	Seed         int64   `yaml:"seed"`
	MaxParticles int     `yaml:"max_particles"`
	InitialCount int     `yaml:"initial_count"`
	SpawnRate    float64 `yaml:"spawn_rate"`
	Integrator   string  `yaml:"integrator"`
	MaxVelocity  float64 `yaml:"max_velocity"`

	Boundary   BoundaryConfig  `yaml:"boundary"`
	Spatial    SpatialConfig   `yaml:"spatial"`
	Spawn      SpawnConfig     `yaml:"spawn"`
	Forces     ForceConfig     `yaml:"forces"`
	Collisions CollisionConfig `yaml:"collisions"`
}

type BoundaryConfig struct {
	Policy      string     `yaml:"policy"`
	Min         [2]float64 `yaml:"min"`
	Max         [2]float64 `yaml:"max"`
	Restitution float64    `yaml:"restitution"`
}

func (b BoundaryConfig) Rect() vec.Rect {
	return vec.NewRect(b.Min[0], b.Min[1], b.Max[0], b.Max[1])
}

type SpatialConfig struct {
	// Strategy is "grid", "quadtree" or "none".
	Strategy   string  `yaml:"strategy"`
	CellSize   float64 `yaml:"cell_size"`
	MaxPerLeaf int     `yaml:"max_per_leaf"`
	MaxDepth   int     `yaml:"max_depth"`
}

type SpawnConfig struct {
	Area          AreaConfig      `yaml:"area"`
	VelocityMin   [2]float64      `yaml:"velocity_min"`
	VelocityMax   [2]float64      `yaml:"velocity_max"`
	Mass          float64         `yaml:"mass"`
	MassVariation float64         `yaml:"mass_variation"`
	Charge        float64         `yaml:"charge"`
	Size          float64         `yaml:"size"`
	SizeVariation float64         `yaml:"size_variation"`
	// Lifespan of 0 means unbounded.
	Lifespan       float64         `yaml:"lifespan"`
	SpeciesWeights map[int]float64 `yaml:"species_weights"`
}

type AreaConfig struct {
	// Kind is "point", "circle", "rect" or "ring".
	Kind   string     `yaml:"kind"`
	Center [2]float64 `yaml:"center,omitempty"`
	Radius float64    `yaml:"radius,omitempty"`
	Inner  float64    `yaml:"inner,omitempty"`
	Outer  float64    `yaml:"outer,omitempty"`
	Min    [2]float64 `yaml:"min,omitempty"`
	Max    [2]float64 `yaml:"max,omitempty"`
}

type ForceConfig struct {
	Global       []LawConfig         `yaml:"global,omitempty"`
	Defaults     []LawConfig         `yaml:"defaults,omitempty"`
	Interactions []InteractionConfig `yaml:"interactions,omitempty"`
}

type InteractionConfig struct {
	A    int         `yaml:"a"`
	B    int         `yaml:"b"`
	Laws []LawConfig `yaml:"laws"`
}

type CollisionConfig struct {
	Enable      bool    `yaml:"enable"`
	Restitution float64 `yaml:"restitution"`
}

// LawConfig is the yaml shape of one force-law descriptor. Type picks
// the law; only the fields that law uses are read.
type LawConfig struct {
	Type string `yaml:"type"`

	Strength    float64    `yaml:"strength,omitempty"`
	MinDistance float64    `yaml:"min_distance,omitempty"`
	MaxDistance float64    `yaml:"max_distance,omitempty"`
	Epsilon     float64    `yaml:"epsilon,omitempty"`
	Sigma       float64    `yaml:"sigma,omitempty"`
	Coefficient float64    `yaml:"coefficient,omitempty"`
	Intensity   float64    `yaml:"intensity,omitempty"`
	Center      [2]float64 `yaml:"center,omitempty"`
	RestLength  float64    `yaml:"rest_length,omitempty"`
	Stiffness   float64    `yaml:"stiffness,omitempty"`
	Damping     float64    `yaml:"damping,omitempty"`

	SeparationRadius   float64 `yaml:"separation_radius,omitempty"`
	AlignmentRadius    float64 `yaml:"alignment_radius,omitempty"`
	CohesionRadius     float64 `yaml:"cohesion_radius,omitempty"`
	SeparationStrength float64 `yaml:"separation_strength,omitempty"`
	AlignmentStrength  float64 `yaml:"alignment_strength,omitempty"`
	CohesionStrength   float64 `yaml:"cohesion_strength,omitempty"`
}

// Build constructs the force law this config describes.
func (lc LawConfig) Build() (forces.Law, error) {
	switch lc.Type {
	case "gravity":
		return forces.Gravity{Strength: lc.Strength, MinDistance: lc.MinDistance}, nil
	case "electromagnetic":
		return forces.ElectroMagnetic{Strength: lc.Strength, MinDistance: lc.MinDistance}, nil
	case "lennard_jones":
		return forces.LennardJones{Epsilon: lc.Epsilon, Sigma: lc.Sigma}, nil
	case "damping":
		return forces.Damping{Coefficient: lc.Coefficient}, nil
	case "brownian":
		return forces.Brownian{Intensity: lc.Intensity}, nil
	case "attraction":
		return forces.Attraction{Strength: lc.Strength, MaxDistance: lc.MaxDistance}, nil
	case "repulsion":
		return forces.Repulsion{Strength: lc.Strength, MaxDistance: lc.MaxDistance}, nil
	case "vortex":
		return forces.Vortex{
			Center:      vec.New(lc.Center[0], lc.Center[1]),
			Strength:    lc.Strength,
			MaxDistance: lc.MaxDistance,
		}, nil
	case "spring":
		return forces.Spring{
			RestLength: lc.RestLength,
			Stiffness:  lc.Stiffness,
			Damping:    lc.Damping,
		}, nil
	case "flocking":
		return forces.Flocking{
			SeparationRadius:   lc.SeparationRadius,
			AlignmentRadius:    lc.AlignmentRadius,
			CohesionRadius:     lc.CohesionRadius,
			SeparationStrength: lc.SeparationStrength,
			AlignmentStrength:  lc.AlignmentStrength,
			CohesionStrength:   lc.CohesionStrength,
		}, nil
	default:
		return nil, fmt.Errorf("unknown force law %q", lc.Type)
	}
}

// BuildMatrix assembles the interaction matrix described by the force
// section.
func (fc ForceConfig) BuildMatrix() (*forces.Matrix, error) {
	m := forces.NewMatrix()
	if fc.Defaults != nil {
		defaults := make([]forces.Law, 0, len(fc.Defaults))
		for _, lc := range fc.Defaults {
			law, err := lc.Build()
			if err != nil {
				return nil, fmt.Errorf("defaults: %w", err)
			}
			defaults = append(defaults, law)
		}
		m.SetDefaults(defaults...)
	}
	for _, ic := range fc.Interactions {
		for _, lc := range ic.Laws {
			law, err := lc.Build()
			if err != nil {
				return nil, fmt.Errorf("interaction (%d,%d): %w", ic.A, ic.B, err)
			}
			m.Add(ic.A, ic.B, law)
		}
	}
	return m, nil
}

// BuildGlobal assembles the global force list.
func (fc ForceConfig) BuildGlobal() ([]forces.Law, error) {
	global := make([]forces.Law, 0, len(fc.Global))
	for _, lc := range fc.Global {
		law, err := lc.Build()
		if err != nil {
			return nil, fmt.Errorf("global: %w", err)
		}
		global = append(global, law)
	}
	return global, nil
}

func DefaultConfig() *Config {
	return &Config{
		Dt:           DefaultDt,
		Duration:     DefaultDuration,
		MaxParticles: DefaultMaxParticles,
		InitialCount: 100,
		Integrator:   "verlet",
		MaxVelocity:  DefaultMaxVelocity,
		Boundary: BoundaryConfig{
			Policy:      "reflective",
			Min:         [2]float64{-250, -250},
			Max:         [2]float64{250, 250},
			Restitution: 0.8,
		},
		Spatial: SpatialConfig{
			Strategy:   "grid",
			CellSize:   25,
			MaxPerLeaf: 10,
			MaxDepth:   8,
		},
		Spawn: SpawnConfig{
			Area: AreaConfig{
				Kind:   "circle",
				Radius: 100,
			},
			VelocityMin:    [2]float64{-10, -10},
			VelocityMax:    [2]float64{10, 10},
			Mass:           1,
			MassVariation:  0.1,
			Size:           2,
			SizeVariation:  0.2,
			SpeciesWeights: map[int]float64{0: 1},
		},
		Collisions: CollisionConfig{Restitution: 0.8},
	}
}

// Clone returns an independent copy. Mutating the clone never touches
// the receiver's nested slices or maps.
func (c *Config) Clone() *Config {
	out := *c
	if c.Spawn.SpeciesWeights != nil {
		out.Spawn.SpeciesWeights = make(map[int]float64, len(c.Spawn.SpeciesWeights))
		for k, v := range c.Spawn.SpeciesWeights {
			out.Spawn.SpeciesWeights[k] = v
		}
	}
	out.Forces.Global = append([]LawConfig(nil), c.Forces.Global...)
	out.Forces.Defaults = append([]LawConfig(nil), c.Forces.Defaults...)
	if c.Forces.Interactions != nil {
		out.Forces.Interactions = make([]InteractionConfig, len(c.Forces.Interactions))
		for i, ic := range c.Forces.Interactions {
			ic.Laws = append([]LawConfig(nil), ic.Laws...)
			out.Forces.Interactions[i] = ic
		}
	}
	return &out
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.MaxParticles < 1 {
		return fmt.Errorf("max_particles must be at least 1, got %d", c.MaxParticles)
	}
	if c.InitialCount < 0 {
		return fmt.Errorf("initial_count must not be negative, got %d", c.InitialCount)
	}
	switch c.Integrator {
	case "euler", "verlet", "rk4":
	default:
		return fmt.Errorf("unknown integrator %q", c.Integrator)
	}
	switch c.Spatial.Strategy {
	case "grid", "quadtree", "none", "":
	default:
		return fmt.Errorf("unknown spatial strategy %q", c.Spatial.Strategy)
	}
	b := c.Boundary
	if b.Min[0] >= b.Max[0] || b.Min[1] >= b.Max[1] {
		return fmt.Errorf("boundary min must be below max")
	}
	return nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
