package config

import "sort"

// Presets are self-contained starting configurations. Each one fully
// describes the force setup and spawn distribution of a named scenario.
var Presets = map[string]*Config{
	"particle_life": {
		Dt: DefaultDt, Duration: 30.0, MaxParticles: 1500, InitialCount: 600,
		Integrator: "verlet", MaxVelocity: 150,
		Boundary: BoundaryConfig{Policy: "wrapping", Min: [2]float64{-250, -250}, Max: [2]float64{250, 250}, Restitution: 0.8},
		Spatial:  SpatialConfig{Strategy: "grid", CellSize: 40, MaxPerLeaf: 10, MaxDepth: 8},
		Spawn: SpawnConfig{
			Area:           AreaConfig{Kind: "rect", Min: [2]float64{-200, -200}, Max: [2]float64{200, 200}},
			VelocityMin:    [2]float64{-10, -10},
			VelocityMax:    [2]float64{10, 10},
			Mass:           1, MassVariation: 0.2,
			Size:           2, SizeVariation: 0.3,
			SpeciesWeights: map[int]float64{0: 1, 1: 1, 2: 1},
		},
		Forces: ForceConfig{
			Interactions: []InteractionConfig{
				{A: 0, B: 0, Laws: []LawConfig{{Type: "repulsion", Strength: 20, MaxDistance: 30}}},
				{A: 0, B: 1, Laws: []LawConfig{{Type: "attraction", Strength: 15, MaxDistance: 80}}},
				{A: 0, B: 2, Laws: []LawConfig{{Type: "repulsion", Strength: 50, MaxDistance: 60}}},
				{A: 1, B: 1, Laws: []LawConfig{{Type: "attraction", Strength: 10, MaxDistance: 50}}},
				{A: 1, B: 2, Laws: []LawConfig{{Type: "attraction", Strength: 8, MaxDistance: 70}}},
				{A: 2, B: 2, Laws: []LawConfig{{Type: "repulsion", Strength: 30, MaxDistance: 40}}},
			},
		},
	},
	"flocking": {
		Dt: DefaultDt, Duration: 30.0, MaxParticles: 800, InitialCount: 300,
		Integrator: "euler", MaxVelocity: 80,
		Boundary: BoundaryConfig{Policy: "wrapping", Min: [2]float64{-300, -300}, Max: [2]float64{300, 300}, Restitution: 0.8},
		Spatial:  SpatialConfig{Strategy: "grid", CellSize: 50, MaxPerLeaf: 10, MaxDepth: 8},
		Spawn: SpawnConfig{
			Area:           AreaConfig{Kind: "circle", Radius: 100},
			VelocityMin:    [2]float64{-40, -40},
			VelocityMax:    [2]float64{40, 40},
			Mass:           1,
			Size:           3,
			SpeciesWeights: map[int]float64{0: 1},
		},
		Forces: ForceConfig{
			Global: []LawConfig{{
				Type:               "flocking",
				SeparationRadius:   25, SeparationStrength: 50,
				AlignmentRadius:    50, AlignmentStrength: 30,
				CohesionRadius:     80, CohesionStrength: 20,
			}},
			Defaults: []LawConfig{{Type: "damping", Coefficient: 0.01}},
		},
	},
	"orbit": {
		Dt: 0.005, Duration: 60.0, MaxParticles: 300, InitialCount: 150,
		Integrator: "verlet", MaxVelocity: 400,
		Boundary: BoundaryConfig{Policy: "absorbing", Min: [2]float64{-500, -500}, Max: [2]float64{500, 500}, Restitution: 0.8},
		Spatial:  SpatialConfig{Strategy: "none"},
		Spawn: SpawnConfig{
			Area:           AreaConfig{Kind: "ring", Inner: 50, Outer: 300},
			VelocityMin:    [2]float64{-30, -30},
			VelocityMax:    [2]float64{30, 30},
			Mass:           1.5, MassVariation: 0.8,
			Size:           3, SizeVariation: 0.4,
			SpeciesWeights: map[int]float64{1: 1},
		},
		Forces: ForceConfig{
			Defaults: []LawConfig{{Type: "gravity", Strength: 100, MinDistance: 5}},
		},
	},
	"plasma": {
		Dt: DefaultDt, Duration: 30.0, MaxParticles: 600, InitialCount: 300,
		Integrator: "verlet", MaxVelocity: 200,
		Boundary: BoundaryConfig{Policy: "reflective", Min: [2]float64{-200, -200}, Max: [2]float64{200, 200}, Restitution: 0.9},
		Spatial:  SpatialConfig{Strategy: "quadtree", MaxPerLeaf: 8, MaxDepth: 8, CellSize: 25},
		Spawn: SpawnConfig{
			Area:           AreaConfig{Kind: "rect", Min: [2]float64{-200, -200}, Max: [2]float64{200, 200}},
			VelocityMin:    [2]float64{-20, -20},
			VelocityMax:    [2]float64{20, 20},
			Mass:           1,
			Charge:         1,
			Size:           3,
			SpeciesWeights: map[int]float64{0: 1, 1: 1},
		},
		Forces: ForceConfig{
			Interactions: []InteractionConfig{
				{A: 0, B: 0, Laws: []LawConfig{{Type: "electromagnetic", Strength: 1000, MinDistance: 5}}},
				{A: 1, B: 1, Laws: []LawConfig{{Type: "electromagnetic", Strength: 1000, MinDistance: 5}}},
				{A: 0, B: 1, Laws: []LawConfig{{Type: "electromagnetic", Strength: -1000, MinDistance: 5}}},
			},
		},
	},
	"brownian": {
		Dt: DefaultDt, Duration: 20.0, MaxParticles: 1000, InitialCount: 500,
		Integrator: "euler", MaxVelocity: 60,
		Boundary: BoundaryConfig{Policy: "reflective", Min: [2]float64{-400, -300}, Max: [2]float64{400, 300}, Restitution: 0.8},
		Spatial:  SpatialConfig{Strategy: "none"},
		Spawn: SpawnConfig{
			Area:           AreaConfig{Kind: "rect", Min: [2]float64{-400, -300}, Max: [2]float64{400, 300}},
			Mass:           1,
			Size:           2, SizeVariation: 0.5,
			SpeciesWeights: map[int]float64{0: 1},
		},
		Forces: ForceConfig{
			Defaults: []LawConfig{
				{Type: "brownian", Intensity: 40},
				{Type: "damping", Coefficient: 0.05},
			},
		},
	},
	"reaction_diffusion": {
		Dt: DefaultDt, Duration: 40.0, MaxParticles: 1200, InitialCount: 500,
		Integrator: "verlet", MaxVelocity: 60,
		Boundary: BoundaryConfig{Policy: "wrapping", Min: [2]float64{-200, -200}, Max: [2]float64{200, 200}, Restitution: 0.8},
		Spatial:  SpatialConfig{Strategy: "grid", CellSize: 40, MaxPerLeaf: 10, MaxDepth: 8},
		Spawn: SpawnConfig{
			Area:           AreaConfig{Kind: "rect", Min: [2]float64{-200, -200}, Max: [2]float64{200, 200}},
			Mass:           1,
			Size:           2,
			SpeciesWeights: map[int]float64{0: 6, 1: 4},
		},
		Forces: ForceConfig{
			Interactions: []InteractionConfig{
				{A: 0, B: 0, Laws: []LawConfig{{Type: "attraction", Strength: 25, MaxDistance: 40}}},
				{A: 0, B: 1, Laws: []LawConfig{{Type: "repulsion", Strength: 40, MaxDistance: 80}}},
				{A: 1, B: 1, Laws: []LawConfig{{Type: "repulsion", Strength: 15, MaxDistance: 30}}},
			},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil if the name is
// unknown. Callers may mutate the result freely.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
