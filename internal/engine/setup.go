package engine

import (
	"fmt"

	"github.com/san-kum/partisim/internal/boundary"
	"github.com/san-kum/partisim/internal/config"
	"github.com/san-kum/partisim/internal/integrate"
	"github.com/san-kum/partisim/internal/spatial"
	"github.com/san-kum/partisim/internal/vec"
)

// FromConfig assembles a ready-to-run engine: forces, integrator,
// boundary, spatial index and the initial particle population.
func FromConfig(cfg *config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := New(cfg.MaxParticles)

	matrix, err := cfg.Forces.BuildMatrix()
	if err != nil {
		return nil, err
	}
	e.SetMatrix(matrix)

	global, err := cfg.Forces.BuildGlobal()
	if err != nil {
		return nil, err
	}
	e.SetGlobalForces(global...)

	scheme, err := buildScheme(cfg.Integrator, cfg.MaxVelocity)
	if err != nil {
		return nil, err
	}
	e.SetScheme(scheme)

	policy, err := boundary.ParsePolicy(cfg.Boundary.Policy)
	if err != nil {
		return nil, err
	}
	h := boundary.New(cfg.Boundary.Rect(), policy)
	if cfg.Boundary.Restitution > 0 {
		h.Restitution = cfg.Boundary.Restitution
	}
	e.SetBoundary(h)

	idx, err := buildIndex(cfg.Spatial, cfg.Boundary.Rect())
	if err != nil {
		return nil, err
	}
	e.SetIndex(idx)

	if cfg.Collisions.Enable {
		e.EnableCollisions(cfg.Collisions.Restitution)
	}

	area, err := buildArea(cfg.Spawn.Area)
	if err != nil {
		return nil, err
	}
	plan := Plan{
		Area:           area,
		VelMin:         vec.New(cfg.Spawn.VelocityMin[0], cfg.Spawn.VelocityMin[1]),
		VelMax:         vec.New(cfg.Spawn.VelocityMax[0], cfg.Spawn.VelocityMax[1]),
		Mass:           cfg.Spawn.Mass,
		MassVar:        cfg.Spawn.MassVariation,
		Charge:         cfg.Spawn.Charge,
		Size:           cfg.Spawn.Size,
		SizeVar:        cfg.Spawn.SizeVariation,
		Lifespan:       cfg.Spawn.Lifespan,
		SpeciesWeights: cfg.Spawn.SpeciesWeights,
	}
	spawner := NewSpawner(plan, cfg.SpawnRate, cfg.Seed)
	e.SetSpawner(spawner)
	spawner.Populate(e.System(), cfg.InitialCount)

	return e, nil
}

func buildScheme(name string, maxVelocity float64) (integrate.Scheme, error) {
	switch name {
	case "euler":
		return integrate.NewEuler(maxVelocity), nil
	case "verlet":
		return integrate.NewVerlet(maxVelocity), nil
	case "rk4":
		return integrate.NewRK4(maxVelocity), nil
	default:
		return nil, fmt.Errorf("unknown integrator %q", name)
	}
}

func buildIndex(sc config.SpatialConfig, bounds vec.Rect) (spatial.Index, error) {
	switch sc.Strategy {
	case "grid", "":
		return spatial.NewGrid(sc.CellSize, bounds), nil
	case "quadtree":
		return spatial.NewQuadtree(bounds, sc.MaxPerLeaf, sc.MaxDepth), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown spatial strategy %q", sc.Strategy)
	}
}

func buildArea(ac config.AreaConfig) (Area, error) {
	center := vec.New(ac.Center[0], ac.Center[1])
	switch ac.Kind {
	case "point":
		return PointArea{Center: center}, nil
	case "circle", "":
		return CircleArea{Center: center, Radius: ac.Radius}, nil
	case "rect":
		return RectArea{Bounds: vec.NewRect(ac.Min[0], ac.Min[1], ac.Max[0], ac.Max[1])}, nil
	case "ring":
		return RingArea{Center: center, Inner: ac.Inner, Outer: ac.Outer}, nil
	default:
		return nil, fmt.Errorf("unknown spawn area %q", ac.Kind)
	}
}
