// Package engine drives the simulation loop: spawning, spatial index
// rebuilds, force accumulation, integration, collisions, boundary
// handling and pruning, in that order.
package engine

import (
	"github.com/san-kum/partisim/internal/boundary"
	"github.com/san-kum/partisim/internal/forces"
	"github.com/san-kum/partisim/internal/integrate"
	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/spatial"
	"github.com/san-kum/partisim/internal/vec"
)

// Observer is notified after every completed step.
type Observer interface {
	OnStep(sys *particle.System, t float64)
}

type Engine struct {
	sys    *particle.System
	calc   *forces.Calculator
	scheme integrate.Scheme
	bounds *boundary.Handler
	index  spatial.Index

	spawner   *Spawner
	observers []Observer

	collisions           bool
	collisionRestitution float64

	time  float64
	steps int
}

func New(capacity int) *Engine {
	return &Engine{
		sys:                  particle.NewSystem(capacity),
		calc:                 forces.NewCalculator(nil),
		scheme:               integrate.NewVerlet(0),
		collisionRestitution: 0.8,
	}
}

func (e *Engine) System() *particle.System { return e.sys }
func (e *Engine) ParticleCount() int       { return e.sys.Len() }
func (e *Engine) Time() float64            { return e.time }
func (e *Engine) Steps() int               { return e.steps }
func (e *Engine) TotalEnergy() float64     { return e.sys.TotalEnergy() }
func (e *Engine) CenterOfMass() vec.V      { return e.sys.CenterOfMass() }

func (e *Engine) SetScheme(s integrate.Scheme) {
	if e.scheme != nil {
		e.scheme.Reset()
	}
	e.scheme = s
}

func (e *Engine) SetIndex(idx spatial.Index)     { e.index = idx }
func (e *Engine) SetBoundary(h *boundary.Handler) { e.bounds = h }
func (e *Engine) SetSpawner(sp *Spawner)          { e.spawner = sp }
func (e *Engine) AddObserver(o Observer)          { e.observers = append(e.observers, o) }

// SetMatrix swaps the pairwise interaction matrix, keeping the global
// laws and worker setting intact.
func (e *Engine) SetMatrix(m *forces.Matrix) {
	if m == nil {
		m = forces.NewMatrix()
	}
	e.calc.Matrix = m
}

// SetGlobalForces replaces the global law set.
func (e *Engine) SetGlobalForces(laws ...forces.Law) {
	e.calc.Global = laws
}

func (e *Engine) SetWorkers(n int) { e.calc.Workers = n }

func (e *Engine) EnableCollisions(restitution float64) {
	e.collisions = true
	e.collisionRestitution = restitution
}

func (e *Engine) Add(p particle.Particle) bool { return e.sys.Add(p) }

func (e *Engine) Clear() {
	e.sys.Clear()
	e.scheme.Reset()
	e.time = 0
	e.steps = 0
}

// Step advances the simulation by dt. A non-positive dt is ignored.
func (e *Engine) Step(dt float64) {
	if dt <= 0 {
		return
	}

	if e.spawner != nil {
		e.spawner.Emit(e.sys, dt)
	}

	if e.index != nil {
		e.index.Rebuild(e.sys.Particles())
	}

	e.calc.Accumulate(e.sys, e.index)
	e.scheme.Advance(e.sys, dt)

	if e.collisions {
		e.resolveCollisions()
	}
	reseed := false
	if e.bounds != nil {
		// Teleports and reflections invalidate position history.
		reseed = e.bounds.Apply(e.sys) > 0
	}

	// Removal shifts indices out from under any per-index position cache.
	if e.sys.PruneDead() > 0 {
		reseed = true
	}
	if reseed {
		e.scheme.Reset()
	}

	e.time += dt
	e.steps++

	for _, obs := range e.observers {
		obs.OnStep(e.sys, e.time)
	}
}
