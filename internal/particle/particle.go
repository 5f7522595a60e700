// Package particle defines the per-entity state record and the dense
// store that owns all particles in a simulation.
package particle

import (
	"math"

	"github.com/san-kum/partisim/internal/vec"
)

// Particle is the state of a single point particle. Acc is the
// acceleration accumulator: it is zero at the start of every force
// pass and reset by the integrator at the end of every step.
type Particle struct {
	Pos      vec.V
	Vel      vec.V
	Acc      vec.V
	Mass     float64
	Charge   float64
	Species  int
	Size     float64
	Age      float64
	Lifespan float64
	Energy   float64
}

// New returns a particle at pos with mass 1, size 1 and an unbounded
// lifespan.
func New(pos vec.V) Particle {
	return Particle{
		Pos:      pos,
		Mass:     1,
		Size:     1,
		Lifespan: math.Inf(1),
	}
}

func (p Particle) WithVelocity(v vec.V) Particle { p.Vel = v; return p }
func (p Particle) WithMass(m float64) Particle   { p.Mass = m; return p }
func (p Particle) WithCharge(q float64) Particle { p.Charge = q; return p }
func (p Particle) WithSpecies(id int) Particle   { p.Species = id; return p }
func (p Particle) WithSize(s float64) Particle   { p.Size = s; return p }
func (p Particle) WithLifespan(l float64) Particle {
	p.Lifespan = l
	return p
}

// Alive reports whether the particle has not yet outlived its lifespan.
func (p *Particle) Alive() bool { return p.Age < p.Lifespan }

// Kill marks the particle for removal by the next prune pass.
func (p *Particle) Kill() { p.Lifespan = 0 }

// LifeRatio returns the remaining life fraction in [0, 1]. Rendering
// collaborators use it for alpha fade; the core never depends on it.
func (p *Particle) LifeRatio() float64 {
	if math.IsInf(p.Lifespan, 1) {
		return 1
	}
	if p.Lifespan <= 0 {
		return 0
	}
	r := 1 - p.Age/p.Lifespan
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// ApplyForce adds force/mass to the acceleration accumulator.
// Zero-mass particles are force-immune.
func (p *Particle) ApplyForce(f vec.V) {
	if p.Mass > 0 {
		p.Acc = p.Acc.Add(f.Scale(1 / p.Mass))
	}
}

// ApplyImpulse changes velocity by impulse/mass.
func (p *Particle) ApplyImpulse(imp vec.V) {
	if p.Mass > 0 {
		p.Vel = p.Vel.Add(imp.Scale(1 / p.Mass))
	}
}

func (p *Particle) KineticEnergy() float64 {
	return 0.5 * p.Mass * vec.Norm2(p.Vel)
}

func (p *Particle) Momentum() vec.V { return p.Vel.Scale(p.Mass) }

func (p *Particle) DistanceTo(other *Particle) float64 {
	return vec.Dist(p.Pos, other.Pos)
}
