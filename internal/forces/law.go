// Package forces implements the closed set of force laws, the
// per-species interaction matrix and the per-step force accumulation
// pass.
package forces

import (
	"math"
	"math/rand"

	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/vec"
)

// Law is one parameterized force rule. Laws hold only parameters,
// never per-particle state.
//
// Force returns the force on p. Two-body laws operate on the
// displacement from p toward other and return zero when other is nil;
// one-body laws ignore other entirely. Degenerate geometry (coincident
// positions) contributes zero force, never NaN.
type Law interface {
	Force(p, other *particle.Particle) vec.V
	// Cutoff reports the interaction range beyond which the law is
	// exactly zero. Zero means unbounded: such laws are evaluated
	// against every other particle.
	Cutoff() float64
}

// Gravity attracts with magnitude strength*m1*m2/d², floored at
// MinDistance.
type Gravity struct {
	Strength    float64
	MinDistance float64
}

func (g Gravity) Force(p, other *particle.Particle) vec.V {
	if other == nil {
		return vec.V{}
	}
	d := other.Pos.Sub(p.Pos)
	dist := math.Max(vec.Norm(d), g.MinDistance)
	if dist <= 0 {
		return vec.V{}
	}
	mag := g.Strength * p.Mass * other.Mass / (dist * dist)
	return vec.UnitOrZero(d).Scale(mag)
}

func (Gravity) Cutoff() float64 { return 0 }

// ElectroMagnetic follows Coulomb's form on signed charges. The sign
// convention is caller-defined through Strength: a negative strength
// turns same-sign repulsion into attraction.
type ElectroMagnetic struct {
	Strength    float64
	MinDistance float64
}

func (e ElectroMagnetic) Force(p, other *particle.Particle) vec.V {
	if other == nil {
		return vec.V{}
	}
	d := other.Pos.Sub(p.Pos)
	dist := math.Max(vec.Norm(d), e.MinDistance)
	if dist <= 0 {
		return vec.V{}
	}
	mag := e.Strength * p.Charge * other.Charge / (dist * dist)
	return vec.UnitOrZero(d).Scale(mag)
}

func (ElectroMagnetic) Cutoff() float64 { return 0 }

// LennardJones models the 12-6 potential.
type LennardJones struct {
	Epsilon float64
	Sigma   float64
}

func (lj LennardJones) Force(p, other *particle.Particle) vec.V {
	if other == nil {
		return vec.V{}
	}
	d := other.Pos.Sub(p.Pos)
	dist := vec.Norm(d)
	if dist == 0 {
		return vec.V{}
	}
	r := dist / lj.Sigma
	r6 := math.Pow(r, 6)
	r12 := r6 * r6
	mag := 24 * lj.Epsilon * (2/r12 - 1/r6) / dist
	return d.Scale(mag / dist)
}

func (LennardJones) Cutoff() float64 { return 0 }

// Damping opposes velocity: F = -coefficient * v.
type Damping struct {
	Coefficient float64
}

func (d Damping) Force(p, _ *particle.Particle) vec.V {
	return p.Vel.Scale(-d.Coefficient)
}

func (Damping) Cutoff() float64 { return 0 }

// Brownian samples a fresh uniform force in [-I/2, I/2] per axis on
// every evaluation. Stateless noise, not integrated noise.
type Brownian struct {
	Intensity float64
}

func (b Brownian) Force(_, _ *particle.Particle) vec.V {
	return vec.New(
		(rand.Float64()-0.5)*b.Intensity,
		(rand.Float64()-0.5)*b.Intensity,
	)
}

func (Brownian) Cutoff() float64 { return 0 }

// Attraction pulls toward the other particle with linear falloff,
// zero at and beyond MaxDistance.
type Attraction struct {
	Strength    float64
	MaxDistance float64
}

func (a Attraction) Force(p, other *particle.Particle) vec.V {
	if other == nil {
		return vec.V{}
	}
	d := other.Pos.Sub(p.Pos)
	dist := vec.Norm(d)
	if dist == 0 || dist > a.MaxDistance {
		return vec.V{}
	}
	mag := a.Strength * (1 - dist/a.MaxDistance)
	return d.Scale(mag / dist)
}

func (a Attraction) Cutoff() float64 { return a.MaxDistance }

// Repulsion pushes away from the other particle with linear falloff.
type Repulsion struct {
	Strength    float64
	MaxDistance float64
}

func (r Repulsion) Force(p, other *particle.Particle) vec.V {
	if other == nil {
		return vec.V{}
	}
	d := other.Pos.Sub(p.Pos)
	dist := vec.Norm(d)
	if dist == 0 || dist > r.MaxDistance {
		return vec.V{}
	}
	mag := r.Strength * (1 - dist/r.MaxDistance)
	return d.Scale(-mag / dist)
}

func (r Repulsion) Cutoff() float64 { return r.MaxDistance }

// Vortex applies a tangential force around a fixed center, fading
// linearly to zero at MaxDistance.
type Vortex struct {
	Center      vec.V
	Strength    float64
	MaxDistance float64
}

func (v Vortex) Force(p, _ *particle.Particle) vec.V {
	radial := p.Pos.Sub(v.Center)
	dist := vec.Norm(radial)
	if dist == 0 || dist > v.MaxDistance {
		return vec.V{}
	}
	tangent := vec.UnitOrZero(vec.Perp(radial))
	return tangent.Scale(v.Strength * (1 - dist/v.MaxDistance))
}

func (Vortex) Cutoff() float64 { return 0 }

// Spring is a Hookean force toward the rest length with a
// velocity-projected damping term. It has no persistent topology: it
// is a pure function of the current pair state, so it cannot model a
// fixed spring network.
type Spring struct {
	RestLength float64
	Stiffness  float64
	Damping    float64
}

func (s Spring) Force(p, other *particle.Particle) vec.V {
	if other == nil {
		return vec.V{}
	}
	d := other.Pos.Sub(p.Pos)
	dist := vec.Norm(d)
	if dist == 0 {
		return vec.V{}
	}
	dir := d.Scale(1 / dist)
	springMag := s.Stiffness * (dist - s.RestLength)
	dampMag := s.Damping * vec.Dot(other.Vel.Sub(p.Vel), dir)
	return dir.Scale(springMag + dampMag)
}

func (Spring) Cutoff() float64 { return 0 }
