// Package integrate advances particle kinematics under one of three
// selectable schemes. Schemes are swappable between steps without the
// rest of the pipeline knowing.
//
// Every scheme ends a step the same way: clamp speed to the configured
// maximum, advance age, refresh the derived kinetic energy and zero
// the acceleration accumulator. The accumulator reset is the
// synchronization point that lets the next force pass start from zero.
package integrate

import (
	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/vec"
)

// Scheme advances all particles in a system by one step. Schemes may
// cache per-particle state between steps; Reset drops it. The cache
// must be dropped whenever the particle count changes, since indices
// are not stable across pruning.
type Scheme interface {
	Advance(sys *particle.System, dt float64)
	Reset()
}

func settle(p *particle.Particle, dt float64) {
	p.Age += dt
	p.Acc = vec.V{}
	p.Energy = p.KineticEnergy()
}
