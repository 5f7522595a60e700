package integrate

import (
	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/vec"
)

// Verlet is position Verlet. It keeps an index-aligned cache of
// previous positions; the cache is rebuilt from current positions
// whenever the particle count changes, since no index ordering is
// guaranteed across steps once particles are pruned.
type Verlet struct {
	MaxVelocity float64
	prev        []vec.V
}

func NewVerlet(maxVelocity float64) *Verlet {
	return &Verlet{MaxVelocity: maxVelocity}
}

func (v *Verlet) Advance(sys *particle.System, dt float64) {
	ps := sys.Particles()
	if len(v.prev) != len(ps) {
		// Seed from current velocity so motion carries across a cache
		// rebuild instead of restarting from rest.
		v.prev = v.prev[:0]
		for i := range ps {
			v.prev = append(v.prev, ps[i].Pos.Sub(ps[i].Vel.Scale(dt)))
		}
	}

	for i := range ps {
		p := &ps[i]
		newPos := p.Pos.Scale(2).Sub(v.prev[i]).Add(p.Acc.Scale(dt * dt))
		v.prev[i] = p.Pos
		p.Vel = vec.ClampNorm(newPos.Sub(p.Pos).Scale(1/dt), v.MaxVelocity)
		p.Pos = newPos
		settle(p, dt)
	}
}

func (v *Verlet) Reset() { v.prev = nil }
