package integrate

import (
	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/vec"
)

// Euler is the explicit Euler scheme. Position advances with the
// pre-update velocity.
type Euler struct {
	MaxVelocity float64
}

func NewEuler(maxVelocity float64) *Euler {
	return &Euler{MaxVelocity: maxVelocity}
}

func (e *Euler) Advance(sys *particle.System, dt float64) {
	ps := sys.Particles()
	for i := range ps {
		p := &ps[i]
		old := p.Vel
		p.Vel = vec.ClampNorm(p.Vel.Add(p.Acc.Scale(dt)), e.MaxVelocity)
		p.Pos = p.Pos.Add(old.Scale(dt))
		settle(p, dt)
	}
}

func (e *Euler) Reset() {}
