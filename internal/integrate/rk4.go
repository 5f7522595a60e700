package integrate

import (
	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/vec"
)

// RK4 is a simplified Runge-Kutta-4 variant: all four stages reuse the
// acceleration sampled at the start of the step instead of
// re-evaluating forces at intermediate states. It is not textbook RK4;
// the stage structure only shapes the velocity contribution to the
// position update.
type RK4 struct {
	MaxVelocity float64
}

func NewRK4(maxVelocity float64) *RK4 {
	return &RK4{MaxVelocity: maxVelocity}
}

func (r *RK4) Advance(sys *particle.System, dt float64) {
	ps := sys.Particles()
	for i := range ps {
		p := &ps[i]

		k1v := p.Acc.Scale(dt)
		k1x := p.Vel.Scale(dt)

		k2v := k1v
		k2x := p.Vel.Add(k1v.Scale(0.5)).Scale(dt)

		k3v := k1v
		k3x := p.Vel.Add(k2v.Scale(0.5)).Scale(dt)

		k4v := k1v
		k4x := p.Vel.Add(k3v).Scale(dt)

		dv := k1v.Add(k2v.Scale(2)).Add(k3v.Scale(2)).Add(k4v).Scale(1.0 / 6)
		dx := k1x.Add(k2x.Scale(2)).Add(k3x.Scale(2)).Add(k4x).Scale(1.0 / 6)

		p.Vel = vec.ClampNorm(p.Vel.Add(dv), r.MaxVelocity)
		p.Pos = p.Pos.Add(dx)
		settle(p, dt)
	}
}

func (r *RK4) Reset() {}
