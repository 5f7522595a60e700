package engine

import (
	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/vec"
)

// resolveCollisions separates overlapping pairs and applies a contact
// impulse. Overlap is measured against the mean of the two sizes; the
// positional correction and impulse land on the lower-index particle.
func (e *Engine) resolveCollisions() {
	ps := e.sys.Particles()
	snapshot := make([]particle.Particle, len(ps))
	copy(snapshot, ps)

	for i := range ps {
		for j := i + 1; j < len(snapshot); j++ {
			a, b := &snapshot[i], &snapshot[j]
			delta := b.Pos.Sub(a.Pos)
			dist := vec.Norm(delta)
			minDist := (a.Size + b.Size) / 2
			if dist >= minDist || dist <= 0 {
				continue
			}

			dir := delta.Scale(1 / dist)
			overlap := minDist - dist
			p := e.sys.At(i)
			p.Pos = p.Pos.Sub(dir.Scale(overlap * 0.5))

			relVel := b.Vel.Sub(a.Vel)
			vn := vec.Dot(relVel, dir)
			if vn > 0 {
				// Already separating.
				continue
			}
			impulse := -(1 + e.collisionRestitution) * vn
			p.ApplyImpulse(dir.Scale(-impulse))
		}
	}
}
