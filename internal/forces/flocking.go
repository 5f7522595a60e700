package forces

import (
	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/vec"
)

// Flocking combines separation, alignment and cohesion over
// same-species neighbors. It is registered as a global law but needs a
// per-particle neighborhood, so the accumulator evaluates it through
// Steer instead of Force.
type Flocking struct {
	SeparationRadius   float64
	AlignmentRadius    float64
	CohesionRadius     float64
	SeparationStrength float64
	AlignmentStrength  float64
	CohesionStrength   float64
}

// Force always returns zero; see Steer.
func (Flocking) Force(_, _ *particle.Particle) vec.V { return vec.V{} }

// Cutoff is the largest of the three interaction radii.
func (f Flocking) Cutoff() float64 {
	max := f.SeparationRadius
	if f.AlignmentRadius > max {
		max = f.AlignmentRadius
	}
	if f.CohesionRadius > max {
		max = f.CohesionRadius
	}
	return max
}

// Steer computes the flocking force on ps[i]. candidates restricts the
// neighborhood scan; a nil slice scans every particle.
func (f Flocking) Steer(i int, ps []particle.Particle, candidates []int) vec.V {
	p := &ps[i]

	var separation, alignment, cohesion vec.V
	sepCount, alignCount, cohCount := 0, 0, 0

	consider := func(j int) {
		if j == i {
			return
		}
		other := &ps[j]
		if other.Species != p.Species {
			return
		}
		d := other.Pos.Sub(p.Pos)
		dist := vec.Norm(d)
		if dist == 0 {
			return
		}

		if dist < f.SeparationRadius {
			// Inverse-distance-weighted repulsion.
			separation = separation.Sub(d.Scale(1 / (dist * dist)))
			sepCount++
		}
		if dist < f.AlignmentRadius {
			alignment = alignment.Add(other.Vel)
			alignCount++
		}
		if dist < f.CohesionRadius {
			cohesion = cohesion.Add(other.Pos)
			cohCount++
		}
	}

	if candidates == nil {
		for j := range ps {
			consider(j)
		}
	} else {
		for _, j := range candidates {
			consider(j)
		}
	}

	var total vec.V
	if sepCount > 0 {
		total = total.Add(vec.UnitOrZero(separation.Scale(1 / float64(sepCount))).Scale(f.SeparationStrength))
	}
	if alignCount > 0 {
		mean := alignment.Scale(1 / float64(alignCount)).Sub(p.Vel)
		total = total.Add(vec.UnitOrZero(mean).Scale(f.AlignmentStrength))
	}
	if cohCount > 0 {
		toward := cohesion.Scale(1 / float64(cohCount)).Sub(p.Pos)
		total = total.Add(vec.UnitOrZero(toward).Scale(f.CohesionStrength))
	}
	return total
}
