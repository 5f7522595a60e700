package particle

import "github.com/san-kum/partisim/internal/vec"

// System owns a dense, insertion-ordered sequence of particles with a
// fixed capacity ceiling. Indices into the sequence are only stable
// within a single simulation step: PruneDead may shift them.
type System struct {
	particles []Particle
	capacity  int
}

func NewSystem(capacity int) *System {
	if capacity < 1 {
		capacity = 1
	}
	return &System{
		particles: make([]Particle, 0, capacity),
		capacity:  capacity,
	}
}

// Add inserts p, returning false when the store is at capacity. The
// cap is a soft limit, not an error.
func (s *System) Add(p Particle) bool {
	if len(s.particles) >= s.capacity {
		return false
	}
	s.particles = append(s.particles, p)
	return true
}

func (s *System) Len() int { return len(s.particles) }

func (s *System) Cap() int { return s.capacity }

// At returns the particle at index i for in-place mutation.
func (s *System) At(i int) *Particle { return &s.particles[i] }

// Particles exposes the backing slice for hot loops. Callers must not
// grow it.
func (s *System) Particles() []Particle { return s.particles }

func (s *System) Clear() { s.particles = s.particles[:0] }

// PruneDead removes particles whose age has reached their lifespan,
// preserving the relative order of survivors. Returns the number
// removed.
func (s *System) PruneDead() int {
	alive := s.particles[:0]
	for i := range s.particles {
		if s.particles[i].Alive() {
			alive = append(alive, s.particles[i])
		}
	}
	removed := len(s.particles) - len(alive)
	s.particles = alive
	return removed
}

// TotalEnergy returns the aggregate kinetic energy.
func (s *System) TotalEnergy() float64 {
	total := 0.0
	for i := range s.particles {
		total += s.particles[i].KineticEnergy()
	}
	return total
}

// CenterOfMass returns the mass-weighted center of position, or zero
// when the system is empty or massless.
func (s *System) CenterOfMass() vec.V {
	var weighted vec.V
	totalMass := 0.0
	for i := range s.particles {
		p := &s.particles[i]
		weighted = weighted.Add(p.Pos.Scale(p.Mass))
		totalMass += p.Mass
	}
	if totalMass == 0 {
		return vec.V{}
	}
	return weighted.Scale(1 / totalMass)
}

func (s *System) AverageVelocity() vec.V {
	if len(s.particles) == 0 {
		return vec.V{}
	}
	var total vec.V
	for i := range s.particles {
		total = total.Add(s.particles[i].Vel)
	}
	return total.Scale(1 / float64(len(s.particles)))
}

func (s *System) TotalMomentum() vec.V {
	var total vec.V
	for i := range s.particles {
		total = total.Add(s.particles[i].Momentum())
	}
	return total
}
