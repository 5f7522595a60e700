// Package metrics observes a running particle system and reduces each
// run to a handful of scalar diagnostics.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/vec"
)

// Metric observes the particle system once per step.
type Metric interface {
	Name() string
	Observe(sys *particle.System, t float64)
	Value() float64
	Reset()
}

// KineticEnergy reports the mean total kinetic energy over the run.
type KineticEnergy struct {
	samples []float64
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(sys *particle.System, _ float64) {
	k.samples = append(k.samples, sys.TotalEnergy())
}

func (k *KineticEnergy) Value() float64 {
	if len(k.samples) == 0 {
		return 0
	}
	return stat.Mean(k.samples, nil)
}

func (k *KineticEnergy) Reset() { k.samples = k.samples[:0] }

// MomentumDrift reports the maximum relative drift of total momentum
// magnitude from its initial value. Near zero means pairwise forces
// stayed balanced.
type MomentumDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift { return &MomentumDrift{} }

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(sys *particle.System, _ float64) {
	mag := vec.Norm(sys.TotalMomentum())
	if m.samples == 0 {
		m.initial = mag
	}
	m.samples++

	if m.initial != 0 {
		drift := math.Abs(mag-m.initial) / m.initial
		if drift > m.maxDrift {
			m.maxDrift = drift
		}
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}

// Spread reports the mean RMS distance of particles from their center
// of mass, a rough clustering measure.
type Spread struct {
	samples []float64
}

func NewSpread() *Spread { return &Spread{} }

func (s *Spread) Name() string { return "spread" }

func (s *Spread) Observe(sys *particle.System, _ float64) {
	n := sys.Len()
	if n == 0 {
		return
	}
	com := sys.CenterOfMass()
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += vec.Dist2(sys.At(i).Pos, com)
	}
	s.samples = append(s.samples, math.Sqrt(sum/float64(n)))
}

func (s *Spread) Value() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	return stat.Mean(s.samples, nil)
}

func (s *Spread) Reset() { s.samples = s.samples[:0] }
