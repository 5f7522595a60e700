package engine

import (
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/vec"
)

// Area is a spawn region particles are sampled from.
type Area interface {
	Sample(rng *rand.Rand) vec.V
}

type PointArea struct {
	Center vec.V
}

func (a PointArea) Sample(*rand.Rand) vec.V { return a.Center }

type CircleArea struct {
	Center vec.V
	Radius float64
}

func (a CircleArea) Sample(rng *rand.Rand) vec.V {
	// Uniform over the disc, not the radius.
	r := a.Radius * math.Sqrt(rng.Float64())
	theta := rng.Float64() * 2 * math.Pi
	return a.Center.Add(vec.New(r*math.Cos(theta), r*math.Sin(theta)))
}

type RectArea struct {
	Bounds vec.Rect
}

func (a RectArea) Sample(rng *rand.Rand) vec.V {
	return vec.New(
		a.Bounds.Min.X+rng.Float64()*a.Bounds.Width(),
		a.Bounds.Min.Y+rng.Float64()*a.Bounds.Height(),
	)
}

type RingArea struct {
	Center vec.V
	Inner  float64
	Outer  float64
}

func (a RingArea) Sample(rng *rand.Rand) vec.V {
	in2, out2 := a.Inner*a.Inner, a.Outer*a.Outer
	r := math.Sqrt(in2 + rng.Float64()*(out2-in2))
	theta := rng.Float64() * 2 * math.Pi
	return a.Center.Add(vec.New(r*math.Cos(theta), r*math.Sin(theta)))
}

// Plan describes the distribution new particles are drawn from.
type Plan struct {
	Area     Area
	VelMin   vec.V
	VelMax   vec.V
	Mass     float64
	MassVar  float64
	Charge   float64
	Size     float64
	SizeVar  float64
	Lifespan float64

	// SpeciesWeights picks the species of each particle in proportion
	// to its weight. Empty means species 0.
	SpeciesWeights map[int]float64
}

// Spawner emits particles at a steady rate from a Plan.
type Spawner struct {
	Rate float64
	Plan Plan

	rng     *rand.Rand
	species []int
	weights []float64
	total   float64
	timer   float64
}

func NewSpawner(plan Plan, rate float64, seed int64) *Spawner {
	s := &Spawner{
		Rate: rate,
		Plan: plan,
		rng:  rand.New(rand.NewSource(seed)),
	}
	// Sorted species list keeps draws reproducible for a given seed.
	for id := range plan.SpeciesWeights {
		s.species = append(s.species, id)
	}
	sort.Ints(s.species)
	for _, id := range s.species {
		w := plan.SpeciesWeights[id]
		s.weights = append(s.weights, w)
		s.total += w
	}
	return s
}

func (s *Spawner) pickSpecies() int {
	if s.total <= 0 {
		return 0
	}
	target := s.rng.Float64() * s.total
	sum := 0.0
	for i, w := range s.weights {
		sum += w
		if target <= sum {
			return s.species[i]
		}
	}
	return s.species[len(s.species)-1]
}

func (s *Spawner) vary(base, variation float64) float64 {
	return base * (1 + (s.rng.Float64()-0.5)*variation)
}

// Make draws one particle from the plan.
func (s *Spawner) Make() particle.Particle {
	pos := vec.V{}
	if s.Plan.Area != nil {
		pos = s.Plan.Area.Sample(s.rng)
	}
	vel := vec.New(
		s.Plan.VelMin.X+s.rng.Float64()*(s.Plan.VelMax.X-s.Plan.VelMin.X),
		s.Plan.VelMin.Y+s.rng.Float64()*(s.Plan.VelMax.Y-s.Plan.VelMin.Y),
	)

	p := particle.New(pos).
		WithVelocity(vel).
		WithMass(s.vary(s.Plan.Mass, s.Plan.MassVar)).
		WithCharge(s.Plan.Charge).
		WithSize(s.vary(s.Plan.Size, s.Plan.SizeVar)).
		WithSpecies(s.pickSpecies())
	if s.Plan.Lifespan > 0 {
		p = p.WithLifespan(s.Plan.Lifespan)
	}
	return p
}

// Populate adds n particles at once, stopping at capacity.
func (s *Spawner) Populate(sys *particle.System, n int) int {
	added := 0
	for i := 0; i < n; i++ {
		if !sys.Add(s.Make()) {
			break
		}
		added++
	}
	return added
}

// Emit adds particles according to the spawn rate. A rate of zero or
// below disables continuous spawning.
func (s *Spawner) Emit(sys *particle.System, dt float64) int {
	if s.Rate <= 0 {
		return 0
	}
	s.timer += dt
	interval := 1 / s.Rate
	added := 0
	for s.timer >= interval {
		s.timer -= interval
		if !sys.Add(s.Make()) {
			break
		}
		added++
	}
	return added
}
