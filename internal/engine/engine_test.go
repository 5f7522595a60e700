package engine_test

import (
	"context"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/partisim/internal/boundary"
	"github.com/san-kum/partisim/internal/config"
	"github.com/san-kum/partisim/internal/engine"
	"github.com/san-kum/partisim/internal/forces"
	"github.com/san-kum/partisim/internal/integrate"
	"github.com/san-kum/partisim/internal/metrics"
	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/spatial"
	"github.com/san-kum/partisim/internal/vec"
)

type countingObserver struct {
	calls int
	last  float64
}

func (o *countingObserver) OnStep(_ *particle.System, t float64) {
	o.calls++
	o.last = t
}

var _ = Describe("Engine", func() {
	var e *engine.Engine

	BeforeEach(func() {
		e = engine.New(100)
		// Strip the default damping and noise so trajectories are exact.
		m := forces.NewMatrix()
		m.SetDefaults()
		e.SetMatrix(m)
	})

	Describe("Step", func() {
		It("moves a free particle at constant velocity", func() {
			e.Add(particle.New(vec.New(0, 0)).WithVelocity(vec.New(10, 0)))
			e.Step(0.1)
			Expect(e.System().At(0).Pos.X).To(BeNumerically("~", 1.0, 1e-6))
			Expect(e.Time()).To(BeNumerically("~", 0.1))
			Expect(e.Steps()).To(Equal(1))
		})

		It("ignores a non-positive dt", func() {
			e.Add(particle.New(vec.New(0, 0)).WithVelocity(vec.New(10, 0)))
			e.Step(0)
			e.Step(-1)
			Expect(e.System().At(0).Pos.X).To(BeZero())
			Expect(e.Steps()).To(BeZero())
		})

		It("prunes expired particles and keeps the live ones", func() {
			e.Add(particle.New(vec.New(0, 0)).WithLifespan(0.05))
			e.Add(particle.New(vec.New(5, 5)))
			e.Step(0.1)
			Expect(e.ParticleCount()).To(Equal(1))
			Expect(e.System().At(0).Pos).To(Equal(vec.New(5, 5)))
		})

		It("notifies observers after each step", func() {
			obs := &countingObserver{}
			e.AddObserver(obs)
			e.Step(0.1)
			e.Step(0.1)
			Expect(obs.calls).To(Equal(2))
			Expect(obs.last).To(BeNumerically("~", 0.2, 1e-9))
		})

		It("keeps two attracting particles symmetric about their midpoint", func() {
			m := forces.NewMatrix()
			m.SetDefaults(forces.Gravity{Strength: 10, MinDistance: 0.1})
			e.SetMatrix(m)
			e.Add(particle.New(vec.New(-10, 0)))
			e.Add(particle.New(vec.New(10, 0)))
			for i := 0; i < 50; i++ {
				e.Step(0.01)
			}
			Expect(e.CenterOfMass().X).To(BeNumerically("~", 0, 1e-9))
			Expect(e.System().At(0).Pos.X).To(BeNumerically(">", -10))
			Expect(e.System().At(1).Pos.X).To(BeNumerically("<", 10))
		})

		It("keeps particles inside a reflective boundary", func() {
			e.SetBoundary(boundary.New(vec.NewRect(-10, -10, 10, 10), boundary.Reflective))
			e.Add(particle.New(vec.New(9, 0)).WithVelocity(vec.New(50, 0)))
			bounds := vec.NewRect(-10, -10, 10, 10)
			for i := 0; i < 100; i++ {
				e.Step(0.01)
				Expect(bounds.Contains(e.System().At(0).Pos)).To(BeTrue())
			}
		})

		It("produces the same trajectory with and without a spatial index", func() {
			build := func(idx spatial.Index) *engine.Engine {
				eng := engine.New(10)
				m := forces.NewMatrix()
				m.SetDefaults(forces.Attraction{Strength: 5, MaxDistance: 50})
				eng.SetMatrix(m)
				eng.SetScheme(integrate.NewEuler(0))
				eng.SetIndex(idx)
				eng.Add(particle.New(vec.New(-5, 0)))
				eng.Add(particle.New(vec.New(5, 0)))
				eng.Add(particle.New(vec.New(0, 8)))
				for i := 0; i < 20; i++ {
					eng.Step(0.01)
				}
				return eng
			}

			plain := build(nil)
			grid := build(spatial.NewGrid(10, vec.NewRect(-100, -100, 100, 100)))
			for i := 0; i < 3; i++ {
				Expect(grid.System().At(i).Pos.X).To(BeNumerically("~", plain.System().At(i).Pos.X, 1e-9))
				Expect(grid.System().At(i).Pos.Y).To(BeNumerically("~", plain.System().At(i).Pos.Y, 1e-9))
			}
		})
	})

	Describe("reconfiguration", func() {
		It("keeps the global laws when the matrix is swapped mid-run", func() {
			e.SetGlobalForces(forces.Damping{Coefficient: 1})
			e.Add(particle.New(vec.New(0, 0)).WithVelocity(vec.New(10, 0)))
			e.Step(0.1)
			m := forces.NewMatrix()
			m.SetDefaults()
			e.SetMatrix(m)
			before := e.System().At(0).Vel.X
			e.Step(0.1)
			Expect(e.System().At(0).Vel.X).To(BeNumerically("<", before))
		})

		It("replaces rather than appends the global law set", func() {
			run := func(assignments int) float64 {
				eng := engine.New(10)
				m := forces.NewMatrix()
				m.SetDefaults()
				eng.SetMatrix(m)
				for i := 0; i < assignments; i++ {
					eng.SetGlobalForces(forces.Damping{Coefficient: 1})
				}
				eng.Add(particle.New(vec.New(0, 0)).WithVelocity(vec.New(10, 0)))
				for i := 0; i < 10; i++ {
					eng.Step(0.01)
				}
				return eng.System().At(0).Vel.X
			}
			Expect(run(3)).To(Equal(run(1)))
		})
	})

	Describe("collisions", func() {
		It("separates overlapping particles", func() {
			e.EnableCollisions(0.8)
			e.Add(particle.New(vec.New(0, 0)).WithSize(4).WithVelocity(vec.New(1, 0)))
			e.Add(particle.New(vec.New(2, 0)).WithSize(4).WithVelocity(vec.New(-1, 0)))
			before := e.System().At(1).Pos.X - e.System().At(0).Pos.X
			e.Step(0.001)
			after := e.System().At(1).Pos.X - e.System().At(0).Pos.X
			Expect(after).To(BeNumerically(">", before))
		})
	})

	Describe("spawning", func() {
		It("populates the initial count inside the area", func() {
			sp := engine.NewSpawner(engine.Plan{
				Area:           engine.CircleArea{Radius: 10},
				Mass:           1,
				Size:           1,
				SpeciesWeights: map[int]float64{0: 1},
			}, 0, 1)
			added := sp.Populate(e.System(), 50)
			Expect(added).To(Equal(50))
			for i := 0; i < e.ParticleCount(); i++ {
				Expect(vec.Norm(e.System().At(i).Pos)).To(BeNumerically("<=", 10))
			}
		})

		It("emits continuously at the configured rate", func() {
			sp := engine.NewSpawner(engine.Plan{Mass: 1, Size: 1}, 10, 1)
			e.SetSpawner(sp)
			for i := 0; i < 100; i++ {
				e.Step(0.01)
			}
			// 1 second at 10/s.
			Expect(e.ParticleCount()).To(BeNumerically("~", 10, 1))
		})

		It("respects system capacity", func() {
			small := engine.New(5)
			sp := engine.NewSpawner(engine.Plan{Mass: 1}, 0, 1)
			Expect(sp.Populate(small.System(), 20)).To(Equal(5))
		})

		It("draws species in proportion to their weights", func() {
			sp := engine.NewSpawner(engine.Plan{
				Mass:           1,
				SpeciesWeights: map[int]float64{0: 3, 1: 1},
			}, 0, 42)
			counts := map[int]int{}
			for i := 0; i < 2000; i++ {
				counts[sp.Make().Species]++
			}
			ratio := float64(counts[0]) / float64(counts[1])
			Expect(ratio).To(BeNumerically("~", 3.0, 0.5))
		})

		It("samples rings between the two radii", func() {
			sp := engine.NewSpawner(engine.Plan{
				Area: engine.RingArea{Inner: 5, Outer: 10},
				Mass: 1,
			}, 0, 7)
			for i := 0; i < 200; i++ {
				r := vec.Norm(sp.Make().Pos)
				Expect(r).To(BeNumerically(">=", 5))
				Expect(r).To(BeNumerically("<=", 10))
			}
		})
	})

	Describe("Run", func() {
		It("rejects a non-positive dt or duration", func() {
			_, err := e.Run(context.Background(), 1, 0, nil)
			Expect(err).To(HaveOccurred())
			_, err = e.Run(context.Background(), 0, 0.01, nil)
			Expect(err).To(HaveOccurred())
		})

		It("samples one point per step plus the initial state", func() {
			e.Add(particle.New(vec.New(0, 0)).WithVelocity(vec.New(1, 0)))
			res, err := e.Run(context.Background(), 1, 0.125, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StepsTaken).To(Equal(8))
			Expect(res.Times).To(HaveLen(9))
			Expect(res.Energies).To(HaveLen(9))
		})

		It("reports metric values by name", func() {
			e.Add(particle.New(vec.New(0, 0)).WithVelocity(vec.New(2, 0)))
			ke := metrics.NewKineticEnergy()
			res, err := e.Run(context.Background(), 0.5, 0.1, []metrics.Metric{ke})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Metrics).To(HaveKey(ke.Name()))
			Expect(res.Metrics[ke.Name()]).To(BeNumerically("~", 2.0, 1e-9))
		})

		It("stops on context cancellation", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()
			e.Add(particle.New(vec.New(0, 0)))
			res, err := e.Run(ctx, 1000, 0.001, nil)
			Expect(err).To(MatchError(context.DeadlineExceeded))
			Expect(res).NotTo(BeNil())
		})
	})

	Describe("FromConfig", func() {
		It("builds a runnable engine from a preset", func() {
			cfg := config.GetPreset("particle_life")
			Expect(cfg).NotTo(BeNil())
			eng, err := engine.FromConfig(cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(eng.ParticleCount()).To(Equal(cfg.InitialCount))
			eng.Step(cfg.Dt)
			Expect(math.IsNaN(eng.TotalEnergy())).To(BeFalse())
		})

		It("rejects an invalid config", func() {
			cfg := config.DefaultConfig()
			cfg.Integrator = "bogus"
			_, err := engine.FromConfig(cfg)
			Expect(err).To(HaveOccurred())
		})

		It("builds every preset", func() {
			for _, name := range config.ListPresets() {
				_, err := engine.FromConfig(config.GetPreset(name))
				Expect(err).NotTo(HaveOccurred(), "preset %s", name)
			}
		})
	})
})
