package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/partisim/internal/metrics"
	"github.com/san-kum/partisim/internal/vec"
)

// Result collects the per-step series of a run.
type Result struct {
	Times    []float64
	Counts   []int
	Energies []float64
	Centers  []vec.V

	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// Run advances the engine for the given duration, sampling the series
// and metrics after every step. It stops early on context cancellation
// or when the system energy turns non-finite.
func (e *Engine) Run(ctx context.Context, duration, dt float64, ms []metrics.Metric) (*Result, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %f", dt)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %f", duration)
	}

	steps := int(duration / dt)
	result := &Result{
		Times:    make([]float64, 0, steps+1),
		Counts:   make([]int, 0, steps+1),
		Energies: make([]float64, 0, steps+1),
		Centers:  make([]vec.V, 0, steps+1),
		Metrics:  make(map[string]float64),
		Errors:   make([]error, 0),
	}

	for _, m := range ms {
		m.Reset()
	}

	result.sample(e)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		e.Step(dt)
		result.StepsTaken++

		energy := e.TotalEnergy()
		if math.IsNaN(energy) || math.IsInf(energy, 0) {
			result.Errors = append(result.Errors,
				fmt.Errorf("non-finite energy at t=%.4f step %d", e.Time(), i))
			break
		}

		for _, m := range ms {
			m.Observe(e.sys, e.Time())
		}
		result.sample(e)
	}

	for _, m := range ms {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (r *Result) sample(e *Engine) {
	r.Times = append(r.Times, e.Time())
	r.Counts = append(r.Counts, e.ParticleCount())
	r.Energies = append(r.Energies, e.TotalEnergy())
	r.Centers = append(r.Centers, e.CenterOfMass())
}
