package forces

import (
	"runtime"
	"sync"

	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/spatial"
	"github.com/san-kum/partisim/internal/vec"
)

// parallelThreshold is the minimum particle count to fan the force
// pass out across goroutines. Below this, goroutine overhead wins.
const parallelThreshold = 64

// Calculator runs the per-step force accumulation pass.
//
// It reads a frozen snapshot of the particle state taken at the start
// of the pass and writes only to a per-particle output slot, so the
// loop is chunked across goroutines without locks and force evaluation
// is independent of particle order.
type Calculator struct {
	Matrix *Matrix
	Global []Law
	// Workers caps the number of goroutines; zero means GOMAXPROCS.
	Workers int

	snapshot []particle.Particle
	forces   []vec.V
}

func NewCalculator(m *Matrix) *Calculator {
	if m == nil {
		m = NewMatrix()
	}
	return &Calculator{Matrix: m}
}

func (c *Calculator) AddGlobal(law Law) {
	c.Global = append(c.Global, law)
}

// Accumulate evaluates every global and pairwise law and adds the
// resulting acceleration into each particle's accumulator. Laws return
// forces; division by mass happens here, once per particle. index may
// be nil, in which case every pair is evaluated.
func (c *Calculator) Accumulate(sys *particle.System, index spatial.Index) {
	ps := sys.Particles()
	n := len(ps)
	if n == 0 {
		return
	}

	c.snapshot = append(c.snapshot[:0], ps...)
	if cap(c.forces) < n {
		c.forces = make([]vec.V, n)
	}
	c.forces = c.forces[:n]
	for i := range c.forces {
		c.forces[i] = vec.V{}
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	if n < parallelThreshold || workers == 1 {
		for i := 0; i < n; i++ {
			c.forces[i] = c.forceOn(i, index)
		}
	} else {
		var wg sync.WaitGroup
		chunk := (n + workers - 1) / workers
		for start := 0; start < n; start += chunk {
			end := start + chunk
			if end > n {
				end = n
			}
			wg.Add(1)
			go func(lo, hi int) {
				defer wg.Done()
				for i := lo; i < hi; i++ {
					c.forces[i] = c.forceOn(i, index)
				}
			}(start, end)
		}
		wg.Wait()
	}

	for i := 0; i < n; i++ {
		p := &ps[i]
		if p.Mass > 0 {
			p.Acc = p.Acc.Add(c.forces[i].Scale(1 / p.Mass))
		}
	}
}

// forceOn computes the total force on snapshot particle i.
func (c *Calculator) forceOn(i int, index spatial.Index) vec.V {
	p := &c.snapshot[i]
	var total vec.V

	for _, law := range c.Global {
		if _, ok := law.(Flocking); ok {
			continue
		}
		total = total.Add(law.Force(p, nil))
	}

	total = total.Add(c.pairwise(i, index))

	for _, law := range c.Global {
		if fl, ok := law.(Flocking); ok {
			var candidates []int
			if index != nil {
				candidates = index.QueryNeighbors(i, fl.Cutoff())
			}
			total = total.Add(fl.Steer(i, c.snapshot, candidates))
		}
	}

	return total
}

func (c *Calculator) pairwise(i int, index spatial.Index) vec.V {
	p := &c.snapshot[i]
	var total vec.V

	cutoff := 0.0
	if index != nil {
		cutoff = c.Matrix.BoundedCutoff(p.Species)
	}

	if index != nil && cutoff > 0 {
		// Bounded laws only need spatially-nearby candidates.
		for _, j := range index.QueryNeighbors(i, cutoff) {
			other := &c.snapshot[j]
			for _, law := range c.Matrix.LawsFor(p.Species, other.Species) {
				if law.Cutoff() > 0 {
					total = total.Add(law.Force(p, other))
				}
			}
		}
		// Laws with unbounded range fall back to the full pass.
		if c.Matrix.UnboundedFor(p.Species) {
			for j := range c.snapshot {
				if j == i {
					continue
				}
				other := &c.snapshot[j]
				for _, law := range c.Matrix.LawsFor(p.Species, other.Species) {
					if law.Cutoff() == 0 {
						total = total.Add(law.Force(p, other))
					}
				}
			}
		}
		return total
	}

	for j := range c.snapshot {
		if j == i {
			continue
		}
		other := &c.snapshot[j]
		for _, law := range c.Matrix.LawsFor(p.Species, other.Species) {
			total = total.Add(law.Force(p, other))
		}
	}
	return total
}
