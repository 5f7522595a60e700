package export

import (
	"github.com/san-kum/partisim/internal/particle"
)

// Tracer records the trajectories of the first N particles every
// Stride steps. It plugs into the engine as an observer.
type Tracer struct {
	MaxTracked int
	Stride     int

	paths []Path
	steps int
}

func NewTracer(maxTracked, stride int) *Tracer {
	if maxTracked < 1 {
		maxTracked = 1
	}
	if stride < 1 {
		stride = 1
	}
	return &Tracer{MaxTracked: maxTracked, Stride: stride}
}

func (t *Tracer) OnStep(sys *particle.System, _ float64) {
	t.steps++
	if t.steps%t.Stride != 0 {
		return
	}

	n := sys.Len()
	if n > t.MaxTracked {
		n = t.MaxTracked
	}
	for len(t.paths) < n {
		t.paths = append(t.paths, Path{Species: sys.At(len(t.paths)).Species})
	}
	for i := 0; i < n; i++ {
		t.paths[i].Points = append(t.paths[i].Points, sys.At(i).Pos)
	}
}

// Paths returns the recorded trajectories.
func (t *Tracer) Paths() []Path { return t.paths }
