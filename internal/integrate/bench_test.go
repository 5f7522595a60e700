package integrate

import (
	"testing"

	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/vec"
)

func benchSystem(n int) *particle.System {
	sys := particle.NewSystem(n)
	for i := 0; i < n; i++ {
		p := particle.New(vec.New(float64(i), 0)).WithVelocity(vec.New(1, 1))
		p.Acc = vec.New(0.5, -0.5)
		sys.Add(p)
	}
	return sys
}

func BenchmarkEuler(b *testing.B) {
	sys := benchSystem(1000)
	scheme := NewEuler(100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scheme.Advance(sys, 0.01)
	}
}

func BenchmarkVerlet(b *testing.B) {
	sys := benchSystem(1000)
	scheme := NewVerlet(100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scheme.Advance(sys, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	sys := benchSystem(1000)
	scheme := NewRK4(100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scheme.Advance(sys, 0.01)
	}
}
