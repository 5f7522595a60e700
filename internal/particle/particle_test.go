package particle

import (
	"math"
	"testing"

	"github.com/san-kum/partisim/internal/vec"
)

func TestBuilder(t *testing.T) {
	p := New(vec.New(1, 2)).
		WithMass(2).
		WithVelocity(vec.New(3, 4)).
		WithCharge(-1).
		WithSpecies(3).
		WithSize(0.5)

	if p.Pos != vec.New(1, 2) {
		t.Errorf("expected position (1,2), got %v", p.Pos)
	}
	if p.Mass != 2 {
		t.Errorf("expected mass 2, got %f", p.Mass)
	}
	if p.Vel != vec.New(3, 4) {
		t.Errorf("expected velocity (3,4), got %v", p.Vel)
	}
	if p.Species != 3 {
		t.Errorf("expected species 3, got %d", p.Species)
	}
	if !math.IsInf(p.Lifespan, 1) {
		t.Error("default lifespan should be unbounded")
	}
}

func TestApplyForce(t *testing.T) {
	p := New(vec.V{}).WithMass(2)
	p.ApplyForce(vec.New(4, 0))
	if p.Acc != vec.New(2, 0) {
		t.Errorf("expected acceleration (2,0), got %v", p.Acc)
	}
}

func TestApplyForce_ZeroMass(t *testing.T) {
	p := New(vec.V{}).WithMass(0)
	p.ApplyForce(vec.New(100, 100))
	if p.Acc != (vec.V{}) {
		t.Errorf("zero-mass particle must be force-immune, got %v", p.Acc)
	}
}

func TestLifeRatio(t *testing.T) {
	p := New(vec.V{}).WithLifespan(10)
	p.Age = 4
	if got := p.LifeRatio(); math.Abs(got-0.6) > 1e-12 {
		t.Errorf("expected life ratio 0.6, got %f", got)
	}

	unbounded := New(vec.V{})
	if unbounded.LifeRatio() != 1 {
		t.Error("unbounded lifespan should report ratio 1")
	}
}

func TestSystemCapacity(t *testing.T) {
	s := NewSystem(2)
	if !s.Add(New(vec.V{})) {
		t.Fatal("first insert should succeed")
	}
	if !s.Add(New(vec.V{})) {
		t.Fatal("second insert should succeed")
	}
	if s.Add(New(vec.V{})) {
		t.Error("insert beyond capacity should be rejected")
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 particles, got %d", s.Len())
	}
}

func TestSystemClear(t *testing.T) {
	s := NewSystem(16)
	for i := 0; i < 10; i++ {
		s.Add(New(vec.New(float64(i), 0)))
	}
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("expected empty system after clear, got %d", s.Len())
	}
}

func TestPruneDead(t *testing.T) {
	s := NewSystem(8)
	s.Add(New(vec.New(0, 0)).WithLifespan(1))
	s.Add(New(vec.New(1, 0)))
	s.Add(New(vec.New(2, 0)).WithLifespan(1))
	s.Add(New(vec.New(3, 0)))

	s.At(0).Age = 1.2
	s.At(2).Age = 1.0

	removed := s.PruneDead()
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 survivors, got %d", s.Len())
	}
	// Survivor order is preserved.
	if s.At(0).Pos.X != 1 || s.At(1).Pos.X != 3 {
		t.Errorf("survivor order not preserved: %v, %v", s.At(0).Pos, s.At(1).Pos)
	}

	// Pruning again without an age update removes nothing.
	if again := s.PruneDead(); again != 0 {
		t.Errorf("second prune removed %d particles", again)
	}
}

func TestPruneDead_TwoLargeSteps(t *testing.T) {
	// A particle with lifespan 1.0 aged by two steps of dt=0.6 must go.
	s := NewSystem(1)
	s.Add(New(vec.V{}).WithLifespan(1.0))
	s.At(0).Age += 0.6
	s.At(0).Age += 0.6
	if s.PruneDead() != 1 {
		t.Error("particle aged past its lifespan should be pruned")
	}
}

func TestAggregates(t *testing.T) {
	s := NewSystem(4)
	s.Add(New(vec.New(0, 0)).WithMass(1).WithVelocity(vec.New(2, 0)))
	s.Add(New(vec.New(4, 0)).WithMass(3))

	// 0.5 * 1 * 4 = 2
	if e := s.TotalEnergy(); math.Abs(e-2) > 1e-12 {
		t.Errorf("expected total energy 2, got %f", e)
	}

	com := s.CenterOfMass()
	if math.Abs(com.X-3) > 1e-12 || com.Y != 0 {
		t.Errorf("expected center of mass (3,0), got %v", com)
	}
}

func TestCenterOfMass_Empty(t *testing.T) {
	s := NewSystem(4)
	if s.CenterOfMass() != (vec.V{}) {
		t.Error("empty system should report zero center of mass")
	}
}
