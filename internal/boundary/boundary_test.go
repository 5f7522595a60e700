package boundary

import (
	"math"
	"testing"

	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/vec"
)

func escaped() *particle.System {
	sys := particle.NewSystem(4)
	sys.Add(particle.New(vec.New(12, 0)).WithVelocity(vec.New(5, 1)))
	return sys
}

var bounds = vec.NewRect(-10, -10, 10, 10)

func TestReflective(t *testing.T) {
	sys := escaped()
	New(bounds, Reflective).Apply(sys)

	p := sys.At(0)
	if p.Pos.X != 10 {
		t.Errorf("expected clamp to 10, got %f", p.Pos.X)
	}
	if math.Abs(p.Vel.X+5*0.8) > 1e-12 {
		t.Errorf("expected damped inverted vx = -4, got %f", p.Vel.X)
	}
	if p.Vel.Y != 1 {
		t.Errorf("vy should be untouched, got %f", p.Vel.Y)
	}
}

func TestElastic(t *testing.T) {
	sys := escaped()
	New(bounds, Elastic).Apply(sys)

	p := sys.At(0)
	if p.Pos.X != 10 {
		t.Errorf("expected clamp to 10, got %f", p.Pos.X)
	}
	if p.Vel.X != -5 {
		t.Errorf("elastic bounce must keep speed, got %f", p.Vel.X)
	}
}

func TestWrapping(t *testing.T) {
	sys := escaped()
	New(bounds, Wrapping).Apply(sys)

	p := sys.At(0)
	if p.Pos.X != -10 {
		t.Errorf("expected teleport to opposite edge, got %f", p.Pos.X)
	}
	if p.Vel.X != 5 {
		t.Errorf("wrapping must not change velocity, got %f", p.Vel.X)
	}
}

func TestAbsorbing(t *testing.T) {
	sys := escaped()
	sys.Add(particle.New(vec.New(0, 0)))

	New(bounds, Absorbing).Apply(sys)
	sys.PruneDead()

	if sys.Len() != 1 {
		t.Fatalf("expected only the inside particle to survive, got %d", sys.Len())
	}
	if sys.At(0).Pos != (vec.V{}) {
		t.Errorf("wrong survivor: %v", sys.At(0).Pos)
	}
}

func TestInsideUntouched(t *testing.T) {
	for _, policy := range []Policy{Reflective, Wrapping, Absorbing, Elastic} {
		sys := particle.NewSystem(1)
		sys.Add(particle.New(vec.New(3, -7)).WithVelocity(vec.New(1, 2)))
		if n := New(bounds, policy).Apply(sys); n != 0 {
			t.Errorf("%s: expected 0 touched, got %d", policy, n)
		}

		p := sys.At(0)
		if p.Pos != vec.New(3, -7) || p.Vel != vec.New(1, 2) {
			t.Errorf("%s: in-bounds particle modified: pos=%v vel=%v", policy, p.Pos, p.Vel)
		}
	}
}

func TestTouchedCount(t *testing.T) {
	sys := particle.NewSystem(3)
	sys.Add(particle.New(vec.New(12, 0)))
	sys.Add(particle.New(vec.New(0, -15)))
	sys.Add(particle.New(vec.New(1, 1)))
	if n := New(bounds, Reflective).Apply(sys); n != 2 {
		t.Errorf("expected 2 touched, got %d", n)
	}
}

func TestParsePolicy(t *testing.T) {
	for _, name := range []string{"reflective", "wrapping", "absorbing", "elastic"} {
		p, err := ParsePolicy(name)
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		if p.String() != name {
			t.Errorf("round trip %q -> %q", name, p.String())
		}
	}
	if _, err := ParsePolicy("bouncy"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
