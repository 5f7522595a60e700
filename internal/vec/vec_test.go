package vec

import (
	"math"
	"testing"
)

func TestArithmetic(t *testing.T) {
	// Add, Sub and Scale chain as methods on V.
	v := New(1, 2).Add(New(3, 4)).Sub(New(2, 2)).Scale(0.5)
	if v != New(1, 2) {
		t.Errorf("expected (1,2), got %v", v)
	}
	if got := New(2, 3).Scale(-2); got != New(-4, -6) {
		t.Errorf("expected (-4,-6), got %v", got)
	}
}

func TestUnitOrZero(t *testing.T) {
	u := UnitOrZero(New(3, 4))
	if math.Abs(Norm(u)-1) > 1e-12 {
		t.Errorf("expected unit length, got %f", Norm(u))
	}
	if UnitOrZero(V{}) != (V{}) {
		t.Error("zero vector should normalize to zero, not NaN")
	}
}

func TestPerp(t *testing.T) {
	v := New(2, 1)
	p := Perp(v)
	if Dot(v, p) != 0 {
		t.Errorf("perpendicular should have zero dot product, got %f", Dot(v, p))
	}
	// Counterclockwise: +x rotates to +y.
	if Perp(New(1, 0)) != New(0, 1) {
		t.Errorf("expected (0,1), got %v", Perp(New(1, 0)))
	}
}

func TestClampNorm(t *testing.T) {
	v := ClampNorm(New(3, 4), 2.5)
	if math.Abs(Norm(v)-2.5) > 1e-12 {
		t.Errorf("expected length 2.5, got %f", Norm(v))
	}

	v = ClampNorm(New(1, 0), 5)
	if v != New(1, 0) {
		t.Errorf("short vector should be untouched, got %v", v)
	}

	v = ClampNorm(New(3, 4), 0)
	if v != New(3, 4) {
		t.Errorf("non-positive max should disable clamping, got %v", v)
	}
}

func TestDist(t *testing.T) {
	if d := Dist(New(0, 0), New(3, 4)); d != 5 {
		t.Errorf("expected 5, got %f", d)
	}
	if d2 := Dist2(New(1, 1), New(4, 5)); d2 != 25 {
		t.Errorf("expected 25, got %f", d2)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(-1, -1, 1, 1)
	if !r.Contains(New(0, 0)) {
		t.Error("interior point should be contained")
	}
	if !r.Contains(New(1, 1)) {
		t.Error("edges are inclusive")
	}
	if r.Contains(New(1.001, 0)) {
		t.Error("exterior point should not be contained")
	}
}

func TestRectIntersects(t *testing.T) {
	a := NewRect(0, 0, 2, 2)
	if !a.Intersects(NewRect(1, 1, 3, 3)) {
		t.Error("overlapping rects should intersect")
	}
	if !a.Intersects(NewRect(2, 0, 4, 2)) {
		t.Error("touching rects should intersect")
	}
	if a.Intersects(NewRect(3, 3, 4, 4)) {
		t.Error("disjoint rects should not intersect")
	}
}

func TestRectGeometry(t *testing.T) {
	r := NewRect(-2, -1, 4, 3)
	if r.Center() != New(1, 1) {
		t.Errorf("expected center (1,1), got %v", r.Center())
	}
	if r.Width() != 6 || r.Height() != 4 {
		t.Errorf("expected 6x4, got %fx%f", r.Width(), r.Height())
	}
}
