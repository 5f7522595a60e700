// Package vec provides the 2D vector and rectangle primitives used by
// the simulation, built on gonum's spatial/r2.
package vec

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// V is a 2D vector in world space. It shares r2.Vec's layout and adds
// the method set the simulation code chains; the math delegates to the
// r2 package functions.
type V struct {
	X, Y float64
}

func New(x, y float64) V { return V{X: x, Y: y} }

func (v V) Add(u V) V        { return V(r2.Add(r2.Vec(v), r2.Vec(u))) }
func (v V) Sub(u V) V        { return V(r2.Sub(r2.Vec(v), r2.Vec(u))) }
func (v V) Scale(f float64) V { return V(r2.Scale(f, r2.Vec(v))) }

func Norm(v V) float64  { return r2.Norm(r2.Vec(v)) }
func Norm2(v V) float64 { return r2.Norm2(r2.Vec(v)) }

func Dot(a, b V) float64 { return r2.Dot(r2.Vec(a), r2.Vec(b)) }

func Dist(a, b V) float64  { return Norm(a.Sub(b)) }
func Dist2(a, b V) float64 { return Norm2(a.Sub(b)) }

// UnitOrZero returns the unit vector of v, or the zero vector when v
// has no length. Degenerate geometry must never produce NaN.
func UnitOrZero(v V) V {
	n := Norm(v)
	if n == 0 {
		return V{}
	}
	return v.Scale(1 / n)
}

// Perp returns v rotated 90 degrees counterclockwise.
func Perp(v V) V { return V{X: -v.Y, Y: v.X} }

// ClampNorm limits the length of v to max. A non-positive max leaves v
// unclamped.
func ClampNorm(v V, max float64) V {
	if max <= 0 {
		return v
	}
	n2 := Norm2(v)
	if n2 <= max*max {
		return v
	}
	return v.Scale(max / math.Sqrt(n2))
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max V
}

func NewRect(minX, minY, maxX, maxY float64) Rect {
	return Rect{Min: V{X: minX, Y: minY}, Max: V{X: maxX, Y: maxY}}
}

// Contains reports whether p lies inside r, edges inclusive.
func (r Rect) Contains(p V) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return !(r.Max.X < o.Min.X || r.Min.X > o.Max.X ||
		r.Max.Y < o.Min.Y || r.Min.Y > o.Max.Y)
}

func (r Rect) Center() V {
	return V{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }
