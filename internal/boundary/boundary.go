// Package boundary applies the domain-edge policy after integration.
package boundary

import (
	"fmt"

	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/vec"
)

type Policy int

const (
	// Reflective inverts and damps the velocity component that crossed
	// the edge and clamps the position back into bounds.
	Reflective Policy = iota
	// Wrapping teleports the particle to the opposite edge.
	Wrapping
	// Absorbing removes the particle on contact: its lifespan is
	// zeroed and the next prune pass reaps it.
	Absorbing
	// Elastic reflects without energy loss (restitution 1).
	Elastic
)

func (p Policy) String() string {
	switch p {
	case Reflective:
		return "reflective"
	case Wrapping:
		return "wrapping"
	case Absorbing:
		return "absorbing"
	case Elastic:
		return "elastic"
	default:
		return "unknown"
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "reflective":
		return Reflective, nil
	case "wrapping":
		return Wrapping, nil
	case "absorbing":
		return Absorbing, nil
	case "elastic":
		return Elastic, nil
	default:
		return 0, fmt.Errorf("unknown boundary policy %q", s)
	}
}

// Handler clamps, reflects, wraps or absorbs particles that left the
// rectangular domain. Restitution is the velocity fraction kept on a
// Reflective bounce; Elastic always keeps all of it.
type Handler struct {
	Bounds      vec.Rect
	Policy      Policy
	Restitution float64
}

func New(bounds vec.Rect, policy Policy) *Handler {
	return &Handler{Bounds: bounds, Policy: policy, Restitution: 0.8}
}

// Apply enforces the boundary on every particle and reports how many
// were touched. Callers with position-history integrators use a
// non-zero count as the signal to reseed.
func (h *Handler) Apply(sys *particle.System) int {
	touched := 0
	ps := sys.Particles()
	for i := range ps {
		if h.apply(&ps[i]) {
			touched++
		}
	}
	return touched
}

func (h *Handler) apply(p *particle.Particle) bool {
	switch h.Policy {
	case Reflective:
		return h.reflect(p, h.Restitution)
	case Elastic:
		return h.reflect(p, 1)
	case Wrapping:
		return h.wrap(p)
	case Absorbing:
		if !h.Bounds.Contains(p.Pos) {
			p.Kill()
			return true
		}
	}
	return false
}

func (h *Handler) reflect(p *particle.Particle, restitution float64) bool {
	min, max := h.Bounds.Min, h.Bounds.Max
	touched := false

	if p.Pos.X < min.X || p.Pos.X > max.X {
		p.Vel.X = -p.Vel.X * restitution
		p.Pos.X = clamp(p.Pos.X, min.X, max.X)
		touched = true
	}
	if p.Pos.Y < min.Y || p.Pos.Y > max.Y {
		p.Vel.Y = -p.Vel.Y * restitution
		p.Pos.Y = clamp(p.Pos.Y, min.Y, max.Y)
		touched = true
	}
	return touched
}

func (h *Handler) wrap(p *particle.Particle) bool {
	min, max := h.Bounds.Min, h.Bounds.Max
	touched := false

	if p.Pos.X < min.X {
		p.Pos.X = max.X
		touched = true
	} else if p.Pos.X > max.X {
		p.Pos.X = min.X
		touched = true
	}
	if p.Pos.Y < min.Y {
		p.Pos.Y = max.Y
		touched = true
	} else if p.Pos.Y > max.Y {
		p.Pos.Y = min.Y
		touched = true
	}
	return touched
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
