// Package spatial provides acceleration structures for radius and
// neighbor queries over particle positions.
//
// Both strategies are rebuilt wholesale every step from the current
// positions; they are never incrementally maintained. Returned indices
// refer to the slice passed to Rebuild and are valid only until the
// next rebuild.
package spatial

import (
	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/vec"
)

// Index answers position queries over the particle set it was last
// rebuilt from.
type Index interface {
	Rebuild(ps []particle.Particle)
	// QueryRadius returns the indices of particles within radius of pos.
	QueryRadius(pos vec.V, radius float64) []int
	// QueryNeighbors returns the indices within radius of particle i,
	// excluding i itself.
	QueryNeighbors(i int, radius float64) []int
}
