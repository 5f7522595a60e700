package spatial

import (
	"math"

	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/vec"
)

type cellKey struct{ x, y int }

// Grid buckets particle indices into fixed-size square cells keyed by
// floor((position - origin) / cellSize).
type Grid struct {
	cellSize  float64
	origin    vec.V
	cells     map[cellKey][]int
	positions []vec.V
}

func NewGrid(cellSize float64, bounds vec.Rect) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid{
		cellSize: cellSize,
		origin:   bounds.Min,
		cells:    make(map[cellKey][]int),
	}
}

func (g *Grid) Rebuild(ps []particle.Particle) {
	clear(g.cells)
	g.positions = g.positions[:0]

	for i := range ps {
		pos := ps[i].Pos
		key := g.cellOf(pos)
		g.cells[key] = append(g.cells[key], i)
		g.positions = append(g.positions, pos)
	}
}

func (g *Grid) cellOf(p vec.V) cellKey {
	return cellKey{
		x: int(math.Floor((p.X - g.origin.X) / g.cellSize)),
		y: int(math.Floor((p.Y - g.origin.Y) / g.cellSize)),
	}
}

// QueryRadius visits the bounding box of cells overlapping the query
// circle and filters candidates by exact distance.
func (g *Grid) QueryRadius(pos vec.V, radius float64) []int {
	var out []int
	r := vec.New(radius, radius)
	min := g.cellOf(pos.Sub(r))
	max := g.cellOf(pos.Add(r))
	r2 := radius * radius

	for x := min.x; x <= max.x; x++ {
		for y := min.y; y <= max.y; y++ {
			for _, idx := range g.cells[cellKey{x, y}] {
				if vec.Dist2(pos, g.positions[idx]) <= r2 {
					out = append(out, idx)
				}
			}
		}
	}
	return out
}

func (g *Grid) QueryNeighbors(i int, radius float64) []int {
	if i < 0 || i >= len(g.positions) {
		return nil
	}
	found := g.QueryRadius(g.positions[i], radius)
	out := found[:0]
	for _, idx := range found {
		if idx != i {
			out = append(out, idx)
		}
	}
	return out
}

// CellCount returns the number of occupied cells.
func (g *Grid) CellCount() int { return len(g.cells) }

// MaxPerCell returns the size of the most crowded cell.
func (g *Grid) MaxPerCell() int {
	max := 0
	for _, indices := range g.cells {
		if len(indices) > max {
			max = len(indices)
		}
	}
	return max
}
