package spatial

import (
	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/vec"
)

const noChild = -1

type qnode struct {
	bounds   vec.Rect
	items    []int
	children [4]int32
	depth    int
}

func (n *qnode) leaf() bool { return n.children[0] == noChild }

// Quadtree is an adaptive quadtree over a fixed bounding box. Nodes
// live in a flat arena addressed by integer handles, so the tree can
// be discarded and rebuilt each step without pointer churn.
type Quadtree struct {
	bounds    vec.Rect
	maxItems  int
	maxDepth  int
	nodes     []qnode
	positions []vec.V
}

// NewQuadtree creates a quadtree that subdivides a node once it holds
// maxItems particles, down to maxDepth levels.
func NewQuadtree(bounds vec.Rect, maxItems, maxDepth int) *Quadtree {
	if maxItems < 1 {
		maxItems = 1
	}
	if maxDepth < 1 {
		maxDepth = 1
	}
	return &Quadtree{bounds: bounds, maxItems: maxItems, maxDepth: maxDepth}
}

func (q *Quadtree) Rebuild(ps []particle.Particle) {
	q.nodes = q.nodes[:0]
	q.nodes = append(q.nodes, qnode{
		bounds:   q.bounds,
		children: [4]int32{noChild, noChild, noChild, noChild},
	})
	q.positions = q.positions[:0]

	for i := range ps {
		pos := ps[i].Pos
		q.positions = append(q.positions, pos)
		// Positions outside the tree bounds are not indexed; the
		// boundary handler keeps live particles inside the domain
		// before the next rebuild.
		q.insert(0, i, pos)
	}
}

func (q *Quadtree) insert(n int32, idx int, pos vec.V) bool {
	if !q.nodes[n].bounds.Contains(pos) {
		return false
	}

	if q.nodes[n].leaf() {
		if len(q.nodes[n].items) < q.maxItems || q.nodes[n].depth >= q.maxDepth {
			q.nodes[n].items = append(q.nodes[n].items, idx)
			return true
		}
		q.subdivide(n)
	}

	for _, c := range q.nodes[n].children {
		if q.insert(c, idx, pos) {
			return true
		}
	}

	// Points exactly on a subdivision boundary can be rejected by every
	// quadrant; keep them in the current node.
	q.nodes[n].items = append(q.nodes[n].items, idx)
	return true
}

func (q *Quadtree) subdivide(n int32) {
	// Capture before appending: growing the arena may move the slice.
	bounds := q.nodes[n].bounds
	depth := q.nodes[n].depth
	center := bounds.Center()

	quadrants := [4]vec.Rect{
		{Min: bounds.Min, Max: center},
		{Min: vec.New(center.X, bounds.Min.Y), Max: vec.New(bounds.Max.X, center.Y)},
		{Min: vec.New(bounds.Min.X, center.Y), Max: vec.New(center.X, bounds.Max.Y)},
		{Min: center, Max: bounds.Max},
	}

	for i, quad := range quadrants {
		q.nodes = append(q.nodes, qnode{
			bounds:   quad,
			children: [4]int32{noChild, noChild, noChild, noChild},
			depth:    depth + 1,
		})
		q.nodes[n].children[i] = int32(len(q.nodes) - 1)
	}

	items := q.nodes[n].items
	q.nodes[n].items = nil
	for _, idx := range items {
		pos := q.positions[idx]
		placed := false
		for _, c := range q.nodes[n].children {
			if q.insert(c, idx, pos) {
				placed = true
				break
			}
		}
		if !placed {
			q.nodes[n].items = append(q.nodes[n].items, idx)
		}
	}
}

// QueryRadius prunes subtrees whose bounds miss the query's bounding
// square, then filters by exact squared distance.
func (q *Quadtree) QueryRadius(pos vec.V, radius float64) []int {
	if len(q.nodes) == 0 {
		return nil
	}
	box := vec.Rect{
		Min: pos.Sub(vec.New(radius, radius)),
		Max: pos.Add(vec.New(radius, radius)),
	}
	var out []int
	q.query(0, box, pos, radius*radius, &out)
	return out
}

func (q *Quadtree) query(n int32, box vec.Rect, pos vec.V, r2 float64, out *[]int) {
	if !q.nodes[n].bounds.Intersects(box) {
		return
	}
	for _, idx := range q.nodes[n].items {
		if vec.Dist2(pos, q.positions[idx]) <= r2 {
			*out = append(*out, idx)
		}
	}
	if q.nodes[n].leaf() {
		return
	}
	for _, c := range q.nodes[n].children {
		q.query(c, box, pos, r2, out)
	}
}

func (q *Quadtree) QueryNeighbors(i int, radius float64) []int {
	if i < 0 || i >= len(q.positions) {
		return nil
	}
	found := q.QueryRadius(q.positions[i], radius)
	out := found[:0]
	for _, idx := range found {
		if idx != i {
			out = append(out, idx)
		}
	}
	return out
}

// NodeCount returns the number of arena nodes in use.
func (q *Quadtree) NodeCount() int { return len(q.nodes) }

// Depth returns the deepest level reached by the last rebuild.
func (q *Quadtree) Depth() int {
	max := 0
	for i := range q.nodes {
		if q.nodes[i].depth > max {
			max = q.nodes[i].depth
		}
	}
	return max
}
