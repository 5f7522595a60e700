// Package viz renders particle systems to the terminal using a
// braille pixel canvas.
package viz

import (
	"strings"

	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/vec"
)

// Braille Patterns: 2x4 dots per cell
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var dotMask = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights the sub-pixel at (x, y). The canvas holds (Width*2) by
// (Height*4) sub-pixels; out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= dotMask[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a sub-pixel line with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// World projects simulation coordinates onto a canvas. The y axis is
// flipped so world-up renders as screen-up.
type World struct {
	Canvas *Canvas
	Bounds vec.Rect
}

func NewWorld(w, h int, bounds vec.Rect) *World {
	return &World{Canvas: NewCanvas(w, h), Bounds: bounds}
}

func (w *World) project(pos vec.V) (int, int, bool) {
	b := w.Bounds
	if !b.Contains(pos) {
		return 0, 0, false
	}
	fx := (pos.X - b.Min.X) / b.Width()
	fy := (pos.Y - b.Min.Y) / b.Height()
	x := int(fx * float64(w.Canvas.Width*2-1))
	y := int((1 - fy) * float64(w.Canvas.Height*4-1))
	return x, y, true
}

// Mark lights the sub-pixel under a world position.
func (w *World) Mark(pos vec.V) {
	if x, y, ok := w.project(pos); ok {
		w.Canvas.Set(x, y)
	}
}

// Segment draws a world-space line.
func (w *World) Segment(from, to vec.V) {
	x0, y0, ok0 := w.project(from)
	x1, y1, ok1 := w.project(to)
	if ok0 && ok1 {
		w.Canvas.DrawLine(x0, y0, x1, y1)
	}
}

// Plot clears the canvas and marks every particle.
func (w *World) Plot(sys *particle.System) {
	w.Canvas.Clear()
	for _, p := range sys.Particles() {
		w.Mark(p.Pos)
	}
}

func (w *World) String() string { return w.Canvas.String() }
