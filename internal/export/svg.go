// Package export writes run artifacts in portable formats.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/partisim/internal/particle"
	"github.com/san-kum/partisim/internal/vec"
	"github.com/san-kum/partisim/internal/viz"
)

var speciesPalette = []string{
	"#ff4d4d", // red
	"#4d4dff", // blue
	"#4dff4d", // green
	"#ffff4d", // yellow
	"#ff4dff", // magenta
	"#4dffff", // cyan
	"#ff9933", // orange
	"#9933ff", // purple
}

// SpeciesColor returns the display color of a species.
func SpeciesColor(species int) string {
	if species >= 0 && species < len(speciesPalette) {
		return speciesPalette[species]
	}
	return "#cccccc"
}

// CanvasToSVG converts a braille canvas to SVG, one circle per lit
// sub-pixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	dotMask := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotMask[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// ScatterToSVG renders a particle snapshot colored by species.
func ScatterToSVG(sys *particle.System, bounds vec.Rect, width, height int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, p := range sys.Particles() {
		x, y, ok := project(p.Pos, bounds, width, height)
		if !ok {
			continue
		}
		r := p.Size
		if r < 1 {
			r = 1
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, r, SpeciesColor(p.Species)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// Path is one particle's recorded trajectory.
type Path struct {
	Species int
	Points  []vec.V
}

// TrajectoriesToSVG renders recorded paths, one polyline per particle,
// colored by species.
func TrajectoriesToSVG(paths []Path, bounds vec.Rect, width, height int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, path := range paths {
		if len(path.Points) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1" d="`, SpeciesColor(path.Species)))
		first := true
		for _, pt := range path.Points {
			x, y, ok := project(pt, bounds, width, height)
			if !ok {
				continue
			}
			if first {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
				first = false
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func project(pos vec.V, bounds vec.Rect, width, height int) (float64, float64, bool) {
	if !bounds.Contains(pos) {
		return 0, 0, false
	}
	x := (pos.X - bounds.Min.X) / bounds.Width() * float64(width)
	y := float64(height) - (pos.Y-bounds.Min.Y)/bounds.Height()*float64(height)
	return x, y, true
}
