package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/wrenchlab/wrenchset/internal/polytope"
	"github.com/wrenchlab/wrenchset/internal/sphere"
	"github.com/wrenchlab/wrenchset/internal/workspace"
)

// PolytopeToSVG renders a planar wrench set with sphere approximations and
// a reference wrench marker. Returns "" when the polytope is not planar or
// carries no vertex geometry.
func PolytopeToSVG(p *polytope.Polytope, spheres []sphere.Sphere, ref []float64, width, height int) string {
	if p == nil || p.Vertices == nil || p.Dim() != 2 || len(p.FacetIndices) == 0 {
		return ""
	}
	rows, _ := p.Vertices.Dims()
	if rows == 0 {
		return ""
	}

	// Bounds over vertices, sphere extents and the reference point
	minX, maxX := p.Vertices.At(0, 0), p.Vertices.At(0, 0)
	minY, maxY := p.Vertices.At(0, 1), p.Vertices.At(0, 1)
	grow := func(x, y float64) {
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	for i := 1; i < rows; i++ {
		grow(p.Vertices.At(i, 0), p.Vertices.At(i, 1))
	}
	for _, sp := range spheres {
		if len(sp.Center) != 2 {
			continue
		}
		r := sp.Radius
		if r < 0 || math.IsInf(r, 0) || math.IsNaN(r) {
			r = 0
		}
		grow(sp.Center[0]-r, sp.Center[1]-r)
		grow(sp.Center[0]+r, sp.Center[1]+r)
	}
	if len(ref) == 2 {
		grow(ref[0], ref[1])
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1

	// Uniform scale keeps circles circular
	scale := math.Min(float64(width)/(maxX-minX), float64(height)/(maxY-minY))
	offX := (float64(width) - (maxX-minX)*scale) / 2
	offY := (float64(height) - (maxY-minY)*scale) / 2

	toX := func(x float64) float64 { return offX + (x-minX)*scale }
	toY := func(y float64) float64 { return float64(height) - offY - (y-minY)*scale }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// Boundary path follows the facet chain; edges dropped by the builder
	// break the chain, so restart with a move when the ends do not meet.
	sb.WriteString(`<path fill="#00ff00" fill-opacity="0.15" stroke="#00ff00" stroke-width="1.5" d="`)
	prevEnd := -1
	for _, f := range p.FacetIndices {
		if len(f) != 2 || f[0] >= rows || f[1] >= rows {
			continue
		}
		if f[0] != prevEnd {
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", toX(p.Vertices.At(f[0], 0)), toY(p.Vertices.At(f[0], 1))))
		}
		sb.WriteString(fmt.Sprintf(" L%.1f,%.1f ", toX(p.Vertices.At(f[1], 0)), toY(p.Vertices.At(f[1], 1))))
		prevEnd = f[1]
	}
	sb.WriteString("\"/>\n")

	for _, sp := range spheres {
		if len(sp.Center) != 2 {
			continue
		}
		cx, cy := toX(sp.Center[0]), toY(sp.Center[1])
		if sp.Radius > 0 && !math.IsInf(sp.Radius, 0) {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#00bfff" stroke-width="1.5"/>`+"\n",
				cx, cy, sp.Radius*scale))
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2" fill="#00bfff"/>`+"\n", cx, cy))
	}

	if len(ref) == 2 {
		x, y := toX(ref[0]), toY(ref[1])
		sb.WriteString(fmt.Sprintf(`<path stroke="#ff5555" stroke-width="1.5" d="M%.1f,%.1f L%.1f,%.1f M%.1f,%.1f L%.1f,%.1f"/>`+"\n",
			x-5, y, x+5, y, x, y-5, x, y+5))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// MarginProfileToSVG plots the capacity margin along a pose path. The pen
// lifts across infeasible poses.
func MarginProfileToSVG(points []workspace.Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	feasible := 0
	var minY, maxY float64
	for _, p := range points {
		if !p.Feasible || math.IsNaN(p.Margin) {
			continue
		}
		if feasible == 0 {
			minY, maxY = p.Margin, p.Margin
		} else {
			minY = math.Min(minY, p.Margin)
			maxY = math.Max(maxY, p.Margin)
		}
		feasible++
	}
	if feasible < 2 {
		return ""
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		width, height, width, height, strokeColor))

	penUp := true
	for i, p := range points {
		if !p.Feasible || math.IsNaN(p.Margin) {
			penUp = true
			continue
		}

		x := float64(i) / float64(len(points)-1) * float64(width)
		y := float64(height) - (p.Margin-minY)/rangeY*float64(height)

		if penUp {
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			penUp = false
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
