package workspace

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Axis is a closed interval sampled at a fixed number of evenly spaced
// steps. Steps == 1 collapses the axis to its lower end.
type Axis struct {
	Min   float64
	Max   float64
	Steps int
}

func (a Axis) values() []float64 {
	if a.Steps == 1 {
		return []float64{a.Min}
	}
	return floats.Span(make([]float64, a.Steps), a.Min, a.Max)
}

// Grid is the cartesian product of its axes. Points are enumerated in
// row-major order with the last axis varying fastest.
type Grid struct {
	Axes []Axis
}

func (g Grid) validate() error {
	if len(g.Axes) == 0 {
		return fmt.Errorf("workspace: grid has no axes")
	}
	for i, ax := range g.Axes {
		if ax.Steps < 1 {
			return fmt.Errorf("workspace: axis %d has %d steps, want at least 1", i, ax.Steps)
		}
	}
	return nil
}

// Size returns the number of grid points.
func (g Grid) Size() int {
	if len(g.Axes) == 0 {
		return 0
	}
	total := 1
	for _, ax := range g.Axes {
		total *= ax.Steps
	}
	return total
}

// Points enumerates all poses on the grid, or nil for an invalid grid.
func (g Grid) Points() [][]float64 {
	if g.validate() != nil {
		return nil
	}
	values := make([][]float64, len(g.Axes))
	for i, ax := range g.Axes {
		values[i] = ax.values()
	}

	points := make([][]float64, 0, g.Size())
	idx := make([]int, len(g.Axes))
	for {
		pose := make([]float64, len(g.Axes))
		for j := range idx {
			pose[j] = values[j][idx[j]]
		}
		points = append(points, pose)

		j := len(idx) - 1
		for ; j >= 0; j-- {
			idx[j]++
			if idx[j] < g.Axes[j].Steps {
				break
			}
			idx[j] = 0
		}
		if j < 0 {
			break
		}
	}
	return points
}
