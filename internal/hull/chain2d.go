package hull

import (
	"fmt"
	"sort"
)

// Chain2D computes planar convex hulls with the monotone chain sweep. Facets
// are the hull edges in counter-clockwise order; Volume is the enclosed area.
type Chain2D struct{}

func (Chain2D) Compute(points [][]float64) (Result, error) {
	for i, p := range points {
		if len(p) != 2 {
			return Result{}, fmt.Errorf("%w: point %d has %d coordinates, want 2", ErrDimension, i, len(p))
		}
	}
	if len(points) < 3 {
		return Result{}, fmt.Errorf("%w: %d points", ErrFlat, len(points))
	}

	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		pa, pb := points[order[a]], points[order[b]]
		if pa[0] != pb[0] {
			return pa[0] < pb[0]
		}
		return pa[1] < pb[1]
	})

	// Lower chain left to right, upper chain right to left. Collinear
	// points are popped so every retained edge is a genuine facet.
	var lower []int
	for _, i := range order {
		for len(lower) >= 2 && cross2(points[lower[len(lower)-2]], points[lower[len(lower)-1]], points[i]) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, i)
	}
	var upper []int
	for k := len(order) - 1; k >= 0; k-- {
		i := order[k]
		for len(upper) >= 2 && cross2(points[upper[len(upper)-2]], points[upper[len(upper)-1]], points[i]) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, i)
	}

	ring := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(ring) < 3 {
		return Result{}, fmt.Errorf("%w: hull collapsed to %d vertices", ErrFlat, len(ring))
	}

	facets := make([][]int, len(ring))
	area := 0.0
	for i := range ring {
		j := (i + 1) % len(ring)
		facets[i] = []int{ring[i], ring[j]}
		p, q := points[ring[i]], points[ring[j]]
		area += p[0]*q[1] - q[0]*p[1]
	}
	return Result{Facets: facets, Volume: area / 2}, nil
}

// cross2 is the z component of (b-a)x(c-a); positive for a left turn.
func cross2(a, b, c []float64) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}
