package sphere

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/wrenchlab/wrenchset/internal/polytope"
)

// Chebyshev returns the largest sphere inscribable anywhere in p. It solves
// the standard Chebyshev-center program over (center, radius): maximize the
// radius subject to A_i·o + ||A_i||·r <= b_i for every half-space, so the
// optimum dominates the capacity margin of any fixed center. An unbounded
// polytope or contradictory half-spaces surface as the solver's typed
// errors.
func (ap Approximator) Chebyshev(ctx context.Context, p *polytope.Polytope) (Sphere, error) {
	if p.Empty() {
		return Sphere{}, ErrEmptyPolytope
	}
	n := p.Dim()
	rows := len(p.B)

	obj := make([]float64, n+1)
	obj[n] = 1
	g := mat.NewDense(rows, n+1, nil)
	for i := 0; i < rows; i++ {
		row := p.A.RawRowView(i)
		for j := 0; j < n; j++ {
			g.Set(i, j, row[j])
		}
		g.Set(i, n, floats.Norm(row, 2))
	}

	x, err := ap.linear().Maximize(ctx, obj, g, p.B)
	if err != nil {
		return Sphere{}, fmt.Errorf("chebyshev center: %w", err)
	}
	return Sphere{
		Center: append([]float64(nil), x[:n]...),
		Radius: x[n],
	}, nil
}
