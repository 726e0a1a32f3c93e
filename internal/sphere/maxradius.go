package sphere

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/wrenchlab/wrenchset/internal/optim"
	"github.com/wrenchlab/wrenchset/internal/polytope"
)

// MaxContaining returns the largest sphere inside p that keeps the
// reference wrench ref enclosed with slack buffer: over (center, radius) it
// minimizes the negative radius subject to the Chebyshev constraint family
// plus ||center − ref|| + buffer <= radius, starting from the origin. A
// reference too close to the boundary for the requested buffer surfaces as
// the minimizer's infeasibility error.
func (ap Approximator) MaxContaining(ctx context.Context, p *polytope.Polytope, ref []float64, buffer float64) (Sphere, error) {
	if p.Empty() {
		return Sphere{}, ErrEmptyPolytope
	}
	if err := checkDim(p, ref); err != nil {
		return Sphere{}, err
	}
	n := p.Dim()
	rows := len(p.B)

	g := mat.NewDense(rows, n+1, nil)
	for i := 0; i < rows; i++ {
		row := p.A.RawRowView(i)
		for j := 0; j < n; j++ {
			g.Set(i, j, row[j])
		}
		g.Set(i, n, floats.Norm(row, 2))
	}

	prob := optim.Problem{
		Objective: func(x []float64) float64 { return -x[n] },
		G:         g,
		H:         p.B,
		Constraint: func(x []float64) float64 {
			return floats.Distance(x[:n], ref, 2) + buffer - x[n]
		},
	}

	x, _, err := ap.constrained().Minimize(ctx, prob, make([]float64, n+1))
	if err != nil {
		return Sphere{}, fmt.Errorf("max containing sphere: %w", err)
	}
	return Sphere{
		Center: append([]float64(nil), x[:n]...),
		Radius: x[n],
	}, nil
}
