package optim

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Simplex is the LinearSolver backed by Dantzig's simplex method after
// conversion of the inequality form to standard form.
type Simplex struct {
	Tol float64 // pivot tolerance, zero means 1e-10
}

func (s Simplex) Maximize(ctx context.Context, c []float64, g mat.Matrix, h []float64) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tol := s.Tol
	if tol == 0 {
		tol = 1e-10
	}

	// lp minimizes, so negate the objective.
	neg := make([]float64, len(c))
	for i, v := range c {
		neg[i] = -v
	}

	cs, as, bs := lp.Convert(neg, g, h, nil, nil)
	_, xs, err := lp.Simplex(cs, as, bs, tol, nil)
	if err != nil {
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return nil, fmt.Errorf("%w: %v", ErrInfeasible, err)
		case errors.Is(err, lp.ErrUnbounded):
			return nil, fmt.Errorf("%w: %v", ErrUnbounded, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrNoConvergence, err)
		}
	}

	// Convert splits each free variable into positive and negative parts
	// laid out as [x+ x- slack].
	x := make([]float64, len(c))
	for j := range x {
		x[j] = xs[j] - xs[len(c)+j]
	}
	return x, nil
}
