package optim

import (
	"context"
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Solver failure modes. Callers distinguish a valid zero-size optimum from
// these explicit failure states.
var (
	// ErrInfeasible indicates constraints that admit no solution.
	ErrInfeasible = errors.New("optim: constraints are infeasible")

	// ErrUnbounded indicates an objective unbounded over the feasible set.
	ErrUnbounded = errors.New("optim: objective is unbounded")

	// ErrNoConvergence indicates an iterative method that stopped without
	// reaching an optimum.
	ErrNoConvergence = errors.New("optim: solver failed to converge")
)

// LinearSolver maximizes the linear objective c·x subject to G·x <= h.
// Implementations report ErrInfeasible and ErrUnbounded as such.
type LinearSolver interface {
	Maximize(ctx context.Context, c []float64, g mat.Matrix, h []float64) ([]float64, error)
}

// Problem is a constrained minimization in inequality form: minimize
// Objective subject to G·x <= H row-wise and Constraint(x) <= 0. G and
// Constraint may be nil when that constraint family is absent.
type Problem struct {
	Objective  func(x []float64) float64
	G          mat.Matrix
	H          []float64
	Constraint func(x []float64) float64
}

// ConstrainedMinimizer searches for a feasible minimizer of p from the
// starting point x0, returning the solution and its objective value.
type ConstrainedMinimizer interface {
	Minimize(ctx context.Context, p Problem, x0 []float64) ([]float64, float64, error)
}

// residual is the largest constraint violation at x, zero when feasible.
func residual(p Problem, x []float64) float64 {
	worst := 0.0
	if p.G != nil {
		rows, cols := p.G.Dims()
		for i := 0; i < rows; i++ {
			s := -p.H[i]
			for j := 0; j < cols; j++ {
				s += p.G.At(i, j) * x[j]
			}
			if s > worst {
				worst = s
			}
		}
	}
	if p.Constraint != nil {
		if s := p.Constraint(x); s > worst {
			worst = s
		}
	}
	return worst
}
