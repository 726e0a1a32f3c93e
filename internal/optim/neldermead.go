package optim

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/optimize"
)

const (
	defaultPenalty = 1e6

	// feasTol separates penalty-method boundary chatter (order 1/weight)
	// from genuine infeasibility.
	feasTol = 1e-4
)

// NelderMead is the ConstrainedMinimizer backed by gonum's derivative-free
// downhill simplex, folding violated constraints into the objective as an
// exterior quadratic penalty.
type NelderMead struct {
	Penalty float64 // penalty weight, zero means defaultPenalty
}

func (nm NelderMead) Minimize(ctx context.Context, p Problem, x0 []float64) ([]float64, float64, error) {
	weight := nm.Penalty
	if weight == 0 {
		weight = defaultPenalty
	}

	fn := func(x []float64) float64 {
		v := p.Objective(x)
		if p.G != nil {
			rows, cols := p.G.Dims()
			for i := 0; i < rows; i++ {
				s := -p.H[i]
				for j := 0; j < cols; j++ {
					s += p.G.At(i, j) * x[j]
				}
				if s > 0 {
					v += weight * s * s
				}
			}
		}
		if p.Constraint != nil {
			if s := p.Constraint(x); s > 0 {
				v += weight * s * s
			}
		}
		return v
	}

	prob := optimize.Problem{
		Func: fn,
		Status: func() (optimize.Status, error) {
			select {
			case <-ctx.Done():
				return optimize.Failure, ctx.Err()
			default:
				return optimize.NotTerminated, nil
			}
		},
	}

	start := append([]float64(nil), x0...)
	res, err := optimize.Minimize(prob, start, nil, &optimize.NelderMead{})
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		return nil, 0, fmt.Errorf("%w: %v", ErrNoConvergence, err)
	}
	if err := res.Status.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrNoConvergence, err)
	}
	if viol := residual(p, res.X); viol > feasTol {
		return nil, 0, fmt.Errorf("%w: residual violation %.3g", ErrInfeasible, viol)
	}
	return res.X, p.Objective(res.X), nil
}
