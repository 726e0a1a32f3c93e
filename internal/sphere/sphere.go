package sphere

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/wrenchlab/wrenchset/internal/optim"
	"github.com/wrenchlab/wrenchset/internal/polytope"
)

// Domain errors for sphere approximation.
var (
	// ErrEmptyPolytope indicates an approximation over a polytope with no
	// retained half-spaces.
	ErrEmptyPolytope = errors.New("sphere: polytope has no half-spaces")

	// ErrCenterDim indicates a center or reference point whose dimension
	// does not match the polytope.
	ErrCenterDim = errors.New("sphere: center has wrong dimension")
)

// Sphere is a center and radius in wrench space. A zero or negative radius
// signals that no enclosed sphere exists at the center; +Inf radii from
// unbounded margins are preserved as-is.
type Sphere struct {
	Center []float64
	Radius float64
}

// Approximator computes sphere approximations of a wrench polytope. The
// zero value uses the bundled simplex and penalty-method backends; set LP
// or NLP to swap solver libraries without touching the approximation logic.
type Approximator struct {
	LP  optim.LinearSolver
	NLP optim.ConstrainedMinimizer
}

// Capacity returns the largest sphere centered exactly at g that stays
// inside p. The radius is the signed perpendicular distance from g to the
// nearest half-space boundary, negative when g lies outside the polytope.
func (ap Approximator) Capacity(p *polytope.Polytope, g []float64) (Sphere, error) {
	if p.Empty() {
		return Sphere{}, ErrEmptyPolytope
	}
	if err := checkDim(p, g); err != nil {
		return Sphere{}, err
	}

	radius := math.Inf(1)
	for i := range p.B {
		row := p.A.RawRowView(i)
		if s := (p.B[i] - floats.Dot(row, g)) / floats.Norm(row, 2); s < radius {
			radius = s
		}
	}
	return Sphere{Center: append([]float64(nil), g...), Radius: radius}, nil
}

func (ap Approximator) linear() optim.LinearSolver {
	if ap.LP != nil {
		return ap.LP
	}
	return optim.Simplex{}
}

func (ap Approximator) constrained() optim.ConstrainedMinimizer {
	if ap.NLP != nil {
		return ap.NLP
	}
	return optim.NelderMead{}
}

func checkDim(p *polytope.Polytope, g []float64) error {
	if len(g) != p.Dim() {
		return fmt.Errorf("%w: got %d, want %d", ErrCenterDim, len(g), p.Dim())
	}
	return nil
}
