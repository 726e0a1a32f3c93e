package sphere

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/wrenchlab/wrenchset/internal/optim"
	"github.com/wrenchlab/wrenchset/internal/polytope"
)

func TestMaxContainingCenteredRef(t *testing.T) {
	// With the reference at the origin and no buffer the problem relaxes
	// to the Chebyshev program of the unit square.
	s, err := Approximator{}.MaxContaining(context.Background(), unitSquare(), []float64{0, 0}, 0)
	if err != nil {
		t.Fatalf("MaxContaining() error: %v", err)
	}

	if math.Abs(s.Radius-1) > 5e-2 {
		t.Errorf("Radius = %v, want near 1", s.Radius)
	}
	if math.Abs(s.Center[0]) > 5e-2 || math.Abs(s.Center[1]) > 5e-2 {
		t.Errorf("Center = %v, want near origin", s.Center)
	}
}

func TestMaxContainingShiftedRef(t *testing.T) {
	ref := []float64{1.5, 0}
	s, err := Approximator{}.MaxContaining(context.Background(), wideRectangle(), ref, 0.3)
	if err != nil {
		t.Fatalf("MaxContaining() error: %v", err)
	}

	// The short axis still pins the radius at one; the center must shift
	// toward the reference far enough to keep it buffered inside.
	if math.Abs(s.Radius-1) > 5e-2 {
		t.Errorf("Radius = %v, want near 1", s.Radius)
	}
	if s.Center[0] < 0.7 || s.Center[0] > 2.3 {
		t.Errorf("Center[0] = %v, outside the optimal band", s.Center[0])
	}
	if math.Abs(s.Center[1]) > 5e-2 {
		t.Errorf("Center[1] = %v, want near 0", s.Center[1])
	}
	if d := floats.Distance(s.Center, ref, 2) + 0.3; d > s.Radius+5e-2 {
		t.Errorf("reference not contained: %v > %v", d, s.Radius)
	}
}

func TestMaxContainingInfeasible(t *testing.T) {
	// The reference sits too close to the wall for the requested buffer:
	// no sphere can contain it and stay inside.
	_, err := Approximator{}.MaxContaining(context.Background(), unitSquare(), []float64{0.9, 0}, 0.3)
	if !errors.Is(err, optim.ErrInfeasible) {
		t.Errorf("MaxContaining() = %v, want ErrInfeasible", err)
	}
}

func TestMaxContainingEmptyPolytope(t *testing.T) {
	_, err := Approximator{}.MaxContaining(context.Background(), &polytope.Polytope{}, []float64{0, 0}, 0)
	if !errors.Is(err, ErrEmptyPolytope) {
		t.Errorf("MaxContaining() = %v, want ErrEmptyPolytope", err)
	}
}

func TestMaxContainingRefDim(t *testing.T) {
	_, err := Approximator{}.MaxContaining(context.Background(), unitSquare(), []float64{0}, 0)
	if !errors.Is(err, ErrCenterDim) {
		t.Errorf("MaxContaining() = %v, want ErrCenterDim", err)
	}
}

func TestMaxContainingCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Approximator{}.MaxContaining(ctx, unitSquare(), []float64{0, 0}, 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("MaxContaining() = %v, want context.Canceled", err)
	}
}
