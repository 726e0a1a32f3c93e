package sphere

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/wrenchlab/wrenchset/internal/model"
	"github.com/wrenchlab/wrenchset/internal/polytope"
)

// unitSquare is the 2x2 box |w1| <= 1, |w2| <= 1 in half-space form.
func unitSquare() *polytope.Polytope {
	return &polytope.Polytope{
		NFaces: 4,
		A: mat.NewDense(4, 2, []float64{
			1, 0,
			-1, 0,
			0, 1,
			0, -1,
		}),
		B: []float64{1, 1, 1, 1},
	}
}

// wideRectangle is the box [-4,4] x [-1,1].
func wideRectangle() *polytope.Polytope {
	return &polytope.Polytope{
		NFaces: 4,
		A: mat.NewDense(4, 2, []float64{
			1, 0,
			-1, 0,
			0, 1,
			0, -1,
		}),
		B: []float64{4, 4, 1, 1},
	}
}

func TestCapacity(t *testing.T) {
	p := unitSquare()

	tests := []struct {
		name   string
		g      []float64
		radius float64
	}{
		{"center", []float64{0, 0}, 1},
		{"off center", []float64{0.5, 0}, 0.5},
		{"near corner", []float64{0.8, 0.9}, 0.1},
		{"outside", []float64{2, 0}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Approximator{}.Capacity(p, tt.g)
			if err != nil {
				t.Fatalf("Capacity() error: %v", err)
			}
			if math.Abs(s.Radius-tt.radius) > 1e-12 {
				t.Errorf("Radius = %v, want %v", s.Radius, tt.radius)
			}
		})
	}
}

func TestCapacityMonotoneTowardInterior(t *testing.T) {
	p := unitSquare()

	// Walking off the binding +w1 facet toward the interior grows the
	// margin until another facet binds.
	prev := math.Inf(-1)
	for _, x := range []float64{0.8, 0.5, 0.2} {
		s, err := Approximator{}.Capacity(p, []float64{x, 0})
		if err != nil {
			t.Fatalf("Capacity() error: %v", err)
		}
		if s.Radius <= prev {
			t.Errorf("radius %v at x=%v did not increase past %v", s.Radius, x, prev)
		}
		prev = s.Radius
	}
}

func TestCapacityCenterCopied(t *testing.T) {
	g := []float64{0.1, 0.2}
	s, err := Approximator{}.Capacity(unitSquare(), g)
	if err != nil {
		t.Fatalf("Capacity() error: %v", err)
	}

	g[0] = 99
	if s.Center[0] != 0.1 {
		t.Error("sphere center aliases the caller's slice")
	}
}

func TestCapacityEndToEnd(t *testing.T) {
	// Identity structure matrix with unit bounds: the polytope is the unit
	// box and the margin at the origin is exactly one.
	act := model.Actuation{
		As:   mat.NewDense(2, 2, []float64{1, 0, 0, 1}),
		Fmin: []float64{-1, -1},
		Fmax: []float64{1, 1},
	}
	p, err := polytope.Builder{}.Build(context.Background(), act)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	s, err := Approximator{}.Capacity(p, []float64{0, 0})
	if err != nil {
		t.Fatalf("Capacity() error: %v", err)
	}
	if math.Abs(s.Radius-1) > 1e-9 {
		t.Errorf("Radius = %v, want 1", s.Radius)
	}
}

func TestCapacityEmptyPolytope(t *testing.T) {
	if _, err := (Approximator{}).Capacity(&polytope.Polytope{}, []float64{0, 0}); !errors.Is(err, ErrEmptyPolytope) {
		t.Errorf("Capacity() = %v, want ErrEmptyPolytope", err)
	}
	if _, err := (Approximator{}).Capacity(nil, []float64{0, 0}); !errors.Is(err, ErrEmptyPolytope) {
		t.Errorf("Capacity(nil) = %v, want ErrEmptyPolytope", err)
	}
}

func TestCapacityCenterDim(t *testing.T) {
	if _, err := (Approximator{}).Capacity(unitSquare(), []float64{0, 0, 0}); !errors.Is(err, ErrCenterDim) {
		t.Errorf("Capacity() = %v, want ErrCenterDim", err)
	}
}
