package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestSimplexMaximize(t *testing.T) {
	// maximize x + y over the box [0,1]x[0,2].
	c := []float64{1, 1}
	g := mat.NewDense(4, 2, []float64{
		1, 0,
		0, 1,
		-1, 0,
		0, -1,
	})
	h := []float64{1, 2, 0, 0}

	x, err := Simplex{}.Maximize(context.Background(), c, g, h)
	if err != nil {
		t.Fatalf("Maximize() error: %v", err)
	}
	if math.Abs(x[0]-1) > 1e-8 || math.Abs(x[1]-2) > 1e-8 {
		t.Errorf("Maximize() = %v, want [1 2]", x)
	}
}

func TestSimplexInscribedRadius(t *testing.T) {
	// Largest sphere in the 2x2 square centered at the origin: variables
	// (ox, oy, r), maximize r subject to A·o + ||A||·r <= b.
	c := []float64{0, 0, 1}
	g := mat.NewDense(4, 3, []float64{
		1, 0, 1,
		-1, 0, 1,
		0, 1, 1,
		0, -1, 1,
	})
	h := []float64{1, 1, 1, 1}

	x, err := Simplex{}.Maximize(context.Background(), c, g, h)
	if err != nil {
		t.Fatalf("Maximize() error: %v", err)
	}
	if math.Abs(x[2]-1) > 1e-8 {
		t.Errorf("radius = %v, want 1", x[2])
	}
	if math.Abs(x[0]) > 1e-8 || math.Abs(x[1]) > 1e-8 {
		t.Errorf("center = (%v, %v), want origin", x[0], x[1])
	}
}

func TestSimplexInfeasible(t *testing.T) {
	// x <= -1 and x >= 0 cannot hold together.
	g := mat.NewDense(2, 1, []float64{1, -1})
	h := []float64{-1, 0}

	_, err := Simplex{}.Maximize(context.Background(), []float64{1}, g, h)
	if !errors.Is(err, ErrInfeasible) {
		t.Errorf("Maximize() = %v, want ErrInfeasible", err)
	}
}

func TestSimplexUnbounded(t *testing.T) {
	// maximize x with only x >= 0.
	g := mat.NewDense(1, 1, []float64{-1})
	h := []float64{0}

	_, err := Simplex{}.Maximize(context.Background(), []float64{1}, g, h)
	if !errors.Is(err, ErrUnbounded) {
		t.Errorf("Maximize() = %v, want ErrUnbounded", err)
	}
}

func TestSimplexCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := mat.NewDense(1, 1, []float64{1})
	_, err := Simplex{}.Maximize(ctx, []float64{1}, g, []float64{1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Maximize() = %v, want context.Canceled", err)
	}
}
