package polytope

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func squarePolytope() *Polytope {
	return &Polytope{
		NFaces: 4,
		A: mat.NewDense(4, 2, []float64{
			1, 0,
			-1, 0,
			0, 1,
			0, -1,
		}),
		B:        []float64{1, 1, 1, 1},
		Volume:   4,
		Vertices: mat.NewDense(4, 2, []float64{-1, -1, 1, -1, -1, 1, 1, 1}),
	}
}

func TestPolytopeContains(t *testing.T) {
	p := squarePolytope()

	tests := []struct {
		name string
		w    []float64
		tol  float64
		want bool
	}{
		{"center", []float64{0, 0}, 1e-9, true},
		{"interior", []float64{0.5, -0.5}, 1e-9, true},
		{"boundary", []float64{1, 0}, 1e-9, true},
		{"outside", []float64{1.5, 0}, 1e-9, false},
		{"outside within tol", []float64{1.0005, 0}, 1e-3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Contains(tt.w, tt.tol); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.w, tt.tol, got, tt.want)
			}
		})
	}
}

func TestPolytopeEmpty(t *testing.T) {
	var nilP *Polytope
	if !nilP.Empty() {
		t.Error("nil polytope is not Empty")
	}
	if !(&Polytope{}).Empty() {
		t.Error("zero polytope is not Empty")
	}
	if squarePolytope().Empty() {
		t.Error("square polytope reports Empty")
	}
	if (&Polytope{}).Contains([]float64{0, 0}, 1) {
		t.Error("empty polytope contains a point")
	}
}

func TestPolytopeDims(t *testing.T) {
	p := squarePolytope()
	if p.Dim() != 2 {
		t.Errorf("Dim() = %d, want 2", p.Dim())
	}
	if p.NumHalfspaces() != 4 {
		t.Errorf("NumHalfspaces() = %d, want 4", p.NumHalfspaces())
	}
	if (&Polytope{}).Dim() != 0 {
		t.Errorf("zero polytope Dim() = %d, want 0", (&Polytope{}).Dim())
	}
}
