package polytope

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Polytope is the half-space description A·w <= B of an achievable wrench
// set, together with the enumerated vertex cloud and the hull facet table it
// was derived from. Values are immutable once built.
type Polytope struct {
	// NFaces counts hull facets before degeneracy filtering, so it can
	// exceed the number of retained half-spaces.
	NFaces int

	// A holds one outward-oriented unit row per retained half-space; B the
	// matching right-hand sides. A is nil when no half-space survived.
	A *mat.Dense
	B []float64

	// Volume is the hull volume reported by the hull backend.
	Volume float64

	// Vertices is the full 2^m x n bound-combination cloud, retained for
	// diagnostics and reuse.
	Vertices *mat.Dense

	// FacetIndices maps each hull facet to its vertex rows in Vertices.
	FacetIndices [][]int
}

// Dim returns the wrench dimension n.
func (p *Polytope) Dim() int {
	if p.A != nil {
		_, n := p.A.Dims()
		return n
	}
	if p.Vertices != nil {
		_, n := p.Vertices.Dims()
		return n
	}
	return 0
}

// NumHalfspaces returns the count of retained half-spaces.
func (p *Polytope) NumHalfspaces() int { return len(p.B) }

// Empty reports a polytope with no retained half-spaces, the explicit
// "no feasible wrench set" state callers must check before approximating.
func (p *Polytope) Empty() bool { return p == nil || len(p.B) == 0 }

// Contains reports whether w satisfies every half-space within tol.
func (p *Polytope) Contains(w []float64, tol float64) bool {
	if p.Empty() {
		return false
	}
	for i := range p.B {
		if floats.Dot(p.A.RawRowView(i), w) > p.B[i]+tol {
			return false
		}
	}
	return true
}
