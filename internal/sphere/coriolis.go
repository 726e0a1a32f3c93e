package sphere

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/wrenchlab/wrenchset/internal/polytope"
)

// CoriolisAdjusted returns a direction-aware capacity margin at g for a
// configuration with elbow angle q2. Facets whose perpendicular boundary
// point moves the second wrench coordinate against sign(sin(q2)) have their
// margin re-derived as the absolute first-coordinate intersection of the
// hyperplane at the reference height; a zero first coefficient makes that
// facet non-binding, so an all-non-binding polytope yields radius +Inf.
//
// The adjustment reproduces a provisional closed form whose geometric
// intent is still unconfirmed; treat results as advisory and prefer
// Capacity for anything load-bearing.
func (ap Approximator) CoriolisAdjusted(p *polytope.Polytope, g []float64, q2 float64) (Sphere, error) {
	if p.Empty() {
		return Sphere{}, ErrEmptyPolytope
	}
	if err := checkDim(p, g); err != nil {
		return Sphere{}, err
	}

	t := 0.0
	if s := math.Sin(q2); s > 0 {
		t = 1
	} else if s < 0 {
		t = -1
	}

	radius := math.Inf(1)
	for i := range p.B {
		row := p.A.RawRowView(i)
		norm := floats.Norm(row, 2)
		margin := (p.B[i] - floats.Dot(row, g)) / norm

		// Second coordinate drift of the perpendicular boundary point
		// relative to g.
		drift := margin * row[1] / norm
		if t != 0 && drift*t < 0 {
			if row[0] == 0 {
				continue
			}
			margin = math.Abs((p.B[i] - row[1]*g[1]) / row[0])
		}
		if margin < radius {
			radius = margin
		}
	}
	return Sphere{Center: append([]float64(nil), g...), Radius: radius}, nil
}
