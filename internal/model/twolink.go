package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// singularTol bounds |sin(q2)| below which the two-link Jacobian is treated
// as singular.
const singularTol = 1e-9

// TwoLink models a planar two-revolute arm with joint torque limits. The
// achievable end-effector force set at a joint pose q is the image of the
// torque box under the inverse-transpose Jacobian, shifted by the gravity
// compensation force.
type TwoLink struct {
	L1, L2  float64 // link lengths
	M1, M2  float64 // point masses at the link ends
	Gravity float64
	Tau1Min float64 // shoulder torque bounds
	Tau1Max float64
	Tau2Min float64 // elbow torque bounds
	Tau2Max float64
}

func NewTwoLink() *TwoLink {
	return &TwoLink{
		L1:      0.4,
		L2:      0.3,
		M1:      2.0,
		M2:      1.2,
		Gravity: 9.81,
		Tau1Min: -40, Tau1Max: 40,
		Tau2Min: -25, Tau2Max: 25,
	}
}

// At returns the actuation model at joint pose q = [q1 q2]. The elbow angle
// q2 determines the arm configuration; poses with |sin(q2)| below the
// singularity tolerance are rejected with ErrSingularPose because the force
// image degenerates onto a line there.
func (t *TwoLink) At(q []float64) (Actuation, error) {
	if len(q) != 2 {
		return Actuation{}, fmt.Errorf("%w: got %d, want 2", ErrPoseDim, len(q))
	}
	s1, c1 := math.Sin(q[0]), math.Cos(q[0])
	s12, c12 := math.Sin(q[0]+q[1]), math.Cos(q[0]+q[1])

	// J maps joint velocities to end-effector velocities; det J = L1 L2 sin(q2).
	j11 := -t.L1*s1 - t.L2*s12
	j12 := -t.L2 * s12
	j21 := t.L1*c1 + t.L2*c12
	j22 := t.L2 * c12

	det := j11*j22 - j12*j21
	if math.Abs(math.Sin(q[1])) < singularTol || det == 0 {
		return Actuation{}, fmt.Errorf("%w: sin(q2)=%g", ErrSingularPose, math.Sin(q[1]))
	}

	// As = J^{-T}: columns are the force directions of unit joint torques.
	as := mat.NewDense(2, 2, []float64{
		j22 / det, -j21 / det,
		-j12 / det, j11 / det,
	})

	// Static gravity torques for point masses at the link ends.
	g1 := (t.M1+t.M2)*t.Gravity*t.L1*c1 + t.M2*t.Gravity*t.L2*c12
	g2 := t.M2 * t.Gravity * t.L2 * c12

	offset := []float64{
		-(as.At(0, 0)*g1 + as.At(0, 1)*g2),
		-(as.At(1, 0)*g1 + as.At(1, 1)*g2),
	}

	return Actuation{
		As:     as,
		Fmin:   []float64{t.Tau1Min, t.Tau2Min},
		Fmax:   []float64{t.Tau1Max, t.Tau2Max},
		Offset: offset,
	}, nil
}
