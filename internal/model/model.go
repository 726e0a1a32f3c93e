package model

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Domain errors for actuation model construction.
var (
	// ErrBoundOrder indicates a lower force bound above its upper bound.
	ErrBoundOrder = errors.New("model: lower force bound exceeds upper bound")

	// ErrSingularPose indicates a pose at which the actuation map is singular.
	ErrSingularPose = errors.New("model: actuation map singular at pose")

	// ErrPoseDim indicates a pose vector of the wrong length.
	ErrPoseDim = errors.New("model: pose has wrong dimension")
)

// DimensionError reports inconsistent dimensions between the structure
// matrix, the force bounds and the offset.
type DimensionError struct {
	Field string
	Want  int
	Got   int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("model: %s has length %d, want %d", e.Field, e.Got, e.Want)
}

// Actuation is the linear actuation model consumed by the polytope builder:
// a wrench W = As·F + Offset is achievable for any force vector F with
// Fmin <= F <= Fmax componentwise. As maps m actuator forces to n wrench
// coordinates. A nil Offset means the zero wrench offset.
//
// Actuation values are plain data; the builder never retains or mutates them.
type Actuation struct {
	As     *mat.Dense
	Fmin   []float64
	Fmax   []float64
	Offset []float64
}

// Dims returns the wrench dimension n and the actuator count m.
func (a Actuation) Dims() (n, m int) {
	if a.As == nil {
		return 0, 0
	}
	return a.As.Dims()
}

// Validate checks dimensional consistency and bound ordering. It must pass
// before the model is handed to the builder; the builder calls it eagerly.
func (a Actuation) Validate() error {
	if a.As == nil {
		return &DimensionError{Field: "structure matrix", Want: 1, Got: 0}
	}
	n, m := a.As.Dims()
	if n == 0 || m == 0 {
		return &DimensionError{Field: "structure matrix", Want: 1, Got: 0}
	}
	if len(a.Fmin) != m {
		return &DimensionError{Field: "lower force bounds", Want: m, Got: len(a.Fmin)}
	}
	if len(a.Fmax) != m {
		return &DimensionError{Field: "upper force bounds", Want: m, Got: len(a.Fmax)}
	}
	if a.Offset != nil && len(a.Offset) != n {
		return &DimensionError{Field: "offset", Want: n, Got: len(a.Offset)}
	}
	for i := range a.Fmin {
		if a.Fmin[i] > a.Fmax[i] {
			return fmt.Errorf("%w (actuator %d: %g > %g)", ErrBoundOrder, i, a.Fmin[i], a.Fmax[i])
		}
	}
	return nil
}

// Source supplies an actuation model per pose. Generators implement it so
// that workspace sweeps can rebuild the model as the pose changes.
type Source interface {
	At(pose []float64) (Actuation, error)
}
