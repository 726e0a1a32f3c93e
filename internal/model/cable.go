package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// minCableLength rejects poses that coincide with an anchor point.
const minCableLength = 1e-9

// PlanarCable models a point-mass platform suspended in the plane by cables
// anchored to a fixed frame. Each cable can only pull, so the tension bounds
// must be non-negative. The structure matrix columns are the unit cable
// directions at the platform position; gravity enters as the wrench offset.
type PlanarCable struct {
	Anchors [][2]float64
	Mass    float64
	Gravity float64
	Tmin    float64
	Tmax    float64
}

// NewPlanarCable returns a four-cable model on a 4×3 frame.
func NewPlanarCable() *PlanarCable {
	return &PlanarCable{
		Anchors: [][2]float64{{-2, 3}, {2, 3}, {-2, 0}, {2, 0}},
		Mass:    10,
		Gravity: 9.81,
		Tmin:    5,
		Tmax:    500,
	}
}

func (c *PlanarCable) At(p []float64) (Actuation, error) {
	if len(p) != 2 {
		return Actuation{}, fmt.Errorf("%w: got %d, want 2", ErrPoseDim, len(p))
	}
	m := len(c.Anchors)
	as := mat.NewDense(2, m, nil)
	for i, a := range c.Anchors {
		dx := a[0] - p[0]
		dy := a[1] - p[1]
		d := math.Hypot(dx, dy)
		if d < minCableLength {
			return Actuation{}, fmt.Errorf("%w: platform at anchor %d", ErrSingularPose, i)
		}
		as.Set(0, i, dx/d)
		as.Set(1, i, dy/d)
	}
	return Actuation{
		As:     as,
		Fmin:   uniform(m, c.Tmin),
		Fmax:   uniform(m, c.Tmax),
		Offset: []float64{0, -c.Mass * c.Gravity},
	}, nil
}

// SpatialCable is the three-dimensional analogue of PlanarCable.
type SpatialCable struct {
	Anchors [][3]float64
	Mass    float64
	Gravity float64
	Tmin    float64
	Tmax    float64
}

// NewSpatialCable returns an eight-cable model on a 4×4×3 frame.
func NewSpatialCable() *SpatialCable {
	return &SpatialCable{
		Anchors: [][3]float64{
			{-2, -2, 3}, {2, -2, 3}, {-2, 2, 3}, {2, 2, 3},
			{-2, -2, 0}, {2, -2, 0}, {-2, 2, 0}, {2, 2, 0},
		},
		Mass:    10,
		Gravity: 9.81,
		Tmin:    5,
		Tmax:    500,
	}
}

func (c *SpatialCable) At(p []float64) (Actuation, error) {
	if len(p) != 3 {
		return Actuation{}, fmt.Errorf("%w: got %d, want 3", ErrPoseDim, len(p))
	}
	m := len(c.Anchors)
	as := mat.NewDense(3, m, nil)
	for i, a := range c.Anchors {
		dx := a[0] - p[0]
		dy := a[1] - p[1]
		dz := a[2] - p[2]
		d := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if d < minCableLength {
			return Actuation{}, fmt.Errorf("%w: platform at anchor %d", ErrSingularPose, i)
		}
		as.Set(0, i, dx/d)
		as.Set(1, i, dy/d)
		as.Set(2, i, dz/d)
	}
	return Actuation{
		As:     as,
		Fmin:   uniform(m, c.Tmin),
		Fmax:   uniform(m, c.Tmax),
		Offset: []float64{0, 0, -c.Mass * c.Gravity},
	}, nil
}

func uniform(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}
