package hull

import (
	"errors"
	"fmt"
)

var (
	// ErrFlat indicates a point cloud that does not span the ambient
	// dimension, so the hull has no interior.
	ErrFlat = errors.New("hull: point cloud is flat or has too few points")

	// ErrDimension indicates an ambient dimension no backend supports.
	ErrDimension = errors.New("hull: unsupported dimension")
)

// Result is the facet table of a convex hull. Facets holds, per hull facet,
// the indices of its vertices in the input point cloud. Volume is the
// Euclidean measure enclosed by the hull.
type Result struct {
	Facets [][]int
	Volume float64
}

// Computer produces the convex hull facet table of a point cloud. Points are
// coordinate slices of one shared dimension. Implementations report ErrFlat
// for clouds that collapse below the ambient dimension and ErrDimension for
// inputs they cannot handle.
type Computer interface {
	Compute(points [][]float64) (Result, error)
}

// ForDim returns the bundled backend for wrench dimension n: monotone chain
// in the plane, quickhull in space.
func ForDim(n int) (Computer, error) {
	switch n {
	case 2:
		return Chain2D{}, nil
	case 3:
		return QuickHull3D{}, nil
	default:
		return nil, fmt.Errorf("%w: no backend for dimension %d", ErrDimension, n)
	}
}
