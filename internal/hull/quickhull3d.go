package hull

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	quickhull "github.com/markus-wa/quickhull-go/v2"
	"gonum.org/v1/gonum/mat"
)

// rankTol is the relative singular value below which the centered cloud is
// treated as coplanar.
const rankTol = 1e-9

// QuickHull3D computes spatial convex hulls with the quickhull algorithm.
// Facets are hull triangles indexed into the input cloud; Volume is the
// enclosed volume. Eps overrides the library's planarity tolerance; zero
// keeps its default.
type QuickHull3D struct {
	Eps float64
}

func (q QuickHull3D) Compute(points [][]float64) (Result, error) {
	if len(points) < 4 {
		return Result{}, fmt.Errorf("%w: %d points", ErrFlat, len(points))
	}
	cloud := make([]r3.Vector, len(points))
	for i, p := range points {
		if len(p) != 3 {
			return Result{}, fmt.Errorf("%w: point %d has %d coordinates, want 3", ErrDimension, i, len(p))
		}
		cloud[i] = r3.Vector{X: p[0], Y: p[1], Z: p[2]}
	}

	// The library extrudes coplanar clouds into a thin slab instead of
	// failing, so rank-check the centered cloud up front.
	if !spans3(points) {
		return Result{}, fmt.Errorf("%w: points are coplanar", ErrFlat)
	}

	h := new(quickhull.QuickHull).ConvexHull(cloud, true, true, q.Eps)
	if len(h.Indices) < 12 {
		return Result{}, fmt.Errorf("%w: hull has %d triangle indices", ErrFlat, len(h.Indices))
	}

	facets := make([][]int, 0, len(h.Indices)/3)
	volume := 0.0
	for i := 0; i+2 < len(h.Indices); i += 3 {
		a, b, c := h.Indices[i], h.Indices[i+1], h.Indices[i+2]
		facets = append(facets, []int{a, b, c})
		volume += signedTetra(points[a], points[b], points[c])
	}
	return Result{Facets: facets, Volume: math.Abs(volume)}, nil
}

// signedTetra is the signed volume of the tetrahedron spanned by the origin
// and a triangle. Summed over a closed oriented surface it yields the
// enclosed volume.
func signedTetra(a, b, c []float64) float64 {
	return (a[0]*(b[1]*c[2]-b[2]*c[1]) -
		a[1]*(b[0]*c[2]-b[2]*c[0]) +
		a[2]*(b[0]*c[1]-b[1]*c[0])) / 6
}

func spans3(points [][]float64) bool {
	var mx, my, mz float64
	for _, p := range points {
		mx += p[0]
		my += p[1]
		mz += p[2]
	}
	inv := 1 / float64(len(points))
	mx, my, mz = mx*inv, my*inv, mz*inv

	centered := mat.NewDense(len(points), 3, nil)
	for i, p := range points {
		centered.Set(i, 0, p[0]-mx)
		centered.Set(i, 1, p[1]-my)
		centered.Set(i, 2, p[2]-mz)
	}

	var svd mat.SVD
	if !svd.Factorize(centered, mat.SVDNone) {
		return false
	}
	sv := svd.Values(nil)
	return sv[2] > rankTol*sv[0]
}
