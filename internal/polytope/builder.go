package polytope

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/wrenchlab/wrenchset/internal/hull"
	"github.com/wrenchlab/wrenchset/internal/model"
)

const (
	// witnessTol is the distance below which a vertex counts as lying on a
	// candidate hyperplane and cannot orient it.
	witnessTol = 1e-6

	// defaultRankTol is the relative singular value cutoff for the facet
	// degeneracy filter.
	defaultRankTol = 1e-9

	// enumChunk is the smallest vertex range worth its own goroutine.
	enumChunk = 256
)

// Builder constructs wrench polytopes from actuation models. The zero value
// picks the hull backend by wrench dimension; set Hull to override it.
type Builder struct {
	Hull hull.Computer

	// RankTol overrides the facet degeneracy cutoff; zero keeps the
	// default.
	RankTol float64
}

// Build enumerates the 2^m bound-extreme force combinations of act, maps
// them through W = As·F + Offset into wrench space, and reduces the convex
// hull of the cloud to outward half-spaces A·w <= B.
//
// The enumeration is exponential in the actuator count m; Build refuses
// m > MaxActuators. A collapsed cloud or failed hull yields a
// *DegenerateError; callers test errors.Is(err, ErrDegenerate) and treat the
// result as an empty wrench set. Build never panics on degenerate input.
func (bd Builder) Build(ctx context.Context, act model.Actuation) (*Polytope, error) {
	if err := act.Validate(); err != nil {
		return nil, err
	}
	n, m := act.Dims()
	if m > MaxActuators {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyActuators, m, MaxActuators)
	}

	hc := bd.Hull
	if hc == nil {
		var err error
		if hc, err = hull.ForDim(n); err != nil {
			return nil, err
		}
	}

	vertices := enumerate(ctx, act)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total, _ := vertices.Dims()
	rows := make([][]float64, total)
	for i := range rows {
		rows[i] = vertices.RawRowView(i)
	}

	res, err := hc.Compute(rows)
	if err != nil {
		return nil, &DegenerateError{Reason: "convex hull failed", Cause: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rankTol := bd.RankTol
	if rankTol == 0 {
		rankTol = defaultRankTol
	}

	var aData []float64
	var b []float64
	for _, facet := range res.Facets {
		normal, ok := facetNormal(vertices, facet, n, rankTol)
		if !ok {
			continue
		}
		rhs := floats.Dot(normal, vertices.RawRowView(facet[0]))

		// The first vertex strictly off the hyperplane decides the
		// outward sign: every cloud vertex must end up on the <= side.
		for k := 0; k < total; k++ {
			if onFacet(facet, k) {
				continue
			}
			v := floats.Dot(normal, vertices.RawRowView(k)) - rhs
			if math.Abs(v) <= witnessTol {
				continue
			}
			if v > 0 {
				floats.Scale(-1, normal)
				rhs = -rhs
			}
			break
		}

		aData = append(aData, normal...)
		b = append(b, rhs)
	}

	p := &Polytope{
		NFaces:       len(res.Facets),
		B:            b,
		Volume:       res.Volume,
		Vertices:     vertices,
		FacetIndices: res.Facets,
	}
	if len(b) > 0 {
		p.A = mat.NewDense(len(b), n, aData)
	}
	return p, nil
}

// enumerate fills the 2^m x n cloud W_k = As·F_k + Offset where bit i of k
// selects Fmax[i] over Fmin[i]. Chunks run on separate goroutines and bail
// out early once ctx is canceled.
func enumerate(ctx context.Context, act model.Actuation) *mat.Dense {
	n, m := act.Dims()
	total := 1 << m
	out := mat.NewDense(total, n, nil)

	parallelFor(total, enumChunk, func(start, end int) {
		force := make([]float64, m)
		for k := start; k < end; k++ {
			if k%enumChunk == 0 && ctx.Err() != nil {
				return
			}
			for i := 0; i < m; i++ {
				if k&(1<<i) != 0 {
					force[i] = act.Fmax[i]
				} else {
					force[i] = act.Fmin[i]
				}
			}
			row := out.RawRowView(k)
			for r := 0; r < n; r++ {
				s := 0.0
				for c := 0; c < m; c++ {
					s += act.As.At(r, c) * force[c]
				}
				if act.Offset != nil {
					s += act.Offset[r]
				}
				row[r] = s
			}
		}
	})
	return out
}

// facetNormal extracts the unit normal of the hyperplane spanned by a
// facet's vertices. ok is false when the facet's edge vectors leave a null
// space of rank above one, i.e. they do not pin down a unique hyperplane.
func facetNormal(vertices *mat.Dense, facet []int, n int, rankTol float64) ([]float64, bool) {
	first := vertices.RawRowView(facet[0])
	edges := mat.NewDense(len(facet)-1, n, nil)
	for r, idx := range facet[1:] {
		row := vertices.RawRowView(idx)
		for c := 0; c < n; c++ {
			edges.Set(r, c, row[c]-first[c])
		}
	}

	var svd mat.SVD
	if !svd.Factorize(edges, mat.SVDFull) {
		return nil, false
	}
	sv := svd.Values(nil)
	rank := 0
	for _, s := range sv {
		if s > rankTol*sv[0] {
			rank++
		}
	}
	if n-rank != 1 {
		return nil, false
	}

	var v mat.Dense
	svd.VTo(&v)
	normal := make([]float64, n)
	for i := 0; i < n; i++ {
		normal[i] = v.At(i, n-1)
	}
	return normal, true
}

func onFacet(facet []int, k int) bool {
	for _, idx := range facet {
		if idx == k {
			return true
		}
	}
	return false
}

// parallelFor splits [0, n) into contiguous chunks across CPU-bound
// workers; ranges below minChunk run inline.
func parallelFor(n, minChunk int, fn func(start, end int)) {
	workers := runtime.NumCPU()
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}
	if n/minChunk < workers {
		workers = n / minChunk
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
