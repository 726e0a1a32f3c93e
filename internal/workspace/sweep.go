package workspace

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/wrenchlab/wrenchset/internal/model"
	"github.com/wrenchlab/wrenchset/internal/polytope"
	"github.com/wrenchlab/wrenchset/internal/sphere"
)

// Metric aggregates margin observations across a sweep.
type Metric interface {
	Name() string
	Observe(margin float64, feasible bool)
	Value() float64
	Reset()
}

// Point is the outcome at a single pose. Margin is NaN when the pose is
// infeasible.
type Point struct {
	Pose     []float64
	Margin   float64
	Feasible bool
}

// Result collects per-pose outcomes and aggregate metric values.
type Result struct {
	Points  []Point
	Metrics map[string]float64
}

// Sweeper evaluates the capacity margin of a pose-dependent actuation
// model over workspace grids and straight-line paths. Poses at which the
// model is singular or the wrench set degenerate are recorded as
// infeasible rather than aborting the sweep.
type Sweeper struct {
	source  model.Source
	builder polytope.Builder
	approx  sphere.Approximator
	ref     []float64
	metrics []Metric
}

// NewSweeper returns a sweeper measuring capacity margins around the
// reference wrench ref. A nil ref means the zero wrench.
func NewSweeper(source model.Source, ref []float64) *Sweeper {
	return &Sweeper{
		source:  source,
		ref:     ref,
		metrics: make([]Metric, 0),
	}
}

func (s *Sweeper) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

// Run evaluates every point of the grid.
func (s *Sweeper) Run(ctx context.Context, grid Grid) (*Result, error) {
	if err := grid.validate(); err != nil {
		return nil, err
	}
	return s.run(ctx, grid.Points())
}

// Profile evaluates evenly spaced poses on the segment from..to.
func (s *Sweeper) Profile(ctx context.Context, from, to []float64, steps int) (*Result, error) {
	if len(from) != len(to) {
		return nil, fmt.Errorf("workspace: segment endpoints have dimensions %d and %d", len(from), len(to))
	}
	if steps < 2 {
		return nil, fmt.Errorf("workspace: profile needs at least 2 steps, got %d", steps)
	}

	dir := make([]float64, len(from))
	floats.SubTo(dir, to, from)

	poses := make([][]float64, steps)
	for i := range poses {
		t := float64(i) / float64(steps-1)
		poses[i] = floats.AddScaledTo(make([]float64, len(from)), from, t, dir)
	}
	return s.run(ctx, poses)
}

func (s *Sweeper) run(ctx context.Context, poses [][]float64) (*Result, error) {
	points := make([]Point, len(poses))
	errs := make([]error, len(poses))

	workers := runtime.NumCPU()
	if workers > len(poses) {
		workers = len(poses)
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (len(poses) + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(poses) {
			end = len(poses)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if ctx.Err() != nil {
					errs[i] = ctx.Err()
					return
				}
				points[i], errs[i] = s.evaluate(ctx, poses[i])
			}
		}(start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	for i := range points {
		for _, m := range s.metrics {
			m.Observe(points[i].Margin, points[i].Feasible)
		}
	}

	res := &Result{Points: points, Metrics: make(map[string]float64)}
	for _, m := range s.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}

func (s *Sweeper) evaluate(ctx context.Context, pose []float64) (Point, error) {
	pt := Point{Pose: pose, Margin: math.NaN()}

	act, err := s.source.At(pose)
	if err != nil {
		if errors.Is(err, model.ErrSingularPose) {
			return pt, nil
		}
		return pt, err
	}

	poly, err := s.builder.Build(ctx, act)
	if err != nil {
		if errors.Is(err, polytope.ErrDegenerate) {
			return pt, nil
		}
		return pt, err
	}
	if poly.Empty() {
		return pt, nil
	}

	ref := s.ref
	if ref == nil {
		ref = make([]float64, poly.Dim())
	}
	sp, err := s.approx.Capacity(poly, ref)
	if err != nil {
		return pt, err
	}

	pt.Margin = sp.Radius
	pt.Feasible = true
	return pt, nil
}
