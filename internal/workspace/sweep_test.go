package workspace

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/wrenchlab/wrenchset/internal/metrics"
	"github.com/wrenchlab/wrenchset/internal/model"
)

// boxSource yields the same planar actuation at every pose; its wrench
// set is the square [-1,1]^2.
type boxSource struct{}

func (boxSource) At(pose []float64) (model.Actuation, error) {
	return model.Actuation{
		As:   mat.NewDense(2, 2, []float64{1, 0, 0, 1}),
		Fmin: []float64{-1, -1},
		Fmax: []float64{1, 1},
	}, nil
}

// halfSource is singular wherever the first pose coordinate is negative.
type halfSource struct{ boxSource }

func (h halfSource) At(pose []float64) (model.Actuation, error) {
	if pose[0] < 0 {
		return model.Actuation{}, model.ErrSingularPose
	}
	return h.boxSource.At(pose)
}

type badSource struct{}

func (badSource) At(pose []float64) (model.Actuation, error) {
	return model.Actuation{}, &model.DimensionError{Field: "offset", Want: 2, Got: 3}
}

func TestSweepUniformBox(t *testing.T) {
	s := NewSweeper(boxSource{}, nil)
	grid := Grid{Axes: []Axis{
		{Min: -1, Max: 1, Steps: 3},
		{Min: -1, Max: 1, Steps: 3},
	}}

	res, err := s.Run(context.Background(), grid)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(res.Points) != 9 {
		t.Fatalf("len(Points) = %d, want 9", len(res.Points))
	}
	for _, p := range res.Points {
		if !p.Feasible {
			t.Errorf("point %v infeasible, want feasible", p.Pose)
		}
		if math.Abs(p.Margin-1) > 1e-9 {
			t.Errorf("margin at %v = %v, want 1", p.Pose, p.Margin)
		}
	}
}

func TestSweepReferenceWrench(t *testing.T) {
	s := NewSweeper(boxSource{}, []float64{0.5, 0})
	grid := Grid{Axes: []Axis{
		{Min: 0, Max: 1, Steps: 2},
		{Min: 0, Max: 0, Steps: 1},
	}}

	res, err := s.Run(context.Background(), grid)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, p := range res.Points {
		if math.Abs(p.Margin-0.5) > 1e-9 {
			t.Errorf("margin at %v = %v, want 0.5", p.Pose, p.Margin)
		}
	}
}

func TestSweepRecordsSingularPosesInfeasible(t *testing.T) {
	s := NewSweeper(halfSource{}, nil)
	grid := Grid{Axes: []Axis{
		{Min: -1, Max: 1, Steps: 4},
		{Min: 0, Max: 0, Steps: 1},
	}}

	res, err := s.Run(context.Background(), grid)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	feasible := 0
	for _, p := range res.Points {
		if p.Feasible {
			feasible++
			continue
		}
		if !math.IsNaN(p.Margin) {
			t.Errorf("infeasible margin = %v, want NaN", p.Margin)
		}
	}
	if feasible != 2 {
		t.Errorf("feasible points = %d, want 2", feasible)
	}
}

func TestSweepMetrics(t *testing.T) {
	s := NewSweeper(halfSource{}, nil)
	s.AddMetric(metrics.NewMinMargin())
	s.AddMetric(metrics.NewFeasibleShare())

	grid := Grid{Axes: []Axis{
		{Min: -1, Max: 1, Steps: 4},
		{Min: 0, Max: 0, Steps: 1},
	}}
	res, err := s.Run(context.Background(), grid)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if v := res.Metrics["min_margin"]; math.Abs(v-1) > 1e-9 {
		t.Errorf("min_margin = %v, want 1", v)
	}
	if v := res.Metrics["feasible_share"]; v != 0.5 {
		t.Errorf("feasible_share = %v, want 0.5", v)
	}
}

func TestSweepFatalOnModelError(t *testing.T) {
	s := NewSweeper(badSource{}, nil)
	grid := Grid{Axes: []Axis{{Min: 0, Max: 1, Steps: 2}}}

	_, err := s.Run(context.Background(), grid)
	var derr *model.DimensionError
	if !errors.As(err, &derr) {
		t.Fatalf("Run() error = %v, want a DimensionError", err)
	}
}

func TestSweepInvalidGrid(t *testing.T) {
	s := NewSweeper(boxSource{}, nil)

	if _, err := s.Run(context.Background(), Grid{}); err == nil {
		t.Error("Run() with empty grid: expected error")
	}
}

func TestSweepCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSweeper(boxSource{}, nil)
	grid := Grid{Axes: []Axis{
		{Min: 0, Max: 1, Steps: 2},
		{Min: 0, Max: 1, Steps: 2},
	}}

	_, err := s.Run(ctx, grid)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}

func TestSweepTwoLink(t *testing.T) {
	s := NewSweeper(model.NewTwoLink(), nil)

	// First point stretches the elbow (singular), second bends it.
	grid := Grid{Axes: []Axis{
		{Min: 0, Max: 0, Steps: 1},
		{Min: 0, Max: math.Pi / 2, Steps: 2},
	}}

	res, err := s.Run(context.Background(), grid)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if res.Points[0].Feasible {
		t.Error("stretched pose recorded feasible, want infeasible")
	}
	if !res.Points[1].Feasible {
		t.Error("bent pose recorded infeasible, want feasible")
	}
}

func TestProfile(t *testing.T) {
	s := NewSweeper(boxSource{}, nil)

	res, err := s.Profile(context.Background(), []float64{0, 0}, []float64{2, 0}, 5)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if len(res.Points) != 5 {
		t.Fatalf("len(Points) = %d, want 5", len(res.Points))
	}

	for i, p := range res.Points {
		want := 0.5 * float64(i)
		if math.Abs(p.Pose[0]-want) > 1e-12 || math.Abs(p.Pose[1]) > 1e-12 {
			t.Errorf("pose %d = %v, want [%v 0]", i, p.Pose, want)
		}
		if math.Abs(p.Margin-1) > 1e-9 {
			t.Errorf("margin %d = %v, want 1", i, p.Margin)
		}
	}
}

func TestProfileArgumentChecks(t *testing.T) {
	s := NewSweeper(boxSource{}, nil)

	if _, err := s.Profile(context.Background(), []float64{0}, []float64{1, 2}, 3); err == nil {
		t.Error("Profile() with mismatched endpoints: expected error")
	}
	if _, err := s.Profile(context.Background(), []float64{0}, []float64{1}, 1); err == nil {
		t.Error("Profile() with one step: expected error")
	}
}
