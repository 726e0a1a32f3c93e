package store

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/wrenchlab/wrenchset/internal/workspace"
)

func sweepResult() *workspace.Result {
	return &workspace.Result{
		Points: []workspace.Point{
			{Pose: []float64{0.1, 1.5}, Margin: 42.5, Feasible: true},
			{Pose: []float64{0.2, 0}, Margin: math.NaN(), Feasible: false},
		},
		Metrics: map[string]float64{"min_margin": 42.5},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("planar_cable", "capacity", []float64{0, 0}, sweepResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Model != "planar_cable" {
		t.Errorf("expected model 'planar_cable', got '%s'", meta.Model)
	}
	if meta.Mode != "capacity" {
		t.Errorf("expected mode 'capacity', got '%s'", meta.Mode)
	}
	if meta.Metrics["min_margin"] != 42.5 {
		t.Errorf("expected min_margin 42.5, got %f", meta.Metrics["min_margin"])
	}
}

func TestStoreLoadPoints(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("planar_cable", "capacity", nil, sweepResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	points, err := st.LoadPoints(runID)
	if err != nil {
		t.Fatalf("load points failed: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}

	if points[0].Margin != 42.5 || !points[0].Feasible {
		t.Errorf("expected feasible point with margin 42.5, got %+v", points[0])
	}
	if len(points[0].Pose) != 2 || points[0].Pose[0] != 0.1 {
		t.Errorf("expected pose [0.1 1.5], got %v", points[0].Pose)
	}

	if points[1].Feasible {
		t.Error("expected second point infeasible")
	}
	if !math.IsNaN(points[1].Margin) {
		t.Errorf("expected NaN margin for infeasible point, got %f", points[1].Margin)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("twolink", "capacity", nil, sweepResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("twolink", "capacity", nil, sweepResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	metaPath := filepath.Join(runDir, "metadata.json")
	csvPath := filepath.Join(runDir, "grid.csv")

	if _, err := os.Stat(metaPath); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(csvPath); os.IsNotExist(err) {
		t.Error("grid.csv not created")
	}
}
