package store

import (
	"encoding/json"
	"math"
	"os"

	"github.com/wrenchlab/wrenchset/internal/polytope"
	"github.com/wrenchlab/wrenchset/internal/sphere"
)

type ExportData struct {
	Model      string      `json:"model"`
	Mode       string      `json:"mode"`
	Pose       []float64   `json:"pose"`
	Halfspaces [][]float64 `json:"halfspaces"`
	Offsets    []float64   `json:"offsets"`
	Vertices   [][]float64 `json:"vertices"`
	Volume     float64     `json:"volume"`
	Center     []float64   `json:"center"`
	Radius     float64     `json:"radius"`
	Unbounded  bool        `json:"unbounded,omitempty"`
}

func newExportData(model, mode string, pose []float64, p *polytope.Polytope, sp sphere.Sphere) ExportData {
	data := ExportData{
		Model:  model,
		Mode:   mode,
		Pose:   pose,
		Volume: p.Volume,
		Center: sp.Center,
		Radius: sp.Radius,
	}

	// JSON cannot carry an infinite radius.
	if math.IsInf(sp.Radius, 0) {
		data.Radius = 0
		data.Unbounded = true
	}

	if p.A != nil {
		rows, _ := p.A.Dims()
		data.Halfspaces = make([][]float64, rows)
		for i := 0; i < rows; i++ {
			data.Halfspaces[i] = append([]float64(nil), p.A.RawRowView(i)...)
		}
	}
	data.Offsets = append([]float64(nil), p.B...)

	if p.Vertices != nil {
		rows, _ := p.Vertices.Dims()
		data.Vertices = make([][]float64, rows)
		for i := 0; i < rows; i++ {
			data.Vertices[i] = append([]float64(nil), p.Vertices.RawRowView(i)...)
		}
	}

	return data
}

func ExportJSON(path string, model, mode string, pose []float64, p *polytope.Polytope, sp sphere.Sphere) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(model, mode, pose, p, sp))
}

func ExportJSONStdout(model, mode string, pose []float64, p *polytope.Polytope, sp sphere.Sphere) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(model, mode, pose, p, sp))
}
