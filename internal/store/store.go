package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/wrenchlab/wrenchset/internal/workspace"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Model     string             `json:"model"`
	Mode      string             `json:"mode"`
	Timestamp time.Time          `json:"timestamp"`
	Reference []float64          `json:"reference,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(model, mode string, reference []float64, result *workspace.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	// json cannot encode non-finite numbers; an all-infeasible sweep
	// reports an infinite min margin. The csv still carries every point.
	metricVals := make(map[string]float64, len(result.Metrics))
	for name, val := range result.Metrics {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			continue
		}
		metricVals[name] = val
	}

	meta := RunMetadata{
		ID:        runID,
		Model:     model,
		Mode:      mode,
		Timestamp: time.Now(),
		Reference: reference,
		Metrics:   metricVals,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "grid.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Points) == 0 {
		return runID, nil
	}

	header := make([]string, 0, len(result.Points[0].Pose)+2)
	for i := range result.Points[0].Pose {
		header = append(header, fmt.Sprintf("q%d", i))
	}
	header = append(header, "margin", "feasible")
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, pt := range result.Points {
		row := make([]string, 0, len(pt.Pose)+2)
		for _, val := range pt.Pose {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		row = append(row, strconv.FormatFloat(pt.Margin, 'f', 6, 64))
		if pt.Feasible {
			row = append(row, "1")
		} else {
			row = append(row, "0")
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadPoints(runID string) ([]workspace.Point, error) {
	csvPath := filepath.Join(s.baseDir, runID, "grid.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []workspace.Point{}, nil
	}

	points := make([]workspace.Point, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}

		dim := len(record) - 2
		pose := make([]float64, 0, dim)
		ok := true
		for j := 0; j < dim; j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			pose = append(pose, val)
		}
		if !ok {
			continue
		}

		margin, err := strconv.ParseFloat(record[dim], 64)
		if err != nil {
			continue
		}

		points = append(points, workspace.Point{
			Pose:     pose,
			Margin:   margin,
			Feasible: record[dim+1] == "1",
		})
	}

	return points, nil
}
