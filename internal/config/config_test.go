package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "twolink" {
		t.Errorf("expected model twolink, got %s", cfg.Model)
	}
	if cfg.Mode != "capacity" {
		t.Errorf("expected mode capacity, got %s", cfg.Mode)
	}
	if len(cfg.Grid.Axes) != 2 {
		t.Errorf("expected 2 grid axes, got %d", len(cfg.Grid.Axes))
	}
	for i, ax := range cfg.Grid.Axes {
		if ax.Steps <= 0 {
			t.Errorf("axis %d steps should be positive", i)
		}
	}
	if cfg.Profile.Steps <= 0 {
		t.Error("profile steps should be positive")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("planar_cable", "center")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Pose[1] != 1.5 {
		t.Errorf("expected pose height 1.5, got %f", cfg.Pose[1])
	}
	if cfg.Mode != "capacity" {
		t.Errorf("expected mode capacity, got %s", cfg.Mode)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg := GetPreset("planar_cable", "nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg = GetPreset("nonexistent", "center")
	if cfg != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("twolink")
	if len(presets) == 0 {
		t.Error("expected presets for twolink")
	}

	presets = ListPresets("nonexistent")
	if presets != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestGetPose(t *testing.T) {
	tests := []struct {
		model    string
		expected int
	}{
		{"twolink", 2},
		{"planar_cable", 2},
		{"spatial_cable", 3},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Model = tt.model
		cfg.Pose = nil
		pose := cfg.GetPose()
		if len(pose) != tt.expected {
			t.Errorf("model %s: expected pose dimension %d, got %d", tt.model, tt.expected, len(pose))
		}
	}

	cfg := DefaultConfig()
	cfg.Pose = []float64{1, 2}
	if got := cfg.GetPose(); got[0] != 1 || got[1] != 2 {
		t.Errorf("expected explicit pose [1 2], got %v", got)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = "spatial_cable"
	cfg.Pose = []float64{0.1, -0.2, 1.0}
	cfg.Robot.Mass = 25

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Model != "spatial_cable" {
		t.Errorf("expected model spatial_cable, got %s", loaded.Model)
	}
	if loaded.Robot.Mass != 25 {
		t.Errorf("expected robot mass 25, got %f", loaded.Robot.Mass)
	}
	if len(loaded.Pose) != 3 || loaded.Pose[2] != 1.0 {
		t.Errorf("expected pose [0.1 -0.2 1], got %v", loaded.Pose)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := []byte("model: planar_cable\npose: [0.5, 1.0]\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Model != "planar_cable" {
		t.Errorf("expected model planar_cable, got %s", cfg.Model)
	}
	if cfg.Mode != "capacity" {
		t.Errorf("expected default mode capacity, got %s", cfg.Mode)
	}
	if cfg.Profile.Steps != DefaultProfileSteps {
		t.Errorf("expected default profile steps, got %d", cfg.Profile.Steps)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
