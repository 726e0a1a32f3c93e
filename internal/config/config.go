package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGridSteps    = 25
	DefaultProfileSteps = 50
)

type Config struct {
	Model     string        `yaml:"model"`
	Mode      string        `yaml:"mode"`
	Pose      []float64     `yaml:"pose"`
	Reference []float64     `yaml:"reference"`
	Buffer    float64       `yaml:"buffer"`
	Grid      GridConfig    `yaml:"grid"`
	Profile   ProfileConfig `yaml:"profile"`
	Robot     RobotConfig   `yaml:"robot"`
}

type GridConfig struct {
	Axes []AxisConfig `yaml:"axes"`
}

type AxisConfig struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Steps int     `yaml:"steps"`
}

type ProfileConfig struct {
	From  []float64 `yaml:"from"`
	To    []float64 `yaml:"to"`
	Steps int       `yaml:"steps"`
}

// RobotConfig overrides generator parameters. Zero values keep the
// generator defaults.
type RobotConfig struct {
	Mass           float64 `yaml:"mass"`
	Gravity        float64 `yaml:"gravity"`
	TensionMin     float64 `yaml:"tension_min"`
	TensionMax     float64 `yaml:"tension_max"`
	L1             float64 `yaml:"l1"`
	L2             float64 `yaml:"l2"`
	ShoulderTorque float64 `yaml:"shoulder_torque"`
	ElbowTorque    float64 `yaml:"elbow_torque"`
}

func DefaultConfig() *Config {
	return &Config{
		Model: "twolink",
		Mode:  "capacity",
		Grid: GridConfig{Axes: []AxisConfig{
			{Min: -1.5, Max: 1.5, Steps: DefaultGridSteps},
			{Min: 0.2, Max: 2.9, Steps: DefaultGridSteps},
		}},
		Profile: ProfileConfig{Steps: DefaultProfileSteps},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetPose returns the configured pose, or a sensible per-model default.
func (c *Config) GetPose() []float64 {
	if len(c.Pose) > 0 {
		return c.Pose
	}
	switch c.Model {
	case "planar_cable":
		return []float64{0, 1.5}
	case "spatial_cable":
		return []float64{0, 0, 1.5}
	default:
		return []float64{0.3, 1.2}
	}
}
