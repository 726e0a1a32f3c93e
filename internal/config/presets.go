package config

var Presets = map[string]map[string]*Config{
	"twolink": {
		"bent": {
			Model: "twolink", Mode: "capacity",
			Pose: []float64{0.3, 1.2},
		},
		"reach": {
			Model: "twolink", Mode: "capacity",
			Pose: []float64{0.2, 0.35},
		},
		"coriolis": {
			Model: "twolink", Mode: "coriolis",
			Pose: []float64{0.3, 1.2},
		},
		"sweep": {
			Model: "twolink", Mode: "capacity",
			Grid: GridConfig{Axes: []AxisConfig{
				{Min: -1.5, Max: 1.5, Steps: 25},
				{Min: 0.2, Max: 2.9, Steps: 25},
			}},
		},
	},
	"planar_cable": {
		"center": {
			Model: "planar_cable", Mode: "capacity",
			Pose: []float64{0, 1.5},
		},
		"low": {
			Model: "planar_cable", Mode: "capacity",
			Pose: []float64{0, 0.4},
		},
		"chebyshev": {
			Model: "planar_cable", Mode: "chebyshev",
			Pose: []float64{0, 1.5},
		},
		"containing": {
			Model: "planar_cable", Mode: "max_containing",
			Pose: []float64{0, 1.5}, Buffer: 10,
		},
		"sweep": {
			Model: "planar_cable", Mode: "capacity",
			Grid: GridConfig{Axes: []AxisConfig{
				{Min: -1.6, Max: 1.6, Steps: 33},
				{Min: 0.3, Max: 2.7, Steps: 25},
			}},
		},
	},
	"spatial_cable": {
		"hover": {
			Model: "spatial_cable", Mode: "capacity",
			Pose: []float64{0, 0, 1.5},
		},
		"chebyshev": {
			Model: "spatial_cable", Mode: "chebyshev",
			Pose: []float64{0, 0, 1.5},
		},
		"sweep": {
			Model: "spatial_cable", Mode: "capacity",
			Grid: GridConfig{Axes: []AxisConfig{
				{Min: -1.5, Max: 1.5, Steps: 11},
				{Min: -1.5, Max: 1.5, Steps: 11},
				{Min: 0.4, Max: 2.6, Steps: 9},
			}},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
