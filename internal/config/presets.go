package config

import "sort"

var Presets = map[string]*Config{
	"freefall": {
		Point:         PointConfig{Position: [3]float64{0, 0, 100}, Mass: 1},
		Forces:        []ForceConfig{{Type: "gravity", Params: map[string]float64{"g": 9.81}}},
		Dt:            0.01,
		Duration:      4.0,
		ValidateState: true,
	},
	"projectile": {
		Point: PointConfig{
			Position: [3]float64{0, 0, 0},
			Velocity: [3]float64{20, 0, 20},
			Mass:     0.5,
		},
		Forces:        []ForceConfig{{Type: "gravity", Params: map[string]float64{"g": 9.81}}},
		Dt:            0.01,
		Duration:      4.0,
		ValidateState: true,
	},
	"terminal": {
		Point: PointConfig{Position: [3]float64{0, 0, 1000}, Mass: 80},
		Forces: []ForceConfig{
			{Type: "gravity", Params: map[string]float64{"g": 9.81}},
			{Type: "drag", Params: map[string]float64{"b": 15}},
		},
		Dt:            0.05,
		Duration:      30.0,
		ValidateState: true,
	},
	"oscillator": {
		Point:         PointConfig{Position: [3]float64{1, 0, 0}, Mass: 1},
		Forces:        []ForceConfig{{Type: "spring", Params: map[string]float64{"k": 4}}},
		Dt:            0.001,
		Duration:      10.0,
		ValidateState: true,
	},
	"damped": {
		Point: PointConfig{Position: [3]float64{1, 0, 0}, Velocity: [3]float64{0, 1, 0}, Mass: 1},
		Forces: []ForceConfig{
			{Type: "spring", Params: map[string]float64{"k": 4}},
			{Type: "drag", Params: map[string]float64{"b": 0.4}},
		},
		Dt:            0.005,
		Duration:      20.0,
		ValidateState: true,
	},
	"inertial": {
		Point:         PointConfig{Position: [3]float64{0, 0, 0}, Velocity: [3]float64{1, 2, 3}, Mass: 1},
		Forces:        []ForceConfig{{Type: "none"}},
		Dt:            0.1,
		Duration:      5.0,
		ValidateState: true,
	},
}

// GetPreset returns a copy of the named preset or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := cfg.Clone()
	if out.LogLevel == "" {
		out.LogLevel = DefaultLogLevel
	}
	return out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
