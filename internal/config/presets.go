package config

// Presets are ready-made animation shapes, keyed by feel.
var Presets = map[string]*Config{
	"classic": {
		DurationMS: 500, Axis: "vertical", Orientation: "front",
		SnapTime: 0.2, SnapTravel: 0.75,
		Perspective: 0.002, Backface: "tracking", TickRate: 60,
	},
	"snappy": {
		DurationMS: 250, Axis: "vertical", Orientation: "front",
		SnapTime: 0.15, SnapTravel: 0.85,
		Perspective: 0.002, Backface: "tracking", TickRate: 60,
	},
	"lazy": {
		DurationMS: 900, Axis: "vertical", Orientation: "front",
		SnapTime: 0.35, SnapTravel: 0.55,
		Perspective: 0.002, Backface: "tracking", TickRate: 60,
	},
	"tumble": {
		DurationMS: 600, Axis: "horizontal", Orientation: "front",
		SnapTime: 0.25, SnapTravel: 0.7,
		Perspective: 0.002, Backface: "tracking", TickRate: 60,
	},
	"pinned": {
		DurationMS: 500, Axis: "vertical", Orientation: "front",
		SnapTime: 0.2, SnapTravel: 0.75,
		Perspective: 0.002, Backface: "pinned", TickRate: 60,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
