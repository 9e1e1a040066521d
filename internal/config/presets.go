package config

// Presets are named scenarios for the demo.
var Presets = map[string]*Config{
	"commute": {
		Speed: "medium", Surface: "dry", ObstacleDistance: 400,
	},
	"motorway": {
		Speed: "high", Surface: "dry", ObstacleDistance: 400,
	},
	"rainstorm": {
		Speed: "medium", Surface: "wet", ObstacleDistance: 400,
	},
	"blackice": {
		Speed: "medium", Surface: "icy", ObstacleDistance: 400,
	},
	"closecall": {
		Speed: "medium", Surface: "dry", ObstacleDistance: 120,
	},
	"pileup": {
		Speed: "medium", Surface: "icy", ObstacleDistance: 50,
	},
	"crawl": {
		Speed: "low", Surface: "icy", ObstacleDistance: 400,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *DefaultConfig()
	out.Speed = cfg.Speed
	out.Surface = cfg.Surface
	out.ObstacleDistance = cfg.ObstacleDistance
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
