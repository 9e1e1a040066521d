package config

import (
	"os"

	"github.com/brakelab/brakelab/internal/scenario"
	"gopkg.in/yaml.v3"
)

const (
	DefaultObstacleDistance = 400.0
	DefaultMaxTicks         = 20000
	DefaultDataDir          = ".brakelab"
)

type Config struct {
	Speed            string  `yaml:"speed"`
	Surface          string  `yaml:"surface"`
	ObstacleDistance float64 `yaml:"obstacle_distance"`
	MaxTicks         int     `yaml:"max_ticks"`
	DataDir          string  `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Speed:            string(scenario.SpeedMedium),
		Surface:          string(scenario.SurfaceDry),
		ObstacleDistance: DefaultObstacleDistance,
		MaxTicks:         DefaultMaxTicks,
		DataDir:          DefaultDataDir,
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

// RunConfiguration converts the file config into a validated run
// configuration.
func (c *Config) RunConfiguration() (scenario.RunConfiguration, error) {
	speed, err := scenario.ParseSpeedClass(c.Speed)
	if err != nil {
		return scenario.RunConfiguration{}, err
	}
	surface, err := scenario.ParseSurface(c.Surface)
	if err != nil {
		return scenario.RunConfiguration{}, err
	}
	dist := c.ObstacleDistance
	if dist <= 0 {
		dist = DefaultObstacleDistance
	}
	return scenario.RunConfiguration{
		SpeedClass:       speed,
		Surface:          surface,
		ObstacleDistance: dist,
	}, nil
}
