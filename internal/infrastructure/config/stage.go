package config

// StageConfig is the root config for stage YAML files
type StageConfig struct {
	ID             string           `yaml:"id"`
	Name           string           `yaml:"name"`
	Background     BackgroundConfig `yaml:"background"`
	PlatformSprite string           `yaml:"platformSprite"`
	Platforms      []PlatformConfig `yaml:"platforms"`
}

type BackgroundConfig struct {
	Sprite string  `yaml:"sprite"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

// PlatformConfig places one static platform by its centre.
type PlatformConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Scale float64 `yaml:"scale"`
}
