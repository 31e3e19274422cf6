package config

// HostConfig is the root config for game.yaml.
// It is consumed once at startup and handed to the engine.
type HostConfig struct {
	Display DisplayConfig `yaml:"display"`
	Physics PhysicsConfig `yaml:"physics"`
	Scenes  []string      `yaml:"scenes"`
}

type DisplayConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Scale    int    `yaml:"scale"`
	TPS      int    `yaml:"tps"`
	Renderer string `yaml:"renderer"` // auto, opengl, directx, metal
	Title    string `yaml:"title"`
}

type PhysicsConfig struct {
	Default string       `yaml:"default"`
	Arcade  ArcadeConfig `yaml:"arcade"`
}

type ArcadeConfig struct {
	Gravity Vec2         `yaml:"gravity"`
	Bounds  BoundsConfig `yaml:"bounds"`
}

// BoundsConfig selects which world edges bodies collide with.
type BoundsConfig struct {
	Up    bool `yaml:"up"`
	Down  bool `yaml:"down"`
	Left  bool `yaml:"left"`
	Right bool `yaml:"right"`
}

type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}
