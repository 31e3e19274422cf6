package config

// EntitiesConfig is the root config for entities.yaml
type EntitiesConfig struct {
	Sprites map[string]SpriteConfig `yaml:"sprites"`
	Player  PlayerConfig            `yaml:"player"`
	Stars   StarsConfig             `yaml:"stars"`
	Bombs   BombsConfig             `yaml:"bombs"`
	Score   ScoreConfig             `yaml:"score"`
}

// SpriteConfig describes a texture's frame size and its animations.
// Bodies take their size from here so the simulation runs without images.
type SpriteConfig struct {
	File       string                     `yaml:"file"`  // path inside the asset filesystem
	Sheet      bool                       `yaml:"sheet"` // sliced into Width x Height frames
	Width      int                        `yaml:"width"`
	Height     int                        `yaml:"height"`
	Animations map[string]AnimationConfig `yaml:"animations"`
}

type AnimationConfig struct {
	Start  int     `yaml:"start"`
	End    int     `yaml:"end"`
	FPS    float64 `yaml:"fps"`
	Repeat int     `yaml:"repeat"` // -1 loops forever
}

type PlayerConfig struct {
	Sprite       string  `yaml:"sprite"`
	Spawn        Vec2    `yaml:"spawn"`
	Bounce       float64 `yaml:"bounce"`
	Speed        float64 `yaml:"speed"`
	JumpVelocity float64 `yaml:"jumpVelocity"`
}

type StarsConfig struct {
	Sprite    string  `yaml:"sprite"`
	Count     int     `yaml:"count"`
	Start     Vec2    `yaml:"start"`
	StepX     float64 `yaml:"stepX"`
	BounceMin float64 `yaml:"bounceMin"`
	BounceMax float64 `yaml:"bounceMax"`
	Points    int     `yaml:"points"`
}

type BombsConfig struct {
	Sprite    string    `yaml:"sprite"`
	MaxActive int       `yaml:"maxActive"`
	SpawnY    float64   `yaml:"spawnY"`
	MaxOffset float64   `yaml:"maxOffset"`
	Speeds    []float64 `yaml:"speeds"`
	Bounce    float64   `yaml:"bounce"`
}

type ScoreConfig struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Initial  int     `yaml:"initial"`
	FontSize float64 `yaml:"fontSize"`
	Color    string  `yaml:"color"`
}
