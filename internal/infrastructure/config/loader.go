package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Host     *HostConfig
	Entities *EntitiesConfig
}

// Loader loads game configuration from YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the path the loader was created with (for logging).
func (l *Loader) BasePath() string {
	return l.basePath
}

func (l *Loader) decode(path string, out any) error {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// LoadHost loads game.yaml
func (l *Loader) LoadHost() (*HostConfig, error) {
	var cfg HostConfig
	if err := l.decode("game.yaml", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEntities loads entities.yaml
func (l *Loader) LoadEntities() (*EntitiesConfig, error) {
	var cfg EntitiesConfig
	if err := l.decode("entities.yaml", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadStage loads a stage YAML file
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	var cfg StageConfig
	if err := l.decode("stages/"+name+".yaml", &cfg); err != nil {
		return nil, fmt.Errorf("stage %s: %w", name, err)
	}
	if len(cfg.Platforms) == 0 {
		return nil, fmt.Errorf("stage %s: no platforms", name)
	}
	return &cfg, nil
}

// LoadAll loads and validates all base configurations (host, entities)
func (l *Loader) LoadAll() (*GameConfig, error) {
	host, err := l.LoadHost()
	if err != nil {
		return nil, err
	}

	entities, err := l.LoadEntities()
	if err != nil {
		return nil, err
	}

	cfg := &GameConfig{
		Host:     host,
		Entities: entities,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the game cannot run with.
func (c *GameConfig) Validate() error {
	var errs []error

	d := c.Host.Display
	if d.Width <= 0 || d.Height <= 0 {
		errs = append(errs, fmt.Errorf("display size must be positive, got %dx%d", d.Width, d.Height))
	}
	if d.TPS <= 0 {
		errs = append(errs, fmt.Errorf("display tps must be positive, got %d", d.TPS))
	}
	if c.Host.Physics.Default != "arcade" {
		errs = append(errs, fmt.Errorf("unsupported physics %q", c.Host.Physics.Default))
	}
	if len(c.Host.Scenes) == 0 {
		errs = append(errs, errors.New("no scenes configured"))
	}

	e := c.Entities
	for _, key := range []string{e.Player.Sprite, e.Stars.Sprite, e.Bombs.Sprite} {
		sp, ok := e.Sprites[key]
		if !ok {
			errs = append(errs, fmt.Errorf("unknown sprite %q", key))
			continue
		}
		if sp.Width <= 0 || sp.Height <= 0 {
			errs = append(errs, fmt.Errorf("sprite %q size must be positive", key))
		}
	}
	for key, sp := range e.Sprites {
		if sp.File == "" {
			errs = append(errs, fmt.Errorf("sprite %q has no file", key))
		}
	}
	if e.Stars.Count <= 0 {
		errs = append(errs, fmt.Errorf("stars count must be positive, got %d", e.Stars.Count))
	}
	if e.Stars.BounceMin > e.Stars.BounceMax {
		errs = append(errs, fmt.Errorf("stars bounce range inverted: [%v, %v]", e.Stars.BounceMin, e.Stars.BounceMax))
	}
	if e.Bombs.MaxActive <= 0 {
		errs = append(errs, fmt.Errorf("bombs maxActive must be positive, got %d", e.Bombs.MaxActive))
	}
	if len(e.Bombs.Speeds) == 0 {
		errs = append(errs, errors.New("bombs speeds must not be empty"))
	}

	return errors.Join(errs...)
}
