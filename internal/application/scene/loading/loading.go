// Package loading provides the scene that runs while assets load.
package loading

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/starcatch/internal/application/scene"
	"github.com/younwookim/starcatch/internal/infrastructure/asset"
)

// PreloadFunc declares the assets the next scene needs
type PreloadFunc func(l *asset.Loader)

// CreateFunc builds the next scene once its assets are loaded
type CreateFunc func(store *asset.Store) (scene.Scene, error)

// Loading loads every declared asset on its first tick, then hands the
// store to create and switches to the scene it returns.
// Any failure ends the game.
type Loading struct {
	loader  *asset.Loader
	preload PreloadFunc
	create  CreateFunc
	logger  *log.Logger
}

// New creates a loading scene
func New(loader *asset.Loader, preload PreloadFunc, create CreateFunc, logger *log.Logger) *Loading {
	if logger == nil {
		logger = log.Default()
	}
	return &Loading{
		loader:  loader,
		preload: preload,
		create:  create,
		logger:  logger,
	}
}

// OnEnter queues the asset declarations
func (l *Loading) OnEnter() {
	if l.preload != nil {
		l.preload(l.loader)
	}
	l.logger.Debug("preload", "assets", len(l.loader.Pending()))
}

// OnExit implements scene.Scene
func (l *Loading) OnExit() {}

// Update implements scene.Scene
func (l *Loading) Update(_ float64) (scene.Scene, error) {
	store, err := l.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}

	next, err := l.create(store)
	if err != nil {
		return nil, fmt.Errorf("creating scene: %w", err)
	}
	l.logger.Debug("assets loaded")
	return next, nil
}

// Draw implements scene.Scene
func (l *Loading) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "Loading...", 8, 8)
}
