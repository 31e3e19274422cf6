// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"maps"
	"math/rand"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/younwookim/starcatch/internal/application/scene"
	"github.com/younwookim/starcatch/internal/application/state"
	"github.com/younwookim/starcatch/internal/application/system"
	"github.com/younwookim/starcatch/internal/domain/entity"
	"github.com/younwookim/starcatch/internal/infrastructure/asset"
	"github.com/younwookim/starcatch/internal/infrastructure/config"
)

// colorHit tints the player once a bomb hits
var colorHit = color.RGBA{255, 0, 0, 255}

// ScoreStore persists finished sessions
type ScoreStore interface {
	SaveScore(stage string, score int, seed int64) (int64, error)
	HighScore(stage string) (int, error)
}

// Options carries everything the scene needs besides configuration.
// Only Input is required.
type Options struct {
	Input      system.InputSource
	Seed       int64
	Textures   *asset.Store
	Scores     ScoreStore
	Logger     *log.Logger
	RecordPath string
}

// Playing is the main gameplay scene
type Playing struct {
	config   *config.GameConfig
	stageCfg *config.StageConfig
	state    state.GameState

	physicsSystem *system.PhysicsSystem
	inputSystem   *system.InputSystem

	platforms *entity.Group
	player    *entity.Sprite
	stars     *entity.Group
	spawner   *entity.BombSpawner
	score     *entity.ScoreLabel

	screenW int
	screenH int
	ticks   int

	// Deterministic RNG
	rng  *rand.Rand
	seed int64

	textures *asset.Store
	scores   ScoreStore
	best     int
	logger   *log.Logger

	// Input recording
	recorder       *Recorder
	recordFilename string
}

// Preload declares every sprite texture in the entities config.
func Preload(l *asset.Loader, cfg *config.GameConfig) {
	for _, key := range slices.Sorted(maps.Keys(cfg.Entities.Sprites)) {
		sc := cfg.Entities.Sprites[key]
		if sc.Sheet {
			l.SpriteSheet(key, sc.File, sc.Width, sc.Height)
		} else {
			l.Image(key, sc.File)
		}
	}
}

// New creates the scene: platforms, player, stars, score label and bomb
// spawner, plus the collision rules between them.
func New(cfg *config.GameConfig, stageCfg *config.StageConfig, opts Options) (*Playing, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	sprites := cfg.Entities.Sprites
	screenW, screenH := cfg.Host.Display.Width, cfg.Host.Display.Height

	platforms, err := system.LoadStage(stageCfg, sprites)
	if err != nil {
		return nil, err
	}

	player, err := createPlayer(cfg.Entities.Player, sprites)
	if err != nil {
		return nil, err
	}

	stars := createStars(cfg.Entities.Stars, sprites, rng)

	world := system.NewPhysicsSystem(cfg.Host.Physics.Arcade, float64(screenW), float64(screenH))
	worldW, _ := world.Size()

	bombCfg := cfg.Entities.Bombs
	bombSprite := sprites[bombCfg.Sprite]
	half := float64(bombSprite.Width) / 2
	spawner := entity.NewBombSpawner(
		entity.NewGroup(bombCfg.Sprite, float64(bombSprite.Width), float64(bombSprite.Height)),
		entity.BombSpawnerConfig{
			MaxActive: bombCfg.MaxActive,
			SpawnY:    bombCfg.SpawnY,
			MaxOffset: bombCfg.MaxOffset,
			Speeds:    bombCfg.Speeds,
			Bounce:    bombCfg.Bounce,
			MinX:      half,
			MaxX:      worldW - half,
		},
		rng,
	)

	sc := cfg.Entities.Score
	p := &Playing{
		config:         cfg,
		stageCfg:       stageCfg,
		state:          state.StateLoading,
		physicsSystem:  world,
		inputSystem:    system.NewInputSystem(cfg.Entities.Player, opts.Input),
		platforms:      platforms,
		player:         player,
		stars:          stars,
		spawner:        spawner,
		score:          entity.NewScoreLabel(sc.X, sc.Y, sc.Initial),
		screenW:        screenW,
		screenH:        screenH,
		rng:            rng,
		seed:           opts.Seed,
		textures:       opts.Textures,
		scores:         opts.Scores,
		logger:         logger,
		recordFilename: opts.RecordPath,
	}

	p.wireRules()

	if p.scores != nil {
		best, err := p.scores.HighScore(stageCfg.ID)
		if err != nil {
			logger.Warn("could not read high score", "error", err)
		}
		p.best = best
	}

	// Initialize recorder if recording is enabled
	if p.recordFilename != "" {
		p.recorder = NewRecorder(opts.Seed, stageCfg.ID)
		logger.Info("recording enabled", "file", p.recordFilename, "seed", opts.Seed)
	}

	p.state = state.StatePlaying
	return p, nil
}

func createPlayer(cfg config.PlayerConfig, sprites map[string]config.SpriteConfig) (*entity.Sprite, error) {
	sc := sprites[cfg.Sprite]

	anims := entity.NewAnimationSet()
	for _, key := range slices.Sorted(maps.Keys(sc.Animations)) {
		a := sc.Animations[key]
		if err := anims.Create(entity.NewAnimation(key, a.Start, a.End, a.FPS, a.Repeat)); err != nil {
			return nil, fmt.Errorf("sprite %s: %w", cfg.Sprite, err)
		}
	}

	player := entity.NewSprite(cfg.Spawn.X, cfg.Spawn.Y, cfg.Sprite, float64(sc.Width), float64(sc.Height))
	player.SetBounce(cfg.Bounce, cfg.Bounce)
	player.CollideWorldBounds = true
	player.Anims = entity.NewAnimator(anims)
	return player, nil
}

// createStars lays the pool out in a row. Each star keeps the vertical
// bounce it is given here for the whole session.
func createStars(cfg config.StarsConfig, sprites map[string]config.SpriteConfig, rng *rand.Rand) *entity.Group {
	sc := sprites[cfg.Sprite]
	stars := entity.NewGroup(cfg.Sprite, float64(sc.Width), float64(sc.Height))
	stars.CreateMultiple(cfg.Count, cfg.Start.X, cfg.Start.Y, cfg.StepX)
	stars.Iterate(func(s *entity.Sprite) {
		s.BounceY = cfg.BounceMin + rng.Float64()*(cfg.BounceMax-cfg.BounceMin)
	})
	return stars
}

// wireRules registers bodies and contact rules. Order matters: rules run
// in registration order every step.
func (p *Playing) wireRules() {
	bombs := p.spawner.Group()

	p.physicsSystem.Add(p.platforms)
	p.physicsSystem.Add(p.player)
	p.physicsSystem.Add(p.stars)
	p.physicsSystem.Add(bombs)

	p.physicsSystem.AddCollider(p.player, p.platforms, nil)
	p.physicsSystem.AddCollider(p.stars, p.platforms, nil)
	p.physicsSystem.AddCollider(bombs, p.platforms, nil)
	p.physicsSystem.AddCollider(p.player, bombs, p.hitBomb)
	p.physicsSystem.AddOverlap(p.player, p.stars, p.collectStar)
}

// OnEnter implements scene.Scene
func (p *Playing) OnEnter() {
	p.logger.Info("game started", "stage", p.stageCfg.ID, "seed", p.seed)
}

// OnExit saves a pending recording
func (p *Playing) OnExit() {
	p.saveRecording()
}

// Update proceeds the game state (implements scene.Scene).
// Physics runs first so contact flags are fresh when input is applied.
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	if p.state.IsTerminal() {
		return nil, nil
	}

	input := p.inputSystem.GetInput()

	// Record input if recording is enabled
	if p.recorder != nil {
		p.recorder.RecordFrame(input)
	}
	p.ticks++

	p.physicsSystem.Update(dt)
	if p.state.IsTerminal() {
		return nil, nil
	}

	p.inputSystem.UpdatePlayer(p.player, input)
	if p.player.Anims != nil {
		p.player.Anims.Update(dt)
	}

	return nil, nil // nil = stay on this scene
}

// collectStar runs when the player overlaps an active star.
// Clearing the last star refills the row and drops one bomb.
func (p *Playing) collectStar(_, star *entity.Sprite) {
	star.DisableBody(true, true)
	p.score.Add(p.config.Entities.Stars.Points)

	if p.stars.CountActive(true) != 0 {
		return
	}

	y := p.config.Entities.Stars.Start.Y
	p.stars.Iterate(func(s *entity.Sprite) {
		s.EnableBody(true, s.SpawnX, y, true, true)
	})
	bomb := p.spawner.Spawn(p.player.X)
	p.logger.Debug("stars cleared", "score", p.score.Score(), "bombX", bomb.X, "bombs", p.spawner.Live())
}

// hitBomb ends the session: the world freezes and the player turns red.
func (p *Playing) hitBomb(player, _ *entity.Sprite) {
	if !p.state.CanTransition(state.StateOver) {
		return
	}

	p.physicsSystem.Pause()
	player.SetTint(colorHit)
	if player.Anims != nil {
		player.Anims.Play(system.AnimTurn, false)
	}
	p.state = state.StateOver

	p.logger.Info("game over", "score", p.score.Score(), "ticks", p.ticks)
	p.saveScore()
	p.saveRecording()
}

func (p *Playing) saveScore() {
	if p.scores == nil {
		return
	}
	final := p.score.Score()
	if _, err := p.scores.SaveScore(p.stageCfg.ID, final, p.seed); err != nil {
		p.logger.Warn("failed to save score", "error", err)
		return
	}
	p.best = max(p.best, final)
}

// saveRecording writes the recording once and stops it
func (p *Playing) saveRecording() {
	if p.recorder == nil || !p.recorder.IsRecording() {
		return
	}
	p.recorder.Stop()
	p.recorder.SetScore(p.score.Score())

	if err := p.recorder.Save(p.recordFilename); err != nil {
		p.logger.Warn("failed to save recording", "error", err)
		return
	}
	p.logger.Info("recording saved", "file", p.recordFilename, "frames", p.recorder.FrameCount())
}

// State returns the session state
func (p *Playing) State() state.GameState {
	return p.state
}

// IsOver returns true once a bomb has hit the player
func (p *Playing) IsOver() bool {
	return p.state == state.StateOver
}

// Score returns the current score
func (p *Playing) Score() int {
	return p.score.Score()
}

// ScoreLabel returns the score display
func (p *Playing) ScoreLabel() *entity.ScoreLabel {
	return p.score
}

// Player returns the player sprite
func (p *Playing) Player() *entity.Sprite {
	return p.player
}

// Stars returns the star pool
func (p *Playing) Stars() *entity.Group {
	return p.stars
}

// Platforms returns the static platforms
func (p *Playing) Platforms() *entity.Group {
	return p.platforms
}

// Spawner returns the bomb spawner
func (p *Playing) Spawner() *entity.BombSpawner {
	return p.spawner
}

// Physics returns the physics world
func (p *Playing) Physics() *system.PhysicsSystem {
	return p.physicsSystem
}

// Ticks returns the number of updates run while playing
func (p *Playing) Ticks() int {
	return p.ticks
}

// Seed returns the session seed
func (p *Playing) Seed() int64 {
	return p.seed
}

// Best returns the best stored score, including this session once over
func (p *Playing) Best() int {
	return p.best
}
