package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/starcatch/internal/domain/entity"
	"github.com/younwookim/starcatch/internal/infrastructure/config"
)

// Player animation keys
const (
	AnimLeft  = "left"
	AnimTurn  = "turn"
	AnimRight = "right"
)

// InputState holds the cursor key state for one tick
type InputState struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
}

// InputSource produces one InputState per tick
type InputSource interface {
	Poll() InputState
}

// KeyboardInput reads the cursor keys from Ebitengine
type KeyboardInput struct{}

// Poll implements InputSource
func (KeyboardInput) Poll() InputState {
	return InputState{
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:    ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyArrowDown),
	}
}

// QuitRequested returns true on the tick Escape is pressed
func QuitRequested() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

// InputSystem turns input into player velocity and animation
type InputSystem struct {
	config config.PlayerConfig
	source InputSource
}

// NewInputSystem creates a new input system
func NewInputSystem(cfg config.PlayerConfig, source InputSource) *InputSystem {
	return &InputSystem{config: cfg, source: source}
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	if s.source == nil {
		return InputState{}
	}
	return s.source.Poll()
}

// UpdatePlayer applies one tick of input to the player.
// Left wins over right. Jumping is level-triggered: holding up re-applies
// the jump velocity on every tick the player touches ground.
// Every animation, turn included, is played with ignoreIfPlaying. Turn is a
// single frame, so idling shows the same frame as restarting it every tick,
// and a finished turn is started again on the next idle tick.
func (s *InputSystem) UpdatePlayer(player *entity.Sprite, input InputState) {
	switch {
	case input.Left:
		player.VX = -s.config.Speed
		s.play(player, AnimLeft)
	case input.Right:
		player.VX = s.config.Speed
		s.play(player, AnimRight)
	default:
		player.VX = 0
		s.play(player, AnimTurn)
	}

	if input.Up && player.Touching.Down {
		player.VY = -s.config.JumpVelocity
	}
}

func (s *InputSystem) play(player *entity.Sprite, key string) {
	if player.Anims != nil {
		player.Anims.Play(key, true)
	}
}
