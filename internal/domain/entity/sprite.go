package entity

import "image/color"

// Sprite is a textured game object with an arcade body.
type Sprite struct {
	Body

	Texture string
	Frame   int

	// Unscaled frame size; the body size is this times the scale.
	FrameW, FrameH float64
	ScaleX, ScaleY float64

	Visible bool
	Active  bool
	Tint    color.Color // nil draws the texture untinted

	// Where the sprite was created. Pools re-enable members here.
	SpawnX, SpawnY float64

	Anims *Animator
}

// NewSprite creates an active, visible sprite centred at x, y with an enabled
// dynamic body the size of one frame.
func NewSprite(x, y float64, texture string, frameW, frameH float64) *Sprite {
	return &Sprite{
		Body: Body{
			X: x, Y: y,
			PrevX: x, PrevY: y,
			W: frameW, H: frameH,
			AllowGravity: true,
			Enabled:      true,
		},
		Texture: texture,
		FrameW:  frameW,
		FrameH:  frameH,
		ScaleX:  1,
		ScaleY:  1,
		Visible: true,
		Active:  true,
		SpawnX:  x,
		SpawnY:  y,
	}
}

// SetScale scales the sprite uniformly. The body keeps its old size until
// RefreshBody is called.
func (s *Sprite) SetScale(scale float64) *Sprite {
	s.ScaleX = scale
	s.ScaleY = scale
	return s
}

// RefreshBody syncs the body size with the scaled frame size.
func (s *Sprite) RefreshBody() *Sprite {
	s.W = s.FrameW * s.ScaleX
	s.H = s.FrameH * s.ScaleY
	return s
}

// DisableBody stops the body taking part in physics, optionally deactivating
// and hiding the sprite too.
func (s *Sprite) DisableBody(disableGameObject, hideGameObject bool) {
	s.Enabled = false
	s.VX, s.VY = 0, 0
	s.ClearContacts()
	if disableGameObject {
		s.Active = false
	}
	if hideGameObject {
		s.Visible = false
	}
}

// EnableBody turns the body back on. With reset the body is moved to x, y
// and stopped.
func (s *Sprite) EnableBody(reset bool, x, y float64, enableGameObject, showGameObject bool) {
	if reset {
		s.Reset(x, y)
	}
	s.Enabled = true
	if enableGameObject {
		s.Active = true
	}
	if showGameObject {
		s.Visible = true
	}
}

// SetTint multiplies the texture colour when drawn.
func (s *Sprite) SetTint(c color.Color) {
	s.Tint = c
}

// CurrentFrame returns the sheet frame to draw.
func (s *Sprite) CurrentFrame() int {
	if s.Anims != nil && s.Anims.Current() != nil {
		return s.Anims.Frame()
	}
	return s.Frame
}

// Members lets a single sprite be used wherever a group is expected.
func (s *Sprite) Members() []*Sprite {
	return []*Sprite{s}
}
