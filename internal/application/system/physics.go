package system

import (
	"github.com/younwookim/starcatch/internal/domain/entity"
	"github.com/younwookim/starcatch/internal/infrastructure/config"
)

// BodySource is anything that hands out sprites for the physics step:
// a single sprite or a group.
type BodySource interface {
	Members() []*entity.Sprite
}

// ContactFunc is called with the two sprites of a matching pair,
// in the order the rule was registered.
type ContactFunc func(a, b *entity.Sprite)

type ruleKind int

const (
	ruleCollide ruleKind = iota
	ruleOverlap
)

type rule struct {
	kind     ruleKind
	a, b     BodySource
	callback ContactFunc
}

// PhysicsSystem is a minimal arcade physics world: gravity, world bounds
// and an ordered list of collide/overlap rules between body sources.
type PhysicsSystem struct {
	gravityX, gravityY float64
	bounds             config.BoundsConfig
	width, height      float64

	sources []BodySource
	rules   []rule
	paused  bool
}

// NewPhysicsSystem creates a world of the given size
func NewPhysicsSystem(cfg config.ArcadeConfig, width, height float64) *PhysicsSystem {
	return &PhysicsSystem{
		gravityX: cfg.Gravity.X,
		gravityY: cfg.Gravity.Y,
		bounds:   cfg.Bounds,
		width:    width,
		height:   height,
	}
}

// Add registers a source whose dynamic bodies are integrated every step.
// Rules may reference sources that were never added; those bodies only
// take part in contact checks.
func (s *PhysicsSystem) Add(src BodySource) {
	s.sources = append(s.sources, src)
}

// AddCollider separates overlapping pairs from a and b, then calls cb.
func (s *PhysicsSystem) AddCollider(a, b BodySource, cb ContactFunc) {
	s.rules = append(s.rules, rule{kind: ruleCollide, a: a, b: b, callback: cb})
}

// AddOverlap calls cb for overlapping pairs from a and b without separating them.
func (s *PhysicsSystem) AddOverlap(a, b BodySource, cb ContactFunc) {
	s.rules = append(s.rules, rule{kind: ruleOverlap, a: a, b: b, callback: cb})
}

// Pause freezes the whole world
func (s *PhysicsSystem) Pause() {
	s.paused = true
}

// Paused returns true while the world is frozen
func (s *PhysicsSystem) Paused() bool {
	return s.paused
}

// Size returns the world size
func (s *PhysicsSystem) Size() (float64, float64) {
	return s.width, s.height
}

// Update advances the world by dt seconds.
// Bodies are integrated first, then rules run in registration order.
// A callback that pauses the world stops the remaining checks.
func (s *PhysicsSystem) Update(dt float64) {
	if s.paused {
		return
	}

	for _, src := range s.sources {
		for _, sp := range src.Members() {
			s.integrate(sp, dt)
		}
	}

	for _, r := range s.rules {
		if s.processRule(r) {
			return
		}
	}
}

func (s *PhysicsSystem) integrate(sp *entity.Sprite, dt float64) {
	if !sp.Enabled {
		return
	}
	sp.ClearContacts()
	if sp.Static {
		return
	}

	sp.PrevX, sp.PrevY = sp.X, sp.Y

	if sp.AllowGravity {
		sp.VX += s.gravityX * dt
		sp.VY += s.gravityY * dt
	}
	sp.X += sp.VX * dt
	sp.Y += sp.VY * dt

	if sp.CollideWorldBounds {
		s.collideWorld(sp)
	}
}

// collideWorld clamps the body inside the enabled world edges it does not
// skip and reflects its velocity by its bounce.
func (s *PhysicsSystem) collideWorld(b *entity.Sprite) {
	if s.bounds.Left && !b.SkipBounds.Left && b.Left() < 0 {
		b.X = b.W / 2
		if b.VX < 0 {
			b.VX = -b.VX * b.BounceX
		}
		b.Blocked.Left = true
	}
	if s.bounds.Right && !b.SkipBounds.Right && b.Right() > s.width {
		b.X = s.width - b.W/2
		if b.VX > 0 {
			b.VX = -b.VX * b.BounceX
		}
		b.Blocked.Right = true
	}
	if s.bounds.Up && !b.SkipBounds.Up && b.Top() < 0 {
		b.Y = b.H / 2
		if b.VY < 0 {
			b.VY = -b.VY * b.BounceY
		}
		b.Blocked.Up = true
	}
	if s.bounds.Down && !b.SkipBounds.Down && b.Bottom() > s.height {
		b.Y = s.height - b.H/2
		if b.VY > 0 {
			b.VY = -b.VY * b.BounceY
		}
		b.Blocked.Down = true
	}
}

// processRule checks every pair of the rule. Returns true if a callback
// paused the world.
func (s *PhysicsSystem) processRule(r rule) bool {
	for _, a := range r.a.Members() {
		for _, b := range r.b.Members() {
			if a == b || !a.Enabled || !b.Enabled {
				continue
			}
			if !a.Overlaps(&b.Body) {
				continue
			}
			if r.kind == ruleCollide {
				separate(a, b)
			}
			if r.callback != nil {
				r.callback(a, b)
			}
			if s.paused {
				return true
			}
			// the callback may have switched a off
			if !a.Enabled {
				break
			}
		}
	}
	return false
}

// separate pushes two overlapping bodies apart along the axis they entered on.
func separate(a, b *entity.Sprite) {
	if a.Static && b.Static {
		return
	}

	overlapX := min(a.Right(), b.Right()) - max(a.Left(), b.Left())
	overlapY := min(a.Bottom(), b.Bottom()) - max(a.Top(), b.Top())

	wasOverlapX := a.PrevX-a.W/2 < b.PrevX+b.W/2 && a.PrevX+a.W/2 > b.PrevX-b.W/2
	wasOverlapY := a.PrevY-a.H/2 < b.PrevY+b.H/2 && a.PrevY+a.H/2 > b.PrevY-b.H/2

	switch {
	case wasOverlapX && !wasOverlapY:
		separateY(a, b, overlapY)
	case wasOverlapY && !wasOverlapX:
		separateX(a, b, overlapX)
	case overlapX < overlapY:
		separateX(a, b, overlapX)
	default:
		separateY(a, b, overlapY)
	}
}

func separateY(a, b *entity.Sprite, overlap float64) {
	top, bottom := a, b
	if a.Y > b.Y {
		top, bottom = b, a
	}
	top.Touching.Down = true
	bottom.Touching.Up = true

	switch {
	case bottom.Static:
		top.Y -= overlap
		if top.VY > 0 {
			top.VY = -top.VY * top.BounceY
		}
	case top.Static:
		bottom.Y += overlap
		if bottom.VY < 0 {
			bottom.VY = -bottom.VY * bottom.BounceY
		}
	default:
		top.Y -= overlap / 2
		bottom.Y += overlap / 2
		top.VY, bottom.VY = exchange(top.VY, bottom.VY, top.BounceY, bottom.BounceY)
	}
}

func separateX(a, b *entity.Sprite, overlap float64) {
	left, right := a, b
	if a.X > b.X {
		left, right = b, a
	}
	left.Touching.Right = true
	right.Touching.Left = true

	switch {
	case right.Static:
		left.X -= overlap
		if left.VX > 0 {
			left.VX = -left.VX * left.BounceX
		}
	case left.Static:
		right.X += overlap
		if right.VX < 0 {
			right.VX = -right.VX * right.BounceX
		}
	default:
		left.X -= overlap / 2
		right.X += overlap / 2
		left.VX, right.VX = exchange(left.VX, right.VX, left.BounceX, right.BounceX)
	}
}

// exchange trades velocities between two equal-mass bodies, keeping the
// shared average and scaling each side's remainder by its bounce.
func exchange(v1, v2, bounce1, bounce2 float64) (float64, float64) {
	nv1, nv2 := v2, v1
	avg := (nv1 + nv2) / 2
	return avg + (nv1-avg)*bounce1, avg + (nv2-avg)*bounce2
}
