package entity

// Touching records which sides of a body made contact during the last step.
type Touching struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// Any returns true if any side is set.
func (t Touching) Any() bool {
	return t.Up || t.Down || t.Left || t.Right
}

// Body is an axis-aligned arcade body.
// X, Y is the centre of the box, matching how sprites are placed in the level.
// Velocity is in pixels per second.
type Body struct {
	X, Y   float64
	W, H   float64
	VX, VY float64

	// Position before the last integration, used to find the entry side.
	PrevX, PrevY float64

	BounceX, BounceY   float64
	AllowGravity       bool
	CollideWorldBounds bool
	Static             bool // immovable, never integrated
	Enabled            bool

	// World edges this body passes through even when the world checks them.
	// Bombs drop in from above the screen.
	SkipBounds Touching

	Touching Touching // contact with other bodies this step
	Blocked  Touching // contact with world bounds this step
}

// Left returns the left edge
func (b *Body) Left() float64 { return b.X - b.W/2 }

// Right returns the right edge
func (b *Body) Right() float64 { return b.X + b.W/2 }

// Top returns the top edge
func (b *Body) Top() float64 { return b.Y - b.H/2 }

// Bottom returns the bottom edge
func (b *Body) Bottom() float64 { return b.Y + b.H/2 }

// SetVelocity sets both velocity components
func (b *Body) SetVelocity(vx, vy float64) {
	b.VX = vx
	b.VY = vy
}

// SetBounce sets restitution on both axes
func (b *Body) SetBounce(x, y float64) {
	b.BounceX = x
	b.BounceY = y
}

// Reset moves the body to x, y and stops it.
func (b *Body) Reset(x, y float64) {
	b.X, b.Y = x, y
	b.PrevX, b.PrevY = x, y
	b.VX, b.VY = 0, 0
	b.ClearContacts()
}

// ClearContacts clears the per-step contact flags
func (b *Body) ClearContacts() {
	b.Touching = Touching{}
	b.Blocked = Touching{}
}

// Overlaps reports whether two boxes intersect with a positive area.
// Boxes that only share an edge do not overlap.
func (b *Body) Overlaps(o *Body) bool {
	return b.Left() < o.Right() && b.Right() > o.Left() &&
		b.Top() < o.Bottom() && b.Bottom() > o.Top()
}
