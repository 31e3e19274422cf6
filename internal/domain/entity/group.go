package entity

// Group is an ordered pool of sprites sharing one texture.
// Members are toggled with DisableBody/EnableBody rather than removed.
type Group struct {
	Texture        string
	FrameW, FrameH float64
	Static         bool
	Children       []*Sprite
}

// NewGroup creates a group of dynamic bodies
func NewGroup(texture string, frameW, frameH float64) *Group {
	return &Group{Texture: texture, FrameW: frameW, FrameH: frameH}
}

// NewStaticGroup creates a group of immovable bodies
func NewStaticGroup(texture string, frameW, frameH float64) *Group {
	return &Group{Texture: texture, FrameW: frameW, FrameH: frameH, Static: true}
}

// Create adds a new member centred at x, y
func (g *Group) Create(x, y float64) *Sprite {
	s := NewSprite(x, y, g.Texture, g.FrameW, g.FrameH)
	if g.Static {
		s.Static = true
		s.AllowGravity = false
	}
	g.Children = append(g.Children, s)
	return s
}

// CreateMultiple adds quantity members in a row starting at x, y,
// each stepX further to the right.
func (g *Group) CreateMultiple(quantity int, x, y, stepX float64) []*Sprite {
	created := make([]*Sprite, 0, quantity)
	for i := 0; i < quantity; i++ {
		created = append(created, g.Create(x+float64(i)*stepX, y))
	}
	return created
}

// CountActive counts members whose Active flag equals value.
func (g *Group) CountActive(value bool) int {
	n := 0
	for _, c := range g.Children {
		if c.Active == value {
			n++
		}
	}
	return n
}

// Iterate calls fn for every member in creation order.
func (g *Group) Iterate(fn func(s *Sprite)) {
	for _, c := range g.Children {
		fn(c)
	}
}

// Len returns the pool size
func (g *Group) Len() int {
	return len(g.Children)
}

// Members returns the pool in creation order
func (g *Group) Members() []*Sprite {
	return g.Children
}
