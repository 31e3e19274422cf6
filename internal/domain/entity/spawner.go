package entity

import "math/rand"

// BombSpawnerConfig controls where and how bombs appear.
type BombSpawnerConfig struct {
	MaxActive int       // pool size cap
	SpawnY    float64   // vertical origin, above the visible area
	MaxOffset float64   // max horizontal distance from the requested x
	Speeds    []float64 // horizontal speed magnitudes to pick from
	Bounce    float64

	// Horizontal range for bomb centres. Ignored when MaxX <= MinX.
	MinX, MaxX float64
}

// BombSpawner owns the bomb pool. It creates bombs until the pool reaches
// MaxActive, then reuses members round-robin in creation order so the one
// respawned longest ago goes first.
type BombSpawner struct {
	group *Group
	cfg   BombSpawnerConfig
	rng   *rand.Rand
	next  int
}

// NewBombSpawner creates a spawner that fills group
func NewBombSpawner(group *Group, cfg BombSpawnerConfig, rng *rand.Rand) *BombSpawner {
	return &BombSpawner{
		group: group,
		cfg:   cfg,
		rng:   rng,
	}
}

// Group returns the bomb pool (for collision wiring and drawing)
func (s *BombSpawner) Group() *Group {
	return s.group
}

// Live returns the number of active bombs
func (s *BombSpawner) Live() int {
	return s.group.CountActive(true)
}

// Spawn drops one bomb near originX and returns it.
func (s *BombSpawner) Spawn(originX float64) *Sprite {
	x := s.spawnX(originX)
	y := s.cfg.SpawnY
	vx := s.spawnVX()

	var bomb *Sprite
	if s.group.Len() < s.cfg.MaxActive {
		bomb = s.group.Create(x, y)
		bomb.SetBounce(s.cfg.Bounce, s.cfg.Bounce)
		bomb.CollideWorldBounds = true
		bomb.SkipBounds.Up = true
	} else {
		bomb = s.group.Children[s.next]
		s.next = (s.next + 1) % s.group.Len()
		bomb.EnableBody(true, x, y, true, true)
	}

	bomb.SetVelocity(vx, 0)
	return bomb
}

func (s *BombSpawner) spawnX(originX float64) float64 {
	x := originX + (s.rng.Float64()*2-1)*s.cfg.MaxOffset
	if s.cfg.MaxX > s.cfg.MinX {
		x = max(s.cfg.MinX, min(x, s.cfg.MaxX))
	}
	return x
}

func (s *BombSpawner) spawnVX() float64 {
	if len(s.cfg.Speeds) == 0 {
		return 0
	}
	speed := s.cfg.Speeds[s.rng.Intn(len(s.cfg.Speeds))]
	if s.rng.Intn(2) == 0 {
		return -speed
	}
	return speed
}
