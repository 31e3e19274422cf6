package entity

import "fmt"

// RepeatForever makes an animation loop until another one is played.
const RepeatForever = -1

// Animation is a named sequence of sheet frames.
type Animation struct {
	Key       string
	Frames    []int
	FrameRate float64 // frames per second
	Repeat    int     // extra plays after the first; RepeatForever loops
}

// NewAnimation builds an animation over the inclusive frame range start..end.
func NewAnimation(key string, start, end int, frameRate float64, repeat int) *Animation {
	frames := make([]int, 0, end-start+1)
	for f := start; f <= end; f++ {
		frames = append(frames, f)
	}
	return &Animation{Key: key, Frames: frames, FrameRate: frameRate, Repeat: repeat}
}

// AnimationSet is the registry of animations shared by sprites.
type AnimationSet struct {
	anims map[string]*Animation
}

// NewAnimationSet creates an empty registry
func NewAnimationSet() *AnimationSet {
	return &AnimationSet{anims: make(map[string]*Animation)}
}

// Create registers an animation. Keys must be unique and frames non-empty.
func (s *AnimationSet) Create(a *Animation) error {
	if _, exists := s.anims[a.Key]; exists {
		return fmt.Errorf("animation %q already exists", a.Key)
	}
	if len(a.Frames) == 0 {
		return fmt.Errorf("animation %q has no frames", a.Key)
	}
	s.anims[a.Key] = a
	return nil
}

// Get looks up an animation by key
func (s *AnimationSet) Get(key string) (*Animation, bool) {
	a, ok := s.anims[key]
	return a, ok
}

// Animator plays animations from a set on one sprite.
type Animator struct {
	set       *AnimationSet
	current   *Animation
	index     int
	elapsed   float64
	playsLeft int
	playing   bool
}

// NewAnimator creates an animator bound to set
func NewAnimator(set *AnimationSet) *Animator {
	return &Animator{set: set}
}

// Play starts the animation with key from its first frame.
// With ignoreIfPlaying, a call for the animation already running is a no-op.
// Returns false if the key is unknown.
func (a *Animator) Play(key string, ignoreIfPlaying bool) bool {
	if ignoreIfPlaying && a.playing && a.current != nil && a.current.Key == key {
		return true
	}
	anim, ok := a.set.Get(key)
	if !ok {
		return false
	}
	a.current = anim
	a.index = 0
	a.elapsed = 0
	a.playsLeft = anim.Repeat
	a.playing = true
	return true
}

// Update advances the current animation by dt seconds.
func (a *Animator) Update(dt float64) {
	if !a.playing || a.current == nil || a.current.FrameRate <= 0 {
		return
	}

	step := 1.0 / a.current.FrameRate
	a.elapsed += dt
	for a.elapsed >= step {
		a.elapsed -= step
		a.index++
		if a.index < len(a.current.Frames) {
			continue
		}
		switch {
		case a.playsLeft == RepeatForever:
			a.index = 0
		case a.playsLeft > 0:
			a.playsLeft--
			a.index = 0
		default:
			a.index = len(a.current.Frames) - 1
			a.playing = false
			return
		}
	}
}

// Frame returns the sheet frame of the current animation
func (a *Animator) Frame() int {
	if a.current == nil {
		return 0
	}
	return a.current.Frames[a.index]
}

// Current returns the animation being shown, or nil
func (a *Animator) Current() *Animation {
	return a.current
}

// CurrentKey returns the key of the animation being shown
func (a *Animator) CurrentKey() string {
	if a.current == nil {
		return ""
	}
	return a.current.Key
}

// IsPlaying returns true until a non-looping animation finishes
func (a *Animator) IsPlaying() bool {
	return a.playing
}
