package asset

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

type entry struct {
	img            *ebiten.Image
	frameW, frameH int
}

// Store holds loaded textures by key
type Store struct {
	entries map[string]entry
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{entries: make(map[string]entry)}
}

func (s *Store) put(d Decoded, img *ebiten.Image) {
	e := entry{img: img}
	if d.Kind == KindSpriteSheet {
		e.frameW, e.frameH = d.FrameW, d.FrameH
	}
	s.entries[d.Key] = e
}

// Image returns the whole texture for key
func (s *Store) Image(key string) (*ebiten.Image, bool) {
	if s == nil {
		return nil, false
	}
	e, ok := s.entries[key]
	return e.img, ok
}

// Frame returns one frame of a sprite sheet. Plain images only have frame 0.
func (s *Store) Frame(key string, index int) (*ebiten.Image, bool) {
	if s == nil {
		return nil, false
	}
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if e.frameW == 0 {
		return e.img, index == 0
	}

	b := e.img.Bounds()
	r, ok := frameRect(b.Dx(), b.Dy(), e.frameW, e.frameH, index)
	if !ok {
		return nil, false
	}
	return e.img.SubImage(r).(*ebiten.Image), true
}

func frameCount(imgW, imgH, frameW, frameH int) int {
	if frameW <= 0 || frameH <= 0 {
		return 0
	}
	return (imgW / frameW) * (imgH / frameH)
}

// frameRect finds frame index in an imgW x imgH sheet
func frameRect(imgW, imgH, frameW, frameH, index int) (image.Rectangle, bool) {
	if index < 0 || index >= frameCount(imgW, imgH, frameW, frameH) {
		return image.Rectangle{}, false
	}
	cols := imgW / frameW
	x := (index % cols) * frameW
	y := (index / cols) * frameH
	return image.Rect(x, y, x+frameW, y+frameH), true
}
