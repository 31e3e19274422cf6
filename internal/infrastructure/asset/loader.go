// Package asset loads the images a scene declares during preload.
//
// Scenes queue declarations on a Loader; Load decodes every queued file
// and uploads it into a Store that the scene draws from.
package asset

import (
	"errors"
	"fmt"
	"image"
	_ "image/png" // register PNG decoder
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
)

// Kind tells how a declared file is sliced
type Kind int

const (
	KindImage Kind = iota
	KindSpriteSheet
)

// Declaration is one queued asset
type Declaration struct {
	Key    string
	Path   string
	Kind   Kind
	FrameW int
	FrameH int
}

// Decoded is a declaration with its decoded pixels
type Decoded struct {
	Declaration
	Image  image.Image
	Frames int
}

// Loader queues asset declarations and loads them from fsys
type Loader struct {
	fsys  fs.FS
	decls []Declaration
}

// NewLoader creates a loader reading from fsys
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Image declares a single image
func (l *Loader) Image(key, path string) {
	l.decls = append(l.decls, Declaration{Key: key, Path: path, Kind: KindImage})
}

// SpriteSheet declares an image made of equal frames, read left to right,
// top to bottom.
func (l *Loader) SpriteSheet(key, path string, frameW, frameH int) {
	l.decls = append(l.decls, Declaration{
		Key:    key,
		Path:   path,
		Kind:   KindSpriteSheet,
		FrameW: frameW,
		FrameH: frameH,
	})
}

// Pending returns the queued declarations in order
func (l *Loader) Pending() []Declaration {
	return l.decls
}

// Decode reads and decodes every declaration. All failures are joined.
func (l *Loader) Decode() ([]Decoded, error) {
	var errs []error
	seen := make(map[string]bool, len(l.decls))
	out := make([]Decoded, 0, len(l.decls))

	for _, d := range l.decls {
		if seen[d.Key] {
			errs = append(errs, fmt.Errorf("asset %q declared twice", d.Key))
			continue
		}
		seen[d.Key] = true

		dec, err := l.decode(d)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, dec)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *Loader) decode(d Declaration) (Decoded, error) {
	f, err := l.fsys.Open(d.Path)
	if err != nil {
		return Decoded{}, fmt.Errorf("asset %q: failed to open %s: %w", d.Key, d.Path, err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return Decoded{}, fmt.Errorf("asset %q: failed to decode %s: %w", d.Key, d.Path, err)
	}

	dec := Decoded{Declaration: d, Image: img, Frames: 1}
	if d.Kind == KindSpriteSheet {
		b := img.Bounds()
		dec.Frames = frameCount(b.Dx(), b.Dy(), d.FrameW, d.FrameH)
		if dec.Frames == 0 {
			return Decoded{}, fmt.Errorf("asset %q: %dx%d image holds no %dx%d frames",
				d.Key, b.Dx(), b.Dy(), d.FrameW, d.FrameH)
		}
	}
	return dec, nil
}

// Load decodes every declaration and uploads it as an Ebitengine image.
// The queue is cleared on success.
func (l *Loader) Load() (*Store, error) {
	decoded, err := l.Decode()
	if err != nil {
		return nil, err
	}

	store := NewStore()
	for _, d := range decoded {
		store.put(d, ebiten.NewImageFromImage(d.Image))
	}
	l.decls = nil
	return store, nil
}
