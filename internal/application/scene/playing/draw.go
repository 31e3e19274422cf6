package playing

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/younwookim/starcatch/internal/domain/entity"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{135, 206, 235, 255}
	colorOverlay  = color.RGBA{0, 0, 0, 150}
	colorOverText = color.RGBA{255, 255, 255, 255}
)

// Placeholder colors when a texture is missing
var fallbackColors = map[string]color.RGBA{
	"ground": {90, 160, 60, 255},
	"star":   {255, 215, 0, 255},
	"bomb":   {40, 40, 40, 255},
	"dude":   {150, 90, 200, 255},
}

// basicfont glyphs are 13px tall
const baseFontSize = 13.0

var uiFace = text.NewGoXFace(basicfont.Face7x13)

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	p.drawBackground(screen)
	p.drawGroup(screen, p.platforms)
	p.drawGroup(screen, p.stars)
	p.drawGroup(screen, p.spawner.Group())
	p.drawSprite(screen, p.player)
	p.drawUI(screen)

	if p.IsOver() {
		p.drawGameOverOverlay(screen)
	}
}

func (p *Playing) drawBackground(screen *ebiten.Image) {
	bg := p.stageCfg.Background
	img, ok := p.textures.Image(bg.Sprite)
	if !ok {
		return
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(bg.X-float64(b.Dx())/2, bg.Y-float64(b.Dy())/2)
	screen.DrawImage(img, op)
}

func (p *Playing) drawGroup(screen *ebiten.Image, g *entity.Group) {
	g.Iterate(func(s *entity.Sprite) {
		p.drawSprite(screen, s)
	})
}

// drawSprite draws s centred on its position. Missing textures fall back
// to a flat box the size of the body.
func (p *Playing) drawSprite(screen *ebiten.Image, s *entity.Sprite) {
	if !s.Visible {
		return
	}

	img, ok := p.textures.Frame(s.Texture, s.CurrentFrame())
	if !ok {
		c, known := fallbackColors[s.Texture]
		if !known {
			c = color.RGBA{255, 0, 255, 255}
		}
		if s.Tint != nil {
			c = color.RGBAModel.Convert(s.Tint).(color.RGBA)
		}
		ebitenutil.DrawRect(screen, s.Left(), s.Top(), s.W, s.H, c)
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-s.FrameW/2, -s.FrameH/2)
	op.GeoM.Scale(s.ScaleX, s.ScaleY)
	op.GeoM.Translate(s.X, s.Y)
	if s.Tint != nil {
		op.ColorScale.ScaleWithColor(s.Tint)
	}
	screen.DrawImage(img, op)
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	sc := p.config.Entities.Score
	clr, err := parseHexColor(sc.Color)
	if err != nil {
		clr = color.RGBA{A: 255}
	}
	size := sc.FontSize
	if size <= 0 {
		size = baseFontSize
	}

	drawText(screen, p.score.Text(), p.score.X, p.score.Y, size, clr)
	if p.scores != nil {
		drawText(screen, fmt.Sprintf("Best: %d", p.best), p.score.X, p.score.Y+size+4, size/2, clr)
	}
}

func (p *Playing) drawGameOverOverlay(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorOverlay)

	cx := float64(p.screenW)/2 - 150
	cy := float64(p.screenH)/2 - 60
	drawText(screen, "GAME OVER", cx, cy, 48, colorOverText)
	drawText(screen, entity.FormatScore(p.score.Score()), cx, cy+64, 24, colorOverText)
	drawText(screen, "Press ESC to quit", cx, cy+100, 16, colorOverText)
}

// drawText draws s with its top-left corner at x, y, scaling the bitmap
// face up to size pixels.
func drawText(screen *ebiten.Image, s string, x, y, size float64, clr color.Color) {
	k := size / baseFontSize
	op := &text.DrawOptions{}
	op.GeoM.Scale(k, k)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, uiFace, op)
}

// parseHexColor accepts "#rgb" and "#rrggbb".
func parseHexColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("color %q must start with #", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q must have 3 or 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
