package systems

import (
	"fmt"
	"image/color"

	"birds/pkg/client/assets"
	"birds/pkg/game"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const aimLineWidth = 3

type RenderSystem struct {
	Level  *game.Level
	Height int
}

func NewRenderSystem(level *game.Level, height int) *RenderSystem {
	return &RenderSystem{Level: level, Height: height}
}

func (s *RenderSystem) Draw(screen *ebiten.Image) {
	if bg := assets.GetImage(assets.Background); bg != nil {
		screen.DrawImage(bg, nil)
	}

	for _, sprite := range s.Level.Sprites() {
		s.drawSprite(screen, sprite)
	}

	if start, end, ok := s.Level.Aim(); ok {
		x0, y0 := game.WorldToScreen(start, s.Height)
		x1, y1 := game.WorldToScreen(end, s.Height)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), aimLineWidth, color.Black, true)
	}

	s.drawHUD(screen)
}

func (s *RenderSystem) drawSprite(screen *ebiten.Image, sprite game.SpriteView) {
	img := assets.GetImage(sprite.Image)
	if img == nil {
		return
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(sprite.Width/float64(w), sprite.Height/float64(h))
	// Screen y points down, so counter-clockwise world rotation flips sign.
	op.GeoM.Rotate(-sprite.Angle)
	op.GeoM.Translate(sprite.X, float64(s.Height)-sprite.Y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func (s *RenderSystem) drawHUD(screen *ebiten.Image) {
	stats := s.Level.Stats()
	msg := fmt.Sprintf("Bird: %s [R/Y/B]  Boost: G  Split: F\nScore: %d  Launched: %d  Pigs: %d  Columns: %d",
		s.Level.Selected(), stats.Score, stats.Launched, stats.Pigs, stats.Columns)
	if stats.Cleared {
		msg += "\nLevel cleared! Esc to quit."
	}
	ebitenutil.DebugPrintAt(screen, msg, 10, 10)
}
