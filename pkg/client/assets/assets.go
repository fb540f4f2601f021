// Package assets provides the sprite images, keyed by name.
//
// Every sprite has a drawn fallback, so the game runs without image files.
// PNG files named after a sprite (red-bird.png, column.png, ...) in the
// asset directory replace the drawn version.
package assets

import (
	"bytes"
	"image"
	"image/color"
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	"birds/pkg/logging"
	"birds/pkg/shared/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
)

const Background = "background"

var images = make(map[string]*ebiten.Image)

var birdColors = map[string]color.RGBA{
	config.BirdRed:    {R: 214, G: 40, B: 40, A: 255},
	config.BirdYellow: {R: 250, G: 204, B: 21, A: 255},
	config.BirdBlue:   {R: 56, G: 140, B: 230, A: 255},
}

func Load(cfg config.Config, dir string, log *zap.Logger) {
	log = logging.OrNop(log)

	images[Background] = drawBackground(cfg)
	for kind, spec := range cfg.Birds {
		images[spec.Image] = drawBall(spec.Radius, birdColors[kind])
	}
	images[cfg.Pig.Image] = drawBall(cfg.Pig.Radius, color.RGBA{R: 110, G: 190, B: 60, A: 255})
	images[cfg.Column.Image] = drawColumn(cfg.Column.Width, cfg.Column.Height)

	if dir != "" {
		for name := range images {
			loadOverride(name, filepath.Join(dir, name+".png"), log)
		}
	}
	log.Info("assets loaded", zap.Int("images", len(images)))
}

func loadOverride(name, path string, log *zap.Logger) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("failed to read asset", zap.String("path", path), zap.Error(err))
		}
		return
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Warn("failed to decode asset", zap.String("path", path), zap.Error(err))
		return
	}

	images[name] = ebiten.NewImageFromImage(img)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	log.Debug("loaded asset", zap.String("path", path), zap.Int("width", w), zap.Int("height", h))
}

func GetImage(name string) *ebiten.Image {
	return images[name]
}

func drawBackground(cfg config.Config) *ebiten.Image {
	w, h := cfg.Window.Width, cfg.Window.Height
	img := ebiten.NewImage(w, h)
	img.Fill(color.RGBA{R: 150, G: 210, B: 245, A: 255})

	ground := float32(cfg.Physics.FloorHeight)
	vector.DrawFilledRect(img, 0, float32(h)-ground, float32(w), ground, color.RGBA{R: 90, G: 150, B: 50, A: 255}, false)
	return img
}

// drawBall draws a filled circle with an eye, so rotation is visible.
func drawBall(radius float64, c color.RGBA) *ebiten.Image {
	size := int(math.Ceil(2 * radius))
	img := ebiten.NewImage(size, size)
	r := float32(radius)
	vector.DrawFilledCircle(img, r, r, r, c, true)
	vector.DrawFilledCircle(img, r*1.45, r*0.8, r*0.28, color.White, true)
	vector.DrawFilledCircle(img, r*1.5, r*0.8, r*0.12, color.Black, true)
	return img
}

func drawColumn(width, height float64) *ebiten.Image {
	w, h := int(math.Ceil(width)), int(math.Ceil(height))
	img := ebiten.NewImage(w, h)
	img.Fill(color.RGBA{R: 166, G: 112, B: 60, A: 255})
	vector.StrokeRect(img, 1, 1, float32(w)-2, float32(h)-2, 2, color.RGBA{R: 100, G: 62, B: 30, A: 255}, false)
	return img
}
