package client

import (
	"birds/pkg/client/assets"
	"birds/pkg/client/systems"
	"birds/pkg/game"
	"birds/pkg/logging"
	"birds/pkg/shared/config"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Game adapts a Level to ebiten's game loop.
type Game struct {
	Level *game.Level

	// Systems
	InputSystem  *systems.InputSystem
	RenderSystem *systems.RenderSystem

	width, height int
}

func NewGame(cfg config.Config, level *game.Level, assetDir string, log *zap.Logger) *Game {
	log = logging.OrNop(log)
	assets.Load(cfg, assetDir, log.Named("assets"))

	return &Game{
		Level:        level,
		InputSystem:  systems.NewInputSystem(level, systems.DefaultKeys(), cfg.Window.Height, log.Named("input")),
		RenderSystem: systems.NewRenderSystem(level, cfg.Window.Height),
		width:        cfg.Window.Width,
		height:       cfg.Window.Height,
	}
}

func (g *Game) Update() error {
	if err := g.InputSystem.Update(); err != nil {
		return err
	}
	g.Level.Update(1 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.RenderSystem.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens the window and blocks until the player quits.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(config.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// RunGame returns nil when Update reports ebiten.Termination.
	return ebiten.RunGame(g)
}
