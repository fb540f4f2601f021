package systems

import (
	"errors"

	"birds/pkg/game"
	"birds/pkg/logging"
	"birds/pkg/shared/config"
	"birds/pkg/shared/geom"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

type InputSystem struct {
	Level  *game.Level
	Keys   map[string]ebiten.Key
	Height int

	log *zap.Logger
}

func NewInputSystem(level *game.Level, keys map[string]ebiten.Key, height int, log *zap.Logger) *InputSystem {
	return &InputSystem{
		Level:  level,
		Keys:   keys,
		Height: height,
		log:    logging.OrNop(log),
	}
}

// Update forwards this frame's input to the level.
// It returns ebiten.Termination when the player quits.
func (s *InputSystem) Update() error {
	if inpututil.IsKeyJustPressed(s.Keys[config.ActionQuit]) {
		return ebiten.Termination
	}

	s.handleKeys()
	s.handleMouse()
	return nil
}

func (s *InputSystem) handleKeys() {
	selections := []struct {
		action string
		kind   string
	}{
		{config.ActionSelectRed, config.BirdRed},
		{config.ActionSelectYellow, config.BirdYellow},
		{config.ActionSelectBlue, config.BirdBlue},
	}
	for _, sel := range selections {
		if inpututil.IsKeyJustPressed(s.Keys[sel.action]) {
			if err := s.Level.SelectBird(sel.kind); err != nil {
				s.log.Warn("cannot select bird", zap.String("kind", sel.kind), zap.Error(err))
			}
		}
	}

	if inpututil.IsKeyJustPressed(s.Keys[config.ActionBoost]) {
		s.ability("boost", s.Level.Boost)
	}
	if inpututil.IsKeyJustPressed(s.Keys[config.ActionSplit]) {
		s.ability("split", s.Level.Split)
	}
}

func (s *InputSystem) ability(name string, use func() error) {
	if err := use(); err != nil {
		s.log.Debug("ability unavailable", zap.String("ability", name), zap.Error(err))
	}
}

func (s *InputSystem) handleMouse() {
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		s.Level.Press(s.cursor())
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if _, err := s.Level.Release(s.cursor()); err != nil && !errors.Is(err, game.ErrNothingToLaunch) {
			s.log.Warn("launch failed", zap.Error(err))
		}
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		s.Level.Drag(s.cursor())
	}
}

func (s *InputSystem) cursor() geom.Point2D {
	x, y := ebiten.CursorPosition()
	return game.ScreenToWorld(float64(x), float64(y), s.Height)
}

// DefaultKeys returns the original game's bindings.
func DefaultKeys() map[string]ebiten.Key {
	return map[string]ebiten.Key{
		config.ActionSelectRed:    ebiten.KeyR,
		config.ActionSelectYellow: ebiten.KeyY,
		config.ActionSelectBlue:   ebiten.KeyB,
		config.ActionBoost:        ebiten.KeyG,
		config.ActionSplit:        ebiten.KeyF,
		config.ActionQuit:         ebiten.KeyEscape,
	}
}
