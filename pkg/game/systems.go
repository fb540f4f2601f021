package game

import (
	"birds/pkg/physics"
	"birds/pkg/shared/components"
	"birds/pkg/shared/ecs"

	"go.uber.org/zap"
)

// physicsSystem steps the space with a fixed timestep, one step per frame.
type physicsSystem struct {
	world *physics.World
	step  float64
}

func (s *physicsSystem) Update(float64) {
	s.world.Step(s.step)
}

// cullSystem removes birds that left the window sideways or fell below it.
// Birds above the window are kept since gravity brings them back.
type cullSystem struct {
	level *Level
}

func (s *cullSystem) Update(float64) {
	l := s.level
	width := float64(l.cfg.Window.Width)
	for _, e := range ecs.Query[*components.BirdComponent](l.World) {
		body, ok := ecs.GetComponent[*components.BodyComponent](l.World, e)
		if !ok {
			continue
		}
		pos := body.Body.Position()
		if pos.X >= -cullMargin && pos.X <= width+cullMargin && pos.Y >= -cullMargin {
			continue
		}
		l.Physics.Remove(body.Shape)
		l.World.RemoveEntity(e)
		l.log.Debug("bird left the world", zap.Uint64("entity", uint64(e)))
	}
}
