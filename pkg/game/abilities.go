package game

import (
	"birds/pkg/shared/components"
	"birds/pkg/shared/config"
	"birds/pkg/shared/ecs"
	"birds/pkg/shared/geom"
	"birds/pkg/shared/network"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// Boost speeds up the first flying yellow bird that has not boosted yet.
func (l *Level) Boost() error {
	e, body, ok := l.findAbilityBird(config.BirdYellow, func(*cp.Body) bool { return true })
	if !ok {
		return ErrNoAbility
	}

	bird, _ := ecs.GetComponent[*components.BirdComponent](l.World, e)
	bird.AbilityUsed = true
	body.SetVelocityVector(body.Velocity().Mult(l.cfg.Abilities.BoostFactor))

	l.log.Debug("boost", zap.Uint64("entity", uint64(e)))
	l.publishAbility(config.BirdYellow, body)
	return nil
}

// Split turns the first flying blue bird into three, fanned out by the
// configured split angle.
func (l *Level) Split() error {
	minHeight := l.cfg.Abilities.SplitMinHeight
	e, body, ok := l.findAbilityBird(config.BirdBlue, func(b *cp.Body) bool {
		return b.Position().Y > minHeight
	})
	if !ok {
		return ErrNoAbility
	}

	bird, _ := ecs.GetComponent[*components.BirdComponent](l.World, e)
	bird.AbilityUsed = true

	spec, _ := l.cfg.BirdFor(config.BirdBlue)
	pos := body.Position()
	vel := body.Velocity()
	// Offset the new birds sideways so they do not start overlapping.
	offset := vel.Normalize().Perp().Mult(2 * spec.Radius)

	for _, side := range []float64{1, -1} {
		at := pos.Add(offset.Mult(side))
		child, shape := l.addBird(config.BirdBlue, geom.ImpulseVector{}, geom.Point2D{X: at.X, Y: at.Y})
		shape.Body().SetVelocityVector(vel.Rotate(cp.ForAngle(side * l.cfg.Abilities.SplitAngle)))

		c, _ := ecs.GetComponent[*components.BirdComponent](l.World, child)
		c.AbilityUsed = true
	}

	l.log.Debug("split", zap.Uint64("entity", uint64(e)))
	l.publishAbility(config.BirdBlue, body)
	return nil
}

func (l *Level) findAbilityBird(kind string, eligible func(*cp.Body) bool) (ecs.Entity, *cp.Body, bool) {
	for _, e := range ecs.Query[*components.BirdComponent](l.World) {
		bird, _ := ecs.GetComponent[*components.BirdComponent](l.World, e)
		if bird.Kind != kind || bird.AbilityUsed {
			continue
		}
		body, ok := ecs.GetComponent[*components.BodyComponent](l.World, e)
		if !ok {
			continue
		}
		if body.Body.Velocity().Length() <= l.cfg.Abilities.MinSpeed || !eligible(body.Body) {
			continue
		}
		return e, body.Body, true
	}
	return 0, nil, false
}

func (l *Level) publishAbility(kind string, body *cp.Body) {
	pos := body.Position()
	l.publish(network.Event{Type: network.EventAbility, Kind: kind, X: pos.X, Y: pos.Y})
}
