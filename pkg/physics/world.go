// Package physics wires the game's objects into a Chipmunk2D space.
//
// Coordinates are world coordinates: origin at the bottom left, y up.
package physics

import (
	"birds/pkg/logging"
	"birds/pkg/shared/config"
	"birds/pkg/shared/geom"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// Collision types tag shapes so the target handler can tell them apart.
const (
	CollisionFloor cp.CollisionType = iota + 1
	CollisionBird
	CollisionTarget
)

// World is a Chipmunk2D space plus the set of destructible targets in it.
type World struct {
	Space *cp.Space

	cfg    config.Config
	policy DamagePolicy
	log    *zap.Logger

	targets map[*cp.Shape]struct{}

	// OnDestroy is called after a target has been removed from the space.
	OnDestroy func(shape *cp.Shape, impulse float64)
}

// NewWorld creates a space with gravity, a floor and the target collision handler.
func NewWorld(cfg config.Config, log *zap.Logger) *World {
	w := &World{
		Space:   cp.NewSpace(),
		cfg:     cfg,
		policy:  NewDamagePolicy(cfg.Damage),
		log:     logging.OrNop(log),
		targets: make(map[*cp.Shape]struct{}),
	}
	w.Space.SetGravity(cp.Vector{X: 0, Y: cfg.Physics.Gravity})

	floorY := cfg.Physics.FloorHeight
	floor := cp.NewSegment(w.Space.StaticBody, cp.Vector{X: 0, Y: floorY}, cp.Vector{X: float64(cfg.Window.Width), Y: floorY}, 0)
	floor.SetFriction(cfg.Physics.FloorFriction)
	floor.SetCollisionType(CollisionFloor)
	w.Space.AddShape(floor)

	handler := w.Space.NewWildcardCollisionHandler(CollisionTarget)
	handler.PostSolveFunc = w.postSolve

	return w
}

// Policy returns the damage policy applied to target collisions.
func (w *World) Policy() DamagePolicy {
	return w.policy
}

// AddColumn adds a box standing upright with its center at (x, y).
func (w *World) AddColumn(x, y float64) *cp.Shape {
	c := w.cfg.Column
	body := w.Space.AddBody(cp.NewBody(c.Mass, cp.MomentForBox(c.Mass, c.Width, c.Height)))
	body.SetPosition(cp.Vector{X: x, Y: y})

	shape := w.Space.AddShape(cp.NewBox(body, c.Width, c.Height, 0))
	shape.SetElasticity(c.Elasticity)
	shape.SetFriction(c.Friction)
	shape.SetCollisionType(CollisionTarget)
	w.targets[shape] = struct{}{}
	return shape
}

// AddPig adds a pig centered at (x, y).
func (w *World) AddPig(x, y float64) *cp.Shape {
	p := w.cfg.Pig
	shape := w.addCircle(p.Mass, p.Radius, cp.Vector{X: x, Y: y})
	shape.SetElasticity(p.Elasticity)
	shape.SetFriction(p.Friction)
	shape.SetCollisionType(CollisionTarget)
	w.targets[shape] = struct{}{}
	return shape
}

// AddBird creates a bird at the given point and launches it with iv.
// A zero impulse leaves the bird at rest.
func (w *World) AddBird(spec config.Bird, iv geom.ImpulseVector, at geom.Point2D) *cp.Shape {
	shape := w.addCircle(spec.Mass, spec.Radius, cp.Vector{X: at.X, Y: at.Y})
	shape.SetElasticity(spec.Elasticity)
	shape.SetFriction(spec.Friction)
	shape.SetCollisionType(CollisionBird)

	if !iv.IsZero() {
		shape.Body().ApplyImpulseAtLocalPoint(LaunchImpulse(spec, iv), cp.Vector{})
	}
	return shape
}

func (w *World) addCircle(mass, radius float64, pos cp.Vector) *cp.Shape {
	body := w.Space.AddBody(cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{})))
	body.SetPosition(pos)
	return w.Space.AddShape(cp.NewCircle(body, radius, cp.Vector{}))
}

// LaunchImpulse maps a drag to the impulse applied to a new bird.
// The drag length is capped at MaxImpulse before scaling by Power.
func LaunchImpulse(spec config.Bird, iv geom.ImpulseVector) cp.Vector {
	strength := min(spec.MaxImpulse, iv.Impulse) * spec.Power
	return cp.ForAngle(iv.Angle).Mult(strength)
}

// IsTarget reports whether shape is a destructible object still in the space.
func (w *World) IsTarget(shape *cp.Shape) bool {
	_, ok := w.targets[shape]
	return ok
}

// Remove takes a shape and its body out of the space.
// It must not be called while the space is stepping.
func (w *World) Remove(shape *cp.Shape) {
	delete(w.targets, shape)
	if w.Space.ContainsShape(shape) {
		w.Space.RemoveShape(shape)
	}
	if body := shape.Body(); body != nil && w.Space.ContainsBody(body) {
		w.Space.RemoveBody(body)
	}
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	w.Space.Step(dt)
}

func (w *World) postSolve(arb *cp.Arbiter, space *cp.Space, _ interface{}) {
	a, b := arb.Shapes()
	w.Hit(a, b, arb.TotalImpulse().Length())
}

// Hit applies the damage policy to a collision between a and b.
// Removals are deferred until the current step has finished.
func (w *World) Hit(a, b *cp.Shape, impulse float64) Verdict {
	verdict := w.policy.Classify(impulse)
	if verdict == Ignore {
		return verdict
	}
	w.log.Debug("collision", zap.Float64("impulse", impulse), zap.Stringer("verdict", verdict))
	if verdict != Destroy {
		return verdict
	}

	for _, shape := range []*cp.Shape{a, b} {
		if !w.IsTarget(shape) {
			continue
		}
		// Keyed by shape: a target hit twice in one step is removed once.
		w.Space.AddPostStepCallback(func(space *cp.Space, key interface{}, _ interface{}) {
			w.destroy(key.(*cp.Shape), impulse)
		}, shape, nil)
	}
	return verdict
}

func (w *World) destroy(shape *cp.Shape, impulse float64) {
	if !w.IsTarget(shape) {
		return
	}
	w.Remove(shape)
	if w.OnDestroy != nil {
		w.OnDestroy(shape, impulse)
	}
}
