// Package game is the gameplay layer between input, physics and rendering.
// It does not depend on the window system, so it runs headless in tests.
package game

import (
	"errors"
	"time"

	"birds/pkg/logging"
	"birds/pkg/physics"
	"birds/pkg/shared/components"
	"birds/pkg/shared/config"
	"birds/pkg/shared/ecs"
	"birds/pkg/shared/geom"
	"birds/pkg/shared/network"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

var (
	ErrNothingToLaunch = errors.New("game: nothing to launch")
	ErrNoAbility       = errors.New("game: no bird can use its ability")
	ErrUnknownBird     = errors.New("game: unknown bird kind")
)

// cullMargin is how far outside the window a bird may fly before it is removed.
const cullMargin = 200

type Level struct {
	World   *ecs.World
	Physics *physics.World

	cfg   config.Config
	log   *zap.Logger
	sink  network.EventSink
	clock func() time.Time

	session string
	started time.Time

	selected   string
	dragging   bool
	start, end geom.Point2D

	score     int
	launched  int
	destroyed map[components.TargetKind]int
	cleared   bool
}

// SpriteView is everything the renderer needs to draw one entity.
// Position and angle are in world coordinates.
type SpriteView struct {
	Entity        ecs.Entity
	Image         string
	X, Y          float64
	Angle         float64
	Width, Height float64
}

func NewLevel(cfg config.Config, log *zap.Logger, sink network.EventSink) *Level {
	if sink == nil {
		sink = network.Discard
	}
	l := &Level{
		World:     ecs.NewWorld(),
		cfg:       cfg,
		log:       logging.OrNop(log),
		sink:      sink,
		clock:     time.Now,
		session:   uuid.NewString(),
		selected:  config.BirdRed,
		destroyed: make(map[components.TargetKind]int),
	}
	l.started = l.clock()

	l.Physics = physics.NewWorld(cfg, l.log.Named("physics"))
	l.Physics.OnDestroy = l.onDestroy

	l.World.AddSystem(&physicsSystem{world: l.Physics, step: cfg.Physics.Step})
	l.World.AddSystem(&cullSystem{level: l})

	l.addColumns()
	l.addPigs()

	l.publish(network.Event{Type: network.EventHello})
	return l
}

func (l *Level) addColumns() {
	w := l.cfg.Window.Width
	spacing := l.cfg.Layout.ColumnSpacing
	for _, from := range []int{w / 2, w / 3} {
		for x := from; x < w; x += spacing {
			shape := l.Physics.AddColumn(float64(x), l.cfg.Layout.ColumnY)
			l.addTarget(shape, components.TargetColumn, l.cfg.Column.Points, l.cfg.Column.Image, l.cfg.Column.Width, l.cfg.Column.Height)
		}
	}
}

func (l *Level) addPigs() {
	shape := l.Physics.AddPig(float64(l.cfg.Window.Width)/2, l.cfg.Layout.PigY)
	d := 2 * l.cfg.Pig.Radius
	l.addTarget(shape, components.TargetPig, l.cfg.Pig.Points, l.cfg.Pig.Image, d, d)
}

func (l *Level) addTarget(shape *cp.Shape, kind components.TargetKind, points int, image string, width, height float64) ecs.Entity {
	e := l.World.NewEntity()
	shape.UserData = e
	l.World.AddComponent(e, &components.BodyComponent{Body: shape.Body(), Shape: shape})
	l.World.AddComponent(e, &components.SpriteComponent{Image: image, Width: width, Height: height})
	l.World.AddComponent(e, &components.TargetComponent{Kind: kind, Points: points})
	return e
}

func (l *Level) addBird(kind string, iv geom.ImpulseVector, at geom.Point2D) (ecs.Entity, *cp.Shape) {
	spec, _ := l.cfg.BirdFor(kind)
	shape := l.Physics.AddBird(spec, iv, at)

	e := l.World.NewEntity()
	shape.UserData = e
	d := 2 * spec.Radius
	l.World.AddComponent(e, &components.BodyComponent{Body: shape.Body(), Shape: shape})
	l.World.AddComponent(e, &components.SpriteComponent{Image: spec.Image, Width: d, Height: d})
	l.World.AddComponent(e, &components.BirdComponent{Kind: kind})
	return e, shape
}

// SelectBird chooses the kind of bird the next launch creates.
func (l *Level) SelectBird(kind string) error {
	if _, ok := l.cfg.BirdFor(kind); !ok {
		return ErrUnknownBird
	}
	if kind != l.selected {
		l.log.Debug("bird selected", zap.String("kind", kind))
	}
	l.selected = kind
	return nil
}

func (l *Level) Selected() string {
	return l.selected
}

// Press starts a drag at p.
func (l *Level) Press(p geom.Point2D) {
	l.start, l.end = p, p
	l.dragging = true
	l.log.Debug("drag start", zap.Float64("x", p.X), zap.Float64("y", p.Y))
}

// Drag moves the end of the current drag.
func (l *Level) Drag(p geom.Point2D) {
	if !l.dragging || p == l.end {
		return
	}
	l.end = p
	l.log.Debug("dragging", zap.Float64("x", p.X), zap.Float64("y", p.Y))
}

// Release ends the drag at p and launches a bird of the selected kind from p.
// A zero-length drag launches nothing and returns ErrNothingToLaunch.
func (l *Level) Release(p geom.Point2D) (ecs.Entity, error) {
	if !l.dragging {
		return 0, ErrNothingToLaunch
	}
	l.end = p
	l.dragging = false

	iv := geom.NewImpulseVector(l.start, l.end)
	l.log.Debug("release",
		zap.Float64("x", p.X), zap.Float64("y", p.Y),
		zap.Float64("angle", iv.Angle), zap.Float64("impulse", iv.Impulse))
	if iv.IsZero() {
		return 0, ErrNothingToLaunch
	}

	e, _ := l.addBird(l.selected, iv, p)
	l.launched++
	l.publish(network.Event{
		Type:    network.EventLaunch,
		Kind:    l.selected,
		X:       p.X,
		Y:       p.Y,
		Angle:   iv.Angle,
		Impulse: iv.Impulse,
	})
	return e, nil
}

// Aim returns the current drag, if any.
func (l *Level) Aim() (start, end geom.Point2D, ok bool) {
	return l.start, l.end, l.dragging
}

// Update advances the level by one frame.
func (l *Level) Update(dt float64) {
	l.World.Update(dt)
}

func (l *Level) onDestroy(shape *cp.Shape, impulse float64) {
	e, ok := shape.UserData.(ecs.Entity)
	if !ok {
		return
	}
	target, ok := ecs.GetComponent[*components.TargetComponent](l.World, e)
	if !ok {
		return
	}
	l.World.RemoveEntity(e)

	l.score += target.Points
	l.destroyed[target.Kind]++
	pos := shape.Body().Position()
	l.log.Info("destroyed",
		zap.Stringer("target", target.Kind),
		zap.Float64("impulse", impulse),
		zap.Int("score", l.score))
	l.publish(network.Event{
		Type:    network.EventDestroy,
		Kind:    target.Kind.String(),
		X:       pos.X,
		Y:       pos.Y,
		Impulse: impulse,
		Score:   l.score,
	})

	if !l.cleared && l.pigsLeft() == 0 {
		l.cleared = true
		l.log.Info("level cleared", zap.Int("score", l.score), zap.Int("birds", l.launched))
		l.publish(network.Event{Type: network.EventCleared, Score: l.score})
	}
}

func (l *Level) pigsLeft() int {
	n := 0
	for _, e := range ecs.Query[*components.TargetComponent](l.World) {
		if t, _ := ecs.GetComponent[*components.TargetComponent](l.World, e); t.Kind == components.TargetPig {
			n++
		}
	}
	return n
}

// Sprites returns the drawable entities in creation order.
func (l *Level) Sprites() []SpriteView {
	entities := ecs.Query[*components.SpriteComponent](l.World)
	views := make([]SpriteView, 0, len(entities))
	for _, e := range entities {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](l.World, e)
		body, ok := ecs.GetComponent[*components.BodyComponent](l.World, e)
		if !ok {
			continue
		}
		pos := body.Body.Position()
		views = append(views, SpriteView{
			Entity: e,
			Image:  sprite.Image,
			X:      pos.X,
			Y:      pos.Y,
			Angle:  body.Body.Angle(),
			Width:  sprite.Width,
			Height: sprite.Height,
		})
	}
	return views
}

func (l *Level) publish(ev network.Event) {
	ev.Session = l.session
	ev.Time = l.clock()
	l.sink.Publish(ev)
}
