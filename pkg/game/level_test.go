package game

import (
	"math"
	"testing"

	"birds/pkg/shared/components"
	"birds/pkg/shared/config"
	"birds/pkg/shared/ecs"
	"birds/pkg/shared/geom"
	"birds/pkg/shared/network"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

type recorder struct {
	events []network.Event
}

func (r *recorder) Publish(ev network.Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) types() []network.EventType {
	var types []network.EventType
	for _, ev := range r.events {
		types = append(types, ev.Type)
	}
	return types
}

func newTestLevel(t *testing.T) (*Level, *recorder) {
	t.Helper()
	rec := &recorder{}
	return NewLevel(config.Default(), nil, rec), rec
}

func launch(t *testing.T, l *Level, from, to geom.Point2D) ecs.Entity {
	t.Helper()
	l.Press(from)
	l.Drag(to)
	e, err := l.Release(to)
	require.NoError(t, err)
	return e
}

func velocityOf(t *testing.T, l *Level, e ecs.Entity) (float64, float64) {
	t.Helper()
	body, ok := ecs.GetComponent[*components.BodyComponent](l.World, e)
	require.True(t, ok)
	v := body.Body.Velocity()
	return v.X, v.Y
}

func TestNewLevelLayout(t *testing.T) {
	l, rec := newTestLevel(t)

	var columns, pigs int
	for _, e := range ecs.Query[*components.TargetComponent](l.World) {
		target, _ := ecs.GetComponent[*components.TargetComponent](l.World, e)
		switch target.Kind {
		case components.TargetColumn:
			columns++
		case components.TargetPig:
			pigs++
		}
	}
	// 900, 1300, 1700 and 600, 1000, 1400
	assert.Equal(t, 6, columns)
	assert.Equal(t, 1, pigs)
	assert.Len(t, l.Sprites(), 7)
	assert.Equal(t, config.BirdRed, l.Selected())
	assert.Equal(t, []network.EventType{network.EventHello}, rec.types())
}

func TestReleaseLaunchesSelectedBird(t *testing.T) {
	l, rec := newTestLevel(t)
	cfg := config.Default()
	spec, _ := cfg.BirdFor(config.BirdRed)

	from := geom.Point2D{X: 200, Y: 400}
	to := geom.Point2D{X: 200, Y: 420}
	e := launch(t, l, from, to)

	bird, ok := ecs.GetComponent[*components.BirdComponent](l.World, e)
	require.True(t, ok)
	assert.Equal(t, config.BirdRed, bird.Kind)

	vx, vy := velocityOf(t, l, e)
	assert.InDelta(t, 0, vx, 1e-9)
	assert.InDelta(t, 20*spec.Power/spec.Mass, vy, 1e-9)

	body, _ := ecs.GetComponent[*components.BodyComponent](l.World, e)
	assert.Equal(t, to.X, body.Body.Position().X, "birds start at the release point")
	assert.Equal(t, to.Y, body.Body.Position().Y)

	require.Len(t, rec.events, 2)
	ev := rec.events[1]
	assert.Equal(t, network.EventLaunch, ev.Type)
	assert.Equal(t, config.BirdRed, ev.Kind)
	assert.InDelta(t, math.Pi/2, ev.Angle, 1e-9)
	assert.InDelta(t, 20, ev.Impulse, 1e-9)
	assert.Equal(t, rec.events[0].Session, ev.Session)

	assert.Equal(t, 1, l.Stats().Launched)
	assert.Equal(t, 1, l.Birds())
}

func TestZeroLengthDragLaunchesNothing(t *testing.T) {
	l, _ := newTestLevel(t)

	_, err := l.Release(geom.Point2D{X: 10, Y: 10})
	assert.ErrorIs(t, err, ErrNothingToLaunch, "release without press")

	p := geom.Point2D{X: 300, Y: 300}
	l.Press(p)
	_, err = l.Release(p)
	assert.ErrorIs(t, err, ErrNothingToLaunch)

	assert.Zero(t, l.Birds())
	assert.Zero(t, l.Stats().Launched)
	_, _, aiming := l.Aim()
	assert.False(t, aiming)
}

func TestAimFollowsDrag(t *testing.T) {
	l, _ := newTestLevel(t)

	l.Drag(geom.Point2D{X: 1, Y: 1})
	_, _, aiming := l.Aim()
	assert.False(t, aiming, "drag without press is ignored")

	l.Press(geom.Point2D{X: 100, Y: 100})
	l.Drag(geom.Point2D{X: 150, Y: 80})
	start, end, aiming := l.Aim()
	assert.True(t, aiming)
	assert.Equal(t, geom.Point2D{X: 100, Y: 100}, start)
	assert.Equal(t, geom.Point2D{X: 150, Y: 80}, end)
}

func TestSelectBird(t *testing.T) {
	l, _ := newTestLevel(t)

	require.NoError(t, l.SelectBird(config.BirdBlue))
	assert.Equal(t, config.BirdBlue, l.Selected())

	assert.ErrorIs(t, l.SelectBird("green"), ErrUnknownBird)
	assert.Equal(t, config.BirdBlue, l.Selected())
}

func TestBoostYellowOnce(t *testing.T) {
	l, rec := newTestLevel(t)

	assert.ErrorIs(t, l.Boost(), ErrNoAbility)

	require.NoError(t, l.SelectBird(config.BirdYellow))
	e := launch(t, l, geom.Point2D{X: 300, Y: 400}, geom.Point2D{X: 310, Y: 400})
	before, _ := velocityOf(t, l, e)

	require.NoError(t, l.Boost())
	after, _ := velocityOf(t, l, e)
	assert.InDelta(t, before*config.Default().Abilities.BoostFactor, after, 1e-9)

	assert.ErrorIs(t, l.Boost(), ErrNoAbility)
	assert.Equal(t, network.EventAbility, rec.events[len(rec.events)-1].Type)
}

func TestBoostIgnoresOtherKinds(t *testing.T) {
	l, _ := newTestLevel(t)
	launch(t, l, geom.Point2D{X: 300, Y: 400}, geom.Point2D{X: 310, Y: 400})

	assert.ErrorIs(t, l.Boost(), ErrNoAbility)
	assert.ErrorIs(t, l.Split(), ErrNoAbility)
}

func TestSplitBlueIntoThree(t *testing.T) {
	l, _ := newTestLevel(t)
	cfg := config.Default()

	require.NoError(t, l.SelectBird(config.BirdBlue))
	e := launch(t, l, geom.Point2D{X: 300, Y: 400}, geom.Point2D{X: 320, Y: 400})
	vx, vy := velocityOf(t, l, e)

	require.NoError(t, l.Split())
	birds := ecs.Query[*components.BirdComponent](l.World)
	require.Len(t, birds, 3)
	assert.Equal(t, e, birds[0])

	speed := math.Hypot(vx, vy)
	angle := cfg.Abilities.SplitAngle
	for i, side := range []float64{1, -1} {
		cx, cy := velocityOf(t, l, birds[i+1])
		assert.InDelta(t, speed, math.Hypot(cx, cy), 1e-6)
		assert.InDelta(t, side*angle, math.Atan2(cy, cx), 1e-6)

		child, _ := ecs.GetComponent[*components.BirdComponent](l.World, birds[i+1])
		assert.Equal(t, config.BirdBlue, child.Kind)
		assert.True(t, child.AbilityUsed)
	}

	assert.ErrorIs(t, l.Split(), ErrNoAbility, "split happens once")
}

func TestSplitNeedsHeight(t *testing.T) {
	l, _ := newTestLevel(t)
	require.NoError(t, l.SelectBird(config.BirdBlue))

	launch(t, l, geom.Point2D{X: 100, Y: 40}, geom.Point2D{X: 120, Y: 40})
	assert.ErrorIs(t, l.Split(), ErrNoAbility)
}

func TestDestroyingThePigClearsTheLevel(t *testing.T) {
	l, rec := newTestLevel(t)
	cfg := config.Default()

	var pig *components.BodyComponent
	for _, e := range ecs.Query[*components.TargetComponent](l.World) {
		target, _ := ecs.GetComponent[*components.TargetComponent](l.World, e)
		if target.Kind == components.TargetPig {
			pig, _ = ecs.GetComponent[*components.BodyComponent](l.World, e)
		}
	}
	require.NotNil(t, pig)

	l.Physics.Hit(pig.Shape, nil, cfg.Damage.DestroyAbove+1)
	l.Update(frame)

	stats := l.Stats()
	assert.Equal(t, 1, stats.Pigs)
	assert.Equal(t, stats.Pigs*cfg.Pig.Points+stats.Columns*cfg.Column.Points, stats.Score)
	assert.True(t, stats.Cleared)
	assert.True(t, l.Cleared())
	assert.False(t, l.Physics.IsTarget(pig.Shape))

	assert.Contains(t, rec.types(), network.EventDestroy)
	assert.Equal(t, network.EventCleared, rec.events[len(rec.events)-1].Type)
	assert.Equal(t, stats.Score, rec.events[len(rec.events)-1].Score)
}

func TestLaunchedBirdKnocksDownColumn(t *testing.T) {
	l, rec := newTestLevel(t)
	cfg := config.Default()
	targets := ecs.Count[*components.TargetComponent](l.World)

	launch(t, l, geom.Point2D{X: 450, Y: 60}, geom.Point2D{X: 550, Y: 60})
	for i := 0; i < 120; i++ {
		l.Update(frame)
	}

	stats := l.Stats()
	require.GreaterOrEqual(t, stats.Columns, 1)
	assert.Equal(t, stats.Pigs*cfg.Pig.Points+stats.Columns*cfg.Column.Points, stats.Score)
	assert.Positive(t, stats.Score)
	assert.Equal(t, targets-stats.Columns-stats.Pigs, ecs.Count[*components.TargetComponent](l.World))
	assert.Contains(t, rec.types(), network.EventDestroy)
}

func TestSettledLevelSurvives(t *testing.T) {
	l, _ := newTestLevel(t)

	for i := 0; i < 120; i++ {
		l.Update(frame)
	}
	assert.Zero(t, l.Score(), "resting objects must not destroy each other")
	assert.Len(t, l.Sprites(), 7)
}

func TestBirdsLeavingTheWorldAreCulled(t *testing.T) {
	l, _ := newTestLevel(t)

	launch(t, l, geom.Point2D{X: 0, Y: 400}, geom.Point2D{X: -300, Y: 400})
	require.Equal(t, 1, l.Birds())

	l.Update(frame)
	assert.Zero(t, l.Birds())
	assert.Len(t, l.Sprites(), 7)
}
