package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

var samplePoints = []Point2D{
	{0, 0},
	{10, 0},
	{0, 10},
	{-10, -10},
	{3.5, -7.25},
	{-120, 640},
	{1800, 800},
	{5, 5},
}

func TestImpulseVectorConcreteCases(t *testing.T) {
	tests := []struct {
		name        string
		a, b        Point2D
		wantAngle   float64
		wantImpulse float64
	}{
		{"east", Point2D{0, 0}, Point2D{10, 0}, 0, 10},
		{"north", Point2D{0, 0}, Point2D{0, 10}, math.Pi / 2, 10},
		{"west", Point2D{0, 0}, Point2D{-10, 0}, math.Pi, 10},
		{"south west", Point2D{0, 0}, Point2D{-10, -10}, -3 * math.Pi / 4, 10 * math.Sqrt2},
		{"zero length", Point2D{5, 5}, Point2D{5, 5}, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			iv := NewImpulseVector(tc.a, tc.b)
			assert.InDelta(t, tc.wantAngle, iv.Angle, eps)
			assert.InDelta(t, tc.wantImpulse, iv.Impulse, eps)
		})
	}
}

func TestZeroLengthDragFollowsAtan2(t *testing.T) {
	p := Point2D{5, 5}
	iv := NewImpulseVector(p, p)

	assert.Equal(t, math.Atan2(0, 0), iv.Angle)
	assert.True(t, iv.IsZero())
}

func TestDistanceToSelfIsZero(t *testing.T) {
	for _, p := range samplePoints {
		assert.Zero(t, Distance(p, p), "point %v", p)
	}
}

func TestDistanceIsSymmetricAndPositive(t *testing.T) {
	for _, a := range samplePoints {
		for _, b := range samplePoints {
			if a == b {
				continue
			}
			ab := Distance(a, b)
			require.Greater(t, ab, 0.0, "%v -> %v", a, b)
			assert.InDelta(t, ab, Distance(b, a), eps, "%v <-> %v", a, b)
		}
	}
}

func TestReversedVectorFlipsAngleByPi(t *testing.T) {
	for _, a := range samplePoints {
		for _, b := range samplePoints {
			if a == b {
				continue
			}
			diff := math.Abs(AngleRadians(b, a) - AngleRadians(a, b))
			assert.InDelta(t, math.Pi, diff, eps, "%v <-> %v", a, b)
		}
	}
}

func TestPositiveScalingKeepsAngle(t *testing.T) {
	scales := []float64{0.25, 1, 2, 17.5}
	for _, a := range samplePoints {
		for _, b := range samplePoints {
			if a == b {
				continue
			}
			want := AngleRadians(a, b)
			for _, k := range scales {
				scaled := Point2D{X: a.X + k*(b.X-a.X), Y: a.Y + k*(b.Y-a.Y)}
				assert.InDelta(t, want, AngleRadians(a, scaled), eps, "%v -> %v scaled by %v", a, b, k)
			}
		}
	}
}

func TestAngleRange(t *testing.T) {
	for _, a := range samplePoints {
		for _, b := range samplePoints {
			angle := AngleRadians(a, b)
			assert.Greater(t, angle, -math.Pi-eps)
			assert.LessOrEqual(t, angle, math.Pi)
		}
	}
}
