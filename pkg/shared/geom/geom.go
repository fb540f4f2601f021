// Package geom turns a mouse drag into a launch descriptor.
package geom

import "math"

// Point2D is a position in screen or world coordinates.
type Point2D struct {
	X, Y float64
}

// ImpulseVector describes a launch in polar form.
// Angle is in radians in (-π, π], Impulse is never negative.
type ImpulseVector struct {
	Angle   float64
	Impulse float64
}

// IsZero reports whether the vector carries no launch strength.
func (v ImpulseVector) IsZero() bool {
	return v.Impulse == 0
}

// AngleRadians returns the direction from a to b.
// Identical points yield math.Atan2(0, 0).
func AngleRadians(a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Atan2(dy, dx)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// NewImpulseVector converts the drag from start to end into a launch descriptor.
func NewImpulseVector(start, end Point2D) ImpulseVector {
	return ImpulseVector{
		Angle:   AngleRadians(start, end),
		Impulse: Distance(start, end),
	}
}
