package game

import "birds/pkg/shared/geom"

// The window has its origin at the top left with y down; the physics world
// has its origin at the bottom left with y up.

func ScreenToWorld(x, y float64, height int) geom.Point2D {
	return geom.Point2D{X: x, Y: float64(height) - y}
}

func WorldToScreen(p geom.Point2D, height int) (float64, float64) {
	return p.X, float64(height) - p.Y
}
