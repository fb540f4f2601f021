package components

import "github.com/jakecoffman/cp"

// BodyComponent links an entity to its rigid body in the physics space.
type BodyComponent struct {
	Body  *cp.Body
	Shape *cp.Shape
}

// SpriteComponent names the image drawn at the body's position.
type SpriteComponent struct {
	Image  string
	Width  float64
	Height float64
}

// BirdComponent marks a launched projectile.
type BirdComponent struct {
	Kind        string // config.BirdRed, config.BirdYellow or config.BirdBlue
	AbilityUsed bool
}

type TargetKind int

const (
	TargetColumn TargetKind = iota
	TargetPig
)

func (k TargetKind) String() string {
	switch k {
	case TargetColumn:
		return "column"
	case TargetPig:
		return "pig"
	}
	return "unknown"
}

// TargetComponent marks a world object that collisions can destroy.
type TargetComponent struct {
	Kind   TargetKind
	Points int
}
