package physics

import "birds/pkg/shared/config"

// Verdict is the outcome of a collision for the world objects involved.
type Verdict int

const (
	Ignore  Verdict = iota // too weak to matter
	Absorb                 // noticeable, objects survive
	Destroy                // objects are removed
)

func (v Verdict) String() string {
	switch v {
	case Ignore:
		return "ignore"
	case Absorb:
		return "absorb"
	case Destroy:
		return "destroy"
	}
	return "unknown"
}

// DamagePolicy classifies collisions by the norm of their total impulse.
type DamagePolicy struct {
	IgnoreBelow  float64
	DestroyAbove float64
}

func NewDamagePolicy(cfg config.Damage) DamagePolicy {
	return DamagePolicy{IgnoreBelow: cfg.IgnoreBelow, DestroyAbove: cfg.DestroyAbove}
}

func (p DamagePolicy) Classify(impulse float64) Verdict {
	if impulse < p.IgnoreBelow {
		return Ignore
	}
	if impulse > p.DestroyAbove {
		return Destroy
	}
	return Absorb
}
