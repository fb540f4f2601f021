package game

import (
	"time"

	"birds/pkg/shared/components"
	"birds/pkg/shared/ecs"
)

type Stats struct {
	Session  string
	Score    int
	Launched int
	Columns  int // destroyed
	Pigs     int // destroyed
	Elapsed  time.Duration
	Cleared  bool
}

func (l *Level) Stats() Stats {
	return Stats{
		Session:  l.session,
		Score:    l.score,
		Launched: l.launched,
		Columns:  l.destroyed[components.TargetColumn],
		Pigs:     l.destroyed[components.TargetPig],
		Elapsed:  l.clock().Sub(l.started),
		Cleared:  l.cleared,
	}
}

func (l *Level) Score() int {
	return l.score
}

func (l *Level) Cleared() bool {
	return l.cleared
}

// Birds returns how many birds are still in the world.
func (l *Level) Birds() int {
	return ecs.Count[*components.BirdComponent](l.World)
}
