package actions

import (
	"fmt"

	"github.com/eevee/raidne/engine/geom"
	"github.com/eevee/raidne/engine/things"
)

// Rand is the random source AI decisions draw from.
type Rand interface {
	Intn(n int) int
}

// Think picks the next action for a non-player creature, or nil to idle.
// Calling it for the player is a bug and panics.
func Think(c *things.Thing, w World, rng Rand) Action {
	switch c.Kind() {
	case things.Player:
		panic("actions: the player does not think; it takes commands")
	case things.Newt:
		return wander(c, w, rng)
	default:
		panic(fmt.Sprintf("actions: %v cannot think", c))
	}
}

// wander attacks an adjacent player, and otherwise steps to a random open
// orthogonal neighbour.
func wander(c *things.Thing, w World, rng Rand) Action {
	m := w.Floor()
	if player := w.Player(); player != nil && m.Contains(player) {
		if d, err := m.DistanceBetween(c, player); err == nil && d.StepLength() <= 1 {
			return MeleeAttack{Attacker: c, Target: player}
		}
	}

	var open []geom.Offset
	for _, dir := range geom.Orthogonal {
		if _, err := m.CanMove(c, dir); err == nil {
			open = append(open, dir)
		}
	}
	if len(open) == 0 {
		return nil
	}
	return Walk{Walker: c, Direction: open[rng.Intn(len(open))]}
}
