package floor

import (
	"github.com/eevee/raidne/engine/geom"
	"github.com/eevee/raidne/engine/things"
)

// Tile is a snapshot of one grid cell. It does not change when the map does.
type Tile struct {
	Position     geom.Position
	Architecture *things.Thing
	Creature     *things.Thing // nil if empty
	items        []*things.Thing
}

func newTile(p geom.Position, c *cell) Tile {
	items := make([]*things.Thing, len(c.items))
	for i, it := range c.items {
		items[len(c.items)-1-i] = it
	}
	return Tile{
		Position:     p,
		Architecture: c.architecture,
		Creature:     c.creature,
		items:        items,
	}
}

// Items returns the items here, most recently placed first.
func (t Tile) Items() []*things.Thing {
	return append([]*things.Thing(nil), t.items...)
}

// Things returns every occupant from top to bottom: the creature, then the
// items newest first, then the architecture.
func (t Tile) Things() []*things.Thing {
	out := make([]*things.Thing, 0, len(t.items)+2)
	if t.Creature != nil {
		out = append(out, t.Creature)
	}
	out = append(out, t.items...)
	return append(out, t.Architecture)
}

// Topmost is what you would see looking down at the tile.
func (t Tile) Topmost() *things.Thing {
	if t.Creature != nil {
		return t.Creature
	}
	if len(t.items) > 0 {
		return t.items[0]
	}
	return t.Architecture
}

// Holds reports whether th is among the occupants.
func (t Tile) Holds(th *things.Thing) bool {
	for _, o := range t.Things() {
		if o.ID() == th.ID() {
			return true
		}
	}
	return false
}
