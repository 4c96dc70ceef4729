package things

import "fmt"

// ID is a thing's stable identity. It survives moves between tiles, into an
// inventory, and off the map entirely.
type ID uint64

// Thing is any placeable entity.
type Thing struct {
	id    ID
	proto Prototype

	health    Meter
	inventory []*Thing
}

// ID returns the thing's identity.
func (t *Thing) ID() ID { return t.id }

// Kind returns the thing's variant.
func (t *Thing) Kind() Kind { return t.proto.Kind }

// Class returns the layer the thing occupies.
func (t *Thing) Class() Class { return t.proto.Kind.Class() }

// Name returns the display name.
func (t *Thing) Name() string { return t.proto.Name }

// Glyph returns the rune a renderer draws for the thing.
func (t *Thing) Glyph() rune { return t.proto.Glyph }

// Prototype returns the thing's shared description.
func (t *Thing) Prototype() Prototype { return t.proto }

// IsPlayer reports whether this is the player.
func (t *Thing) IsPlayer() bool { return t.proto.Kind == Player }

func (t *Thing) String() string {
	return fmt.Sprintf("%s#%d", t.proto.Kind, t.id)
}

// CanBeMovedOnto reports whether actor may enter a tile holding t. A
// creature never shares a tile with another creature.
func (t *Thing) CanBeMovedOnto(actor *Thing) bool {
	switch t.proto.Kind {
	case Floor, StaircaseUp, StaircaseDown:
		return true
	case Wall:
		return false
	case Player, Newt:
		return t.id == actor.id
	case Potion:
		return true
	default:
		panic(fmt.Sprintf("things: unknown kind %d", int(t.proto.Kind)))
	}
}

// TriggerMovedOnto runs after actor arrives on t's tile.
func (t *Thing) TriggerMovedOnto(actor *Thing) {
	switch t.proto.Kind {
	case Floor, Wall, StaircaseUp, StaircaseDown:
		// Traps will hook in here.
	case Player, Newt:
	case Potion:
	default:
		panic(fmt.Sprintf("things: unknown kind %d", int(t.proto.Kind)))
	}
}

// AttackPower is the damage a creature deals in melee.
func (t *Thing) AttackPower() int { return t.proto.Attack }

// Health returns the creature's health meter. Non-creatures have a zero meter.
func (t *Thing) Health() Meter { return t.health }

// ModifyHealth changes health by delta, clamped to [0, max], and returns the
// new meter.
func (t *Thing) ModifyHealth(delta int) Meter {
	t.mustBeCreature("modify health")
	t.health = t.health.Modify(delta)
	return t.health
}

// Dead reports whether a creature's health has run out.
func (t *Thing) Dead() bool {
	return t.Class() == Creature && t.health.Empty()
}

// Inventory returns the carried items, oldest first.
func (t *Thing) Inventory() []*Thing {
	out := make([]*Thing, len(t.inventory))
	copy(out, t.inventory)
	return out
}

// Carries reports whether item is in t's inventory.
func (t *Thing) Carries(item *Thing) bool {
	for _, it := range t.inventory {
		if it.id == item.id {
			return true
		}
	}
	return false
}

// AddToInventory appends item to t's inventory.
func (t *Thing) AddToInventory(item *Thing) {
	t.mustBeCreature("carry")
	if item.Class() != Item {
		panic(fmt.Sprintf("things: %v cannot carry %v", t, item))
	}
	t.inventory = append(t.inventory, item)
}

// RemoveFromInventory drops item from the inventory, reporting whether it
// was there.
func (t *Thing) RemoveFromInventory(item *Thing) bool {
	for i, it := range t.inventory {
		if it.id == item.id {
			t.inventory = append(t.inventory[:i], t.inventory[i+1:]...)
			return true
		}
	}
	return false
}

func (t *Thing) mustBeCreature(op string) {
	if t.Class() != Creature {
		panic(fmt.Sprintf("things: cannot %s on %v", op, t))
	}
}
