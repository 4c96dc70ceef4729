// Package effects implements every direct change to the dungeon. Actions
// decide what should happen; effects are the only code that makes it happen.
// Every effect is one small operation.
package effects

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eevee/raidne/engine/floor"
	"github.com/eevee/raidne/engine/geom"
	"github.com/eevee/raidne/engine/things"
)

// ErrNoFloorBelow is returned when descending from the deepest floor.
var ErrNoFloorBelow = errors.New("no floor below")

// World is the slice of the dungeon that effects may touch.
type World interface {
	// Floor is the current floor.
	Floor() *floor.Map
	// FloorBelow is the floor under the current one, if any.
	FloorBelow() (*floor.Map, bool)
	// Descend moves the current-floor pointer down one level.
	Descend()
	// Post queues a message for the player.
	Post(msg string)
}

// Effect is a single state change applied to a target.
type Effect interface {
	Name() string
	Apply(w World, target *things.Thing) error
}

// Targeted pairs an effect with what it applies to.
type Targeted struct {
	Effect Effect
	Target *things.Thing
}

// On is a convenience constructor for Targeted.
func On(e Effect, target *things.Thing) Targeted {
	return Targeted{Effect: e, Target: target}
}

func (t Targeted) String() string {
	if t.Target == nil {
		return t.Effect.Name()
	}
	return t.Effect.Name() + " -> " + t.Target.String()
}

// Apply applies each effect in order and returns a trace line per effect.
// An effect whose target has already left the floor is skipped; any other
// failure stops the batch.
func Apply(w World, batch []Targeted) ([]string, error) {
	var trace []string
	for _, t := range batch {
		err := t.Effect.Apply(w, t.Target)
		switch {
		case err == nil:
			trace = append(trace, t.String())
		case errors.Is(err, floor.ErrNotFound):
			trace = append(trace, t.String()+" (skipped: target gone)")
		default:
			return trace, fmt.Errorf("apply %s: %w", t, err)
		}
	}
	return trace, nil
}

// Damage hurts a creature. A creature brought to exactly zero health dies
// and is removed from the floor for good.
type Damage struct {
	Amount int
	Source *things.Thing // nil for sourceless harm such as traps
}

func (d Damage) Name() string { return fmt.Sprintf("damage(%d)", d.Amount) }

func (d Damage) Apply(w World, target *things.Thing) error {
	m := w.Floor()
	if !m.Contains(target) {
		return fmt.Errorf("damage %v: %w", target, floor.ErrNotFound)
	}
	if d.Source != nil {
		w.Post(sentence(subject(d.Source), verb(d.Source, "attack", "attacks"), subject(target)) + "!")
	} else {
		w.Post(sentence(subject(target), verb(target, "take", "takes"), fmt.Sprintf("%d damage", d.Amount)) + ".")
	}

	health := target.ModifyHealth(-d.Amount)
	if health.Current == 0 {
		w.Post(sentence(subject(target), verb(target, "die", "dies")) + ".")
		if err := m.Remove(target); err != nil {
			return err
		}
	}
	return nil
}

// Heal restores health, never past the maximum.
type Heal struct {
	Amount int
}

func (h Heal) Name() string { return fmt.Sprintf("heal(%d)", h.Amount) }

func (h Heal) Apply(w World, target *things.Thing) error {
	target.ModifyHealth(h.Amount)
	if target.IsPlayer() {
		w.Post("You feel better.")
	} else {
		w.Post(sentence(subject(target), "looks better") + ".")
	}
	return nil
}

// Message tells the player something. It has no target.
type Message struct {
	Text string
}

func (m Message) Name() string { return fmt.Sprintf("message(%q)", m.Text) }

func (m Message) Apply(w World, _ *things.Thing) error {
	w.Post(m.Text)
	return nil
}

// Relocate moves the target to a position on the current floor.
type Relocate struct {
	To geom.Position
}

func (r Relocate) Name() string { return "relocate" + r.To.String() }

func (r Relocate) Apply(w World, target *things.Thing) error {
	_, err := w.Floor().Move(target, r.To)
	return err
}

// Take lifts an item off the floor into a creature's inventory.
type Take struct {
	Taker *things.Thing
}

func (t Take) Name() string { return "take" }

func (t Take) Apply(w World, item *things.Thing) error {
	if err := w.Floor().Remove(item); err != nil {
		return err
	}
	t.Taker.AddToInventory(item)
	return nil
}

// Consume destroys an item carried by Owner.
type Consume struct {
	Owner *things.Thing
}

func (c Consume) Name() string { return "consume" }

func (c Consume) Apply(_ World, item *things.Thing) error {
	if !c.Owner.RemoveFromInventory(item) {
		return fmt.Errorf("consume %v: not carried by %v: %w", item, c.Owner, floor.ErrNotFound)
	}
	return nil
}

// Descend takes the target down to the next floor's entry.
type Descend struct{}

func (Descend) Name() string { return "descend" }

func (Descend) Apply(w World, target *things.Thing) error {
	below, ok := w.FloorBelow()
	if !ok {
		return ErrNoFloorBelow
	}
	entry, err := below.Tile(below.Entry())
	if err != nil {
		return err
	}
	if entry.Creature != nil {
		return fmt.Errorf("descend onto %v: %w", entry.Position, floor.ErrOccupied)
	}
	if err := w.Floor().Remove(target); err != nil {
		return err
	}
	w.Descend()
	return below.Put(target, below.Entry())
}

// ListNames joins thing names for messages such as "You see here: ...".
func ListNames(list []*things.Thing) string {
	names := make([]string, len(list))
	for i, t := range list {
		names[i] = t.Name()
	}
	return strings.Join(names, ", ")
}
