// Package actions holds the commands that creatures issue. Resolving an
// action only inspects the world; it returns the effects that would carry it
// out, and the caller applies them.
package actions

import (
	"errors"
	"fmt"

	"github.com/eevee/raidne/engine/effects"
	"github.com/eevee/raidne/engine/floor"
	"github.com/eevee/raidne/engine/geom"
	"github.com/eevee/raidne/engine/things"
)

// ErrPrecondition marks an action built in a way its contract forbids, such
// as attacking something out of reach. It is a caller bug, not a play mistake.
var ErrPrecondition = errors.New("action precondition violated")

// World is what actions and AI may look at.
type World interface {
	effects.World
	Player() *things.Thing
}

// Action is one proposed command.
type Action interface {
	Actor() *things.Thing
	Resolve(w World) ([]effects.Targeted, error)
}

// MeleeAttack strikes an adjacent creature.
type MeleeAttack struct {
	Attacker *things.Thing
	Target   *things.Thing
}

func (a MeleeAttack) Actor() *things.Thing { return a.Attacker }

func (a MeleeAttack) Resolve(w World) ([]effects.Targeted, error) {
	d, err := w.Floor().DistanceBetween(a.Attacker, a.Target)
	if err != nil {
		return nil, fmt.Errorf("melee %v -> %v: %w: %w", a.Attacker, a.Target, ErrPrecondition, err)
	}
	if d.StepLength() > 1 {
		return nil, fmt.Errorf("melee %v -> %v at %v: out of reach: %w", a.Attacker, a.Target, d, ErrPrecondition)
	}
	return []effects.Targeted{
		effects.On(effects.Damage{Amount: a.Attacker.AttackPower(), Source: a.Attacker}, a.Target),
	}, nil
}

// Walk takes a single step.
type Walk struct {
	Walker    *things.Thing
	Direction geom.Offset
}

func (a Walk) Actor() *things.Thing { return a.Walker }

// Resolve yields nothing when the step is blocked; the turn is still spent.
func (a Walk) Resolve(w World) ([]effects.Targeted, error) {
	if a.Direction.StepLength() != 1 {
		return nil, fmt.Errorf("walk %v by %v: %w", a.Walker, a.Direction, ErrPrecondition)
	}
	m := w.Floor()
	to, err := m.CanMove(a.Walker, a.Direction)
	switch {
	case errors.Is(err, floor.ErrCollision), errors.Is(err, floor.ErrOutOfBounds):
		return nil, nil
	case err != nil:
		return nil, err
	}

	out := []effects.Targeted{effects.On(effects.Relocate{To: to}, a.Walker)}
	if a.Walker.IsPlayer() {
		tile, err := m.Tile(to)
		if err != nil {
			return nil, err
		}
		if items := tile.Items(); len(items) > 0 {
			msg := fmt.Sprintf("You see here: %s.", effects.ListNames(items))
			out = append(out, effects.On(effects.Message{Text: msg}, nil))
		}
	}
	return out, nil
}

// PickUp lifts an item from the actor's own tile.
type PickUp struct {
	Taker *things.Thing
	Item  *things.Thing
}

func (a PickUp) Actor() *things.Thing { return a.Taker }

func (a PickUp) Resolve(w World) ([]effects.Targeted, error) {
	if a.Item.Class() != things.Item {
		return nil, fmt.Errorf("pick up %v: not an item: %w", a.Item, ErrPrecondition)
	}
	m := w.Floor()
	here, err := m.Position(a.Taker)
	if err != nil {
		return nil, err
	}
	there, err := m.Position(a.Item)
	if err != nil {
		return nil, fmt.Errorf("pick up %v: %w: %w", a.Item, ErrPrecondition, err)
	}
	if here != there {
		return nil, fmt.Errorf("pick up %v at %v from %v: %w", a.Item, there, here, ErrPrecondition)
	}

	msg := fmt.Sprintf("You pick up the %s.", a.Item.Name())
	if !a.Taker.IsPlayer() {
		msg = fmt.Sprintf("The %s picks up the %s.", a.Taker.Name(), a.Item.Name())
	}
	return []effects.Targeted{
		effects.On(effects.Take{Taker: a.Taker}, a.Item),
		effects.On(effects.Message{Text: msg}, nil),
	}, nil
}

// UseItem applies a carried item's capability to the user and uses it up.
type UseItem struct {
	User *things.Thing
	Item *things.Thing
}

func (a UseItem) Actor() *things.Thing { return a.User }

func (a UseItem) Resolve(w World) ([]effects.Targeted, error) {
	if a.Item.Class() != things.Item {
		return nil, fmt.Errorf("use %v: not an item: %w", a.Item, ErrPrecondition)
	}
	if !a.User.Carries(a.Item) {
		return reject("You aren't carrying that."), nil
	}
	use := a.Item.Prototype().Use
	if use == nil {
		return reject(fmt.Sprintf("You can't use the %s.", a.Item.Name())), nil
	}

	var eff effects.Effect
	switch use.Effect {
	case things.UseHeal:
		eff = effects.Heal{Amount: use.Amount}
	default:
		return nil, fmt.Errorf("use %v: unknown capability %v: %w", a.Item, use.Effect, ErrPrecondition)
	}
	return []effects.Targeted{
		effects.On(effects.Message{Text: fmt.Sprintf("You use the %s.", a.Item.Name())}, nil),
		effects.On(eff, a.User),
		effects.On(effects.Consume{Owner: a.User}, a.Item),
	}, nil
}

// Descend goes down the staircase the actor is standing on. Staircase may
// be nil, meaning whatever architecture is underfoot.
type Descend struct {
	Climber   *things.Thing
	Staircase *things.Thing
}

func (a Descend) Actor() *things.Thing { return a.Climber }

func (a Descend) Resolve(w World) ([]effects.Targeted, error) {
	tile, err := w.Floor().Find(a.Climber)
	if err != nil {
		return nil, err
	}
	arch := tile.Architecture
	if arch.Kind() != things.StaircaseDown || (a.Staircase != nil && a.Staircase.ID() != arch.ID()) {
		return reject("You can't go down here."), nil
	}
	below, ok := w.FloorBelow()
	if !ok {
		return reject("You can't go any deeper."), nil
	}
	if entry, err := below.Tile(below.Entry()); err != nil || entry.Creature != nil {
		return reject("Something blocks the way down."), nil
	}
	return []effects.Targeted{
		effects.On(effects.Descend{}, a.Climber),
		effects.On(effects.Message{Text: "You descend the staircase."}, nil),
	}, nil
}

// Wait does nothing for a turn.
type Wait struct {
	Waiter *things.Thing
}

func (a Wait) Actor() *things.Thing { return a.Waiter }

func (a Wait) Resolve(World) ([]effects.Targeted, error) { return nil, nil }

func reject(msg string) []effects.Targeted {
	return []effects.Targeted{effects.On(effects.Message{Text: msg}, nil)}
}
