package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eevee/raidne/engine/actions"
	"github.com/eevee/raidne/engine/effects"
	"github.com/eevee/raidne/engine/parser"
	"github.com/eevee/raidne/engine/things"
)

// Result is what one Step produced.
type Result struct {
	Output   []string // messages for the player, in order
	Trace    []string // applied effects, for debugging
	TookTurn bool
	Dead     bool
}

// Step processes one player command and returns the result. Commands that
// do something in the world take a turn and let the monsters move; looking
// at the inventory or the floor does not.
func (d *Dungeon) Step(input string) Result {
	var result Result

	// 0. Dead players do nothing.
	if d.dead {
		result.Output = append(d.NewMessages(), "You are dead.")
		result.Dead = true
		return result
	}

	// 1. Parse input.
	cmd := parser.Parse(input)
	if cmd.Verb == "" {
		result.Output = append(d.NewMessages(), "What do you want to do?")
		return result
	}

	// 2. Turn the command into an action, or answer it directly.
	a, reply := d.commandAction(cmd)
	if a == nil {
		result.Output = append(d.NewMessages(), reply...)
		return result
	}

	// 3. Player turn, then the monster sweep.
	trace, err := d.PlayerCommand(a)
	result.Trace = append(result.Trace, trace...)
	if err == nil {
		trace, err = d.RunMonsterTurns()
		result.Trace = append(result.Trace, trace...)
	}
	d.turn++
	result.TookTurn = true

	switch {
	case errors.Is(err, ErrPlayerDied):
		result.Dead = true
	case err != nil:
		// Resolution bugs are not the player's fault; report and carry on.
		result.Trace = append(result.Trace, "error: "+err.Error())
	}
	result.Trace = append(result.Trace, fmt.Sprintf("turn %d, rng position %d", d.turn, d.rng.Position()))

	// 4. Drain the messages the turn produced.
	result.Output = append(result.Output, d.NewMessages()...)
	if result.Dead {
		result.Output = append(result.Output, "You are dead.")
	}
	return result
}

// commandAction builds the player's action for cmd. When the command needs
// no turn, or cannot be carried out at all, it returns a nil action and the
// reply to show instead.
func (d *Dungeon) commandAction(cmd parser.Command) (actions.Action, []string) {
	p := d.player
	here, err := d.Floor().Find(p)
	if err != nil {
		return nil, []string{"You are nowhere."}
	}

	switch cmd.Verb {
	case parser.Go:
		if cmd.Direction.IsZero() {
			return nil, []string{"Go where?"}
		}
		// Bumping into a creature attacks it.
		if there, err := d.Floor().Tile(here.Position.Add(cmd.Direction)); err == nil && there.Creature != nil {
			return actions.MeleeAttack{Attacker: p, Target: there.Creature}, nil
		}
		return actions.Walk{Walker: p, Direction: cmd.Direction}, nil

	case parser.Take:
		items := here.Items()
		if len(items) == 0 {
			return nil, []string{"There is nothing here to pick up."}
		}
		if cmd.Object == "" {
			return actions.PickUp{Taker: p, Item: items[0]}, nil
		}
		for _, it := range items {
			if it.Name() == cmd.Object {
				return actions.PickUp{Taker: p, Item: it}, nil
			}
		}
		return nil, []string{fmt.Sprintf("You don't see a %s here.", cmd.Object)}

	case parser.Use:
		inv := p.Inventory()
		if len(inv) == 0 {
			return nil, []string{"You aren't carrying anything."}
		}
		if cmd.Object == "" {
			return nil, []string{"Use what?"}
		}
		if it := pickItem(inv, cmd.Object); it != nil {
			return actions.UseItem{User: p, Item: it}, nil
		}
		return nil, []string{"You aren't carrying that."}

	case parser.Descend:
		return actions.Descend{Climber: p, Staircase: here.Architecture}, nil

	case parser.Wait:
		return actions.Wait{Waiter: p}, nil

	case parser.Inventory:
		return nil, inventoryLines(p)

	case parser.Look:
		return nil, lookLines(here.Architecture, here.Items())

	default:
		return nil, []string{fmt.Sprintf("I don't know how to %q.", cmd.Verb)}
	}
}

// pickItem finds an item by inventory letter ("a") or by name.
func pickItem(inv []*things.Thing, which string) *things.Thing {
	if len(which) == 1 {
		if i := int(which[0] - 'a'); i >= 0 && i < len(inv) {
			return inv[i]
		}
	}
	for _, it := range inv {
		if it.Name() == which {
			return it
		}
	}
	return nil
}

func inventoryLines(p *things.Thing) []string {
	inv := p.Inventory()
	if len(inv) == 0 {
		return []string{"You aren't carrying anything."}
	}
	lines := []string{"You are carrying:"}
	for i, it := range inv {
		lines = append(lines, fmt.Sprintf("  %c) %s", 'a'+i, it.Name()))
	}
	return lines
}

func lookLines(arch *things.Thing, items []*things.Thing) []string {
	var lines []string
	switch arch.Kind() {
	case things.StaircaseDown, things.StaircaseUp:
		lines = append(lines, fmt.Sprintf("There is a %s here.", arch.Name()))
	}
	if len(items) == 0 {
		lines = append(lines, "There is nothing here.")
	} else {
		lines = append(lines, fmt.Sprintf("You see here: %s.", effects.ListNames(items)))
	}
	return lines
}

// Describe is a one-line status summary for hosts.
func (d *Dungeon) Describe() string {
	var b strings.Builder
	h := d.player.Health()
	fmt.Fprintf(&b, "HP %s  Depth %d/%d  Turn %d", h, d.depth+1, len(d.floors), d.turn)
	if n := len(d.player.Inventory()); n > 0 {
		fmt.Fprintf(&b, "  Pack %d", n)
	}
	return b.String()
}
