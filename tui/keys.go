package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

// keyMap binds map-mode keys. Movement follows the arrow keys and the
// vi-style hjkl/yubn layout.
type keyMap struct {
	North, South, East, West       key.Binding
	NorthEast, NorthWest           key.Binding
	SouthEast, SouthWest           key.Binding
	Take, Use, Descend, Wait       key.Binding
	Inventory, Look, Command, Quit key.Binding
	ScrollUp, ScrollDown           key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		North:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "north")),
		South:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "south")),
		East:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "east")),
		West:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "west")),
		NorthEast:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "northeast")),
		NorthWest:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "northwest")),
		SouthEast:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "southeast")),
		SouthWest:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "southwest")),
		Take:       key.NewBinding(key.WithKeys(",", "g"), key.WithHelp(",", "take")),
		Use:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quaff")),
		Descend:    key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "descend")),
		Wait:       key.NewBinding(key.WithKeys(".", "z"), key.WithHelp(".", "wait")),
		Inventory:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inventory")),
		Look:       key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "look")),
		Command:    key.NewBinding(key.WithKeys("/", "enter"), key.WithHelp("/", "command")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "Q"), key.WithHelp("Q", "quit")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown")),
	}
}

// shortHelp is what the bottom line shows in map mode.
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Take, k.Use, k.Descend, k.Wait, k.Inventory, k.Look, k.Command, k.Quit}
}

// moves pairs each movement binding with the direction word Step understands.
func (k keyMap) moves() []struct {
	binding key.Binding
	dir     string
} {
	return []struct {
		binding key.Binding
		dir     string
	}{
		{k.North, "north"}, {k.South, "south"}, {k.East, "east"}, {k.West, "west"},
		{k.NorthEast, "ne"}, {k.NorthWest, "nw"}, {k.SouthEast, "se"}, {k.SouthWest, "sw"},
	}
}

// viewportKeyMap returns a viewport keymap limited to paging; the arrows
// move the player.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
