package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line: the
// dungeon's own summary on the left, what lies underfoot on the right.
func (m Model) renderStatusBar() string {
	d := m.dungeon
	left := " " + d.Describe()

	var right string
	if tile, err := d.Floor().Find(d.Player()); err == nil {
		under := tile.Architecture.Name()
		switch items := tile.Items(); len(items) {
		case 0:
		case 1:
			under = items[0].Name()
		default:
			under = fmt.Sprintf("%s (+%d)", items[0].Name(), len(items)-1)
		}
		right = "Here: " + under + " "
	}
	if m.trace {
		right = "TRACE | " + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	style := styleStatusBar
	if d.Dead() {
		style = styleStatusDead
	}
	return style.Width(m.width).Render(bar)
}
