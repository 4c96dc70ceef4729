package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eevee/raidne/engine/geom"
)

// renderMap draws the part of the current floor that fits in width x height,
// keeping the player in view.
func (m Model) renderMap(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	fl := m.dungeon.Floor()
	size := fl.Size()
	focus, err := fl.Position(m.dungeon.Player())
	if err != nil {
		focus = fl.Entry()
	}
	top := viewOrigin(focus.Row, height, size.Rows)
	left := viewOrigin(focus.Col, width, size.Cols)

	var rows []string
	for r := top; r < min(top+height, size.Rows); r++ {
		var b strings.Builder
		for c := left; c < min(left+width, size.Cols); c++ {
			tile, err := fl.Tile(geom.Pos(r, c))
			if err != nil {
				b.WriteByte(' ')
				continue
			}
			th := tile.Topmost()
			b.WriteString(glyphStyle(th).Render(string(th.Glyph())))
		}
		rows = append(rows, b.String())
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(rows, "\n"))
}

// viewOrigin is the first index of a window of length span over total
// cells, centred on focus where the edges allow.
func viewOrigin(focus, span, total int) int {
	if span >= total {
		return 0
	}
	return max(0, min(focus-span/2, total-span))
}
