package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eevee/raidne/engine/things"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleStatusDead = styleStatusBar.
			Background(lipgloss.Color("52"))

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleHelp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	styleMessage = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleYouSee = lipgloss.NewStyle().
			Bold(true)

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("209"))

	styleDeath = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleRejected = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Glyph styles, one per kind of thing on the map.
var (
	styleWall     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleFloor    = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
	styleStairs   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	stylePlayer   = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true)
	styleCreature = lipgloss.NewStyle().Foreground(lipgloss.Color("112"))
	styleItem     = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
)

// glyphStyle picks the style a thing is drawn in.
func glyphStyle(t *things.Thing) lipgloss.Style {
	switch t.Kind() {
	case things.Wall:
		return styleWall
	case things.Floor:
		return styleFloor
	case things.StaircaseUp, things.StaircaseDown:
		return styleStairs
	case things.Player:
		return stylePlayer
	}
	switch t.Class() {
	case things.Creature:
		return styleCreature
	case things.Item:
		return styleItem
	default:
		return styleWall
	}
}

// lineKind identifies the type of a log line for styling.
type lineKind int

const (
	kindMessage lineKind = iota
	kindYouSee
	kindCombat
	kindDeath
	kindSystem
	kindRejected
	kindTrace
)

// classifyLine determines what kind of log line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "You see here:"):
		return kindYouSee
	case line == "You are dead.", strings.HasSuffix(line, " dies."), strings.HasSuffix(line, " die."):
		return kindDeath
	case strings.Contains(line, " attack"), strings.HasSuffix(line, " damage."):
		return kindCombat
	case strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "You aren't"),
		strings.HasPrefix(line, "You don't"),
		strings.HasPrefix(line, "There is nothing here to"),
		strings.HasPrefix(line, "I don't know"):
		return kindRejected
	default:
		return kindMessage
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindYouSee:
		return styledYouSee(line)
	case kindCombat:
		return styleCombat.Render(line)
	case kindDeath:
		return styleDeath.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindRejected:
		return styleRejected.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleMessage.Render(line)
	}
}

// styledYouSee renders "You see here: a, b." with the item names bold.
func styledYouSee(line string) string {
	const prefix = "You see here: "
	if !strings.HasPrefix(line, prefix) {
		return styleMessage.Render(line)
	}
	return styleMessage.Render(prefix) + styleYouSee.Render(line[len(prefix):])
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
