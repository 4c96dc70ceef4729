package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/eevee/raidne/engine"
)

// logHeight is how many message lines stay visible under the map.
const logHeight = 6

// rawLine stores an unstyled log line with its classification, so we can
// re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed typed commands
	isSystem bool // true for meta-command output
}

// Model is the Bubble Tea model for the raidne TUI. In map mode every key is
// a command; '/' opens the command line for typed commands and meta-commands.
type Model struct {
	dungeon *engine.Dungeon

	keys     keyMap
	viewport viewport.Model
	input    textinput.Model
	history  *History
	log      *Log

	width     int
	height    int
	ready     bool
	trace     bool
	quitting  bool
	commandUI bool // the command line has focus
}

// gameOutputMsg carries output from the dungeon into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed typed command (empty for keys and the welcome)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given dungeon.
func New(d *engine.Dungeon, trace bool) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		dungeon: d,
		keys:    defaultKeyMap(),
		input:   ti,
		history: NewHistory(100),
		log:     NewLog(500),
		trace:   trace,
	}
}

// Run starts the Bubble Tea program.
func Run(d *engine.Dungeon, trace bool) error {
	p := tea.NewProgram(New(d, trace), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init drains the welcome message.
func (m Model) Init() tea.Cmd {
	d := m.dungeon
	return func() tea.Msg {
		return gameOutputMsg{lines: d.NewMessages()}
	}
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.width, logHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = logHeight
		}
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		if m.commandUI {
			return m.updateCommandLine(msg)
		}
		return m.updateMap(msg)

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}
	return m, nil
}

// updateMap handles a key in map mode.
func (m Model) updateMap(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	for _, mv := range m.keys.moves() {
		if key.Matches(msg, mv.binding) {
			return m.step("", "go "+mv.dir), nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Command):
		m.commandUI = true
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Take):
		return m.step("", "take"), nil
	case key.Matches(msg, m.keys.Use):
		// Quaff the first thing in the pack.
		return m.step("", "use a"), nil
	case key.Matches(msg, m.keys.Descend):
		return m.step("", "descend"), nil
	case key.Matches(msg, m.keys.Wait):
		return m.step("", "wait"), nil
	case key.Matches(msg, m.keys.Inventory):
		return m.step("", "inventory"), nil
	case key.Matches(msg, m.keys.Look):
		return m.step("", "look"), nil
	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateCommandLine handles a key while the command line has focus.
func (m Model) updateCommandLine(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m = m.closeCommandLine()
		return m, nil

	case "enter":
		return m.handleEnter()

	case "up":
		if prev, ok := m.history.Prev(); ok {
			m.input.SetValue(prev)
			m.input.CursorEnd()
		}
		return m, nil

	case "down":
		if next, ok := m.history.Next(); ok {
			m.input.SetValue(next)
			m.input.CursorEnd()
		} else {
			m.input.SetValue("")
			m.history.ResetCursor()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) closeCommandLine() Model {
	m.input.SetValue("")
	m.input.Blur()
	m.history.ResetCursor()
	m.commandUI = false
	return m
}

// handleEnter processes the submitted command line. A leading '/' is a
// meta-command; anything else goes to the dungeon as typed.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m = m.closeCommandLine()
	if input == "" {
		return m, nil
	}
	m.history.Push(input)

	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	return m.step(input, input), nil
}

// step runs one command through the dungeon and logs what came back.
func (m Model) step(echo, input string) Model {
	result := m.dungeon.Step(input)
	output := result.Output
	if m.trace {
		output = append(output, formatTrace(result)...)
	}
	return m.appendOutput(gameOutputMsg{input: echo, lines: output})
}

// appendOutput adds lines to the log and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	m.log.Add(msg.input, msg.lines, msg.isSystem)
	m.refreshViewport()
	return m
}

// refreshViewport re-wraps and re-styles the log at the current width and
// updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := max(m.width, 10)

	var styled []string
	for _, rl := range m.log.Lines() {
		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		wLen := len(word)
		switch {
		case i == 0:
			lineLen = wLen
		case lineLen+1+wLen > width:
			result.WriteString("\n")
			lineLen = wLen
		default:
			result.WriteString(" ")
			lineLen += 1 + wLen
		}
		result.WriteString(word)
	}
	return result.String()
}

// View renders the full TUI layout: map, message log, status bar, and the
// command line or key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	mapHeight := max(m.height-logHeight-2, 1)
	bottom := m.renderHelp()
	if m.commandUI {
		bottom = m.input.View()
	}
	return m.renderMap(m.width, mapHeight) + "\n" +
		m.viewport.View() + "\n" +
		m.renderStatusBar() + "\n" +
		bottom
}

func (m Model) renderHelp() string {
	var parts []string
	for _, b := range m.keys.shortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styleHelp.Render(strings.Join(parts, " • "))
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	switch cmd := strings.Fields(input)[0]; cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdHelp() []string {
	return []string{
		"Keys: arrows or hjkl move, yubn move diagonally; walking into a creature attacks it.",
		", take  q quaff  > descend  . wait  i inventory  : look  Q quit",
		"/ opens the command line: type any command (\"use potion\") or /state, /trace, /quit.",
		"PgUp/PgDn scroll the log; Up/Down recall typed commands.",
	}
}

func (m *Model) cmdState() []string {
	d := m.dungeon
	out := []string{d.Describe()}
	if pos, err := d.Floor().Position(d.Player()); err == nil {
		out = append(out, fmt.Sprintf("Position: %v", pos))
	}
	return append(out, fmt.Sprintf("RNG position: %d", d.RNG().Position()))
}

func formatTrace(result engine.Result) []string {
	lines := make([]string, 0, len(result.Trace))
	for _, t := range result.Trace {
		lines = append(lines, "[trace] "+t)
	}
	return lines
}
