// Package cli provides line-oriented terminal I/O, map dumps, and
// meta-command dispatch for the raidne dungeon. It is the host used for
// --plain play and for script playback.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eevee/raidne/engine"
	"github.com/eevee/raidne/engine/floor"
	"github.com/eevee/raidne/engine/geom"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Dungeon   *engine.Dungeon
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again" repeat
}

// New creates a CLI wired to the given dungeon.
func New(d *engine.Dungeon) *CLI {
	return &CLI{
		Dungeon: d,
		In:      os.Stdin,
		Out:     os.Stdout,
	}
}

// Run starts the game loop. It shows the welcome and the first floor, then
// loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	for _, line := range c.Dungeon.NewMessages() {
		c.printLine(line)
	}
	c.printMap()

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		if strings.EqualFold(input, "again") {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Dungeon.Step(input)
		c.printResult(result)
		if c.Trace {
			c.printTrace(result)
		}
		if result.Dead {
			c.printSystem(c.Dungeon.Describe())
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/map":
		c.printMap()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /map     Draw the current floor",
		"  /state   Show health, depth and turn",
		"  /trace   Toggle debug trace output",
		"  /help    Show this help",
		"  /quit    Exit game",
		"",
		"Game commands:",
		"  n/s/e/w, ne/nw/se/sw   Move, or attack whatever is there",
		"  take (g, ,)            Pick up what you are standing on",
		"  use <item or letter>   Use something you carry",
		"  descend (>)            Go down a staircase",
		"  wait (z, .)            Let a turn pass",
		"  inventory (i)          Check what you're carrying",
		"  look (l)               See what is here",
		"  again                  Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	d := c.Dungeon
	c.printSystem(d.Describe())
	if pos, err := d.Floor().Position(d.Player()); err == nil {
		c.printSystem(fmt.Sprintf("Position: %v", pos))
	}
	c.printSystem(fmt.Sprintf("RNG position: %d", d.RNG().Position()))
}

func (c *CLI) printMap() {
	c.print(RenderMap(c.Dungeon.Floor()))
	c.printLine(c.Dungeon.Describe())
}

func (c *CLI) printTrace(result engine.Result) {
	for _, line := range result.Trace {
		c.printLine("[trace] " + line)
	}
}

func (c *CLI) printResult(result engine.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}

// RenderMap draws m one row per line, using the glyph of each tile's
// topmost thing.
func RenderMap(m *floor.Map) string {
	var b strings.Builder
	size := m.Size()
	for r := 0; r < size.Rows; r++ {
		for col := 0; col < size.Cols; col++ {
			tile, err := m.Tile(geom.Pos(r, col))
			if err != nil {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(tile.Topmost().Glyph())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
