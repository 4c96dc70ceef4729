// Package parser turns typed or keyed commands into Commands.
// Deliberately simple: a verb, an optional direction, and an optional object.
package parser

import (
	"strings"

	"github.com/eevee/raidne/engine/geom"
)

// Verbs the engine understands.
const (
	Go        = "go"
	Take      = "take"
	Use       = "use"
	Descend   = "descend"
	Wait      = "wait"
	Inventory = "inventory"
	Look      = "look"
)

// Command is the parsed form of one line of input.
type Command struct {
	Verb      string
	Direction geom.Offset // set for Go
	Object    string      // optional, e.g. the item to use
	Raw       string
}

// Directions maps every name a direction goes by to its offset.
var Directions = map[string]geom.Offset{
	"north": geom.North,
	"south": geom.South,
	"east":  geom.East,
	"west":  geom.West,
	"n":     geom.North,
	"s":     geom.South,
	"e":     geom.East,
	"w":     geom.West,
	"up":    geom.North,
	"down":  geom.South,
	"left":  geom.West,
	"right": geom.East,

	"northeast": geom.North.Add(geom.East),
	"northwest": geom.North.Add(geom.West),
	"southeast": geom.South.Add(geom.East),
	"southwest": geom.South.Add(geom.West),
	"ne":        geom.North.Add(geom.East),
	"nw":        geom.North.Add(geom.West),
	"se":        geom.South.Add(geom.East),
	"sw":        geom.South.Add(geom.West),
}

var verbAliases = map[string]string{
	// Movement
	"walk": Go,
	"move": Go,
	"step": Go,

	// Take
	"get":    Take,
	"grab":   Take,
	"pickup": Take,
	",":      Take,
	"g":      Take,

	// Use
	"quaff": Use,
	"drink": Use,

	// Stairs
	">": Descend,

	// Waiting
	".":    Wait,
	"z":    Wait,
	"rest": Wait,

	// Free actions
	"i":   Inventory,
	"inv": Inventory,
	"l":   Look,
	":":   Look,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command string into a Command. An empty or blank
// input yields a zero Verb; an unknown verb is passed through as typed.
func Parse(input string) Command {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}
	}
	words := strings.Fields(strings.ToLower(raw))

	// Bare direction: "n", "east", "up".
	if len(words) == 1 {
		if d, ok := Directions[words[0]]; ok {
			return Command{Verb: Go, Direction: d, Raw: raw}
		}
	}

	words = expandMultiWordVerbs(words)
	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}
	cmd := Command{Verb: words[0], Raw: raw}
	rest := stripArticles(words[1:])

	switch cmd.Verb {
	case Go:
		if len(rest) != 1 {
			// Missing or garbled direction; the engine asks where.
			return cmd
		}
		if d, ok := Directions[rest[0]]; ok {
			cmd.Direction = d
		}
	case Descend:
		// "go down the stairs" style trailing words are ignored.
	default:
		cmd.Object = strings.Join(rest, " ")
	}
	return cmd
}

// expandMultiWordVerbs handles "pick up", "go down" and friends.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}
	switch words[0] {
	case "pick":
		if words[1] == "up" {
			return append([]string{Take}, words[2:]...)
		}
	case "look":
		if words[1] == "around" {
			return []string{Look}
		}
	case "climb", "go":
		if words[1] == "down" && len(words) > 2 {
			return []string{Descend}
		}
	}
	return words
}

// stripArticles removes articles ("the", "a", "an") from the word list.
// An article is only dropped when a word follows it, so "use a" keeps the
// inventory letter.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for i, w := range words {
		if articles[w] && i < len(words)-1 {
			continue
		}
		result = append(result, w)
	}
	return result
}
