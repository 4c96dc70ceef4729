package effects

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eevee/raidne/engine/things"
)

// subject is how a thing is named in a clause, as subject or object.
func subject(t *things.Thing) string {
	if t.IsPlayer() {
		return "you"
	}
	return "the " + t.Name()
}

// verb picks the second-person form for the player.
func verb(t *things.Thing, you, other string) string {
	if t.IsPlayer() {
		return you
	}
	return other
}

// sentence joins words and capitalises the first one.
func sentence(words ...string) string {
	s := strings.Join(words, " ")
	first, rest, _ := strings.Cut(s, " ")
	// Casers carry state, so each call gets its own.
	first = cases.Title(language.English).String(first)
	if rest == "" {
		return first
	}
	return first + " " + rest
}
