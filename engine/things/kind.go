// Package things defines everything that can occupy a dungeon tile:
// architecture, creatures and items. The set of kinds is closed; every
// capability query switches over all of them.
package things

import "fmt"

// Class is the occupancy layer a kind lives in.
type Class int

const (
	Architecture Class = iota
	Creature
	Item
)

func (c Class) String() string {
	switch c {
	case Architecture:
		return "architecture"
	case Creature:
		return "creature"
	case Item:
		return "item"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Kind identifies one variant of thing.
type Kind int

const (
	Floor Kind = iota
	Wall
	StaircaseUp
	StaircaseDown
	Player
	Newt
	Potion

	numKinds
)

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

var kindNames = [numKinds]string{
	Floor:         "floor",
	Wall:          "wall",
	StaircaseUp:   "staircase_up",
	StaircaseDown: "staircase_down",
	Player:        "player",
	Newt:          "newt",
	Potion:        "potion",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// KindByName maps a content identifier such as "newt" to its Kind.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Class returns the layer this kind occupies.
func (k Kind) Class() Class {
	switch k {
	case Floor, Wall, StaircaseUp, StaircaseDown:
		return Architecture
	case Player, Newt:
		return Creature
	case Potion:
		return Item
	default:
		panic(fmt.Sprintf("things: unknown kind %d", int(k)))
	}
}

