package things

import (
	"fmt"
	"sort"
	"strings"
)

// UseEffect names what a usable item does to whoever uses it.
type UseEffect int

const (
	UseHeal UseEffect = iota + 1
)

func (u UseEffect) String() string {
	switch u {
	case UseHeal:
		return "heal"
	default:
		return fmt.Sprintf("use(%d)", int(u))
	}
}

// Use is an item's usable capability. A prototype either holds one or has
// none; nothing is looked up when the item is used.
type Use struct {
	Effect UseEffect
	Amount int
}

// Prototype is the shared, immutable description of a kind.
type Prototype struct {
	Kind        Kind
	Name        string
	Glyph       rune
	MaxHealth   int // creatures only
	Attack      int // creatures only
	SpawnWeight int // relative frequency when populating a floor; 0 never spawns
	Use         *Use
}

// Class is shorthand for p.Kind.Class().
func (p Prototype) Class() Class {
	return p.Kind.Class()
}

// defaultPrototypes is the built-in content used when nothing overrides it.
var defaultPrototypes = []Prototype{
	{Kind: Floor, Name: "floor", Glyph: '·'},
	{Kind: Wall, Name: "wall", Glyph: '▓'},
	{Kind: StaircaseUp, Name: "up staircase", Glyph: '<'},
	{Kind: StaircaseDown, Name: "down staircase", Glyph: '>'},
	{Kind: Player, Name: "you", Glyph: '@', MaxHealth: 20, Attack: 3},
	{Kind: Newt, Name: "newt", Glyph: ':', MaxHealth: 3, Attack: 1, SpawnWeight: 10},
	{Kind: Potion, Name: "potion", Glyph: '!', SpawnWeight: 4, Use: &Use{Effect: UseHeal, Amount: 10}},
}

// Catalog holds one prototype per kind and hands out things with fresh
// identities. A dungeon shares a single catalog so ids never repeat.
type Catalog struct {
	protos [numKinds]Prototype
	nextID ID
}

// DefaultCatalog returns a catalog of the built-in prototypes.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(nil)
	if err != nil {
		panic(err) // built-in content is always valid
	}
	return c
}

// NewCatalog starts from the built-in prototypes and replaces each one named
// in overrides.
func NewCatalog(overrides []Prototype) (*Catalog, error) {
	c := &Catalog{}
	for _, p := range defaultPrototypes {
		c.protos[p.Kind] = p
	}
	var problems []string
	for _, p := range overrides {
		if p.Kind < 0 || p.Kind >= numKinds {
			problems = append(problems, fmt.Sprintf("unknown kind %d", int(p.Kind)))
			continue
		}
		if err := p.Validate(); err != nil {
			problems = append(problems, err.Error())
			continue
		}
		c.protos[p.Kind] = p
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid prototypes: %s", strings.Join(problems, "; "))
	}
	return c, nil
}

// Validate reports the first rule p breaks for its class.
func (p Prototype) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%s: name is required", p.Kind)
	}
	if p.SpawnWeight < 0 {
		return fmt.Errorf("%s: spawn weight must not be negative", p.Kind)
	}
	switch p.Class() {
	case Creature:
		if p.MaxHealth < 1 {
			return fmt.Errorf("%s: max health must be positive", p.Kind)
		}
		if p.Attack < 0 {
			return fmt.Errorf("%s: attack must not be negative", p.Kind)
		}
	case Architecture:
		if p.Use != nil {
			return fmt.Errorf("%s: architecture cannot be usable", p.Kind)
		}
		if p.SpawnWeight != 0 {
			return fmt.Errorf("%s: architecture cannot spawn", p.Kind)
		}
	case Item:
		if p.Use != nil && p.Use.Amount < 0 {
			return fmt.Errorf("%s: use amount must not be negative", p.Kind)
		}
	}
	if p.Kind == Player && p.SpawnWeight != 0 {
		return fmt.Errorf("%s: the player cannot spawn", p.Kind)
	}
	return nil
}

// Prototype returns the prototype for k.
func (c *Catalog) Prototype(k Kind) Prototype {
	return c.protos[k]
}

// Spawnable returns the prototypes of class cl with a positive spawn weight,
// in kind order.
func (c *Catalog) Spawnable(cl Class) []Prototype {
	var out []Prototype
	for _, p := range c.protos {
		if p.Class() == cl && p.SpawnWeight > 0 {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// New creates a thing of kind k with a fresh id.
func (c *Catalog) New(k Kind) *Thing {
	c.nextID++
	p := c.protos[k]
	t := &Thing{id: c.nextID, proto: p}
	if p.Class() == Creature {
		t.health = Meter{Current: p.MaxHealth, Maximum: p.MaxHealth}
	}
	return t
}
