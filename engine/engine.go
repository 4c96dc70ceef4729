// Package engine runs the dungeon: it owns the floors and the player, and
// drives the two-phase round of one player action followed by a sweep of
// monster turns. Step wraps that in a text-command front door for hosts.
package engine

import (
	"errors"
	"fmt"

	"github.com/eevee/raidne/engine/actions"
	"github.com/eevee/raidne/engine/effects"
	"github.com/eevee/raidne/engine/floor"
	"github.com/eevee/raidne/engine/fractor"
	"github.com/eevee/raidne/engine/geom"
	"github.com/eevee/raidne/engine/things"
)

var (
	// ErrPlayerDied is returned once the player's health reaches zero. The
	// dungeon accepts no further actions after it.
	ErrPlayerDied = errors.New("player died")

	// ErrNotPlayer is returned when PlayerCommand gets an action whose actor
	// is someone else.
	ErrNotPlayer = errors.New("action is not the player's")
)

// FloorGen returns the fractor for the floor at depth; depth 0 is the top.
type FloorGen func(depth int) fractor.Fractor

// Options configure a new Dungeon. Zero fields get defaults.
type Options struct {
	Catalog *things.Catalog
	RNG     *RNG

	// Floors defaults to 2, and Size to 40x80.
	Floors int
	Size   geom.Size

	// MinPartition is handed to the default BSP generator; default 8.
	MinPartition int

	// Generator overrides the default BSP generator.
	Generator FloorGen
}

// Dungeon is the whole game world.
type Dungeon struct {
	catalog  *things.Catalog
	rng      *RNG
	floors   []*floor.Map
	depth    int
	player   *things.Thing
	messages []string
	turn     int
	dead     bool
}

// New generates every floor up front and puts the player on the top floor's
// entry.
func New(opts Options) (*Dungeon, error) {
	if opts.Catalog == nil {
		opts.Catalog = things.DefaultCatalog()
	}
	if opts.RNG == nil {
		opts.RNG = NewRNG(1)
	}
	if opts.Floors <= 0 {
		opts.Floors = 2
	}
	if opts.Size == (geom.Size{}) {
		opts.Size = geom.Size{Rows: 40, Cols: 80}
	}
	if opts.MinPartition == 0 {
		opts.MinPartition = 8
	}
	gen := opts.Generator
	if gen == nil {
		gen = func(depth int) fractor.Fractor {
			return fractor.BSPFractor{
				Size:         opts.Size,
				MinPartition: opts.MinPartition,
				Catalog:      opts.Catalog,
				Rand:         opts.RNG,
				UpStairs:     depth > 0,
			}
		}
	}

	d := &Dungeon{catalog: opts.Catalog, rng: opts.RNG}
	for depth := 0; depth < opts.Floors; depth++ {
		m, err := gen(depth).Generate()
		if err != nil {
			return nil, fmt.Errorf("generate floor %d: %w", depth, err)
		}
		d.floors = append(d.floors, m)
	}

	d.player = opts.Catalog.New(things.Player)
	top := d.floors[0]
	if err := top.Put(d.player, top.Entry()); err != nil {
		return nil, fmt.Errorf("place player: %w", err)
	}
	d.Post("Welcome to raidne!")
	return d, nil
}

// Floor is the floor the player is on.
func (d *Dungeon) Floor() *floor.Map { return d.floors[d.depth] }

// FloorBelow is the next floor down, if any.
func (d *Dungeon) FloorBelow() (*floor.Map, bool) {
	if d.depth+1 >= len(d.floors) {
		return nil, false
	}
	return d.floors[d.depth+1], true
}

// Descend makes the next floor current. Moving the player is up to the
// caller.
func (d *Dungeon) Descend() {
	if d.depth+1 < len(d.floors) {
		d.depth++
	}
}

// Post queues a message for the host.
func (d *Dungeon) Post(msg string) { d.messages = append(d.messages, msg) }

// NewMessages returns the messages posted since the last call, and forgets
// them.
func (d *Dungeon) NewMessages() []string {
	msgs := d.messages
	d.messages = nil
	return msgs
}

func (d *Dungeon) Player() *things.Thing { return d.player }
func (d *Dungeon) Catalog() *things.Catalog { return d.catalog }
func (d *Dungeon) Depth() int { return d.depth }
func (d *Dungeon) NumFloors() int { return len(d.floors) }
func (d *Dungeon) Turn() int { return d.turn }
func (d *Dungeon) RNG() *RNG { return d.rng }
func (d *Dungeon) Dead() bool { return d.dead }

// PlayerCommand resolves and applies one of the player's actions. It
// returns the trace of applied effects.
func (d *Dungeon) PlayerCommand(a actions.Action) ([]string, error) {
	if a.Actor() != d.player {
		return nil, fmt.Errorf("player command %T by %v: %w", a, a.Actor(), ErrNotPlayer)
	}
	if d.dead {
		return nil, ErrPlayerDied
	}
	return d.act(a)
}

// RunMonsterTurns gives every creature on the current floor except the
// player one turn, in row-major order of where they stood when the sweep
// began. Each action is applied before the next creature thinks. A creature
// killed earlier in the sweep is skipped. The sweep stops with ErrPlayerDied
// the moment the player's health reaches zero.
func (d *Dungeon) RunMonsterTurns() ([]string, error) {
	if d.dead {
		return nil, ErrPlayerDied
	}
	m := d.Floor()
	var trace []string
	for _, c := range m.Creatures() {
		if c == d.player || !m.Contains(c) {
			continue
		}
		a := actions.Think(c, d, d.rng)
		if a == nil {
			continue
		}
		lines, err := d.act(a)
		trace = append(trace, lines...)
		if err != nil {
			return trace, err
		}
	}
	return trace, nil
}

func (d *Dungeon) act(a actions.Action) ([]string, error) {
	effs, err := a.Resolve(d)
	if err != nil {
		return nil, fmt.Errorf("resolve %T: %w", a, err)
	}
	trace, err := effects.Apply(d, effs)
	if err != nil {
		return trace, err
	}
	if d.player.Dead() {
		d.dead = true
		return trace, ErrPlayerDied
	}
	return trace, nil
}
