// Package floor implements a single dungeon level: a grid of layered tiles
// and an index from thing identity to position that always agrees with it.
package floor

import (
	"errors"
	"fmt"

	"github.com/eevee/raidne/engine/geom"
	"github.com/eevee/raidne/engine/things"
)

var (
	ErrOutOfBounds   = errors.New("position out of bounds")
	ErrNotFound      = errors.New("thing not on this floor")
	ErrCollision     = errors.New("destination rejects the mover")
	ErrOccupied      = errors.New("tile already holds a creature")
	ErrAlreadyPlaced = errors.New("thing is already on this floor")
	ErrNotPlaceable  = errors.New("architecture is fixed at generation")
	ErrMalformed     = errors.New("malformed floor")
)

type cell struct {
	architecture *things.Thing
	items        []*things.Thing // oldest first
	creature     *things.Thing
}

// Map is one floor. Architecture is fixed when the map is built; creatures
// and items move through Put, Remove and Move only.
type Map struct {
	size  geom.Size
	cells [][]cell
	index map[things.ID]geom.Position
	entry geom.Position
}

// New builds a map from a fully populated architecture grid, indexed
// [row][col]. entry is where arriving creatures are placed.
func New(architecture [][]*things.Thing, entry geom.Position) (*Map, error) {
	rows := len(architecture)
	if rows == 0 || len(architecture[0]) == 0 {
		return nil, fmt.Errorf("empty grid: %w", ErrMalformed)
	}
	cols := len(architecture[0])
	m := &Map{
		size:  geom.Size{Rows: rows, Cols: cols},
		cells: make([][]cell, rows),
		index: map[things.ID]geom.Position{},
		entry: entry,
	}
	for r, line := range architecture {
		if len(line) != cols {
			return nil, fmt.Errorf("row %d has %d cols, want %d: %w", r, len(line), cols, ErrMalformed)
		}
		m.cells[r] = make([]cell, cols)
		for c, arch := range line {
			if arch == nil {
				return nil, fmt.Errorf("no architecture at (%d,%d): %w", r, c, ErrMalformed)
			}
			if arch.Class() != things.Architecture {
				return nil, fmt.Errorf("%v at (%d,%d) is not architecture: %w", arch, r, c, ErrMalformed)
			}
			m.cells[r][c].architecture = arch
		}
	}
	if !m.size.Contains(entry) {
		return nil, fmt.Errorf("entry %v: %w", entry, ErrOutOfBounds)
	}
	return m, nil
}

// Size is the floor's extent.
func (m *Map) Size() geom.Size { return m.size }

// Entry is the fixed position where creatures arriving on this floor land.
func (m *Map) Entry() geom.Position { return m.entry }

func (m *Map) cell(p geom.Position) (*cell, error) {
	if !m.size.Contains(p) {
		return nil, fmt.Errorf("%v outside %dx%d: %w", p, m.size.Rows, m.size.Cols, ErrOutOfBounds)
	}
	return &m.cells[p.Row][p.Col], nil
}

// Tile returns a snapshot of everything at p.
func (m *Map) Tile(p geom.Position) (Tile, error) {
	c, err := m.cell(p)
	if err != nil {
		return Tile{}, err
	}
	return newTile(p, c), nil
}

// Position returns where t is. Architecture is never indexed.
func (m *Map) Position(t *things.Thing) (geom.Position, error) {
	p, ok := m.index[t.ID()]
	if !ok {
		return geom.Position{}, fmt.Errorf("find %v: %w", t, ErrNotFound)
	}
	return p, nil
}

// Find returns the tile holding t.
func (m *Map) Find(t *things.Thing) (Tile, error) {
	p, err := m.Position(t)
	if err != nil {
		return Tile{}, err
	}
	return m.Tile(p)
}

// Contains reports whether t is on this floor.
func (m *Map) Contains(t *things.Thing) bool {
	_, ok := m.index[t.ID()]
	return ok
}

// Put places a creature or item at p.
func (m *Map) Put(t *things.Thing, p geom.Position) error {
	c, err := m.cell(p)
	if err != nil {
		return err
	}
	if _, ok := m.index[t.ID()]; ok {
		return fmt.Errorf("put %v: %w", t, ErrAlreadyPlaced)
	}
	switch t.Class() {
	case things.Creature:
		if c.creature != nil {
			return fmt.Errorf("put %v at %v over %v: %w", t, p, c.creature, ErrOccupied)
		}
		c.creature = t
	case things.Item:
		c.items = append(c.items, t)
	case things.Architecture:
		return fmt.Errorf("put %v: %w", t, ErrNotPlaceable)
	}
	m.index[t.ID()] = p
	return nil
}

// Remove takes t off the floor.
func (m *Map) Remove(t *things.Thing) error {
	p, err := m.Position(t)
	if err != nil {
		return err
	}
	c := &m.cells[p.Row][p.Col]
	switch t.Class() {
	case things.Creature:
		if c.creature == nil || c.creature.ID() != t.ID() {
			panic(fmt.Sprintf("floor: index says %v is at %v but the tile disagrees", t, p))
		}
		c.creature = nil
	case things.Item:
		i := indexOf(c.items, t)
		if i < 0 {
			panic(fmt.Sprintf("floor: index says %v is at %v but the tile disagrees", t, p))
		}
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
	delete(m.index, t.ID())
	return nil
}

// CanMove resolves target against actor's position and reports where the
// actor would end up. It fails with ErrCollision if any occupant of the
// destination refuses the actor. A move to the current position is allowed.
func (m *Map) CanMove(actor *things.Thing, target geom.Target) (geom.Position, error) {
	from, err := m.Position(actor)
	if err != nil {
		return geom.Position{}, err
	}
	to := target.RelativeTo(from)
	c, err := m.cell(to)
	if err != nil {
		return geom.Position{}, err
	}
	if to == from {
		return to, nil
	}
	for _, occupant := range newTile(to, c).Things() {
		if !occupant.CanBeMovedOnto(actor) {
			return geom.Position{}, fmt.Errorf("move %v to %v blocked by %v: %w", actor, to, occupant, ErrCollision)
		}
	}
	return to, nil
}

// Move relocates actor to target, which is a Position or an Offset from the
// actor. Moving to the current position does nothing. After a successful
// move every other occupant of the destination is told the actor arrived.
func (m *Map) Move(actor *things.Thing, target geom.Target) (Tile, error) {
	from, err := m.Position(actor)
	if err != nil {
		return Tile{}, err
	}
	to, err := m.CanMove(actor, target)
	if err != nil {
		return Tile{}, err
	}
	if to == from {
		return m.Tile(to)
	}

	if err := m.Remove(actor); err != nil {
		return Tile{}, err
	}
	if err := m.Put(actor, to); err != nil {
		// CanMove already ruled this out; put the actor back before failing.
		if putErr := m.Put(actor, from); putErr != nil {
			panic(fmt.Sprintf("floor: lost %v while moving: %v", actor, putErr))
		}
		return Tile{}, err
	}

	tile, err := m.Tile(to)
	if err != nil {
		return Tile{}, err
	}
	for _, occupant := range tile.Things() {
		if occupant.ID() != actor.ID() {
			occupant.TriggerMovedOnto(actor)
		}
	}
	return tile, nil
}

// DistanceBetween returns the offset from a's position to b's.
func (m *Map) DistanceBetween(a, b *things.Thing) (geom.Offset, error) {
	pa, err := m.Position(a)
	if err != nil {
		return geom.Offset{}, err
	}
	pb, err := m.Position(b)
	if err != nil {
		return geom.Offset{}, err
	}
	return pb.Sub(pa), nil
}

// Creatures returns every creature on the floor in row-major order of
// their tiles.
func (m *Map) Creatures() []*things.Thing {
	var out []*things.Thing
	m.size.Each(func(p geom.Position) {
		if c := m.cells[p.Row][p.Col].creature; c != nil {
			out = append(out, c)
		}
	})
	return out
}

// Validate checks that the grid and the index agree: every indexed thing is
// on its indexed tile, and every tile occupant is indexed exactly once.
func (m *Map) Validate() error {
	seen := make(map[things.ID]geom.Position, len(m.index))
	var err error
	m.size.Each(func(p geom.Position) {
		if err != nil {
			return
		}
		c := &m.cells[p.Row][p.Col]
		if c.architecture == nil {
			err = fmt.Errorf("no architecture at %v: %w", p, ErrMalformed)
			return
		}
		occupants := append([]*things.Thing{}, c.items...)
		if c.creature != nil {
			occupants = append(occupants, c.creature)
		}
		for _, t := range occupants {
			if prev, dup := seen[t.ID()]; dup {
				err = fmt.Errorf("%v on both %v and %v: %w", t, prev, p, ErrMalformed)
				return
			}
			seen[t.ID()] = p
			if ip, ok := m.index[t.ID()]; !ok || ip != p {
				err = fmt.Errorf("%v at %v indexed at %v (%v): %w", t, p, ip, ok, ErrMalformed)
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if len(seen) != len(m.index) {
		return fmt.Errorf("index holds %d things, tiles hold %d: %w", len(m.index), len(seen), ErrMalformed)
	}
	return nil
}

func indexOf(list []*things.Thing, t *things.Thing) int {
	for i, it := range list {
		if it.ID() == t.ID() {
			return i
		}
	}
	return -1
}
