// Package fractor generates floors. A Fractor draws rooms and corridors as
// abstract boxes on a WorldCanvas, checks them against each other, and only
// then turns the canvas into a populated floor.Map.
package fractor

import (
	"errors"
	"fmt"

	"github.com/eevee/raidne/engine/floor"
	"github.com/eevee/raidne/engine/geom"
	"github.com/eevee/raidne/engine/things"
)

// ErrInvariant is returned when generation would break one of its own rules,
// such as a room outside its canvas or two overlapping rooms. No Map is
// produced when it occurs.
var ErrInvariant = errors.New("generation invariant violated")

// Fractor builds one floor.
type Fractor interface {
	Generate() (*floor.Map, error)
}

// Rand is the random source generation draws from. engine.RNG satisfies it.
type Rand interface {
	Intn(n int) int
	WeightedSelect(weights []int) int
}

// sheet is the drawing shared by a canvas and all of its subcanvases.
type sheet struct {
	size      geom.Size
	rooms     []geom.Box
	corridors []geom.Box
	fixtures  map[geom.Position]things.Kind
}

// WorldCanvas is scratch space for generation. A subcanvas covers part of
// its parent; boxes drawn on any of them land on the same sheet, in absolute
// coordinates.
type WorldCanvas struct {
	box   geom.Box
	sheet *sheet
}

// NewCanvas returns an empty canvas covering size.
func NewCanvas(size geom.Size) (*WorldCanvas, error) {
	if size.Rows <= 0 || size.Cols <= 0 {
		return nil, fmt.Errorf("canvas %dx%d: %w", size.Rows, size.Cols, ErrInvariant)
	}
	return &WorldCanvas{
		box:   geom.Bx(0, 0, size.Cols, size.Rows),
		sheet: &sheet{size: size, fixtures: map[geom.Position]things.Kind{}},
	}, nil
}

// Box is the canvas's extent in absolute coordinates.
func (c *WorldCanvas) Box() geom.Box { return c.box }

// Subcanvas carves out part of c. b is relative to c's top-left corner and
// must lie within it.
func (c *WorldCanvas) Subcanvas(b geom.Box) (*WorldCanvas, error) {
	abs := b.Offset(c.box.X, c.box.Y)
	if b.Width <= 0 || b.Height <= 0 || !c.box.Contains(abs) {
		return nil, fmt.Errorf("subcanvas %v of %v: %w", b, c.box, ErrInvariant)
	}
	return &WorldCanvas{box: abs, sheet: c.sheet}, nil
}

// PartitionVert splits c into a left part `at` columns wide and a right part
// holding the rest.
func (c *WorldCanvas) PartitionVert(at int) (left, right *WorldCanvas, err error) {
	if at <= 0 || at >= c.box.Width {
		return nil, nil, fmt.Errorf("split %v at column %d: %w", c.box, at, ErrInvariant)
	}
	if left, err = c.Subcanvas(geom.Bx(0, 0, at, c.box.Height)); err != nil {
		return nil, nil, err
	}
	if right, err = c.Subcanvas(geom.Bx(at, 0, c.box.Width-at, c.box.Height)); err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// PartitionHorz splits c into a top part `at` rows tall and a bottom part
// holding the rest.
func (c *WorldCanvas) PartitionHorz(at int) (top, bottom *WorldCanvas, err error) {
	if at <= 0 || at >= c.box.Height {
		return nil, nil, fmt.Errorf("split %v at row %d: %w", c.box, at, ErrInvariant)
	}
	if top, err = c.Subcanvas(geom.Bx(0, 0, c.box.Width, at)); err != nil {
		return nil, nil, err
	}
	if bottom, err = c.Subcanvas(geom.Bx(0, at, c.box.Width, c.box.Height-at)); err != nil {
		return nil, nil, err
	}
	return top, bottom, nil
}

// AddBox declares a room. b is in absolute coordinates, must lie within c,
// and must not overlap any room already on the sheet.
func (c *WorldCanvas) AddBox(b geom.Box) error {
	if b.Width <= 0 || b.Height <= 0 || !c.box.Contains(b) {
		return fmt.Errorf("room %v outside %v: %w", b, c.box, ErrInvariant)
	}
	for _, other := range c.sheet.rooms {
		if b.Overlaps(other) {
			return fmt.Errorf("room %v overlaps %v: %w", b, other, ErrInvariant)
		}
	}
	c.sheet.rooms = append(c.sheet.rooms, b)
	return nil
}

// AddCorridor carves a one-cell-wide L-shaped path from one cell to another:
// along from's row first, then along to's column. Corridors may cross rooms
// and each other.
func (c *WorldCanvas) AddCorridor(from, to geom.Position) error {
	if !c.box.ContainsPosition(from) || !c.box.ContainsPosition(to) {
		return fmt.Errorf("corridor %v -> %v outside %v: %w", from, to, c.box, ErrInvariant)
	}
	lo, hi := from.Col, to.Col
	if lo > hi {
		lo, hi = hi, lo
	}
	c.sheet.corridors = append(c.sheet.corridors, geom.Bx(lo, from.Row, hi-lo+1, 1))

	lo, hi = from.Row, to.Row
	if lo > hi {
		lo, hi = hi, lo
	}
	c.sheet.corridors = append(c.sheet.corridors, geom.Bx(to.Col, lo, 1, hi-lo+1))
	return nil
}

// Fixture replaces the carved floor at p with a piece of architecture, such
// as a staircase.
func (c *WorldCanvas) Fixture(p geom.Position, k things.Kind) error {
	if k.Class() != things.Architecture {
		return fmt.Errorf("fixture %v at %v: not architecture: %w", k, p, ErrInvariant)
	}
	if !c.box.ContainsPosition(p) || !c.carved(p) {
		return fmt.Errorf("fixture %v at %v: not on carved floor: %w", k, p, ErrInvariant)
	}
	c.sheet.fixtures[p] = k
	return nil
}

// Rooms returns the declared rooms in the order they were added.
func (c *WorldCanvas) Rooms() []geom.Box {
	return append([]geom.Box(nil), c.sheet.rooms...)
}

// Corridors returns the corridor segments in the order they were carved.
func (c *WorldCanvas) Corridors() []geom.Box {
	return append([]geom.Box(nil), c.sheet.corridors...)
}

func (c *WorldCanvas) carved(p geom.Position) bool {
	for _, b := range c.sheet.rooms {
		if b.ContainsPosition(p) {
			return true
		}
	}
	for _, b := range c.sheet.corridors {
		if b.ContainsPosition(p) {
			return true
		}
	}
	return false
}

// ToMap renders the whole sheet: wall everywhere, floor in rooms and
// corridors, and fixtures on top of that. entry must be carved.
func (c *WorldCanvas) ToMap(cat *things.Catalog, entry geom.Position) (*floor.Map, error) {
	s := c.sheet
	if !s.size.Contains(entry) || !c.carved(entry) {
		return nil, fmt.Errorf("entry %v not on carved floor: %w", entry, ErrInvariant)
	}

	kinds := make([][]things.Kind, s.size.Rows)
	for r := range kinds {
		kinds[r] = make([]things.Kind, s.size.Cols)
		for col := range kinds[r] {
			kinds[r][col] = things.Wall
		}
	}
	carve := func(p geom.Position) { kinds[p.Row][p.Col] = things.Floor }
	for _, b := range s.corridors {
		b.Each(carve)
	}
	for _, b := range s.rooms {
		b.Each(carve)
	}
	for p, k := range s.fixtures {
		kinds[p.Row][p.Col] = k
	}

	grid := make([][]*things.Thing, s.size.Rows)
	for r, row := range kinds {
		grid[r] = make([]*things.Thing, len(row))
		for col, k := range row {
			grid[r][col] = cat.New(k)
		}
	}
	m, err := floor.New(grid, entry)
	if err != nil {
		return nil, fmt.Errorf("render canvas: %w", err)
	}
	return m, nil
}
