package fractor

import (
	"fmt"

	"github.com/eevee/raidne/engine/floor"
	"github.com/eevee/raidne/engine/geom"
	"github.com/eevee/raidne/engine/things"
)

// RoomFractor generates a single walled room with a staircase down in the
// middle, a potion and a newt. The entry is the room's top-left cell.
type RoomFractor struct {
	Size     geom.Size
	Catalog  *things.Catalog
	UpStairs bool // put a staircase up on the entry
}

// Generate implements Fractor.
func (f RoomFractor) Generate() (*floor.Map, error) {
	if f.Size.Rows < 5 || f.Size.Cols < 5 {
		return nil, fmt.Errorf("room fractor %dx%d: too small: %w", f.Size.Rows, f.Size.Cols, ErrInvariant)
	}
	c, err := NewCanvas(f.Size)
	if err != nil {
		return nil, err
	}
	room := geom.Bx(1, 1, f.Size.Cols-2, f.Size.Rows-2)
	if err := c.AddBox(room); err != nil {
		return nil, err
	}
	entry := room.TopLeft()
	if err := placeStairs(c, room, entry, f.UpStairs); err != nil {
		return nil, err
	}
	m, err := c.ToMap(f.Catalog, entry)
	if err != nil {
		return nil, err
	}

	// One of each, at fixed spots away from the entry.
	potion := geom.Pos(room.Y+1, room.X+2)
	newt := geom.Pos(room.Y+1, room.Right()-2)
	if err := m.Put(f.Catalog.New(things.Potion), potion); err != nil {
		return nil, err
	}
	if err := m.Put(f.Catalog.New(things.Newt), newt); err != nil {
		return nil, err
	}
	return m, nil
}

// BSPFractor generates a Rogue-like floor by binary space partitioning: the
// canvas is split recursively, each leaf gets one room, and sibling subtrees
// are joined by corridors.
type BSPFractor struct {
	Size         geom.Size
	MinPartition int // smallest edge a partition may have; at least 4
	Catalog      *things.Catalog
	Rand         Rand
	UpStairs     bool

	// Spawns is how many creatures and items to sprinkle. Zero means one per
	// room.
	Spawns int
}

// Generate implements Fractor.
func (f BSPFractor) Generate() (*floor.Map, error) {
	c, entry, err := f.draw()
	if err != nil {
		return nil, err
	}
	m, err := c.ToMap(f.Catalog, entry)
	if err != nil {
		return nil, err
	}
	rooms := c.Rooms()
	spawns := f.Spawns
	if spawns == 0 {
		spawns = len(rooms)
	}
	if err := populate(m, rooms, f.Catalog, f.Rand, spawns); err != nil {
		return nil, err
	}
	return m, nil
}

// draw lays out rooms, corridors and stairs, and returns the entry.
func (f BSPFractor) draw() (*WorldCanvas, geom.Position, error) {
	if f.MinPartition < 4 {
		return nil, geom.Position{}, fmt.Errorf("bsp fractor: min partition %d below 4: %w", f.MinPartition, ErrInvariant)
	}
	if f.Size.Rows < f.MinPartition || f.Size.Cols < f.MinPartition {
		return nil, geom.Position{}, fmt.Errorf("bsp fractor %dx%d: smaller than min partition %d: %w",
			f.Size.Rows, f.Size.Cols, f.MinPartition, ErrInvariant)
	}
	c, err := NewCanvas(f.Size)
	if err != nil {
		return nil, geom.Position{}, err
	}
	if _, err := f.split(c); err != nil {
		return nil, geom.Position{}, err
	}
	rooms := c.Rooms()
	entry := rooms[0].TopLeft()
	if err := placeStairs(c, rooms[len(rooms)-1], entry, f.UpStairs); err != nil {
		return nil, geom.Position{}, err
	}
	return c, entry, nil
}

// split partitions c, carving a room in every leaf, and returns the rooms of
// this subtree in carving order.
func (f BSPFractor) split(c *WorldCanvas) ([]geom.Box, error) {
	b := c.Box()
	canCols := b.Width >= 2*f.MinPartition
	canRows := b.Height >= 2*f.MinPartition

	var first, second *WorldCanvas
	var err error
	switch {
	case canCols && (b.Width >= b.Height || !canRows):
		first, second, err = c.PartitionVert(f.splitPoint(b.Width))
	case canRows:
		first, second, err = c.PartitionHorz(f.splitPoint(b.Height))
	default:
		room, err := f.carveRoom(c)
		if err != nil {
			return nil, err
		}
		return []geom.Box{room}, nil
	}
	if err != nil {
		return nil, err
	}

	a, err := f.split(first)
	if err != nil {
		return nil, err
	}
	z, err := f.split(second)
	if err != nil {
		return nil, err
	}
	from := a[f.Rand.Intn(len(a))].Center()
	to := z[f.Rand.Intn(len(z))].Center()
	if err := c.AddCorridor(from, to); err != nil {
		return nil, err
	}
	return append(a, z...), nil
}

// splitPoint picks where to cut an edge of length n so both sides keep at
// least MinPartition.
func (f BSPFractor) splitPoint(n int) int {
	return f.MinPartition + f.Rand.Intn(n-2*f.MinPartition+1)
}

// carveRoom shrinks the leaf by a random margin of at least one on every side
// and declares the result as a room. Rooms are at least 2x2.
func (f BSPFractor) carveRoom(c *WorldCanvas) (geom.Box, error) {
	leaf, err := c.Box().Expand(-1)
	if err != nil {
		return geom.Box{}, err
	}
	w := f.span(leaf.Width)
	h := f.span(leaf.Height)
	room := geom.Bx(
		leaf.X+f.Rand.Intn(leaf.Width-w+1),
		leaf.Y+f.Rand.Intn(leaf.Height-h+1),
		w, h,
	)
	return room, c.AddBox(room)
}

// span picks a room edge between half the available length and all of it.
func (f BSPFractor) span(avail int) int {
	lo := max(2, avail/2)
	return lo + f.Rand.Intn(avail-lo+1)
}

// placeStairs puts a staircase down in the centre of room and, if asked, a
// staircase up on the entry. A room of at least 2x2 never has its centre on
// its top-left cell.
func placeStairs(c *WorldCanvas, room geom.Box, entry geom.Position, up bool) error {
	if up {
		if err := c.Fixture(entry, things.StaircaseUp); err != nil {
			return err
		}
	}
	down := room.Center()
	if down == entry {
		return fmt.Errorf("staircase down on entry %v: %w", entry, ErrInvariant)
	}
	return c.Fixture(down, things.StaircaseDown)
}

// populate sprinkles n spawnable creatures and items over the rooms, chosen
// by spawn weight. Nothing lands on the entry, and a creature never lands on
// another. A spawn with no free cell after a few tries is dropped.
func populate(m *floor.Map, rooms []geom.Box, cat *things.Catalog, rng Rand, n int) error {
	protos := append(cat.Spawnable(things.Creature), cat.Spawnable(things.Item)...)
	if len(protos) == 0 {
		return nil
	}
	weights := make([]int, len(protos))
	for i, p := range protos {
		weights[i] = p.SpawnWeight
	}

	const tries = 8
	for i := 0; i < n; i++ {
		kind := protos[rng.WeightedSelect(weights)].Kind
		for try := 0; try < tries; try++ {
			room := rooms[rng.Intn(len(rooms))]
			p := geom.Pos(room.Y+rng.Intn(room.Height), room.X+rng.Intn(room.Width))
			if p == m.Entry() {
				continue
			}
			tile, err := m.Tile(p)
			if err != nil {
				return err
			}
			if kind.Class() == things.Creature && tile.Creature != nil {
				continue
			}
			if err := m.Put(cat.New(kind), p); err != nil {
				return fmt.Errorf("spawn %v at %v: %w", kind, p, err)
			}
			break
		}
	}
	return nil
}
