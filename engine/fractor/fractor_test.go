package fractor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eevee/raidne/engine"
	"github.com/eevee/raidne/engine/floor"
	. "github.com/eevee/raidne/engine/fractor"
	"github.com/eevee/raidne/engine/geom"
	"github.com/eevee/raidne/engine/things"
)

func newCanvas(t *testing.T, rows, cols int) *WorldCanvas {
	t.Helper()
	c, err := NewCanvas(geom.Size{Rows: rows, Cols: cols})
	require.NoError(t, err)
	return c
}

func TestCanvas_Subcanvas(t *testing.T) {
	c := newCanvas(t, 20, 30)

	sub, err := c.Subcanvas(geom.Bx(5, 2, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, geom.Bx(5, 2, 10, 10), sub.Box())

	nested, err := sub.Subcanvas(geom.Bx(1, 1, 3, 3))
	require.NoError(t, err)
	assert.Equal(t, geom.Bx(6, 3, 3, 3), nested.Box(), "nested subcanvas is offset by both parents")

	_, err = sub.Subcanvas(geom.Bx(8, 0, 5, 5))
	assert.ErrorIs(t, err, ErrInvariant, "subcanvas past the parent's edge")
	_, err = c.Subcanvas(geom.Bx(0, 0, 0, 5))
	assert.ErrorIs(t, err, ErrInvariant, "empty subcanvas")
}

func TestCanvas_Partition(t *testing.T) {
	c := newCanvas(t, 40, 120)

	left, right, err := c.PartitionVert(30)
	require.NoError(t, err)
	assert.Equal(t, geom.Bx(0, 0, 30, 40), left.Box())
	assert.Equal(t, geom.Bx(30, 0, 90, 40), right.Box())

	top, bottom, err := right.PartitionHorz(15)
	require.NoError(t, err)
	assert.Equal(t, geom.Bx(30, 0, 90, 15), top.Box())
	assert.Equal(t, geom.Bx(30, 15, 90, 25), bottom.Box())

	for _, at := range []int{0, 120, -1} {
		_, _, err := c.PartitionVert(at)
		assert.ErrorIs(t, err, ErrInvariant, "split at %d", at)
	}
}

func TestCanvas_AddBox(t *testing.T) {
	c := newCanvas(t, 40, 120)
	left, right, err := c.PartitionVert(30)
	require.NoError(t, err)

	inner, err := left.Box().Expand(-2)
	require.NoError(t, err)
	require.NoError(t, left.AddBox(inner))
	inner, err = right.Box().Expand(-2)
	require.NoError(t, err)
	require.NoError(t, right.AddBox(inner))

	assert.Len(t, c.Rooms(), 2, "boxes on subcanvases land on the shared sheet")

	assert.ErrorIs(t, left.AddBox(geom.Bx(25, 5, 10, 5)), ErrInvariant, "box crossing the subcanvas edge")
	assert.ErrorIs(t, c.AddBox(geom.Bx(10, 10, 5, 5)), ErrInvariant, "box overlapping a room")
	assert.NoError(t, c.AddBox(geom.Bx(0, 0, 2, 2)), "box touching nothing")
	assert.Len(t, c.Rooms(), 3)
}

func TestCanvas_AddCorridor(t *testing.T) {
	c := newCanvas(t, 10, 10)
	require.NoError(t, c.AddCorridor(geom.Pos(2, 7), geom.Pos(6, 3)))
	assert.Equal(t, []geom.Box{geom.Bx(3, 2, 5, 1), geom.Bx(3, 2, 1, 5)}, c.Corridors())

	assert.ErrorIs(t, c.AddCorridor(geom.Pos(0, 0), geom.Pos(10, 0)), ErrInvariant)
}

func TestCanvas_ToMap(t *testing.T) {
	cat := things.DefaultCatalog()
	c := newCanvas(t, 6, 8)
	require.NoError(t, c.AddBox(geom.Bx(1, 1, 2, 2)))
	require.NoError(t, c.AddBox(geom.Bx(5, 3, 2, 2)))
	require.NoError(t, c.AddCorridor(geom.Pos(1, 2), geom.Pos(3, 5)))
	require.NoError(t, c.Fixture(geom.Pos(4, 6), things.StaircaseDown))

	m, err := c.ToMap(cat, geom.Pos(1, 1))
	require.NoError(t, err)

	// Two rooms joined along row 1 and down column 5.
	want := []string{
		"########",
		"#.....##",
		"#..##.##",
		"#####..#",
		"#####.>#",
		"########",
	}
	assert.Equal(t, want, render(t, m))
	assert.Equal(t, geom.Pos(1, 1), m.Entry())

	_, err = c.ToMap(cat, geom.Pos(0, 0))
	assert.ErrorIs(t, err, ErrInvariant, "entry on a wall")
	assert.ErrorIs(t, c.Fixture(geom.Pos(0, 0), things.StaircaseUp), ErrInvariant, "fixture on a wall")
	assert.ErrorIs(t, c.Fixture(geom.Pos(1, 1), things.Potion), ErrInvariant, "fixture that isn't architecture")
}

func render(t *testing.T, m *floor.Map) []string {
	t.Helper()
	size := m.Size()
	rows := make([]string, size.Rows)
	for r := range rows {
		line := make([]byte, size.Cols)
		for c := range line {
			tile, err := m.Tile(geom.Pos(r, c))
			require.NoError(t, err)
			switch tile.Architecture.Kind() {
			case things.Wall:
				line[c] = '#'
			case things.StaircaseDown:
				line[c] = '>'
			case things.StaircaseUp:
				line[c] = '<'
			default:
				line[c] = '.'
			}
		}
		rows[r] = string(line)
	}
	return rows
}

func TestRoomFractor(t *testing.T) {
	cat := things.DefaultCatalog()
	m, err := RoomFractor{Size: geom.Size{Rows: 10, Cols: 20}, Catalog: cat}.Generate()
	require.NoError(t, err)

	assert.Equal(t, geom.Pos(1, 1), m.Entry())
	var stairs, potions, newts int
	m.Size().Each(func(p geom.Position) {
		tile, err := m.Tile(p)
		require.NoError(t, err)
		onEdge := p.Row == 0 || p.Col == 0 || p.Row == 9 || p.Col == 19
		assert.Equal(t, onEdge, tile.Architecture.Kind() == things.Wall, "wall at %v", p)
		if tile.Architecture.Kind() == things.StaircaseDown {
			stairs++
		}
		for _, it := range tile.Items() {
			if it.Kind() == things.Potion {
				potions++
			}
		}
		if tile.Creature != nil && tile.Creature.Kind() == things.Newt {
			newts++
		}
	})
	assert.Equal(t, 1, stairs)
	assert.Equal(t, 1, potions)
	assert.Equal(t, 1, newts)
	assert.NoError(t, m.Validate())

	_, err = RoomFractor{Size: geom.Size{Rows: 3, Cols: 3}, Catalog: cat}.Generate()
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestBSPFractor_Layout(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		cat := things.DefaultCatalog()
		f := BSPFractor{
			Size:         geom.Size{Rows: 40, Cols: 80},
			MinPartition: 8,
			Catalog:      cat,
			Rand:         engine.NewRNG(seed),
			UpStairs:     true,
		}
		c, entry, err := f.Draw()
		require.NoError(t, err, "seed %d", seed)
		m, err := c.ToMap(cat, entry)
		require.NoError(t, err, "seed %d", seed)

		rooms := c.Rooms()
		require.NotEmpty(t, rooms)
		assert.Greater(t, len(rooms), 1, "seed %d: an 80x40 canvas always splits", seed)

		for i, a := range rooms {
			assert.True(t, c.Box().Contains(a), "seed %d: room %v outside canvas", seed, a)
			for _, b := range rooms[i+1:] {
				assert.False(t, a.Overlaps(b), "seed %d: %v overlaps %v", seed, a, b)
			}
		}

		corridors := c.Corridors()
		m.Size().Each(func(p geom.Position) {
			tile, err := m.Tile(p)
			require.NoError(t, err)
			require.NotNil(t, tile.Architecture, "seed %d: %v has no architecture", seed, p)

			inRoom := false
			for _, r := range rooms {
				inRoom = inRoom || r.ContainsPosition(p)
			}
			inCorridor := false
			for _, b := range corridors {
				inCorridor = inCorridor || b.ContainsPosition(p)
			}
			isWall := tile.Architecture.Kind() == things.Wall
			if inRoom {
				assert.False(t, isWall, "seed %d: room cell %v is wall", seed, p)
			}
			if !inRoom && !inCorridor {
				assert.True(t, isWall, "seed %d: uncarved cell %v is open", seed, p)
			}
		})

		up, err := m.Tile(m.Entry())
		require.NoError(t, err)
		assert.Equal(t, things.StaircaseUp, up.Architecture.Kind())
		assert.Equal(t, rooms[0].TopLeft(), m.Entry())
		down, err := m.Tile(rooms[len(rooms)-1].Center())
		require.NoError(t, err)
		assert.Equal(t, things.StaircaseDown, down.Architecture.Kind())
	}
}

func TestBSPFractor_Deterministic(t *testing.T) {
	gen := func() []string {
		m, err := BSPFractor{
			Size:         geom.Size{Rows: 30, Cols: 60},
			MinPartition: 6,
			Catalog:      things.DefaultCatalog(),
			Rand:         engine.NewRNG(42),
		}.Generate()
		require.NoError(t, err)
		return render(t, m)
	}
	assert.Equal(t, gen(), gen())
}

func TestBSPFractor_Population(t *testing.T) {
	cat := things.DefaultCatalog()
	m, err := BSPFractor{
		Size:         geom.Size{Rows: 40, Cols: 80},
		MinPartition: 8,
		Catalog:      cat,
		Rand:         engine.NewRNG(7),
		Spawns:       30,
	}.Generate()
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	entry, err := m.Tile(m.Entry())
	require.NoError(t, err)
	assert.Nil(t, entry.Creature, "nothing spawns on the entry")
	assert.Empty(t, entry.Items(), "nothing spawns on the entry")

	spawned := 0
	m.Size().Each(func(p geom.Position) {
		tile, _ := m.Tile(p)
		for _, th := range tile.Things() {
			if th.Class() == things.Architecture {
				continue
			}
			spawned++
			assert.NotEqual(t, things.Wall, tile.Architecture.Kind(), "%v spawned in a wall", th)
			assert.False(t, th.IsPlayer(), "player is never spawned")
		}
	})
	assert.Greater(t, spawned, 0)
	assert.LessOrEqual(t, spawned, 30)
}

func TestBSPFractor_RejectsBadConfig(t *testing.T) {
	cat := things.DefaultCatalog()
	tests := []struct {
		name string
		f    BSPFractor
	}{
		{"min partition too small", BSPFractor{Size: geom.Size{Rows: 20, Cols: 20}, MinPartition: 3}},
		{"floor smaller than a partition", BSPFractor{Size: geom.Size{Rows: 5, Cols: 40}, MinPartition: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.f.Catalog = cat
			tt.f.Rand = engine.NewRNG(1)
			m, err := tt.f.Generate()
			assert.ErrorIs(t, err, ErrInvariant)
			assert.Nil(t, m, "no partial floor on failure")
		})
	}
}
