package effects

import (
	"errors"
	"testing"

	"github.com/eevee/raidne/engine/floor"
	"github.com/eevee/raidne/engine/geom"
	"github.com/eevee/raidne/engine/things"
)

type testWorld struct {
	floors []*floor.Map
	depth  int
	msgs   []string
}

func (w *testWorld) Floor() *floor.Map { return w.floors[w.depth] }

func (w *testWorld) FloorBelow() (*floor.Map, bool) {
	if w.depth+1 >= len(w.floors) {
		return nil, false
	}
	return w.floors[w.depth+1], true
}

func (w *testWorld) Descend()        { w.depth++ }
func (w *testWorld) Post(msg string) { w.msgs = append(w.msgs, msg) }

func openFloor(t *testing.T, c *things.Catalog, rows, cols int) *floor.Map {
	t.Helper()
	grid := make([][]*things.Thing, rows)
	for r := range grid {
		grid[r] = make([]*things.Thing, cols)
		for col := range grid[r] {
			grid[r][col] = c.New(things.Floor)
		}
	}
	m, err := floor.New(grid, geom.Pos(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func testSetup(t *testing.T) (*testWorld, *things.Catalog, *things.Thing) {
	c := things.DefaultCatalog()
	w := &testWorld{floors: []*floor.Map{openFloor(t, c, 10, 10), openFloor(t, c, 10, 10)}}
	player := c.New(things.Player)
	if err := w.Floor().Put(player, geom.Pos(1, 1)); err != nil {
		t.Fatal(err)
	}
	return w, c, player
}

func expectMessages(t *testing.T, w *testWorld, want ...string) {
	t.Helper()
	if len(w.msgs) != len(want) {
		t.Fatalf("expected messages %q, got %q", want, w.msgs)
	}
	for i := range want {
		if w.msgs[i] != want[i] {
			t.Errorf("message %d: expected %q, got %q", i, want[i], w.msgs[i])
		}
	}
}

func TestDamage_Wounds(t *testing.T) {
	w, c, player := testSetup(t)
	newt := c.New(things.Newt)
	w.Floor().Put(newt, geom.Pos(1, 2))

	if _, err := Apply(w, []Targeted{On(Damage{Amount: 1, Source: player}, newt)}); err != nil {
		t.Fatal(err)
	}
	if newt.Health().Current != 2 {
		t.Errorf("expected 2 health, got %d", newt.Health().Current)
	}
	expectMessages(t, w, "You attack the newt!")
	if !w.Floor().Contains(newt) {
		t.Error("wounded newt should still be on the floor")
	}
}

func TestDamage_KillsAtZero(t *testing.T) {
	c, err := things.NewCatalog([]things.Prototype{
		{Kind: things.Newt, Name: "newt", MaxHealth: 1, Attack: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	w := &testWorld{floors: []*floor.Map{openFloor(t, c, 10, 10)}}
	newt := c.New(things.Newt)
	w.Floor().Put(newt, geom.Pos(4, 4))

	if _, err := Apply(w, []Targeted{On(Damage{Amount: 1}, newt)}); err != nil {
		t.Fatal(err)
	}
	if newt.Health().Current != 0 {
		t.Errorf("expected 0 health, got %d", newt.Health().Current)
	}
	expectMessages(t, w, "The newt takes 1 damage.", "The newt dies.")
	if _, err := w.Floor().Find(newt); !errors.Is(err, floor.ErrNotFound) {
		t.Errorf("expected dead newt gone, got %v", err)
	}
}

func TestDamage_Overkill_ClampsAtZero(t *testing.T) {
	w, c, player := testSetup(t)
	newt := c.New(things.Newt)
	w.Floor().Put(newt, geom.Pos(1, 2))
	Apply(w, []Targeted{On(Damage{Amount: 99, Source: player}, newt)})
	if newt.Health().Current != 0 {
		t.Errorf("expected 0, got %d", newt.Health().Current)
	}
	if w.Floor().Contains(newt) {
		t.Error("expected newt removed")
	}
}

func TestDamage_DeadTargetSkipped(t *testing.T) {
	w, c, player := testSetup(t)
	newt := c.New(things.Newt)
	w.Floor().Put(newt, geom.Pos(1, 2))

	batch := []Targeted{
		On(Damage{Amount: 3, Source: player}, newt),
		On(Damage{Amount: 3, Source: player}, newt),
	}
	trace, err := Apply(w, batch)
	if err != nil {
		t.Fatalf("expected soft skip, got %v", err)
	}
	if len(trace) != 2 {
		t.Fatalf("expected 2 trace lines, got %v", trace)
	}
	expectMessages(t, w, "You attack the newt!", "The newt dies.")

	if err := (Damage{Amount: 1}).Apply(w, newt); !errors.Is(err, floor.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHeal_ClampsAtMaximum(t *testing.T) {
	w, _, player := testSetup(t)
	player.ModifyHealth(-5)
	Apply(w, []Targeted{On(Heal{Amount: 3}, player)})
	if got := player.Health().Current; got != 18 {
		t.Errorf("expected 18, got %d", got)
	}
	Apply(w, []Targeted{On(Heal{Amount: 100}, player)})
	if got := player.Health(); got.Current != got.Maximum {
		t.Errorf("expected full health, got %s", got)
	}
	expectMessages(t, w, "You feel better.", "You feel better.")
}

func TestHealthStaysInRange(t *testing.T) {
	w, c, _ := testSetup(t)
	newt := c.New(things.Newt)
	w.Floor().Put(newt, geom.Pos(5, 5))
	amounts := []int{1, -4, 1, 2, -1, 7}
	for _, a := range amounts {
		var e Effect
		if a < 0 {
			e = Heal{Amount: -a}
		} else {
			e = Damage{Amount: a}
		}
		if !w.Floor().Contains(newt) {
			break
		}
		Apply(w, []Targeted{On(e, newt)})
		h := newt.Health()
		if h.Current < 0 || h.Current > h.Maximum {
			t.Fatalf("health out of range: %s", h)
		}
	}
}

func TestMessage(t *testing.T) {
	w, _, _ := testSetup(t)
	Apply(w, []Targeted{On(Message{Text: "Hello."}, nil)})
	expectMessages(t, w, "Hello.")
}

func TestRelocate(t *testing.T) {
	w, _, player := testSetup(t)
	if _, err := Apply(w, []Targeted{On(Relocate{To: geom.Pos(1, 2)}, player)}); err != nil {
		t.Fatal(err)
	}
	if p, _ := w.Floor().Position(player); p != geom.Pos(1, 2) {
		t.Errorf("expected (1,2), got %v", p)
	}
}

func TestTake(t *testing.T) {
	w, c, player := testSetup(t)
	potion := c.New(things.Potion)
	w.Floor().Put(potion, geom.Pos(1, 1))
	if _, err := Apply(w, []Targeted{On(Take{Taker: player}, potion)}); err != nil {
		t.Fatal(err)
	}
	if w.Floor().Contains(potion) {
		t.Error("potion still on the floor")
	}
	if !player.Carries(potion) {
		t.Error("potion not in inventory")
	}
}

func TestConsume(t *testing.T) {
	w, c, player := testSetup(t)
	potion := c.New(things.Potion)
	player.AddToInventory(potion)
	if _, err := Apply(w, []Targeted{On(Consume{Owner: player}, potion)}); err != nil {
		t.Fatal(err)
	}
	if player.Carries(potion) {
		t.Error("potion should be gone")
	}
}

func TestDescend(t *testing.T) {
	w, _, player := testSetup(t)
	upper := w.Floor()
	if _, err := Apply(w, []Targeted{On(Descend{}, player)}); err != nil {
		t.Fatal(err)
	}
	if w.depth != 1 {
		t.Errorf("expected depth 1, got %d", w.depth)
	}
	if upper.Contains(player) {
		t.Error("player still on the upper floor")
	}
	if p, err := w.Floor().Position(player); err != nil || p != w.Floor().Entry() {
		t.Errorf("expected player at entry, got %v (%v)", p, err)
	}

	_, err := Apply(w, []Targeted{On(Descend{}, player)})
	if !errors.Is(err, ErrNoFloorBelow) {
		t.Errorf("expected ErrNoFloorBelow, got %v", err)
	}
}

func TestDescend_EntryBlocked(t *testing.T) {
	w, c, player := testSetup(t)
	w.floors[1].Put(c.New(things.Newt), w.floors[1].Entry())
	_, err := Apply(w, []Targeted{On(Descend{}, player)})
	if !errors.Is(err, floor.ErrOccupied) {
		t.Errorf("expected ErrOccupied, got %v", err)
	}
	if !w.Floor().Contains(player) || w.depth != 0 {
		t.Error("failed descent must leave the player where they were")
	}
}

func TestSentence(t *testing.T) {
	tests := []struct {
		words []string
		want  string
	}{
		{[]string{"you", "die"}, "You die"},
		{[]string{"the newt", "attacks", "you"}, "The newt attacks you"},
		{[]string{"you"}, "You"},
	}
	for _, tt := range tests {
		if got := sentence(tt.words...); got != tt.want {
			t.Errorf("sentence(%q) = %q, want %q", tt.words, got, tt.want)
		}
	}
}
