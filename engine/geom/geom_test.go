package geom_test

import (
	"testing"

	. "github.com/eevee/raidne/engine/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize_Contains(t *testing.T) {
	size := Size{Rows: 3, Cols: 5}
	for row := -2; row < 6; row++ {
		for col := -2; col < 8; col++ {
			want := 0 <= row && row < 3 && 0 <= col && col < 5
			assert.Equal(t, want, size.Contains(Pos(row, col)), "position (%d,%d)", row, col)
		}
	}
}

func TestSize_Each_RowMajor(t *testing.T) {
	var got []Position
	Size{Rows: 2, Cols: 2}.Each(func(p Position) { got = append(got, p) })
	assert.Equal(t, []Position{Pos(0, 0), Pos(0, 1), Pos(1, 0), Pos(1, 1)}, got)
}

func TestOffset_RelativeTo(t *testing.T) {
	assert.Equal(t, Pos(1, 2), Off(0, 1).RelativeTo(Pos(1, 1)))
	assert.Equal(t, Pos(-1, 0), Off(-2, -1).RelativeTo(Pos(1, 1)), "offsets are not bounds-checked")
	assert.Equal(t, Pos(7, 7), Pos(7, 7).RelativeTo(Pos(1, 1)), "positions resolve to themselves")
}

func TestOffset_StepLength(t *testing.T) {
	tests := []struct {
		off  Offset
		want int
	}{
		{Off(0, 0), 0},
		{Off(0, 1), 1},
		{Off(-1, 1), 1},
		{Off(2, -1), 2},
		{Off(-3, -5), 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.off.StepLength(), "offset %v", tt.off)
	}
}

func TestPosition_Sub(t *testing.T) {
	a, b := Pos(2, 3), Pos(5, 1)
	assert.Equal(t, Off(3, -2), b.Sub(a))
	assert.Equal(t, b, a.Add(b.Sub(a)))
}

func TestBox_Contains(t *testing.T) {
	outer := Bx(0, 0, 10, 10)
	assert.True(t, outer.Contains(Bx(0, 0, 10, 10)))
	assert.True(t, outer.Contains(Bx(2, 3, 4, 4)))
	assert.False(t, outer.Contains(Bx(8, 8, 3, 1)))
	assert.False(t, outer.Contains(Bx(-1, 0, 2, 2)))
}

func TestBox_Overlaps(t *testing.T) {
	a := Bx(0, 0, 4, 4)
	tests := []struct {
		name  string
		other Box
		want  bool
	}{
		{"same", Bx(0, 0, 4, 4), true},
		{"inside", Bx(1, 1, 1, 1), true},
		{"corner", Bx(3, 3, 4, 4), true},
		{"touching right edge", Bx(4, 0, 4, 4), false},
		{"touching bottom edge", Bx(0, 4, 4, 4), false},
		{"far away", Bx(10, 10, 1, 1), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, a.Overlaps(tt.other), tt.name)
		assert.Equal(t, tt.want, tt.other.Overlaps(a), tt.name+" (swapped)")
	}
}

func TestBox_Expand(t *testing.T) {
	b := Bx(2, 2, 6, 4)

	grown, err := b.Expand(1)
	require.NoError(t, err)
	assert.Equal(t, Bx(1, 1, 8, 6), grown)

	shrunk, err := b.Expand(-1)
	require.NoError(t, err)
	assert.Equal(t, Bx(3, 3, 4, 2), shrunk)

	_, err = b.Expand(-2)
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestBox_Each(t *testing.T) {
	n := 0
	Bx(3, 1, 2, 3).Each(func(p Position) {
		assert.True(t, Bx(3, 1, 2, 3).ContainsPosition(p))
		n++
	})
	assert.Equal(t, 6, n)
}
