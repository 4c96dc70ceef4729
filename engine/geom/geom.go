// Package geom holds the plain value types used to address a dungeon floor:
// positions, offsets between them, floor sizes, and generation boxes.
package geom

import "fmt"

// Target is anything a move can be aimed at. Positions are absolute and
// resolve to themselves; offsets resolve against the mover's position.
type Target interface {
	RelativeTo(origin Position) Position
}

// Position is a cell on a floor.
type Position struct {
	Row, Col int
}

// Pos is a convenience constructor for Position.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// RelativeTo returns p unchanged; it lets a Position stand in for a Target.
func (p Position) RelativeTo(Position) Position {
	return p
}

// Add returns p shifted by o. The result is not bounds-checked.
func (p Position) Add(o Offset) Position {
	return Position{Row: p.Row + o.DRow, Col: p.Col + o.DCol}
}

// Sub returns the offset that takes q to p.
func (p Position) Sub(q Position) Offset {
	return Offset{DRow: p.Row - q.Row, DCol: p.Col - q.Col}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Offset is a signed distance between two positions.
type Offset struct {
	DRow, DCol int
}

// Off is a convenience constructor for Offset.
func Off(drow, dcol int) Offset {
	return Offset{DRow: drow, DCol: dcol}
}

// The four orthogonal single steps, in the order the AI considers them.
var (
	North = Offset{DRow: -1}
	South = Offset{DRow: 1}
	West  = Offset{DCol: -1}
	East  = Offset{DCol: 1}
)

// Orthogonal lists the four orthogonal neighbour offsets.
var Orthogonal = [4]Offset{North, East, South, West}

// RelativeTo applies the offset to origin.
func (o Offset) RelativeTo(origin Position) Position {
	return origin.Add(o)
}

// Add sums two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{DRow: o.DRow + other.DRow, DCol: o.DCol + other.DCol}
}

// StepLength is the Chebyshev length of the offset: the larger of the
// absolute row and column deltas.
func (o Offset) StepLength() int {
	return max(abs(o.DRow), abs(o.DCol))
}

// IsZero reports whether the offset goes nowhere.
func (o Offset) IsZero() bool {
	return o.DRow == 0 && o.DCol == 0
}

func (o Offset) String() string {
	return fmt.Sprintf("%+d,%+d", o.DRow, o.DCol)
}

// Size is the extent of a floor.
type Size struct {
	Rows, Cols int
}

// Contains reports whether p lies inside the half-open extent
// [0,Rows) x [0,Cols).
func (s Size) Contains(p Position) bool {
	return 0 <= p.Row && p.Row < s.Rows && 0 <= p.Col && p.Col < s.Cols
}

// Area is the number of cells covered.
func (s Size) Area() int {
	return s.Rows * s.Cols
}

// Each calls fn for every position in row-major order.
func (s Size) Each(fn func(Position)) {
	for row := 0; row < s.Rows; row++ {
		for col := 0; col < s.Cols; col++ {
			fn(Position{Row: row, Col: col})
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
