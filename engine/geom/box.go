package geom

import (
	"errors"
	"fmt"
)

// ErrDegenerate is returned when a box operation would leave a box with no
// area.
var ErrDegenerate = errors.New("degenerate box")

// Box is an axis-aligned rectangle used while generating floors. X runs
// along columns and Y along rows; the box covers [X, X+Width) x [Y, Y+Height).
type Box struct {
	X, Y          int
	Width, Height int
}

// Bx is a convenience constructor for Box.
func Bx(x, y, width, height int) Box {
	return Box{X: x, Y: y, Width: width, Height: height}
}

// Right is the first column past the box.
func (b Box) Right() int { return b.X + b.Width }

// Bottom is the first row past the box.
func (b Box) Bottom() int { return b.Y + b.Height }

// Contains reports whether other lies entirely within b.
func (b Box) Contains(other Box) bool {
	return b.X <= other.X &&
		b.Y <= other.Y &&
		other.Right() <= b.Right() &&
		other.Bottom() <= b.Bottom()
}

// ContainsPosition reports whether the cell p lies inside b.
func (b Box) ContainsPosition(p Position) bool {
	return b.X <= p.Col && p.Col < b.Right() && b.Y <= p.Row && p.Row < b.Bottom()
}

// Overlaps reports whether the two boxes share any area. Boxes that only
// touch along an edge do not overlap.
func (b Box) Overlaps(other Box) bool {
	return b.X < other.Right() &&
		other.X < b.Right() &&
		b.Y < other.Bottom() &&
		other.Y < b.Bottom()
}

// Offset returns the box shifted by the given amounts.
func (b Box) Offset(dx, dy int) Box {
	b.X += dx
	b.Y += dy
	return b
}

// Expand grows every edge outward by amount; a negative amount shrinks it.
// The result must keep a positive width and height.
func (b Box) Expand(amount int) (Box, error) {
	out := Box{
		X:      b.X - amount,
		Y:      b.Y - amount,
		Width:  b.Width + 2*amount,
		Height: b.Height + 2*amount,
	}
	if out.Width <= 0 || out.Height <= 0 {
		return Box{}, fmt.Errorf("expand %v by %d: %w", b, amount, ErrDegenerate)
	}
	return out, nil
}

// Center is the cell nearest the middle of the box.
func (b Box) Center() Position {
	return Position{Row: b.Y + b.Height/2, Col: b.X + b.Width/2}
}

// TopLeft is the first cell of the box.
func (b Box) TopLeft() Position {
	return Position{Row: b.Y, Col: b.X}
}

// Each calls fn for every cell of the box in row-major order.
func (b Box) Each(fn func(Position)) {
	for row := b.Y; row < b.Bottom(); row++ {
		for col := b.X; col < b.Right(); col++ {
			fn(Position{Row: row, Col: col})
		}
	}
}

// Area is the number of cells covered.
func (b Box) Area() int {
	return b.Width * b.Height
}

func (b Box) String() string {
	return fmt.Sprintf("box(%d,%d %dx%d)", b.X, b.Y, b.Width, b.Height)
}
