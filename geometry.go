package flexview

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size represents dimensions.
type Size struct {
	Width  int
	Height int
}

// Bounds is a rectangle in absolute terminal-cell coordinates.
type Bounds struct {
	X, Y          int
	Width, Height int
}

// Right returns the exclusive right edge.
func (b Bounds) Right() int { return b.X + b.Width }

// Bottom returns the exclusive bottom edge.
func (b Bounds) Bottom() int { return b.Y + b.Height }

// Size returns the bounds dimensions.
func (b Bounds) Size() Size { return Size{Width: b.Width, Height: b.Height} }

// Empty reports whether the bounds cover no cells.
func (b Bounds) Empty() bool { return b.Width <= 0 || b.Height <= 0 }

// Contains reports whether the cell (x, y) lies inside the bounds.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.Right() && y >= b.Y && y < b.Bottom()
}

// Translate moves the bounds by the given offset.
func (b Bounds) Translate(dx, dy int) Bounds {
	b.X += dx
	b.Y += dy
	return b
}

// Intersect returns the overlapping area of a and b. Disjoint rectangles
// produce a zero-sized result anchored inside a.
func (b Bounds) Intersect(o Bounds) Bounds {
	x0 := max(b.X, o.X)
	y0 := max(b.Y, o.Y)
	x1 := min(b.Right(), o.Right())
	y1 := min(b.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Bounds{X: x0, Y: y0}
	}
	return Bounds{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Inset shrinks the bounds by the given spacing, never below zero size.
func (b Bounds) Inset(s Spacing) Bounds {
	b.X += s.Left
	b.Y += s.Top
	b.Width = max(0, b.Width-s.Left-s.Right)
	b.Height = max(0, b.Height-s.Top-s.Bottom)
	return b
}

// clampInt limits v to [lo, hi]; hi below lo collapses to lo.
func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
