package flexview

// CellChange is one cell that differs from the previous frame.
type CellChange struct {
	X, Y int
	Cell Cell
}

// invalidCell never equals a painted cell, forcing a repaint.
var invalidCell = Cell{Rune: -1}

// DualBuffer holds the frame being painted and the frame last emitted.
type DualBuffer struct {
	current  *Buffer
	previous *Buffer
}

// NewDualBuffer creates a double buffer. The previous frame starts blank,
// matching a freshly cleared terminal.
func NewDualBuffer(width, height int) *DualBuffer {
	return &DualBuffer{
		current:  NewBuffer(width, height),
		previous: NewBuffer(width, height),
	}
}

func (d *DualBuffer) Width() int { return d.current.Width() }
func (d *DualBuffer) Height() int { return d.current.Height() }

// CurrentBuffer returns the frame being painted.
func (d *DualBuffer) CurrentBuffer() CellWriter {
	return d.current
}

// Current returns the frame being painted.
func (d *DualBuffer) Current() *Buffer {
	return d.current
}

// Previous returns the last emitted frame.
func (d *DualBuffer) Previous() *Buffer {
	return d.previous
}

// SwapAndGetDiff returns the cells whose rune or style changed since the
// previous frame, in row-major order, then makes the current frame the
// previous one. The new current frame starts as a copy of it.
func (d *DualBuffer) SwapAndGetDiff() []CellChange {
	cur, prev := d.current, d.previous
	var changes []CellChange
	for y := 0; y < cur.height; y++ {
		row := y * cur.width
		for x := 0; x < cur.width; x++ {
			c := cur.cells[row+x]
			if !c.Equal(prev.cells[row+x]) {
				changes = append(changes, CellChange{X: x, Y: y, Cell: c})
			}
		}
	}
	d.current, d.previous = prev, cur
	d.current.CopyFrom(d.previous)
	return changes
}

// Resize changes both frames and forces the next diff to cover every cell.
func (d *DualBuffer) Resize(width, height int) {
	d.current.Resize(width, height)
	d.previous.Resize(width, height)
	d.Invalidate()
}

// Invalidate forces the next diff to cover every cell, e.g. after the
// terminal was cleared behind our back.
func (d *DualBuffer) Invalidate() {
	d.previous.Fill(invalidCell)
}
