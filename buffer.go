package flexview

import "strings"

// Buffer is a 2D grid of cells representing a drawable surface.
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a new buffer with the given dimensions. Negative
// dimensions are treated as zero.
func NewBuffer(width, height int) *Buffer {
	width, height = max(0, width), max(0, height)
	cells := make([]Cell, width*height)
	empty := EmptyCell()
	for i := range cells {
		cells[i] = empty
	}
	return &Buffer{
		cells:  cells,
		width:  width,
		height: height,
	}
}

// Width returns the buffer width.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height.
func (b *Buffer) Height() int {
	return b.height
}

// Bounds returns the buffer area anchored at the origin.
func (b *Buffer) Bounds() Bounds {
	return Bounds{Width: b.width, Height: b.height}
}

// InBounds returns true if the given coordinates are within the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// index converts x,y coordinates to a slice index.
func (b *Buffer) index(x, y int) int {
	return y*b.width + x
}

// Cell returns the cell at the given coordinates.
// Returns an empty cell if out of bounds.
func (b *Buffer) Cell(x, y int) Cell {
	if !b.InBounds(x, y) {
		return EmptyCell()
	}
	return b.cells[b.index(x, y)]
}

// SetCell sets the cell at the given coordinates.
// Does nothing if out of bounds. Overwriting either half of a wide glyph
// blanks the other half, so no lead cell is left without its continuation.
func (b *Buffer) SetCell(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	i := b.index(x, y)
	old := b.cells[i]
	switch {
	case old.IsContinuation() && !c.IsContinuation() && x > 0:
		if lead := &b.cells[i-1]; !lead.IsContinuation() {
			lead.Rune = ' '
		}
	case !old.IsContinuation() && x+1 < b.width && b.cells[i+1].IsContinuation():
		b.cells[i+1].Rune = ' '
	}
	b.cells[i] = c
}

// SetText writes a single line of text, handling wide glyphs. A wide glyph
// that would cross the right edge is replaced by a blank.
// Returns the number of cells advanced.
func (b *Buffer) SetText(x, y int, s string, style Style) int {
	return writeText(b, b.Bounds(), x, y, s, style)
}

func (b *Buffer) setTextWithin(area Bounds, x, y int, s string, style Style) int {
	return writeText(b, area.Intersect(b.Bounds()), x, y, s, style)
}

// areaWriter is implemented by writers that can clip a line to an area on
// top of their own clip.
type areaWriter interface {
	setTextWithin(area Bounds, x, y int, s string, style Style) int
}

// writeTextWithin writes s into w, keeping every cell inside area and
// whatever clip w applies itself.
func writeTextWithin(w CellWriter, area Bounds, x, y int, s string, style Style) int {
	if aw, ok := w.(areaWriter); ok {
		return aw.setTextWithin(area, x, y, s, style)
	}
	return writeText(w, area, x, y, s, style)
}

// Fill fills the entire buffer with the given cell.
func (b *Buffer) Fill(c Cell) {
	for i := range b.cells {
		b.cells[i] = c
	}
}

// Clear clears the buffer to empty cells with default style.
func (b *Buffer) Clear() {
	b.Fill(EmptyCell())
}

// FillRect fills a rectangular region with the given cell.
func (b *Buffer) FillRect(x, y, width, height int, c Cell) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			b.SetCell(x+dx, y+dy, c)
		}
	}
}

// CopyFrom copies the contents of src, which must have the same size.
func (b *Buffer) CopyFrom(src *Buffer) {
	copy(b.cells, src.cells)
}

// cellWriter is the subset of CellWriter the glyph writer needs.
type cellWriter interface {
	SetCell(x, y int, c Cell)
}

// writeText paints s at (x, y) into dst, keeping every cell inside clip.
// Coordinates are the same space as clip. A wide glyph is written whole or,
// when only one half is inside clip, as a blank in the visible half.
func writeText(dst cellWriter, clip Bounds, x, y int, s string, style Style) int {
	advanced := 0
	for _, g := range glyphs(sanitize(s)) {
		writeGlyph(dst, clip, x+advanced, y, g, style)
		advanced += g.width
	}
	return advanced
}

func writeGlyph(dst cellWriter, clip Bounds, x, y int, g glyph, style Style) {
	if g.width < 2 {
		if clip.Contains(x, y) {
			dst.SetCell(x, y, NewCell(g.r, style))
		}
		return
	}
	lead, tail := clip.Contains(x, y), clip.Contains(x+1, y)
	switch {
	case lead && tail:
		dst.SetCell(x, y, NewCell(g.r, style))
		dst.SetCell(x+1, y, NewCell(0, style))
	case lead:
		dst.SetCell(x, y, NewCell(' ', style))
	case tail:
		dst.SetCell(x+1, y, NewCell(' ', style))
	}
}

// Box drawing characters for borders.
const (
	BoxHorizontal         = '─'
	BoxVertical           = '│'
	BoxTopLeft            = '┌'
	BoxTopRight           = '┐'
	BoxBottomLeft         = '└'
	BoxBottomRight        = '┘'
	BoxRoundedTopLeft     = '╭'
	BoxRoundedTopRight    = '╮'
	BoxRoundedBottomLeft  = '╰'
	BoxRoundedBottomRight = '╯'
	BoxDoubleHorizontal   = '═'
	BoxDoubleVertical     = '║'
	BoxDoubleTopLeft      = '╔'
	BoxDoubleTopRight     = '╗'
	BoxDoubleBottomLeft   = '╚'
	BoxDoubleBottomRight  = '╝'
)

// Box junction characters for merged borders
const (
	BoxTeeDown  = '┬' // ─ meets │ from below
	BoxTeeUp    = '┴' // ─ meets │ from above
	BoxTeeRight = '├' // │ meets ─ from right
	BoxTeeLeft  = '┤' // │ meets ─ from left
	BoxCross    = '┼' // all four directions
)

// borderEdges maps border runes to which edges they connect (top, right, bottom, left)
// Using bits: 1=top, 2=right, 4=bottom, 8=left
var borderEdges = map[rune]uint8{
	BoxHorizontal:  0b1010,
	BoxVertical:    0b0101,
	BoxTopLeft:     0b0110,
	BoxTopRight:    0b1100,
	BoxBottomLeft:  0b0011,
	BoxBottomRight: 0b1001,
	BoxTeeDown:     0b1110,
	BoxTeeUp:       0b1011,
	BoxTeeRight:    0b0111,
	BoxTeeLeft:     0b1101,
	BoxCross:       0b1111,

	BoxRoundedTopLeft:     0b0110,
	BoxRoundedTopRight:    0b1100,
	BoxRoundedBottomLeft:  0b0011,
	BoxRoundedBottomRight: 0b1001,
}

// edgesToBorder maps edge combinations back to border runes
var edgesToBorder = map[uint8]rune{
	0b1010: BoxHorizontal,
	0b0101: BoxVertical,
	0b0110: BoxTopLeft,
	0b1100: BoxTopRight,
	0b0011: BoxBottomLeft,
	0b1001: BoxBottomRight,
	0b1110: BoxTeeDown,
	0b1011: BoxTeeUp,
	0b0111: BoxTeeRight,
	0b1101: BoxTeeLeft,
	0b1111: BoxCross,
}

// mergeBorders combines two border characters into one.
// Returns the merged rune and true if both were border chars, otherwise false.
func mergeBorders(existing, new rune) (rune, bool) {
	existingEdges, ok1 := borderEdges[existing]
	newEdges, ok2 := borderEdges[new]
	if !ok1 || !ok2 {
		return new, false
	}

	merged := existingEdges | newEdges
	if result, ok := edgesToBorder[merged]; ok {
		return result, true
	}
	return new, false
}

// BorderStyle defines the characters used for drawing borders.
type BorderStyle struct {
	Horizontal  rune
	Vertical    rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
}

// Standard border styles.
var (
	BorderSingleChars = BorderStyle{
		Horizontal:  BoxHorizontal,
		Vertical:    BoxVertical,
		TopLeft:     BoxTopLeft,
		TopRight:    BoxTopRight,
		BottomLeft:  BoxBottomLeft,
		BottomRight: BoxBottomRight,
	}
	BorderRoundedChars = BorderStyle{
		Horizontal:  BoxHorizontal,
		Vertical:    BoxVertical,
		TopLeft:     BoxRoundedTopLeft,
		TopRight:    BoxRoundedTopRight,
		BottomLeft:  BoxRoundedBottomLeft,
		BottomRight: BoxRoundedBottomRight,
	}
	BorderDoubleChars = BorderStyle{
		Horizontal:  BoxDoubleHorizontal,
		Vertical:    BoxDoubleVertical,
		TopLeft:     BoxDoubleTopLeft,
		TopRight:    BoxDoubleTopRight,
		BottomLeft:  BoxDoubleBottomLeft,
		BottomRight: BoxDoubleBottomRight,
	}
)

// borderPlan lists the cells of a border rectangle, corners first.
func borderPlan(x, y, width, height int, border BorderStyle, fn func(x, y int, r rune)) {
	if width < 2 || height < 2 {
		return
	}
	fn(x, y, border.TopLeft)
	fn(x+width-1, y, border.TopRight)
	fn(x, y+height-1, border.BottomLeft)
	fn(x+width-1, y+height-1, border.BottomRight)

	for i := 1; i < width-1; i++ {
		fn(x+i, y, border.Horizontal)
		fn(x+i, y+height-1, border.Horizontal)
	}
	for i := 1; i < height-1; i++ {
		fn(x, y+i, border.Vertical)
		fn(x+width-1, y+i, border.Vertical)
	}
}

// DrawBorder draws a border around the given rectangle, merging junctions
// with borders already present.
func (b *Buffer) DrawBorder(x, y, width, height int, border BorderStyle, style Style) {
	drawBorder(b, Bounds{X: x, Y: y, Width: width, Height: height}, border, style)
}

// GetLine returns the content of a single line as a string (trimmed).
func (b *Buffer) GetLine(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var line strings.Builder
	for x := 0; x < b.width; x++ {
		r := b.cells[b.index(x, y)].Rune
		if r == 0 {
			continue
		}
		line.WriteRune(r)
	}
	return strings.TrimRight(line.String(), " ")
}

// String returns the buffer contents as a string (for testing/debugging).
// Each row is separated by a newline. Trailing spaces are preserved.
func (b *Buffer) String() string {
	var result strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			r := b.cells[b.index(x, y)].Rune
			if r == 0 {
				continue
			}
			result.WriteRune(r)
		}
		if y < b.height-1 {
			result.WriteByte('\n')
		}
	}
	return result.String()
}

// StringTrimmed returns the buffer contents with trailing spaces removed per line
// and trailing empty lines dropped.
func (b *Buffer) StringTrimmed() string {
	lines := make([]string, b.height)
	for y := range lines {
		lines[y] = b.GetLine(y)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// Resize resizes the buffer to new dimensions.
// Existing content is preserved where it fits.
func (b *Buffer) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	if width == b.width && height == b.height {
		return
	}

	newCells := make([]Cell, width*height)
	empty := EmptyCell()
	for i := range newCells {
		newCells[i] = empty
	}

	minWidth := min(b.width, width)
	minHeight := min(b.height, height)
	for y := 0; y < minHeight; y++ {
		copy(newCells[y*width:y*width+minWidth], b.cells[y*b.width:y*b.width+minWidth])
	}

	b.cells = newCells
	b.width = width
	b.height = height
}
