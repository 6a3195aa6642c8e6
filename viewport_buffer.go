package flexview

// ViewportBufferProxy writes content-coordinate cells into a screen buffer
// through a viewport. Writes outside the effective clip are dropped.
type ViewportBufferProxy struct {
	target   CellWriter
	viewport *Viewport
	clip     Bounds // screen
	shift    Point  // content minus screen
}

// NewViewportBufferProxy wraps a screen-sized target.
func NewViewportBufferProxy(target CellWriter, vp *Viewport) *ViewportBufferProxy {
	clip := vp.EffectiveClip().Intersect(Bounds{Width: target.Width(), Height: target.Height()})
	return &ViewportBufferProxy{
		target:   target,
		viewport: vp,
		clip:     clip,
		shift:    Point{}.Sub(vp.ToScreen(Point{})),
	}
}

// Width is the content width of the viewport.
func (p *ViewportBufferProxy) Width() int {
	return max(p.viewport.ContentSize.Width, p.viewport.Bounds.Width)
}

// Height is the content height of the viewport.
func (p *ViewportBufferProxy) Height() int {
	return max(p.viewport.ContentSize.Height, p.viewport.Bounds.Height)
}

// Clip returns the effective clip in screen coordinates.
func (p *ViewportBufferProxy) Clip() Bounds {
	return p.clip
}

func (p *ViewportBufferProxy) toScreen(x, y int) (int, int) {
	return x - p.shift.X, y - p.shift.Y
}

// Cell reads through the viewport; clipped cells read as empty.
func (p *ViewportBufferProxy) Cell(x, y int) Cell {
	sx, sy := p.toScreen(x, y)
	if !p.clip.Contains(sx, sy) {
		return EmptyCell()
	}
	return p.target.Cell(sx, sy)
}

// SetCell writes c if (x, y) is visible.
func (p *ViewportBufferProxy) SetCell(x, y int, c Cell) {
	sx, sy := p.toScreen(x, y)
	if !p.clip.Contains(sx, sy) {
		return
	}
	p.target.SetCell(sx, sy, c)
}

// SetText writes a line, substituting blanks for the visible half of a wide
// glyph cut by the clip edge. It returns the cells advanced, visible or not.
func (p *ViewportBufferProxy) SetText(x, y int, s string, style Style) int {
	sx, sy := p.toScreen(x, y)
	return writeText(p.target, p.clip, sx, sy, s, style)
}

// setTextWithin writes a line limited to area, given in content
// coordinates, as well as the viewport clip. A wide glyph cut by either
// edge becomes blanks in its visible half.
func (p *ViewportBufferProxy) setTextWithin(area Bounds, x, y int, s string, style Style) int {
	sx, sy := p.toScreen(x, y)
	area = area.Translate(-p.shift.X, -p.shift.Y).Intersect(p.clip)
	return writeText(p.target, area, sx, sy, s, style)
}

// ViewportDualBuffer gives a clipped subtree the same Surface as the full
// screen. Swapping delegates to the screen's double buffer.
type ViewportDualBuffer struct {
	screen *DualBuffer
	proxy  *ViewportBufferProxy
}

// NewViewportDualBuffer creates a clipped surface over screen.
func NewViewportDualBuffer(screen *DualBuffer, vp *Viewport) *ViewportDualBuffer {
	return &ViewportDualBuffer{
		screen: screen,
		proxy:  NewViewportBufferProxy(screen.Current(), vp),
	}
}

func (v *ViewportDualBuffer) Width() int { return v.proxy.Width() }
func (v *ViewportDualBuffer) Height() int { return v.proxy.Height() }

// CurrentBuffer returns the clipping writer.
func (v *ViewportDualBuffer) CurrentBuffer() CellWriter {
	return v.proxy
}

// Viewport returns the viewport the surface paints through.
func (v *ViewportDualBuffer) Viewport() *Viewport {
	return v.proxy.viewport
}

// SwapAndGetDiff diffs the whole screen.
func (v *ViewportDualBuffer) SwapAndGetDiff() []CellChange {
	return v.screen.SwapAndGetDiff()
}
