package flexview

// Component is implemented by leaf element types. The core treats it as an
// opaque sizing callback.
type Component interface {
	IntrinsicSize(ctx SizeContext) Size
}

// Renderer is optionally implemented by components that paint themselves.
// Panics raised here are not recovered by the core.
type Renderer interface {
	Render(bounds Bounds, style ElementStyle, surface Surface, ctx *RenderContext)
}

// SizeLookup is a read-only view of the per-pass size cache.
type SizeLookup interface {
	Lookup(el *Element, availableWidth, availableHeight int) (Size, bool)
}

// SizeContext is passed to Component.IntrinsicSize.
type SizeContext struct {
	Available   Size
	ParentStyle *ElementStyle
	Cache       SizeLookup
}

// RenderContext is passed to Renderer.Render.
type RenderContext struct {
	Surface      Surface
	Style        ElementStyle
	FocusedID    string
	HoveredID    string
	ScrollOffset Point

	// GetElementBounds returns the laid-out bounds of another element.
	GetElementBounds func(id string) (Bounds, bool)
	// GetAllElementBounds returns bounds for every element with an ID.
	GetAllElementBounds func() map[string]Bounds
}

// CellWriter is the drawing surface handed to painters.
type CellWriter interface {
	Width() int
	Height() int
	Cell(x, y int) Cell
	SetCell(x, y int, c Cell)
	// SetText writes a single line and returns the number of cells advanced.
	SetText(x, y int, s string, style Style) int
}

// Surface is the double-buffer shape shared by DualBuffer and
// ViewportDualBuffer, so painters cannot tell whether they are clipped.
type Surface interface {
	Width() int
	Height() int
	CurrentBuffer() CellWriter
	SwapAndGetDiff() []CellChange
}
