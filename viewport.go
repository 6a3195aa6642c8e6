package flexview

// Viewport is the scroll state of one scrollable or clipping node.
//
// Bounds and ClipRect are in the layout coordinates of the node's parent
// content; the node's children live in content coordinates, which map to
// the parent's by subtracting ScrollOffset. Screen coordinates are reached
// by applying every ancestor's transform in turn.
type Viewport struct {
	Bounds       Bounds
	ClipRect     Bounds
	ScrollOffset Point
	ContentSize  Size
	Scrollbars   *Scrollbars

	parent *Viewport
}

// ScreenViewport is the root of a viewport chain: the whole screen with no
// scroll.
func ScreenViewport(width, height int) *Viewport {
	b := Bounds{Width: max(0, width), Height: max(0, height)}
	return &Viewport{Bounds: b, ClipRect: b, ContentSize: b.Size()}
}

// CreateViewport starts a viewport over the node's content box with no
// scroll.
func CreateViewport(node *LayoutNode, contentSize Size) *Viewport {
	return &Viewport{
		Bounds:      node.ContentBounds,
		ClipRect:    node.ContentBounds,
		ContentSize: contentSize,
		Scrollbars:  node.Scrollbars,
	}
}

// Child creates the viewport of a node painted inside v, taking the node's
// clamped scroll offset.
func (v *Viewport) Child(node *LayoutNode, contentSize Size) *Viewport {
	c := CreateViewport(node, contentSize)
	c.ScrollOffset = node.ScrollOffset
	*c = ClampScrollOffset(*c)
	c.parent = v
	return c
}

// Parent returns the enclosing viewport, nil at the root.
func (v *Viewport) Parent() *Viewport {
	return v.parent
}

// MaxScroll returns the largest valid offset on each axis.
func (v *Viewport) MaxScroll() Point {
	return Point{
		X: max(0, v.ContentSize.Width-v.ClipRect.Width),
		Y: max(0, v.ContentSize.Height-v.ClipRect.Height),
	}
}

// ClampScrollOffset returns v with each offset in [0, content − clip].
func ClampScrollOffset(v Viewport) Viewport {
	m := v.MaxScroll()
	v.ScrollOffset.X = clampInt(v.ScrollOffset.X, 0, m.X)
	v.ScrollOffset.Y = clampInt(v.ScrollOffset.Y, 0, m.Y)
	return v
}

// TransformPoint maps a point in the parent's coordinates into this
// viewport's content coordinates.
func (v *Viewport) TransformPoint(p Point) Point {
	return p.Sub(v.ScrollOffset)
}

// ToScreen maps a content-coordinate point to the screen.
func (v *Viewport) ToScreen(p Point) Point {
	for vp := v; vp != nil; vp = vp.parent {
		p = vp.TransformPoint(p)
	}
	return p
}

// FromScreen maps a screen point into content coordinates.
func (v *Viewport) FromScreen(p Point) Point {
	return p.Sub(v.ToScreen(Point{}))
}

// ScreenClip returns this viewport's own clip rectangle on screen.
func (v *Viewport) ScreenClip() Bounds {
	if v.parent == nil {
		return v.ClipRect
	}
	o := v.parent.ToScreen(Point{X: v.ClipRect.X, Y: v.ClipRect.Y})
	return Bounds{X: o.X, Y: o.Y, Width: v.ClipRect.Width, Height: v.ClipRect.Height}
}

// EffectiveClip intersects this clip with every ancestor clip, in screen
// coordinates.
func (v *Viewport) EffectiveClip() Bounds {
	clip := v.ScreenClip()
	for p := v.parent; p != nil; p = p.parent {
		clip = clip.Intersect(p.ScreenClip())
	}
	return clip
}

// IsPointVisible reports whether the screen cell (x, y) is inside the
// effective clip.
func (v *Viewport) IsPointVisible(x, y int) bool {
	return v.EffectiveClip().Contains(x, y)
}
