package flexview

import "math"

// Axis is a scroll direction.
type Axis uint8

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// ScrollbarGeometry is one scrollbar of a scrollable node. Track and Thumb
// are in screen coordinates; ThumbPos is relative to the track start.
type ScrollbarGeometry struct {
	Visible bool
	Track   Bounds
	Thumb   Bounds

	TrackStart  int // screen coordinate along the axis
	TrackLength int
	ThumbSize   int
	ThumbPos    int

	ContentLength  int
	ViewportLength int
	ScrollPos      int
	MaxScroll      int
}

// Scrollbars holds both bars of a scrollable node.
type Scrollbars struct {
	Vertical   ScrollbarGeometry
	Horizontal ScrollbarGeometry
}

// Get returns the bar for the axis.
func (s *Scrollbars) Get(axis Axis) *ScrollbarGeometry {
	if axis == AxisHorizontal {
		return &s.Horizontal
	}
	return &s.Vertical
}

// ScrollbarBounds identifies one visible scrollbar for hit testing.
type ScrollbarBounds struct {
	ElementID string
	Node      NodeID
	Axis      Axis
	Track     Bounds
	Thumb     Bounds
	// Clip is where the owning node is visible on screen.
	Clip Bounds
}

// ScrollDimensions is the scroll state of a node as of the last layout.
type ScrollDimensions struct {
	ContentWidth   int
	ContentHeight  int
	ViewportWidth  int
	ViewportHeight int
	ScrollX        int
	ScrollY        int
	MaxScrollX     int
	MaxScrollY     int
}

// thumbSize is viewport/content of the track, at least minThumb and never
// longer than the track.
func thumbSize(viewport, content, track, minThumb int) int {
	if track <= 0 || content <= 0 {
		return 0
	}
	size := int(math.Round(float64(viewport) / float64(content) * float64(track)))
	return min(max(size, minThumb, 1), track)
}

// thumbPos places the thumb proportionally within the free track space.
func thumbPos(scroll, maxScroll, track, thumb int) int {
	space := track - thumb
	if maxScroll <= 0 || space <= 0 {
		return 0
	}
	pos := int(math.Round(float64(scroll) / float64(maxScroll) * float64(space)))
	return clampInt(pos, 0, space)
}

// computeScrollbars derives bar geometry from the node's measured content.
// Bars overlay the last column and row of the content box; when both show
// they stop short of the shared corner.
func computeScrollbars(n *LayoutNode, minThumb int) *Scrollbars {
	cb := n.ContentBounds.Translate(-n.ScreenOffset.X, -n.ScreenOffset.Y)
	content := n.ActualContentSize
	sb := &Scrollbars{}

	vertical := content.Height > cb.Height
	horizontal := content.Width > cb.Width

	if vertical {
		track := cb.Height
		if horizontal {
			track--
		}
		track = max(0, track)
		g := &sb.Vertical
		*g = ScrollbarGeometry{
			Visible:        true,
			TrackStart:     cb.Y,
			TrackLength:    track,
			ContentLength:  content.Height,
			ViewportLength: cb.Height,
			ScrollPos:      n.ScrollOffset.Y,
			MaxScroll:      max(0, content.Height-cb.Height),
		}
		g.ThumbSize = thumbSize(cb.Height, content.Height, track, minThumb)
		g.ThumbPos = thumbPos(g.ScrollPos, g.MaxScroll, track, g.ThumbSize)
		if track > 0 && cb.Width > 0 {
			g.Track = Bounds{X: cb.Right() - 1, Y: cb.Y, Width: 1, Height: track}
			g.Thumb = Bounds{X: cb.Right() - 1, Y: cb.Y + g.ThumbPos, Width: 1, Height: g.ThumbSize}
		}
	}

	if horizontal {
		track := cb.Width
		if vertical {
			track--
		}
		track = max(0, track)
		g := &sb.Horizontal
		*g = ScrollbarGeometry{
			Visible:        true,
			TrackStart:     cb.X,
			TrackLength:    track,
			ContentLength:  content.Width,
			ViewportLength: cb.Width,
			ScrollPos:      n.ScrollOffset.X,
			MaxScroll:      max(0, content.Width-cb.Width),
		}
		g.ThumbSize = thumbSize(cb.Width, content.Width, track, minThumb)
		g.ThumbPos = thumbPos(g.ScrollPos, g.MaxScroll, track, g.ThumbSize)
		if track > 0 && cb.Height > 0 {
			g.Track = Bounds{X: cb.X, Y: cb.Bottom() - 1, Width: track, Height: 1}
			g.Thumb = Bounds{X: cb.X + g.ThumbPos, Y: cb.Bottom() - 1, Width: g.ThumbSize, Height: 1}
		}
	}
	return sb
}

// paintScrollbars draws the node's bars into the surface its own bounds are
// painted in. Coordinates there are the node's layout coordinates.
func paintScrollbars(w CellWriter, n *LayoutNode, cfg ScrollbarConfig) {
	sb := n.Scrollbars
	if sb == nil {
		return
	}
	cb := n.ContentBounds
	trackStyle, thumbStyle := cfg.TrackStyle(), cfg.ThumbStyle()

	if g := sb.Vertical; g.Visible && cb.Width > 0 {
		x := cb.Right() - 1
		for i := 0; i < g.TrackLength; i++ {
			w.SetCell(x, cb.Y+i, NewCell(cfg.trackRune(AxisVertical), trackStyle))
		}
		for i := 0; i < g.ThumbSize; i++ {
			w.SetCell(x, cb.Y+g.ThumbPos+i, NewCell(cfg.thumbRune(AxisVertical), thumbStyle))
		}
	}

	if g := sb.Horizontal; g.Visible && cb.Height > 0 {
		y := cb.Bottom() - 1
		for i := 0; i < g.TrackLength; i++ {
			w.SetCell(cb.X+i, y, NewCell(cfg.trackRune(AxisHorizontal), trackStyle))
		}
		for i := 0; i < g.ThumbSize; i++ {
			w.SetCell(cb.X+g.ThumbPos+i, y, NewCell(cfg.thumbRune(AxisHorizontal), thumbStyle))
		}
	}
}
