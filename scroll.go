package flexview

import (
	"log/slog"
	"math"
)

// ScrollKey is a keyboard scroll request.
type ScrollKey uint8

const (
	ScrollKeyUp ScrollKey = iota
	ScrollKeyDown
	ScrollKeyLeft
	ScrollKeyRight
	ScrollKeyPageUp
	ScrollKeyPageDown
	ScrollKeyHome
	ScrollKeyEnd
)

// ScrollbarDragState is the in-flight scrollbar drag. The zero value is
// idle.
type ScrollbarDragState struct {
	Active         bool
	ElementID      string
	Axis           Axis
	StartMousePos  int
	StartScrollPos int
	TrackStart     int
	TrackLength    int
	ThumbSize      int
	ContentLength  int
	ViewportLength int
}

// ScrollbarHit is a press on a scrollbar.
type ScrollbarHit struct {
	ElementID string
	Axis      Axis
	OnThumb   bool
}

// ScrollHandler turns scrollbar presses and drags, wheel events and scroll
// keys into scroll offsets on elements. Offsets are read fresh from the
// elements; content sizes come from the last layout pass.
type ScrollHandler struct {
	layout *LayoutEngine
	render func()
	drag   ScrollbarDragState
	log    *slog.Logger
}

// NewScrollHandler creates a handler. render is called after every change
// and may be nil.
func NewScrollHandler(layout *LayoutEngine, render func()) *ScrollHandler {
	return &ScrollHandler{
		layout: layout,
		render: render,
		log:    slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets the logger for scroll diagnostics.
func (h *ScrollHandler) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	h.log = l
}

// Dragging reports whether a scrollbar drag is in progress.
func (h *ScrollHandler) Dragging() bool {
	return h.drag.Active
}

// DragState returns a copy of the drag state.
func (h *ScrollHandler) DragState() ScrollbarDragState {
	return h.drag
}

func scrollOf(el *Element, axis Axis) int {
	if axis == AxisHorizontal {
		return el.ScrollX
	}
	return el.ScrollY
}

func axisOf(p Point, axis Axis) int {
	if axis == AxisHorizontal {
		return p.X
	}
	return p.Y
}

// setScroll writes v to the element if it differs and renders.
func (h *ScrollHandler) setScroll(n *LayoutNode, axis Axis, v int) bool {
	el := n.Element
	if current(n, axis) == v {
		return false
	}
	if axis == AxisHorizontal {
		el.ScrollX = v
	} else {
		el.ScrollY = v
	}
	h.log.Debug("scroll", "element", el.ID, "axis", axis, "offset", v)
	if h.render != nil {
		h.render()
	}
	return true
}

// current returns the element's offset clamped to the measured range, so a
// stale out-of-range prop never needs an extra keypress to come back.
func current(n *LayoutNode, axis Axis) int {
	return clampInt(scrollOf(n.Element, axis), 0, axisOf(n.MaxScroll(), axis))
}

// DetectScrollbarClick finds the scrollbar under the screen cell (x, y),
// testing the topmost-painted bars first. Scrollbars of elements without an
// ID cannot be tracked and are skipped.
func (h *ScrollHandler) DetectScrollbarClick(x, y int) (ScrollbarHit, bool) {
	bars := h.layout.GetAllScrollbarBounds()
	for i := len(bars) - 1; i >= 0; i-- {
		b := bars[i]
		if b.ElementID == "" || !b.Clip.Contains(x, y) || !b.Track.Contains(x, y) {
			continue
		}
		return ScrollbarHit{
			ElementID: b.ElementID,
			Axis:      b.Axis,
			OnThumb:   b.Thumb.Contains(x, y),
		}, true
	}
	return ScrollbarHit{}, false
}

// HandleMouseDown starts a drag when (x, y) is on a scrollbar. A press on
// the track first jumps so the thumb is centred under the cursor.
func (h *ScrollHandler) HandleMouseDown(x, y int) bool {
	hit, ok := h.DetectScrollbarClick(x, y)
	if !ok {
		return false
	}
	n, ok := h.layout.FindNode(hit.ElementID)
	if !ok || n.Scrollbars == nil {
		return false
	}
	g := n.Scrollbars.Get(hit.Axis)
	mouse := axisOf(Point{X: x, Y: y}, hit.Axis)
	pos := current(n, hit.Axis)

	if !hit.OnThumb {
		space := g.TrackLength - g.ThumbSize
		progress := 0.0
		if space > 0 {
			progress = float64(mouse-g.TrackStart-g.ThumbSize/2) / float64(space)
		}
		progress = math.Max(0, math.Min(1, progress))
		pos = int(math.Round(progress * float64(axisOf(n.MaxScroll(), hit.Axis))))
		h.setScroll(n, hit.Axis, pos)
	}

	h.drag = ScrollbarDragState{
		Active:         true,
		ElementID:      hit.ElementID,
		Axis:           hit.Axis,
		StartMousePos:  mouse,
		StartScrollPos: pos,
		TrackStart:     g.TrackStart,
		TrackLength:    g.TrackLength,
		ThumbSize:      g.ThumbSize,
		ContentLength:  g.ContentLength,
		ViewportLength: g.ViewportLength,
	}
	return true
}

// HandleScrollbarDrag moves the dragged scrollbar to follow the mouse. It
// reports whether the offset changed. A drag whose element has gone ends.
func (h *ScrollHandler) HandleScrollbarDrag(x, y int) bool {
	if !h.drag.Active {
		return false
	}
	n, ok := h.layout.FindNode(h.drag.ElementID)
	if !ok || !n.Scrollable() {
		h.log.Debug("scrollbar drag target gone", "element", h.drag.ElementID)
		h.drag = ScrollbarDragState{}
		return false
	}
	d := h.drag
	space := d.TrackLength - d.ThumbSize
	maxScroll := axisOf(n.MaxScroll(), d.Axis)
	if space <= 0 || maxScroll <= 0 {
		return false
	}
	delta := axisOf(Point{X: x, Y: y}, d.Axis) - d.StartMousePos
	ratio := float64(maxScroll) / float64(space)
	pos := d.StartScrollPos + int(math.Round(float64(delta)*ratio))
	return h.setScroll(n, d.Axis, clampInt(pos, 0, maxScroll))
}

// HandleMouseUp ends any drag and reports whether one was active.
func (h *ScrollHandler) HandleMouseUp() bool {
	was := h.drag.Active
	h.drag = ScrollbarDragState{}
	return was
}

// scrollableAt returns the topmost scrollable whose visible area holds the
// screen cell (x, y).
func (h *ScrollHandler) scrollableAt(x, y int) (*LayoutNode, bool) {
	nodes := h.layout.Scrollables()
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n.ScreenBounds().Intersect(n.Clip).Contains(x, y) {
			return n, true
		}
	}
	return nil, false
}

// HandleScrollEvent applies a wheel delta to the topmost scrollable under
// the cursor and reports whether any offset changed.
func (h *ScrollHandler) HandleScrollEvent(x, y, deltaX, deltaY int) bool {
	n, ok := h.scrollableAt(x, y)
	if !ok {
		return false
	}
	limit := n.MaxScroll()
	changed := false
	if deltaY != 0 {
		pos := clampInt(current(n, AxisVertical)+deltaY, 0, limit.Y)
		changed = h.setScroll(n, AxisVertical, pos) || changed
	}
	if deltaX != 0 {
		pos := clampInt(current(n, AxisHorizontal)+deltaX, 0, limit.X)
		changed = h.setScroll(n, AxisHorizontal, pos) || changed
	}
	return changed
}

// HandleArrowKeyScroll scrolls the element with the given ID, or its
// nearest scrollable ancestor, and reports whether the offset changed.
// Arrow keys move by the configured step, page keys by the viewport.
func (h *ScrollHandler) HandleArrowKeyScroll(elementID string, key ScrollKey) bool {
	n, ok := h.layout.NearestScrollable(elementID)
	if !ok {
		return false
	}
	step := max(1, h.layout.config.ScrollStep)
	page := max(1, n.ContentBounds.Height)
	limit := n.MaxScroll()

	axis := AxisVertical
	var pos int
	switch key {
	case ScrollKeyUp:
		pos = current(n, axis) - step
	case ScrollKeyDown:
		pos = current(n, axis) + step
	case ScrollKeyPageUp:
		pos = current(n, axis) - page
	case ScrollKeyPageDown:
		pos = current(n, axis) + page
	case ScrollKeyHome:
		pos = 0
	case ScrollKeyEnd:
		pos = limit.Y
	case ScrollKeyLeft:
		axis = AxisHorizontal
		pos = current(n, axis) - step
	case ScrollKeyRight:
		axis = AxisHorizontal
		pos = current(n, axis) + step
	default:
		return false
	}
	return h.setScroll(n, axis, clampInt(pos, 0, axisOf(limit, axis)))
}
