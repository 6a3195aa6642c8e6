package flexview

import "log/slog"

// LayoutNode is the laid-out counterpart of one Element. The tree of nodes
// mirrors the element tree; hidden elements get zero-sized nodes.
//
// Bounds are layout coordinates: children of a scrollable node are placed as
// if it were not scrolled. Subtract ScreenOffset to get screen coordinates.
type LayoutNode struct {
	Element       *Element
	ID            NodeID
	Bounds        Bounds // border box
	ContentBounds Bounds // inside border and padding
	Children      []*LayoutNode

	// ActualContentSize is the real extent of the laid-out children measured
	// from the content origin, or the measured content of a leaf.
	ActualContentSize Size
	ScrollOffset      Point
	Scrollbars        *Scrollbars

	// ScreenOffset is the summed scroll of every scrollable ancestor.
	ScreenOffset Point
	// Clip is the screen area this node may paint into.
	Clip Bounds
}

// ScreenBounds returns the border box in screen coordinates.
func (n *LayoutNode) ScreenBounds() Bounds {
	return n.Bounds.Translate(-n.ScreenOffset.X, -n.ScreenOffset.Y)
}

// Scrollable reports whether the node owns a scrolling viewport.
func (n *LayoutNode) Scrollable() bool {
	return n.Element != nil && !n.Element.hidden() && n.Element.Style.Scrollable()
}

// MaxScroll returns the largest valid scroll offset on each axis.
func (n *LayoutNode) MaxScroll() Point {
	return Point{
		X: max(0, n.ActualContentSize.Width-n.ContentBounds.Width),
		Y: max(0, n.ActualContentSize.Height-n.ContentBounds.Height),
	}
}

// LayoutContext is the space the root is laid out in.
type LayoutContext struct {
	Available Bounds
}

// LayoutEngine resolves element trees into LayoutNode trees. Queries answer
// from the most recently completed pass.
type LayoutEngine struct {
	measurer *ContentMeasurer
	config   Config
	log      *slog.Logger

	arena       *arena
	nodes       []*LayoutNode
	root        *LayoutNode
	scrollables []*LayoutNode // pre-order
	barOrder    []*LayoutNode // order scrollbars are painted
}

// NewLayoutEngine creates an engine using cfg for scrollbar geometry.
func NewLayoutEngine(cfg Config) *LayoutEngine {
	return &LayoutEngine{
		measurer: NewContentMeasurer(),
		config:   cfg,
		log:      slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets the logger for layout diagnostics.
func (e *LayoutEngine) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	e.log = l
}

// Config returns the engine configuration.
func (e *LayoutEngine) Config() Config {
	return e.config
}

// Measurer returns the measurer whose cache the engine shares.
func (e *LayoutEngine) Measurer() *ContentMeasurer {
	return e.measurer
}

// CalculateLayout lays out root inside ctx.Available. The root is placed as
// the only child of a block container filling the available area.
func (e *LayoutEngine) CalculateLayout(root *Element, ctx LayoutContext) *LayoutNode {
	avail := ctx.Available
	avail.Width, avail.Height = max(0, avail.Width), max(0, avail.Height)

	e.arena = newArena(root)
	e.measurer.begin(e.arena)
	e.nodes = make([]*LayoutNode, e.arena.len())
	e.scrollables = e.scrollables[:0]
	e.barOrder = e.barOrder[:0]
	e.root = nil
	if root == nil {
		return nil
	}

	var screen ElementStyle
	b := e.arrange(&screen, avail, []*Element{root}, false)[0]
	e.root = e.layoutNode(root, b, Point{}, avail)

	e.log.Debug("layout",
		"nodes", e.arena.len(),
		"scrollables", len(e.scrollables),
		"width", avail.Width,
		"height", avail.Height)
	return e.root
}

func (e *LayoutEngine) register(n *LayoutNode) {
	if id, ok := e.arena.id(n.Element); ok {
		n.ID = id
		e.nodes[id] = n
		return
	}
	n.ID = NoNode
}

func (e *LayoutEngine) layoutNode(el *Element, b Bounds, screen Point, clip Bounds) *LayoutNode {
	if el.hidden() {
		return e.layoutHidden(el, Point{X: b.X, Y: b.Y}, screen, clip)
	}
	n := &LayoutNode{
		Element:      el,
		Bounds:       b,
		ScreenOffset: screen,
		Clip:         clip,
	}
	e.register(n)

	st := &el.Style
	cb := b.Inset(st.chrome())
	n.ContentBounds = cb

	scroll := st.Scrollable()
	placed := e.arrange(st, cb, el.Children, scroll)
	n.ActualContentSize = e.contentExtent(el, cb, placed)

	if scroll {
		limit := n.MaxScroll()
		n.ScrollOffset = Point{
			X: clampInt(el.ScrollX, 0, limit.X),
			Y: clampInt(el.ScrollY, 0, limit.Y),
		}
		e.scrollables = append(e.scrollables, n)
	}

	childScreen := screen.Add(n.ScrollOffset)
	childClip := clip
	if st.Clips() {
		childClip = clip.Intersect(cb.Translate(-screen.X, -screen.Y))
	}

	n.Children = make([]*LayoutNode, 0, len(el.Children))
	for i, c := range el.Children {
		if c == nil {
			continue
		}
		n.Children = append(n.Children, e.layoutNode(c, placed[i], childScreen, childClip))
	}

	if scroll {
		// painted after the children, so after any nested bars
		n.Scrollbars = computeScrollbars(n, e.config.MinThumbSize)
		e.barOrder = append(e.barOrder, n)
	}
	return n
}

// layoutHidden mirrors a display:none subtree with zero-sized nodes.
func (e *LayoutEngine) layoutHidden(el *Element, at Point, screen Point, clip Bounds) *LayoutNode {
	b := Bounds{X: at.X, Y: at.Y}
	n := &LayoutNode{
		Element:       el,
		Bounds:        b,
		ContentBounds: b,
		ScreenOffset:  screen,
		Clip:          Bounds{X: clip.X, Y: clip.Y},
	}
	e.register(n)
	for _, c := range el.Children {
		if c != nil {
			n.Children = append(n.Children, e.layoutHidden(c, at, screen, n.Clip))
		}
	}
	return n
}

// contentExtent measures the real extent of the placed children from the
// content origin. Leaves report their measured content.
func (e *LayoutEngine) contentExtent(el *Element, cb Bounds, placed []Bounds) Size {
	var size Size
	visible := false
	for i, c := range el.Children {
		if c.hidden() {
			continue
		}
		visible = true
		mg := c.Style.Margin.clamped()
		b := placed[i]
		size.Width = max(size.Width, b.Right()+mg.Right-cb.X)
		size.Height = max(size.Height, b.Bottom()+mg.Bottom-cb.Y)
	}
	if !visible {
		return e.measurer.content(el, cb.Width, cb.Height)
	}
	return size
}

// Root returns the root of the last pass.
func (e *LayoutEngine) Root() *LayoutNode {
	return e.root
}

// FindNode returns the node for the element with the given ID.
func (e *LayoutEngine) FindNode(id string) (*LayoutNode, bool) {
	nid, ok := e.arena.lookup(id)
	if !ok {
		return nil, false
	}
	return e.node(nid)
}

func (e *LayoutEngine) node(id NodeID) (*LayoutNode, bool) {
	if id < 0 || int(id) >= len(e.nodes) || e.nodes[id] == nil {
		return nil, false
	}
	return e.nodes[id], true
}

// NodeFor returns the node laid out for el.
func (e *LayoutEngine) NodeFor(el *Element) (*LayoutNode, bool) {
	id, ok := e.arena.id(el)
	if !ok {
		return nil, false
	}
	return e.node(id)
}

// GetContainerBounds returns the screen bounds of the element with the
// given ID.
func (e *LayoutEngine) GetContainerBounds(id string) (Bounds, bool) {
	n, ok := e.FindNode(id)
	if !ok {
		return Bounds{}, false
	}
	return n.ScreenBounds(), true
}

// GetAllElementBounds returns screen bounds for every element with an ID.
func (e *LayoutEngine) GetAllElementBounds() map[string]Bounds {
	out := make(map[string]Bounds)
	if e.arena == nil {
		return out
	}
	for id, nid := range e.arena.byID {
		if n, ok := e.node(nid); ok {
			out[id] = n.ScreenBounds()
		}
	}
	return out
}

// GetAllScrollbarBounds returns every visible scrollbar in paint order.
// Later entries are painted over earlier ones.
func (e *LayoutEngine) GetAllScrollbarBounds() []ScrollbarBounds {
	var out []ScrollbarBounds
	for _, n := range e.barOrder {
		if n.Scrollbars == nil {
			continue
		}
		for _, axis := range []Axis{AxisVertical, AxisHorizontal} {
			g := n.Scrollbars.Get(axis)
			if !g.Visible || g.Track.Empty() {
				continue
			}
			out = append(out, ScrollbarBounds{
				ElementID: n.Element.ID,
				Node:      n.ID,
				Axis:      axis,
				Track:     g.Track,
				Thumb:     g.Thumb,
				Clip:      n.Clip,
			})
		}
	}
	return out
}

// CalculateScrollDimensions reports the measured scroll state of the element
// with the given ID.
func (e *LayoutEngine) CalculateScrollDimensions(id string) (ScrollDimensions, bool) {
	n, ok := e.FindNode(id)
	if !ok {
		return ScrollDimensions{}, false
	}
	return n.scrollDimensions(), true
}

func (n *LayoutNode) scrollDimensions() ScrollDimensions {
	m := n.MaxScroll()
	return ScrollDimensions{
		ContentWidth:   n.ActualContentSize.Width,
		ContentHeight:  n.ActualContentSize.Height,
		ViewportWidth:  n.ContentBounds.Width,
		ViewportHeight: n.ContentBounds.Height,
		ScrollX:        n.ScrollOffset.X,
		ScrollY:        n.ScrollOffset.Y,
		MaxScrollX:     m.X,
		MaxScrollY:     m.Y,
	}
}

// Scrollables returns the scrollable nodes in paint order: a parent precedes
// its descendants.
func (e *LayoutEngine) Scrollables() []*LayoutNode {
	return e.scrollables
}

// NearestScrollable returns the element's own node if it scrolls, otherwise
// its closest scrollable ancestor.
func (e *LayoutEngine) NearestScrollable(id string) (*LayoutNode, bool) {
	nid, ok := e.arena.lookup(id)
	if !ok {
		return nil, false
	}
	if n, ok := e.node(nid); ok && n.Scrollable() {
		return n, true
	}
	var found *LayoutNode
	e.arena.ancestors(nid, func(p NodeID) bool {
		if n, ok := e.node(p); ok && n.Scrollable() {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}
