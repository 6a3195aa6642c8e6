package flexview

import (
	"log/slog"
	"time"
)

// RenderState is the interaction state painters may reflect.
type RenderState struct {
	FocusedID string
	HoveredID string
}

// RenderStats describes one frame.
type RenderStats struct {
	Nodes     int
	Viewports int
	Changed   int
	Layout    time.Duration
	Paint     time.Duration
	Diff      time.Duration
}

// LogValue implements slog.LogValuer.
func (s RenderStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("nodes", s.Nodes),
		slog.Int("viewports", s.Viewports),
		slog.Int("changed", s.Changed),
		slog.Duration("layout", s.Layout),
		slog.Duration("paint", s.Paint),
		slog.Duration("diff", s.Diff),
	)
}

// Frame is the result of one render.
type Frame struct {
	Layout *LayoutNode
	Diff   []CellChange
	Stats  RenderStats
}

// RenderingEngine runs layout, paints the node tree through clipping
// viewports and diffs the screen.
type RenderingEngine struct {
	layout *LayoutEngine
	screen *DualBuffer
	log    *slog.Logger
}

// NewRenderingEngine paints into screen using layout.
func NewRenderingEngine(layout *LayoutEngine, screen *DualBuffer) *RenderingEngine {
	return &RenderingEngine{
		layout: layout,
		screen: screen,
		log:    slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets the logger frame stats are written to at debug level.
func (r *RenderingEngine) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	r.log = l
}

// Screen returns the double buffer frames are painted into.
func (r *RenderingEngine) Screen() *DualBuffer {
	return r.screen
}

// Layout returns the layout engine.
func (r *RenderingEngine) Layout() *LayoutEngine {
	return r.layout
}

// Resize changes the screen size; the next frame repaints everything.
func (r *RenderingEngine) Resize(width, height int) {
	r.screen.Resize(width, height)
}

type frameState struct {
	state RenderState
	stats *RenderStats
}

// Render lays out root over the whole screen, paints it and returns the
// cells that changed since the previous frame. Panics from component
// painters propagate to the caller.
func (r *RenderingEngine) Render(root *Element, state RenderState) *Frame {
	f := &Frame{}
	start := time.Now()

	f.Layout = r.layout.CalculateLayout(root, LayoutContext{
		Available: Bounds{Width: r.screen.Width(), Height: r.screen.Height()},
	})
	painted := time.Now()
	f.Stats.Layout = painted.Sub(start)

	r.screen.Current().Clear()
	if f.Layout != nil {
		fs := &frameState{state: state, stats: &f.Stats}
		r.paint(f.Layout, r.screen, ScreenViewport(r.screen.Width(), r.screen.Height()), fs)
	}
	diffed := time.Now()
	f.Stats.Paint = diffed.Sub(painted)

	f.Diff = r.screen.SwapAndGetDiff()
	f.Stats.Diff = time.Since(diffed)
	f.Stats.Changed = len(f.Diff)

	r.log.Debug("frame", "stats", f.Stats)
	return f
}

func (r *RenderingEngine) paint(n *LayoutNode, surf Surface, vp *Viewport, fs *frameState) {
	el := n.Element
	if el.hidden() {
		return
	}
	fs.stats.Nodes++
	st := &el.Style
	buf := surf.CurrentBuffer()
	style := st.cellStyle()

	if !st.BG.IsDefault() {
		fillBounds(buf, n.Bounds, NewCell(' ', style))
	}
	if st.Border != BorderNone {
		drawBorder(buf, n.Bounds, st.Border.Chars(), style)
	}

	cb := n.ContentBounds
	if el.Text != "" && !cb.Empty() {
		for i, line := range textLines(el, cb.Width) {
			if i >= cb.Height {
				break
			}
			writeTextWithin(buf, cb, cb.X, cb.Y+i, line, style)
		}
	}

	if rr, ok := el.Component.(Renderer); ok {
		rr.Render(n.Bounds, el.Style, surf, &RenderContext{
			Surface:             surf,
			Style:               el.Style,
			FocusedID:           fs.state.FocusedID,
			HoveredID:           fs.state.HoveredID,
			ScrollOffset:        n.ScreenOffset,
			GetElementBounds:    r.layout.GetContainerBounds,
			GetAllElementBounds: r.layout.GetAllElementBounds,
		})
	}

	if len(n.Children) == 0 {
		return
	}
	childSurf, childVP := surf, vp
	if st.Clips() {
		childVP = vp.Child(n, n.ActualContentSize)
		childSurf = NewViewportDualBuffer(r.screen, childVP)
		fs.stats.Viewports++
	}
	for _, c := range n.Children {
		r.paint(c, childSurf, childVP, fs)
	}

	// bars belong to the node, not its content, so they use its surface
	if n.Scrollbars != nil {
		paintScrollbars(buf, n, r.layout.config.Scrollbar)
	}
}

func fillBounds(w CellWriter, b Bounds, c Cell) {
	for y := b.Y; y < b.Bottom(); y++ {
		for x := b.X; x < b.Right(); x++ {
			w.SetCell(x, y, c)
		}
	}
}

// drawBorder draws through any CellWriter, merging junctions with borders
// already painted.
func drawBorder(w CellWriter, b Bounds, chars BorderStyle, style Style) {
	borderPlan(b.X, b.Y, b.Width, b.Height, chars, func(x, y int, r rune) {
		if merged, ok := mergeBorders(w.Cell(x, y).Rune, r); ok {
			r = merged
		}
		w.SetCell(x, y, NewCell(r, style))
	})
}
