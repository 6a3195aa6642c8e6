// Package session wires a layout engine, renderer and scroll handler to one
// element tree and holds the interaction state the terminal adapters share:
// keyboard focus, hover, key bindings and the cells waiting to be flushed.
package session

import (
	"log/slog"

	"github.com/kungfusheep/flexview"
)

// Session drives one element tree. It is not safe for concurrent use;
// adapters call it from their event loop only.
type Session struct {
	root     *flexview.Element
	cfg      flexview.Config
	renderer *flexview.RenderingEngine
	scroll   *flexview.ScrollHandler
	log      *slog.Logger

	focused string
	hovered string
	frame   *flexview.Frame
	pending []flexview.CellChange
	frames  int
}

// New creates a session over a width×height screen and renders the first
// frame.
func New(root *flexview.Element, cfg flexview.Config, width, height int, log *slog.Logger) *Session {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	layout := flexview.NewLayoutEngine(cfg)
	layout.SetLogger(log)
	renderer := flexview.NewRenderingEngine(layout, flexview.NewDualBuffer(width, height))
	if cfg.Debug {
		renderer.SetLogger(log)
	}

	s := &Session{
		root:     root,
		cfg:      cfg,
		renderer: renderer,
		log:      log,
	}
	s.scroll = flexview.NewScrollHandler(layout, s.Render)
	s.scroll.SetLogger(log)
	s.Render()
	s.focusFirst()
	return s
}

// Render paints a frame and queues its changes for the next Flush.
func (s *Session) Render() {
	s.frame = s.renderer.Render(s.root, flexview.RenderState{
		FocusedID: s.focused,
		HoveredID: s.hovered,
	})
	s.pending = append(s.pending, s.frame.Diff...)
	s.frames++
}

// Frame returns the most recent frame.
func (s *Session) Frame() *flexview.Frame {
	return s.frame
}

// Frames returns the number of frames rendered so far.
func (s *Session) Frames() int {
	return s.frames
}

// Screen returns the last painted frame's cells.
func (s *Session) Screen() *flexview.Buffer {
	return s.renderer.Screen().Previous()
}

// Layout returns the layout engine.
func (s *Session) Layout() *flexview.LayoutEngine {
	return s.renderer.Layout()
}

// Flush returns the changes queued since the last call, in paint order.
// Applying them in order leaves the terminal matching Screen.
func (s *Session) Flush() []flexview.CellChange {
	out := s.pending
	s.pending = nil
	return out
}

// Resize changes the screen size and repaints everything.
func (s *Session) Resize(width, height int) {
	if width == s.renderer.Screen().Width() && height == s.renderer.Screen().Height() {
		return
	}
	s.log.Debug("resize", "width", width, "height", height)
	s.renderer.Resize(width, height)
	s.pending = nil
	s.Render()
}

// Redraw forces the next flush to repaint every cell.
func (s *Session) Redraw() {
	s.renderer.Screen().Invalidate()
	s.pending = nil
	s.Render()
}

// Focused returns the ID of the scrollable receiving scroll keys.
func (s *Session) Focused() string {
	return s.focused
}

// Hovered returns the ID of the element under the pointer.
func (s *Session) Hovered() string {
	return s.hovered
}

// focusIDs returns the scrollables that can take focus, outermost first.
func (s *Session) focusIDs() []string {
	var ids []string
	for _, n := range s.Layout().Scrollables() {
		if n.Element.ID != "" {
			ids = append(ids, n.Element.ID)
		}
	}
	return ids
}

func (s *Session) focusFirst() {
	if ids := s.focusIDs(); len(ids) > 0 {
		s.focus(ids[0])
	}
}

func (s *Session) focus(id string) {
	if id == s.focused {
		return
	}
	s.focused = id
	s.log.Debug("focus", "element", id)
	s.Render()
}

// FocusNext moves focus to the next scrollable, wrapping around; a negative
// step moves backwards. It reports whether focus changed.
func (s *Session) FocusNext(step int) bool {
	ids := s.focusIDs()
	if len(ids) == 0 {
		return false
	}
	at := -1
	for i, id := range ids {
		if id == s.focused {
			at = i
			break
		}
	}
	next := ((at+step)%len(ids) + len(ids)) % len(ids)
	if at < 0 {
		next = 0
	}
	prev := s.focused
	s.focus(ids[next])
	return s.focused != prev
}

var scrollKeys = map[string]flexview.ScrollKey{
	"up":     flexview.ScrollKeyUp,
	"k":      flexview.ScrollKeyUp,
	"down":   flexview.ScrollKeyDown,
	"j":      flexview.ScrollKeyDown,
	"left":   flexview.ScrollKeyLeft,
	"h":      flexview.ScrollKeyLeft,
	"right":  flexview.ScrollKeyRight,
	"l":      flexview.ScrollKeyRight,
	"pgup":   flexview.ScrollKeyPageUp,
	"b":      flexview.ScrollKeyPageUp,
	"pgdown": flexview.ScrollKeyPageDown,
	"f":      flexview.ScrollKeyPageDown,
	" ":      flexview.ScrollKeyPageDown,
	"home":   flexview.ScrollKeyHome,
	"g":      flexview.ScrollKeyHome,
	"end":    flexview.ScrollKeyEnd,
	"G":      flexview.ScrollKeyEnd,
}

// Result is what handling one input asks of the adapter.
type Result struct {
	Changed bool // a frame was rendered
	Quit    bool
}

// HandleKey applies a key named the way bubbletea names keys ("up",
// "pgdown", "tab", "ctrl+c", "q", ...).
func (s *Session) HandleKey(name string) Result {
	before := s.frames
	switch name {
	case "q", "ctrl+c", "esc":
		return Result{Quit: true}
	case "tab":
		s.FocusNext(1)
	case "shift+tab":
		s.FocusNext(-1)
	case "ctrl+l":
		s.Redraw()
	default:
		key, ok := scrollKeys[name]
		if !ok || s.focused == "" {
			return Result{}
		}
		s.scroll.HandleArrowKeyScroll(s.focused, key)
	}
	return Result{Changed: s.frames != before}
}

// MouseAction is the kind of a mouse report.
type MouseAction uint8

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMotion
	MouseWheelUp
	MouseWheelDown
	MouseWheelLeft
	MouseWheelRight
)

// HandleMouse applies a mouse report at screen cell (x, y). Only the left
// button drives scrollbars; other presses still move focus.
func (s *Session) HandleMouse(x, y int, action MouseAction, left bool) Result {
	before := s.frames
	step := max(1, s.cfg.WheelStep)
	switch action {
	case MouseWheelUp:
		s.scroll.HandleScrollEvent(x, y, 0, -step)
	case MouseWheelDown:
		s.scroll.HandleScrollEvent(x, y, 0, step)
	case MouseWheelLeft:
		s.scroll.HandleScrollEvent(x, y, -step, 0)
	case MouseWheelRight:
		s.scroll.HandleScrollEvent(x, y, step, 0)
	case MousePress:
		if left && s.scroll.HandleMouseDown(x, y) {
			break
		}
		if id := s.scrollableAt(x, y); id != "" {
			s.focus(id)
		}
	case MouseMotion:
		if s.scroll.Dragging() {
			s.scroll.HandleScrollbarDrag(x, y)
			break
		}
		s.hover(x, y)
	case MouseRelease:
		s.scroll.HandleMouseUp()
	}
	return Result{Changed: s.frames != before}
}

// scrollableAt returns the ID of the innermost identified scrollable whose
// visible area holds (x, y).
func (s *Session) scrollableAt(x, y int) string {
	nodes := s.Layout().Scrollables()
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n.Element.ID != "" && n.ScreenBounds().Intersect(n.Clip).Contains(x, y) {
			return n.Element.ID
		}
	}
	return ""
}

// hover tracks the smallest identified element whose visible area holds
// the pointer. Parts scrolled or clipped away do not count.
func (s *Session) hover(x, y int) {
	layout := s.Layout()
	id, area := "", -1
	for eid := range layout.GetAllElementBounds() {
		n, ok := layout.FindNode(eid)
		if !ok {
			continue
		}
		b := n.ScreenBounds().Intersect(n.Clip)
		if !b.Contains(x, y) {
			continue
		}
		if a := b.Width * b.Height; area < 0 || a < area || (a == area && eid < id) {
			id, area = eid, a
		}
	}
	if id != s.hovered {
		s.hovered = id
		s.Render()
	}
}
