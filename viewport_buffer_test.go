package flexview

import "testing"

// listViewport is a 6x3 window at (2,2) scrolled 4 rows into 10 rows of
// content.
func listViewport() *Viewport {
	screen := ScreenViewport(20, 10)
	return &Viewport{
		Bounds:       Bounds{X: 2, Y: 2, Width: 6, Height: 3},
		ClipRect:     Bounds{X: 2, Y: 2, Width: 6, Height: 3},
		ContentSize:  Size{Width: 6, Height: 10},
		ScrollOffset: Point{Y: 4},
		parent:       screen,
	}
}

func TestViewportBufferProxy(t *testing.T) {
	t.Run("Translates", func(t *testing.T) {
		buf := NewBuffer(20, 10)
		p := NewViewportBufferProxy(buf, listViewport())

		p.SetCell(2, 6, NewCell('x', DefaultStyle()))
		if got := buf.Cell(2, 2).Rune; got != 'x' {
			t.Errorf("expected content row 6 on screen row 2, got %q", got)
		}
		if got := p.Cell(2, 6).Rune; got != 'x' {
			t.Errorf("read back %q", got)
		}
		if got, want := p.Clip(), (Bounds{X: 2, Y: 2, Width: 6, Height: 3}); got != want {
			t.Errorf("clip %+v, want %+v", got, want)
		}
		if p.Width() != 6 || p.Height() != 10 {
			t.Errorf("size %dx%d, want 6x10", p.Width(), p.Height())
		}
	})

	t.Run("DropsClipped", func(t *testing.T) {
		buf := NewBuffer(20, 10)
		before := buf.String()
		p := NewViewportBufferProxy(buf, listViewport())

		for _, pt := range []Point{{2, 5}, {2, 9}, {1, 6}, {8, 6}, {-3, -3}, {100, 100}} {
			p.SetCell(pt.X, pt.Y, NewCell('#', DefaultStyle()))
		}
		p.SetText(0, 3, "scrolled away", DefaultStyle())
		if got := buf.String(); got != before {
			t.Errorf("clipped writes reached the buffer:\n%s", got)
		}
		if got := p.Cell(2, 5); got != EmptyCell() {
			t.Errorf("clipped read %+v", got)
		}
	})

	t.Run("SetTextClipsToViewport", func(t *testing.T) {
		buf := NewBuffer(20, 10)
		p := NewViewportBufferProxy(buf, listViewport())

		n := p.SetText(0, 6, "abcdefghij", DefaultStyle())
		if n != 10 {
			t.Errorf("advanced %d, want 10", n)
		}
		if got := buf.GetLine(2); got != "  cdefgh" {
			t.Errorf("screen row 2 = %q", got)
		}
	})

	t.Run("WideGlyphStraddle", func(t *testing.T) {
		buf := NewBuffer(20, 10)
		p := NewViewportBufferProxy(buf, listViewport())

		// right edge: lead at x=7 is visible, its tail at x=8 is not
		p.SetText(7, 6, "世", DefaultStyle().Foreground(Red))
		if c := buf.Cell(7, 2); c.Rune != ' ' || c.Style.FG != Red {
			t.Errorf("right edge: got %+v", c)
		}
		if got := buf.Cell(8, 2); got != EmptyCell() {
			t.Errorf("wrote past the clip: %+v", got)
		}

		// left edge: only the tail is visible
		p.SetText(1, 7, "世", DefaultStyle())
		if got := buf.Cell(2, 3).Rune; got != ' ' {
			t.Errorf("left edge: got %q", got)
		}

		// whole glyph inside
		p.SetText(3, 6, "世", DefaultStyle())
		if buf.Cell(3, 2).Rune != '世' || !buf.Cell(4, 2).IsContinuation() {
			t.Errorf("expected whole glyph, got %q %q", buf.Cell(3, 2).Rune, buf.Cell(4, 2).Rune)
		}
	})

	t.Run("Nested", func(t *testing.T) {
		buf := NewBuffer(20, 10)
		outer := listViewport()
		inner := &Viewport{
			Bounds:       Bounds{X: 3, Y: 6, Width: 4, Height: 4},
			ClipRect:     Bounds{X: 3, Y: 6, Width: 4, Height: 4},
			ContentSize:  Size{Width: 4, Height: 8},
			ScrollOffset: Point{Y: 1},
			parent:       outer,
		}
		p := NewViewportBufferProxy(buf, inner)

		// inner clip on screen: rows 2..5 cut to the outer rows 2..4
		if got, want := p.Clip(), (Bounds{X: 3, Y: 2, Width: 4, Height: 3}); got != want {
			t.Fatalf("clip %+v, want %+v", got, want)
		}
		// content (3, 7): -1 inner, -4 outer
		p.SetCell(3, 7, NewCell('n', DefaultStyle()))
		if got := buf.Cell(3, 2).Rune; got != 'n' {
			t.Errorf("got %q at (3,2)", got)
		}
		p.SetCell(3, 11, NewCell('z', DefaultStyle()))
		if got := buf.Cell(3, 6).Rune; got != ' ' {
			t.Errorf("outer clip ignored: %q", got)
		}
	})
}

func TestViewportDualBuffer(t *testing.T) {
	screen := NewDualBuffer(20, 10)
	vdb := NewViewportDualBuffer(screen, listViewport())

	var s Surface = vdb
	s.CurrentBuffer().SetText(0, 6, "top", DefaultStyle())
	s.CurrentBuffer().SetText(0, 0, "hidden", DefaultStyle())

	if got := screen.Current().GetLine(2); got != "  p" {
		t.Errorf("row 2 = %q", got)
	}
	changes := s.SwapAndGetDiff()
	if len(changes) != 1 || changes[0].X != 2 || changes[0].Y != 2 {
		t.Errorf("diff %+v", changes)
	}
	if vdb.Viewport().ScrollOffset.Y != 4 {
		t.Error("viewport not kept")
	}
}
