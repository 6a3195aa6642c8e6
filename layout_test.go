package flexview

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func layoutOf(root *Element, w, h int) (*LayoutEngine, *LayoutNode) {
	e := NewLayoutEngine(DefaultConfig())
	n := e.CalculateLayout(root, LayoutContext{Available: Bounds{Width: w, Height: h}})
	return e, n
}

func childBounds(n *LayoutNode) []Bounds {
	out := make([]Bounds, len(n.Children))
	for i, c := range n.Children {
		out[i] = c.Bounds
	}
	return out
}

func lines(n int) []*Element {
	out := make([]*Element, n)
	for i := range out {
		out[i] = Text(fmt.Sprintf("item %d", i))
	}
	return out
}

func TestLayoutColumnStacksChildren(t *testing.T) {
	_, root := layoutOf(Box(Text("Header"), Text("Line 1"), Text("Line 2")), 40, 10)

	if got, want := root.Bounds, (Bounds{Width: 40, Height: 3}); got != want {
		t.Errorf("root bounds %+v, want %+v", got, want)
	}
	want := []Bounds{
		{X: 0, Y: 0, Width: 40, Height: 1},
		{X: 0, Y: 1, Width: 40, Height: 1},
		{X: 0, Y: 2, Width: 40, Height: 1},
	}
	if diff := cmp.Diff(want, childBounds(root)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutRowPercent(t *testing.T) {
	_, root := layoutOf(FRow(
		Text("A").Width(Percent(50)),
		Text("B").Width(Percent(50)),
	), 40, 10)

	want := []Bounds{
		{X: 0, Y: 0, Width: 20, Height: 1},
		{X: 20, Y: 0, Width: 20, Height: 1},
	}
	if diff := cmp.Diff(want, childBounds(root)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutPercentResolvesAgainstParent(t *testing.T) {
	_, root := layoutOf(FRow(
		FRow(Box().Width(Percent(50)).Height(Cells(1))).Width(Cells(20)),
	), 80, 10)

	inner := root.Children[0].Children[0]
	if inner.Bounds.Width != 10 {
		t.Errorf("width = %d, want 10 (half the parent, not the screen)", inner.Bounds.Width)
	}
}

func TestLayoutGrow(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		_, root := layoutOf(FRow(
			Box().Size(5, 1),
			Box().Size(5, 1).Grow(1),
			Box().Size(5, 1),
		).Width(Cells(30)), 80, 10)

		want := []Bounds{
			{X: 0, Y: 0, Width: 5, Height: 1},
			{X: 5, Y: 0, Width: 20, Height: 1},
			{X: 25, Y: 0, Width: 5, Height: 1},
		}
		if diff := cmp.Diff(want, childBounds(root)); diff != "" {
			t.Errorf("children mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("proportional", func(t *testing.T) {
		_, root := layoutOf(FRow(
			Box().Size(0, 1).Grow(1),
			Box().Size(0, 1).Grow(2),
		).Width(Cells(9)), 80, 10)

		if a, b := root.Children[0].Bounds.Width, root.Children[1].Bounds.Width; a != 3 || b != 6 {
			t.Errorf("widths %d,%d, want 3,6", a, b)
		}
	})

	t.Run("remainder", func(t *testing.T) {
		_, root := layoutOf(FRow(
			Box().Grow(1),
			Box().Grow(1),
			Box().Grow(1),
		).Width(Cells(10)), 80, 10)

		total := 0
		for _, c := range root.Children {
			total += c.Bounds.Width
		}
		if total != 10 {
			t.Errorf("grown widths sum to %d, want 10", total)
		}
	})
}

func TestLayoutFill(t *testing.T) {
	_, root := layoutOf(FCol(
		Text("header"),
		Box(Text("body")).Height(Fill),
		Text("footer"),
	).Height(Cells(10)), 20, 24)

	want := []Bounds{
		{X: 0, Y: 0, Width: 20, Height: 1},
		{X: 0, Y: 1, Width: 20, Height: 8},
		{X: 0, Y: 9, Width: 20, Height: 1},
	}
	if diff := cmp.Diff(want, childBounds(root)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutShrink(t *testing.T) {
	t.Run("even", func(t *testing.T) {
		_, root := layoutOf(FRow(Box().Size(20, 1), Box().Size(20, 1)).Width(Cells(30)), 80, 10)
		if a, b := root.Children[0].Bounds.Width, root.Children[1].Bounds.Width; a != 15 || b != 15 {
			t.Errorf("widths %d,%d, want 15,15", a, b)
		}
	})

	t.Run("pinned", func(t *testing.T) {
		_, root := layoutOf(FRow(
			Box().Size(20, 1).Shrink(NoShrink),
			Box().Size(20, 1),
		).Width(Cells(30)), 80, 10)
		if a, b := root.Children[0].Bounds.Width, root.Children[1].Bounds.Width; a != 20 || b != 10 {
			t.Errorf("widths %d,%d, want 20,10", a, b)
		}
	})

	t.Run("floor", func(t *testing.T) {
		_, root := layoutOf(FRow(
			Box().Size(4, 3).Border(BorderSingle),
			Box().Size(40, 3),
		).Width(Cells(10)), 80, 10)
		if a, b := root.Children[0].Bounds.Width, root.Children[1].Bounds.Width; a != 2 || b != 8 {
			t.Errorf("widths %d,%d, want 2,8", a, b)
		}
	})
}

func TestLayoutJustify(t *testing.T) {
	tests := []struct {
		justify Justify
		want    []int
	}{
		{JustifyStart, []int{0, 2}},
		{JustifyCenter, []int{3, 5}},
		{JustifyEnd, []int{6, 8}},
		{JustifySpaceBetween, []int{0, 8}},
		{JustifySpaceAround, []int{1, 6}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.justify), func(t *testing.T) {
			_, root := layoutOf(FRow(Box().Size(2, 1), Box().Size(2, 1)).Justify(tt.justify).Width(Cells(10)), 80, 10)
			got := []int{root.Children[0].Bounds.X, root.Children[1].Bounds.X}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("x positions (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLayoutAlign(t *testing.T) {
	tests := []struct {
		align Align
		small Bounds
		auto  Bounds
	}{
		{AlignStretch, Bounds{X: 2, Y: 0, Width: 2, Height: 1}, Bounds{X: 4, Y: 0, Width: 2, Height: 5}},
		{AlignStart, Bounds{X: 2, Y: 0, Width: 2, Height: 1}, Bounds{X: 4, Y: 0, Width: 2, Height: 0}},
		{AlignCenter, Bounds{X: 2, Y: 2, Width: 2, Height: 1}, Bounds{X: 4, Y: 2, Width: 2, Height: 0}},
		{AlignEnd, Bounds{X: 2, Y: 4, Width: 2, Height: 1}, Bounds{X: 4, Y: 5, Width: 2, Height: 0}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.align), func(t *testing.T) {
			_, root := layoutOf(FRow(
				Box().Size(2, 5),
				Box().Size(2, 1),
				Box().Width(Cells(2)),
			).Align(tt.align), 80, 10)

			if got := root.Children[1].Bounds; got != tt.small {
				t.Errorf("fixed child %+v, want %+v", got, tt.small)
			}
			if got := root.Children[2].Bounds; got != tt.auto {
				t.Errorf("auto child %+v, want %+v", got, tt.auto)
			}
		})
	}
}

func TestLayoutWrap(t *testing.T) {
	// 12*4 + 2*3 = 54 > 50, so the fourth child starts the second line
	e, root := layoutOf(FRow(boxes(5, 12, 3)...).Wrap().Gap(2).Width(Cells(50)), 80, 20)

	want := []Bounds{
		{X: 0, Y: 0, Width: 12, Height: 3},
		{X: 14, Y: 0, Width: 12, Height: 3},
		{X: 28, Y: 0, Width: 12, Height: 3},
		{X: 0, Y: 5, Width: 12, Height: 3},
		{X: 14, Y: 5, Width: 12, Height: 3},
	}
	if diff := cmp.Diff(want, childBounds(root)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	if got, want := root.Bounds.Height, 3+3+2; got != want {
		t.Errorf("height = %d, want line1 + line2 + gap = %d", got, want)
	}
	if got := e.Measurer().MeasureElement(root.Element, 80).Height; got != root.Bounds.Height {
		t.Errorf("measured height %d disagrees with layout %d", got, root.Bounds.Height)
	}
}

func TestLayoutGapSkipsZeroExtent(t *testing.T) {
	_, root := layoutOf(FRow(Box().Size(2, 1), Box(), Box().Size(2, 1)).Gap(3).Align(AlignStart), 80, 10)
	if got := root.Children[2].Bounds.X; got != 5 {
		t.Errorf("third child x = %d, want 5", got)
	}
	if got := root.Children[1].Bounds; got.Width != 0 || got.Height != 0 {
		t.Errorf("empty container should be zero-sized, got %+v", got)
	}
}

func TestLayoutBoxModel(t *testing.T) {
	_, root := layoutOf(Box(Text("x")).Border(BorderSingle).Pad(Uniform(1)).Size(10, 6), 80, 24)

	if got, want := root.ContentBounds, (Bounds{X: 2, Y: 2, Width: 6, Height: 2}); got != want {
		t.Errorf("content bounds %+v, want %+v", got, want)
	}
	if got, want := root.Children[0].Bounds, (Bounds{X: 2, Y: 2, Width: 6, Height: 1}); got != want {
		t.Errorf("child bounds %+v, want %+v", got, want)
	}

	_, root = layoutOf(FCol(Text("a").Margin(Spacing{Top: 1, Left: 2}), Text("b")), 20, 10)
	want := []Bounds{
		{X: 2, Y: 1, Width: 18, Height: 1},
		{X: 0, Y: 2, Width: 20, Height: 1},
	}
	if diff := cmp.Diff(want, childBounds(root)); diff != "" {
		t.Errorf("margins (-want +got):\n%s", diff)
	}
}

func TestLayoutHiddenMirrorsTree(t *testing.T) {
	_, root := layoutOf(Box(Text("a"), Box(Text("b")).Hide(), Text("c")), 20, 10)

	if len(root.Children) != 3 {
		t.Fatalf("expected 3 child nodes, got %d", len(root.Children))
	}
	hidden := root.Children[1]
	if !hidden.Bounds.Empty() || len(hidden.Children) != 1 || !hidden.Children[0].Bounds.Empty() {
		t.Errorf("hidden subtree should be zero-sized, got %+v", hidden.Bounds)
	}
	if got := root.Children[2].Bounds.Y; got != 1 {
		t.Errorf("c at y=%d, want 1", got)
	}
}

func TestLayoutDegenerateSpace(t *testing.T) {
	dims := map[string]Dimension{
		"explicit": Cells(5),
		"auto":     Auto,
		"fill":     Fill,
		"percent":  Percent(50),
	}
	kids := map[string]func() []*Element{
		"none": func() []*Element { return nil },
		"one":  func() []*Element { return lines(1) },
		"many": func() []*Element { return append(lines(5), boxes(3, 4, 2)...) },
	}
	spaces := []Bounds{{}, {Width: -5, Height: -5}, {Width: 1, Height: 0}}

	for dn, d := range dims {
		for kn, mk := range kids {
			for _, space := range spaces {
				name := fmt.Sprintf("%s/%s/%dx%d", dn, kn, space.Width, space.Height)
				t.Run(name, func(t *testing.T) {
					root := FRow(mk()...).Wrap().Gap(2).Pad(Uniform(1)).Border(BorderSingle).Scroll()
					root.Style.Width, root.Style.Height = d, d
					_, n := layoutOf(root, space.Width, space.Height)
					var walk func(*LayoutNode)
					walk = func(n *LayoutNode) {
						if n.Bounds.Width < 0 || n.Bounds.Height < 0 ||
							n.ContentBounds.Width < 0 || n.ContentBounds.Height < 0 ||
							n.ActualContentSize.Width < 0 || n.ActualContentSize.Height < 0 {
							t.Errorf("negative geometry %+v", n)
						}
						for _, c := range n.Children {
							walk(c)
						}
					}
					walk(n)
				})
			}
		}
	}
}

func TestLayoutActualContentSizeScales(t *testing.T) {
	prev := 0
	for _, k := range []int{1, 5, 10, 40, 100} {
		_, root := layoutOf(Box(lines(k)...).Size(20, 5).Scroll(), 80, 24)
		got := root.ActualContentSize.Height
		if got != k {
			t.Errorf("k=%d: content height %d", k, got)
		}
		if got <= prev {
			t.Errorf("k=%d: content height %d does not grow past %d", k, got, prev)
		}
		prev = got
	}
}

func TestLayoutScrollContainer(t *testing.T) {
	list := Box(lines(10)...).WithID("list").Size(20, 5).Scroll()
	e, root := layoutOf(list, 80, 24)

	sb := root.Scrollbars
	if sb == nil || !sb.Vertical.Visible {
		t.Fatal("expected a visible vertical scrollbar")
	}
	if sb.Horizontal.Visible {
		t.Error("did not expect a horizontal scrollbar")
	}
	dims, ok := e.CalculateScrollDimensions("list")
	if !ok {
		t.Fatal("list not found")
	}
	if want := root.ActualContentSize.Height - 5; dims.MaxScrollY != want {
		t.Errorf("max scroll %d, want %d", dims.MaxScrollY, want)
	}

	want := ScrollbarGeometry{
		Visible:        true,
		Track:          Bounds{X: 19, Y: 0, Width: 1, Height: 5},
		Thumb:          Bounds{X: 19, Y: 0, Width: 1, Height: 3},
		TrackStart:     0,
		TrackLength:    5,
		ThumbSize:      3,
		ContentLength:  10,
		ViewportLength: 5,
		MaxScroll:      5,
	}
	if diff := cmp.Diff(want, sb.Vertical); diff != "" {
		t.Errorf("vertical bar (-want +got):\n%s", diff)
	}

	// children never shrink on the scroll axis
	for i, c := range root.Children {
		if c.Bounds.Height != 1 || c.Bounds.Y != i {
			t.Errorf("child %d bounds %+v", i, c.Bounds)
		}
	}
}

func TestLayoutScrollOffsetClamped(t *testing.T) {
	list := Box(lines(10)...).Size(20, 5).Scroll()
	list.ScrollY = 100
	_, root := layoutOf(list, 80, 24)

	if got := root.ScrollOffset; got != (Point{Y: 5}) {
		t.Errorf("offset %+v, want {0 5}", got)
	}
	if got := root.Children[7].ScreenBounds().Y; got != 2 {
		t.Errorf("child 7 screen y = %d, want 2", got)
	}
	if list.ScrollY != 100 {
		t.Error("layout must not write back to the element")
	}
}

func TestLayoutHorizontalScroll(t *testing.T) {
	_, root := layoutOf(Box(Text("0123456789012345678901234567890123456789").NoWrapText()).Size(10, 3).Scroll(), 80, 24)

	if got := root.ActualContentSize.Width; got != 40 {
		t.Errorf("content width %d, want 40", got)
	}
	h := root.Scrollbars.Horizontal
	if !h.Visible || h.TrackLength != 10 || h.Track.Y != 2 {
		t.Errorf("horizontal bar %+v", h)
	}
	if root.Scrollbars.Vertical.Visible {
		t.Error("did not expect a vertical bar")
	}
}

func nestedTree() (outer, inner *Element) {
	inner = Box(lines(10)...).WithID("inner").Size(20, 4).Scroll()
	inner.Children[2].ID = "target"
	kids := append(lines(8), inner, Text("after"))
	outer = Box(kids...).WithID("outer").Size(30, 10).Scroll()
	return outer, inner
}

func TestLayoutNestedScroll(t *testing.T) {
	outer, inner := nestedTree()
	outer.ScrollY = 3
	inner.ScrollY = 2
	e, root := layoutOf(outer, 80, 24)

	if got := root.ActualContentSize.Height; got != 13 {
		t.Fatalf("outer content height %d, want 13", got)
	}
	in, ok := e.FindNode("inner")
	if !ok {
		t.Fatal("inner not found")
	}
	if got, want := in.ScreenBounds(), (Bounds{X: 0, Y: 5, Width: 20, Height: 4}); got != want {
		t.Errorf("inner screen bounds %+v, want %+v", got, want)
	}
	if got, want := in.Clip, (Bounds{Width: 30, Height: 10}); got != want {
		t.Errorf("inner clip %+v, want %+v", got, want)
	}

	target, _ := e.FindNode("target")
	if got := target.ScreenOffset; got != (Point{Y: 5}) {
		t.Errorf("target screen offset %+v, want {0 5}", got)
	}
	if got := target.ScreenBounds().Y; got != 5 {
		t.Errorf("target screen y %d, want 5", got)
	}
	if got, want := target.Clip, (Bounds{X: 0, Y: 5, Width: 20, Height: 4}); got != want {
		t.Errorf("target clip %+v, want %+v", got, want)
	}
}

func TestLayoutQueries(t *testing.T) {
	outer, _ := nestedTree()
	outer.ScrollY = 3
	e, _ := layoutOf(outer, 80, 24)

	t.Run("GetContainerBounds", func(t *testing.T) {
		b, ok := e.GetContainerBounds("inner")
		if !ok || b != (Bounds{X: 0, Y: 5, Width: 20, Height: 4}) {
			t.Errorf("got %+v %v", b, ok)
		}
		if _, ok := e.GetContainerBounds("missing"); ok {
			t.Error("expected missing id to fail")
		}
	})

	t.Run("GetAllElementBounds", func(t *testing.T) {
		all := e.GetAllElementBounds()
		for _, id := range []string{"outer", "inner", "target"} {
			if _, ok := all[id]; !ok {
				t.Errorf("missing %s", id)
			}
		}
	})

	t.Run("Scrollables", func(t *testing.T) {
		var ids []string
		for _, n := range e.Scrollables() {
			ids = append(ids, n.Element.ID)
		}
		if diff := cmp.Diff([]string{"outer", "inner"}, ids); diff != "" {
			t.Errorf("order (-want +got):\n%s", diff)
		}
	})

	t.Run("GetAllScrollbarBounds", func(t *testing.T) {
		bars := e.GetAllScrollbarBounds()
		var ids []string
		for _, b := range bars {
			ids = append(ids, b.ElementID)
		}
		// nested bars are painted before their ancestor's
		if diff := cmp.Diff([]string{"inner", "outer"}, ids); diff != "" {
			t.Errorf("order (-want +got):\n%s", diff)
		}
		if got, want := bars[0].Track, (Bounds{X: 19, Y: 5, Width: 1, Height: 4}); got != want {
			t.Errorf("inner track %+v, want %+v", got, want)
		}
		if got, want := bars[1].Track, (Bounds{X: 29, Y: 0, Width: 1, Height: 10}); got != want {
			t.Errorf("outer track %+v, want %+v", got, want)
		}
	})

	t.Run("NearestScrollable", func(t *testing.T) {
		n, ok := e.NearestScrollable("target")
		if !ok || n.Element.ID != "inner" {
			t.Errorf("got %v %v", n, ok)
		}
		n, ok = e.NearestScrollable("outer")
		if !ok || n.Element.ID != "outer" {
			t.Errorf("self: got %v %v", n, ok)
		}
	})
}

func TestLayoutMatchesMeasurement(t *testing.T) {
	root := Box(
		FRow(Text("alpha"), Text("beta gamma"), Box().Size(3, 2)).Gap(1),
		FRow(boxes(7, 6, 1)...).Wrap().Gap(1),
		Box(Text("wrapped text, with a comma")).Border(BorderRounded).Pad(Uniform(1)),
	).WithID("content").Gap(1).Height(Cells(4)).Scroll()

	e, n := layoutOf(root, 24, 10)
	measured := e.Measurer().MeasureContainer(root, n.ContentBounds.Width)
	if measured.Height != n.ActualContentSize.Height {
		t.Errorf("measured %d rows, layout %d", measured.Height, n.ActualContentSize.Height)
	}
}

func TestLayoutShrunkTextKeepsItsLines(t *testing.T) {
	row := FRow(Text("aaaa bbbb"), Text("cccc dddd"))
	_, root := layoutOf(Box(row, Text("next")), 10, 10)

	want := []Bounds{
		{X: 0, Y: 0, Width: 5, Height: 2},
		{X: 5, Y: 0, Width: 5, Height: 2},
	}
	if diff := cmp.Diff(want, childBounds(root.Children[0])); diff != "" {
		t.Errorf("row children mismatch (-want +got):\n%s", diff)
	}
	if got := root.Children[1].Bounds.Y; got != 2 {
		t.Errorf("next at y=%d, want 2", got)
	}

	r := newRenderer(10, 4)
	r.Render(Box(FRow(Text("aaaa bbbb"), Text("cccc dddd")), Text("next")), RenderState{})
	if got, want := screenText(r), "aaaa cccc\nbbbb dddd\nnext"; got != want {
		t.Errorf("screen %q, want %q", got, want)
	}
}

func TestLayoutShrunkTextScrollsIntoView(t *testing.T) {
	row := FRow(Text("aaaa bbbb"), Text("cccc dddd")).Width(Fill)
	list := Box(row, Text("next")).WithID("list").Size(10, 2).Scroll()
	e, root := layoutOf(list, 20, 5)

	if got := root.Children[0].Bounds; got.Width != 10 || got.Height != 2 {
		t.Errorf("row bounds %+v, want 10x2", got)
	}

	dims, ok := e.CalculateScrollDimensions("list")
	if !ok {
		t.Fatal("list not found")
	}
	if dims.ContentHeight != 3 || dims.MaxScrollY != 1 {
		t.Errorf("content height %d max scroll %d, want 3 and 1", dims.ContentHeight, dims.MaxScrollY)
	}
}
