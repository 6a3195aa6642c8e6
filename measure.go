package flexview

// unbounded marks an axis with no available-space limit during measurement.
const unbounded = -1

// ContentMeasurer computes intrinsic sizes independent of final placement.
// The LayoutEngine owns one and shares its per-pass cache, so sizes used for
// scroll ranges and sizes used for placement come from the same code.
type ContentMeasurer struct {
	cache sizeCache
}

// NewContentMeasurer returns a measurer with an empty cache.
func NewContentMeasurer() *ContentMeasurer {
	return &ContentMeasurer{}
}

// begin starts a new pass over the tree indexed by a. Sizes from earlier
// passes are discarded.
func (m *ContentMeasurer) begin(a *arena) {
	m.cache.reset(a)
}

// standalone starts a fresh pass rooted at el for a direct call.
func (m *ContentMeasurer) standalone(el *Element) {
	m.begin(newArena(el))
}

// MeasureElement returns the border-box intrinsic size of el given the width
// it may occupy. Explicit cell dimensions are returned as-is; percentages
// resolve against availableWidth (height percentages stay intrinsic since no
// height is available).
func (m *ContentMeasurer) MeasureElement(el *Element, availableWidth int) Size {
	m.standalone(el)
	return m.measure(el, max(0, availableWidth), unbounded)
}

// MeasureContainer returns the aggregate size of el's children laid out in
// el's content box: the main-axis sum with gaps between non-zero-extent
// children and the cross-axis maximum, or the stacked lines when el wraps.
func (m *ContentMeasurer) MeasureContainer(el *Element, availableWidth int) Size {
	m.standalone(el)
	return m.children(el, max(0, availableWidth), unbounded)
}

// resolveDim resolves fixed and percentage dimensions. Percentages against
// an unbounded axis do not resolve.
func resolveDim(d Dimension, available int) (int, bool) {
	if d.Kind == DimPercent && available < 0 {
		return 0, false
	}
	return d.resolve(available)
}

// shrinkAvail removes n cells from an available extent, keeping unbounded
// extents unbounded.
func shrinkAvail(available, n int) int {
	if available < 0 {
		return unbounded
	}
	return max(0, available-n)
}

// measure returns el's border-box size when it may occupy w×h cells.
func (m *ContentMeasurer) measure(el *Element, w, h int) Size {
	if el.hidden() {
		return Size{}
	}
	if s, ok := m.cache.get(el, w, h); ok {
		return s
	}

	st := &el.Style
	chrome := st.chrome()
	ew, fixedW := resolveDim(st.Width, w)
	eh, fixedH := resolveDim(st.Height, h)

	innerW := shrinkAvail(w, chrome.Horizontal())
	if fixedW {
		innerW = max(0, ew-chrome.Horizontal())
	}
	innerH := shrinkAvail(h, chrome.Vertical())
	if fixedH {
		innerH = max(0, eh-chrome.Vertical())
	}

	var size Size
	if !fixedW || !fixedH {
		content := m.content(el, innerW, innerH)
		size = Size{
			Width:  content.Width + chrome.Horizontal(),
			Height: content.Height + chrome.Vertical(),
		}
	}
	if fixedW {
		size.Width = ew
	}
	if fixedH {
		size.Height = eh
	}

	m.cache.put(el, w, h, size)
	return size
}

// content returns the size of el's content box contents.
func (m *ContentMeasurer) content(el *Element, w, h int) Size {
	var size Size
	switch {
	case el.Component != nil:
		size = el.Component.IntrinsicSize(SizeContext{
			Available:   Size{Width: max(0, w), Height: max(0, h)},
			ParentStyle: m.parentStyle(el),
			Cache:       &m.cache,
		})
		size.Width, size.Height = max(0, size.Width), max(0, size.Height)
	case el.Text != "":
		size = measureText(el, max(0, w))
	}
	if len(el.Children) > 0 {
		kids := m.children(el, w, h)
		size.Width = max(size.Width, kids.Width)
		size.Height = max(size.Height, kids.Height)
	}
	return size
}

func (m *ContentMeasurer) parentStyle(el *Element) *ElementStyle {
	a := m.cache.arena
	id, ok := a.id(el)
	if !ok {
		return nil
	}
	if p := a.element(a.parentOf(id)); p != nil {
		return &p.Style
	}
	return nil
}

// children aggregates el's children inside a w×h content box.
func (m *ContentMeasurer) children(el *Element, w, h int) Size {
	st := &el.Style
	dir := st.direction()
	items := m.flexItems(st, el.Children, w, h)
	if len(items) == 0 {
		return Size{}
	}
	gap := max(0, st.Gap)
	availMain := mainOf(dir, w, h)
	availCross := crossOf(dir, w, h)
	canShrink := !st.Scrollable()

	var main, cross int
	if st.wraps() {
		for i, line := range breakLines(items, availMain, gap) {
			lm, lc := m.lineExtent(dir, line, availMain, availCross, gap, canShrink)
			main = max(main, lm)
			cross += lc
			if i > 0 {
				cross += gap
			}
		}
	} else {
		main, cross = m.lineExtent(dir, items, availMain, availCross, gap, canShrink)
	}
	if dir == Row {
		return Size{Width: main, Height: cross}
	}
	return Size{Width: cross, Height: main}
}

// lineExtent returns the intrinsic main extent of a line and its cross
// extent. In a bounded row the items are first grown or shrunk into the
// available width, as arrange does, because text wraps to the width it
// finally receives.
func (m *ContentMeasurer) lineExtent(dir FlexDirection, line []flexItem, availMain, availCross, gap int, canShrink bool) (int, int) {
	main := gap * gapCount(line)
	for _, it := range line {
		main += it.hypo
	}
	cross := 0
	if dir != Row || availMain < 0 {
		for _, it := range line {
			cross = max(cross, it.crossOuter(dir))
		}
		return main, cross
	}
	resolveMain(line, availMain, gap, canShrink)
	for j := range line {
		it := &line[j]
		c := it.crossOuter(dir)
		if it.main != mainOf(dir, it.outer.Width, it.outer.Height) {
			c, _ = m.crossSize(dir, it, availCross)
		}
		cross = max(cross, c)
	}
	return main, cross
}

// outerSize is a child's intrinsic margin-box size inside a w×h content box.
// Chrome is only added on an axis without an explicit dimension, which
// measure already guarantees.
func (m *ContentMeasurer) outerSize(child *Element, w, h int) Size {
	margin := child.Style.Margin.clamped()
	s := m.measure(child, shrinkAvail(w, margin.Horizontal()), shrinkAvail(h, margin.Vertical()))
	return Size{
		Width:  s.Width + margin.Horizontal(),
		Height: s.Height + margin.Vertical(),
	}
}
