package flexview

// flexItem is one visible child during flex distribution. All main-axis
// quantities are margin-box sizes.
type flexItem struct {
	index  int // position in the parent's Children
	el     *Element
	margin Spacing
	outer  Size // intrinsic margin-box size

	basis  int // starting size for grow/shrink
	hypo   int // extent used for line breaking and intrinsic sums
	floor  int // border + padding + margins; shrinking stops here
	grow   float64
	shrink float64
	zero   bool // contributes no gap

	main int // resolved size
}

func mainOf(dir FlexDirection, w, h int) int {
	if dir == Row {
		return w
	}
	return h
}

func crossOf(dir FlexDirection, w, h int) int {
	if dir == Row {
		return h
	}
	return w
}

func (it *flexItem) crossOuter(dir FlexDirection) int {
	return crossOf(dir, it.outer.Width, it.outer.Height)
}

// flexItems builds the items for the visible children of a container with
// style st and a w×h content box. Measurement and layout both start here.
func (m *ContentMeasurer) flexItems(st *ElementStyle, children []*Element, w, h int) []flexItem {
	dir := st.direction()
	items := make([]flexItem, 0, len(children))
	for i, c := range children {
		if c.hidden() {
			continue
		}
		cs := &c.Style
		margin := cs.Margin.clamped()
		chrome := cs.chrome()
		it := flexItem{
			index:  i,
			el:     c,
			margin: margin,
			outer:  m.outerSize(c, w, h),
			grow:   max(0, cs.FlexGrow),
			shrink: cs.shrinkFactor(),
		}

		d := cs.Height
		if dir == Row {
			d = cs.Width
		}
		marginMain := mainOf(dir, margin.Horizontal(), margin.Vertical())
		chromeMain := mainOf(dir, chrome.Horizontal(), chrome.Vertical())
		natural := mainOf(dir, it.outer.Width, it.outer.Height)
		it.floor = chromeMain + marginMain

		if d.Kind == DimFill {
			it.basis = it.floor
			it.hypo = natural
			it.grow = max(it.grow, 1)
		} else {
			if v, ok := resolveDim(d, shrinkAvail(mainOf(dir, w, h), marginMain)); ok {
				it.basis = max(v, chromeMain) + marginMain
			} else {
				it.basis = natural
			}
			it.hypo = it.basis
			it.zero = it.hypo == 0
		}
		items = append(items, it)
	}
	return items
}

// gapCount is the number of gaps between the non-zero-extent items.
func gapCount(items []flexItem) int {
	n := 0
	for i := range items {
		if !items[i].zero {
			n++
		}
	}
	return max(0, n-1)
}

// breakLines greedily fills lines until the next item would overflow avail.
// An unbounded avail never breaks. Lines share the items' backing array.
func breakLines(items []flexItem, avail, gap int) [][]flexItem {
	if len(items) == 0 {
		return nil
	}
	var lines [][]flexItem
	start, used, solid := 0, 0, false
	for i := range items {
		it := &items[i]
		add := it.hypo
		if solid && !it.zero {
			add += gap
		}
		if avail >= 0 && i > start && used+add > avail {
			lines = append(lines, items[start:i])
			start, used, solid = i, it.hypo, !it.zero
			continue
		}
		used += add
		solid = solid || !it.zero
	}
	return append(lines, items[start:])
}

// resolveMain grows or shrinks a line's items to fill avail and returns the
// space the line occupies including gaps.
func resolveMain(line []flexItem, avail, gap int, canShrink bool) int {
	used := gap * gapCount(line)
	for i := range line {
		line[i].main = line[i].basis
		used += line[i].basis
	}
	if avail < 0 {
		return used
	}
	switch free := avail - used; {
	case free > 0:
		used += growItems(line, free)
	case free < 0 && canShrink:
		used -= shrinkItems(line, -free)
	}
	return used
}

func growItems(line []flexItem, free int) int {
	total := 0.0
	for i := range line {
		total += line[i].grow
	}
	if total <= 0 {
		return 0
	}
	given := 0
	for i := range line {
		share := int(float64(free) * line[i].grow / total)
		line[i].main += share
		given += share
	}
	// rounding remainder, one cell each in order
	for i := 0; given < free; i = (i + 1) % len(line) {
		if line[i].grow > 0 {
			line[i].main++
			given++
		}
	}
	return given
}

// shrinkItems removes up to deficit cells weighted by shrink×basis, never
// taking an item below its floor. It returns the cells removed.
func shrinkItems(line []flexItem, deficit int) int {
	removed := 0
	for deficit > 0 {
		total := 0.0
		for i := range line {
			if it := &line[i]; it.main > it.floor && it.shrink > 0 {
				total += it.shrink * float64(it.basis)
			}
		}
		if total <= 0 {
			break
		}
		taken := 0
		for i := range line {
			it := &line[i]
			if it.main <= it.floor || it.shrink <= 0 {
				continue
			}
			take := int(float64(deficit) * it.shrink * float64(it.basis) / total)
			take = min(take, it.main-it.floor, deficit-taken)
			it.main -= take
			taken += take
		}
		if taken == 0 {
			for i := range line {
				if it := &line[i]; it.main > it.floor && it.shrink > 0 && it.basis > 0 {
					it.main--
					taken = 1
					break
				}
			}
			if taken == 0 {
				break
			}
		}
		deficit -= taken
		removed += taken
	}
	return removed
}

// justifySpace returns the extra space placed before each of n items.
func justifySpace(j Justify, leftover, n int) []int {
	lead := make([]int, n)
	if leftover <= 0 || n == 0 {
		return lead
	}
	switch j {
	case JustifyCenter:
		lead[0] = leftover / 2
	case JustifyEnd:
		lead[0] = leftover
	case JustifySpaceBetween:
		if n == 1 {
			break
		}
		each, rem := leftover/(n-1), leftover%(n-1)
		for i := 1; i < n; i++ {
			lead[i] = each
			if i <= rem {
				lead[i]++
			}
		}
	case JustifySpaceAround:
		each := leftover / n
		lead[0] = each / 2
		for i := 1; i < n; i++ {
			lead[i] = each
		}
	}
	return lead
}

// crossSize returns the item's intrinsic margin-box cross size once its main
// size is known, and whether the element fixes it explicitly.
func (m *ContentMeasurer) crossSize(dir FlexDirection, it *flexItem, availCross int) (int, bool) {
	cs := &it.el.Style
	d := cs.Width
	if dir == Row {
		d = cs.Height
	}
	chrome := cs.chrome()
	marginCross := crossOf(dir, it.margin.Horizontal(), it.margin.Vertical())
	chromeCross := crossOf(dir, chrome.Horizontal(), chrome.Vertical())

	if v, ok := resolveDim(d, shrinkAvail(availCross, marginCross)); ok {
		return max(v, chromeCross) + marginCross, true
	}
	if dir == Column {
		return it.outer.Width, false
	}
	// text height depends on the width the item finally received
	s := m.measure(it.el, max(0, it.main-it.margin.Horizontal()), shrinkAvail(availCross, marginCross))
	return s.Height + marginCross, false
}

// arrange places the children of a container with style st inside the
// content box cb and returns their border-box bounds indexed like children.
// Hidden children get zero-sized bounds at the content origin. A scrolling
// container never shrinks its children and lets them overflow the cross
// axis.
func (e *LayoutEngine) arrange(st *ElementStyle, cb Bounds, children []*Element, scroll bool) []Bounds {
	out := make([]Bounds, len(children))
	for i := range out {
		out[i] = Bounds{X: cb.X, Y: cb.Y}
	}

	m := e.measurer
	dir := st.direction()
	gap := max(0, st.Gap)
	availMain := mainOf(dir, cb.Width, cb.Height)
	availCross := crossOf(dir, cb.Width, cb.Height)

	items := m.flexItems(st, children, cb.Width, cb.Height)
	var lines [][]flexItem
	switch {
	case len(items) == 0:
	case st.wraps():
		lines = breakLines(items, availMain, gap)
	default:
		lines = [][]flexItem{items}
	}

	crossPos := 0
	for li, line := range lines {
		used := resolveMain(line, availMain, gap, !scroll)

		crosses := make([]int, len(line))
		fixed := make([]bool, len(line))
		lineCross := availCross
		if st.wraps() {
			lineCross = 0
		}
		for j := range line {
			crosses[j], fixed[j] = m.crossSize(dir, &line[j], availCross)
			if st.wraps() {
				lineCross = max(lineCross, crosses[j])
			}
		}

		lead := justifySpace(st.Justify, availMain-used, len(line))
		pos, solid := 0, false
		for j := range line {
			it := &line[j]
			pos += lead[j]
			if solid && !it.zero {
				pos += gap
			}
			solid = solid || !it.zero

			size := crosses[j]
			off := 0
			fill := crossDim(dir, &it.el.Style).Kind == DimFill
			switch {
			case fill:
				size = lineCross
			case !fixed[j] && st.Align == AlignStretch:
				if scroll {
					size = max(size, lineCross)
				} else {
					size = lineCross
				}
			case st.Align == AlignCenter:
				off = max(0, (lineCross-size)/2)
			case st.Align == AlignEnd:
				off = max(0, lineCross-size)
			}

			mg := it.margin
			if dir == Row {
				out[it.index] = Bounds{
					X:      cb.X + pos + mg.Left,
					Y:      cb.Y + crossPos + off + mg.Top,
					Width:  max(0, it.main-mg.Horizontal()),
					Height: max(0, size-mg.Vertical()),
				}
			} else {
				out[it.index] = Bounds{
					X:      cb.X + crossPos + off + mg.Left,
					Y:      cb.Y + pos + mg.Top,
					Width:  max(0, size-mg.Horizontal()),
					Height: max(0, it.main-mg.Vertical()),
				}
			}
			pos += it.main
		}

		crossPos += lineCross
		if li < len(lines)-1 {
			crossPos += gap
		}
	}
	return out
}

func crossDim(dir FlexDirection, st *ElementStyle) Dimension {
	if dir == Row {
		return st.Height
	}
	return st.Width
}
