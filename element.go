package flexview

// Element type tags understood by the core. Any other tag is opaque and
// relies on the element's Component for sizing and painting.
const (
	TypeBox  = "box"
	TypeText = "text"
)

// Element is a node in the UI tree. Children are owned and ordered; there is
// no parent reference. Props (including ScrollX/ScrollY) are mutated in
// place between frames and read fresh by every layout pass.
type Element struct {
	ID       string
	Type     string
	Style    ElementStyle
	Text     string
	Children []*Element

	// Component supplies intrinsic size and optional painting for leaf
	// element types the core knows nothing about.
	Component Component

	ScrollX int
	ScrollY int
}

// Box creates a block container.
func Box(children ...*Element) *Element {
	return &Element{Type: TypeBox, Children: children}
}

// FRow creates a horizontal flex container.
func FRow(children ...*Element) *Element {
	e := Box(children...)
	e.Style.Display = DisplayFlex
	e.Style.FlexDirection = Row
	return e
}

// FCol creates a vertical flex container.
func FCol(children ...*Element) *Element {
	e := Box(children...)
	e.Style.Display = DisplayFlex
	e.Style.FlexDirection = Column
	return e
}

// Text creates a text leaf.
func Text(s string) *Element {
	return &Element{Type: TypeText, Text: s}
}

// Custom creates a leaf backed by a component.
func Custom(typ string, c Component) *Element {
	return &Element{Type: typ, Component: c}
}

// Chainable modifiers

func (e *Element) WithID(id string) *Element {
	e.ID = id
	return e
}

func (e *Element) Width(d Dimension) *Element {
	e.Style.Width = d
	return e
}

func (e *Element) Height(d Dimension) *Element {
	e.Style.Height = d
	return e
}

// Size sets explicit cell width and height.
func (e *Element) Size(w, h int) *Element {
	e.Style.Width = Cells(w)
	e.Style.Height = Cells(h)
	return e
}

func (e *Element) Gap(g int) *Element {
	e.Style.Gap = g
	return e
}

func (e *Element) Pad(s Spacing) *Element {
	e.Style.Padding = s
	return e
}

func (e *Element) Margin(s Spacing) *Element {
	e.Style.Margin = s
	return e
}

func (e *Element) Border(b BorderKind) *Element {
	e.Style.Border = b
	return e
}

func (e *Element) Grow(factor float64) *Element {
	e.Style.FlexGrow = factor
	return e
}

func (e *Element) Shrink(factor float64) *Element {
	e.Style.FlexShrink = factor
	return e
}

func (e *Element) Wrap() *Element {
	e.Style.FlexWrap = Wrap
	return e
}

func (e *Element) NoWrapText() *Element {
	e.Style.TextWrap = TextNoWrap
	return e
}

func (e *Element) Justify(j Justify) *Element {
	e.Style.Justify = j
	return e
}

func (e *Element) Align(a Align) *Element {
	e.Style.Align = a
	return e
}

// Scroll makes the element a scrollable viewport.
func (e *Element) Scroll() *Element {
	e.Style.Overflow = OverflowScroll
	return e
}

func (e *Element) Clip() *Element {
	e.Style.Overflow = OverflowHidden
	return e
}

func (e *Element) Hide() *Element {
	e.Style.Display = DisplayNone
	return e
}

func (e *Element) Foreground(c Color) *Element {
	e.Style.FG = c
	return e
}

func (e *Element) Background(c Color) *Element {
	e.Style.BG = c
	return e
}

func (e *Element) Bold() *Element {
	e.Style.Attr = e.Style.Attr.With(AttrBold)
	return e
}

// Add appends children.
func (e *Element) Add(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Find returns the first element in the subtree with the given ID.
func (e *Element) Find(id string) *Element {
	if e == nil || id == "" {
		return nil
	}
	if e.ID == id {
		return e
	}
	for _, c := range e.Children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

func (e *Element) hidden() bool {
	return e == nil || e.Style.Display == DisplayNone
}
