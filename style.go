package flexview

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Display selects how an element participates in layout.
type Display uint8

const (
	DisplayBlock Display = iota // children stacked vertically, full width
	DisplayFlex
	DisplayNone
)

// FlexDirection is the main axis of a flex container.
type FlexDirection uint8

const (
	Row FlexDirection = iota
	Column
)

// FlexWrap controls whether flex items may break onto new lines.
type FlexWrap uint8

const (
	NoWrap FlexWrap = iota
	Wrap
)

// Justify aligns items along the main axis.
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifyCenter
	JustifyEnd
	JustifySpaceBetween
	JustifySpaceAround
)

// Align aligns items along the cross axis within their line.
type Align uint8

const (
	AlignStretch Align = iota
	AlignStart
	AlignCenter
	AlignEnd
)

// Overflow controls clipping and scrolling of children.
type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowAuto
)

// TextWrap controls line breaking of text content.
type TextWrap uint8

const (
	TextWrapOn TextWrap = iota
	TextNoWrap
)

// BorderKind selects a border drawing style. BorderNone takes no space.
type BorderKind uint8

const (
	BorderNone BorderKind = iota
	BorderSingle
	BorderRounded
	BorderDouble
)

// Chars returns the drawing characters for the border kind.
func (k BorderKind) Chars() BorderStyle {
	switch k {
	case BorderRounded:
		return BorderRoundedChars
	case BorderDouble:
		return BorderDoubleChars
	default:
		return BorderSingleChars
	}
}

// Spacing holds per-side padding or margin in cells.
type Spacing struct {
	Top, Right, Bottom, Left int
}

// Uniform returns the same spacing on every side.
func Uniform(n int) Spacing {
	return Spacing{Top: n, Right: n, Bottom: n, Left: n}
}

// Horizontal returns left + right, treating negatives as zero.
func (s Spacing) Horizontal() int { return max(0, s.Left) + max(0, s.Right) }

// Vertical returns top + bottom, treating negatives as zero.
func (s Spacing) Vertical() int { return max(0, s.Top) + max(0, s.Bottom) }

func (s Spacing) clamped() Spacing {
	return Spacing{Top: max(0, s.Top), Right: max(0, s.Right), Bottom: max(0, s.Bottom), Left: max(0, s.Left)}
}

// DimensionKind says how a Dimension resolves.
type DimensionKind uint8

const (
	DimAuto    DimensionKind = iota // intrinsic size
	DimCells                        // fixed number of cells
	DimFill                         // remaining available space
	DimPercent                      // fraction of the parent's resolved content space
)

// Dimension is a width or height: auto, a cell count, fill, or a percentage.
type Dimension struct {
	Kind  DimensionKind
	Value float64
}

// Auto is the intrinsic-size dimension.
var Auto = Dimension{}

// Fill takes the remaining available space.
var Fill = Dimension{Kind: DimFill}

// Cells returns a fixed dimension.
func Cells(n int) Dimension {
	return Dimension{Kind: DimCells, Value: float64(n)}
}

// Percent returns a percentage dimension; 50 means half.
func Percent(p float64) Dimension {
	return Dimension{Kind: DimPercent, Value: p}
}

// IsExplicit reports whether the dimension is a fixed cell count.
func (d Dimension) IsExplicit() bool { return d.Kind == DimCells }

// resolve returns the cell size for fixed and percentage dimensions against
// the available space. ok is false for auto and fill.
func (d Dimension) resolve(available int) (int, bool) {
	switch d.Kind {
	case DimCells:
		return max(0, int(d.Value)), true
	case DimPercent:
		return max(0, int(float64(max(0, available))*d.Value/100)), true
	}
	return 0, false
}

func (d Dimension) String() string {
	switch d.Kind {
	case DimCells:
		return strconv.Itoa(int(d.Value))
	case DimFill:
		return "fill"
	case DimPercent:
		return strconv.FormatFloat(d.Value, 'f', -1, 64) + "%"
	}
	return "auto"
}

// ParseDimension parses "auto", "fill", "50%" or a cell count such as "12".
func ParseDimension(s string) (Dimension, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "auto":
		return Auto, nil
	case "fill":
		return Fill, nil
	}
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil {
			return Auto, errors.Wrapf(err, "invalid percentage %q", s)
		}
		if v < 0 {
			return Auto, errors.Errorf("negative percentage %q", s)
		}
		return Percent(v), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Auto, errors.Wrapf(err, "invalid dimension %q", s)
	}
	if n < 0 {
		return Auto, errors.Errorf("negative dimension %q", s)
	}
	return Cells(n), nil
}

// NoShrink pins an item at its basis when its container overflows.
const NoShrink = -1

// ElementStyle is the layout- and paint-relevant style of an element.
type ElementStyle struct {
	Display       Display
	FlexDirection FlexDirection
	FlexWrap      FlexWrap
	Justify       Justify
	Align         Align
	Gap           int

	Padding Spacing
	Margin  Spacing
	Border  BorderKind

	Width  Dimension
	Height Dimension

	FlexGrow float64
	// FlexShrink of zero means the default factor of 1; NoShrink disables
	// shrinking.
	FlexShrink float64

	Overflow Overflow
	TextWrap TextWrap

	FG   Color
	BG   Color
	Attr Attribute

	// Extra carries theme-extension keys the core does not interpret.
	Extra map[string]any
}

func (s *ElementStyle) shrinkFactor() float64 {
	switch {
	case s.FlexShrink == 0:
		return 1
	case s.FlexShrink < 0:
		return 0
	}
	return s.FlexShrink
}

// Scrollable reports whether the element owns a scrolling viewport.
func (s *ElementStyle) Scrollable() bool {
	return s.Overflow == OverflowScroll || s.Overflow == OverflowAuto
}

// Clips reports whether children are clipped to the content box.
func (s *ElementStyle) Clips() bool {
	return s.Overflow != OverflowVisible
}

// borderWidth is the cells one side of the border takes.
func (s *ElementStyle) borderWidth() int {
	if s.Border == BorderNone {
		return 0
	}
	return 1
}

// chrome returns border plus padding per side.
func (s *ElementStyle) chrome() Spacing {
	b := s.borderWidth()
	p := s.Padding.clamped()
	return Spacing{Top: p.Top + b, Right: p.Right + b, Bottom: p.Bottom + b, Left: p.Left + b}
}

// direction returns the effective main axis; block layout stacks vertically.
func (s *ElementStyle) direction() FlexDirection {
	if s.Display == DisplayFlex {
		return s.FlexDirection
	}
	return Column
}

func (s *ElementStyle) wraps() bool {
	return s.Display == DisplayFlex && s.FlexWrap == Wrap
}

// cellStyle returns the paint style for the element.
func (s *ElementStyle) cellStyle() Style {
	return Style{FG: s.FG, BG: s.BG, Attr: s.Attr}
}
