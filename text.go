package flexview

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const tabWidth = 4

// glyph is one grapheme cluster as painted: its first rune and cell width.
type glyph struct {
	r     rune
	width int
	space bool
	comma bool
}

// sanitize strips escape sequences and expands tabs so that measuring and
// painting see exactly the same cells.
func sanitize(s string) string {
	if strings.IndexByte(s, '\x1b') >= 0 {
		s = ansi.Strip(s)
	}
	if strings.IndexByte(s, '\t') >= 0 {
		s = strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
	}
	return s
}

// glyphs splits a single line into paintable clusters. Zero-width clusters
// and control characters are dropped.
func glyphs(line string) []glyph {
	out := make([]glyph, 0, len(line))
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		cluster := g.Str()
		r, _ := utf8.DecodeRuneInString(cluster)
		if r < 0x20 || r == 0x7f {
			continue
		}
		w := runewidth.StringWidth(cluster)
		if w <= 0 {
			continue
		}
		if w > 2 {
			w = 2
		}
		out = append(out, glyph{r: r, width: w, space: r == ' ', comma: r == ','})
	}
	return out
}

// TextWidth returns the display width of a single line in cells.
func TextWidth(s string) int {
	w := 0
	for _, g := range glyphs(sanitize(s)) {
		w += g.width
	}
	return w
}

func glyphsWidth(gs []glyph) int {
	w := 0
	for _, g := range gs {
		w += g.width
	}
	return w
}

func glyphsString(gs []glyph) string {
	var b strings.Builder
	for _, g := range gs {
		b.WriteRune(g.r)
	}
	return b.String()
}

// WrapText breaks text into lines no wider than width cells. Explicit
// newlines always break. Within a line the break prefers the last space,
// then the position after the last comma, and falls back to a hard break at
// width when neither exists. A non-positive width yields no lines.
func WrapText(text string, width int) []string {
	if width <= 0 || text == "" {
		return nil
	}
	var out []string
	for _, para := range strings.Split(sanitize(text), "\n") {
		out = append(out, wrapLine(glyphs(para), width)...)
	}
	return out
}

func wrapLine(gs []glyph, width int) []string {
	if len(gs) == 0 {
		return []string{""}
	}
	var out []string
	line := make([]glyph, 0, width)
	lineW := 0
	for i := 0; i < len(gs); i++ {
		g := gs[i]
		if lineW+g.width <= width {
			line = append(line, g)
			lineW += g.width
			continue
		}
		if g.space {
			// the break consumes the space
			out = append(out, glyphsString(line))
			line, lineW = line[:0], 0
			continue
		}
		if len(line) == 0 {
			// a glyph wider than the line gets a line of its own
			out = append(out, glyphsString([]glyph{g}))
			continue
		}
		cut, skip := breakPoint(line)
		if cut <= 0 {
			out = append(out, glyphsString(line))
			line = append(line[:0], g)
			lineW = g.width
			continue
		}
		out = append(out, glyphsString(line[:cut]))
		rest := append([]glyph(nil), line[cut+skip:]...)
		line = append(line[:0], rest...)
		line = append(line, g)
		lineW = glyphsWidth(line)
		for lineW > width && len(line) > 1 {
			// carried tail plus the new glyph still overflows: hard break
			out = append(out, glyphsString(line[:len(line)-1]))
			line = append(line[:0], g)
			lineW = g.width
		}
	}
	if len(line) > 0 {
		out = append(out, glyphsString(line))
	}
	return out
}

// breakPoint finds where to end the current line. It returns the number of
// glyphs kept and how many separator glyphs are dropped after them.
func breakPoint(line []glyph) (cut, skip int) {
	for i := len(line) - 1; i > 0; i-- {
		if line[i].space {
			return i, 1
		}
	}
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].comma {
			return i + 1, 0
		}
	}
	return 0, 0
}

// textLines returns the lines the element's text occupies at width.
func textLines(el *Element, width int) []string {
	if el.Text == "" {
		return nil
	}
	if el.Style.TextWrap == TextNoWrap {
		return strings.Split(sanitize(el.Text), "\n")
	}
	return WrapText(el.Text, width)
}

// measureText returns the cell extent of the element's text at width.
func measureText(el *Element, width int) Size {
	lines := textLines(el, width)
	w := 0
	for _, l := range lines {
		w = max(w, glyphsWidth(glyphs(l)))
	}
	return Size{Width: w, Height: len(lines)}
}
