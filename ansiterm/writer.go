// Package ansiterm drives a plain ANSI terminal: it turns frame diffs into
// escape sequences, manages raw mode and the alternate screen, and decodes
// keyboard and SGR mouse input.
package ansiterm

import (
	"bytes"
	"io"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"github.com/kungfusheep/flexview"
)

// Writer emits cell changes as positioned, styled runes. It remembers the
// last style it sent within a write so runs of equal style cost nothing.
type Writer struct {
	out       io.Writer
	buf       bytes.Buffer
	lastStyle flexview.Style

	// Sync wraps each write in synchronized-output mode so terminals that
	// support it paint the frame at once.
	Sync bool
}

// NewWriter creates a writer on out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out, lastStyle: flexview.DefaultStyle(), Sync: true}
}

// WriteDiff writes the changes in order. Continuation cells are skipped;
// the wide glyph before them already covers the column. The cursor is only
// moved when the next change is not where the previous rune left it.
func (w *Writer) WriteDiff(changes []flexview.CellChange) error {
	if len(changes) == 0 {
		return nil
	}
	w.buf.Reset()
	if w.Sync {
		w.buf.WriteString(ansi.SetSynchronizedOutputMode)
	}

	cursorX, cursorY := -1, -1
	written := 0
	for _, ch := range changes {
		c := ch.Cell
		if c.IsContinuation() || c.Rune < 0 {
			continue
		}
		if cursorX != ch.X || cursorY != ch.Y {
			w.buf.WriteString("\x1b[")
			w.writeInt(ch.Y + 1)
			w.buf.WriteByte(';')
			w.writeInt(ch.X + 1)
			w.buf.WriteByte('H')
		}
		w.writeCell(c)
		written++

		// cursor advances by the display width of the rune
		rw := runewidth.RuneWidth(c.Rune)
		if rw == 0 {
			rw = 1
		}
		cursorX, cursorY = ch.X+rw, ch.Y
	}

	if written > 0 {
		w.buf.WriteString("\x1b[0m")
		w.lastStyle = flexview.DefaultStyle()
	}
	if w.Sync {
		w.buf.WriteString(ansi.ResetSynchronizedOutputMode)
	}
	if _, err := w.out.Write(w.buf.Bytes()); err != nil {
		return errors.Wrap(err, "writing frame")
	}
	return nil
}

// WriteFull clears the terminal and paints every cell of b.
func (w *Writer) WriteFull(b *flexview.Buffer) error {
	if _, err := io.WriteString(w.out, ansi.EraseEntireScreen); err != nil {
		return errors.Wrap(err, "clearing screen")
	}
	changes := make([]flexview.CellChange, 0, b.Width()*b.Height())
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			changes = append(changes, flexview.CellChange{X: x, Y: y, Cell: b.Cell(x, y)})
		}
	}
	return w.WriteDiff(changes)
}

func (w *Writer) writeCell(c flexview.Cell) {
	if c.Style != w.lastStyle {
		w.writeStyle(c.Style)
		w.lastStyle = c.Style
	}
	w.buf.WriteRune(c.Rune)
}

var attrCodes = []struct {
	attr flexview.Attribute
	code string
}{
	{flexview.AttrBold, ";1"},
	{flexview.AttrDim, ";2"},
	{flexview.AttrItalic, ";3"},
	{flexview.AttrUnderline, ";4"},
	{flexview.AttrBlink, ";5"},
	{flexview.AttrInverse, ";7"},
	{flexview.AttrStrikethrough, ";9"},
}

// writeStyle always resets first, so attributes never need turning off
// one by one.
func (w *Writer) writeStyle(style flexview.Style) {
	w.buf.WriteString("\x1b[0")
	for _, a := range attrCodes {
		if style.Attr.Has(a.attr) {
			w.buf.WriteString(a.code)
		}
	}
	w.writeColor(style.FG, true)
	w.writeColor(style.BG, false)
	w.buf.WriteByte('m')
}

func (w *Writer) writeColor(c flexview.Color, fg bool) {
	switch c.Mode {
	case flexview.ColorDefault:
		if fg {
			w.buf.WriteString(";39")
		} else {
			w.buf.WriteString(";49")
		}
	case flexview.Color16:
		base := 30
		if !fg {
			base = 40
		}
		idx := int(c.Index)
		if idx >= 8 {
			base += 60
			idx -= 8
		}
		w.buf.WriteByte(';')
		w.writeInt(base + idx)
	case flexview.Color256:
		if fg {
			w.buf.WriteString(";38;5;")
		} else {
			w.buf.WriteString(";48;5;")
		}
		w.writeInt(int(c.Index))
	case flexview.ColorRGB:
		if fg {
			w.buf.WriteString(";38;2;")
		} else {
			w.buf.WriteString(";48;2;")
		}
		w.writeInt(int(c.R))
		w.buf.WriteByte(';')
		w.writeInt(int(c.G))
		w.buf.WriteByte(';')
		w.writeInt(int(c.B))
	}
}

// writeInt writes a non-negative integer without allocating.
func (w *Writer) writeInt(n int) {
	if n == 0 {
		w.buf.WriteByte('0')
		return
	}
	var scratch [20]byte
	i := len(scratch)
	for n > 0 {
		i--
		scratch[i] = byte('0' + n%10)
		n /= 10
	}
	w.buf.Write(scratch[i:])
}
