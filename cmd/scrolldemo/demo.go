package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/kungfusheep/flexview"
)

var palette = []flexview.Color{
	flexview.Red,
	flexview.Green,
	flexview.Yellow,
	flexview.Blue,
	flexview.Magenta,
	flexview.Cyan,
}

var tagNames = []string{
	"layout", "flex", "wrap", "viewport", "clip", "scroll", "diff",
	"buffer", "unicode", "border", "padding", "margin", "gap",
}

// demoTree builds the showcase: a long file list, a row of wrapping tags,
// a log with lines wider than its pane, nested scrolling sections and a
// status line.
func demoTree(items int) (*flexview.Element, *status) {
	files := make([]*flexview.Element, items)
	for i := range files {
		files[i] = flexview.Text(fmt.Sprintf("%04d  %s.go", i, tagNames[i%len(tagNames)])).
			Foreground(palette[i%len(palette)]).
			NoWrapText()
	}

	tags := make([]*flexview.Element, len(tagNames))
	for i, name := range tagNames {
		tags[i] = flexview.Text("["+name+"]").Foreground(palette[i%len(palette)]).NoWrapText()
	}

	logLines := make([]*flexview.Element, 40)
	for i := range logLines {
		logLines[i] = flexview.Text(fmt.Sprintf("%03d %s %s", i, strings.Repeat("▓", i%30+20), "request handled in 3ms")).NoWrapText()
	}

	sections := make([]*flexview.Element, 6)
	for i := range sections {
		body := make([]*flexview.Element, 12)
		for j := range body {
			body[j] = flexview.Text(fmt.Sprintf("section %d line %02d", i+1, j))
		}
		sections[i] = flexview.FCol(
			flexview.Text(fmt.Sprintf("── Section %d ──", i+1)).Bold(),
			flexview.Box(body...).WithID(fmt.Sprintf("section-%d", i+1)).Height(flexview.Cells(4)).Scroll(),
		)
	}

	fileList := flexview.Box(files...).
		WithID("files").
		Width(flexview.Percent(35)).
		Border(flexview.BorderRounded).
		Scroll()

	st := &status{files: fileList, count: items}
	root := flexview.FCol(
		flexview.Text(" flexview scroll demo ").Bold().Foreground(flexview.Cyan),
		flexview.FRow(
			fileList,
			flexview.FCol(
				flexview.FRow(tags...).WithID("tags").Wrap().Gap(1),
				flexview.Box(logLines...).WithID("log").Border(flexview.BorderSingle).Height(flexview.Fill).Scroll(),
				flexview.FCol(sections...).WithID("sections").Border(flexview.BorderSingle).Height(flexview.Cells(12)).Scroll(),
			).Gap(1).Width(flexview.Fill),
		).Gap(1).Height(flexview.Fill),
		flexview.Custom("status", st).WithID("status").Background(flexview.BrightBlack),
	).Width(flexview.Fill).Height(flexview.Fill)
	return root, st
}

// status is the bottom line: focus, hover and the file list position.
type status struct {
	files *flexview.Element
	count int
}

func (s *status) IntrinsicSize(ctx flexview.SizeContext) flexview.Size {
	return flexview.Size{Width: max(0, ctx.Available.Width), Height: 1}
}

func (s *status) text(ctx *flexview.RenderContext) string {
	hover := ctx.HoveredID
	if hover == "" {
		hover = "-"
	}
	return fmt.Sprintf(" focus %s │ hover %s │ files %d/%d │ tab next pane · ←↑↓→ g G pgup pgdn · wheel · drag bars · q quit",
		ctx.FocusedID, hover, s.files.ScrollY, s.count)
}

func (s *status) Render(bounds flexview.Bounds, style flexview.ElementStyle, surface flexview.Surface, ctx *flexview.RenderContext) {
	line := ansi.Truncate(s.text(ctx), bounds.Width, "…")
	cell := flexview.Style{FG: style.FG, BG: style.BG, Attr: style.Attr}
	surface.CurrentBuffer().SetText(bounds.X, bounds.Y, line, cell)
}
