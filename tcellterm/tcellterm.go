// Package tcellterm runs a flexview session on a tcell screen. Frame diffs
// become SetContent calls and tcell events are translated into session
// input.
package tcellterm

import (
	"context"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/kungfusheep/flexview"
	"github.com/kungfusheep/flexview/internal/session"
)

// Open creates and initialises the terminal screen with mouse reporting.
// The caller must Fini it.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "creating screen")
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "initialising screen")
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	return screen, nil
}

// Apply writes the changes to the screen's back buffer. Continuation cells
// are skipped; tcell lays out the wide glyph before them itself.
func Apply(screen tcell.Screen, changes []flexview.CellChange) {
	for _, ch := range changes {
		if ch.Cell.IsContinuation() || ch.Cell.Rune < 0 {
			continue
		}
		screen.SetContent(ch.X, ch.Y, ch.Cell.Rune, nil, StyleOf(ch.Cell.Style))
	}
}

// ApplyAll writes every cell of b.
func ApplyAll(screen tcell.Screen, b *flexview.Buffer) {
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			c := b.Cell(x, y)
			if c.IsContinuation() {
				continue
			}
			screen.SetContent(x, y, c.Rune, nil, StyleOf(c.Style))
		}
	}
}

// StyleOf converts a cell style.
func StyleOf(s flexview.Style) tcell.Style {
	a := s.Attr
	return tcell.StyleDefault.
		Foreground(ColorOf(s.FG)).
		Background(ColorOf(s.BG)).
		Bold(a.Has(flexview.AttrBold)).
		Dim(a.Has(flexview.AttrDim)).
		Italic(a.Has(flexview.AttrItalic)).
		Underline(a.Has(flexview.AttrUnderline)).
		Blink(a.Has(flexview.AttrBlink)).
		Reverse(a.Has(flexview.AttrInverse)).
		StrikeThrough(a.Has(flexview.AttrStrikethrough))
}

// ColorOf converts a cell color.
func ColorOf(c flexview.Color) tcell.Color {
	switch c.Mode {
	case flexview.Color16, flexview.Color256:
		return tcell.PaletteColor(int(c.Index))
	case flexview.ColorRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return tcell.ColorDefault
}

var keyNames = map[tcell.Key]string{
	tcell.KeyUp:      "up",
	tcell.KeyDown:    "down",
	tcell.KeyLeft:    "left",
	tcell.KeyRight:   "right",
	tcell.KeyPgUp:    "pgup",
	tcell.KeyPgDn:    "pgdown",
	tcell.KeyHome:    "home",
	tcell.KeyEnd:     "end",
	tcell.KeyTab:     "tab",
	tcell.KeyBacktab: "shift+tab",
	tcell.KeyEsc:     "esc",
	tcell.KeyCtrlC:   "ctrl+c",
	tcell.KeyCtrlL:   "ctrl+l",
}

// KeyName names a key event the way the session expects.
func KeyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		return string(ev.Rune())
	}
	return keyNames[ev.Key()]
}

// Loop feeds tcell events to a session.
type Loop struct {
	screen  tcell.Screen
	session *session.Session
	log     *slog.Logger

	// tcell reports button state, not transitions
	buttons tcell.ButtonMask
}

// NewLoop creates a loop on an initialised screen.
func NewLoop(screen tcell.Screen, s *session.Session, log *slog.Logger) *Loop {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Loop{screen: screen, session: s, log: log}
}

// Run paints the session and handles events until a quit key or ctx is
// done.
func (l *Loop) Run(ctx context.Context) error {
	w, h := l.screen.Size()
	l.session.Resize(w, h)
	l.session.Flush()
	ApplyAll(l.screen, l.session.Screen())
	l.screen.Show()

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go l.screen.ChannelEvents(events, quit)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if l.handle(ev) {
				return nil
			}
		}
		Apply(l.screen, l.session.Flush())
		l.screen.Show()
	}
}

// handle dispatches one event and reports whether to quit.
func (l *Loop) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		l.session.Resize(w, h)
		l.screen.Sync()
	case *tcell.EventKey:
		name := KeyName(ev)
		l.log.Debug("key", "name", name)
		return l.session.HandleKey(name).Quit
	case *tcell.EventMouse:
		x, y := ev.Position()
		for _, m := range l.mouseActions(ev.Buttons()) {
			l.session.HandleMouse(x, y, m.action, m.left)
		}
	}
	return false
}

type mouseAction struct {
	action session.MouseAction
	left   bool
}

var wheels = []struct {
	mask   tcell.ButtonMask
	action session.MouseAction
}{
	{tcell.WheelUp, session.MouseWheelUp},
	{tcell.WheelDown, session.MouseWheelDown},
	{tcell.WheelLeft, session.MouseWheelLeft},
	{tcell.WheelRight, session.MouseWheelRight},
}

// mouseActions turns a button state into press, release, motion and wheel
// actions by comparing it with the previous state.
func (l *Loop) mouseActions(buttons tcell.ButtonMask) []mouseAction {
	var out []mouseAction
	for _, w := range wheels {
		if buttons&w.mask != 0 {
			out = append(out, mouseAction{action: w.action})
		}
	}
	pressed := buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	was := l.buttons
	l.buttons = pressed
	switch {
	case pressed != 0 && was == 0:
		out = append(out, mouseAction{action: session.MousePress, left: pressed&tcell.Button1 != 0})
	case pressed == 0 && was != 0:
		out = append(out, mouseAction{action: session.MouseRelease, left: was&tcell.Button1 != 0})
	case len(out) == 0:
		out = append(out, mouseAction{action: session.MouseMotion, left: pressed&tcell.Button1 != 0})
	}
	return out
}
