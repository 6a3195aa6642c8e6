// Package teaview runs a flexview session as a bubbletea v1 program. The
// session lays out and paints into its cell grid; View turns that grid into
// lipgloss-styled lines and bubbletea does its own terminal diffing.
package teaview

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/kungfusheep/flexview"
	"github.com/kungfusheep/flexview/internal/session"
)

// Model adapts a session to tea.Model.
type Model struct {
	session *session.Session
	log     *slog.Logger
	styles  map[flexview.Style]lipgloss.Style
}

// New wraps s. The session is resized on the first tea.WindowSizeMsg.
func New(s *session.Session, log *slog.Logger) *Model {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Model{
		session: s,
		log:     log,
		styles:  make(map[flexview.Style]lipgloss.Style),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.session.Resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		m.log.Debug("key", "name", msg.String())
		if res := m.session.HandleKey(msg.String()); res.Quit {
			return m, tea.Quit
		}
	case tea.MouseMsg:
		if action, ok := mouseAction(msg); ok {
			m.session.HandleMouse(msg.X, msg.Y, action, msg.Button == tea.MouseButtonLeft)
		}
	}
	// bubbletea repaints from View; the cell diff is not needed
	m.session.Flush()
	return m, nil
}

func mouseAction(msg tea.MouseMsg) (session.MouseAction, bool) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return session.MouseWheelUp, true
	case tea.MouseButtonWheelDown:
		return session.MouseWheelDown, true
	case tea.MouseButtonWheelLeft:
		return session.MouseWheelLeft, true
	case tea.MouseButtonWheelRight:
		return session.MouseWheelRight, true
	}
	switch msg.Action {
	case tea.MouseActionPress:
		return session.MousePress, true
	case tea.MouseActionRelease:
		return session.MouseRelease, true
	case tea.MouseActionMotion:
		return session.MouseMotion, true
	}
	return 0, false
}

// View renders the session's screen, one styled run per change of style.
func (m *Model) View() string {
	screen := m.session.Screen()
	var sb strings.Builder
	var run strings.Builder
	for y := 0; y < screen.Height(); y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		runStyle := flexview.DefaultStyle()
		for x := 0; x < screen.Width(); x++ {
			c := screen.Cell(x, y)
			if c.IsContinuation() {
				continue
			}
			if c.Style != runStyle && run.Len() > 0 {
				sb.WriteString(m.render(runStyle, run.String()))
				run.Reset()
			}
			runStyle = c.Style
			run.WriteRune(c.Rune)
		}
		sb.WriteString(m.render(runStyle, run.String()))
		run.Reset()
	}
	return sb.String()
}

func (m *Model) render(style flexview.Style, s string) string {
	if s == "" || style == flexview.DefaultStyle() {
		return s
	}
	return m.styleFor(style).Render(s)
}

func (m *Model) styleFor(style flexview.Style) lipgloss.Style {
	if ls, ok := m.styles[style]; ok {
		return ls
	}
	ls := Style(style)
	m.styles[style] = ls
	return ls
}

// Style converts a cell style to lipgloss.
func Style(s flexview.Style) lipgloss.Style {
	ls := lipgloss.NewStyle()
	if c, ok := Color(s.FG); ok {
		ls = ls.Foreground(c)
	}
	if c, ok := Color(s.BG); ok {
		ls = ls.Background(c)
	}
	a := s.Attr
	return ls.
		Bold(a.Has(flexview.AttrBold)).
		Faint(a.Has(flexview.AttrDim)).
		Italic(a.Has(flexview.AttrItalic)).
		Underline(a.Has(flexview.AttrUnderline)).
		Blink(a.Has(flexview.AttrBlink)).
		Reverse(a.Has(flexview.AttrInverse)).
		Strikethrough(a.Has(flexview.AttrStrikethrough))
}

// Color converts a cell color; the terminal default has no lipgloss
// equivalent and reports false.
func Color(c flexview.Color) (lipgloss.Color, bool) {
	switch c.Mode {
	case flexview.Color16, flexview.Color256:
		return lipgloss.Color(strconv.Itoa(int(c.Index))), true
	case flexview.ColorRGB:
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)), true
	}
	return "", false
}

// Run runs s as a full-screen bubbletea program with mouse cell motion
// until a quit key or ctx is done.
func Run(ctx context.Context, s *session.Session, log *slog.Logger, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}, opts...)
	if _, err := tea.NewProgram(New(s, log), opts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return errors.Wrap(err, "running bubbletea program")
	}
	return nil
}
