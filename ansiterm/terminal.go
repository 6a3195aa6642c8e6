package ansiterm

import (
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Conn is the terminal a Loop runs on. Terminal implements it for a real
// tty; tests use a fake.
type Conn interface {
	io.ReadWriter
	// Size returns the screen size in cells.
	Size() (width, height int, err error)
	// Resized signals that Size may have changed.
	Resized() <-chan struct{}
}

// Terminal is a tty in raw mode showing the alternate screen with mouse
// reporting on.
type Terminal struct {
	in      *os.File
	out     *os.File
	state   *term.State
	resized chan struct{}
	stop    func()
}

const (
	enterSequence = ansi.SetAltScreenSaveCursorMode +
		ansi.EraseEntireScreen +
		ansi.CursorHomePosition +
		ansi.HideCursor +
		ansi.SetNormalMouseMode +
		ansi.SetButtonEventMouseMode +
		ansi.SetSgrExtMouseMode

	exitSequence = ansi.ResetSgrExtMouseMode +
		ansi.ResetButtonEventMouseMode +
		ansi.ResetNormalMouseMode +
		ansi.ShowCursor +
		ansi.ResetAltScreenSaveCursorMode
)

// Open puts in into raw mode and switches out to the alternate screen.
// Close undoes both.
func Open(in, out *os.File) (*Terminal, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return nil, errors.Errorf("%s is not a terminal", in.Name())
	}
	state, err := term.MakeRaw(int(in.Fd()))
	if err != nil {
		return nil, errors.Wrap(err, "entering raw mode")
	}
	t := &Terminal{
		in:      in,
		out:     out,
		state:   state,
		resized: make(chan struct{}, 1),
	}
	t.stop = watchResize(t.resized)
	if _, err := io.WriteString(out, enterSequence); err != nil {
		t.Close()
		return nil, errors.Wrap(err, "entering alternate screen")
	}
	return t, nil
}

func (t *Terminal) Read(p []byte) (int, error)  { return t.in.Read(p) }
func (t *Terminal) Write(p []byte) (int, error) { return t.out.Write(p) }

// Size returns the output's size in cells.
func (t *Terminal) Size() (int, int, error) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, errors.Wrap(err, "reading terminal size")
	}
	return w, h, nil
}

// Resized is signalled on SIGWINCH where the platform has it.
func (t *Terminal) Resized() <-chan struct{} {
	return t.resized
}

// Close restores the screen and the tty mode.
func (t *Terminal) Close() error {
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
	io.WriteString(t.out, exitSequence)
	if t.state == nil {
		return nil
	}
	err := term.Restore(int(t.in.Fd()), t.state)
	t.state = nil
	return errors.Wrap(err, "restoring terminal")
}
