package ansiterm

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pkg/errors"

	"github.com/kungfusheep/flexview/internal/session"
)

// Loop feeds terminal input to a session and writes each resulting diff.
type Loop struct {
	conn    Conn
	session *session.Session
	writer  *Writer
	log     *slog.Logger

	// readers tracks input goroutines; one blocked in Read exits after
	// its next read returns.
	readers sync.WaitGroup
}

// NewLoop creates a loop over conn. The session should already be sized to
// conn.
func NewLoop(conn Conn, s *session.Session, log *slog.Logger) *Loop {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Loop{conn: conn, session: s, writer: NewWriter(conn), log: log}
}

type readResult struct {
	data []byte
	err  error
}

// Run paints the current screen, then handles input until a quit key, a
// read error or ctx is done. A quit or cancellation returns nil.
func (l *Loop) Run(ctx context.Context) error {
	l.session.Flush()
	if err := l.writer.WriteFull(l.session.Screen()); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reads := make(chan readResult)
	l.readers.Add(1)
	go func() {
		defer l.readers.Done()
		buf := make([]byte, 4096)
		for {
			n, err := l.conn.Read(buf)
			data := make([]byte, n)
			copy(data, buf[:n])
			select {
			case reads <- readResult{data, err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	var rest []byte
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.conn.Resized():
			if err := l.resize(); err != nil {
				return err
			}
		case r := <-reads:
			var events []Event
			events, rest = Decode(append(rest, r.data...))
			quit, err := l.dispatch(events)
			if err != nil || quit {
				return err
			}
			if r.err != nil {
				return errors.Wrap(r.err, "reading input")
			}
		}
		if err := l.writer.WriteDiff(l.session.Flush()); err != nil {
			return err
		}
	}
}

func (l *Loop) dispatch(events []Event) (quit bool, err error) {
	for _, ev := range events {
		switch ev := ev.(type) {
		case KeyEvent:
			l.log.Debug("key", "name", ev.Name)
			if ev.Name == "ctrl+l" {
				if err := l.resize(); err != nil {
					return false, err
				}
			}
			if res := l.session.HandleKey(ev.Name); res.Quit {
				return true, nil
			}
		case MouseEvent:
			l.session.HandleMouse(ev.X, ev.Y, ev.Action, ev.Left)
		}
	}
	return false, nil
}

func (l *Loop) resize() error {
	w, h, err := l.conn.Size()
	if err != nil {
		return err
	}
	l.session.Resize(w, h)
	return nil
}
