package ansiterm

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kungfusheep/flexview/internal/session"
)

// Event is a decoded input event: a KeyEvent or a MouseEvent.
type Event interface {
	isEvent()
}

// KeyEvent is a key press named the way bubbletea names keys: "up",
// "pgdown", "tab", "ctrl+c", "alt+x", or the typed character itself.
type KeyEvent struct {
	Name string
}

// MouseEvent is an SGR mouse report in zero-based screen cells.
type MouseEvent struct {
	X, Y   int
	Action session.MouseAction
	Left   bool
}

func (KeyEvent) isEvent()   {}
func (MouseEvent) isEvent() {}

var csiKeys = map[string]string{
	"A":  "up",
	"B":  "down",
	"C":  "right",
	"D":  "left",
	"H":  "home",
	"F":  "end",
	"Z":  "shift+tab",
	"1~": "home",
	"7~": "home",
	"4~": "end",
	"8~": "end",
	"3~": "delete",
	"5~": "pgup",
	"6~": "pgdown",
}

var ss3Keys = map[byte]string{
	'A': "up",
	'B': "down",
	'C': "right",
	'D': "left",
	'H': "home",
	'F': "end",
}

var ctrlKeys = map[byte]string{
	0x09: "tab",
	0x0d: "enter",
	0x1b: "esc",
	0x7f: "backspace",
	0x00: "ctrl+@",
}

// Decode splits raw terminal input into events. An escape sequence cut off
// at the end of data is returned as rest, to be prefixed to the next read.
// Unknown sequences are dropped.
func Decode(data []byte) (events []Event, rest []byte) {
	for len(data) > 0 {
		ev, n := decodeOne(data)
		if n == 0 {
			return events, data
		}
		if ev != nil {
			events = append(events, ev)
		}
		data = data[n:]
	}
	return events, nil
}

// decodeOne decodes the event at the start of data and the number of bytes
// it used; n == 0 means the sequence is incomplete.
func decodeOne(data []byte) (Event, int) {
	b := data[0]
	if b != 0x1b {
		if name, ok := ctrlKeys[b]; ok {
			return KeyEvent{Name: name}, 1
		}
		if b < 0x20 {
			return KeyEvent{Name: "ctrl+" + string(rune('a'+b-1))}, 1
		}
		if !utf8.FullRune(data) {
			return nil, 0
		}
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError {
			return nil, size
		}
		return KeyEvent{Name: string(r)}, size
	}

	if len(data) == 1 {
		return KeyEvent{Name: "esc"}, 1
	}
	switch data[1] {
	case '[':
		return decodeCSI(data)
	case 'O':
		if len(data) < 3 {
			return nil, 0
		}
		if name, ok := ss3Keys[data[2]]; ok {
			return KeyEvent{Name: name}, 3
		}
		return nil, 3
	case 0x1b:
		return KeyEvent{Name: "esc"}, 1
	}
	ev, n := decodeOne(data[1:])
	if n == 0 {
		return nil, 0
	}
	if k, ok := ev.(KeyEvent); ok {
		return KeyEvent{Name: "alt+" + k.Name}, n + 1
	}
	return ev, n + 1
}

// decodeCSI decodes ESC [ params final.
func decodeCSI(data []byte) (Event, int) {
	end := -1
	for i := 2; i < len(data); i++ {
		if data[i] >= 0x40 && data[i] <= 0x7e {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, 0
	}
	n := end + 1
	params, final := string(data[2:end]), data[end]

	if strings.HasPrefix(params, "<") && (final == 'M' || final == 'm') {
		if ev, ok := decodeSGRMouse(params[1:], final == 'm'); ok {
			return ev, n
		}
		return nil, n
	}

	key := string(final)
	if final == '~' {
		key = params + "~"
		if i := strings.IndexByte(params, ';'); i >= 0 {
			key = params[:i] + "~"
		}
	}
	if name, ok := csiKeys[key]; ok {
		return KeyEvent{Name: name}, n
	}
	return nil, n
}

// decodeSGRMouse decodes the "b;x;y" parameters of an SGR (1006) report.
func decodeSGRMouse(params string, release bool) (MouseEvent, bool) {
	parts := strings.Split(params, ";")
	if len(parts) != 3 {
		return MouseEvent{}, false
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return MouseEvent{}, false
		}
		v[i] = n
	}
	code, x, y := v[0], v[1]-1, v[2]-1

	ev := MouseEvent{X: x, Y: y}
	button := code & 0b11
	switch {
	case code&64 != 0:
		ev.Action = []session.MouseAction{
			session.MouseWheelUp,
			session.MouseWheelDown,
			session.MouseWheelLeft,
			session.MouseWheelRight,
		}[button]
	case release:
		ev.Action = session.MouseRelease
		ev.Left = button == 0
	case code&32 != 0:
		ev.Action = session.MouseMotion
		ev.Left = button == 0
	default:
		ev.Action = session.MousePress
		ev.Left = button == 0
	}
	return ev, true
}
