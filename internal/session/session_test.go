package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kungfusheep/flexview"
)

func list(id string, n int) *flexview.Element {
	items := make([]*flexview.Element, n)
	for i := range items {
		items[i] = flexview.Text(fmt.Sprintf("item %d", i))
	}
	return flexview.Box(items...).WithID(id).Size(10, 4).Scroll()
}

// twoLists puts two 10x4 lists side by side; each has 10 items, so both
// scroll 6 rows.
func twoLists(t *testing.T) (*Session, *flexview.Element, *flexview.Element) {
	t.Helper()
	left, right := list("left", 10), list("right", 10)
	s := New(flexview.FRow(left, right), flexview.DefaultConfig(), 30, 6, nil)
	return s, left, right
}

func TestNewFocusesFirstScrollable(t *testing.T) {
	s, _, _ := twoLists(t)

	assert.Equal(t, "left", s.Focused())
	require.NotNil(t, s.Frame())
	assert.NotEmpty(t, s.Flush(), "first flush carries the whole first frame")
	assert.Empty(t, s.Flush())
	assert.Equal(t, "item 0", s.Screen().GetLine(0)[:6])
}

func TestHandleKey(t *testing.T) {
	s, left, right := twoLists(t)
	s.Flush()

	res := s.HandleKey("down")
	assert.True(t, res.Changed)
	assert.Equal(t, 3, left.ScrollY)
	assert.NotEmpty(t, s.Flush())

	assert.True(t, s.HandleKey("G").Changed)
	assert.Equal(t, 6, left.ScrollY)
	assert.False(t, s.HandleKey("end").Changed, "already at the end")

	s.HandleKey("tab")
	assert.Equal(t, "right", s.Focused())
	s.HandleKey("pgdown")
	assert.Equal(t, 4, right.ScrollY)

	s.HandleKey("tab")
	assert.Equal(t, "left", s.Focused(), "focus wraps")
	s.HandleKey("shift+tab")
	assert.Equal(t, "right", s.Focused())

	assert.Equal(t, Result{}, s.HandleKey("x"))
	assert.True(t, s.HandleKey("q").Quit)
	assert.True(t, s.HandleKey("ctrl+c").Quit)
}

func TestHandleKeyWithoutScrollables(t *testing.T) {
	s := New(flexview.Box(flexview.Text("static")), flexview.DefaultConfig(), 10, 2, nil)

	assert.Empty(t, s.Focused())
	assert.False(t, s.FocusNext(1))
	assert.Equal(t, Result{}, s.HandleKey("down"))
}

func TestHandleMouseWheel(t *testing.T) {
	s, left, right := twoLists(t)

	res := s.HandleMouse(2, 1, MouseWheelDown, false)
	assert.True(t, res.Changed)
	assert.Equal(t, 3, left.ScrollY, "one notch is the configured wheel step")
	assert.Equal(t, 0, right.ScrollY)

	s.HandleMouse(12, 1, MouseWheelDown, false)
	s.HandleMouse(12, 1, MouseWheelDown, false)
	s.HandleMouse(12, 1, MouseWheelDown, false)
	assert.Equal(t, 6, right.ScrollY)

	s.HandleMouse(2, 1, MouseWheelUp, false)
	assert.Equal(t, 0, left.ScrollY)

	assert.False(t, s.HandleMouse(25, 1, MouseWheelDown, false).Changed)
}

func TestHandleMousePressFocuses(t *testing.T) {
	s, _, _ := twoLists(t)

	s.HandleMouse(12, 1, MousePress, true)
	assert.Equal(t, "right", s.Focused())
	s.HandleMouse(2, 2, MousePress, false)
	assert.Equal(t, "left", s.Focused())
}

func TestHandleMouseScrollbarDrag(t *testing.T) {
	s, left, _ := twoLists(t)

	// the left bar is column 9; a press low on the track jumps to the end
	res := s.HandleMouse(9, 3, MousePress, true)
	assert.True(t, res.Changed)
	assert.Equal(t, 6, left.ScrollY)

	s.HandleMouse(9, 0, MouseMotion, true)
	assert.Equal(t, 0, left.ScrollY)

	s.HandleMouse(9, 0, MouseRelease, true)
	s.HandleMouse(9, 3, MouseMotion, false)
	assert.Equal(t, 0, left.ScrollY, "motion after release does not drag")
}

func TestHover(t *testing.T) {
	s, _, _ := twoLists(t)

	s.HandleMouse(2, 1, MouseMotion, false)
	assert.Equal(t, "left", s.Hovered())
	s.HandleMouse(13, 2, MouseMotion, false)
	assert.Equal(t, "right", s.Hovered())
	s.HandleMouse(25, 5, MouseMotion, false)
	assert.Empty(t, s.Hovered())
}

func TestHoverIgnoresClippedRows(t *testing.T) {
	items := make([]*flexview.Element, 10)
	for i := range items {
		items[i] = flexview.Text(fmt.Sprintf("item %d", i)).WithID(fmt.Sprintf("row%d", i))
	}
	rows := flexview.Box(items...).WithID("rows").Size(10, 4).Scroll()
	s := New(flexview.Box(rows), flexview.DefaultConfig(), 30, 6, nil)

	s.HandleMouse(2, 1, MouseMotion, false)
	assert.Equal(t, "row1", s.Hovered())

	// row 4 lies just below the list's visible area
	s.HandleMouse(2, 4, MouseMotion, false)
	assert.Empty(t, s.Hovered())

	rows.ScrollY = 3
	s.Render()
	s.HandleMouse(2, 1, MouseMotion, false)
	assert.Equal(t, "row4", s.Hovered())
}

func TestResize(t *testing.T) {
	s, _, _ := twoLists(t)
	s.Flush()

	s.Resize(30, 6)
	assert.Empty(t, s.Flush(), "same size is a no-op")

	s.Resize(20, 5)
	assert.Len(t, s.Flush(), 100, "a resize repaints every cell")
	assert.Equal(t, 20, s.Screen().Width())

	s.Redraw()
	assert.Len(t, s.Flush(), 100)
}
