package poolscroll

import (
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
)

func Test_CaptureScreen_Put_Wide_Graphemes(t *testing.T) {
	t.Parallel()

	s := NewCaptureScreen(5, 1)
	remain, width := s.Put(0, 0, "日本", tcell.StyleDefault)
	assert.Equal(t, "本", remain)
	assert.Equal(t, 2, width)

	s.PutStr(2, 0, "本x")
	assert.Equal(t, "日本x", s.Line(0))

	// A wide grapheme that would cross the right edge becomes a blank.
	s.Put(4, 0, "語", tcell.StyleDefault)
	assert.Equal(t, "日本", s.Line(0))
}

func Test_CaptureScreen_Narrow_Write_Clears_Wide_Tail(t *testing.T) {
	t.Parallel()

	s := NewCaptureScreen(4, 1)
	s.PutStr(0, 0, "日")
	s.Put(0, 0, "a", tcell.StyleDefault)

	assert.Equal(t, "a", s.Line(0))
	str, _, width := s.Get(1, 0)
	assert.Equal(t, " ", str)
	assert.Equal(t, 1, width)
}

func Test_CaptureScreen_Lines_Trim_Trailing_Blanks(t *testing.T) {
	t.Parallel()

	s := NewCaptureScreen(6, 2)
	s.PutStr(1, 1, "ab")

	assert.Equal(t, []string{"", " ab"}, s.Lines())
	assert.Equal(t, "\n ab", s.String())
	assert.Empty(t, s.Line(5))
}

func Test_CaptureScreen_Records_Title_And_Cursor(t *testing.T) {
	t.Parallel()

	s := NewCaptureScreen(3, 3)
	s.SetTitle("poolscroll")
	s.ShowCursor(1, 2)

	assert.Equal(t, "poolscroll", s.Title())
	x, y, visible := s.CursorState()
	assert.Equal(t, []int{1, 2}, []int{x, y})
	assert.True(t, visible)

	s.HideCursor()
	_, _, visible = s.CursorState()
	assert.False(t, visible)
}
