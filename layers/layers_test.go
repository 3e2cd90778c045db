package layers

import (
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayn2op/poolscroll"
)

// focuser moves the focus the way the application does.
type focuser struct {
	current poolscroll.Primitive
}

func (f *focuser) set(p poolscroll.Primitive) {
	if f.current != nil {
		f.current.Blur()
	}
	f.current = p
	p.Focus(f.set)
}

func newStack() (*Layers, *poolscroll.TextSlot, *poolscroll.TextSlot) {
	back := poolscroll.NewTextSlot().SetText("back")
	top := poolscroll.NewTextSlot().SetText("top")
	l := New().
		AddLayer(back, WithName("back"), WithResize(true)).
		AddLayer(top, WithName("top"), WithCentered(5, 1), WithOverlay(), WithVisible(false))
	l.SetBackgroundLayerStyle(tcell.StyleDefault.Dim(true))
	return l, back, top
}

func draw(l *Layers, width, height int) *poolscroll.CaptureScreen {
	screen := poolscroll.NewCaptureScreen(width, height)
	l.SetRect(0, 0, width, height)
	l.Draw(screen)
	return screen
}

func Test_Focus_Goes_To_Front_Visible_Layer(t *testing.T) {
	t.Parallel()

	l, back, top := newStack()
	f := &focuser{}
	l.Focus(f.set)
	require.True(t, back.HasFocus())
	assert.True(t, l.HasFocus())

	l.ShowLayer("top")
	assert.True(t, top.HasFocus())
	assert.False(t, back.HasFocus())

	l.HideLayer("top")
	assert.False(t, top.HasFocus())
	assert.True(t, back.HasFocus())
}

func Test_Overlay_Is_Centered_And_Dims_Layers_Behind(t *testing.T) {
	t.Parallel()

	l, _, top := newStack()
	l.ShowLayer("top")
	screen := draw(l, 20, 3)

	assert.Equal(t, []int{7, 1, 5, 1}, rect(top))
	assert.Equal(t, "back   top", screen.Line(1))

	_, behind, _ := screen.Get(0, 1)
	_, above, _ := screen.Get(7, 1)
	assert.True(t, behind.HasDim())
	assert.False(t, above.HasDim())
}

func Test_Hidden_Overlay_Leaves_Styles_Alone(t *testing.T) {
	t.Parallel()

	l, _, _ := newStack()
	screen := draw(l, 20, 3)

	assert.Equal(t, "back", screen.Line(1))
	_, style, _ := screen.Get(0, 1)
	assert.False(t, style.HasDim())
}

func Test_Overlay_Blocks_Mouse_Behind_It(t *testing.T) {
	t.Parallel()

	l, _, _ := newStack()
	draw(l, 20, 3)
	click := tcell.NewEventMouse(0, 0, tcell.ButtonPrimary, tcell.ModNone)

	_, cmd := l.MouseHandler(poolscroll.MouseLeftDown, click)
	assert.IsType(t, poolscroll.SetFocusCommand{}, cmd)

	l.ToggleLayer("top")
	draw(l, 20, 3)
	_, cmd = l.MouseHandler(poolscroll.MouseLeftDown, click)
	assert.Equal(t, poolscroll.ConsumeEventCommand{}, cmd)
}

func Test_AddLayer_Replaces_Same_Name(t *testing.T) {
	t.Parallel()

	l, _, _ := newStack()
	replacement := poolscroll.NewTextSlot().SetText("again")
	l.AddLayer(replacement, WithName("back"), WithResize(true))

	assert.Same(t, replacement, l.GetLayer("back"))
	name, front := l.GetFrontLayer()
	assert.Equal(t, "back", name)
	assert.Same(t, replacement, front)

	l.RemoveLayer("back")
	assert.False(t, l.HasLayer("back"))
	assert.True(t, l.HasLayer("top"))
}

func Test_Layers_Dirty_And_Clean_With_Children(t *testing.T) {
	t.Parallel()

	l, back, _ := newStack()
	draw(l, 20, 3)
	l.MarkClean()
	require.False(t, l.IsDirty())
	require.False(t, back.IsDirty())

	back.SetText("changed")
	assert.True(t, l.IsDirty())
}

func rect(p poolscroll.Primitive) []int {
	x, y, w, h := p.GetRect()
	return []int{x, y, w, h}
}
