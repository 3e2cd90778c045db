package help

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/ayn2op/poolscroll"
	"github.com/ayn2op/poolscroll/keybind"
)

type testKeyMap struct {
	short []keybind.Keybind
	full  [][]keybind.Keybind
}

func (k testKeyMap) ShortHelp() []keybind.Keybind   { return k.short }
func (k testKeyMap) FullHelp() [][]keybind.Keybind { return k.full }

func bind(key, desc string) keybind.Keybind {
	return keybind.NewKeybind(keybind.WithKeys(key), keybind.WithHelp(key, desc))
}

func newTestKeyMap() testKeyMap {
	add, back, quit := bind("a", "append"), bind("b", "back"), bind("q", "quit")
	hidden := keybind.NewKeybind(keybind.WithKeys("x"), keybind.WithHelp("x", "hidden"), keybind.WithDisabled())
	return testKeyMap{
		short: []keybind.Keybind{add, hidden, back},
		full:  [][]keybind.Keybind{{add, back}, {hidden}, {quit}},
	}
}

func Test_Short_Help_Skips_Disabled_Keybinds(t *testing.T) {
	t.Parallel()

	h := New().SetKeyMap(newTestKeyMap())
	assert.Equal(t, []string{"a append • b back"}, h.Lines(0))
}

func Test_Short_Help_Truncates_With_Ellipsis(t *testing.T) {
	t.Parallel()

	h := New().SetKeyMap(newTestKeyMap())
	assert.Equal(t, []string{"a append …"}, h.Lines(12))
	assert.Equal(t, []string{"a append"}, h.Lines(9), "no room for the ellipsis")
}

func Test_Full_Help_Aligns_Columns(t *testing.T) {
	t.Parallel()

	h := New().SetKeyMap(newTestKeyMap()).SetShowAll(true)
	want := []string{
		"a append    q quit",
		"b back      ",
	}
	if diff := cmp.Diff(want, h.Lines(0)); diff != "" {
		t.Errorf("full help mismatch (-want +got):\n%s", diff)
	}
}

func Test_Full_Help_Drops_Columns_That_Overflow(t *testing.T) {
	t.Parallel()

	h := New().SetKeyMap(newTestKeyMap()).SetShowAll(true)
	assert.Equal(t, []string{"a append …", "b back"}, h.Lines(10))
}

func Test_Size_Includes_Borders_And_Padding(t *testing.T) {
	t.Parallel()

	h := New().SetKeyMap(newTestKeyMap()).SetShowAll(true)
	width, height := h.Size()
	assert.Equal(t, 18, width)
	assert.Equal(t, 2, height)

	h.SetBorders(poolscroll.BordersAll)
	h.SetBorderPadding(0, 0, 1, 1)
	width, height = h.Size()
	assert.Equal(t, 22, width)
	assert.Equal(t, 4, height)
}

func Test_Draw_Renders_Short_Help(t *testing.T) {
	t.Parallel()

	h := New().SetKeyMap(newTestKeyMap())
	screen := poolscroll.NewCaptureScreen(20, 1)
	h.SetRect(0, 0, 20, 1)
	h.Draw(screen)

	assert.Equal(t, "a append • b back", screen.Line(0))
}

func Test_SetShowAll_Marks_Dirty_Only_On_Change(t *testing.T) {
	t.Parallel()

	h := New()
	h.MarkClean()
	h.SetShowAll(false)
	assert.False(t, h.IsDirty())

	h.SetShowAll(true)
	assert.True(t, h.IsDirty())
	assert.True(t, h.ShowAll())
}
