package keybind

import (
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"j", "j"},
		{"G", "G"},
		{" pgdn ", "pgdn"},
		{"PageDown", "pgdn"},
		{"Escape", "esc"},
		{"Ctrl+F", "ctrl+f"},
		{"shift+ctrl+x", "ctrl+shift+x"},
		{"control+alt+Delete", "ctrl+alt+delete"},
		{"backtab", "shift+tab"},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func Test_Parse_Rejects_Unknown_Names(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "ctrl+", "hyper+x", "pagedownn", "f13"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidKey, in)
	}
}

func Test_Matches(t *testing.T) {
	t.Parallel()

	next := NewKeybind(WithKeys("down", "j", "ctrl+n"))
	end := NewKeybind(WithKeys("G"))

	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyDown, "", tcell.ModNone), next))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, "j", tcell.ModNone), next))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyCtrlN, "", tcell.ModCtrl), next))
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyRune, "k", tcell.ModNone), next))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, "G", tcell.ModShift), next, end))
	assert.False(t, Matches(nil, next))
}

func Test_Disabled_Keybinds_Never_Match(t *testing.T) {
	t.Parallel()

	kb := NewKeybind(WithKeys("j"), WithDisabled())
	j := tcell.NewEventKey(tcell.KeyRune, "j", tcell.ModNone)
	assert.False(t, kb.Enabled())
	assert.False(t, Matches(j, kb))

	kb.SetEnabled(true)
	assert.True(t, Matches(j, kb))

	assert.False(t, NewKeybind().Enabled(), "a keybind without keys is never enabled")
}

func Test_SetKeys_Is_All_Or_Nothing(t *testing.T) {
	t.Parallel()

	kb := NewKeybind(WithKeys("j"))
	require.ErrorIs(t, kb.SetKeys("n", "nope"), ErrInvalidKey)
	assert.Equal(t, []string{"j"}, kb.Keys())

	require.NoError(t, kb.SetKeys("n", "Ctrl+N"))
	assert.Equal(t, []string{"n", "ctrl+n"}, kb.Keys())
}
