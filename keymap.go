package poolscroll

import (
	"github.com/ayn2op/poolscroll/keybind"
	"github.com/ayn2op/poolscroll/pool"
)

// ListKeyMap holds the keybinds a [PoolList] reacts to. It implements the
// KeyMap interface of the help package.
type ListKeyMap struct {
	Next     keybind.Keybind
	Prev     keybind.Keybind
	PageDown keybind.Keybind
	PageUp   keybind.Keybind
	Home     keybind.Keybind
	End      keybind.Keybind
}

// DefaultListKeyMap returns arrow, vi and paging keys for the given axis.
func DefaultListKeyMap(orientation pool.Orientation) ListKeyMap {
	next := keybind.NewKeybind(keybind.WithKeys("down", "j"), keybind.WithHelp("↓/j", "next"))
	prev := keybind.NewKeybind(keybind.WithKeys("up", "k"), keybind.WithHelp("↑/k", "prev"))
	if orientation == pool.Horizontal {
		next = keybind.NewKeybind(keybind.WithKeys("right", "l"), keybind.WithHelp("→/l", "next"))
		prev = keybind.NewKeybind(keybind.WithKeys("left", "h"), keybind.WithHelp("←/h", "prev"))
	}

	return ListKeyMap{
		Next:     next,
		Prev:     prev,
		PageDown: keybind.NewKeybind(keybind.WithKeys("pgdn", "ctrl+f"), keybind.WithHelp("pgdn", "page down")),
		PageUp:   keybind.NewKeybind(keybind.WithKeys("pgup", "ctrl+b"), keybind.WithHelp("pgup", "page up")),
		Home:     keybind.NewKeybind(keybind.WithKeys("home", "g"), keybind.WithHelp("g/home", "first")),
		End:      keybind.NewKeybind(keybind.WithKeys("end", "G"), keybind.WithHelp("G/end", "last")),
	}
}

// setScrollable enables the movement keys only when there is somewhere to
// scroll.
func (k *ListKeyMap) setScrollable(scrollable bool) {
	for _, kb := range []*keybind.Keybind{&k.Next, &k.Prev, &k.PageDown, &k.PageUp, &k.Home, &k.End} {
		kb.SetEnabled(scrollable)
	}
}

func (k ListKeyMap) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.Next, k.Prev, k.PageDown, k.PageUp}
}

func (k ListKeyMap) FullHelp() [][]keybind.Keybind {
	return [][]keybind.Keybind{
		{k.Next, k.Prev},
		{k.PageDown, k.PageUp},
		{k.Home, k.End},
	}
}
