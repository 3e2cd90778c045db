package main

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v3"

	"github.com/ayn2op/poolscroll"
	"github.com/ayn2op/poolscroll/help"
	"github.com/ayn2op/poolscroll/keybind"
	"github.com/ayn2op/poolscroll/layers"
	"github.com/ayn2op/poolscroll/pool"
)

const helpLayer = "help"

type keyMap struct {
	Add    keybind.Keybind
	Insert keybind.Keybind
	Help   keybind.Keybind
	Quit   keybind.Keybind
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:    keybind.NewKeybind(keybind.WithKeys("a"), keybind.WithHelp("a", "append")),
		Insert: keybind.NewKeybind(keybind.WithKeys("i"), keybind.WithHelp("i", "insert at top")),
		Help:   keybind.NewKeybind(keybind.WithKeys("?"), keybind.WithHelp("?", "help")),
		Quit:   keybind.NewKeybind(keybind.WithKeys("q", "ctrl+c"), keybind.WithHelp("q", "quit")),
	}
}

// rebind applies key overrides, keyed by action name, to the list and
// application keys. Help labels follow the new keys.
func rebind(overrides map[string][]string, list *poolscroll.ListKeyMap, app *keyMap) error {
	targets := map[string]*keybind.Keybind{
		"next":      &list.Next,
		"prev":      &list.Prev,
		"page_down": &list.PageDown,
		"page_up":   &list.PageUp,
		"home":      &list.Home,
		"end":       &list.End,
		"add":       &app.Add,
		"insert":    &app.Insert,
		"help":      &app.Help,
		"quit":      &app.Quit,
	}
	for _, action := range slices.Sorted(maps.Keys(overrides)) {
		kb, ok := targets[action]
		if !ok {
			return fmt.Errorf("unknown key action %q", action)
		}
		keys := overrides[action]
		if err := kb.SetKeys(keys...); err != nil {
			return fmt.Errorf("keys.%s: %w", action, err)
		}
		kb.SetHelp(strings.Join(keys, "/"), kb.Help().Desc)
	}
	return nil
}

type ui struct {
	app      *poolscroll.Application
	root     *layers.Layers
	list     *poolscroll.StringList
	footer   *help.Help
	fullHelp *help.Help
	keys     keyMap
	log      *slog.Logger

	added    int
	titleTop int
}

func newUI(cfg Config, items []string, logger *slog.Logger) *ui {
	u := &ui{
		app:      poolscroll.NewApplication().SetLogger(logger),
		root:     layers.New(),
		keys:     defaultKeyMap(),
		log:      logger,
		titleTop: -1,
	}

	// Validated by LoadConfig.
	orientation, _ := pool.ParseOrientation(cfg.Orientation)

	u.list = poolscroll.NewStringList(pool.WithLogger[*poolscroll.TextSlot](logger))
	u.list.SetLogger(logger)
	u.list.SetOrientation(orientation).
		SetItemExtent(cfg.ItemExtent).
		SetSpacing(cfg.Spacing).
		SetPadding(cfg.Padding, cfg.Padding).
		SetChangedFunc(func(top int) {
			u.log.Debug("poolscroll: top index changed", "top", top, "items", u.list.Len())
		})
	// Validated by LoadConfig.
	listKeys := u.list.KeyMap()
	_ = rebind(cfg.Keys, &listKeys, &u.keys)
	u.list.SetKeyMap(listKeys)

	if cfg.ScrollBar {
		u.list.SetScrollBar(poolscroll.NewScrollBar())
	}
	if cfg.Border != "none" {
		borderSet, _ := poolscroll.BorderSetByName(cfg.Border)
		u.list.SetBorders(poolscroll.BordersAll).SetBorderSet(borderSet)
		u.list.SetTitle(" poolscroll ")
	}
	u.list.SetNumbered(cfg.Numbered)
	u.list.Add(items...)
	if cfg.Seek >= 0 {
		u.list.SeekTopIndex(cfg.Seek)
	}

	u.footer = help.New().SetKeyMap(u)
	u.fullHelp = help.New().SetKeyMap(u).SetShowAll(true)
	u.fullHelp.SetBorders(poolscroll.BordersAll).SetBorderSet(poolscroll.BorderSetRound())
	u.fullHelp.SetTitle(" keys ").SetBorderPadding(0, 0, 1, 1)

	frame := poolscroll.NewFrame(u.list).SetFooter(u.footer, 1)
	u.root.AddLayer(frame, layers.WithName("main"), layers.WithResize(true))
	u.root.SetBackgroundLayerStyle(tcell.StyleDefault.Dim(true))

	u.app.SetRoot(u.root).
		SetInputCapture(u.capture).
		SetAfterDrawFunc(u.afterDraw)
	return u
}

func (u *ui) run() error {
	return u.app.Run()
}

// drawOnce renders a single frame onto screen without an event loop.
func (u *ui) drawOnce(screen tcell.Screen) {
	width, height := screen.Size()
	u.root.SetRect(0, 0, width, height)
	u.root.Draw(screen)
	u.afterDraw(screen)
}

// ShortHelp and FullHelp make the ui the key map of both help views, so the
// list's keys show up disabled as soon as everything fits.
func (u *ui) ShortHelp() []keybind.Keybind {
	return append(u.list.KeyMap().ShortHelp(), u.keys.Help, u.keys.Quit)
}

func (u *ui) FullHelp() [][]keybind.Keybind {
	return append(u.list.KeyMap().FullHelp(),
		[]keybind.Keybind{u.keys.Add, u.keys.Insert},
		[]keybind.Keybind{u.keys.Help, u.keys.Quit},
	)
}

// capture handles the keys that work regardless of focus.
func (u *ui) capture(event *tcell.EventKey) poolscroll.Command {
	handled := poolscroll.BatchCommand{poolscroll.RedrawCommand{}, poolscroll.ConsumeEventCommand{}}
	switch {
	case keybind.Matches(event, u.keys.Quit):
		return poolscroll.QuitCommand{}
	case keybind.Matches(event, u.keys.Help):
		u.toggleHelp()
		return handled
	case u.root.GetVisible(helpLayer):
		// Everything else is swallowed while the help is shown.
		return poolscroll.ConsumeEventCommand{}
	case keybind.Matches(event, u.keys.Add):
		u.added++
		u.list.Add("Added " + strconv.Itoa(u.added))
		return handled
	case keybind.Matches(event, u.keys.Insert):
		u.added++
		u.list.Insert(u.list.TopIndex(), "Inserted "+strconv.Itoa(u.added))
		return handled
	}
	return nil
}

func (u *ui) toggleHelp() {
	if u.root.GetVisible(helpLayer) {
		u.root.HideLayer(helpLayer)
		return
	}
	width, height := u.fullHelp.Size()
	u.root.AddLayer(u.fullHelp,
		layers.WithName(helpLayer),
		layers.WithCentered(width, height),
		layers.WithOverlay(),
	)
}

// afterDraw keeps the terminal title in step with the window.
func (u *ui) afterDraw(screen tcell.Screen) {
	top := u.list.TopIndex()
	if top == u.titleTop {
		return
	}
	u.titleTop = top
	screen.SetTitle(fmt.Sprintf("poolscroll: %d/%d", top+1, u.list.Len()))
}
