// Package keybind maps key events to named, help-annotated bindings.
package keybind

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v3"
)

// ErrInvalidKey is returned by [Parse] for key names it cannot match against
// events.
var ErrInvalidKey = errors.New("invalid key")

// Keybind is a set of equivalent keys plus the text shown for them in help.
// Keys are written like "ctrl+f", "pgdn" or "j".
type Keybind struct {
	keys     []string
	help     Help
	disabled bool
}

type Help struct {
	Key  string
	Desc string
}

type Option func(*Keybind)

// NewKeybind returns an enabled keybind configured by options.
func NewKeybind(options ...Option) Keybind {
	var k Keybind
	for _, option := range options {
		option(&k)
	}
	return k
}

// WithKeys sets the keys. Names [Parse] rejects are dropped.
func WithKeys(keys ...string) Option {
	return func(k *Keybind) {
		for _, key := range keys {
			if canonical, err := Parse(key); err == nil {
				k.keys = append(k.keys, canonical)
			}
		}
	}
}

func WithHelp(key, desc string) Option {
	return func(k *Keybind) {
		k.help = Help{Key: key, Desc: desc}
	}
}

// WithDisabled creates the keybind disabled.
func WithDisabled() Option {
	return func(k *Keybind) {
		k.disabled = true
	}
}

func (k Keybind) Keys() []string {
	return k.keys
}

// SetKeys replaces the keys. Nothing changes when any of them is invalid.
func (k *Keybind) SetKeys(keys ...string) error {
	parsed := make([]string, 0, len(keys))
	for _, key := range keys {
		canonical, err := Parse(key)
		if err != nil {
			return err
		}
		parsed = append(parsed, canonical)
	}
	k.keys = parsed
	return nil
}

func (k Keybind) Help() Help {
	return k.help
}

func (k *Keybind) SetHelp(key, desc string) {
	k.help = Help{Key: key, Desc: desc}
}

// Enabled reports whether the keybind matches events and shows in help.
func (k Keybind) Enabled() bool {
	return !k.disabled && len(k.keys) > 0
}

func (k *Keybind) SetEnabled(enabled bool) {
	k.disabled = !enabled
}

// Matches reports whether event triggers any of the enabled keybinds.
func Matches(event *tcell.EventKey, keybinds ...Keybind) bool {
	if event == nil {
		return false
	}

	name := eventName(event)
	for _, k := range keybinds {
		if k.Enabled() && slices.Contains(k.keys, name) {
			return true
		}
	}
	return false
}

type modifier uint8

const (
	modCtrl modifier = 1 << iota
	modAlt
	modShift
	modMeta
)

// modifierNames is in the order modifiers appear in canonical names.
var modifierNames = []struct {
	mod  modifier
	name string
}{
	{modCtrl, "ctrl"},
	{modAlt, "alt"},
	{modShift, "shift"},
	{modMeta, "meta"},
}

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "esc",
	tcell.KeyTab:        "tab",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
	tcell.KeyDelete:     "delete",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyInsert:     "insert",
}

var aliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"pageup":   "pgup",
	"pagedown": "pgdn",
	"del":      "delete",
	"ins":      "insert",
}

// named holds every multi-character key name that events produce.
var named = func() map[string]bool {
	m := make(map[string]bool, len(keyNames))
	for _, name := range keyNames {
		m[name] = true
	}
	return m
}()

// chord is a key name plus the modifiers held with it.
type chord struct {
	mods modifier
	key  string
}

func (c chord) String() string {
	var b strings.Builder
	for _, m := range modifierNames {
		if c.mods&m.mod != 0 {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	b.WriteString(c.key)
	return b.String()
}

// Parse returns the canonical form of a key name such as "Ctrl+F",
// "PageDown", "shift+tab" or "G". Modifiers are matched case-insensitively
// and ordered ctrl, alt, shift, meta. A single character keeps its case
// unless a modifier is held.
func Parse(name string) (string, error) {
	var c chord
	parts := strings.Split(strings.TrimSpace(name), "+")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if i < len(parts)-1 {
			mod, ok := parseModifier(part)
			if !ok {
				return "", fmt.Errorf("%w %q: unknown modifier %q", ErrInvalidKey, name, part)
			}
			c.mods |= mod
			continue
		}
		if part == "" {
			return "", fmt.Errorf("%w %q: no key", ErrInvalidKey, name)
		}
		c.key = part
	}

	switch {
	case len([]rune(c.key)) == 1:
		if c.mods != 0 {
			c.key = strings.ToLower(c.key)
		}
	default:
		key := strings.ToLower(c.key)
		if alias, ok := aliases[key]; ok {
			key = alias
		}
		if key == "backtab" {
			c.mods |= modShift
			key = "tab"
		}
		if !named[key] {
			return "", fmt.Errorf("%w %q: unknown key %q", ErrInvalidKey, name, c.key)
		}
		c.key = key
	}
	return c.String(), nil
}

func parseModifier(name string) (modifier, bool) {
	switch strings.ToLower(name) {
	case "ctrl", "control":
		return modCtrl, true
	case "alt", "opt":
		return modAlt, true
	case "shift":
		return modShift, true
	case "meta", "cmd":
		return modMeta, true
	}
	return 0, false
}

// eventName returns the canonical name of the key in event, as [Parse]
// would produce it.
func eventName(event *tcell.EventKey) string {
	key := event.Key()
	var c chord
	if event.Modifiers()&tcell.ModCtrl != 0 {
		c.mods |= modCtrl
	}
	if event.Modifiers()&tcell.ModAlt != 0 {
		c.mods |= modAlt
	}
	if event.Modifiers()&tcell.ModShift != 0 {
		c.mods |= modShift
	}
	if event.Modifiers()&tcell.ModMeta != 0 {
		c.mods |= modMeta
	}

	switch {
	case keyNames[key] != "":
		c.key = keyNames[key]
	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		c.mods |= modCtrl
		c.key = string(rune('a' + (key - tcell.KeyCtrlA)))
	case key == tcell.KeyBacktab:
		c.mods |= modShift
		c.key = "tab"
	case key == tcell.KeyRune:
		c.key = event.Str()
		if c.mods != 0 {
			c.key = strings.ToLower(c.key)
		}
		// Shifted characters arrive already shifted.
		if c.mods == modShift {
			c.mods = 0
			c.key = event.Str()
		}
	}
	if c.key == "" {
		return ""
	}
	return c.String()
}
