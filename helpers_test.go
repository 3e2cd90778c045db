package poolscroll

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gdamore/tcell/v3"

	"github.com/ayn2op/poolscroll/pool"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func keyEvent(key tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(key, "", tcell.ModNone)
}

func runeEvent(str string) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, str, tcell.ModNone)
}

func numbered(from, to int) []string {
	out := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, fmt.Sprint(i))
	}
	return out
}

// render draws p into a fresh screen of the given size.
func render(p Primitive, width, height int) *CaptureScreen {
	screen := NewCaptureScreen(width, height)
	p.SetRect(0, 0, width, height)
	p.Draw(screen)
	return screen
}

// redraw draws p again onto screen, as the application does after an event.
func redraw(p Primitive, screen *CaptureScreen) {
	screen.Clear()
	p.Draw(screen)
}

// newTestList returns a list of the values "0" to "n-1".
func newTestList(n int) *StringList {
	l := NewStringList(pool.WithLogger[*TextSlot](quiet))
	l.SetLogger(quiet)
	l.Add(numbered(0, n)...)
	return l
}
