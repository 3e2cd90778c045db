package poolscroll

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v3"
)

const (
	jobQueueSize = 100
	// Resizes closer together than this are coalesced into one trailing
	// redraw.
	resizeSettle = 50 * time.Millisecond
)

// job is a function run on the event loop. done, when set, is closed once
// fn has returned.
type job struct {
	fn   func()
	done chan struct{}
}

// Application owns the screen and the event loop. Primitives are only
// touched from the loop goroutine; other goroutines go through
// [Application.QueueUpdate].
//
// Frames are drawn only while the root is dirty or after a forced redraw,
// so events that change nothing on screen cost no output.
type Application struct {
	sync.RWMutex

	screen tcell.Screen
	root   Primitive
	focus  Primitive

	events chan tcell.Event
	jobs   chan job

	inputCapture func(event *tcell.EventKey) Command
	afterDraw    func(screen tcell.Screen)

	log   *slog.Logger
	mouse mouseState

	// forceRedraw clears the screen and draws the next frame even if the
	// root is clean.
	forceRedraw bool
}

func NewApplication() *Application {
	return &Application{
		jobs: make(chan job, jobQueueSize),
		log:  slog.Default(),
	}
}

// SetScreen makes the application draw to screen instead of opening the
// terminal. Only the first screen set sticks.
func (a *Application) SetScreen(screen tcell.Screen) *Application {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		a.screen = screen
		a.forceRedraw = true
	}
	return a
}

// SetLogger sets where loop errors and unknown commands are reported. nil
// is ignored.
func (a *Application) SetLogger(logger *slog.Logger) *Application {
	if logger != nil {
		a.log = logger
	}
	return a
}

// SetInputCapture routes every key through capture before the root sees
// it. A returned command holding a [ConsumeEventCommand] keeps the key from
// the root.
func (a *Application) SetInputCapture(capture func(event *tcell.EventKey) Command) *Application {
	a.inputCapture = capture
	return a
}

// SetAfterDrawFunc sets a hook that runs on every drawn frame just before
// it is shown.
func (a *Application) SetAfterDrawFunc(handler func(screen tcell.Screen)) *Application {
	a.afterDraw = handler
	return a
}

func (a *Application) currentScreen() tcell.Screen {
	a.RLock()
	defer a.RUnlock()
	return a.screen
}

func (a *Application) getRoot() Primitive {
	a.RLock()
	defer a.RUnlock()
	return a.root
}

func (a *Application) requestRedraw() {
	a.Lock()
	a.forceRedraw = true
	a.Unlock()
}

// openScreen opens the terminal unless a screen was set.
func (a *Application) openScreen() error {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		a.screen = screen
		a.forceRedraw = true
	}
	a.events = a.screen.EventQ()
	return nil
}

// Run draws the first frame and processes events until [Application.Stop],
// a [QuitCommand] or a screen error.
func (a *Application) Run() error {
	if err := a.openScreen(); err != nil {
		return err
	}
	// Restore the terminal before a panic reaches the caller.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	loop := &eventLoop{app: a}
	a.draw()
	for a.currentScreen() != nil {
		select {
		case event := <-a.events:
			if event == nil {
				return loop.err
			}
			if loop.dispatch(event) {
				a.draw()
			}
		case j := <-a.jobs:
			j.fn()
			if j.done != nil {
				close(j.done)
			}
		}
	}
	return loop.err
}

// eventLoop holds the state Run keeps between events.
type eventLoop struct {
	app   *Application
	paste pasteBuffer
	// lastResize and settle coalesce resize bursts.
	lastResize time.Time
	settle     *time.Timer
	err        error
}

// dispatch handles one event and reports whether a frame should be drawn.
func (l *eventLoop) dispatch(event tcell.Event) bool {
	a := l.app
	switch event := event.(type) {
	case *tcell.EventKey:
		if l.paste.active {
			l.paste.add(event)
			return false
		}
		return a.handleKey(event)
	case *tcell.EventPaste:
		return l.handlePaste(event)
	case *tcell.EventResize:
		l.handleResize(event)
		return true
	case *tcell.EventMouse:
		return a.fireMouseActions(event)
	case *tcell.EventError:
		a.log.Error("application: screen error", "err", event)
		l.err = event
		a.Stop()
	}
	return false
}

func (l *eventLoop) handlePaste(event *tcell.EventPaste) bool {
	if event.Start() {
		l.paste.start()
		return false
	}
	if !event.End() {
		return false
	}
	text := l.paste.finish()
	root := l.app.getRoot()
	if root == nil || !root.HasFocus() || text == "" {
		return false
	}
	return l.app.executeCommand(root.PasteHandler(text))
}

// handleResize forces a full redraw. Inside a burst it also schedules one
// more resize event for after the burst settles.
func (l *eventLoop) handleResize(event *tcell.EventResize) {
	a := l.app
	a.requestRedraw()
	if time.Since(l.lastResize) < resizeSettle {
		if l.settle != nil {
			l.settle.Stop()
		}
		l.settle = time.AfterFunc(resizeSettle, func() {
			a.QueueEvent(event)
		})
	}
	l.lastResize = time.Now()
}

// pasteBuffer collects the keys of a bracketed paste.
type pasteBuffer struct {
	active bool
	text   strings.Builder
}

func (p *pasteBuffer) start() {
	p.active = true
	p.text.Reset()
}

func (p *pasteBuffer) add(event *tcell.EventKey) {
	switch event.Key() {
	case tcell.KeyRune:
		p.text.WriteString(event.Str())
	case tcell.KeyEnter:
		p.text.WriteByte('\n')
	case tcell.KeyTab:
		p.text.WriteByte('\t')
	}
}

func (p *pasteBuffer) finish() string {
	p.active = false
	return p.text.String()
}

// handleKey offers event to the input capture and then to the focused
// root. It reports whether a frame should be drawn.
func (a *Application) handleKey(event *tcell.EventKey) bool {
	redraw := false
	if a.inputCapture != nil {
		cmd := a.inputCapture(event)
		redraw = a.executeCommand(cmd)
		if consumes(cmd) {
			return redraw
		}
	}

	if root := a.getRoot(); root != nil && root.HasFocus() {
		redraw = a.executeCommand(root.InputHandler(event)) || redraw
	}
	return redraw
}

// Stop releases the screen, which ends Run. Calling it twice is harmless.
func (a *Application) Stop() {
	a.Lock()
	defer a.Unlock()
	if a.screen != nil {
		a.screen.Fini()
		a.screen = nil
	}
}

// Draw asks the event loop for a frame. Calling it from the loop goroutine
// deadlocks; use ForceDraw there.
func (a *Application) Draw() *Application {
	a.QueueUpdate(func() {
		a.draw()
	})
	return a
}

// ForceDraw clears the screen and draws a frame on the calling goroutine.
func (a *Application) ForceDraw() *Application {
	a.requestRedraw()
	return a.draw()
}

// draw resizes the root to the screen and draws it when it is dirty or a
// redraw was forced. The tree is clean afterwards.
func (a *Application) draw() *Application {
	a.Lock()
	screen, root, forced := a.screen, a.root, a.forceRedraw
	a.Unlock()
	if screen == nil || root == nil {
		return a
	}

	width, height := screen.Size()
	root.SetRect(0, 0, width, height)
	if !forced && !NeedsDraw(root) {
		return a
	}

	if forced {
		screen.Clear()
	}
	root.Draw(screen)
	if a.afterDraw != nil {
		a.afterDraw(screen)
	}
	screen.Show()
	Clean(root)

	a.Lock()
	a.forceRedraw = false
	a.Unlock()
	return a
}

// Sync resends the whole screen to the terminal on the next loop turn, for
// when the terminal was garbled from outside.
func (a *Application) Sync() *Application {
	a.jobs <- job{fn: func() {
		a.requestRedraw()
		if screen := a.currentScreen(); screen != nil {
			screen.Sync()
		}
	}}
	return a
}

// SetRoot replaces the root primitive and gives it the focus.
func (a *Application) SetRoot(root Primitive) *Application {
	a.Lock()
	a.root = root
	if a.screen != nil {
		a.forceRedraw = true
	}
	a.Unlock()

	return a.SetFocus(root)
}

// SetFocus moves the focus to p, which may delegate it further.
func (a *Application) SetFocus(p Primitive) *Application {
	a.Lock()
	previous := a.focus
	a.focus = p
	if a.screen != nil {
		a.screen.HideCursor()
	}
	a.Unlock()

	if previous != nil {
		previous.Blur()
	}
	if p != nil {
		p.Focus(func(next Primitive) {
			a.SetFocus(next)
		})
	}
	return a
}

func (a *Application) GetFocus() Primitive {
	a.RLock()
	defer a.RUnlock()
	return a.focus
}

// QueueUpdate runs f on the event loop and waits for it. It does not draw;
// see [Application.QueueUpdateDraw].
func (a *Application) QueueUpdate(f func()) *Application {
	done := make(chan struct{})
	a.jobs <- job{fn: f, done: done}
	<-done
	return a
}

// QueueUpdateDraw is QueueUpdate followed by a frame if f dirtied the tree.
func (a *Application) QueueUpdateDraw(f func()) *Application {
	return a.QueueUpdate(func() {
		f()
		a.draw()
	})
}

// QueueEvent feeds event to the loop as if the screen had sent it. It is
// dropped before Run has started.
func (a *Application) QueueEvent(event tcell.Event) *Application {
	a.RLock()
	events := a.events
	a.RUnlock()
	if events != nil {
		events <- event
	}
	return a
}

// executeCommand carries out cmd and reports whether a frame should be
// drawn.
func (a *Application) executeCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case nil, ConsumeEventCommand:
		return false
	case BatchCommand:
		redraw := false
		for _, item := range c {
			redraw = a.executeCommand(item) || redraw
		}
		return redraw
	case RedrawCommand:
		return true
	case QuitCommand:
		a.Stop()
		return false
	case SetFocusCommand:
		if c.Target == nil {
			return false
		}
		changed := a.GetFocus() != c.Target
		a.SetFocus(c.Target)
		return changed
	case SetTitleCommand:
		if screen := a.currentScreen(); screen != nil {
			screen.SetTitle(string(c))
		}
		return false
	default:
		a.log.Debug("application: unknown command", "type", fmt.Sprintf("%T", cmd))
		return false
	}
}
