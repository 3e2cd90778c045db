package poolscroll

import (
	"time"

	"github.com/gdamore/tcell/v3"
)

// DoubleClickInterval specifies the maximum time between clicks to register a
// double click rather than click.
var DoubleClickInterval = 500 * time.Millisecond

// MouseAction indicates one of the actions the mouse is logically doing.
type MouseAction int16

// Available mouse actions.
const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseLeftClick
	MouseLeftDoubleClick
	MouseMiddleDown
	MouseMiddleUp
	MouseMiddleClick
	MouseMiddleDoubleClick
	MouseRightDown
	MouseRightUp
	MouseRightClick
	MouseRightDoubleClick
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

// mouseState derives logical actions from raw mouse events.
type mouseState struct {
	// capture receives follow-up events until its handler releases it.
	capture      Primitive
	lastX, lastY int
	downX, downY int
	lastClick    time.Time
	lastButtons  tcell.ButtonMask
}

var buttonActions = []struct {
	button                  tcell.ButtonMask
	down, up, click, dclick MouseAction
}{
	{tcell.ButtonPrimary, MouseLeftDown, MouseLeftUp, MouseLeftClick, MouseLeftDoubleClick},
	{tcell.ButtonMiddle, MouseMiddleDown, MouseMiddleUp, MouseMiddleClick, MouseMiddleDoubleClick},
	{tcell.ButtonSecondary, MouseRightDown, MouseRightUp, MouseRightClick, MouseRightDoubleClick},
}

var wheelActions = []struct {
	button tcell.ButtonMask
	action MouseAction
}{
	{tcell.WheelUp, MouseScrollUp},
	{tcell.WheelDown, MouseScrollDown},
	{tcell.WheelLeft, MouseScrollLeft},
	{tcell.WheelRight, MouseScrollRight},
}

// fireMouseActions turns event into mouse actions and hands them to the
// capturing primitive or the root. It reports whether a redraw is needed.
func (a *Application) fireMouseActions(event *tcell.EventMouse) bool {
	m := &a.mouse
	root := a.getRoot()
	redraw := false
	mouseDown := false

	fire := func(action MouseAction) {
		switch action {
		case MouseLeftDown, MouseMiddleDown, MouseRightDown:
			mouseDown = true
		}
		target := m.capture
		if target == nil {
			target = root
		}
		if target == nil {
			return
		}
		capture, cmd := target.MouseHandler(action, event)
		if a.executeCommand(cmd) {
			redraw = true
		}
		m.capture = capture
	}

	x, y := event.Position()
	buttons := event.Buttons()
	clickMoved := x != m.downX || y != m.downY
	changed := buttons ^ m.lastButtons

	if x != m.lastX || y != m.lastY {
		fire(MouseMove)
		m.lastX, m.lastY = x, y
	}

	for _, b := range buttonActions {
		if changed&b.button == 0 {
			continue
		}
		if buttons&b.button != 0 {
			fire(b.down)
			continue
		}
		fire(b.up)
		if clickMoved {
			continue
		}
		if m.lastClick.Add(DoubleClickInterval).Before(time.Now()) {
			fire(b.click)
			m.lastClick = time.Now()
		} else {
			fire(b.dclick)
			m.lastClick = time.Time{}
		}
	}

	for _, w := range wheelActions {
		if buttons&w.button != 0 {
			fire(w.action)
		}
	}

	m.lastButtons = buttons
	if mouseDown {
		m.downX, m.downY = x, y
	}
	return redraw
}
