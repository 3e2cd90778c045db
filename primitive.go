package poolscroll

import "github.com/gdamore/tcell/v3"

// Primitive is anything an [Application] can lay out, draw and route events
// to: pooled views, the list recycling them and the chrome around the list.
type Primitive interface {
	// Draw paints the primitive inside its rect. Only a focused primitive
	// should show the cursor.
	Draw(screen tcell.Screen)

	// GetRect returns x, y, width and height.
	GetRect() (int, int, int, int)
	SetRect(x, y, width, height int)

	// InputHandler handles a key while the primitive has focus.
	InputHandler(event *tcell.EventKey) Command
	// MouseHandler handles a mouse action inside or around the primitive. A
	// non-nil capture receives the following mouse events until released.
	MouseHandler(action MouseAction, event *tcell.EventMouse) (capture Primitive, cmd Command)
	PasteHandler(text string) Command

	// HasFocus is also true when a child has focus.
	HasFocus() bool
	// Focus may pass the focus on through delegate.
	Focus(delegate func(p Primitive))
	Blur()
}

// Tracked is a primitive that knows whether its last drawn frame is stale.
// Every primitive embedding a [Box] is tracked; containers override
// MarkClean to clean their children too.
type Tracked interface {
	IsDirty() bool
	MarkClean()
}

// NeedsDraw reports whether p has to be drawn again. Untracked primitives
// always do.
func NeedsDraw(p Primitive) bool {
	t, ok := p.(Tracked)
	return !ok || t.IsDirty()
}

// Clean marks p as drawn if it is tracked.
func Clean(p any) {
	if t, ok := p.(Tracked); ok {
		t.MarkClean()
	}
}
