package poolscroll

import "github.com/gdamore/tcell/v3"

// Frame stacks a body above a footer, typically a list above a help line.
// The footer keeps its height and the body gets the rest of the inner rect.
type Frame struct {
	*Box

	body         Primitive
	footer       Primitive
	footerHeight int
}

// NewFrame returns a frame around body.
func NewFrame(body Primitive) *Frame {
	f := &Frame{Box: NewBox()}
	f.SetBody(body)
	return f
}

// SetBody replaces the body.
func (f *Frame) SetBody(body Primitive) *Frame {
	UnbindDirtyParent(f.body, f.Box)
	f.body = body
	BindDirtyParent(body, f.Box)
	f.MarkDirty()
	return f
}

// SetFooter sets the footer and the number of rows it occupies. A nil footer
// or a non-positive height removes it.
func (f *Frame) SetFooter(footer Primitive, height int) *Frame {
	UnbindDirtyParent(f.footer, f.Box)
	if footer == nil || height <= 0 {
		footer, height = nil, 0
	}
	f.footer, f.footerHeight = footer, height
	BindDirtyParent(footer, f.Box)
	f.MarkDirty()
	return f
}

func (f *Frame) children() []Primitive {
	var children []Primitive
	for _, p := range []Primitive{f.body, f.footer} {
		if p != nil {
			children = append(children, p)
		}
	}
	return children
}

// Draw draws this primitive onto the screen.
func (f *Frame) Draw(screen tcell.Screen) {
	f.DrawForSubclass(screen, f)

	x, y, width, height := f.GetInnerRect()
	footerHeight := min(f.footerHeight, height)
	if f.body != nil {
		f.body.SetRect(x, y, width, height-footerHeight)
		f.body.Draw(screen)
	}
	if f.footer != nil && footerHeight > 0 {
		f.footer.SetRect(x, y+height-footerHeight, width, footerHeight)
		f.footer.Draw(screen)
	}
}

// Focus passes the focus on to the body.
func (f *Frame) Focus(delegate func(p Primitive)) {
	if f.body != nil && delegate != nil {
		delegate(f.body)
		return
	}
	f.Box.Focus(delegate)
}

// HasFocus returns whether the frame or one of its children has focus.
func (f *Frame) HasFocus() bool {
	for _, child := range f.children() {
		if child.HasFocus() {
			return true
		}
	}
	return f.Box.HasFocus()
}

// InputHandler forwards key events to the focused child.
func (f *Frame) InputHandler(event *tcell.EventKey) Command {
	for _, child := range f.children() {
		if child.HasFocus() {
			return child.InputHandler(event)
		}
	}
	return nil
}

// PasteHandler forwards pasted text to the focused child.
func (f *Frame) PasteHandler(text string) Command {
	for _, child := range f.children() {
		if child.HasFocus() {
			return child.PasteHandler(text)
		}
	}
	return nil
}

// MouseHandler offers the event to each child in turn until one reacts.
func (f *Frame) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if !f.InRect(event.Position()) {
		return nil, nil
	}
	for _, child := range f.children() {
		if capture, cmd := child.MouseHandler(action, event); capture != nil || cmd != nil {
			return capture, cmd
		}
	}
	return nil, nil
}

// MarkClean marks the frame and its children as clean.
func (f *Frame) MarkClean() {
	f.Box.MarkClean()
	for _, child := range f.children() {
		Clean(child)
	}
}

var _ Primitive = &Frame{}
