package poolscroll

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v3"
)

type rect struct {
	x, y, width, height int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.width && y >= r.y && y < r.y+r.height
}

type insets struct {
	top, bottom, left, right int
}

// Box is the base every primitive in this module embeds. It owns the rect,
// the optional border and title around the content, focus state and the
// dirty flag that decides whether the next frame is drawn at all.
type Box struct {
	outer rect

	// inner is the content rect, recomputed when innerValid is false.
	inner      rect
	innerValid bool

	padding insets

	background tcell.Color
	// keepBackground skips the background fill in Draw.
	keepBackground bool

	borders     Borders
	borderSet   BorderSet
	borderStyle tcell.Style

	title          string
	titleStyle     tcell.Style
	titleAlignment Alignment

	hasFocus    bool
	onFocus     func()
	onBlur      func()
	dirty       atomic.Bool
	dirtyParent atomic.Pointer[Box]
}

// NewBox returns a dirty, borderless Box in the theme's colors.
func NewBox() *Box {
	b := &Box{
		outer:      rect{width: 15, height: 10},
		background: Styles.PrimitiveBackgroundColor,

		borderStyle: tcell.StyleDefault.Foreground(Styles.BorderColor).Background(Styles.PrimitiveBackgroundColor),
		borderSet:   BorderSetPlain(),

		titleStyle:     tcell.StyleDefault.Foreground(Styles.TitleColor),
		titleAlignment: AlignmentCenter,
	}
	b.dirty.Store(true)
	return b
}

// update stores value in field and dirties b when it changed.
func update[T comparable](b *Box, field *T, value T) bool {
	if *field == value {
		return false
	}
	*field = value
	b.MarkDirty()
	return true
}

// reshape is update for fields the inner rect depends on.
func reshape[T comparable](b *Box, field *T, value T) {
	if update(b, field, value) {
		b.innerValid = false
	}
}

// SetBorderPadding sets the blank cells kept between the border and the
// content.
func (b *Box) SetBorderPadding(top, bottom, left, right int) *Box {
	reshape(b, &b.padding, insets{top, bottom, left, right})
	return b
}

// GetRect returns x, y, width and height.
func (b *Box) GetRect() (int, int, int, int) {
	return b.outer.x, b.outer.y, b.outer.width, b.outer.height
}

// SetRect moves and resizes the box.
func (b *Box) SetRect(x, y, width, height int) {
	reshape(b, &b.outer, rect{x, y, width, height})
}

// GetInnerRect returns the content rect inside border, title and padding.
// Width and height never go below 0.
func (b *Box) GetInnerRect() (int, int, int, int) {
	if !b.innerValid {
		left, top := b.padding.left, b.padding.top
		if b.borders.Has(BordersLeft) {
			left++
		}
		if b.hasTopRow() {
			top++
		}
		chromeWidth, chromeHeight := b.GetChromeSize()
		b.inner = rect{
			x:      b.outer.x + left,
			y:      b.outer.y + top,
			width:  max(b.outer.width-chromeWidth, 0),
			height: max(b.outer.height-chromeHeight, 0),
		}
		b.innerValid = true
	}
	return b.inner.x, b.inner.y, b.inner.width, b.inner.height
}

// GetChromeSize returns the cells the border, title and padding take up
// horizontally and vertically, whatever the current rect.
func (b *Box) GetChromeSize() (int, int) {
	width := b.padding.left + b.padding.right
	height := b.padding.top + b.padding.bottom
	if b.hasTopRow() {
		height++
	}
	if b.borders.Has(BordersBottom) {
		height++
	}
	if b.borders.Has(BordersLeft) {
		width++
	}
	if b.borders.Has(BordersRight) {
		width++
	}
	return width, height
}

// The title claims the top row even without a top border.
func (b *Box) hasTopRow() bool {
	return b.title != "" || b.borders.Has(BordersTop)
}

// IsDirty reports whether the box changed since the last MarkClean.
func (b *Box) IsDirty() bool {
	return b.dirty.Load()
}

// MarkDirty flags the box for redraw. The first transition from clean also
// dirties the bound parent, and so on up the tree.
func (b *Box) MarkDirty() {
	if b.dirty.Swap(true) {
		return
	}
	if parent := b.dirtyParent.Load(); parent != nil {
		parent.MarkDirty()
	}
}

// MarkClean clears the dirty flag. Containers override it to clean their
// children too.
func (b *Box) MarkClean() {
	b.dirty.Store(false)
}

type dirtyParentSetter interface {
	setDirtyParent(parent *Box)
	clearDirtyParent(parent *Box)
}

func (b *Box) setDirtyParent(parent *Box) {
	if parent != nil && parent != b {
		b.dirtyParent.Store(parent)
	}
}

func (b *Box) clearDirtyParent(parent *Box) {
	if parent != nil {
		b.dirtyParent.CompareAndSwap(parent, nil)
	}
}

// BindDirtyParent makes parent dirty whenever child becomes dirty. Children
// that do not embed a Box are ignored.
func BindDirtyParent(child Primitive, parent *Box) {
	if setter, ok := child.(dirtyParentSetter); ok && parent != nil {
		setter.setDirtyParent(parent)
	}
}

// UnbindDirtyParent undoes BindDirtyParent if parent is still the bound one.
func UnbindDirtyParent(child Primitive, parent *Box) {
	if setter, ok := child.(dirtyParentSetter); ok && parent != nil {
		setter.clearDirtyParent(parent)
	}
}

func (b *Box) InputHandler(event *tcell.EventKey) Command {
	return nil
}

func (b *Box) PasteHandler(text string) Command {
	return nil
}

// MouseHandler asks for focus on a left click inside the box.
func (b *Box) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if action == MouseLeftDown && b.InRect(event.Position()) {
		return nil, SetFocusCommand{Target: b}
	}
	return nil, nil
}

// InRect reports whether the cell lies inside the box.
func (b *Box) InRect(x, y int) bool {
	return b.outer.contains(x, y)
}

// InInnerRect reports whether the cell lies inside the content rect.
func (b *Box) InInnerRect(x, y int) bool {
	b.GetInnerRect()
	return b.inner.contains(x, y)
}

// SetBackgroundColor sets the fill color, border background included.
func (b *Box) SetBackgroundColor(color tcell.Color) *Box {
	if update(b, &b.background, color) {
		b.borderStyle = b.borderStyle.Background(color)
	}
	return b
}

func (b *Box) GetBackgroundColor() tcell.Color {
	return b.background
}

// SetDontClear keeps Draw from filling the background, for primitives drawn
// on top of another primitive's content.
func (b *Box) SetDontClear(dontClear bool) *Box {
	b.keepBackground = dontClear
	return b
}

func (b *Box) GetBorders() Borders {
	return b.borders
}

// SetBorders sets which sides get a border.
func (b *Box) SetBorders(flag Borders) *Box {
	reshape(b, &b.borders, flag)
	return b
}

func (b *Box) SetBorderSet(borderSet BorderSet) *Box {
	update(b, &b.borderSet, borderSet)
	return b
}

func (b *Box) SetBorderStyle(style tcell.Style) *Box {
	update(b, &b.borderStyle, style)
	return b
}

func (b *Box) GetTitle() string {
	return b.title
}

// SetTitle sets the text shown in the top row. A title without a top
// border still takes that row.
func (b *Box) SetTitle(title string) *Box {
	reshape(b, &b.title, title)
	return b
}

func (b *Box) SetTitleAlignment(alignment Alignment) *Box {
	update(b, &b.titleAlignment, alignment)
	return b
}

// Draw paints the background, border and title.
func (b *Box) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
}

// DrawForSubclass paints the box chrome for the primitive p embedding it.
// Embedders call it first and then draw inside GetInnerRect.
func (b *Box) DrawForSubclass(screen tcell.Screen, p Primitive) {
	r := b.outer
	if r.width <= 0 || r.height <= 0 {
		return
	}

	if !b.keepBackground {
		fill := tcell.StyleDefault.Background(b.background)
		for y := r.y; y < r.y+r.height; y++ {
			for x := r.x; x < r.x+r.width; x++ {
				screen.Put(x, y, " ", fill)
			}
		}
	}

	if b.borders != BordersNone && r.width >= 2 && r.height >= 2 {
		b.drawBorders(screen)
	}
	if b.title != "" && r.width >= 4 {
		b.drawTitle(screen)
	}

	b.innerValid = false
	b.GetInnerRect()
}

// drawTitle prints the title between the corners and marks a cut with an
// ellipsis in the border's colors.
func (b *Box) drawTitle(screen tcell.Screen) {
	r := b.outer
	printed, _ := printText(screen, b.title, r.x+1, r.y, r.width-2, b.titleAlignment, b.titleStyle, true)
	if printed == 0 || printed >= len(b.title) {
		return
	}
	x := r.x + r.width - 2
	if b.titleAlignment == AlignmentRight {
		x = r.x + 1
	}
	_, style, _ := screen.Get(x, r.y)
	Print(screen, SemigraphicsHorizontalEllipsis, x, r.y, 1, AlignmentLeft, style.GetForeground())
}

func (b *Box) drawBorders(screen tcell.Screen) {
	r := b.outer
	right, bottom := r.x+r.width-1, r.y+r.height-1
	edges := []struct {
		flag         Borders
		glyph        string
		x, y, dx, dy int
		n            int
	}{
		{BordersTop, b.borderSet.Top, r.x + 1, r.y, 1, 0, r.width - 2},
		{BordersBottom, b.borderSet.Bottom, r.x + 1, bottom, 1, 0, r.width - 2},
		{BordersLeft, b.borderSet.Left, r.x, r.y + 1, 0, 1, r.height - 2},
		{BordersRight, b.borderSet.Right, right, r.y + 1, 0, 1, r.height - 2},
	}
	for _, e := range edges {
		if !b.borders.Has(e.flag) {
			continue
		}
		for i := range e.n {
			screen.Put(e.x+i*e.dx, e.y+i*e.dy, e.glyph, b.borderStyle)
		}
	}

	corners := []struct {
		flag  Borders
		x, y  int
		glyph string
	}{
		{BordersTop | BordersLeft, r.x, r.y, b.borderSet.TopLeft},
		{BordersTop | BordersRight, right, r.y, b.borderSet.TopRight},
		{BordersBottom | BordersLeft, r.x, bottom, b.borderSet.BottomLeft},
		{BordersBottom | BordersRight, right, bottom, b.borderSet.BottomRight},
	}
	for _, c := range corners {
		if b.borders&c.flag == c.flag {
			screen.Put(c.x, c.y, c.glyph, b.borderStyle)
		}
	}
}

// SetFocusFunc sets a callback run whenever the box receives focus. nil
// removes it.
func (b *Box) SetFocusFunc(callback func()) *Box {
	b.onFocus = callback
	return b
}

// SetBlurFunc sets a callback run whenever the box loses focus. nil removes
// it.
func (b *Box) SetBlurFunc(callback func()) *Box {
	b.onBlur = callback
	return b
}

// Focus takes the focus itself. Containers override it to delegate.
func (b *Box) Focus(delegate func(p Primitive)) {
	update(b, &b.hasFocus, true)
	if b.onFocus != nil {
		b.onFocus()
	}
}

func (b *Box) Blur() {
	update(b, &b.hasFocus, false)
	if b.onBlur != nil {
		b.onBlur()
	}
}

func (b *Box) HasFocus() bool {
	return b.hasFocus
}

var _ Primitive = &Box{}
