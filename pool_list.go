package poolscroll

import (
	"log/slog"
	"math"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"

	"github.com/ayn2op/poolscroll/keybind"
	"github.com/ayn2op/poolscroll/pool"
)

// engineBuilder creates the engine a PoolList drives. It receives the list
// as the engine's viewport.
type engineBuilder[V Primitive] func(viewport pool.Viewport, options ...pool.Option[V]) *pool.Engine[V]

// PoolList scrolls a list of any length while only ever creating enough views
// to cover its viewport. It owns the scroll offset and hands a
// [pool.Engine] the geometry measured from its inner rect, then lays out the
// engine's slots along the scroll axis.
//
// Extents are in cells: rows for a vertical list, columns for a horizontal
// one.
type PoolList[V Primitive] struct {
	*Box

	engine *pool.Engine[V]
	log    *slog.Logger

	orientation   pool.Orientation
	itemExtent    int
	spacing       int
	paddingBefore int
	paddingAfter  int

	// Scroll offset in cells past the leading edge.
	offset float64
	// Index to seek to once the engine is initialized, or -1.
	pendingSeek int
	// The last geometry error, cleared by the next valid geometry.
	err error

	scrollBar *ScrollBar
	keys      ListKeyMap

	changed func(top int)
	lastTop int
}

// NewPoolList returns a vertical list whose views are created by factory
// and filled by binder.
func NewPoolList[V Primitive](binder pool.Binder[V], factory pool.Factory[V], options ...pool.Option[V]) *PoolList[V] {
	return newPoolList[V](func(viewport pool.Viewport, options ...pool.Option[V]) *pool.Engine[V] {
		return pool.New(viewport, binder, options...)
	}, factory, options...)
}

func newPoolList[V Primitive](build engineBuilder[V], factory pool.Factory[V], options ...pool.Option[V]) *PoolList[V] {
	l := &PoolList[V]{
		Box:         NewBox(),
		log:         pool.Logger(),
		orientation: pool.Vertical,
		itemExtent:  1,
		pendingSeek: -1,
		keys:        DefaultListKeyMap(pool.Vertical),
		lastTop:     -1,
	}
	options = append(options, pool.WithFactory[V](&slotFactory[V]{factory: factory, parent: l.Box}))
	l.engine = build(l, options...)
	return l
}

// slotFactory ties every pooled view to the list so a rebound view marks
// the list dirty.
type slotFactory[V Primitive] struct {
	factory pool.Factory[V]
	parent  *Box
}

func (f *slotFactory[V]) Create() V {
	view := f.factory.Create()
	BindDirtyParent(view, f.parent)
	return view
}

func (f *slotFactory[V]) Destroy(view V) {
	UnbindDirtyParent(view, f.parent)
	f.factory.Destroy(view)
}

// Engine returns the engine driving this list.
func (l *PoolList[V]) Engine() *pool.Engine[V] {
	return l.engine
}

// SetLogger sets the logger for geometry errors. It does not affect the
// engine, which is configured with [pool.WithLogger].
func (l *PoolList[V]) SetLogger(logger *slog.Logger) *PoolList[V] {
	if logger != nil {
		l.log = logger
	}
	return l
}

// Offset returns the scroll offset in cells.
func (l *PoolList[V]) Offset() float64 {
	return l.offset
}

// SetOffset sets the scroll offset in cells. It is clamped to the scrollable
// range on the next draw.
func (l *PoolList[V]) SetOffset(offset float64) {
	if l.offset != offset {
		l.offset = offset
		l.MarkDirty()
	}
}

// SetOrientation sets the scroll axis and resets the movement keys to the
// defaults for that axis.
func (l *PoolList[V]) SetOrientation(orientation pool.Orientation) *PoolList[V] {
	if l.orientation != orientation {
		l.orientation = orientation
		l.keys = DefaultListKeyMap(orientation)
		if l.scrollBar != nil {
			l.scrollBar.SetOrientation(orientation)
		}
		l.MarkDirty()
	}
	return l
}

// Orientation returns the scroll axis.
func (l *PoolList[V]) Orientation() pool.Orientation {
	return l.orientation
}

// SetItemExtent sets the number of cells every item occupies along the
// scroll axis.
func (l *PoolList[V]) SetItemExtent(extent int) *PoolList[V] {
	if l.itemExtent != extent {
		l.itemExtent = extent
		l.MarkDirty()
	}
	return l
}

// SetSpacing sets the number of blank cells between adjacent items.
func (l *PoolList[V]) SetSpacing(spacing int) *PoolList[V] {
	if l.spacing != spacing {
		l.spacing = spacing
		l.MarkDirty()
	}
	return l
}

// SetPadding sets blank cells before the first and after the last item.
func (l *PoolList[V]) SetPadding(before, after int) *PoolList[V] {
	if l.paddingBefore != before || l.paddingAfter != after {
		l.paddingBefore, l.paddingAfter = before, after
		l.MarkDirty()
	}
	return l
}

// SetScrollBar attaches a scroll bar drawn along the trailing edge of the
// inner rect. Pass nil to remove it.
func (l *PoolList[V]) SetScrollBar(scrollBar *ScrollBar) *PoolList[V] {
	if l.scrollBar != nil {
		UnbindDirtyParent(l.scrollBar, l.Box)
	}
	l.scrollBar = scrollBar
	if scrollBar != nil {
		scrollBar.SetOrientation(l.orientation)
		BindDirtyParent(scrollBar, l.Box)
	}
	l.MarkDirty()
	return l
}

// SetKeyMap replaces the keybinds.
func (l *PoolList[V]) SetKeyMap(keys ListKeyMap) *PoolList[V] {
	l.keys = keys
	return l
}

// KeyMap returns the keybinds, with the movement keys disabled while every
// item fits.
func (l *PoolList[V]) KeyMap() ListKeyMap {
	return l.keys
}

// SetChangedFunc sets a handler called from Draw whenever the top index
// changes.
func (l *PoolList[V]) SetChangedFunc(handler func(top int)) *PoolList[V] {
	l.changed = handler
	return l
}

// SetItemCount sets the number of items.
func (l *PoolList[V]) SetItemCount(n int) *PoolList[V] {
	l.engine.SetItemCount(n)
	l.MarkDirty()
	return l
}

// ItemCount returns the number of items.
func (l *PoolList[V]) ItemCount() int {
	return l.engine.ItemCount()
}

// TopIndex returns the first item of the window.
func (l *PoolList[V]) TopIndex() int {
	return l.engine.TopIndex()
}

// SeekTopIndex scrolls so index is the first item of the window. Before the
// first draw the seek is remembered and applied once the list is measured.
func (l *PoolList[V]) SeekTopIndex(index int) *PoolList[V] {
	if !l.engine.IsReady() {
		l.pendingSeek = index
		return l
	}
	l.engine.SeekTopIndex(index)
	l.MarkDirty()
	return l
}

// ScrollBy moves the scroll offset by delta cells.
func (l *PoolList[V]) ScrollBy(delta float64) *PoolList[V] {
	l.SetOffset(l.clamp(l.offset + delta))
	return l
}

// ScrollToStart scrolls to the first item.
func (l *PoolList[V]) ScrollToStart() *PoolList[V] {
	l.SetOffset(0)
	return l
}

// ScrollToEnd scrolls to the last item.
func (l *PoolList[V]) ScrollToEnd() *PoolList[V] {
	l.SetOffset(l.maxOffset())
	return l
}

// Err returns the error of the last rejected geometry, if any.
func (l *PoolList[V]) Err() error {
	return l.err
}

// Geometry returns the geometry the list measures from its current rect.
func (l *PoolList[V]) Geometry() pool.Geometry {
	_, _, width, height := l.viewportRect()
	viewport := height
	if l.orientation == pool.Horizontal {
		viewport = width
	}
	return pool.Geometry{
		Orientation:    l.orientation,
		ItemExtent:     float64(l.itemExtent),
		Spacing:        float64(l.spacing),
		PaddingBefore:  float64(l.paddingBefore),
		PaddingAfter:   float64(l.paddingAfter),
		ViewportExtent: float64(viewport),
	}
}

// viewportRect returns the inner rect minus the scroll bar's row or column.
func (l *PoolList[V]) viewportRect() (int, int, int, int) {
	x, y, width, height := l.GetInnerRect()
	if l.scrollBar == nil {
		return x, y, width, height
	}
	if l.orientation == pool.Horizontal {
		return x, y, width, max(height-1, 0)
	}
	return x, y, max(width-1, 0), height
}

func (l *PoolList[V]) viewportExtent() float64 {
	return l.Geometry().ViewportExtent
}

func (l *PoolList[V]) maxOffset() float64 {
	if !l.engine.IsReady() {
		return 0
	}
	return max(l.engine.ContentExtent()-l.viewportExtent(), 0)
}

func (l *PoolList[V]) clamp(offset float64) float64 {
	return min(max(offset, 0), l.maxOffset())
}

// sync hands the measured geometry to the engine. It returns false while
// the engine cannot be used.
func (l *PoolList[V]) sync() bool {
	g := l.Geometry()
	var err error
	if l.engine.IsReady() {
		err = l.engine.SetGeometry(g)
	} else {
		err = l.engine.Initialize(g)
	}
	if err != nil {
		if l.err == nil || l.err.Error() != err.Error() {
			l.log.Warn("pool list: geometry rejected", "err", err, "item_extent", g.ItemExtent, "spacing", g.Spacing)
		}
		l.err = err
		return l.engine.IsReady()
	}
	l.err = nil

	if l.pendingSeek >= 0 {
		index := l.pendingSeek
		l.pendingSeek = -1
		l.engine.SeekTopIndex(index)
	}
	return true
}

// Draw draws this primitive onto the screen.
func (l *PoolList[V]) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)

	if !l.sync() {
		return
	}
	l.offset = l.clamp(math.Round(l.offset))
	l.engine.Update()
	l.keys.setScrollable(l.maxOffset() > 0)

	x, y, width, height := l.viewportRect()
	clip := newClippedScreen(screen, x, y, width, height)
	top := l.engine.TopIndex()
	stride := l.itemExtent + l.spacing
	// padding, leading spacer, slots, trailing spacer, padding; each child
	// is followed by one spacing unit.
	start := l.paddingBefore - int(l.offset)
	if spacers := l.engine.Spacers(); spacers.Active {
		start += int(math.Round(spacers.Leading)) + l.spacing
	}
	for i, slot := range l.engine.Slots() {
		if !slot.Active() {
			continue
		}
		pos := start + i*stride
		if l.orientation == pool.Horizontal {
			if pos+l.itemExtent <= 0 || pos >= width {
				continue
			}
			slot.View.SetRect(x+pos, y, l.itemExtent, height)
		} else {
			if pos+l.itemExtent <= 0 || pos >= height {
				continue
			}
			slot.View.SetRect(x, y+pos, width, l.itemExtent)
		}
		slot.View.Draw(clip)
	}

	if l.scrollBar != nil {
		l.drawScrollBar(screen)
	}

	if l.changed != nil && top != l.lastTop {
		l.changed(top)
	}
	l.lastTop = top
}

func (l *PoolList[V]) drawScrollBar(screen tcell.Screen) {
	x, y, width, height := l.GetInnerRect()
	viewport := l.viewportExtent()
	l.scrollBar.SetLengths(ScrollLengths{
		ContentLen:  int(math.Ceil(l.engine.ContentExtent())),
		ViewportLen: int(viewport),
	}).SetOffset(int(l.offset))
	if l.orientation == pool.Horizontal {
		l.scrollBar.SetRect(x, y+height-1, width, 1)
	} else {
		l.scrollBar.SetRect(x+width-1, y, 1, height)
	}
	l.scrollBar.Draw(screen)
}

// InputHandler scrolls by one item, one page, or to either end.
func (l *PoolList[V]) InputHandler(event *tcell.EventKey) Command {
	stride := float64(l.itemExtent + l.spacing)
	page := max(l.viewportExtent(), 1)
	switch {
	case keybind.Matches(event, l.keys.Next):
		l.ScrollBy(stride)
	case keybind.Matches(event, l.keys.Prev):
		l.ScrollBy(-stride)
	case keybind.Matches(event, l.keys.PageDown):
		l.ScrollBy(page)
	case keybind.Matches(event, l.keys.PageUp):
		l.ScrollBy(-page)
	case keybind.Matches(event, l.keys.Home):
		l.ScrollToStart()
	case keybind.Matches(event, l.keys.End):
		l.ScrollToEnd()
	default:
		return nil
	}
	return RedrawCommand{}
}

// MouseHandler scrolls one item per wheel step and takes focus on click.
func (l *PoolList[V]) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if !l.InRect(event.Position()) {
		return nil, nil
	}

	stride := float64(l.itemExtent + l.spacing)
	switch action {
	case MouseLeftDown:
		return nil, SetFocusCommand{Target: l}
	case MouseScrollDown, MouseScrollRight:
		l.ScrollBy(stride)
		return nil, RedrawCommand{}
	case MouseScrollUp, MouseScrollLeft:
		l.ScrollBy(-stride)
		return nil, RedrawCommand{}
	}
	return nil, nil
}

// MarkClean marks the list, its views and its scroll bar as clean.
func (l *PoolList[V]) MarkClean() {
	l.Box.MarkClean()
	for _, slot := range l.engine.Slots() {
		Clean(slot.View)
	}
	if l.scrollBar != nil {
		l.scrollBar.MarkClean()
	}
}

var _ Primitive = &PoolList[*TextSlot]{}
var _ pool.Viewport = &PoolList[*TextSlot]{}

// clippedScreen restricts drawing to a rectangle so partially scrolled
// views do not spill outside the list.
type clippedScreen struct {
	tcell.Screen
	x      int
	y      int
	width  int
	height int
}

func newClippedScreen(screen tcell.Screen, x, y, width, height int) *clippedScreen {
	return &clippedScreen{
		Screen: screen,
		x:      x,
		y:      y,
		width:  width,
		height: height,
	}
}

func (s *clippedScreen) inBounds(x, y int) bool {
	return x >= s.x && x < s.x+s.width && y >= s.y && y < s.y+s.height
}

func (s *clippedScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	if !s.inBounds(x, y) {
		return
	}
	s.Screen.SetContent(x, y, primary, combining, style)
}

func (s *clippedScreen) Put(x int, y int, str string, style tcell.Style) (string, int) {
	if !s.inBounds(x, y) {
		return str, 0
	}
	return s.Screen.Put(x, y, str, style)
}

func (s *clippedScreen) PutStr(x int, y int, str string) {
	s.PutStrStyled(x, y, str, tcell.StyleDefault)
}

func (s *clippedScreen) PutStrStyled(x int, y int, str string, style tcell.Style) {
	if y < s.y || y >= s.y+s.height {
		return
	}

	gr := uniseg.NewGraphemes(str)
	for gr.Next() {
		cluster := gr.Str()
		width := max(uniseg.StringWidth(cluster), 1)
		if x >= s.x+s.width {
			return
		}
		if x >= s.x && x+width <= s.x+s.width {
			s.Screen.Put(x, y, cluster, style)
		}
		x += width
	}
}

func (s *clippedScreen) ShowCursor(x int, y int) {
	if !s.inBounds(x, y) {
		s.Screen.ShowCursor(-1, -1)
		return
	}
	s.Screen.ShowCursor(x, y)
}
