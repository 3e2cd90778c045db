// Package layers stacks primitives on top of each other, such as a help
// overlay drawn above a list.
package layers

import (
	"github.com/gdamore/tcell/v3"

	"github.com/ayn2op/poolscroll"
)

type layer struct {
	name    string
	item    poolscroll.Primitive
	resize  bool
	visible bool
	enabled bool
	// overlay layers restyle everything drawn behind them.
	overlay bool
	// A positive width or height centers the layer in the container.
	width, height int
}

// Layers is a container for primitives laid out on top of each other. Visible
// layers are drawn from back to front; only the front-most enabled layer
// receives focus and input.
type Layers struct {
	*poolscroll.Box

	layers               []*layer
	backgroundLayerStyle tcell.Style

	// setFocus is the delegate captured by the last Focus call, used to move
	// the focus when layers are shown or hidden.
	setFocus func(p poolscroll.Primitive)
}

// Option configures a layer on AddLayer.
type Option func(*layer)

// WithName sets the layer's name.
func WithName(name string) Option {
	return func(l *layer) {
		l.name = name
	}
}

// WithResize sets whether the layer is resized to the container's inner rect.
func WithResize(resize bool) Option {
	return func(l *layer) {
		l.resize = resize
	}
}

// WithVisible sets the initial visibility of the layer.
func WithVisible(visible bool) Option {
	return func(l *layer) {
		l.visible = visible
	}
}

// WithEnabled sets whether the layer can receive focus and input.
func WithEnabled(enabled bool) Option {
	return func(l *layer) {
		l.enabled = enabled
	}
}

// WithOverlay marks the layer as an overlay: layers behind it are drawn with
// the background layer style and receive no mouse events.
func WithOverlay() Option {
	return func(l *layer) {
		l.overlay = true
	}
}

// WithCentered centers the layer in the container with the given size,
// clamped to the container. Zero keeps the container's extent on that axis.
func WithCentered(width, height int) Option {
	return func(l *layer) {
		l.resize = true
		l.width, l.height = width, height
	}
}

// New returns an empty container.
func New() *Layers {
	return &Layers{Box: poolscroll.NewBox()}
}

func (l *Layers) find(name string) (int, *layer) {
	for index, ly := range l.layers {
		if ly.name == name {
			return index, ly
		}
	}
	return -1, nil
}

// AddLayer adds a layer for item, replacing any layer with the same name.
func (l *Layers) AddLayer(item poolscroll.Primitive, opts ...Option) *Layers {
	hasFocus := l.HasFocus()
	ly := &layer{item: item, visible: true, enabled: true}
	for _, opt := range opts {
		if opt != nil {
			opt(ly)
		}
	}
	if ly.name != "" {
		if index, old := l.find(ly.name); old != nil {
			poolscroll.UnbindDirtyParent(old.item, l.Box)
			l.layers = append(l.layers[:index], l.layers[index+1:]...)
		}
	}
	l.layers = append(l.layers, ly)
	poolscroll.BindDirtyParent(item, l.Box)
	l.MarkDirty()
	if hasFocus {
		l.Focus(l.setFocus)
	}
	return l
}

// RemoveLayer removes the layer with the given name.
func (l *Layers) RemoveLayer(name string) *Layers {
	hasFocus := l.HasFocus()
	if index, ly := l.find(name); ly != nil {
		poolscroll.UnbindDirtyParent(ly.item, l.Box)
		l.layers = append(l.layers[:index], l.layers[index+1:]...)
		l.MarkDirty()
	}
	if hasFocus {
		l.Focus(l.setFocus)
	}
	return l
}

// HasLayer returns true if a layer with the given name exists.
func (l *Layers) HasLayer(name string) bool {
	_, ly := l.find(name)
	return ly != nil
}

// GetLayer returns the primitive of the named layer, or nil.
func (l *Layers) GetLayer(name string) poolscroll.Primitive {
	if _, ly := l.find(name); ly != nil {
		return ly.item
	}
	return nil
}

// GetVisible returns whether the given layer is visible.
func (l *Layers) GetVisible(name string) bool {
	_, ly := l.find(name)
	return ly != nil && ly.visible
}

// ShowLayer makes a layer visible, in addition to the ones already visible.
func (l *Layers) ShowLayer(name string) *Layers {
	return l.setVisible(name, true)
}

// HideLayer hides a layer.
func (l *Layers) HideLayer(name string) *Layers {
	return l.setVisible(name, false)
}

// ToggleLayer flips the visibility of a layer.
func (l *Layers) ToggleLayer(name string) *Layers {
	return l.setVisible(name, !l.GetVisible(name))
}

func (l *Layers) setVisible(name string, visible bool) *Layers {
	hasFocus := l.HasFocus()
	if _, ly := l.find(name); ly != nil && ly.visible != visible {
		if !visible && ly.item.HasFocus() {
			ly.item.Blur()
		}
		ly.visible = visible
		l.MarkDirty()
	}
	if hasFocus {
		l.Focus(l.setFocus)
	}
	return l
}

// GetFrontLayer returns the front-most visible layer, or ("", nil).
func (l *Layers) GetFrontLayer() (string, poolscroll.Primitive) {
	for index := len(l.layers) - 1; index >= 0; index-- {
		if ly := l.layers[index]; ly.visible {
			return ly.name, ly.item
		}
	}
	return "", nil
}

// SetBackgroundLayerStyle sets the style applied to layers behind the
// front-most overlay.
func (l *Layers) SetBackgroundLayerStyle(style tcell.Style) *Layers {
	if l.backgroundLayerStyle != style {
		l.backgroundLayerStyle = style
		l.MarkDirty()
	}
	return l
}

// MarkClean marks the container and all layers as clean.
func (l *Layers) MarkClean() {
	l.Box.MarkClean()
	for _, ly := range l.layers {
		poolscroll.Clean(ly.item)
	}
}

// HasFocus returns whether the container or an enabled layer has focus.
func (l *Layers) HasFocus() bool {
	for _, ly := range l.layers {
		if ly.enabled && ly.item.HasFocus() {
			return true
		}
	}
	return l.Box.HasFocus()
}

// Focus passes the focus on to the front-most visible, enabled layer.
func (l *Layers) Focus(delegate func(p poolscroll.Primitive)) {
	if delegate == nil {
		return
	}
	l.setFocus = delegate
	if top := l.front(); top != nil {
		delegate(top.item)
		return
	}
	l.Box.Focus(delegate)
}

// Draw draws this primitive onto the screen.
func (l *Layers) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)

	overlayIndex := l.overlayIndex()
	var dimmed tcell.Screen
	if overlayIndex >= 0 {
		dimmed = &overlayScreen{Screen: screen, overlay: l.backgroundLayerStyle}
	}

	x, y, width, height := l.GetInnerRect()
	for index, ly := range l.layers {
		if !ly.visible {
			continue
		}
		if ly.resize {
			ly.item.SetRect(centered(x, y, width, height, ly.width, ly.height))
		}
		if dimmed != nil && index < overlayIndex {
			ly.item.Draw(dimmed)
			continue
		}
		ly.item.Draw(screen)
	}
}

// centered returns the rect of size w×h centered in the given rect. A
// non-positive size keeps the full extent.
func centered(x, y, width, height, w, h int) (int, int, int, int) {
	if w <= 0 || w > width {
		w = width
	}
	if h <= 0 || h > height {
		h = height
	}
	return x + (width-w)/2, y + (height-h)/2, w, h
}

// MouseHandler offers the event to visible, enabled layers from front to
// back, never passing it behind an overlay.
func (l *Layers) MouseHandler(action poolscroll.MouseAction, event *tcell.EventMouse) (poolscroll.Primitive, poolscroll.Command) {
	if !l.InRect(event.Position()) {
		return nil, nil
	}

	overlayIndex := l.overlayIndex()
	for index := len(l.layers) - 1; index >= 0; index-- {
		ly := l.layers[index]
		if !ly.visible || !ly.enabled {
			continue
		}
		if overlayIndex >= 0 && index < overlayIndex {
			break
		}
		if capture, cmd := ly.item.MouseHandler(action, event); capture != nil || cmd != nil {
			return capture, cmd
		}
	}
	if overlayIndex >= 0 {
		return nil, poolscroll.ConsumeEventCommand{}
	}
	return nil, nil
}

// InputHandler forwards key events to the focused layer.
func (l *Layers) InputHandler(event *tcell.EventKey) poolscroll.Command {
	for _, ly := range l.layers {
		if ly.enabled && ly.item.HasFocus() {
			return ly.item.InputHandler(event)
		}
	}
	return nil
}

// PasteHandler forwards pasted text to the focused layer.
func (l *Layers) PasteHandler(text string) poolscroll.Command {
	for _, ly := range l.layers {
		if ly.enabled && ly.item.HasFocus() {
			return ly.item.PasteHandler(text)
		}
	}
	return nil
}

func (l *Layers) front() *layer {
	for index := len(l.layers) - 1; index >= 0; index-- {
		if ly := l.layers[index]; ly.visible && ly.enabled {
			return ly
		}
	}
	return nil
}

// overlayIndex returns the index of the front-most visible, enabled overlay
// layer, or -1. Only one overlay style is applied at a time.
func (l *Layers) overlayIndex() int {
	for index := len(l.layers) - 1; index >= 0; index-- {
		if ly := l.layers[index]; ly.visible && ly.enabled && ly.overlay {
			return index
		}
	}
	return -1
}

var _ poolscroll.Primitive = &Layers{}
