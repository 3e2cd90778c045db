package pool

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrNoViewport is returned by Initialize when the engine was built
	// without a viewport.
	ErrNoViewport = errors.New("pool: no viewport")
	// ErrNotReady is returned by operations that need an initialized engine.
	ErrNotReady = errors.New("pool: engine not initialized")
	// ErrReentrant is returned when a mutating call arrives while the engine
	// is already running an update, typically from inside a Bind callback.
	ErrReentrant = errors.New("pool: re-entrant call during update")
)

// Viewport is the scroll surface that owns the scroll offset. Offset is the
// distance scrolled past the leading edge along the scroll axis.
type Viewport interface {
	Offset() float64
	SetOffset(offset float64)
}

// Slot is a reusable view container. Slots are owned by the engine; hosts
// read them to lay out and draw the views.
type Slot[V any] struct {
	View V

	index  int
	active bool
}

// Index returns the logical item index the slot displays.
func (s *Slot[V]) Index() (int, bool) {
	if s.index < 0 {
		return -1, false
	}
	return s.index, true
}

// Active reports whether the slot currently displays an item.
func (s *Slot[V]) Active() bool {
	return s.active
}

// Option configures an Engine.
type Option[V any] func(*Engine[V])

// WithLogger replaces the package logger for one engine.
func WithLogger[V any](logger *slog.Logger) Option[V] {
	return func(e *Engine[V]) {
		if logger != nil {
			e.log = logger
		}
	}
}

// WithFactory sets the factory used to create and destroy slot views.
// Without one, slots hold the zero value of V.
func WithFactory[V any](factory Factory[V]) Option[V] {
	return func(e *Engine[V]) {
		if factory != nil {
			e.factory = factory
		}
	}
}

// Engine virtualizes a linear list of itemCount items onto a fixed pool of
// slots. It is not safe for concurrent use; every call is expected on the
// goroutine that drives the host's frames.
type Engine[V any] struct {
	viewport Viewport
	binder   Binder[V]
	unbinder Unbinder[V]
	factory  Factory[V]
	log      *slog.Logger

	geometry Geometry
	ready    bool
	// Set while an update runs so callbacks cannot mutate the pool.
	busy bool

	pool      ring[V]
	disposals disposalQueue[V]

	capacity  int
	itemCount int
	top       int
	content   float64
	spacers   Spacers
}

// New returns an engine bound to viewport. The engine is not usable until
// Initialize succeeds.
func New[V any](viewport Viewport, binder Binder[V], options ...Option[V]) *Engine[V] {
	e := &Engine[V]{
		viewport: viewport,
		binder:   binder,
		factory:  zeroFactory[V]{},
		log:      defaultLogger,
	}
	if e.binder == nil {
		e.binder = BinderFunc[V](func(int, V) {})
	}
	if u, ok := binder.(Unbinder[V]); ok {
		e.unbinder = u
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Initialize validates the geometry and builds the pool. On error the
// engine stays uninitialized and every other operation is a no-op.
func (e *Engine[V]) Initialize(g Geometry) error {
	if e.ready {
		return ErrAlreadyInitialized
	}
	if e.viewport == nil {
		return ErrNoViewport
	}
	if err := g.Validate(); err != nil {
		e.log.Debug("pool: initialize rejected", "err", err)
		return err
	}

	e.geometry = g
	e.ready = true

	e.busy = true
	defer e.leave()
	e.refresh()
	e.log.Debug("pool: initialized",
		"orientation", g.Orientation,
		"capacity", e.capacity,
		"items", e.itemCount)
	return nil
}

// IsReady reports whether Initialize has succeeded.
func (e *Engine[V]) IsReady() bool {
	return e.ready
}

// SetGeometry replaces the geometry and recomputes the pool, content extent
// and window. An invalid geometry is rejected and the previous one kept.
func (e *Engine[V]) SetGeometry(g Geometry) error {
	if !e.ready {
		return ErrNotReady
	}
	if e.busy {
		return ErrReentrant
	}
	if err := g.Validate(); err != nil {
		return fmt.Errorf("set geometry: %w", err)
	}
	if g == e.geometry {
		return nil
	}

	e.busy = true
	defer e.leave()
	e.geometry = g
	e.refresh()
	return nil
}

// Geometry returns the current geometry.
func (e *Engine[V]) Geometry() Geometry {
	return e.geometry
}

// SetItemCount sets the number of logical items. Negative counts are
// ignored. The count is remembered before initialization so hosts can set
// it before their viewport is measured.
func (e *Engine[V]) SetItemCount(n int) {
	if n < 0 {
		e.log.Debug("pool: negative item count ignored", "count", n)
		return
	}
	if e.busy {
		e.log.Debug("pool: re-entrant call rejected", "op", "SetItemCount")
		return
	}
	e.itemCount = n
	if !e.ready {
		return
	}

	e.busy = true
	defer e.leave()
	e.content = ContentExtent(e.geometry, e.itemCount)
	e.reconcile()
	e.updateWindow(true)
}

// Update runs one frame: it syncs the window with the viewport's offset,
// rotating slots as needed, then destroys views queued for disposal.
func (e *Engine[V]) Update() {
	if !e.enter("Update") {
		return
	}
	e.updateWindow(true)
	e.leave()
	e.Flush()
}

// Flush destroys views queued for disposal by earlier pool shrinks. Hosts
// that do not call Update every frame call it at the end of their tick.
func (e *Engine[V]) Flush() {
	if e.busy {
		return
	}
	if n := e.disposals.drain(e.factory); n > 0 {
		e.log.Debug("pool: disposed views", "count", n)
	}
}

// PendingDisposals returns the number of views waiting for Flush.
func (e *Engine[V]) PendingDisposals() int {
	return e.disposals.len()
}

// TopIndex returns the logical index bound to the first slot.
func (e *Engine[V]) TopIndex() int {
	return e.top
}

// ItemCount returns the number of logical items.
func (e *Engine[V]) ItemCount() int {
	return e.itemCount
}

// Capacity returns the number of slots in the pool.
func (e *Engine[V]) Capacity() int {
	return e.capacity
}

// ContentExtent returns the extent the host should give its scrollable
// content.
func (e *Engine[V]) ContentExtent() float64 {
	return e.content
}

// Spacers returns the current filler extents.
func (e *Engine[V]) Spacers() Spacers {
	return e.spacers
}

// Len returns the number of slots.
func (e *Engine[V]) Len() int {
	return e.pool.len()
}

// SlotAt returns the slot at pool position i.
func (e *Engine[V]) SlotAt(i int) *Slot[V] {
	return e.pool.at(i)
}

// Slots returns the slots in pool order.
func (e *Engine[V]) Slots() []*Slot[V] {
	return e.pool.ordered()
}

// refresh recomputes everything derived from the geometry.
func (e *Engine[V]) refresh() {
	capacity := Capacity(e.geometry)
	if capacity != e.capacity {
		e.log.Debug("pool: capacity changed", "from", e.capacity, "to", capacity)
	}
	e.capacity = capacity
	e.reconcile()
	e.content = ContentExtent(e.geometry, e.itemCount)
	e.updateWindow(true)
}

func (e *Engine[V]) enter(op string) bool {
	if !e.ready {
		return false
	}
	if e.busy {
		e.log.Debug("pool: re-entrant call rejected", "op", op)
		return false
	}
	e.busy = true
	return true
}

func (e *Engine[V]) leave() {
	e.busy = false
}

func (e *Engine[V]) bind(s *Slot[V], index int) {
	s.index = index
	e.binder.Bind(index, s.View)
}

func (e *Engine[V]) activate(s *Slot[V], index int) {
	s.active = true
	e.bind(s, index)
}

func (e *Engine[V]) deactivate(s *Slot[V]) {
	if !s.active {
		return
	}
	s.active = false
	s.index = -1
	if e.unbinder != nil {
		e.unbinder.Unbind(s.View)
	}
}
