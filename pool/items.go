package pool

import "slices"

// ItemBinder writes value, the item at index, into view.
type ItemBinder[T, V any] func(value T, index int, view V)

// Items owns a sequence of values and keeps an engine's item count in step
// with it. Inserting above or inside the window keeps the visible items in
// place.
type Items[T, V any] struct {
	engine *Engine[V]
	values []T
}

// NewItems returns an empty item list whose engine binds values with bind.
func NewItems[T, V any](viewport Viewport, bind ItemBinder[T, V], options ...Option[V]) *Items[T, V] {
	items := &Items[T, V]{}
	items.engine = New(viewport, BinderFunc[V](func(index int, view V) {
		if index < len(items.values) {
			bind(items.values[index], index, view)
		}
	}), options...)
	return items
}

// Engine returns the engine driving the list.
func (l *Items[T, V]) Engine() *Engine[V] {
	return l.engine
}

// Len returns the number of values.
func (l *Items[T, V]) Len() int {
	return len(l.values)
}

// At returns the value at index.
func (l *Items[T, V]) At(index int) T {
	return l.values[index]
}

// Values returns the backing values. Callers must not modify the slice.
func (l *Items[T, V]) Values() []T {
	return l.values
}

// Add appends one value.
func (l *Items[T, V]) Add(value T) {
	l.values = append(l.values, value)
	l.engine.SetItemCount(len(l.values))
}

// AddAll appends values.
func (l *Items[T, V]) AddAll(values ...T) {
	l.values = append(l.values, values...)
	l.engine.SetItemCount(len(l.values))
}

// Insert places value at index, clamped to [0, Len()]. When the insertion
// lands inside or above the window, the window follows the shifted items.
func (l *Items[T, V]) Insert(index int, value T) {
	prevTop := l.engine.TopIndex()
	index = min(max(index, 0), len(l.values))
	l.values = slices.Insert(l.values, index, value)
	l.engine.SetItemCount(len(l.values))

	if l.engine.IsItemVisible(index) || index < l.engine.TopIndex() {
		l.engine.SeekTopIndex(prevTop + 1)
		// The seek is a no-op when everything fits; the shifted values
		// still need rebinding.
		if l.engine.TopIndex() == prevTop {
			l.engine.ApplyAll()
		}
	}
}

// Set replaces the value at index and rebinds it if visible.
func (l *Items[T, V]) Set(index int, value T) {
	if index < 0 || index >= len(l.values) {
		return
	}
	l.values[index] = value
	l.engine.ApplyOne(index)
}

// Replace swaps in a new set of values, rebinding every slot.
func (l *Items[T, V]) Replace(values ...T) {
	l.values = append(l.values[:0:0], values...)
	l.engine.SetItemCount(0)
	l.engine.SetItemCount(len(l.values))
}
