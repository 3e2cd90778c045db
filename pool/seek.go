package pool

// SeekTopIndex moves the window so index becomes the top item. The
// viewport offset is shifted by whole strides and the pool is rebound in
// full, since a jump may cover more items than the pool holds. It is a
// no-op when every item already fits or index is already on top.
func (e *Engine[V]) SeekTopIndex(index int) {
	if !e.ready || e.itemCount <= e.capacity {
		return
	}
	index = min(max(index, 0), e.itemCount-e.capacity)
	if index == e.top {
		return
	}
	if !e.enter("SeekTopIndex") {
		return
	}
	defer e.leave()

	delta := float64(index-e.top) * e.geometry.Stride()
	e.viewport.SetOffset(e.viewport.Offset() + delta)
	e.log.Debug("pool: seek", "from", e.top, "to", index, "delta", delta)

	e.updateWindow(false)
	e.applyAll()
}

// ApplyAll rebinds every active slot to its current index.
func (e *Engine[V]) ApplyAll() {
	if !e.enter("ApplyAll") {
		return
	}
	defer e.leave()
	e.applyAll()
}

func (e *Engine[V]) applyAll() {
	for i := range e.pool.len() {
		if s := e.pool.at(i); s.active {
			e.bind(s, e.top+i)
		}
	}
}

// ApplyOne rebinds the slot displaying index, if any.
func (e *Engine[V]) ApplyOne(index int) {
	if !e.enter("ApplyOne") {
		return
	}
	defer e.leave()
	if s := e.slotFor(index); s != nil {
		e.bind(s, index)
	}
}

// IsItemVisible reports whether index is bound to an active slot.
func (e *Engine[V]) IsItemVisible(index int) bool {
	if !e.ready {
		return false
	}
	return e.slotFor(index) != nil
}

func (e *Engine[V]) slotFor(index int) *Slot[V] {
	if index < e.top || index >= e.top+e.pool.len() {
		return nil
	}
	s := e.pool.at(index - e.top)
	if !s.active {
		return nil
	}
	return s
}
