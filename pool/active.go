package pool

// reconcile sizes the pool to the capacity and brings the active state of
// every slot in line with the item count. A slot's callback fires only on
// an actual transition or a change of bound index.
func (e *Engine[V]) reconcile() {
	active := min(e.itemCount, e.capacity)

	// Clamp the window first so no slot is ever bound past the last item.
	maxTop := max(e.itemCount-e.capacity, 0)
	clamped := e.top > maxTop
	if clamped {
		e.log.Debug("pool: top index clamped", "from", e.top, "to", maxTop)
		e.top = maxTop
	}

	switch {
	case e.capacity < e.pool.len():
		dropped := e.pool.truncate(e.capacity)
		for _, s := range dropped {
			e.deactivate(s)
			e.disposals.push(s.View)
		}
		e.log.Debug("pool: shrunk", "dropped", len(dropped), "pending", e.disposals.len())
	case e.capacity > e.pool.len():
		for e.pool.len() < e.capacity {
			s := &Slot[V]{View: e.factory.Create(), index: -1}
			e.pool.push(s)
			if pos := e.pool.len() - 1; pos < active {
				e.activate(s, e.top+pos)
			}
		}
	}

	for i := range e.pool.len() {
		s := e.pool.at(i)
		switch {
		case i < active && !s.active:
			e.activate(s, e.top+i)
		case i < active && clamped && s.index != e.top+i:
			e.bind(s, e.top+i)
		case i >= active && s.active:
			e.deactivate(s)
		}
	}
}
