package pool

// updateWindow recomputes the spacers and the top index from the viewport
// offset. When incremental is set, slots that scrolled out of the window
// are rotated to the opposite end and rebound; otherwise the caller
// rebinds the whole pool.
func (e *Engine[V]) updateWindow(incremental bool) {
	spacers, top := ComputeSpacers(e.geometry, e.viewport.Offset(), e.itemCount, e.capacity)
	e.spacers = spacers

	prev := e.top
	e.top = top
	if !incremental || e.pool.len() == 0 {
		return
	}
	switch {
	case top > prev:
		e.rotateForward(top - prev)
	case top < prev:
		e.rotateBackward(prev - top)
	}
}

// rotateForward reuses the slots at the front of the pool for the items
// entering at the trailing edge.
func (e *Engine[V]) rotateForward(delta int) {
	shift := min(delta, e.pool.len())
	first := e.top + e.pool.len() - shift
	for i := range shift {
		e.bind(e.pool.rotateForward(), first+i)
	}
}

// rotateBackward reuses the slots at the back of the pool for the items
// entering at the leading edge.
func (e *Engine[V]) rotateBackward(delta int) {
	shift := min(delta, e.pool.len())
	for i := range shift {
		e.bind(e.pool.rotateBackward(), e.top+shift-i-1)
	}
}

// SlotState describes one slot in a Layout.
type SlotState struct {
	Position int
	// Index is -1 for an inactive slot.
	Index  int
	Active bool
}

// Layout is a snapshot of everything a host needs to position the pool.
type Layout struct {
	ContentExtent float64
	Spacers       Spacers
	TopIndex      int
	Capacity      int
	ItemCount     int
	Slots         []SlotState
}

// Layout returns the current layout snapshot.
func (e *Engine[V]) Layout() Layout {
	l := Layout{
		ContentExtent: e.content,
		Spacers:       e.spacers,
		TopIndex:      e.top,
		Capacity:      e.capacity,
		ItemCount:     e.itemCount,
		Slots:         make([]SlotState, e.pool.len()),
	}
	for i := range l.Slots {
		s := e.pool.at(i)
		l.Slots[i] = SlotState{Position: i, Index: s.index, Active: s.active}
	}
	return l
}

// LaidOutExtent returns the extent a host produces when it stacks
// padding, the leading spacer, the pool block, the trailing spacer and
// padding with one spacing unit between adjacent children. While the
// spacers are active this equals ContentExtent.
func (l Layout) LaidOutExtent(g Geometry) float64 {
	if !l.Spacers.Active {
		return g.PaddingBefore + BlockExtent(g, min(l.ItemCount, l.Capacity)) + g.PaddingAfter
	}
	return g.PaddingBefore + l.Spacers.Leading + g.Spacing + BlockExtent(g, l.Capacity) +
		g.Spacing + l.Spacers.Trailing + g.PaddingAfter
}
