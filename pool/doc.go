/*
Package pool virtualizes a long linear list onto a small, fixed pool of
reusable view slots.

The engine never creates a view per item. It sizes a pool that always
covers the viewport plus one item of slack on each edge, tracks which
logical index each slot displays, and reports two spacer extents that
stand in for the items before and after the pooled window so the host's
scrollable content keeps its full size.

A host drives the engine once per frame:

	engine := pool.New[*Cell](viewport, binder, pool.WithFactory[*Cell](cells))
	engine.SetItemCount(len(rows))
	if err := engine.Initialize(geometry); err != nil {
		// The engine stays inert until a valid geometry is supplied.
	}
	// every frame, after the viewport offset changed:
	engine.Update()

When the window moves by a few items, only the slots that scrolled out are
rotated to the other end of the pool and rebound; SeekTopIndex jumps the
window directly and rebinds the whole pool.
*/
package pool
