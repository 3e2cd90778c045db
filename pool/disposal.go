package pool

// disposalQueue collects views removed from the pool during an update so
// they can be destroyed once the update has finished iterating.
type disposalQueue[V any] struct {
	views []V
}

func (q *disposalQueue[V]) push(view V) {
	q.views = append(q.views, view)
}

func (q *disposalQueue[V]) len() int {
	return len(q.views)
}

// drain destroys every queued view and empties the queue. It returns the
// number of views destroyed.
func (q *disposalQueue[V]) drain(factory Factory[V]) int {
	n := len(q.views)
	if n == 0 {
		return 0
	}
	views := q.views
	q.views = nil
	for _, view := range views {
		factory.Destroy(view)
	}
	return n
}
