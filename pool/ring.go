package pool

// ring keeps the pool order of the slots. Moving the front slot to the back
// (or the reverse) only shifts the head, so a rotation costs O(shift).
type ring[V any] struct {
	slots []*Slot[V]
	head  int
}

func (r *ring[V]) len() int {
	return len(r.slots)
}

// at returns the slot at pool position i.
func (r *ring[V]) at(i int) *Slot[V] {
	return r.slots[(r.head+i)%len(r.slots)]
}

// rotateForward moves the front slot to the back and returns it.
func (r *ring[V]) rotateForward() *Slot[V] {
	s := r.slots[r.head]
	r.head = (r.head + 1) % len(r.slots)
	return s
}

// rotateBackward moves the back slot to the front and returns it.
func (r *ring[V]) rotateBackward() *Slot[V] {
	r.head = (r.head + len(r.slots) - 1) % len(r.slots)
	return r.slots[r.head]
}

// normalize lays the slots out in pool order starting at index 0.
func (r *ring[V]) normalize() {
	if r.head == 0 {
		return
	}
	ordered := make([]*Slot[V], len(r.slots))
	for i := range ordered {
		ordered[i] = r.at(i)
	}
	r.slots = ordered
	r.head = 0
}

func (r *ring[V]) push(s *Slot[V]) {
	r.normalize()
	r.slots = append(r.slots, s)
}

// truncate drops every slot from pool position n on and returns them.
func (r *ring[V]) truncate(n int) []*Slot[V] {
	r.normalize()
	if n >= len(r.slots) {
		return nil
	}
	dropped := append([]*Slot[V](nil), r.slots[n:]...)
	clear(r.slots[n:])
	r.slots = r.slots[:n]
	return dropped
}

// ordered returns the slots in pool order.
func (r *ring[V]) ordered() []*Slot[V] {
	out := make([]*Slot[V], len(r.slots))
	for i := range out {
		out[i] = r.at(i)
	}
	return out
}
