package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func views(r *ring[int]) []int {
	out := make([]int, 0, r.len())
	for _, s := range r.ordered() {
		out = append(out, s.View)
	}
	return out
}

func newRing(n int) *ring[int] {
	r := &ring[int]{}
	for i := range n {
		r.push(&Slot[int]{View: i, index: -1})
	}
	return r
}

func Test_Ring_Rotation(t *testing.T) {
	r := newRing(4)

	assert.Equal(t, 0, r.rotateForward().View)
	assert.Equal(t, 1, r.rotateForward().View)
	assert.Equal(t, []int{2, 3, 0, 1}, views(r))

	assert.Equal(t, 1, r.rotateBackward().View)
	assert.Equal(t, []int{1, 2, 3, 0}, views(r))
	assert.Equal(t, 1, r.at(0).View)
}

func Test_Ring_Push_And_Truncate_Keep_Pool_Order(t *testing.T) {
	r := newRing(3)
	r.rotateForward()

	r.push(&Slot[int]{View: 9})
	assert.Equal(t, []int{1, 2, 0, 9}, views(r))
	assert.Equal(t, 0, r.head)

	r.rotateForward()
	dropped := r.truncate(2)
	assert.Equal(t, []int{2, 0}, views(r))
	assert.Len(t, dropped, 2)
	assert.Equal(t, 9, dropped[0].View)
	assert.Equal(t, 1, dropped[1].View)

	assert.Nil(t, r.truncate(5))
}

func Test_DisposalQueue_Drains_Once(t *testing.T) {
	var q disposalQueue[int]
	q.push(1)
	q.push(2)

	var destroyed []int
	factory := FactoryFuncs[int]{New: func() int { return 0 }, Dispose: func(v int) { destroyed = append(destroyed, v) }}

	assert.Equal(t, 2, q.drain(factory))
	assert.Equal(t, 0, q.drain(factory))
	assert.Equal(t, []int{1, 2}, destroyed)
}
