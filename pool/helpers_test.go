package pool_test

import (
	"io"
	"log/slog"

	"github.com/ayn2op/poolscroll/pool"
)

// viewport is a scroll surface that stores its offset verbatim.
type viewport struct {
	offset float64
}

func (v *viewport) Offset() float64          { return v.offset }
func (v *viewport) SetOffset(offset float64) { v.offset = offset }

type bindCall struct {
	Index int
	View  int
}

// recorder records Bind and Unbind calls. Views are slot ids handed out by
// the counting factory.
type recorder struct {
	binds   []bindCall
	unbinds []int
}

func (r *recorder) Bind(index int, view int) {
	r.binds = append(r.binds, bindCall{Index: index, View: view})
}

func (r *recorder) Unbind(view int) {
	r.unbinds = append(r.unbinds, view)
}

func (r *recorder) reset() {
	r.binds = nil
	r.unbinds = nil
}

func (r *recorder) boundIndexes() []int {
	out := make([]int, 0, len(r.binds))
	for _, b := range r.binds {
		out = append(out, b.Index)
	}
	return out
}

// counter hands out increasing view ids and remembers destroyed ones.
type counter struct {
	next      int
	destroyed []int
}

func (c *counter) Create() int {
	c.next++
	return c.next
}

func (c *counter) Destroy(view int) {
	c.destroyed = append(c.destroyed, view)
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// rows50 yields a capacity of 12: floor(500/50) + 2.
func rows50() pool.Geometry {
	return pool.Geometry{
		Orientation:    pool.Vertical,
		ItemExtent:     50,
		ViewportExtent: 500,
	}
}

type fixture struct {
	vp     *viewport
	rec    *recorder
	views  *counter
	engine *pool.Engine[int]
}

func newFixture(items int) *fixture {
	f := &fixture{vp: &viewport{}, rec: &recorder{}, views: &counter{}}
	f.engine = pool.New[int](f.vp, f.rec,
		pool.WithFactory[int](f.views),
		pool.WithLogger[int](quiet))
	f.engine.SetItemCount(items)
	return f
}

func (f *fixture) scrollTo(offset float64) {
	f.vp.offset = offset
	f.engine.Update()
}

func activeCount(l pool.Layout) int {
	n := 0
	for _, s := range l.Slots {
		if s.Active {
			n++
		}
	}
	return n
}

func activeIndexes(l pool.Layout) []int {
	var out []int
	for _, s := range l.Slots {
		if s.Active {
			out = append(out, s.Index)
		}
	}
	return out
}

func span(from, to int) []int {
	var out []int
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}
