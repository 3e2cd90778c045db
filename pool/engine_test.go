package pool_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayn2op/poolscroll/pool"
)

func Test_Engine_Initialize_Fails_Closed(t *testing.T) {
	t.Parallel()

	f := newFixture(100)
	err := f.engine.Initialize(pool.Geometry{ItemExtent: 50, ViewportExtent: 500})
	require.ErrorIs(t, err, pool.ErrUnsupportedOrientation)
	require.False(t, f.engine.IsReady())

	f.scrollTo(500)
	f.engine.ApplyAll()
	f.engine.ApplyOne(3)
	f.engine.SeekTopIndex(40)

	assert.Empty(t, f.rec.binds, "uninitialized engine must not bind")
	assert.Zero(t, f.engine.Len())
	assert.Zero(t, f.engine.TopIndex())
	assert.False(t, f.engine.IsItemVisible(0))
	assert.Equal(t, 500.0, f.vp.offset, "seek must not touch the viewport")
	require.ErrorIs(t, f.engine.SetGeometry(rows50()), pool.ErrNotReady)
}

func Test_Engine_Initialize_Rejects_Degenerate_Stride(t *testing.T) {
	t.Parallel()

	f := newFixture(10)
	err := f.engine.Initialize(pool.Geometry{Orientation: pool.Vertical, ViewportExtent: 100})

	require.ErrorIs(t, err, pool.ErrDegenerateGeometry)
	assert.False(t, f.engine.IsReady())
}

func Test_Engine_Initialize_Rejects_Non_Finite_Geometry(t *testing.T) {
	t.Parallel()

	for name, g := range map[string]pool.Geometry{
		"NaNItem":     {Orientation: pool.Vertical, ItemExtent: math.NaN(), ViewportExtent: 10},
		"InfViewport": {Orientation: pool.Vertical, ItemExtent: 50, ViewportExtent: math.Inf(1)},
		"NaNSpacing":  {Orientation: pool.Vertical, ItemExtent: 50, Spacing: math.NaN(), ViewportExtent: 500},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(100)
			require.ErrorIs(t, f.engine.Initialize(g), pool.ErrInvalidGeometry)
			assert.False(t, f.engine.IsReady())

			f.engine.SetItemCount(50)
			f.engine.Update()
			assert.Zero(t, f.engine.Len())
			assert.Empty(t, f.rec.binds)
		})
	}
}

func Test_Engine_SetGeometry_Rejects_Non_Finite_Geometry(t *testing.T) {
	t.Parallel()

	f := newFixture(10)
	require.NoError(t, f.engine.Initialize(rows50()))

	g := rows50()
	g.ViewportExtent = math.Inf(1)
	require.ErrorIs(t, f.engine.SetGeometry(g), pool.ErrInvalidGeometry)
	assert.Equal(t, rows50(), f.engine.Geometry())
	assert.Equal(t, 12, f.engine.Capacity())
}

func Test_Engine_Initialize_Requires_Viewport(t *testing.T) {
	t.Parallel()

	e := pool.New[int](nil, nil, pool.WithLogger[int](quiet))
	require.ErrorIs(t, e.Initialize(rows50()), pool.ErrNoViewport)
	assert.False(t, e.IsReady())
}

func Test_Engine_Initialize_Twice_Is_An_Error(t *testing.T) {
	t.Parallel()

	f := newFixture(1)
	require.NoError(t, f.engine.Initialize(rows50()))
	require.ErrorIs(t, f.engine.Initialize(rows50()), pool.ErrAlreadyInitialized)
}

func Test_Engine_Binds_Initial_Window(t *testing.T) {
	t.Parallel()

	f := newFixture(100)
	require.NoError(t, f.engine.Initialize(rows50()))

	assert.Equal(t, 12, f.engine.Capacity())
	assert.Equal(t, 0, f.engine.TopIndex())
	assert.Equal(t, span(0, 12), f.rec.boundIndexes())
	assert.InDelta(t, 5000, f.engine.ContentExtent(), 1e-9)
	assert.Equal(t, pool.Spacers{Leading: 0, Trailing: 88 * 50, Active: true}, f.engine.Spacers())
}

func Test_Engine_Scrolling_One_Item_Rebinds_One_Slot(t *testing.T) {
	t.Parallel()

	f := newFixture(100)
	require.NoError(t, f.engine.Initialize(rows50()))
	firstView := f.engine.SlotAt(0).View
	f.rec.reset()

	f.scrollTo(50)

	assert.Equal(t, 1, f.engine.TopIndex())
	require.Equal(t, []bindCall{{Index: 12, View: firstView}}, f.rec.binds)
	assert.Equal(t, firstView, f.engine.SlotAt(11).View, "rotated slot moves to the back")
	assert.Equal(t, span(1, 13), activeIndexes(f.engine.Layout()))
}

func Test_Engine_Scrolling_Back_Rotates_From_The_Back(t *testing.T) {
	t.Parallel()

	f := newFixture(100)
	require.NoError(t, f.engine.Initialize(rows50()))
	f.scrollTo(10 * 50)
	lastView := f.engine.SlotAt(11).View
	f.rec.reset()

	f.scrollTo(7 * 50)

	assert.Equal(t, 7, f.engine.TopIndex())
	require.Equal(t, []int{9, 8, 7}, f.rec.boundIndexes())
	assert.Equal(t, lastView, f.rec.binds[0].View)
	assert.Equal(t, lastView, f.engine.SlotAt(2).View)
	assert.Equal(t, span(7, 19), activeIndexes(f.engine.Layout()))
}

func Test_Engine_Rotation_Keeps_Window_Contiguous(t *testing.T) {
	t.Parallel()

	for _, step := range []int{1, 3, 11, 12, 13, 40} {
		f := newFixture(100)
		require.NoError(t, f.engine.Initialize(rows50()))
		f.scrollTo(20 * 50)

		for top := 20; top+step <= 88; top += step {
			f.rec.reset()
			f.scrollTo(float64(top+step) * 50)

			require.Len(t, f.rec.binds, min(step, 12), "step %d", step)
			require.Equal(t, span(top+step, top+step+12), activeIndexes(f.engine.Layout()), "step %d", step)
		}
	}
}

func Test_Engine_Update_Is_Idempotent(t *testing.T) {
	t.Parallel()

	f := newFixture(100)
	require.NoError(t, f.engine.Initialize(rows50()))
	f.scrollTo(1234)
	before := f.engine.Layout()
	f.rec.reset()

	f.engine.Update()
	f.engine.Update()

	assert.Empty(t, f.rec.binds)
	if diff := cmp.Diff(before, f.engine.Layout()); diff != "" {
		t.Fatalf("layout changed (-before +after):\n%s", diff)
	}
}

func Test_Engine_Few_Items_Leave_Slots_Inactive(t *testing.T) {
	t.Parallel()

	f := newFixture(5)
	require.NoError(t, f.engine.Initialize(rows50()))
	f.scrollTo(300)

	layout := f.engine.Layout()
	assert.Equal(t, 12, len(layout.Slots))
	assert.Equal(t, 5, activeCount(layout))
	assert.Equal(t, span(0, 5), activeIndexes(layout))
	assert.Equal(t, pool.Spacers{}, layout.Spacers)
	assert.Equal(t, 0, layout.TopIndex)
	assert.Equal(t, span(0, 5), f.rec.boundIndexes())
}

func Test_Engine_Invariants_Hold_Across_Counts_And_Offsets(t *testing.T) {
	t.Parallel()

	for _, items := range []int{0, 1, 5, 11, 12, 13, 40, 100} {
		f := newFixture(items)
		require.NoError(t, f.engine.Initialize(rows50()))

		for _, offset := range []float64{0, 49.9, 50, 333, 2000, 4400, 99999, -10} {
			f.scrollTo(offset)
			layout := f.engine.Layout()
			capacity := layout.Capacity

			require.Equal(t, min(items, capacity), activeCount(layout), "items=%d offset=%g", items, offset)
			require.GreaterOrEqual(t, layout.TopIndex, 0)
			require.LessOrEqual(t, layout.TopIndex, max(items-capacity, 0))
			require.Equal(t, span(layout.TopIndex, layout.TopIndex+min(items, capacity)), activeIndexes(layout),
				"items=%d offset=%g", items, offset)
			for _, b := range f.rec.binds {
				require.Less(t, b.Index, items, "bound past the last item")
			}
		}
	}
}

func Test_Engine_Conserves_Content_Extent(t *testing.T) {
	t.Parallel()

	t.Run("WithSpacingAndPadding", func(t *testing.T) {
		t.Parallel()

		g := pool.Geometry{
			Orientation:    pool.Horizontal,
			ItemExtent:     3,
			Spacing:        1,
			PaddingBefore:  2,
			PaddingAfter:   1,
			ViewportExtent: 20,
		}
		f := newFixture(50)
		require.NoError(t, f.engine.Initialize(g))

		for offset := 0.0; offset <= 250; offset += 1.5 {
			f.scrollTo(offset)
			layout := f.engine.Layout()
			require.InDelta(t, layout.ContentExtent, layout.LaidOutExtent(g), 1e-9, "offset %g", offset)
		}
	})

	t.Run("Bare", func(t *testing.T) {
		t.Parallel()

		f := newFixture(100)
		require.NoError(t, f.engine.Initialize(rows50()))

		for offset := 0.0; offset <= 5000; offset += 37 {
			f.scrollTo(offset)
			s := f.engine.Spacers()
			block := pool.BlockExtent(rows50(), f.engine.Capacity())
			require.InDelta(t, f.engine.ContentExtent(), s.Leading+s.Trailing+block, 1e-9, "offset %g", offset)
		}
	})
}

func Test_Engine_SetItemCount_Ignores_Negative(t *testing.T) {
	t.Parallel()

	f := newFixture(30)
	require.NoError(t, f.engine.Initialize(rows50()))
	f.rec.reset()

	f.engine.SetItemCount(-4)

	assert.Equal(t, 30, f.engine.ItemCount())
	assert.Empty(t, f.rec.binds)
}

func Test_Engine_SetItemCount_Is_Idempotent(t *testing.T) {
	t.Parallel()

	f := newFixture(30)
	require.NoError(t, f.engine.Initialize(rows50()))
	f.rec.reset()

	f.engine.SetItemCount(30)
	f.engine.SetItemCount(30)

	assert.Empty(t, f.rec.binds)
	assert.Empty(t, f.rec.unbinds)
}

func Test_Engine_Shrinking_Count_Deactivates_Once(t *testing.T) {
	t.Parallel()

	f := newFixture(20)
	require.NoError(t, f.engine.Initialize(rows50()))
	f.rec.reset()

	f.engine.SetItemCount(5)

	assert.Empty(t, f.rec.binds)
	assert.Len(t, f.rec.unbinds, 7)
	assert.Equal(t, 5, activeCount(f.engine.Layout()))

	f.rec.reset()
	f.engine.SetItemCount(8)

	assert.Equal(t, []int{5, 6, 7}, f.rec.boundIndexes())
	assert.Empty(t, f.rec.unbinds)
}

func Test_Engine_Shrinking_Count_Clamps_Window(t *testing.T) {
	t.Parallel()

	f := newFixture(100)
	require.NoError(t, f.engine.Initialize(rows50()))
	f.scrollTo(88 * 50)
	f.rec.reset()

	f.engine.SetItemCount(50)

	assert.Equal(t, 38, f.engine.TopIndex())
	assert.Equal(t, span(38, 50), activeIndexes(f.engine.Layout()))
	for _, b := range f.rec.binds {
		assert.Less(t, b.Index, 50)
	}

	f.engine.SetItemCount(3)

	assert.Equal(t, 0, f.engine.TopIndex())
	assert.Equal(t, span(0, 3), activeIndexes(f.engine.Layout()))
}

func Test_Engine_Shrinking_Pool_Defers_Destruction(t *testing.T) {
	t.Parallel()

	f := newFixture(100)
	require.NoError(t, f.engine.Initialize(rows50()))

	g := rows50()
	g.ViewportExtent = 200
	require.NoError(t, f.engine.SetGeometry(g))

	assert.Equal(t, 6, f.engine.Capacity())
	assert.Equal(t, 6, f.engine.Len())
	assert.Equal(t, 6, f.engine.PendingDisposals())
	assert.Empty(t, f.views.destroyed, "views must survive until the end of the tick")

	f.engine.Update()

	assert.Equal(t, []int{7, 8, 9, 10, 11, 12}, f.views.destroyed)
	assert.Zero(t, f.engine.PendingDisposals())
}

func Test_Engine_Growing_Pool_At_End_Never_Binds_Past_Last_Item(t *testing.T) {
	t.Parallel()

	f := newFixture(100)
	require.NoError(t, f.engine.Initialize(rows50()))
	f.scrollTo(88 * 50)
	f.rec.reset()

	g := rows50()
	g.ViewportExtent = 600
	require.NoError(t, f.engine.SetGeometry(g))

	assert.Equal(t, 14, f.engine.Capacity())
	assert.Equal(t, 86, f.engine.TopIndex())
	assert.Equal(t, span(86, 100), activeIndexes(f.engine.Layout()))
	for _, b := range f.rec.binds {
		assert.Less(t, b.Index, 100)
	}
}

func Test_Engine_SetGeometry_Keeps_Previous_On_Error(t *testing.T) {
	t.Parallel()

	f := newFixture(10)
	require.NoError(t, f.engine.Initialize(rows50()))

	err := f.engine.SetGeometry(pool.Geometry{Orientation: pool.Vertical})

	require.ErrorIs(t, err, pool.ErrDegenerateGeometry)
	assert.Equal(t, rows50(), f.engine.Geometry())
	assert.Equal(t, 12, f.engine.Capacity())
}

func Test_Engine_Rejects_Reentrant_Calls(t *testing.T) {
	t.Parallel()

	vp := &viewport{}
	var engine *pool.Engine[int]
	binds := 0
	engine = pool.New[int](vp, pool.BinderFunc[int](func(index int, _ int) {
		binds++
		engine.SetItemCount(1)
		engine.ApplyAll()
		engine.SeekTopIndex(index + 5)
	}), pool.WithLogger[int](quiet))
	engine.SetItemCount(40)

	require.NoError(t, engine.Initialize(rows50()))

	assert.Equal(t, 12, binds)
	assert.Equal(t, 40, engine.ItemCount())
	assert.Equal(t, 0, engine.TopIndex())
}

func Test_Engine_SetGeometry_From_Callback_Is_Rejected(t *testing.T) {
	t.Parallel()

	var engine *pool.Engine[int]
	var callbackErr error
	engine = pool.New[int](&viewport{}, pool.BinderFunc[int](func(int, int) {
		callbackErr = engine.SetGeometry(pool.Geometry{Orientation: pool.Vertical, ItemExtent: 1})
	}), pool.WithLogger[int](quiet))
	engine.SetItemCount(1)

	require.NoError(t, engine.Initialize(rows50()))

	require.ErrorIs(t, callbackErr, pool.ErrReentrant)
	assert.Equal(t, rows50(), engine.Geometry())
}

func Test_Engine_ApplyOne_Rebinds_Only_Visible(t *testing.T) {
	t.Parallel()

	f := newFixture(100)
	require.NoError(t, f.engine.Initialize(rows50()))
	f.scrollTo(10 * 50)
	f.rec.reset()

	f.engine.ApplyOne(9)
	f.engine.ApplyOne(22)
	f.engine.ApplyOne(15)

	require.Equal(t, []int{15}, f.rec.boundIndexes())
	assert.Equal(t, f.engine.SlotAt(5).View, f.rec.binds[0].View)
	assert.True(t, f.engine.IsItemVisible(10))
	assert.True(t, f.engine.IsItemVisible(21))
	assert.False(t, f.engine.IsItemVisible(22))
	assert.False(t, f.engine.IsItemVisible(9))
}

func Test_Engine_ApplyAll_Rebinds_Active_Slots(t *testing.T) {
	t.Parallel()

	f := newFixture(4)
	require.NoError(t, f.engine.Initialize(rows50()))
	f.rec.reset()

	f.engine.ApplyAll()

	assert.Equal(t, span(0, 4), f.rec.boundIndexes())
}

func Test_Slot_Index(t *testing.T) {
	t.Parallel()

	f := newFixture(2)
	require.NoError(t, f.engine.Initialize(rows50()))

	index, ok := f.engine.SlotAt(1).Index()
	assert.True(t, ok)
	assert.Equal(t, 1, index)

	index, ok = f.engine.SlotAt(2).Index()
	assert.False(t, ok)
	assert.Equal(t, -1, index)
	assert.False(t, f.engine.SlotAt(2).Active())
	assert.Len(t, f.engine.Slots(), 12)
}

func Test_Engine_SeekTopIndex_Jumps_And_Rebinds_Pool(t *testing.T) {
	t.Parallel()

	f := newFixture(100)
	require.NoError(t, f.engine.Initialize(rows50()))
	f.rec.reset()

	f.engine.SeekTopIndex(50)

	assert.Equal(t, 50, f.engine.TopIndex())
	assert.Equal(t, 2500.0, f.vp.offset)
	assert.Equal(t, span(50, 62), f.rec.boundIndexes())
	assert.Equal(t, span(50, 62), activeIndexes(f.engine.Layout()))

	f.rec.reset()
	f.engine.SeekTopIndex(50)
	assert.Empty(t, f.rec.binds)

	f.engine.SeekTopIndex(500)
	assert.Equal(t, 88, f.engine.TopIndex())
	assert.Equal(t, 4400.0, f.vp.offset)
	assert.Equal(t, span(88, 100), activeIndexes(f.engine.Layout()))

	f.engine.SeekTopIndex(-3)
	assert.Equal(t, 0, f.engine.TopIndex())
	assert.Equal(t, 0.0, f.vp.offset)
}

func Test_Engine_SeekTopIndex_Ignored_When_Everything_Fits(t *testing.T) {
	t.Parallel()

	f := newFixture(12)
	require.NoError(t, f.engine.Initialize(rows50()))
	f.rec.reset()

	f.engine.SeekTopIndex(5)

	assert.Zero(t, f.engine.TopIndex())
	assert.Zero(t, f.vp.offset)
	assert.Empty(t, f.rec.binds)
}
