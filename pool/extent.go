package pool

import "math"

// Capacity returns how many slots are needed to cover the viewport with
// one item of slack on each edge. A non-positive or non-finite stride
// yields 1, and so does a non-finite viewport.
func Capacity(g Geometry) int {
	stride := g.Stride()
	if !finite(stride) || stride <= 0 || !finite(g.ViewportExtent) {
		return 1
	}
	return int(math.Max(g.ViewportExtent-g.Spacing, 0)/stride) + 2
}

// ContentExtent returns the scrollable extent implied by itemCount items.
// The result never drops below the viewport extent.
func ContentExtent(g Geometry, itemCount int) float64 {
	raw := g.PaddingBefore + g.PaddingAfter + g.ItemExtent*float64(itemCount)
	if itemCount > 1 {
		raw += g.Spacing * float64(itemCount-1)
	}
	if itemCount <= 0 || raw < g.ViewportExtent {
		return g.ViewportExtent
	}
	return raw
}

// BlockExtent returns the extent covered by capacity slots and the
// spacing between them.
func BlockExtent(g Geometry, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	return g.ItemExtent*float64(capacity) + g.Spacing*float64(capacity-1)
}

// Spacers are the filler extents standing in for items before and after
// the pooled window.
type Spacers struct {
	Leading  float64
	Trailing float64
	// Active is false while every item fits in the pool; both extents are
	// then zero and the host hides its filler elements.
	Active bool
}

// ComputeSpacers translates a scroll offset into the window's top index
// and the two filler extents. offset is the distance scrolled past the
// leading edge.
func ComputeSpacers(g Geometry, offset float64, itemCount, capacity int) (Spacers, int) {
	if itemCount < capacity {
		return Spacers{}, 0
	}
	stride := g.Stride()
	overflow := 0
	if stride > 0 {
		f := math.Floor(offset / stride)
		switch {
		case math.IsNaN(f) || f < 0:
			overflow = 0
		case f > float64(itemCount-capacity):
			overflow = itemCount - capacity
		default:
			overflow = int(f)
		}
	}
	trailing := itemCount - capacity - overflow
	return Spacers{
		Leading:  fillerExtent(overflow, stride, g.Spacing),
		Trailing: fillerExtent(trailing, stride, g.Spacing),
		Active:   true,
	}, overflow
}

// fillerExtent sizes a spacer for count skipped items. The host adds one
// spacing unit after the spacer, which the spacer itself subtracts.
func fillerExtent(count int, stride, spacing float64) float64 {
	if count <= 0 {
		return -spacing
	}
	return float64(count)*stride - spacing
}
