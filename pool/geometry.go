package pool

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidGeometry is returned when an extent is negative, NaN or
	// infinite.
	ErrInvalidGeometry = errors.New("pool: invalid geometry")
	// ErrUnsupportedOrientation is returned for an unset or unknown
	// orientation.
	ErrUnsupportedOrientation = errors.New("pool: unsupported orientation")
	// ErrDegenerateGeometry is returned when item extent plus spacing is not
	// positive, so no item can ever advance the window.
	ErrDegenerateGeometry = errors.New("pool: degenerate geometry")
	// ErrAlreadyInitialized is returned by a second call to Initialize.
	ErrAlreadyInitialized = errors.New("pool: already initialized")
)

// Orientation is the scroll axis of a pooled list.
type Orientation uint8

const (
	// OrientationNone is the zero value and is rejected by Validate.
	OrientationNone Orientation = iota
	// Vertical lays items out in rows, scrolling top to bottom.
	Vertical
	// Horizontal lays items out in columns, scrolling left to right.
	Horizontal
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return "none"
	}
}

// ParseOrientation parses "vertical"/"v" or "horizontal"/"h".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "vertical", "v", "row", "rows":
		return Vertical, nil
	case "horizontal", "h", "column", "columns":
		return Horizontal, nil
	}
	return OrientationNone, fmt.Errorf("%w: %q", ErrUnsupportedOrientation, s)
}

// Geometry holds the measurements the engine needs along the scroll axis.
// All values are in host units (terminal cells for the widgets in this
// module).
type Geometry struct {
	Orientation Orientation

	// Size of one item box.
	ItemExtent float64
	// Gap the host inserts between adjacent children, spacers included.
	Spacing float64

	PaddingBefore float64
	PaddingAfter  float64

	// Visible size of the scroll surface.
	ViewportExtent float64
}

// Stride returns the distance between the leading edges of two adjacent
// items.
func (g Geometry) Stride() float64 {
	return g.ItemExtent + g.Spacing
}

// Validate reports whether the geometry can drive an engine.
func (g Geometry) Validate() error {
	switch g.Orientation {
	case Vertical, Horizontal:
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedOrientation, g.Orientation)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"item extent", g.ItemExtent},
		{"spacing", g.Spacing},
		{"padding before", g.PaddingBefore},
		{"padding after", g.PaddingAfter},
		{"viewport extent", g.ViewportExtent},
	} {
		if !finite(f.value) {
			return fmt.Errorf("%w: %s %g", ErrInvalidGeometry, f.name, f.value)
		}
	}
	if g.ItemExtent < 0 {
		return fmt.Errorf("%w: item extent %g", ErrInvalidGeometry, g.ItemExtent)
	}
	if g.ViewportExtent < 0 {
		return fmt.Errorf("%w: viewport extent %g", ErrInvalidGeometry, g.ViewportExtent)
	}
	if g.PaddingBefore < 0 || g.PaddingAfter < 0 {
		return fmt.Errorf("%w: padding %g/%g", ErrInvalidGeometry, g.PaddingBefore, g.PaddingAfter)
	}
	if g.Stride() <= 0 {
		return fmt.Errorf("%w: stride %g", ErrDegenerateGeometry, g.Stride())
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
