package poolscroll

import (
	"strings"

	"github.com/rivo/uniseg"
)

// stepState represents the current state of the grapheme parser.
type stepState struct {
	unisegState int
	boundaries  int
	grossLength int
}

// Width returns the grapheme cluster's width in cells.
func (s *stepState) Width() int {
	return s.boundaries >> uniseg.ShiftWidth
}

// GrossLength returns the grapheme cluster's length in bytes.
func (s *stepState) GrossLength() int {
	return s.grossLength
}

// step iterates over grapheme clusters of a string.
func step(str string, state *stepState) (cluster, rest string, newState *stepState) {
	if state == nil {
		state = &stepState{
			unisegState: -1,
		}
	}
	if len(str) == 0 {
		newState = state
		return
	}

	preState := state.unisegState
	cluster, rest, state.boundaries, state.unisegState = uniseg.StepString(str, preState)
	state.grossLength = len(cluster)
	if rest == "" && !uniseg.HasTrailingLineBreakInString(cluster) {
		state.boundaries &^= uniseg.MaskLine
	}

	newState = state
	return
}

// StringWidth returns the number of cells text occupies on screen.
func StringWidth(text string) (width int) {
	var state *stepState
	for len(text) > 0 {
		_, text, state = step(text, state)
		width += state.Width()
	}
	return
}

// TruncateWidth cuts text to at most width cells. When text is cut and the
// ellipsis fits, the last cells are replaced by it.
func TruncateWidth(text string, width int, ellipsis string) string {
	if width <= 0 {
		return ""
	}
	if StringWidth(text) <= width {
		return text
	}

	keep := width - StringWidth(ellipsis)
	if keep < 0 {
		keep, ellipsis = width, ""
	}

	var (
		b     strings.Builder
		used  int
		state *stepState
	)
	for len(text) > 0 {
		var cluster string
		cluster, text, state = step(text, state)
		if used+state.Width() > keep {
			break
		}
		b.WriteString(cluster)
		used += state.Width()
	}
	b.WriteString(ellipsis)
	return b.String()
}

// firstLine returns text up to the first line break.
func firstLine(text string) string {
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		return text[:i]
	}
	return text
}
