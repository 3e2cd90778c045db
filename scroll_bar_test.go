package poolscroll

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayn2op/poolscroll/pool"
)

func Test_ComputeScrollMetrics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                          string
		track, content, viewport, off int
		want                          scrollMetrics
	}{
		{
			name:  "no track",
			track: 0, content: 100, viewport: 10, off: 0,
			want: scrollMetrics{},
		},
		{
			name:  "everything fits",
			track: 10, content: 5, viewport: 10, off: 0,
			want: scrollMetrics{trackCells: 10, trackLen: 80, thumbLen: 80, thumbStart: 0},
		},
		{
			name:  "proportional thumb at start",
			track: 10, content: 40, viewport: 10, off: 0,
			want: scrollMetrics{trackCells: 10, trackLen: 80, thumbLen: 20, thumbStart: 0},
		},
		{
			name:  "proportional thumb at end",
			track: 10, content: 40, viewport: 10, off: 30,
			want: scrollMetrics{trackCells: 10, trackLen: 80, thumbLen: 20, thumbStart: 60},
		},
		{
			name:  "thumb never shorter than a cell",
			track: 5, content: 1000, viewport: 5, off: 0,
			want: scrollMetrics{trackCells: 5, trackLen: 40, thumbLen: 8, thumbStart: 0},
		},
		{
			name:  "offset is clamped",
			track: 10, content: 40, viewport: 10, off: 500,
			want: scrollMetrics{trackCells: 10, trackLen: 80, thumbLen: 20, thumbStart: 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, computeScrollMetrics(tt.track, tt.content, tt.viewport, tt.off))
		})
	}
}

func Test_CellFill_Splits_Thumb_Across_Cells(t *testing.T) {
	t.Parallel()

	m := scrollMetrics{trackCells: 4, trackLen: 32, thumbLen: 12, thumbStart: 4}

	var got [][2]int
	for cell := range m.trackCells {
		start, fill := cellFill(m, cell)
		got = append(got, [2]int{start, fill})
	}
	assert.Equal(t, [][2]int{{4, 4}, {0, 8}, {0, 0}, {0, 0}}, got)
}

func Test_ScrollBar_Draws_Fractional_Thumb(t *testing.T) {
	t.Parallel()

	bar := NewScrollBar().SetGlyphSet(LegacyComputingGlyphSet())
	bar.SetLengths(ScrollLengths{ContentLen: 40, ViewportLen: 10}).SetOffset(15)
	screen := render(bar, 1, 10)

	// Thumb of 20 eighths starting at eighth 30: the bottom quarter of cell
	// 3, cells 4 and 5, then the top quarter of cell 6.
	var column []string
	for y := range 10 {
		glyph, _, _ := screen.Get(0, y)
		column = append(column, glyph)
	}
	assert.Equal(t, "│││▂██🮂│││", strings.Join(column, ""))
}

func Test_ScrollBar_Horizontal_With_Arrows(t *testing.T) {
	t.Parallel()

	bar := NewScrollBar().
		SetOrientation(pool.Horizontal).
		SetGlyphSet(UnicodeGlyphSet()).
		SetArrows(ScrollBarArrowsBoth)
	bar.SetLengths(ScrollLengths{ContentLen: 20, ViewportLen: 10})
	screen := render(bar, 6, 1)

	assert.Equal(t, "◀██──▶", screen.Line(0))
}

func Test_ScrollBar_Auto_Hides_When_Content_Fits(t *testing.T) {
	t.Parallel()

	bar := NewScrollBar().SetGlyphSet(LegacyComputingGlyphSet())
	bar.SetLengths(ScrollLengths{ContentLen: 5, ViewportLen: 10})
	assert.Equal(t, []string{"", "", ""}, render(bar, 1, 3).Lines())

	bar.SetAutoHide(false)
	assert.Equal(t, []string{"█", "█", "█"}, render(bar, 1, 3).Lines())
}
