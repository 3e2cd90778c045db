package poolscroll

import (
	"github.com/gdamore/tcell/v3"
)

// Alignment positions text within the width it is printed into.
type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

type grapheme struct {
	text  string
	width int
}

func graphemes(text string) []grapheme {
	var (
		out   []grapheme
		state *stepState
	)
	for len(text) > 0 {
		var cluster string
		cluster, text, state = step(text, state)
		out = append(out, grapheme{text: cluster, width: state.Width()})
	}
	return out
}

// fit drops clusters until the rest fits maxWidth and returns the column
// offset to print them at. Right aligned text loses its head, centered text
// both ends and left aligned text its tail (which the printer cuts).
func fit(clusters []grapheme, maxWidth int, alignment Alignment) ([]grapheme, int) {
	total := 0
	for _, g := range clusters {
		total += g.width
	}

	switch alignment {
	case AlignmentRight:
		for len(clusters) > 0 && total > maxWidth {
			total -= clusters[0].width
			clusters = clusters[1:]
		}
		return clusters, maxWidth - total
	case AlignmentCenter:
		for excess := (total - maxWidth) / 2; len(clusters) > 0 && excess > 0; clusters = clusters[1:] {
			excess -= clusters[0].width
			total -= clusters[0].width
		}
		if total < maxWidth {
			return clusters, maxWidth/2 - total/2
		}
	}
	return clusters, 0
}

// printText prints one line of text into the box (x,y,maxWidth,1) and
// returns the bytes and cells printed. With keepBackground the style's
// background is replaced by whatever is already on screen.
func printText(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style, keepBackground bool) (printedBytes, printedWidth int) {
	screenWidth, screenHeight := screen.Size()
	if maxWidth <= 0 || text == "" || y < 0 || y >= screenHeight {
		return 0, 0
	}

	clusters, shift := fit(graphemes(text), maxWidth, alignment)
	right := min(x+maxWidth, screenWidth)
	x += shift
	for _, g := range clusters {
		if x+g.width > right {
			break
		}
		if g.width > 0 {
			cellStyle := style
			if keepBackground {
				_, existing, _ := screen.Get(x, y)
				cellStyle = style.Background(existing.GetBackground())
			}
			// Trailing cells first so the cluster itself is written last.
			for offset := g.width - 1; offset > 0; offset-- {
				screen.Put(x+offset, y, " ", cellStyle)
			}
			screen.Put(x, y, g.text, cellStyle)
		}
		x += g.width
		printedBytes += len(g.text)
		printedWidth += g.width
	}
	return printedBytes, printedWidth
}

// Print prints text into the box (x,y,maxWidth,1) in the given color,
// keeping the background already on screen. It returns the number of bytes
// and cells printed.
func Print(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, color tcell.Color) (int, int) {
	return printText(screen, text, x, y, maxWidth, alignment, tcell.StyleDefault.Foreground(color), true)
}

// PrintWithStyle works like [Print] but takes a full style, background
// included.
func PrintWithStyle(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style) (int, int) {
	return printText(screen, text, x, y, maxWidth, alignment, style, false)
}
