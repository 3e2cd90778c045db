package poolscroll

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

type cell struct {
	text  string
	style tcell.Style
	width int
	// cont marks the trailing columns of a wide grapheme.
	cont bool
}

// CaptureScreen is an in-memory screen. Primitives draw onto it exactly as
// they would onto a terminal, which makes it usable for rendering a single
// frame without a terminal and for inspecting output in tests.
//
// Only the drawing subset of tcell.Screen is implemented; calling any other
// method panics.
type CaptureScreen struct {
	tcell.Screen

	width, height int
	cells         []cell
	defaultStyle  tcell.Style

	cursorX, cursorY int
	cursorVisible    bool

	title string
}

// NewCaptureScreen returns a blank screen of the given size.
func NewCaptureScreen(width, height int) *CaptureScreen {
	s := &CaptureScreen{defaultStyle: tcell.StyleDefault}
	s.SetSize(width, height)
	return s
}

// SetSize resizes and clears the screen.
func (s *CaptureScreen) SetSize(width, height int) {
	s.width, s.height = max(width, 0), max(height, 0)
	s.cells = make([]cell, s.width*s.height)
	s.Clear()
}

func (s *CaptureScreen) Size() (int, int) {
	return s.width, s.height
}

func (s *CaptureScreen) Clear() {
	s.Fill(' ', s.defaultStyle)
}

func (s *CaptureScreen) Fill(r rune, style tcell.Style) {
	for i := range s.cells {
		s.cells[i] = cell{text: string(r), style: style, width: 1}
	}
}

func (s *CaptureScreen) SetStyle(style tcell.Style) {
	s.defaultStyle = style
}

func (s *CaptureScreen) Show() {}

func (s *CaptureScreen) Sync() {}

func (s *CaptureScreen) Fini() {}

func (s *CaptureScreen) SetTitle(title string) {
	s.title = title
}

// Title returns the last title set on the screen.
func (s *CaptureScreen) Title() string {
	return s.title
}

func (s *CaptureScreen) ShowCursor(x int, y int) {
	s.cursorX, s.cursorY, s.cursorVisible = x, y, true
}

func (s *CaptureScreen) HideCursor() {
	s.cursorVisible = false
}

// CursorState returns the cursor position and whether it is shown.
func (s *CaptureScreen) CursorState() (int, int, bool) {
	return s.cursorX, s.cursorY, s.cursorVisible
}

func (s *CaptureScreen) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.width && y < s.height
}

func (s *CaptureScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	text := string(primary)
	if len(combining) > 0 {
		text += string(combining)
	}
	s.Put(x, y, text, style)
}

func (s *CaptureScreen) Get(x, y int) (str string, style tcell.Style, width int) {
	if !s.inBounds(x, y) {
		return "", tcell.StyleDefault, 1
	}
	c := s.cells[y*s.width+x]
	return c.text, c.style, max(c.width, 1)
}

// Put writes the first grapheme of str at (x, y) and returns the rest of str
// and the number of columns used.
func (s *CaptureScreen) Put(x int, y int, str string, style tcell.Style) (string, int) {
	if str == "" {
		return "", 0
	}

	cluster, remain, width, _ := uniseg.FirstGraphemeClusterInString(str, -1)
	if cluster == "" {
		r, size := utf8.DecodeRuneInString(str)
		if size == 0 {
			return "", 0
		}
		cluster, remain, width = string(r), str[size:], 1
	}
	if width <= 0 {
		return remain, 0
	}
	if !s.inBounds(x, y) {
		return remain, width
	}

	// Match terminal clipping behavior for wide graphemes at the right edge.
	if width > 1 && x+width > s.width {
		cluster, width = " ", 1
	}

	s.clearWideAt(x, y)
	s.cells[y*s.width+x] = cell{text: cluster, style: style, width: width}
	for i := 1; i < width; i++ {
		s.cells[y*s.width+x+i] = cell{style: style, cont: true}
	}
	return remain, width
}

// clearWideAt blanks the tail of a wide grapheme written at (x, y) earlier,
// so the last write wins when narrow content overwrites it.
func (s *CaptureScreen) clearWideAt(x, y int) {
	prev := s.cells[y*s.width+x]
	for i := 1; !prev.cont && i < prev.width && x+i < s.width; i++ {
		s.cells[y*s.width+x+i] = cell{text: " ", style: prev.style, width: 1}
	}
}

func (s *CaptureScreen) PutStr(x int, y int, str string) {
	s.PutStrStyled(x, y, str, s.defaultStyle)
}

func (s *CaptureScreen) PutStrStyled(x int, y int, str string, style tcell.Style) {
	for str != "" && x < s.width {
		remain, width := s.Put(x, y, str, style)
		if width <= 0 || remain == str {
			return
		}
		x += width
		str = remain
	}
}

// Line returns the text of row y with trailing blanks removed.
func (s *CaptureScreen) Line(y int) string {
	if y < 0 || y >= s.height {
		return ""
	}
	var b strings.Builder
	for x := 0; x < s.width; x++ {
		if c := s.cells[y*s.width+x]; !c.cont {
			b.WriteString(c.text)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Lines returns every row as text.
func (s *CaptureScreen) Lines() []string {
	lines := make([]string, s.height)
	for y := range lines {
		lines[y] = s.Line(y)
	}
	return lines
}

// String returns the screen contents as newline separated rows.
func (s *CaptureScreen) String() string {
	return strings.Join(s.Lines(), "\n")
}
