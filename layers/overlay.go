package layers

import "github.com/gdamore/tcell/v3"

// overlayScreen restyles every cell written through it, so layers behind an
// overlay are dimmed without a second pass over the screen.
type overlayScreen struct {
	tcell.Screen
	overlay tcell.Style
}

func (s *overlayScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	s.Screen.SetContent(x, y, primary, combining, overlayStyle(style, s.overlay))
}

func (s *overlayScreen) Put(x int, y int, str string, style tcell.Style) (string, int) {
	return s.Screen.Put(x, y, str, overlayStyle(style, s.overlay))
}

func (s *overlayScreen) PutStr(x int, y int, str string) {
	s.Screen.PutStrStyled(x, y, str, overlayStyle(tcell.StyleDefault, s.overlay))
}

func (s *overlayScreen) PutStrStyled(x int, y int, str string, style tcell.Style) {
	s.Screen.PutStrStyled(x, y, str, overlayStyle(style, s.overlay))
}

// overlayStyle applies the colors set on overlay and adds its attributes.
// Attributes of base are never removed.
func overlayStyle(base, overlay tcell.Style) tcell.Style {
	if fg := overlay.GetForeground(); fg != tcell.ColorDefault {
		base = base.Foreground(fg)
	}
	if bg := overlay.GetBackground(); bg != tcell.ColorDefault {
		base = base.Background(bg)
	}
	if overlay.HasDim() {
		base = base.Dim(true)
	}
	if overlay.HasBold() {
		base = base.Bold(true)
	}
	if overlay.HasItalic() {
		base = base.Italic(true)
	}
	if overlay.HasReverse() {
		base = base.Reverse(true)
	}
	return base
}
