// Package help renders the keybinds of a KeyMap as a one-line summary or as
// aligned columns.
package help

import (
	"strings"

	"github.com/gdamore/tcell/v3"

	"github.com/ayn2op/poolscroll"
	"github.com/ayn2op/poolscroll/keybind"
)

type KeyMap interface {
	// ShortHelp returns keybinds for single-line help.
	ShortHelp() []keybind.Keybind
	// FullHelp returns keybind groups, where each top-level entry is a column.
	FullHelp() [][]keybind.Keybind
}

type Help struct {
	*poolscroll.Box
	Styles Styles

	keyMap         KeyMap
	showAll        bool
	shortSeparator string
	fullSeparator  string
	ellipsis       string
}

func New() *Help {
	return &Help{
		Box:            poolscroll.NewBox(),
		Styles:         DefaultStyles(),
		shortSeparator: " • ",
		fullSeparator:  "    ",
		ellipsis:       "…",
	}
}

// SetKeyMap sets the key map used by this help primitive.
func (h *Help) SetKeyMap(keyMap KeyMap) *Help {
	h.keyMap = keyMap
	h.MarkDirty()
	return h
}

// SetShowAll enables or disables full help mode.
func (h *Help) SetShowAll(showAll bool) *Help {
	if h.showAll != showAll {
		h.showAll = showAll
		h.MarkDirty()
	}
	return h
}

// ShowAll returns whether full help mode is enabled.
func (h *Help) ShowAll() bool {
	return h.showAll
}

// SetShortSeparator sets the separator used in short help mode.
func (h *Help) SetShortSeparator(separator string) *Help {
	h.shortSeparator = separator
	return h
}

// SetFullSeparator sets the separator used between full help columns.
func (h *Help) SetFullSeparator(separator string) *Help {
	h.fullSeparator = separator
	return h
}

// SetEllipsis sets the ellipsis marker used when content is truncated.
func (h *Help) SetEllipsis(ellipsis string) *Help {
	h.ellipsis = ellipsis
	return h
}

// Draw draws this primitive onto the screen.
func (h *Help) Draw(screen tcell.Screen) {
	h.DrawForSubclass(screen, h)

	x, y, width, height := h.GetInnerRect()
	for row, line := range h.lines(width) {
		if row >= height {
			break
		}
		drawLine(screen, x, y+row, width, line)
	}
}

// Lines renders the help for the current mode as plain text.
func (h *Help) Lines(maxWidth int) []string {
	styled := h.lines(maxWidth)
	out := make([]string, 0, len(styled))
	for _, l := range styled {
		out = append(out, l.String())
	}
	return out
}

// Size returns the width and height the current mode needs without
// truncation, including the box's border and padding.
func (h *Help) Size() (int, int) {
	lines := h.lines(0)
	width := 0
	for _, l := range lines {
		width = max(width, l.width())
	}
	chromeWidth, chromeHeight := h.GetChromeSize()
	return width + chromeWidth, len(lines) + chromeHeight
}

func (h *Help) lines(maxWidth int) []line {
	if h.keyMap == nil {
		return nil
	}
	if h.showAll {
		return h.fullLines(h.keyMap.FullHelp(), maxWidth)
	}
	if l := h.shortLine(h.keyMap.ShortHelp(), maxWidth); len(l) > 0 {
		return []line{l}
	}
	return nil
}

type segment struct {
	text  string
	style tcell.Style
}

type line []segment

func (l line) width() int {
	w := 0
	for _, s := range l {
		w += poolscroll.StringWidth(s.text)
	}
	return w
}

func (l line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.text)
	}
	return b.String()
}

// shortLine joins the enabled keybinds with the short separator, stopping
// before the first one that would overflow maxWidth. A maxWidth of 0 means
// unlimited.
func (h *Help) shortLine(bindings []keybind.Keybind, maxWidth int) line {
	sep := segment{text: orSpace(h.shortSeparator), style: h.Styles.Short.Separator}

	var out line
	for _, kb := range bindings {
		item := shortItem(kb, h.Styles.Short.Key, h.Styles.Short.Desc)
		if len(item) == 0 {
			continue
		}
		next := append(line{}, out...)
		if len(next) > 0 {
			next = append(next, sep)
		}
		next = append(next, item...)
		if maxWidth > 0 && next.width() > maxWidth {
			return append(out, h.ellipsisTail(out, maxWidth)...)
		}
		out = next
	}
	return out
}

type helpColumn struct {
	keys, descs []string
	keyWidth    int
	width       int
}

func newHelpColumn(group []keybind.Keybind) helpColumn {
	var c helpColumn
	for _, kb := range group {
		hp := kb.Help()
		if !kb.Enabled() || hp.Key == "" && hp.Desc == "" {
			continue
		}
		c.keys = append(c.keys, hp.Key)
		c.descs = append(c.descs, hp.Desc)
		c.keyWidth = max(c.keyWidth, poolscroll.StringWidth(hp.Key))
	}
	for i := range c.keys {
		w := c.keyWidth + poolscroll.StringWidth(c.descs[i])
		if c.keys[i] != "" && c.descs[i] != "" {
			w++
		}
		c.width = max(c.width, w)
	}
	return c
}

// fullLines lays the groups out as columns, dropping trailing columns that
// would overflow maxWidth.
func (h *Help) fullLines(groups [][]keybind.Keybind, maxWidth int) []line {
	sepText := orSpace(h.fullSeparator)
	sepWidth := poolscroll.StringWidth(sepText)

	var columns []helpColumn
	total := 0
	truncated := false
	for _, group := range groups {
		c := newHelpColumn(group)
		if len(c.keys) == 0 {
			continue
		}
		w := c.width
		if len(columns) > 0 {
			w += sepWidth
		}
		if maxWidth > 0 && total+w > maxWidth {
			truncated = true
			break
		}
		columns = append(columns, c)
		total += w
	}
	if len(columns) == 0 {
		if truncated {
			return []line{{{text: h.ellipsis, style: h.Styles.Ellipsis}}}
		}
		return nil
	}

	rows := 0
	for _, c := range columns {
		rows = max(rows, len(c.keys))
	}

	lines := make([]line, rows)
	for row := range lines {
		for i, c := range columns {
			if i > 0 {
				lines[row] = append(lines[row], segment{text: sepText, style: h.Styles.Full.Separator})
			}
			lines[row] = append(lines[row], h.fullCell(c, row, i == len(columns)-1)...)
		}
	}

	if truncated {
		lines[0] = append(lines[0], h.ellipsisTail(lines[0], maxWidth)...)
	}
	return lines
}

// fullCell renders one column entry. Every column but the last is padded
// to its width so separators line up across rows.
func (h *Help) fullCell(c helpColumn, row int, last bool) line {
	if row >= len(c.keys) {
		if last {
			return nil
		}
		return line{{text: strings.Repeat(" ", c.width), style: h.Styles.Full.Desc}}
	}

	key, desc := c.keys[row], c.descs[row]
	cell := line{{text: key + strings.Repeat(" ", c.keyWidth-poolscroll.StringWidth(key)), style: h.Styles.Full.Key}}
	if key != "" && desc != "" {
		cell = append(cell, segment{text: " ", style: h.Styles.Full.Desc})
	}
	cell = append(cell, segment{text: desc, style: h.Styles.Full.Desc})
	if pad := c.width - cell.width(); !last && pad > 0 {
		cell = append(cell, segment{text: strings.Repeat(" ", pad), style: h.Styles.Full.Desc})
	}
	return cell
}

// ellipsisTail returns " …" when it fits after current within maxWidth.
func (h *Help) ellipsisTail(current line, maxWidth int) line {
	if maxWidth <= 0 || h.ellipsis == "" {
		return nil
	}
	tail := line{
		{text: " ", style: h.Styles.Ellipsis},
		{text: h.ellipsis, style: h.Styles.Ellipsis},
	}
	if current.width()+tail.width() > maxWidth {
		return nil
	}
	return tail
}

func drawLine(screen tcell.Screen, x, y, width int, l line) {
	for _, s := range l {
		if width <= 0 {
			return
		}
		if s.text == "" {
			continue
		}
		_, printed := poolscroll.PrintWithStyle(screen, s.text, x, y, width, poolscroll.AlignmentLeft, s.style)
		x += printed
		width -= printed
	}
}

func shortItem(kb keybind.Keybind, keyStyle, descStyle tcell.Style) line {
	if !kb.Enabled() {
		return nil
	}
	help := kb.Help()
	switch {
	case help.Key == "" && help.Desc == "":
		return nil
	case help.Key == "":
		return line{{text: help.Desc, style: descStyle}}
	case help.Desc == "":
		return line{{text: help.Key, style: keyStyle}}
	default:
		return line{{text: help.Key, style: keyStyle}, {text: " ", style: descStyle}, {text: help.Desc, style: descStyle}}
	}
}

func orSpace(s string) string {
	if s == "" {
		return " "
	}
	return s
}
