package poolscroll

import "github.com/gdamore/tcell/v3"

// TextSlot is a single line of text, optionally preceded by a label. It is
// the view [StringList] pools: the list rebinds the same TextSlot to
// different items as they scroll by.
//
// The line is drawn on the middle row of the slot and cut with an ellipsis
// when it does not fit.
type TextSlot struct {
	*Box

	label string
	text  string

	labelStyle tcell.Style
	textStyle  tcell.Style
	alignment  Alignment
}

// NewTextSlot returns an empty text slot.
func NewTextSlot() *TextSlot {
	return &TextSlot{
		Box:        NewBox(),
		labelStyle: tcell.StyleDefault.Foreground(Styles.SecondaryTextColor),
		textStyle:  tcell.StyleDefault.Foreground(Styles.PrimaryTextColor),
		alignment:  AlignmentLeft,
	}
}

// SetText sets the displayed text. Only the first line is shown.
func (t *TextSlot) SetText(text string) *TextSlot {
	if text = firstLine(text); t.text != text {
		t.text = text
		t.MarkDirty()
	}
	return t
}

// GetText returns the displayed text.
func (t *TextSlot) GetText() string {
	return t.text
}

// SetLabel sets the text drawn before the main text.
func (t *TextSlot) SetLabel(label string) *TextSlot {
	if t.label != label {
		t.label = label
		t.MarkDirty()
	}
	return t
}

// GetLabel returns the label.
func (t *TextSlot) GetLabel() string {
	return t.label
}

// SetTextStyle sets the style of the text.
func (t *TextSlot) SetTextStyle(style tcell.Style) *TextSlot {
	if t.textStyle != style {
		t.textStyle = style
		t.MarkDirty()
	}
	return t
}

// SetLabelStyle sets the style of the label.
func (t *TextSlot) SetLabelStyle(style tcell.Style) *TextSlot {
	if t.labelStyle != style {
		t.labelStyle = style
		t.MarkDirty()
	}
	return t
}

// SetAlignment sets how the line is aligned within the slot.
func (t *TextSlot) SetAlignment(alignment Alignment) *TextSlot {
	if t.alignment != alignment {
		t.alignment = alignment
		t.MarkDirty()
	}
	return t
}

// Clear removes label and text.
func (t *TextSlot) Clear() *TextSlot {
	return t.SetLabel("").SetText("")
}

// Draw draws this primitive onto the screen.
func (t *TextSlot) Draw(screen tcell.Screen) {
	t.DrawForSubclass(screen, t)

	x, y, width, height := t.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	row := y + (height-1)/2

	labelWidth := min(StringWidth(t.label), width)
	line := TruncateWidth(t.text, width-labelWidth, SemigraphicsHorizontalEllipsis)
	lineWidth := labelWidth + StringWidth(line)

	switch t.alignment {
	case AlignmentCenter:
		x += (width - lineWidth) / 2
	case AlignmentRight:
		x += width - lineWidth
	}

	if labelWidth > 0 {
		_, printed := PrintWithStyle(screen, t.label, x, row, labelWidth, AlignmentLeft, t.labelStyle.Background(t.background))
		x += printed
	}
	PrintWithStyle(screen, line, x, row, width-labelWidth, AlignmentLeft, t.textStyle.Background(t.background))
}

var _ Primitive = &TextSlot{}
