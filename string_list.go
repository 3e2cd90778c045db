package poolscroll

import (
	"strconv"

	"github.com/gdamore/tcell/v3"

	"github.com/ayn2op/poolscroll/pool"
)

// StringList is a [PoolList] of strings. It keeps the strings itself and
// binds them into pooled [TextSlot] views.
type StringList struct {
	*PoolList[*TextSlot]

	items *pool.Items[string, *TextSlot]

	numbered   bool
	textStyle  tcell.Style
	labelStyle tcell.Style
	alignment  Alignment
}

// NewStringList returns an empty vertical string list.
func NewStringList(options ...pool.Option[*TextSlot]) *StringList {
	l := &StringList{
		textStyle:  tcell.StyleDefault.Foreground(Styles.PrimaryTextColor),
		labelStyle: tcell.StyleDefault.Foreground(Styles.SecondaryTextColor),
		alignment:  AlignmentLeft,
	}
	factory := pool.FactoryFuncs[*TextSlot]{New: func() *TextSlot {
		return NewTextSlot().
			SetTextStyle(l.textStyle).
			SetLabelStyle(l.labelStyle).
			SetAlignment(l.alignment)
	}}
	l.PoolList = newPoolList[*TextSlot](func(viewport pool.Viewport, options ...pool.Option[*TextSlot]) *pool.Engine[*TextSlot] {
		l.items = pool.NewItems[string, *TextSlot](viewport, l.bind, options...)
		return l.items.Engine()
	}, factory, options...)
	return l
}

func (l *StringList) bind(value string, index int, view *TextSlot) {
	label := ""
	if l.numbered {
		label = strconv.Itoa(index+1) + " "
	}
	view.SetLabel(label).SetText(value)
}

// SetNumbered prefixes every line with its 1-based index.
func (l *StringList) SetNumbered(numbered bool) *StringList {
	if l.numbered != numbered {
		l.numbered = numbered
		l.Engine().ApplyAll()
	}
	return l
}

// SetTextStyle sets the style of the text of every line.
func (l *StringList) SetTextStyle(style tcell.Style) *StringList {
	l.textStyle = style
	for _, slot := range l.Engine().Slots() {
		slot.View.SetTextStyle(style)
	}
	return l
}

// SetLabelStyle sets the style of the line numbers.
func (l *StringList) SetLabelStyle(style tcell.Style) *StringList {
	l.labelStyle = style
	for _, slot := range l.Engine().Slots() {
		slot.View.SetLabelStyle(style)
	}
	return l
}

// SetAlignment sets how every line is aligned within its slot.
func (l *StringList) SetAlignment(alignment Alignment) *StringList {
	l.alignment = alignment
	for _, slot := range l.Engine().Slots() {
		slot.View.SetAlignment(alignment)
	}
	return l
}

// Add appends lines.
func (l *StringList) Add(values ...string) *StringList {
	l.items.AddAll(values...)
	l.MarkDirty()
	return l
}

// Insert inserts a line at index. Lines already on screen stay in place when
// the insertion happens above or inside the window.
func (l *StringList) Insert(index int, value string) *StringList {
	l.items.Insert(index, value)
	l.MarkDirty()
	return l
}

// Set replaces the line at index.
func (l *StringList) Set(index int, value string) *StringList {
	l.items.Set(index, value)
	return l
}

// Replace replaces all lines.
func (l *StringList) Replace(values ...string) *StringList {
	l.items.Replace(values...)
	l.MarkDirty()
	return l
}

// At returns the line at index.
func (l *StringList) At(index int) string {
	return l.items.At(index)
}

// Len returns the number of lines.
func (l *StringList) Len() int {
	return l.items.Len()
}

// Lines returns all lines. Callers must not modify the slice.
func (l *StringList) Lines() []string {
	return l.items.Values()
}
