package help

import (
	"github.com/gdamore/tcell/v3"
)

// ModeStyles styles one help mode.
type ModeStyles struct {
	Key       tcell.Style
	Desc      tcell.Style
	Separator tcell.Style
}

type Styles struct {
	Short    ModeStyles
	Full     ModeStyles
	Ellipsis tcell.Style
}

// DefaultStyles dims keys and separators so descriptions stand out.
func DefaultStyles() Styles {
	mode := ModeStyles{
		Key:       tcell.StyleDefault.Dim(true),
		Desc:      tcell.StyleDefault,
		Separator: tcell.StyleDefault.Dim(true),
	}
	return Styles{
		Short:    mode,
		Full:     mode,
		Ellipsis: tcell.StyleDefault.Dim(true),
	}
}
