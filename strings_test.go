package poolscroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_StringWidth_Counts_Cells(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, StringWidth(""))
	assert.Equal(t, 5, StringWidth("hello"))
	assert.Equal(t, 4, StringWidth("日本"))
	assert.Equal(t, 1, StringWidth("é"))
}

func Test_TruncateWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		width    int
		ellipsis string
		want     string
	}{
		{name: "fits", text: "hello", width: 5, ellipsis: "…", want: "hello"},
		{name: "cut with ellipsis", text: "hello world", width: 6, ellipsis: "…", want: "hello…"},
		{name: "cut without ellipsis", text: "hello world", width: 6, ellipsis: "", want: "hello "},
		{name: "ellipsis wider than width", text: "hello", width: 2, ellipsis: "...", want: "he"},
		{name: "wide runes are not split", text: "日本語", width: 5, ellipsis: "…", want: "日本…"},
		{name: "wide runes without room for ellipsis", text: "日本語", width: 3, ellipsis: "", want: "日"},
		{name: "zero width", text: "hello", width: 0, ellipsis: "…", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := TruncateWidth(tt.text, tt.width, tt.ellipsis)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, StringWidth(got), max(tt.width, 0))
		})
	}
}

func Test_FirstLine_Stops_At_Line_Break(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "one", firstLine("one\ntwo"))
	assert.Equal(t, "one", firstLine("one\r\ntwo"))
	assert.Equal(t, "one", firstLine("one"))
}
