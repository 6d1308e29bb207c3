package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText_Position(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		offset     int
		wantLine   int
		wantColumn int
	}{
		{name: "empty content at offset 0", content: "", offset: 0, wantLine: 1, wantColumn: 1},
		{name: "single line", content: "hello", offset: 2, wantLine: 1, wantColumn: 3},
		{name: "second line", content: "hello\nworld", offset: 7, wantLine: 2, wantColumn: 2},
		{name: "offset at newline", content: "hello\nworld", offset: 5, wantLine: 1, wantColumn: 6},
		{name: "start of second line", content: "hello\nworld", offset: 6, wantLine: 2, wantColumn: 1},
		{name: "beyond content", content: "hello", offset: 100, wantLine: 1, wantColumn: 6},
		{name: "crlf keeps cr on first line", content: "ab\r\ncd", offset: 4, wantLine: 2, wantColumn: 1},
		{name: "hangul is one unit each", content: "가나\n다라", offset: 4, wantLine: 2, wantColumn: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewText(tt.content).Position(tt.offset)
			assert.Equal(t, tt.wantLine, p.Line)
			assert.Equal(t, tt.wantColumn, p.Column)
		})
	}
}

func TestText_UTF16Length(t *testing.T) {
	// 📌 lies outside the BMP and takes a surrogate pair
	text := NewText("📌 가")
	assert.Equal(t, 4, text.Len())
	assert.Equal(t, "가", text.Slice(Span{Start: 3, End: 4}))
	assert.Equal(t, "📌", text.Slice(Span{Start: 0, End: 2}))
}

func TestText_Slice(t *testing.T) {
	text := NewText("나는 갔다")

	assert.Equal(t, "갔다", text.Slice(Span{Start: 3, End: 5}))
	assert.Equal(t, "", text.Slice(Span{Start: 3, End: 9}))
	assert.Equal(t, "", text.Slice(Span{Start: -1, End: 2}))
	assert.Equal(t, "나는 갔다", text.String())
}

func TestText_Location(t *testing.T) {
	text := NewText("첫 줄\n둘째 줄")
	loc := text.Location(Span{Start: 4, End: 6})

	assert.Equal(t, Span{Start: 4, End: 6}, loc.Offset)
	assert.Equal(t, SourcePoint{Line: 2, Column: 1}, loc.Source.Start)
	assert.Equal(t, SourcePoint{Line: 2, Column: 3}, loc.Source.End)
	assert.Equal(t, 2, text.LineCount())
}
