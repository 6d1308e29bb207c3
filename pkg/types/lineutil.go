package types

import (
	"sort"
	"unicode/utf16"
)

// Text is an immutable UTF-16 view of a document snapshot. All spans handed
// to the annotation pipeline index into Units.
type Text struct {
	raw        string
	units      []uint16
	lineStarts []int
}

// NewText encodes s as UTF-16 and builds its newline table.
func NewText(s string) *Text {
	units := utf16.Encode([]rune(s))
	return &Text{
		raw:        s,
		units:      units,
		lineStarts: computeLineStarts(units),
	}
}

// String returns the original document text.
func (t *Text) String() string {
	return t.raw
}

// Len returns the document length in UTF-16 code units.
func (t *Text) Len() int {
	return len(t.units)
}

// Units exposes the encoded document. Callers must not modify the slice.
func (t *Text) Units() []uint16 {
	return t.units
}

// Slice returns the text covered by span. Invalid spans yield "".
func (t *Text) Slice(span Span) string {
	if !span.ValidIn(len(t.units)) {
		return ""
	}
	return string(utf16.Decode(t.units[span.Start:span.End]))
}

// Replace returns the document with span replaced by s. Invalid spans
// leave the document unchanged.
func (t *Text) Replace(span Span, s string) string {
	if !span.ValidIn(len(t.units)) {
		return t.raw
	}
	insert := utf16.Encode([]rune(s))
	units := make([]uint16, 0, len(t.units)-span.Len()+len(insert))
	units = append(units, t.units[:span.Start]...)
	units = append(units, insert...)
	units = append(units, t.units[span.End:]...)
	return string(utf16.Decode(units))
}

// LineCount returns the number of lines, counting a trailing empty line.
func (t *Text) LineCount() int {
	return len(t.lineStarts)
}

// Position computes the 1-based line and column of a code-unit offset.
// Offsets beyond the document clamp to its end.
func (t *Text) Position(offset int) SourcePoint {
	if offset < 0 {
		offset = 0
	}
	if offset > len(t.units) {
		offset = len(t.units)
	}
	// index of the last line start <= offset
	line := sort.Search(len(t.lineStarts), func(i int) bool {
		return t.lineStarts[i] > offset
	}) - 1
	return SourcePoint{
		Line:   line + 1,
		Column: offset - t.lineStarts[line] + 1,
	}
}

// Location resolves a span to offsets plus line:column positions.
func (t *Text) Location(span Span) Location {
	return Location{
		Offset: span,
		Source: SourceSpan{
			Start: t.Position(span.Start),
			End:   t.Position(span.End),
		},
	}
}

// computeLineStarts returns the offset of every line start. A line begins
// after each '\n', so "\r\n" terminators keep '\r' on the preceding line.
func computeLineStarts(units []uint16) []int {
	starts := []int{0}
	for i, u := range units {
		if u == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

