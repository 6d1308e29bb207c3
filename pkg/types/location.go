package types

// Span is a half-open range [Start, End) of UTF-16 code-unit offsets into a
// document. Offsets use the same convention the external corrector reports.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of code units covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Empty reports whether the span covers no code units.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// ValidIn reports whether 0 <= Start <= End <= n.
func (s Span) ValidIn(n int) bool {
	return s.Start >= 0 && s.Start <= s.End && s.End <= n
}

// Contains reports whether offset falls inside [Start, End).
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// ContainsSpan reports whether o lies entirely within s.
func (s Span) ContainsSpan(o Span) bool {
	return o.Start >= s.Start && o.End <= s.End
}

// Intersects reports a strict intersection: spans that merely touch
// (a.End == b.Start) do not intersect, and empty spans intersect nothing.
func (s Span) Intersects(o Span) bool {
	return max(s.Start, o.Start) < min(s.End, o.End)
}

// Touches reports whether the spans overlap or are adjacent.
func (s Span) Touches(o Span) bool {
	return o.Start <= s.End && s.Start <= o.End
}

// Union returns the smallest span covering both s and o.
func (s Span) Union(o Span) Span {
	return Span{Start: min(s.Start, o.Start), End: max(s.End, o.End)}
}

// SourcePoint is line:column position (1-based).
type SourcePoint struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// SourceSpan is start-end line:column range.
type SourceSpan struct {
	Start SourcePoint `json:"start"`
	End   SourcePoint `json:"end"`
}

// Location combines code-unit offsets and source positions.
type Location struct {
	Offset Span       `json:"offset"`
	Source SourceSpan `json:"source"`
}
