package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpan_ValidIn(t *testing.T) {
	tests := []struct {
		name string
		span Span
		n    int
		want bool
	}{
		{name: "whole text", span: Span{0, 5}, n: 5, want: true},
		{name: "empty at end", span: Span{5, 5}, n: 5, want: true},
		{name: "negative start", span: Span{-1, 2}, n: 5, want: false},
		{name: "reversed", span: Span{3, 2}, n: 5, want: false},
		{name: "past end", span: Span{2, 6}, n: 5, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.span.ValidIn(tt.n))
		})
	}
}

func TestSpan_Intersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{name: "overlap", a: Span{0, 5}, b: Span{3, 8}, want: true},
		{name: "nested", a: Span{0, 10}, b: Span{3, 4}, want: true},
		{name: "touching", a: Span{0, 5}, b: Span{5, 8}, want: false},
		{name: "disjoint", a: Span{0, 2}, b: Span{4, 8}, want: false},
		{name: "empty inside", a: Span{0, 10}, b: Span{4, 4}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Intersects(tt.b))
			assert.Equal(t, tt.want, tt.b.Intersects(tt.a))
		})
	}
}

func TestSpan_TouchesAndUnion(t *testing.T) {
	a := Span{Start: 2, End: 5}
	b := Span{Start: 5, End: 9}

	assert.True(t, a.Touches(b))
	assert.False(t, a.Touches(Span{Start: 6, End: 9}))
	assert.Equal(t, Span{Start: 2, End: 9}, a.Union(b))
}

func TestSpan_Contains(t *testing.T) {
	s := Span{Start: 2, End: 5}

	assert.True(t, s.Contains(2))
	assert.True(t, s.Contains(4))
	assert.False(t, s.Contains(5))
	assert.True(t, s.ContainsSpan(Span{Start: 3, End: 5}))
	assert.False(t, s.ContainsSpan(Span{Start: 1, End: 3}))
	assert.Equal(t, 3, s.Len())
	assert.True(t, Span{Start: 4, End: 4}.Empty())
}
