package exclusion

import (
	"slices"
	"sort"

	"github.com/bkga-dev/bkga/pkg/types"
)

// Set is a sorted list of disjoint, non-adjacent exclusion spans.
// Build one with Normalize; a zero Set is empty.
type Set []types.Span

// Normalize sorts spans by start and merges any pair where the next span
// starts at or before the current end. Empty spans are dropped. The input
// slice is not modified.
func Normalize(spans []types.Span) Set {
	sorted := make([]types.Span, 0, len(spans))
	for _, s := range spans {
		if !s.Empty() {
			sorted = append(sorted, s)
		}
	}
	slices.SortFunc(sorted, func(a, b types.Span) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})

	merged := make(Set, 0, len(sorted))
	for _, s := range sorted {
		if n := len(merged); n > 0 && merged[n-1].Touches(s) {
			merged[n-1] = merged[n-1].Union(s)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// Merge combines two sets into one normalized set.
func (s Set) Merge(other Set) Set {
	all := make([]types.Span, 0, len(s)+len(other))
	all = append(all, s...)
	all = append(all, other...)
	return Normalize(all)
}

// Overlaps reports whether span strictly intersects any zone. Touching a
// zone boundary is not an overlap.
func (s Set) Overlaps(span types.Span) bool {
	if span.Empty() {
		return false
	}
	// zones are disjoint, so ends are ascending too
	i := sort.Search(len(s), func(i int) bool {
		return s[i].End > span.Start
	})
	return i < len(s) && s[i].Intersects(span)
}

// Contains reports whether offset lies inside a zone.
func (s Set) Contains(offset int) bool {
	i := sort.Search(len(s), func(i int) bool {
		return s[i].End > offset
	})
	return i < len(s) && s[i].Start <= offset
}

// Spans returns a copy of the zones.
func (s Set) Spans() []types.Span {
	return slices.Clone([]types.Span(s))
}
