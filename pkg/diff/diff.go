// Package diff splits an original snippet and its suggested replacement into
// a shared prefix, a changed middle and a shared suffix, and renders that
// decomposition for hover surfaces and terminals.
package diff

import (
	"github.com/bkga-dev/bkga/pkg/types"
)

// Compute returns the prefix/changed/suffix decomposition of original and
// suggestion. The comparison is per rune so a surrogate pair is never split.
// Prefix and suffix never overlap: their combined length is at most the
// length of the shorter string.
func Compute(original, suggestion string) types.DiffResult {
	a := []rune(original)
	b := []rune(suggestion)
	limit := min(len(a), len(b))

	p := 0
	for p < limit && a[p] == b[p] {
		p++
	}

	s := 0
	for s < limit-p && a[len(a)-1-s] == b[len(b)-1-s] {
		s++
	}

	return types.DiffResult{
		Original: types.Segments{
			Prefix:  string(a[:p]),
			Changed: string(a[p : len(a)-s]),
			Suffix:  string(a[len(a)-s:]),
		},
		Suggested: types.Segments{
			Prefix:  string(b[:p]),
			Changed: string(b[p : len(b)-s]),
			Suffix:  string(b[len(b)-s:]),
		},
	}
}
