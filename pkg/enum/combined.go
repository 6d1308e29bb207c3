package enum

import (
	"context"
	"sync"

	"github.com/bkga-dev/bkga/pkg/types"
)

// CombinedEnumerator runs multiple enumerators sequentially and deduplicates
// documents by DocumentID so each unique snapshot is yielded at most once.
type CombinedEnumerator struct {
	enumerators []Enumerator
}

// NewCombinedEnumerator creates a CombinedEnumerator that wraps the provided
// enumerators. They are run in order and duplicate documents are suppressed.
func NewCombinedEnumerator(enumerators ...Enumerator) *CombinedEnumerator {
	return &CombinedEnumerator{enumerators: enumerators}
}

// Enumerate runs each child enumerator in sequence, passing unique documents
// to callback.
func (c *CombinedEnumerator) Enumerate(ctx context.Context, callback Callback) error {
	var mu sync.Mutex
	seen := make(map[types.DocumentID]bool)

	for _, e := range c.enumerators {
		err := e.Enumerate(ctx, func(path string, content []byte, id types.DocumentID) error {
			mu.Lock()
			if seen[id] {
				mu.Unlock()
				return nil
			}
			seen[id] = true
			mu.Unlock()

			return callback(path, content, id)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
