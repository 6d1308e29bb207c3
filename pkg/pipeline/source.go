package pipeline

import (
	"context"

	"github.com/bkga-dev/bkga/pkg/heuristic"
	"github.com/bkga-dev/bkga/pkg/types"
)

// Source produces raw issues for a text snapshot. An implementation must
// return an error rather than partial results when it cannot complete.
type Source interface {
	Analyze(ctx context.Context, text string) ([]types.Issue, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, text string) ([]types.Issue, error)

// Analyze calls f.
func (f SourceFunc) Analyze(ctx context.Context, text string) ([]types.Issue, error) {
	return f(ctx, text)
}

// Local is the offline whitespace analyzer as a Source. It never fails.
var Local Source = SourceFunc(func(_ context.Context, text string) ([]types.Issue, error) {
	return heuristic.Analyze(text), nil
})

// Suppressor is an optional extra stage applied after the built-in filter.
// snippet is the trimmed text covered by the issue.
type Suppressor interface {
	Suppresses(issue types.Issue, snippet string) bool
}
